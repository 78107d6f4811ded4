package models

type Book struct {
	Title         string  `json:"title" bson:"title"`
	Author        string  `json:"author" bson:"author"`
	Genre         string  `json:"genre" bson:"genre"`
	PublishedYear int     `json:"published_year" bson:"published_year"`
	Price         float64 `json:"price" bson:"price"`
	InStock       bool    `json:"in_stock" bson:"in_stock"`
}

const (
	BookEntity = "book"
)

// BookSummary is the in-stock projection: title, author and price with the
// identifier suppressed.
type BookSummary struct {
	Title  string  `json:"title" bson:"title"`
	Author string  `json:"author" bson:"author"`
	Price  float64 `json:"price" bson:"price"`
}

// PriceListing is the title/price projection used by the sorted listing.
type PriceListing struct {
	Title string  `json:"title" bson:"title"`
	Price float64 `json:"price" bson:"price"`
}

// PageItem is the title/author projection returned by pagination.
type PageItem struct {
	Title  string `json:"title" bson:"title"`
	Author string `json:"author" bson:"author"`
}
