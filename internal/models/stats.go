package models

// GenreStats is one group of the average-price-by-genre pipeline.
type GenreStats struct {
	Genre    string  `json:"genre" bson:"_id"`
	AvgPrice float64 `json:"avg_price" bson:"avgPrice"`
	Count    int     `json:"count" bson:"count"`
}

// AuthorCount is one group of the books-per-author pipeline.
type AuthorCount struct {
	Author string `json:"author" bson:"_id"`
	Count  int    `json:"count" bson:"count"`
}

// DecadeCount is one group of the books-per-decade pipeline. Decade is the
// floor of published_year to the nearest ten (1987 -> 1980).
type DecadeCount struct {
	Decade int `json:"decade" bson:"_id"`
	Count  int `json:"count" bson:"count"`
}
