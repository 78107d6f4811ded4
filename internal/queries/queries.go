package queries

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/PCB-faith-audi/mongodb-data-layer-fundamentals-and-advanced-techniques-PCB-faith-audi/internal/models"
)

// SortOrder selects the direction of the sorted price listing.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// FindAll returns every book in the collection.
func FindAll(ctx context.Context, coll *mongo.Collection) ([]models.Book, error) {
	return findBooks(ctx, coll, bson.M{})
}

// FindByGenre returns every book whose genre field equals genre.
func FindByGenre(ctx context.Context, coll *mongo.Collection, genre string) ([]models.Book, error) {
	return findBooks(ctx, coll, bson.M{"genre": genre})
}

// FindPublishedAfter returns every book with published_year strictly greater
// than year.
func FindPublishedAfter(ctx context.Context, coll *mongo.Collection, year int) ([]models.Book, error) {
	return findBooks(ctx, coll, bson.M{"published_year": bson.M{"$gt": year}})
}

// FindByAuthor returns every book whose author field equals author.
func FindByAuthor(ctx context.Context, coll *mongo.Collection, author string) ([]models.Book, error) {
	return findBooks(ctx, coll, bson.M{"author": author})
}

// InStockAfter returns in-stock books published strictly after year, projected
// to title, author and price with the identifier suppressed.
func InStockAfter(ctx context.Context, coll *mongo.Collection, year int) ([]models.BookSummary, error) {
	filter := bson.M{
		"in_stock":       true,
		"published_year": bson.M{"$gt": year},
	}
	opts := options.Find().SetProjection(bson.M{
		"title":  1,
		"author": 1,
		"price":  1,
		"_id":    0,
	})

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find in-stock after %d: %w", year, err)
	}
	defer cursor.Close(ctx)

	var books []models.BookSummary
	if err := cursor.All(ctx, &books); err != nil {
		return nil, fmt.Errorf("decode in-stock books: %w", err)
	}
	return books, nil
}

// SortedByPrice returns every book projected to title and price, ordered by
// price in the given direction. Order among equal prices is whatever the
// server emits; it is not specified.
func SortedByPrice(ctx context.Context, coll *mongo.Collection, order SortOrder) ([]models.PriceListing, error) {
	var direction int
	switch order {
	case SortAsc:
		direction = 1
	case SortDesc:
		direction = -1
	default:
		return nil, fmt.Errorf("invalid sort order %q: want %q or %q", order, SortAsc, SortDesc)
	}

	opts := options.Find().
		SetProjection(bson.M{"title": 1, "price": 1, "_id": 0}).
		SetSort(bson.D{{Key: "price", Value: direction}})

	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find sorted by price: %w", err)
	}
	defer cursor.Close(ctx)

	var listings []models.PriceListing
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, fmt.Errorf("decode price listings: %w", err)
	}
	return listings, nil
}

// GetPage returns one page of books projected to title and author. Pages are
// 1-based: page p with size s skips (p-1)*s documents and takes s. Page and
// pageSize below 1 are rejected before any round trip.
func GetPage(ctx context.Context, coll *mongo.Collection, page, pageSize int) ([]models.PageItem, error) {
	if page < 1 {
		return nil, fmt.Errorf("invalid page %d: pages are 1-based", page)
	}
	if pageSize < 1 {
		return nil, fmt.Errorf("invalid page size %d: must be at least 1", pageSize)
	}

	opts := options.Find().
		SetProjection(bson.M{"title": 1, "author": 1, "_id": 0}).
		SetSkip(int64(page-1) * int64(pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find page %d: %w", page, err)
	}
	defer cursor.Close(ctx)

	var items []models.PageItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode page %d: %w", page, err)
	}
	return items, nil
}

func findBooks(ctx context.Context, coll *mongo.Collection, filter bson.M) ([]models.Book, error) {
	cursor, err := coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find books: %w", err)
	}
	defer cursor.Close(ctx)

	var books []models.Book
	if err := cursor.All(ctx, &books); err != nil {
		return nil, fmt.Errorf("decode books: %w", err)
	}
	return books, nil
}
