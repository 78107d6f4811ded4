package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/PCB-faith-audi/mongodb-data-layer-fundamentals-and-advanced-techniques-PCB-faith-audi/internal/models"
)

const opTimeout = 5 * time.Second

// Demo catalog arguments. The fixture set seeded by internal/seed makes each
// of these return a non-trivial result.
const (
	demoGenre       = "Fiction"
	demoYear        = 1950
	demoAuthor      = "George Orwell"
	demoUpdateTitle = "1984"
	demoUpdatePrice = 12.49
	demoDeleteTitle = "Moby Dick"
	demoStockYear   = 2010
	demoPageSize    = 5
	demoProbeTitle  = "1984"
)

// Runner executes the fixed operation catalog sequentially against one
// collection, logging each result. The first failure aborts the rest.
type Runner struct {
	Books *mongo.Collection
	Log   *zap.Logger
}

func NewRunner(books *mongo.Collection, log *zap.Logger) *Runner {
	return &Runner{Books: books, Log: log}
}

// Run walks the whole catalog in order: the three filter finds, the price
// update, the delete, the projected queries, the three aggregation pipelines
// and the index-effect probe. Each operation is issued only after the
// previous result has been logged.
func (r *Runner) Run(ctx context.Context) error {
	log := r.Log.With(zap.String("run_id", uuid.NewString()))
	log.Info("starting query catalog",
		zap.String("collection", r.Books.Name()),
	)

	if err := r.runFinds(ctx, log); err != nil {
		return err
	}
	if err := r.runMutations(ctx, log); err != nil {
		return err
	}
	if err := r.runAdvancedQueries(ctx, log); err != nil {
		return err
	}
	if err := r.runAggregations(ctx, log); err != nil {
		return err
	}
	if err := r.runIndexProbe(ctx, log); err != nil {
		return err
	}

	log.Info("query catalog finished")
	return nil
}

func (r *Runner) runFinds(ctx context.Context, log *zap.Logger) error {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	byGenre, err := FindByGenre(opCtx, r.Books, demoGenre)
	if err != nil {
		return fmt.Errorf("findByGenre: %w", err)
	}
	log.Info("books by genre",
		zap.String("genre", demoGenre),
		zap.Int("count", len(byGenre)),
		zap.Strings("titles", bookTitles(byGenre)),
	)

	after, err := FindPublishedAfter(opCtx, r.Books, demoYear)
	if err != nil {
		return fmt.Errorf("findPublishedAfter: %w", err)
	}
	log.Info("books published after year",
		zap.Int("year", demoYear),
		zap.Int("count", len(after)),
		zap.Strings("titles", bookTitles(after)),
	)

	byAuthor, err := FindByAuthor(opCtx, r.Books, demoAuthor)
	if err != nil {
		return fmt.Errorf("findByAuthor: %w", err)
	}
	log.Info("books by author",
		zap.String("author", demoAuthor),
		zap.Int("count", len(byAuthor)),
		zap.Strings("titles", bookTitles(byAuthor)),
	)
	return nil
}

func (r *Runner) runMutations(ctx context.Context, log *zap.Logger) error {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	updated, err := UpdatePrice(opCtx, r.Books, demoUpdateTitle, demoUpdatePrice)
	if err != nil {
		return fmt.Errorf("updatePrice: %w", err)
	}
	log.Info("price updated",
		zap.String("title", demoUpdateTitle),
		zap.Float64("new_price", demoUpdatePrice),
		zap.Int64("matched", updated.Matched),
		zap.Int64("modified", updated.Modified),
	)

	deleted, err := DeleteByTitle(opCtx, r.Books, demoDeleteTitle)
	if err != nil {
		return fmt.Errorf("deleteByTitle: %w", err)
	}
	log.Info("book deleted",
		zap.String("title", demoDeleteTitle),
		zap.Int64("deleted", deleted),
	)
	return nil
}

func (r *Runner) runAdvancedQueries(ctx context.Context, log *zap.Logger) error {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	inStock, err := InStockAfter(opCtx, r.Books, demoStockYear)
	if err != nil {
		return fmt.Errorf("inStockAfter: %w", err)
	}
	log.Info("in-stock books after year",
		zap.Int("year", demoStockYear),
		zap.Int("count", len(inStock)),
	)

	for _, order := range []SortOrder{SortAsc, SortDesc} {
		listings, err := SortedByPrice(opCtx, r.Books, order)
		if err != nil {
			return fmt.Errorf("sortedByPrice(%s): %w", order, err)
		}
		log.Info("books sorted by price",
			zap.String("order", string(order)),
			zap.Int("count", len(listings)),
		)
	}

	for page := 1; ; page++ {
		items, err := GetPage(opCtx, r.Books, page, demoPageSize)
		if err != nil {
			return fmt.Errorf("getPage(%d): %w", page, err)
		}
		log.Info("page of books",
			zap.Int("page", page),
			zap.Int("page_size", demoPageSize),
			zap.Int("count", len(items)),
		)
		if len(items) < demoPageSize {
			break
		}
	}
	return nil
}

func (r *Runner) runAggregations(ctx context.Context, log *zap.Logger) error {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	genreStats, err := AvgPriceByGenre(opCtx, r.Books)
	if err != nil {
		return fmt.Errorf("avgPriceByGenre: %w", err)
	}
	for _, gs := range genreStats {
		log.Info("average price by genre",
			zap.String("genre", gs.Genre),
			zap.Float64("avg_price", gs.AvgPrice),
			zap.Int("count", gs.Count),
		)
	}

	top, err := AuthorWithMostBooks(opCtx, r.Books)
	if err != nil && err != mongo.ErrNoDocuments {
		return fmt.Errorf("authorWithMostBooks: %w", err)
	}
	if err == mongo.ErrNoDocuments {
		log.Info("author with most books: collection is empty")
	} else {
		log.Info("author with most books",
			zap.String("author", top.Author),
			zap.Int("count", top.Count),
		)
	}

	decades, err := GroupByDecade(opCtx, r.Books)
	if err != nil {
		return fmt.Errorf("groupByDecade: %w", err)
	}
	for _, dc := range decades {
		log.Info("books per decade",
			zap.Int("decade", dc.Decade),
			zap.Int("count", dc.Count),
		)
	}
	return nil
}

func (r *Runner) runIndexProbe(ctx context.Context, log *zap.Logger) error {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	effect, err := ExplainIndexEffect(opCtx, r.Books, bson.M{"title": demoProbeTitle})
	if err != nil {
		return fmt.Errorf("explainIndexEffect: %w", err)
	}

	log.Info("explain before indexes",
		zap.String("filter_title", demoProbeTitle),
		zap.Int64("n_returned", effect.Before.NReturned),
		zap.Int64("keys_examined", effect.Before.TotalKeysExamined),
		zap.Int64("docs_examined", effect.Before.TotalDocsExamined),
		zap.Int64("millis", effect.Before.ExecutionTimeMillis),
	)
	log.Info("explain after indexes",
		zap.Strings("indexes", effect.Indexes),
		zap.Int64("n_returned", effect.After.NReturned),
		zap.Int64("keys_examined", effect.After.TotalKeysExamined),
		zap.Int64("docs_examined", effect.After.TotalDocsExamined),
		zap.Int64("millis", effect.After.ExecutionTimeMillis),
	)
	return nil
}

func bookTitles(books []models.Book) []string {
	titles := make([]string, 0, len(books))
	for _, b := range books {
		titles = append(titles, b.Title)
	}
	return titles
}
