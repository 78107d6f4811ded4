package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/PCB-faith-audi/mongodb-data-layer-fundamentals-and-advanced-techniques-PCB-faith-audi/configs"
	"github.com/PCB-faith-audi/mongodb-data-layer-fundamentals-and-advanced-techniques-PCB-faith-audi/internal/db"
	"github.com/PCB-faith-audi/mongodb-data-layer-fundamentals-and-advanced-techniques-PCB-faith-audi/internal/handlers"
	"github.com/PCB-faith-audi/mongodb-data-layer-fundamentals-and-advanced-techniques-PCB-faith-audi/internal/middleware"
	"github.com/PCB-faith-audi/mongodb-data-layer-fundamentals-and-advanced-techniques-PCB-faith-audi/internal/queries"
	"github.com/PCB-faith-audi/mongodb-data-layer-fundamentals-and-advanced-techniques-PCB-faith-audi/internal/seed"
	"github.com/PCB-faith-audi/mongodb-data-layer-fundamentals-and-advanced-techniques-PCB-faith-audi/internal/utils"
)

func main() {
	cfg := configs.LoadConfig()

	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer logger.Sync()

	// run owns the connection so its deferred disconnect fires on every
	// exit path before the process terminates.
	if err := run(cfg, logger); err != nil {
		logger.Error("run failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg configs.Config, logger *zap.Logger) error {
	if err := db.Connect(cfg.MongoURI); err != nil {
		return err
	}
	defer func() {
		if err := db.Disconnect(); err != nil {
			logger.Error("disconnect failed", zap.Error(err))
		}
	}()

	books := db.GetCollection(cfg.DBName, cfg.CollectionName)

	switch cfg.RunMode {
	case configs.ModeSeed:
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		n, err := seed.Seed(ctx, books)
		if err != nil {
			return err
		}
		logger.Info("fixture books seeded",
			zap.String("database", cfg.DBName),
			zap.String("collection", cfg.CollectionName),
			zap.Int("count", n),
		)
		return nil

	case configs.ModeServe:
		return serve(cfg, books, logger)

	case configs.ModeDemo:
		return queries.NewRunner(books, logger).Run(context.Background())

	default:
		return fmt.Errorf("unknown RUN_MODE %q", cfg.RunMode)
	}
}

func serve(cfg configs.Config, books *mongo.Collection, logger *zap.Logger) error {
	r := mux.NewRouter()
	r.Use(middleware.JSONMiddleware)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "OK")
	})

	bookHandler := handlers.NewBookHandler(books)

	r.HandleFunc("/books", bookHandler.GetBooks).Methods("GET")
	r.HandleFunc("/books/in-stock", bookHandler.GetInStock).Methods("GET")
	r.HandleFunc("/books/sorted", bookHandler.GetSortedByPrice).Methods("GET")
	r.HandleFunc("/books/page", bookHandler.GetPage).Methods("GET")
	r.HandleFunc("/books/{title}/price", bookHandler.UpdatePrice).Methods("PATCH")
	r.HandleFunc("/books/{title}", bookHandler.DeleteBook).Methods("DELETE")

	statsHandler := handlers.StatsHandler{BookCol: books}

	r.HandleFunc("/stats/avg-price-by-genre", statsHandler.GetAvgPriceByGenre).Methods("GET")
	r.HandleFunc("/stats/top-author", statsHandler.GetTopAuthor).Methods("GET")
	r.HandleFunc("/stats/by-decade", statsHandler.GetByDecade).Methods("GET")
	r.HandleFunc("/stats/explain", statsHandler.GetExplain).Methods("GET")

	var server = http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("Server starting", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	logger.Info("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("Server shut down.")
	return nil
}
