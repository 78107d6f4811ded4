package handlers

import (
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/PCB-faith-audi/mongodb-data-layer-fundamentals-and-advanced-techniques-PCB-faith-audi/internal/models"
	"github.com/PCB-faith-audi/mongodb-data-layer-fundamentals-and-advanced-techniques-PCB-faith-audi/internal/queries"
	"github.com/PCB-faith-audi/mongodb-data-layer-fundamentals-and-advanced-techniques-PCB-faith-audi/internal/utils"
)

type StatsHandler struct {
	BookCol *mongo.Collection
}

// GET /stats/avg-price-by-genre
func (h *StatsHandler) GetAvgPriceByGenre(w http.ResponseWriter, r *http.Request) {
	stats, err := queries.AvgPriceByGenre(r.Context(), h.BookCol)
	if err != nil {
		utils.JSONError(w, "Aggregation failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if stats == nil {
		stats = []models.GenreStats{}
	}
	json.NewEncoder(w).Encode(stats)
}

// GET /stats/top-author
func (h *StatsHandler) GetTopAuthor(w http.ResponseWriter, r *http.Request) {
	top, err := queries.AuthorWithMostBooks(r.Context(), h.BookCol)
	if err == mongo.ErrNoDocuments {
		utils.JSONError(w, "No books found", http.StatusNotFound)
		return
	}
	if err != nil {
		utils.JSONError(w, "Aggregation failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(top)
}

// GET /stats/by-decade
func (h *StatsHandler) GetByDecade(w http.ResponseWriter, r *http.Request) {
	decades, err := queries.GroupByDecade(r.Context(), h.BookCol)
	if err != nil {
		utils.JSONError(w, "Aggregation failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if decades == nil {
		decades = []models.DecadeCount{}
	}
	json.NewEncoder(w).Encode(decades)
}

// GET /stats/explain?title=
//
// Creates the two secondary indexes as a side effect.
func (h *StatsHandler) GetExplain(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if title == "" {
		title = "1984"
	}

	effect, err := queries.ExplainIndexEffect(r.Context(), h.BookCol, bson.M{"title": title})
	if err != nil {
		utils.JSONError(w, "Explain failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(effect)
}
