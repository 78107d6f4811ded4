package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/PCB-faith-audi/mongodb-data-layer-fundamentals-and-advanced-techniques-PCB-faith-audi/internal/models"
	"github.com/PCB-faith-audi/mongodb-data-layer-fundamentals-and-advanced-techniques-PCB-faith-audi/internal/queries"
	"github.com/PCB-faith-audi/mongodb-data-layer-fundamentals-and-advanced-techniques-PCB-faith-audi/internal/utils"
)

type BookHandler struct {
	BookCollection *mongo.Collection
}

func NewBookHandler(bookColl *mongo.Collection) *BookHandler {
	return &BookHandler{BookCollection: bookColl}
}

// GET /books?genre=|author=|after=
func (h *BookHandler) GetBooks(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	q := r.URL.Query()

	switch {
	case q.Get("genre") != "":
		books, err := queries.FindByGenre(ctx, h.BookCollection, q.Get("genre"))
		writeBooks(w, books, err)
	case q.Get("author") != "":
		books, err := queries.FindByAuthor(ctx, h.BookCollection, q.Get("author"))
		writeBooks(w, books, err)
	case q.Get("after") != "":
		year, err := strconv.Atoi(q.Get("after"))
		if err != nil {
			utils.JSONError(w, "Invalid after year", http.StatusBadRequest)
			return
		}
		books, err := queries.FindPublishedAfter(ctx, h.BookCollection, year)
		writeBooks(w, books, err)
	default:
		books, err := queries.FindAll(ctx, h.BookCollection)
		writeBooks(w, books, err)
	}
}

// GET /books/in-stock?after=
func (h *BookHandler) GetInStock(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("after"))
	if err != nil {
		utils.JSONError(w, "Invalid after year", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	books, err := queries.InStockAfter(ctx, h.BookCollection, year)
	if err != nil {
		utils.JSONError(w, "Failed to fetch in-stock books: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if books == nil {
		books = []models.BookSummary{}
	}
	json.NewEncoder(w).Encode(books)
}

// GET /books/sorted?order=asc|desc
func (h *BookHandler) GetSortedByPrice(w http.ResponseWriter, r *http.Request) {
	order := queries.SortOrder(r.URL.Query().Get("order"))
	if order == "" {
		order = queries.SortAsc
	}
	if order != queries.SortAsc && order != queries.SortDesc {
		utils.JSONError(w, "Invalid order, want asc or desc", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	listings, err := queries.SortedByPrice(ctx, h.BookCollection, order)
	if err != nil {
		utils.JSONError(w, "Failed to fetch sorted books: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if listings == nil {
		listings = []models.PriceListing{}
	}
	json.NewEncoder(w).Encode(listings)
}

// GET /books/page?page=&size=
func (h *BookHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		utils.JSONError(w, "Invalid page, pages are 1-based", http.StatusBadRequest)
		return
	}
	size, err := strconv.Atoi(r.URL.Query().Get("size"))
	if err != nil || size < 1 {
		utils.JSONError(w, "Invalid size, must be at least 1", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	items, err := queries.GetPage(ctx, h.BookCollection, page, size)
	if err != nil {
		utils.JSONError(w, "Failed to fetch page: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []models.PageItem{}
	}
	json.NewEncoder(w).Encode(items)
}

// PATCH /books/{title}/price
func (h *BookHandler) UpdatePrice(w http.ResponseWriter, r *http.Request) {
	title := mux.Vars(r)["title"]

	var body struct {
		Price float64 `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.JSONError(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	outcome, err := queries.UpdatePrice(ctx, h.BookCollection, title, body.Price)
	if err != nil {
		utils.JSONError(w, "Update failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// A zero-match update is a valid outcome, only the counts are reported.
	json.NewEncoder(w).Encode(outcome)
}

// DELETE /books/{title}
func (h *BookHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	title := mux.Vars(r)["title"]

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	deleted, err := queries.DeleteByTitle(ctx, h.BookCollection, title)
	if err != nil {
		utils.JSONError(w, "Delete failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]int64{"deleted": deleted})
}

func writeBooks(w http.ResponseWriter, books []models.Book, err error) {
	if err != nil {
		utils.JSONError(w, "Failed to fetch books: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if books == nil {
		books = []models.Book{}
	}
	json.NewEncoder(w).Encode(books)
}
