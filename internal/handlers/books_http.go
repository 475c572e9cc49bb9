package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"example.com/bookstore/internal/model"
	"example.com/bookstore/internal/service"
)

type BooksHTTP struct {
	S service.CatalogService
}

func NewBooksHTTP(s service.CatalogService) *BooksHTTP { return &BooksHTTP{S: s} }

type bookJSON struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Genre       string  `json:"genre"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"image_url"`
}

func toBookJSON(b model.Book) bookJSON {
	return bookJSON{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Price:       price(b.PriceCents),
		Description: b.Description,
		Genre:       b.Genre,
		Stock:       b.Stock,
		ImageURL:    b.ImageURL,
	}
}

func (h *BooksHTTP) List(c *gin.Context) {
	books, err := h.S.ListBooks(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]bookJSON, 0, len(books))
	for _, b := range books {
		out = append(out, toBookJSON(b))
	}
	c.JSON(http.StatusOK, out)
}

func (h *BooksHTTP) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	b, err := h.S.GetBook(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookJSON(b))
}

type stockReq struct {
	Stock *int `json:"stock" binding:"required,min=0"`
}

// UpdateStock is an admin override; it ignores outstanding orders.
func (h *BooksHTTP) UpdateStock(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req stockReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.S.SetBookStock(c.Request.Context(), id, *req.Stock); err != nil {
		fail(c, err)
		return
	}
	message(c, http.StatusOK, "Book stock updated successfully")
}
