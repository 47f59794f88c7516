package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shelflife/shelflife/internal/database/books"
)

type BooksController struct {
	books *books.Repository
}

func NewBooksController(repo *books.Repository) *BooksController {
	return &BooksController{books: repo}
}

func (controller *BooksController) GetAllBooks(c *gin.Context) {
	all, err := controller.books.GetAll()
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	c.JSON(http.StatusOK, all)
}
