package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shelflife/shelflife/internal/circulation"
	"github.com/shelflife/shelflife/internal/database/transactions"
	"github.com/shelflife/shelflife/internal/database/users"
)

// CirculationController exposes the admin-side lending operations.
type CirculationController struct {
	service      *circulation.Service
	transactions *transactions.Repository
	users        *users.Repository
}

func NewCirculationController(service *circulation.Service, txRepo *transactions.Repository, userRepo *users.Repository) *CirculationController {
	return &CirculationController{
		service:      service,
		transactions: txRepo,
		users:        userRepo,
	}
}

type issueRequest struct {
	BookID string `json:"bookId"` // catalog code, not the record ID
	Admno  string `json:"admno"`
}

func (controller *CirculationController) IssueBook(c *gin.Context) {
	var req issueRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.BookID == "" || req.Admno == "" {
		respondBadRequest(c, "Book ID and Admission number are required")
		return
	}

	tx, err := controller.service.Issue(req.BookID, req.Admno)
	if err != nil {
		respondCirculationError(c, err, "issue book")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Book issued successfully",
		"transaction": tx,
	})
}

func (controller *CirculationController) ReturnBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	tx, err := controller.service.Return(id)
	if err != nil {
		respondCirculationError(c, err, "return book")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Book returned successfully",
		"transaction": tx,
	})
}

func (controller *CirculationController) RenewBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	tx, err := controller.service.Renew(id)
	if err != nil {
		respondCirculationError(c, err, "renew book")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Book renewed successfully",
		"transaction": tx,
	})
}

type addBookRequest struct {
	Title      string `json:"title"`
	TotalStock int    `json:"totalStock"`
}

func (controller *CirculationController) AddBook(c *gin.Context) {
	var req addBookRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" || req.TotalStock == 0 {
		respondBadRequest(c, "Title and Total Stock are required")
		return
	}

	book, err := controller.service.AddBook(req.Title, req.TotalStock)
	if err != nil {
		respondCirculationError(c, err, "add book")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Book added successfully",
		"book":    book,
	})
}

type updateStockRequest struct {
	NewStockTobeAdded int `json:"newStockTobeAdded"`
}

func (controller *CirculationController) UpdateBookStock(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.NewStockTobeAdded == 0 {
		respondBadRequest(c, "Book ID and New Stock are required")
		return
	}

	book, err := controller.service.RestockBook(id, req.NewStockTobeAdded)
	if err != nil {
		respondCirculationError(c, err, "update stock")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Book stock updated successfully",
		"book":    book,
	})
}

func (controller *CirculationController) GetAllTransactions(c *gin.Context) {
	txs, err := controller.transactions.GetAll()
	if err != nil {
		respondInternalError(c, err, "list transactions")
		return
	}
	c.JSON(http.StatusOK, txs)
}

func (controller *CirculationController) GetOverdueTransactions(c *gin.Context) {
	txs, err := controller.service.Overdue()
	if err != nil {
		respondInternalError(c, err, "list overdue")
		return
	}
	c.JSON(http.StatusOK, txs)
}

// GetAllUsers lists every registered member (admins excluded). Password
// hashes never serialize; the entity hides them from JSON.
func (controller *CirculationController) GetAllUsers(c *gin.Context) {
	members, err := controller.users.GetMembers()
	if err != nil {
		respondInternalError(c, err, "list users")
		return
	}
	c.JSON(http.StatusOK, members)
}
