package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shelflife/shelflife/internal/database/transactions"
)

type UsersController struct {
	transactions *transactions.Repository
}

func NewUsersController(txRepo *transactions.Repository) *UsersController {
	return &UsersController{transactions: txRepo}
}

// GetUserHistory returns a user's lending history. An empty history is
// a 404, matching the behavior clients already depend on.
func (controller *UsersController) GetUserHistory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	txs, err := controller.transactions.GetByUserID(id)
	if err != nil {
		respondInternalError(c, err, "user history")
		return
	}
	if len(txs) == 0 {
		respondNotFound(c, "No transactions found for this user")
		return
	}

	c.JSON(http.StatusOK, txs)
}
