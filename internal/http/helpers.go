package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shelflife/shelflife/internal/circulation"
)

// --- Response Types ---

// MessageResponse is the standard envelope for error and status messages.
type MessageResponse struct {
	Message string `json:"message"`
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, MessageResponse{Message: message})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, MessageResponse{Message: message})
}

// respondInternalError logs the error and sends a 500 with a generic
// message; the actual error is never exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, MessageResponse{Message: "Server error"})
}

// respondCirculationError maps circulation sentinels to status codes:
// missing records are 404, violated preconditions and bad input are 400,
// anything else is a logged 500.
func respondCirculationError(c *gin.Context, err error, context string) {
	switch {
	case errors.Is(err, circulation.ErrBookNotFound),
		errors.Is(err, circulation.ErrUserNotFound),
		errors.Is(err, circulation.ErrTransactionNotFound):
		respondNotFound(c, err.Error())
	case errors.Is(err, circulation.ErrMissingIssueInput),
		errors.Is(err, circulation.ErrMissingBookInput),
		errors.Is(err, circulation.ErrInvalidStock),
		errors.Is(err, circulation.ErrBookUnavailable),
		errors.Is(err, circulation.ErrTransactionClosed):
		respondBadRequest(c, err.Error())
	default:
		respondInternalError(c, err, context)
	}
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL
// parameters. Responds with a 400 and returns false on failure.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}
