package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelflife/shelflife/internal/config"
	"github.com/shelflife/shelflife/internal/entities"
)

func TestCirculationEndpoints_AdminGate(t *testing.T) {
	srv, cleanup := setupTestServer(t, config.Circulation{})
	defer cleanup()

	_, memberToken := srv.seedMember(t, "ADM001")

	t.Run("no token", func(t *testing.T) {
		w := srv.request(t, "POST", "/v1/api/transactions", "", map[string]any{})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("member token is forbidden", func(t *testing.T) {
		w := srv.request(t, "POST", "/v1/api/transactions", memberToken, map[string]any{})
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = srv.request(t, "GET", "/v1/api/transactions", memberToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestCirculationEndpoints_IssueReturnLifecycle(t *testing.T) {
	srv, cleanup := setupTestServer(t, config.Circulation{})
	defer cleanup()

	adminToken := srv.seedAdmin(t)
	srv.seedMember(t, "ADM001")
	book := srv.seedBook(t, "BK-AAAA1111", "X", 1)

	// Issue the last copy.
	w := srv.request(t, "POST", "/v1/api/transactions", adminToken, map[string]any{
		"bookId": book.CatalogCode,
		"admno":  "ADM001",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	tx, ok := body["transaction"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "issued", tx["status"])
	// Associations were not loaded, so no empty objects in the payload.
	assert.NotContains(t, tx, "book")
	assert.NotContains(t, tx, "user")
	txID := tx["id"].(float64)

	var after entities.Book
	require.NoError(t, srv.db.DB.First(&after, book.ID).Error)
	assert.Equal(t, 0, after.CurrentStock)
	assert.False(t, after.IsAvailable)

	// Issuing again before any return is a 400.
	w = srv.request(t, "POST", "/v1/api/transactions", adminToken, map[string]any{
		"bookId": book.CatalogCode,
		"admno":  "ADM001",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "not available")

	// Return restores the stock.
	w = srv.request(t, "PUT", "/v1/api/transactions/return/"+itoa(txID), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body = decodeBody(t, w)
	tx, ok = body["transaction"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "returned", tx["status"])
	assert.NotNil(t, tx["return_date"])

	require.NoError(t, srv.db.DB.First(&after, book.ID).Error)
	assert.Equal(t, 1, after.CurrentStock)
	assert.True(t, after.IsAvailable)
}

func TestCirculationEndpoints_Issue_Validation(t *testing.T) {
	srv, cleanup := setupTestServer(t, config.Circulation{})
	defer cleanup()

	adminToken := srv.seedAdmin(t)
	srv.seedMember(t, "ADM001")
	srv.seedBook(t, "BK-AAAA1111", "X", 1)

	t.Run("missing fields", func(t *testing.T) {
		w := srv.request(t, "POST", "/v1/api/transactions", adminToken, map[string]any{"bookId": "BK-AAAA1111"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Book ID and Admission number are required")
	})

	t.Run("unknown book", func(t *testing.T) {
		w := srv.request(t, "POST", "/v1/api/transactions", adminToken, map[string]any{
			"bookId": "BK-DEADBEEF", "admno": "ADM001",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "book not found")
	})

	t.Run("unknown user", func(t *testing.T) {
		w := srv.request(t, "POST", "/v1/api/transactions", adminToken, map[string]any{
			"bookId": "BK-AAAA1111", "admno": "NOPE",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "user not found")
	})
}

func TestCirculationEndpoints_Renew(t *testing.T) {
	srv, cleanup := setupTestServer(t, config.Circulation{})
	defer cleanup()

	adminToken := srv.seedAdmin(t)
	srv.seedMember(t, "ADM001")
	book := srv.seedBook(t, "BK-AAAA1111", "X", 1)

	w := srv.request(t, "POST", "/v1/api/transactions", adminToken, map[string]any{
		"bookId": book.CatalogCode, "admno": "ADM001",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	txID := decodeBody(t, w)["transaction"].(map[string]any)["id"].(float64)

	w = srv.request(t, "PUT", "/v1/api/transactions/renew/"+itoa(txID), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "renewed")

	// Stock untouched by renewal.
	var after entities.Book
	require.NoError(t, srv.db.DB.First(&after, book.ID).Error)
	assert.Equal(t, 0, after.CurrentStock)

	t.Run("unknown transaction", func(t *testing.T) {
		w := srv.request(t, "PUT", "/v1/api/transactions/renew/9999", adminToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCirculationEndpoints_StrictTransitions(t *testing.T) {
	srv, cleanup := setupTestServer(t, config.Circulation{StrictTransitions: true})
	defer cleanup()

	adminToken := srv.seedAdmin(t)
	srv.seedMember(t, "ADM001")
	book := srv.seedBook(t, "BK-AAAA1111", "X", 1)

	w := srv.request(t, "POST", "/v1/api/transactions", adminToken, map[string]any{
		"bookId": book.CatalogCode, "admno": "ADM001",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	txID := decodeBody(t, w)["transaction"].(map[string]any)["id"].(float64)

	w = srv.request(t, "PUT", "/v1/api/transactions/return/"+itoa(txID), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = srv.request(t, "PUT", "/v1/api/transactions/renew/"+itoa(txID), adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already returned")
}

func TestCirculationEndpoints_AddBookAndRestock(t *testing.T) {
	srv, cleanup := setupTestServer(t, config.Circulation{})
	defer cleanup()

	adminToken := srv.seedAdmin(t)

	w := srv.request(t, "POST", "/v1/api/transactions/add", adminToken, map[string]any{
		"title": "Dune", "totalStock": 3,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	book, ok := body["book"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Dune", book["title"])
	assert.Equal(t, float64(3), book["currentStock"])
	assert.NotEmpty(t, book["bookId"])
	bookID := book["id"].(float64)

	t.Run("missing fields", func(t *testing.T) {
		w := srv.request(t, "POST", "/v1/api/transactions/add", adminToken, map[string]any{"title": "Dune"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Title and Total Stock are required")
	})

	t.Run("restock raises both counters", func(t *testing.T) {
		w := srv.request(t, "PUT", "/v1/api/transactions/"+itoa(bookID), adminToken, map[string]any{
			"newStockTobeAdded": 2,
		})
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		book := body["book"].(map[string]any)
		assert.Equal(t, float64(5), book["currentStock"])
		assert.Equal(t, float64(5), book["totalStock"])
	})

	t.Run("restock unknown book", func(t *testing.T) {
		w := srv.request(t, "PUT", "/v1/api/transactions/9999", adminToken, map[string]any{
			"newStockTobeAdded": 2,
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("restock without amount", func(t *testing.T) {
		w := srv.request(t, "PUT", "/v1/api/transactions/"+itoa(bookID), adminToken, map[string]any{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCirculationEndpoints_Overdue(t *testing.T) {
	srv, cleanup := setupTestServer(t, config.Circulation{})
	defer cleanup()

	adminToken := srv.seedAdmin(t)
	user, _ := srv.seedMember(t, "ADM001")
	book := srv.seedBook(t, "BK-AAAA1111", "Dune", 1)

	past := time.Now().AddDate(0, -2, 0)
	require.NoError(t, srv.db.DB.Create(&entities.Transaction{
		BookID:    book.ID,
		UserID:    user.ID,
		IssueDate: past,
		DueDate:   past.AddDate(0, 1, 0),
		Status:    entities.TransactionStatusIssued,
	}).Error)

	w := srv.request(t, "GET", "/v1/api/transactions/overdue", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Dune")
	assert.Contains(t, w.Body.String(), "ADM001")
}

func TestCirculationEndpoints_Listings(t *testing.T) {
	srv, cleanup := setupTestServer(t, config.Circulation{})
	defer cleanup()

	adminToken := srv.seedAdmin(t)
	user, memberToken := srv.seedMember(t, "ADM001")
	book := srv.seedBook(t, "BK-AAAA1111", "Dune", 2)

	w := srv.request(t, "POST", "/v1/api/transactions", adminToken, map[string]any{
		"bookId": book.CatalogCode, "admno": "ADM001",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("transactions include book and user, password never leaks", func(t *testing.T) {
		w := srv.request(t, "GET", "/v1/api/transactions", adminToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Dune")
		assert.Contains(t, w.Body.String(), "ADM001")
		assert.NotContains(t, w.Body.String(), "password")
	})

	t.Run("user listing excludes admins", func(t *testing.T) {
		w := srv.request(t, "GET", "/v1/api/transactions/all", adminToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "ADM001")
		assert.NotContains(t, w.Body.String(), "root@example.com")
	})

	t.Run("books visible to any authenticated user", func(t *testing.T) {
		w := srv.request(t, "GET", "/v1/api/books", memberToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Dune")

		w = srv.request(t, "GET", "/v1/api/books", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("own history", func(t *testing.T) {
		w := srv.request(t, "GET", "/v1/api/user/"+itoa(float64(user.ID)), memberToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Dune")
	})

	t.Run("history for user with no loans is 404", func(t *testing.T) {
		other, otherToken := srv.seedMember(t, "ADM002")
		w := srv.request(t, "GET", "/v1/api/user/"+itoa(float64(other.ID)), otherToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
