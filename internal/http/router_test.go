package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/shelflife/shelflife/internal/auth"
	"github.com/shelflife/shelflife/internal/circulation"
	"github.com/shelflife/shelflife/internal/config"
	"github.com/shelflife/shelflife/internal/database"
	"github.com/shelflife/shelflife/internal/entities"
)

const (
	testTokenSecret = "router-test-secret"
	testClientURL   = "http://localhost:5173"
)

type testServer struct {
	router *gin.Engine
	db     *database.Database
}

func setupTestServer(t *testing.T, circCfg config.Circulation) (*testServer, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	authCfg := config.Auth{
		TokenSecret: testTokenSecret,
		TokenExpiry: 24 * time.Hour,
		BcryptCost:  bcrypt.MinCost,
	}

	router := NewRouter(RouterConfig{
		Database:    db,
		AuthService: auth.NewService(db.DB, authCfg),
		Circulation: circulation.NewService(db.DB, circCfg),
		AuthConfig:  authCfg,
		ClientURL:   testClientURL,
		Version:     "test",
	})

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return &testServer{router: router, db: db}, cleanup
}

func (s *testServer) seedAdmin(t *testing.T) string {
	t.Helper()
	admin := &entities.User{
		Name: "Root", Email: "root@example.com", PasswordHash: "x",
		AdmissionNumber: "ADMIN-1", Branch: "administration", Semester: "-",
		Role: entities.UserRoleAdmin,
	}
	require.NoError(t, s.db.DB.Create(admin).Error)
	token, err := auth.CreateToken(admin, testTokenSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func (s *testServer) seedMember(t *testing.T, admno string) (*entities.User, string) {
	t.Helper()
	user := &entities.User{
		Name: "Member " + admno, Email: admno + "@example.com", PasswordHash: "x",
		AdmissionNumber: admno, Branch: "CS", Semester: "4",
		Role: entities.UserRoleMember,
	}
	require.NoError(t, s.db.DB.Create(user).Error)
	token, err := auth.CreateToken(user, testTokenSecret, time.Hour)
	require.NoError(t, err)
	return user, token
}

func (s *testServer) seedBook(t *testing.T, code, title string, stock int) *entities.Book {
	t.Helper()
	book := &entities.Book{CatalogCode: code, Title: title, CurrentStock: stock, TotalStock: stock}
	require.NoError(t, s.db.DB.Create(book).Error)
	return book
}

func (s *testServer) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// itoa renders a JSON-decoded numeric ID for use in a URL path.
func itoa(id float64) string {
	return strconv.FormatUint(uint64(id), 10)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
