package importexport

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikepea/shortmark/pkg/shortmark/auth"
	"github.com/mikepea/shortmark/pkg/shortmark/bookmarks"
	"github.com/mikepea/shortmark/pkg/shortmark/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var testTokens = auth.NewTokens("test-secret", time.Hour)

func setupTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewHandler(bookmarks.NewStore(db), zap.NewNop())
	handler.RegisterRoutes(r.Group("/api", auth.AuthMiddleware(testTokens)))
	return r
}

func serve(router *gin.Engine, user models.User, method, path string, body []byte) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	token, _ := testTokens.Generate(user.ID, user.Username)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func importPins(t *testing.T, router *gin.Engine, user models.User, pins []Pin) ImportResult {
	jsonBody, _ := json.Marshal(ImportRequest{Bookmarks: pins})
	resp := serve(router, user, "POST", "/api/bookmarks/import", jsonBody)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var result ImportResult
	json.Unmarshal(resp.Body.Bytes(), &result)
	return result
}

func TestImportEndpoint(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "tester")

	result := importPins(t, router, user, []Pin{
		{Href: "https://example.com", Time: "2024-01-15T10:30:00Z"},
		{Href: "ftp://example.com"},
	})

	if result.Imported != 1 || result.Skipped != 1 {
		t.Errorf("Expected 1 imported and 1 skipped, got %+v", result)
	}
	if len(result.Errors) != 1 || result.Errors[0] != "bookmark 1: Enter a valid url" {
		t.Errorf("Unexpected errors %v", result.Errors)
	}
}

func TestImportEndpointRequiresBookmarks(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "tester")

	resp := serve(router, user, "POST", "/api/bookmarks/import", []byte(`{}`))
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", resp.Code)
	}
}

func TestExportEndpoint(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "tester")
	other := createTestUser(t, db, "other")

	importPins(t, router, user, []Pin{
		{Href: "https://example.com/1", Extended: "first"},
		{Href: "https://example.com/2"},
	})
	importPins(t, router, other, []Pin{{Href: "https://example.com/theirs"}})

	resp := serve(router, user, "GET", "/api/bookmarks/export", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var exported []Pin
	json.Unmarshal(resp.Body.Bytes(), &exported)

	if len(exported) != 2 {
		t.Fatalf("Expected 2 bookmarks, got %d", len(exported))
	}
	if exported[0].Href != "https://example.com/1" || exported[0].Extended != "first" {
		t.Errorf("Unexpected first bookmark %+v", exported[0])
	}
	if len(exported[0].Description) != 3 {
		t.Errorf("Expected short code as description, got %q", exported[0].Description)
	}
}

func TestExportEndpointEmpty(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "tester")

	resp := serve(router, user, "GET", "/api/bookmarks/export", nil)
	if body := resp.Body.String(); body != "[]" {
		t.Errorf("Expected empty array, got %s", body)
	}
}
