package redirect

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mikepea/shortmark/pkg/shortmark/apperr"
	"github.com/mikepea/shortmark/pkg/shortmark/database"
	"github.com/mikepea/shortmark/pkg/shortmark/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenAndMigrate(database.Options{DSN: ":memory:"}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func createTestBookmark(t *testing.T, db *gorm.DB, code, url string) models.Bookmark {
	t.Helper()
	user := models.User{Username: "owner-" + code, Email: code + "@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	bookmark := models.Bookmark{UserID: user.ID, URL: url, ShortURL: code}
	require.NoError(t, db.Create(&bookmark).Error)
	return bookmark
}

func visits(t *testing.T, db *gorm.DB, id uint) uint {
	t.Helper()
	var b models.Bookmark
	require.NoError(t, db.First(&b, id).Error)
	return b.Visits
}

func setupTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	handler := NewHandler(NewResolver(db, nil, zap.NewNop()), zap.NewNop())
	handler.RegisterRoutes(r)
	return r
}

// memCache is an in-process Cache
type memCache struct {
	mu      sync.Mutex
	entries map[string]string
	gets    int
}

func newMemCache() *memCache {
	return &memCache{entries: map[string]string{}}
}

func (m *memCache) Get(_ context.Context, code string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	url, ok := m.entries[code]
	return url, ok, nil
}

func (m *memCache) Set(_ context.Context, code, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[code] = url
	return nil
}

func (m *memCache) Delete(_ context.Context, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, code)
	return nil
}

// brokenCache fails every call
type brokenCache struct{}

var errCacheDown = errors.New("connection refused")

func (brokenCache) Get(context.Context, string) (string, bool, error) { return "", false, errCacheDown }
func (brokenCache) Set(context.Context, string, string) error         { return errCacheDown }
func (brokenCache) Delete(context.Context, string) error              { return errCacheDown }

func TestResolveKnownCode(t *testing.T) {
	db := setupTestDB(t)
	b := createTestBookmark(t, db, "aB3", "https://example.com/target")
	r := NewResolver(db, nil, nil)

	for i := 1; i <= 3; i++ {
		url, err := r.Resolve(context.Background(), "aB3")
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/target", url)
		assert.EqualValues(t, i, visits(t, db, b.ID))
	}
}

func TestResolveUnknownCode(t *testing.T) {
	db := setupTestDB(t)
	createTestBookmark(t, db, "aB3", "https://example.com/target")
	r := NewResolver(db, nil, nil)

	for _, code := range []string{"zzz", "ab3", "toolong", "a-b", ""} {
		_, err := r.Resolve(context.Background(), code)
		var notFound *apperr.NotFoundError
		require.ErrorAs(t, err, &notFound, "code %q", code)
		assert.Equal(t, code, notFound.Key)
	}
}

func TestResolveConcurrentVisitsAreNotLost(t *testing.T) {
	db := setupTestDB(t)
	b := createTestBookmark(t, db, "xYz", "https://example.com/popular")
	r := NewResolver(db, nil, nil)

	const n = 50
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.Resolve(context.Background(), "xYz"); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Resolve failed: %v", err)
	}
	assert.EqualValues(t, n, visits(t, db, b.ID))
}

func TestResolvePopulatesAndRepairsCache(t *testing.T) {
	db := setupTestDB(t)
	b := createTestBookmark(t, db, "aB3", "https://example.com/target")
	c := newMemCache()
	r := NewResolver(db, c, nil)
	ctx := context.Background()

	_, err := r.Resolve(ctx, "aB3")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/target", c.entries["aB3"])

	// A disagreeing entry is never served and gets rewritten
	c.entries["aB3"] = "https://example.com/cached"
	url, err := r.Resolve(ctx, "aB3")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/target", url)
	assert.Equal(t, "https://example.com/target", c.entries["aB3"])
	assert.EqualValues(t, 2, visits(t, db, b.ID))
}

// editingCache changes the bookmark's URL while an old one is being
// cached, the way a concurrent edit landing between commit and Set would
type editingCache struct {
	*memCache
	db    *gorm.DB
	id    uint
	url   string
	fired bool
}

func (e *editingCache) Set(ctx context.Context, code, url string) error {
	if !e.fired {
		e.fired = true
		if err := e.db.Model(&models.Bookmark{}).Where("id = ?", e.id).Update("url", e.url).Error; err != nil {
			return err
		}
		_ = e.memCache.Delete(ctx, code)
	}
	return e.memCache.Set(ctx, code, url)
}

func TestResolveEditDuringCacheFillIsNotSticky(t *testing.T) {
	db := setupTestDB(t)
	b := createTestBookmark(t, db, "aB3", "https://example.com/old")
	c := &editingCache{memCache: newMemCache(), db: db, id: b.ID, url: "https://example.com/new"}
	r := NewResolver(db, c, nil)
	ctx := context.Background()

	first, err := r.Resolve(ctx, "aB3")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/old", first)
	assert.Equal(t, "https://example.com/old", c.entries["aB3"])

	second, err := r.Resolve(ctx, "aB3")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/new", second)
	assert.Equal(t, "https://example.com/new", c.entries["aB3"])
	assert.EqualValues(t, 2, visits(t, db, b.ID))
}

func TestResolveKeepsCacheOnDatabaseError(t *testing.T) {
	db := setupTestDB(t)
	createTestBookmark(t, db, "aB3", "https://example.com/target")
	c := newMemCache()
	c.entries["aB3"] = "https://example.com/target"
	r := NewResolver(db, c, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Resolve(ctx, "aB3")
	require.Error(t, err)
	assert.False(t, apperr.IsNotFound(err))
	assert.Equal(t, "https://example.com/target", c.entries["aB3"])
}

func TestResolveDropsStaleCacheEntry(t *testing.T) {
	db := setupTestDB(t)
	c := newMemCache()
	c.entries["gon"] = "https://example.com/deleted"
	r := NewResolver(db, c, nil)

	_, err := r.Resolve(context.Background(), "gon")
	assert.True(t, apperr.IsNotFound(err))
	_, ok := c.entries["gon"]
	assert.False(t, ok)
}

func TestResolveCacheErrorsAreMisses(t *testing.T) {
	db := setupTestDB(t)
	b := createTestBookmark(t, db, "aB3", "https://example.com/target")
	r := NewResolver(db, brokenCache{}, zap.NewNop())

	url, err := r.Resolve(context.Background(), "aB3")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/target", url)
	assert.EqualValues(t, 1, visits(t, db, b.ID))
}

func TestRedirectHandler(t *testing.T) {
	db := setupTestDB(t)
	b := createTestBookmark(t, db, "aB3", "https://example.com")
	router := setupTestRouter(db)

	req, _ := http.NewRequest("GET", "/aB3", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusFound {
		t.Errorf("Expected status 302, got %d", resp.Code)
	}
	if location := resp.Header().Get("Location"); location != "https://example.com" {
		t.Errorf("Expected Location 'https://example.com', got %s", location)
	}
	if v := visits(t, db, b.ID); v != 1 {
		t.Errorf("Expected 1 visit, got %d", v)
	}
}

func TestRedirectNotFound(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	req, _ := http.NewRequest("GET", "/nop", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", resp.Code)
	}
	if body := resp.Body.String(); body != `Short URL "nop" not found` {
		t.Errorf("Expected plain text not found message, got %q", body)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Errorf("Expected text/plain, got %s", ct)
	}
}

func TestRedirectDoesNotShadowStaticRoutes(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	req, _ := http.NewRequest("GET", "/api/health", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.Code)
	}
}
