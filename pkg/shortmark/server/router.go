// Package server wires the HTTP handlers into one router and runs it.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikepea/shortmark/pkg/shortmark/apikeys"
	"github.com/mikepea/shortmark/pkg/shortmark/auth"
	"github.com/mikepea/shortmark/pkg/shortmark/bookmarks"
	"github.com/mikepea/shortmark/pkg/shortmark/cache"
	"github.com/mikepea/shortmark/pkg/shortmark/importexport"
	"github.com/mikepea/shortmark/pkg/shortmark/logging"
	"github.com/mikepea/shortmark/pkg/shortmark/redirect"
	"github.com/mikepea/shortmark/pkg/shortmark/shortcode"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/mikepea/shortmark/api/swagger"
)

// Deps are the components the router is built from
type Deps struct {
	DB                *gorm.DB
	Tokens            *auth.Tokens
	Cache             cache.Cache
	Generator         *shortcode.Generator
	MaxInsertAttempts int
	Log               *zap.Logger
	Swagger           bool
	// BaseURL is the public origin short links are reported under
	BaseURL string
}

// NewRouter registers every route. The public redirect route is
// registered last so it never shadows the API.
func NewRouter(d Deps) *gin.Engine {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	c := d.Cache
	if c == nil {
		c = cache.Nop{}
	}

	r := gin.New()
	r.Use(logging.Middleware(log.Named("http")), gin.Recovery())

	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "shortmark"})
	}
	r.GET("/health", health)

	if d.Swagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.GET("/api/health", health)

	store := bookmarks.NewStore(d.DB,
		bookmarks.WithGenerator(d.Generator),
		bookmarks.WithCache(c),
		bookmarks.WithLogger(log.Named("bookmarks")),
		bookmarks.WithMaxInsertAttempts(d.MaxInsertAttempts),
	)

	api := r.Group("/api/v1")
	{
		authHandler := auth.NewHandler(d.DB, d.Tokens, log.Named("auth"))
		authHandler.RegisterRoutes(api.Group("/auth"))

		keyring := apikeys.NewKeyring(d.DB, log.Named("apikeys"))
		combinedAuth := apikeys.CombinedAuthMiddleware(keyring, d.Tokens, log.Named("apikeys"))

		// Managing keys needs a JWT; everything else also takes an API key
		apiKeysHandler := apikeys.NewHandler(keyring, log.Named("apikeys"))
		apiKeysHandler.RegisterRoutes(api.Group("", auth.AuthMiddleware(d.Tokens)))

		protected := api.Group("", combinedAuth)

		importExportHandler := importexport.NewHandler(store, log.Named("importexport"))
		importExportHandler.RegisterRoutes(protected)

		bookmarksHandler := bookmarks.NewHandler(store, d.BaseURL, log.Named("bookmarks"))
		bookmarksHandler.RegisterRoutes(protected)
	}

	// Public short code redirect
	resolver := redirect.NewResolver(d.DB, c, log.Named("redirect"))
	redirectHandler := redirect.NewHandler(resolver, log.Named("redirect"))
	redirectHandler.RegisterRoutes(r)

	return r
}
