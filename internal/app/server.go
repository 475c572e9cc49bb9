package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"example.com/bookstore/internal/handlers"
	"example.com/bookstore/internal/service"
)

// NewServer opens the database, seeds an empty catalog and builds the
// router. cleanup closes the database.
func NewServer(cfg Config) (*gin.Engine, func(), error) {
	db, err := OpenDB(cfg, nil)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { CloseDB(db) }

	n, err := service.NewCatalogService(db).SeedCatalog(context.Background())
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	if n > 0 {
		log.Printf("seeded catalog with %d books", n)
	}

	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	return NewRouter(cfg, db, service.NewEmailService(cfg.SMTP)), cleanup, nil
}

// NewRouter wires services and routes on an existing connection.
func NewRouter(cfg Config, db *gorm.DB, email service.EmailService) *gin.Engine {
	r := gin.Default()
	r.Use(requestID())
	r.Use(corsMiddleware(cfg.CORSOrigins))

	books := handlers.NewBooksHTTP(service.NewCatalogService(db))
	orders := handlers.NewOrdersHTTP(service.NewOrderService(db, email))

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	api := r.Group("/api")
	api.GET("/books", books.List)
	api.GET("/books/:id", books.Get)
	api.PUT("/books/:id/stock", books.UpdateStock)

	api.POST("/orders", orders.Create)
	api.GET("/orders", orders.List)
	api.GET("/orders/:id", orders.Get)
	api.PUT("/orders/:id/status", orders.UpdateStatus)

	r.GET("/", func(c *gin.Context) { c.File(filepath.Join(cfg.StaticDir, "index.html")) })

	// frontend assets live next to index.html, so anything that is not an
	// API route is looked up in the static directory
	r.NoRoute(func(c *gin.Context) {
		p := c.Request.URL.Path
		if strings.HasPrefix(p, "/api/") || c.Request.Method != http.MethodGet {
			c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
			return
		}
		f := filepath.Join(cfg.StaticDir, filepath.Clean("/"+p))
		if st, err := os.Stat(f); err != nil || st.IsDir() {
			c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
			return
		}
		c.File(f)
	})

	return r
}

const requestIDHeader = "X-Request-ID"

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cc := cors.DefaultConfig()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = origins
	}
	cc.AllowHeaders = append(cc.AllowHeaders, requestIDHeader)
	cc.ExposeHeaders = []string{requestIDHeader}
	return cors.New(cc)
}
