package api

import (
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/vidrelay/api/handlers"
	"github.com/yourusername/vidrelay/api/middleware"
	"github.com/yourusername/vidrelay/internal/app"
	"github.com/yourusername/vidrelay/internal/domain"
	"github.com/yourusername/vidrelay/web"
)

// Services bundles what the HTTP layer depends on
type Services struct {
	Metadata  *app.MetadataService
	Downloads *app.DownloadService
	Lookups   *app.LookupService
}

// SetupRouter sets up the HTTP router
func SetupRouter(cfg *domain.ServerConfig, services Services, log *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS())

	requireKey := middleware.APIKey(cfg.APIKey, log)

	api := router.Group("/api")
	{
		healthHandler := handlers.NewHealthHandler(cfg.Environment)
		api.GET("/health", healthHandler.Health)

		metadataHandler := handlers.NewMetadataHandler(services.Metadata, services.Lookups, log)
		api.GET("/metadata", metadataHandler.GetMetadata)

		downloadHandler := handlers.NewDownloadHandler(services.Metadata, services.Downloads, services.Lookups, log)
		api.GET("/download", requireKey, downloadHandler.Download)

		lookupHandler := handlers.NewLookupHandler(services.Lookups, log)
		lookups := api.Group("/lookups", requireKey)
		{
			lookups.GET("", lookupHandler.ListLookups)
			lookups.GET("/stats", lookupHandler.GetStats)
		}
	}

	staticFS := web.GetStaticFS()

	router.GET("/", func(c *gin.Context) {
		serveFile(c, staticFS, "index.html")
	})

	// Serve all other routes with SPA routing
	router.NoRoute(func(c *gin.Context) {
		p := c.Request.URL.Path

		// Don't serve the client for API routes
		if strings.HasPrefix(p, "/api/") {
			c.JSON(http.StatusNotFound, handlers.ErrorResponse{Success: false, Error: "Not found."})
			return
		}

		filePath := strings.Trim(p, "/")
		if filePath != "" {
			if info, err := fs.Stat(staticFS, filePath); err == nil && !info.IsDir() {
				serveFile(c, staticFS, filePath)
				return
			}
		}

		// Fallback to index.html for client-side routing
		serveFile(c, staticFS, "index.html")
	})

	return router
}

var contentTypes = map[string]string{
	".html":  "text/html; charset=utf-8",
	".css":   "text/css; charset=utf-8",
	".js":    "application/javascript; charset=utf-8",
	".json":  "application/json; charset=utf-8",
	".png":   "image/png",
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".svg":   "image/svg+xml",
	".ico":   "image/x-icon",
	".woff2": "font/woff2",
	".txt":   "text/plain; charset=utf-8",
}

// serveFile serves a file from the embedded filesystem with proper content type
func serveFile(c *gin.Context, staticFS fs.FS, filePath string) {
	file, err := staticFS.Open(filePath)
	if err != nil {
		c.String(http.StatusNotFound, "File not found")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to read file")
		return
	}

	contentType, ok := contentTypes[strings.ToLower(path.Ext(filePath))]
	if !ok {
		contentType = "application/octet-stream"
	}
	c.Data(http.StatusOK, contentType, content)
}
