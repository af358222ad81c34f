package handler

import (
	"net/http"
	"slices"

	"github.com/Aashish23092/ficha-financeira/dto"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/time/rate"
)

type RouterOptions struct {
	UploadRate  rate.Limit
	UploadBurst int
	// Metrics is served on /metrics when set.
	Metrics prometheus.Gatherer
}

func NewRouter(fichaHandler *FichaHandler, opts RouterOptions) *gin.Engine {
	router := gin.Default()

	// Configure max multipart memory (32 MB)
	router.MaxMultipartMemory = 32 << 20

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Ficha Financeira Extraction",
		})
	})

	router.GET("/", fichaHandler.Root)
	router.POST("/upload-ficha", RateLimit(opts.UploadRate, opts.UploadBurst), fichaHandler.UploadFicha)
	router.GET("/fichaFinanceiraJson", fichaHandler.GetLastFicha)

	fichas := router.Group("/fichas")
	{
		fichas.GET("/:id", fichaHandler.GetFicha)
		fichas.GET("/:id/export", fichaHandler.ExportFicha)
	}

	if opts.Metrics != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Metrics, promhttp.HandlerOpts{})))
	}

	return router
}

// RateLimit rejects requests beyond the shared token bucket with 429.
func RateLimit(limit rate.Limit, burst int) gin.HandlerFunc {
	limiter := rate.NewLimiter(limit, burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error:   "RATE_LIMITED",
				Message: "Too many uploads, try again later",
				Code:    http.StatusTooManyRequests,
			})
			return
		}
		c.Next()
	}
}

// WithCORS wraps h with a CORS policy for the given origins. Credentials are
// only allowed for an explicit origin list.
func WithCORS(h http.Handler, origins []string) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: !slices.Contains(origins, "*"),
	}).Handler(h)
}
