package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"seoAnalyzerGO/internal/analyzer"
	"seoAnalyzerGO/internal/config"
	"seoAnalyzerGO/internal/middleware"
	"seoAnalyzerGO/internal/models"
	"seoAnalyzerGO/internal/repository"
)

// Server represents the HTTP server
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	repo       repository.Repository
	service    *analyzer.Service
	logger     *slog.Logger
	config     *config.Config
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, repo repository.Repository, logger *slog.Logger) *Server {
	if gin.Mode() == gin.DebugMode {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	limiter := middleware.NewRateLimiter(cfg.RateLimit)
	router.Use(limiter.RateLimit())

	s := &Server{
		router: router,
		httpServer: &http.Server{
			Addr:         ":" + cfg.Server.Port,
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
		repo:    repo,
		service: analyzer.NewService(cfg, logger),
		logger:  logger,
		config:  cfg,
	}

	s.registerRoutes()

	return s
}

// Start starts the HTTP server
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// registerRoutes sets up all the routes for the server
func (s *Server) registerRoutes() {
	// Health check
	s.router.GET("/health", s.healthHandler)

	api := s.router.Group("/api")
	{
		// Run an analysis
		api.POST("/analyze", s.analyzeURLHandler)

		// Get analysis by ID
		api.GET("/analysis/:id", s.getAnalysisHandler)

		// Get recent analyses
		api.GET("/analyses", s.getRecentAnalysesHandler)

		// Get analysis history for one website
		api.GET("/site/analyses", s.getSiteAnalysesHandler)
	}
}

// healthHandler handles health check requests
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// analyzeURLHandler handles requests to analyze a URL
func (s *Server) analyzeURLHandler(c *gin.Context) {
	var req models.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request",
			Error:      err.Error(),
		})
		return
	}

	// Crawls and rendered fetches can run well past a single page fetch,
	// so the handler budget scales with the requested work.
	timeout := s.config.Analyzer.RequestTimeout
	if req.Options.RenderJS {
		timeout += s.config.Analyzer.RenderTimeout
	}
	if req.Options.CrawlEnabled {
		pages := req.Options.MaxCrawlPages
		if pages <= 0 {
			pages = s.config.Crawler.DefaultMaxPages
		}
		timeout += time.Duration(pages) * s.config.Analyzer.RequestTimeout
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
	defer cancel()

	s.logger.Info("Analyzing URL", "url", req.URL, "crawl", req.Options.CrawlEnabled)
	result, err := s.service.Analyze(ctx, req.URL, req.Options)
	if err != nil {
		s.logger.Error("Failed to analyze URL", "url", req.URL, "error", err)
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    fmt.Sprintf("Failed to analyze URL: %s", req.URL),
			Error:      err.Error(),
		})
		return
	}

	// Save analysis to database
	if err := s.repo.SaveAnalysis(ctx, result); err != nil {
		s.logger.Error("Failed to save analysis", "error", err)
		// Continue anyway, just log the error
	}

	c.JSON(http.StatusOK, result)
}

// getAnalysisHandler handles requests to get an analysis by ID
func (s *Server) getAnalysisHandler(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    "Missing analysis ID",
		})
		return
	}

	ctx := c.Request.Context()
	result, err := s.repo.GetAnalysis(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get analysis", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Message:    "Failed to get analysis",
			Error:      err.Error(),
		})
		return
	}

	if result == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			StatusCode: http.StatusNotFound,
			Message:    "Analysis not found",
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// getRecentAnalysesHandler handles requests to get recent analyses
func (s *Server) getRecentAnalysesHandler(c *gin.Context) {
	limit := parseLimit(c.Query("limit"))

	ctx := c.Request.Context()
	results, err := s.repo.GetRecentAnalyses(ctx, limit)
	if err != nil {
		s.logger.Error("Failed to get recent analyses", "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Message:    "Failed to get recent analyses",
			Error:      err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":    len(results),
		"analyses": results,
	})
}

// getSiteAnalysesHandler handles requests for one website's analysis history
func (s *Server) getSiteAnalysesHandler(c *gin.Context) {
	website := c.Query("website")
	if website == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    "Missing website parameter",
		})
		return
	}
	limit := parseLimit(c.Query("limit"))

	ctx := c.Request.Context()
	results, err := s.repo.GetSiteAnalyses(ctx, website, limit)
	if err != nil {
		s.logger.Error("Failed to get site analyses", "website", website, "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Message:    "Failed to get site analyses",
			Error:      err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"website":  website,
		"count":    len(results),
		"analyses": results,
	})
}

// parseLimit reads a limit query parameter, defaulting to 10 and capping at 100
func parseLimit(param string) int {
	limit := 10
	if param != "" {
		if n, err := fmt.Sscanf(param, "%d", &limit); err != nil || n != 1 {
			limit = 10
		}
	}
	if limit > 100 {
		limit = 100
	}
	if limit <= 0 {
		limit = 10
	}
	return limit
}
