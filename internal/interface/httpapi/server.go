package httpapi

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jaroslawmuzyka/content-ai-wordpress/internal/core/pipeline"
	"github.com/jaroslawmuzyka/content-ai-wordpress/internal/core/task"
	"github.com/jaroslawmuzyka/content-ai-wordpress/internal/platform/config"
)

// Server exposes the task table and the batch pipeline over HTTP for the
// table UI. Batch runs execute synchronously within the request.
type Server struct {
	cfg       config.HTTPConfig
	publisher config.WordPressConfig
	store     task.Repository
	pipeline  *pipeline.Pipeline
	runner    *pipeline.Runner
	log       *slog.Logger
}

// NewServer creates a Server. publisher holds the environment's default
// publishing credentials; request bodies may override them per call.
func NewServer(
	cfg config.HTTPConfig,
	publisher config.WordPressConfig,
	store task.Repository,
	p *pipeline.Pipeline,
	runner *pipeline.Runner,
	log *slog.Logger,
) *Server {
	return &Server{
		cfg:       cfg,
		publisher: publisher,
		store:     store,
		pipeline:  p,
		runner:    runner,
		log:       log,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.Use(passwordGate(s.cfg.AppPassword))
	{
		api.GET("/tasks", s.listTasks)
		api.POST("/tasks", s.createTask)
		api.PUT("/tasks/:id", s.updateTask)
		api.POST("/tasks/bulk", s.bulkSaveTasks)
		api.DELETE("/tasks", s.deleteTasks)
		api.POST("/run/:stage", s.runStage)
		api.POST("/publish", s.publishTasks)
	}

	return router
}

// Run starts the HTTP server and blocks until it exits.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.log.Info("http server listening", "addr", addr)
	return s.Router().Run(addr)
}
