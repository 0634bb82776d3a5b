// Package server публикует инструменты симулятора по HTTP.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apperrors "github.com/cloud-ru/mcp-wealth-sim/internal/errors"
	"github.com/cloud-ru/mcp-wealth-sim/internal/metrics"
	"github.com/cloud-ru/mcp-wealth-sim/internal/tools"
)

// Server связывает реестр инструментов с HTTP-маршрутами
type Server struct {
	registry *tools.Registry
	log      *zap.SugaredLogger
}

// New создает сервер
func New(registry *tools.Registry, log *zap.SugaredLogger) *Server {
	return &Server{registry: registry, log: log}
}

// Router возвращает настроенный gin.Engine
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogging(s.log))
	router.Use(ErrorHandler(s.log))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	v1.GET("/tools", s.listTools)
	v1.POST("/tools/:name", s.callTool)

	return router
}

func (s *Server) listTools(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tools": s.registry.List()})
}

func (s *Server) callTool(c *gin.Context) {
	name := c.Param("name")

	params := map[string]interface{}{}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&params); err != nil {
			_ = c.Error(apperrors.InvalidInput("request body must be a JSON object: %v", err))
			return
		}
	}

	result, err := s.registry.Call(c.Request.Context(), name, params)
	if err != nil {
		metrics.APICalls.WithLabelValues("http", name, "error").Inc()
		_ = c.Error(err)
		return
	}

	metrics.APICalls.WithLabelValues("http", name, "success").Inc()
	c.JSON(http.StatusOK, result)
}
