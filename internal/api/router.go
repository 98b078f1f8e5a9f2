package api

import (
	"github.com/gin-gonic/gin"

	"github.com/lexdraft/lexdraft/internal/api/chat"
	"github.com/lexdraft/lexdraft/internal/api/middleware"
	"github.com/lexdraft/lexdraft/internal/store"
)

// RouterConfig holds configuration for the router
type RouterConfig struct {
	AllowOrigins  []string
	LLMConfigured bool
}

// SetupRouter sets up the Gin router
func SetupRouter(service chat.Service, s *store.Store, cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// CORS middleware
	r.Use(middleware.CORS(cfg.AllowOrigins))

	handler := chat.NewHandler(service, s, cfg.LLMConfigured)
	group := r.Group("/api")
	handler.RegisterRoutes(group)

	return r
}
