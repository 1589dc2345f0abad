package api

import "github.com/gin-gonic/gin"

// SetupRouter configures and returns a gin engine with the chatbot routes.
func SetupRouter(h *Handler) *gin.Engine {
	r := gin.Default()
	r.Use(CORSMiddleware())

	r.GET("/", h.Root)
	r.GET("/health", h.Health)

	api := r.Group("/api")
	{
		api.POST("/chat", h.Chat)
	}

	return r
}
