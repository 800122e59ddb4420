package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes maps the chat pages and their JSON endpoints on the root
// router, and the session management endpoints on the API group.
func RegisterRoutes(r gin.IRoutes, api *gin.RouterGroup, h Handler) {
	r.GET("/", h.IndexPage)
	r.GET("/risk", h.RiskPage)
	r.POST("/risk", h.Risk)
	r.GET("/sentiment", h.SentimentPage)
	r.POST("/sentiment", h.Sentiment)
	r.GET("/advisor", h.AdvisorPage)
	r.POST("/advisor", h.Advisor)

	sessions := api.Group("/sessions")
	{
		sessions.GET("/:session_id/summary", h.Summary)
		sessions.DELETE("/:session_id", h.Reset)
	}
}
