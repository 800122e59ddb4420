package httpserver

import (
	"github.com/gin-gonic/gin"

	"risk-advisor/pkg/response"
)

// Health response constants (single source for version and service identity).
const (
	HealthMessage = "Risk Advisor API V1"
	HealthVersion = "1.0.0"
	ServiceName   = "risk-advisor"
)

func (srv *HTTPServer) probe(c *gin.Context, status string) {
	response.OK(c, gin.H{
		"status":      status,
		"message":     HealthMessage,
		"version":     HealthVersion,
		"service":     ServiceName,
		"environment": srv.environment,
	})
}

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check if the API is healthy
// @Tags Health
// @Produce json
// @Success 200 {object} response.Resp "API is healthy"
// @Router /health [get]
func (srv *HTTPServer) healthCheck(c *gin.Context) {
	srv.probe(c, "healthy")
}

// readyCheck reports ready once routes are mapped.
// @Summary Readiness Check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Resp "API is ready"
// @Router /ready [get]
func (srv *HTTPServer) readyCheck(c *gin.Context) {
	srv.probe(c, "ready")
}

// @Summary Liveness Check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Resp "API is alive"
// @Router /live [get]
func (srv *HTTPServer) liveCheck(c *gin.Context) {
	srv.probe(c, "alive")
}
