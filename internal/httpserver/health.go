package httpserver

import (
	"github.com/gin-gonic/gin"

	"deadline-doom/pkg/response"
)

// Health response constants (single source for version and service identity).
const (
	HealthMessage = "How doomed are you today?"
	HealthVersion = "1.0.0"
	ServiceName   = "deadline-doom"
)

func probe(c *gin.Context, status string) {
	response.OK(c, gin.H{
		"status":  status,
		"message": HealthMessage,
		"version": HealthVersion,
		"service": ServiceName,
	})
}

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check if the API is healthy
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "API is healthy"
// @Router /health [get]
func (srv HTTPServer) healthCheck(c *gin.Context) {
	probe(c, "healthy")
}

// readyCheck returns ready once routes are mapped.
// @Summary Readiness Check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "API is ready"
// @Router /ready [get]
func (srv HTTPServer) readyCheck(c *gin.Context) {
	probe(c, "ready")
}

// liveCheck handles liveness check requests
// @Summary Liveness Check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "API is alive"
// @Router /live [get]
func (srv HTTPServer) liveCheck(c *gin.Context) {
	probe(c, "alive")
}
