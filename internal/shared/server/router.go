package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"assessment-backend/internal/assessments"
	"assessment-backend/internal/intake"
	"assessment-backend/internal/shared/config"
	"assessment-backend/internal/shared/metrics"
	"assessment-backend/internal/shared/server/middleware"
	"assessment-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config            config.Config
	IntakeHandler     *intake.Handler
	AssessmentHandler *assessments.Handler
}

// Poll endpoints get their own rate-limit rule since the results page hits
// them every few seconds while a generation is running.
const pollGroup = "POLL"

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				pollGroup: {Rate: 2, Burst: 10},
			},
			GroupFor: func(c *gin.Context) string {
				switch c.FullPath() {
				case "/api/v1/assessment-latest", "/api/v1/assessments/find":
					return pollGroup
				}
				return ""
			},
		}),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	if deps.IntakeHandler != nil {
		api.POST("/assessment-intake", deps.IntakeHandler.Receive)
		api.GET("/assessment-intake", deps.IntakeHandler.Echo)
	}
	if deps.AssessmentHandler != nil {
		api.GET("/assessment-latest", deps.AssessmentHandler.FindLatest)
		api.GET("/assessments/find", deps.AssessmentHandler.Find)
		api.GET("/assessments/:id", deps.AssessmentHandler.Get)
		api.GET("/dashboard", deps.AssessmentHandler.Dashboard)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
