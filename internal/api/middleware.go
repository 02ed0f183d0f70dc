// internal/api/middleware.go
package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/girder/swarm-logs-server/internal/models"
)

const requestIDHeader = "X-Request-Id"

// RequestIDMiddleware propagates a caller supplied UUID request ID or generates one.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.New().String()
		}
		c.Set("requestID", requestID)
		c.Header(requestIDHeader, requestID)
		c.Next()
	}
}

// ErrorMapperMiddleware turns errors a handler recorded with c.Error into a
// generic 500 response. Errors raised after the response started are only logged.
func ErrorMapperMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		for _, e := range c.Errors {
			log.Errorf("Unhandled error on %s %s (request %s): %v",
				c.Request.Method, c.Request.URL.Path, c.GetString("requestID"), e.Err)
		}
		if c.Writer.Written() {
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Detail: "Internal Server Error"})
	}
}

// CORSMiddleware answers preflights and adds CORS headers for allowed origins.
// Simple requests from any other origin are served without CORS headers, so the
// browser blocks the response instead of the server replacing it with a 403.
func CORSMiddleware(origins []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(origins))
	for _, origin := range origins {
		allowed[origin] = struct{}{}
	}
	handler := cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{http.MethodGet},
		AllowHeaders:  []string{"Accept", "Accept-Language", "Content-Language", "Content-Type"},
		ExposeHeaders: []string{requestIDHeader},
		MaxAge:        10 * time.Minute,
	})

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if _, ok := allowed[origin]; !ok && origin != "" && c.Request.Method != http.MethodOptions {
			c.Next()
			return
		}
		handler(c)
	}
}

// RecoveryHandler reports a recovered panic with the same JSON body as other server errors.
func RecoveryHandler(c *gin.Context, recovered any) {
	log.Errorf("Panic on %s %s (request %s): %v",
		c.Request.Method, c.Request.URL.Path, c.GetString("requestID"), recovered)
	if c.Writer.Written() {
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{Detail: "Internal Server Error"})
}

// NotFoundHandler answers unknown routes with the same JSON shape as other errors.
func NotFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, models.ErrorResponse{Detail: "Not Found"})
}
