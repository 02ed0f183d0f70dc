// internal/api/logs_handlers.go
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/girder/swarm-logs-server/internal/models"
	"github.com/girder/swarm-logs-server/internal/swarm"
)

const (
	missingNameMessage = "Missing 'name' parameter"
	invalidTailMessage = "Parameter 'tail' has to be int or string 'all'"
)

// @Summary Stream service logs
// @Description Streams the combined stdout/stderr log of a Docker Swarm service as plain text.
// @Description
// @Description **Notes**
// @Description - The body is written incrementally as the engine produces it; a client disconnect stops the stream.
// @Tags Logs
// @Produce plain
// @Param name query string true "Name or ID of the Swarm service" example="web"
// @Param tail query string false "Number of lines to show from the end of the logs. Use an integer or 'all'." example="50" default(200)
// @Success 200 {string} string "Raw log stream"
// @Failure 400 {object} models.ErrorResponse "Missing name or invalid tail"
// @Failure 404 {object} models.ErrorResponse "Service not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router / [get]
func (h *Handlers) GetServiceLogsHandler(c *gin.Context) {
	query, errMsg := parseLogsQuery(c)
	if errMsg != "" {
		log.Warnf("GetServiceLogs rejected: %s (name='%s', tail='%s')", errMsg, c.Query("name"), c.Query("tail"))
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Detail: errMsg})
		return
	}

	ctx := c.Request.Context()
	if h.streamTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.streamTimeout)
		defer cancel()
	}

	log.Debugf("GetServiceLogs: looking up service '%s' (tail=%s)", query.Name, query.Tail)
	handle, err := h.swarm.FindService(ctx, query.Name)
	if err != nil {
		if errors.Is(err, swarm.ErrServiceNotFound) {
			serviceLookups.WithLabelValues(lookupNotFound).Inc()
			log.Infof("GetServiceLogs: service '%s' not found", query.Name)
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Detail: fmt.Sprintf("Service %s doesn't exist", query.Name),
			})
			return
		}
		serviceLookups.WithLabelValues(lookupError).Inc()
		_ = c.Error(err)
		return
	}
	serviceLookups.WithLabelValues(lookupFound).Inc()

	stream, err := h.swarm.ServiceLogs(ctx, handle, swarm.LogsOptions{
		Stdout: true,
		Stderr: true,
		Tail:   query.Tail,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	defer stream.Close()

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.Header("X-Content-Type-Options", "nosniff")
	c.Status(http.StatusOK)
	c.Writer.WriteHeaderNow()
	c.Writer.Flush()

	log.Infof("GetServiceLogs: streaming logs of service '%s' (id=%s, tail=%s)", handle.Name, handle.ID, query.Tail)
	written, err := stream.WriteTo(flushWriter{w: c.Writer})
	logBytesStreamed.Add(float64(written))
	if err != nil {
		// Headers are gone; the body simply ends here.
		switch {
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			log.Infof("GetServiceLogs: stream for service '%s' hit the %s limit after %d bytes", handle.Name, h.streamTimeout, written)
		case ctx.Err() != nil:
			log.Infof("GetServiceLogs: client disconnected from service '%s' after %d bytes", handle.Name, written)
		default:
			log.Warnf("GetServiceLogs: stream for service '%s' ended after %d bytes: %v", handle.Name, written, err)
		}
		return
	}
	log.Debugf("GetServiceLogs: finished service '%s', %d bytes", handle.Name, written)
}
