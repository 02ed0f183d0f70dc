// internal/api/helpers.go
package api

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/girder/swarm-logs-server/internal/models"
	"github.com/girder/swarm-logs-server/internal/swarm"
)

// parseLogsQuery validates the logs query string. On failure it returns the
// client-facing error message and a zero query.
func parseLogsQuery(c *gin.Context) (models.LogsQuery, string) {
	name := c.Query("name")
	if name == "" {
		return models.LogsQuery{}, missingNameMessage
	}

	tail, ok := parseTail(c.Query("tail"))
	if !ok {
		return models.LogsQuery{}, invalidTailMessage
	}
	return models.LogsQuery{Name: name, Tail: tail}, ""
}

// parseTail normalizes the tail parameter into the engine's format.
// Empty means the default; negative counts are rejected, zero is allowed.
func parseTail(raw string) (string, bool) {
	if raw == "" {
		return strconv.Itoa(models.DefaultTail), true
	}
	if raw == swarm.TailAll {
		return swarm.TailAll, true
	}
	digits, ok := stripDigitSeparators(strings.TrimSpace(raw))
	if !ok {
		return "", false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 {
		return "", false
	}
	return strconv.Itoa(n), true
}

// stripDigitSeparators removes '_' separators from an integer literal such as
// "1_000". A separator must sit between two digits.
func stripDigitSeparators(s string) (string, bool) {
	if !strings.Contains(s, "_") {
		return s, true
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '_' {
			b.WriteByte(s[i])
			continue
		}
		if i == 0 || i == len(s)-1 || !isDigit(s[i-1]) || !isDigit(s[i+1]) {
			return "", false
		}
	}
	return b.String(), true
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// flushWriter pushes every chunk to the client as soon as it is written.
type flushWriter struct {
	w gin.ResponseWriter
}

func (f flushWriter) Write(p []byte) (int, error) {
	n, err := f.w.Write(p)
	if err != nil {
		return n, err
	}
	f.w.Flush()
	return n, nil
}
