package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/crisphealth/health-assistant/internal/domain"
	"github.com/crisphealth/health-assistant/pkg/envelope"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// readBody returns the raw request body, capped at maxBodyBytes.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
}

// decodeArgs unmarshals optional JSON arguments into dst. An empty or null
// payload leaves dst, and the defaults it was initialised with, untouched.
func decodeArgs(data []byte, dst any) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	return json.Unmarshal(data, dst)
}

// errorEnvelope maps a service error onto the response taxonomy.
// notFound is the message used for domain.ErrNotFound.
func errorEnvelope(logger *zap.Logger, err error, notFound string) *envelope.Envelope {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		return envelope.BadRequest(reason(err, domain.ErrInvalidArgument))
	case errors.Is(err, domain.ErrNotFound):
		return envelope.NotFound(notFound)
	default:
		logger.Error("request failed", zap.Error(err))
		return envelope.InternalError()
	}
}

// reason strips the sentinel prefix from a wrapped error message.
func reason(err, sentinel error) string {
	msg := strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
	if msg == "" {
		return sentinel.Error()
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultValue int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return parsed
}
