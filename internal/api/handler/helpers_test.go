package handler

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
)

// testEnvelope mirrors envelope.Envelope with raw data for assertions.
type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
	Timestamp string `json:"timestamp"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) testEnvelope {
	t.Helper()
	return parseEnvelope(t, rec.Body.Bytes())
}

func parseEnvelope(t *testing.T, data []byte) testEnvelope {
	t.Helper()
	var env testEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		t.Fatalf("response is not an envelope: %v, body: %s", err, data)
	}
	if env.Timestamp == "" {
		t.Errorf("envelope missing timestamp: %s", data)
	}
	return env
}
