package api

import (
	"fmt"
	"net/http"

	json "github.com/goccy/go-json"
)

// SSEStreamWriter writes progress.Event values to an http.ResponseWriter
// as Server-Sent Events, flushing after each one so a subscriber sees
// them as they happen rather than buffered until the response closes.
type SSEStreamWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEStreamWriter prepares w for SSE output: it sets the
// text/event-stream content type and writes response headers
// immediately.
func NewSSEStreamWriter(w http.ResponseWriter) (*SSEStreamWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("api: response writer does not support flushing")
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()
	return &SSEStreamWriter{w: w, flusher: flusher}, nil
}

// WriteEvent marshals v as JSON and writes it as a single SSE "data:"
// frame.
func (s *SSEStreamWriter) WriteEvent(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", data); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}
