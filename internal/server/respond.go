package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/kritik8/pixgonzDIP/internal/pipeline"
)

// readImage pulls the uploaded file out of the multipart form and decodes it
// into a pipeline buffer.
func (s *Server) readImage(r *http.Request, field string) (*pipeline.ImageData, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, fmt.Errorf("could not parse upload: %w", err)
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, fmt.Errorf("no %s uploaded", field)
	}
	defer file.Close()

	if header.Filename == "" {
		return nil, fmt.Errorf("no %s uploaded", field)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("could not read upload: %w", err)
	}

	imageData, err := s.coordinator.DecodeImage(data)
	if err != nil {
		return nil, fmt.Errorf("could not open image: %w", err)
	}
	return imageData, nil
}

// respondImage pushes the result into the session history (best effort) and
// writes it out as PNG.
func (s *Server) respondImage(w http.ResponseWriter, r *http.Request, imageData *pipeline.ImageData) {
	if sessionID := r.FormValue("session_id"); sessionID != "" {
		s.coordinator.PushHistory(sessionID, imageData)
	}

	w.Header().Set("Content-Type", "image/png")
	if err := s.coordinator.EncodeImage(w, imageData, "png"); err != nil {
		s.logger.Error("HTTP", err, map[string]interface{}{
			"operation": "encode_response",
		})
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}

func (s *Server) respondJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

func formFloat(r *http.Request, key string, fallback float64) float64 {
	raw := r.FormValue(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}

func formInt(r *http.Request, key string, fallback int) int {
	raw := r.FormValue(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func formBool(r *http.Request, key string, fallback bool) bool {
	raw := strings.ToLower(r.FormValue(key))
	switch raw {
	case "":
		return fallback
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
