package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/kritik8/pixgonzDIP/internal/config"
	"github.com/kritik8/pixgonzDIP/internal/history"
	"github.com/kritik8/pixgonzDIP/internal/palette"
)

func (s *Server) handleSegmentation(w http.ResponseWriter, r *http.Request) {
	imageData, err := s.readImage(r, "image")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	method := strings.ToLower(r.FormValue("method"))
	if method == "" {
		method = "threshold"
	}

	params := map[string]interface{}{}
	switch method {
	case "threshold":
		params["threshold"] = formInt(r, "threshold", config.DefaultThreshold)
	case "kmeans":
		params["clusters"] = formInt(r, "k", config.DefaultKMeansClusters)
	case "watershed":
		params["clusters"] = formInt(r, "k", config.DefaultWatershedK)
		params["iterations"] = formInt(r, "iterations", config.DefaultWatershedIters)
	default:
		// Unknown methods fall back to returning the image untouched.
		s.respondImage(w, r, imageData)
		return
	}

	processed, err := s.coordinator.ProcessImage(r.Context(), imageData, method, params)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "Processing error: "+err.Error())
		return
	}
	s.respondImage(w, r, processed)
}

func (s *Server) handleColorAdjust(w http.ResponseWriter, r *http.Request) {
	imageData, err := s.readImage(r, "image")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	params := map[string]interface{}{
		"brightness": formFloat(r, "brightness", 1.0),
		"contrast":   formFloat(r, "contrast", 1.0),
		"saturation": formFloat(r, "saturation", 1.0),
		"hue":        formFloat(r, "hue", 0.0),
		"intensity":  formFloat(r, "intensity", 0.0),
	}

	processed, err := s.coordinator.ProcessImage(r.Context(), imageData, "color-adjust", params)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "Processing error: "+err.Error())
		return
	}
	s.respondImage(w, r, processed)
}

func (s *Server) handlePalette(w http.ResponseWriter, r *http.Request) {
	imageData, err := s.readImage(r, "image")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	colors, err := palette.Extract(imageData.Image, formInt(r, "count", 5))
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "Palette error: "+err.Error())
		return
	}
	s.respondJSON(w, map[string]interface{}{"colors": colors})
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	sessionID := r.FormValue("session_id")
	if sessionID == "" {
		s.respondError(w, http.StatusBadRequest, "session_id is required")
		return
	}

	imageData, err := s.coordinator.Undo(sessionID)
	if err != nil {
		if errors.Is(err, history.ErrNoHistory) {
			s.respondError(w, http.StatusNotFound, "No undo available")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := s.coordinator.EncodeImage(w, imageData, "png"); err != nil {
		s.logger.Error("HTTP", err, map[string]interface{}{
			"operation": "encode_undo",
		})
	}
}

func (s *Server) handleRedo(w http.ResponseWriter, r *http.Request) {
	sessionID := r.FormValue("session_id")
	if sessionID == "" {
		s.respondError(w, http.StatusBadRequest, "session_id is required")
		return
	}

	imageData, err := s.coordinator.Redo(sessionID)
	if err != nil {
		if errors.Is(err, history.ErrNoHistory) {
			s.respondError(w, http.StatusNotFound, "No redo available")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := s.coordinator.EncodeImage(w, imageData, "png"); err != nil {
		s.logger.Error("HTTP", err, map[string]interface{}{
			"operation": "encode_redo",
		})
	}
}
