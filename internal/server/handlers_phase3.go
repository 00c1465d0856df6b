package server

import (
	"errors"
	"net/http"

	"github.com/kritik8/pixgonzDIP/internal/algorithms/calibrate"
	"github.com/kritik8/pixgonzDIP/internal/pipeline"
)

// handleSaturationCorrection calibrates for a target display when
// display_type is given, and falls back to autocontrast plus a slight
// saturation boost when it is not.
func (s *Server) handleSaturationCorrection(w http.ResponseWriter, r *http.Request) {
	imageData, err := s.readImage(r, "image")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	displayType := r.FormValue("display_type")
	if displayType == "" {
		out := calibrate.AutoCorrect(imageData.Image)
		s.respondImage(w, r, pipeline.NewImageData(out, imageData.Format))
		return
	}

	params := map[string]interface{}{"display_type": displayType}
	processed, err := s.coordinator.ProcessImage(r.Context(), imageData, "display-calibration", params)
	if err != nil {
		if errors.Is(err, calibrate.ErrUnknownDisplayType) {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.respondError(w, http.StatusInternalServerError, "Calibration error: "+err.Error())
		return
	}
	s.respondImage(w, r, processed)
}
