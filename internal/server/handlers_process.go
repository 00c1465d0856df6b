package server

import (
	"net/http"
	"strings"

	"github.com/kritik8/pixgonzDIP/internal/algorithms/segment"
	"github.com/kritik8/pixgonzDIP/internal/colorspace"
	"github.com/kritik8/pixgonzDIP/internal/config"
	"github.com/kritik8/pixgonzDIP/internal/enhance"
	"github.com/kritik8/pixgonzDIP/internal/pipeline"
)

// handleProcess is the keyword-driven catch-all endpoint: the operation name
// selects the transform and a coarse factor. Unrecognized operations return
// the image unchanged.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	imageData, err := s.readImage(r, "image")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	operation := strings.ToLower(r.FormValue("operation"))

	out := imageData.Image
	switch {
	case strings.Contains(operation, "brightness"):
		factor := 0.7
		if strings.Contains(operation, "increase") {
			factor = 1.5
		}
		out = enhance.Brightness(out, factor)

	case strings.Contains(operation, "contrast"):
		factor := 0.7
		if strings.Contains(operation, "increase") {
			factor = 1.5
		}
		out = enhance.Contrast(out, factor)

	case strings.Contains(operation, "segmentation"):
		out = segment.Threshold(out, config.DefaultThreshold)

	case strings.Contains(operation, "display"), strings.Contains(operation, "autocorrect"):
		out = colorspace.Autocontrast(out)
	}

	s.respondImage(w, r, pipeline.NewImageData(out, imageData.Format))
}
