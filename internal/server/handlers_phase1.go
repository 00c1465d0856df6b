package server

import (
	"net/http"

	"github.com/kritik8/pixgonzDIP/internal/enhance"
	"github.com/kritik8/pixgonzDIP/internal/filters"
	"github.com/kritik8/pixgonzDIP/internal/pipeline"
)

func (s *Server) handleBrightness(w http.ResponseWriter, r *http.Request) {
	imageData, err := s.readImage(r, "image")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	out := enhance.Brightness(imageData.Image, formFloat(r, "value", 1.0))
	s.respondImage(w, r, pipeline.NewImageData(out, imageData.Format))
}

func (s *Server) handleContrast(w http.ResponseWriter, r *http.Request) {
	imageData, err := s.readImage(r, "image")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	out := enhance.Contrast(imageData.Image, formFloat(r, "value", 1.0))
	s.respondImage(w, r, pipeline.NewImageData(out, imageData.Format))
}

func (s *Server) handleRotate(w http.ResponseWriter, r *http.Request) {
	imageData, err := s.readImage(r, "image")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	angle := formFloat(r, "angle", 0.0)
	expand := formBool(r, "expand", true)
	out := filters.Rotate(imageData.Image, angle, expand)
	s.respondImage(w, r, pipeline.NewImageData(out, imageData.Format))
}

func (s *Server) handleGrayscale(w http.ResponseWriter, r *http.Request) {
	imageData, err := s.readImage(r, "image")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	out := filters.Grayscale(imageData.Image)
	s.respondImage(w, r, pipeline.NewImageData(out, imageData.Format))
}

func (s *Server) handleBlur(w http.ResponseWriter, r *http.Request) {
	imageData, err := s.readImage(r, "image")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	out := filters.Blur(imageData.Image, formFloat(r, "radius", 2.0))
	s.respondImage(w, r, pipeline.NewImageData(out, imageData.Format))
}

func (s *Server) handleSharpen(w http.ResponseWriter, r *http.Request) {
	imageData, err := s.readImage(r, "image")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	out := filters.Sharpen(imageData.Image)
	s.respondImage(w, r, pipeline.NewImageData(out, imageData.Format))
}

func (s *Server) handleMask(w http.ResponseWriter, r *http.Request) {
	imageData, err := s.readImage(r, "image")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	maskData, err := s.readImage(r, "mask")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	out := filters.ApplyMask(imageData.Image, maskData.Image)
	s.respondImage(w, r, pipeline.NewImageData(out, imageData.Format))
}
