// Package server exposes the image operations over HTTP. Every endpoint
// accepts multipart form data with an "image" file plus operation-specific
// fields, and responds with PNG bytes or a JSON error document.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/kritik8/pixgonzDIP/internal/logger"
	"github.com/kritik8/pixgonzDIP/internal/pipeline"
)

// maxUploadBytes bounds one multipart upload.
const maxUploadBytes = 32 << 20

type Server struct {
	coordinator *pipeline.Coordinator
	logger      logger.Logger
}

func NewServer(coordinator *pipeline.Coordinator, log logger.Logger) *Server {
	return &Server{
		coordinator: coordinator,
		logger:      log,
	}
}

// Routes builds the endpoint tree.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	// Open CORS for local frontends during development; restrict in
	// production deployments.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}))

	r.Post("/process", s.handleProcess)

	r.Route("/phase1", func(r chi.Router) {
		r.Post("/brightness", s.handleBrightness)
		r.Post("/contrast", s.handleContrast)
		r.Post("/rotate", s.handleRotate)
		r.Post("/grayscale", s.handleGrayscale)
		r.Post("/blur", s.handleBlur)
		r.Post("/sharpen", s.handleSharpen)
		r.Post("/mask", s.handleMask)
	})

	r.Route("/phase2", func(r chi.Router) {
		r.Post("/segmentation", s.handleSegmentation)
		r.Post("/color-adjust", s.handleColorAdjust)
		r.Post("/palette", s.handlePalette)
		r.Post("/undo", s.handleUndo)
		r.Post("/redo", s.handleRedo)
	})

	r.Post("/phase3/saturation-correction", s.handleSaturationCorrection)

	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.logger.Info("HTTP", "request completed", map[string]interface{}{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   ww.Status(),
			"bytes":    ww.BytesWritten(),
			"duration": time.Since(start),
		})
	})
}
