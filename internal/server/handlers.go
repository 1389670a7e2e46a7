package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jeff99jackson99/videoextractor/internal/executor"
	"github.com/jeff99jackson99/videoextractor/internal/pipeline"
	"github.com/jeff99jackson99/videoextractor/internal/summarization"
)

const serviceName = "video-extractor"

// Version is the API version reported by the root endpoint.
const Version = "0.1.0"

// defaultMaxUploadBytes caps multipart uploads when no limit is configured.
const defaultMaxUploadBytes = 512 << 20 // 512 MiB

// VideoProcessor is the service the handlers delegate to.
type VideoProcessor interface {
	ProcessUpload(ctx context.Context, filename string, file io.Reader, typ summarization.Type) (pipeline.Result, error)
	ProcessPath(ctx context.Context, videoPath string, typ summarization.Type) (pipeline.Result, error)
}

// Handlers contains the HTTP handlers for the API.
type Handlers struct {
	service        VideoProcessor
	validator      *validator.Validate
	logger         *slog.Logger
	maxUploadBytes int64
}

// HandlerOption configures a Handlers instance.
type HandlerOption func(*Handlers)

// WithMaxUploadBytes caps the accepted multipart upload size.
func WithMaxUploadBytes(n int64) HandlerOption {
	return func(h *Handlers) {
		if n > 0 {
			h.maxUploadBytes = n
		}
	}
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service VideoProcessor, logger *slog.Logger, opts ...HandlerOption) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handlers{
		service:        service,
		validator:      validator.New(),
		logger:         logger,
		maxUploadBytes: defaultMaxUploadBytes,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Health handles GET /healthz requests.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Service: serviceName})
}

// Root handles GET / requests with API information.
func (h *Handlers) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, InfoResponse{
		Message: "Video Extractor API",
		Version: Version,
		Endpoints: map[string]string{
			"health":  "/healthz",
			"upload":  "/upload-video",
			"process": "/process-video",
		},
	})
}

// UploadVideo handles POST /upload-video: a multipart video upload that is
// processed synchronously into a transcript and summary.
func (h *Handlers) UploadVideo(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		h.logger.Warn("upload rejected: missing or oversized file",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadRequest, "video file is required", "MISSING_FILE")
		return
	}
	defer func() { _ = file.Close() }()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "video/") {
		writeError(w, http.StatusBadRequest, "File must be a video format", "INVALID_CONTENT_TYPE")
		return
	}

	typ, ok := h.summaryType(w, r.FormValue("summary_type"))
	if !ok {
		return
	}

	res, err := h.service.ProcessUpload(r.Context(), header.Filename, file, typ)
	if err != nil {
		h.writeProcessingError(w, err)
		return
	}

	h.logger.Info("upload processed",
		slog.String("filename", header.Filename),
		slog.Float64("video_duration_sec", res.VideoDuration),
	)

	writeJSON(w, http.StatusOK, toProcessingResponse(res))
}

// ProcessVideo handles POST /process-video: processes a video file that
// already exists on the host.
func (h *Handlers) ProcessVideo(w http.ResponseWriter, r *http.Request) {
	var req ProcessVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", "INVALID_JSON")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
		return
	}

	typ, ok := h.summaryType(w, req.SummaryType)
	if !ok {
		return
	}

	res, err := h.service.ProcessPath(r.Context(), req.VideoPath, typ)
	if err != nil {
		if errors.Is(err, pipeline.ErrVideoNotFound) {
			writeError(w, http.StatusNotFound, "video file not found: "+req.VideoPath, "VIDEO_NOT_FOUND")
			return
		}
		h.writeProcessingError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProcessingResponse(res))
}

// summaryType validates an optional summary_type value, writing a 400
// response and returning ok=false when it is invalid.
func (h *Handlers) summaryType(w http.ResponseWriter, raw string) (summarization.Type, bool) {
	if raw == "" {
		return summarization.TypeComprehensive, true
	}
	typ := summarization.Type(raw)
	if !typ.IsValid() {
		writeError(w, http.StatusBadRequest,
			"summary_type must be one of: brief, comprehensive, key_points", "INVALID_SUMMARY_TYPE")
		return "", false
	}
	return typ, true
}

// writeProcessingError maps pipeline errors onto HTTP responses. A missing
// external tool is a deployment problem and gets its own code so operators
// can tell it apart from a processing failure.
func (h *Handlers) writeProcessingError(w http.ResponseWriter, err error) {
	h.logger.Error("video processing failed",
		slog.String("error", err.Error()),
	)
	if errors.Is(err, executor.ErrToolNotFound) {
		writeError(w, http.StatusInternalServerError,
			"Error processing video: "+err.Error(), "TOOL_NOT_FOUND")
		return
	}
	writeError(w, http.StatusInternalServerError,
		"Error processing video: "+err.Error(), "PROCESSING_FAILED")
}

func toProcessingResponse(res pipeline.Result) ProcessingResponse {
	return ProcessingResponse{
		Transcript:     res.Transcript,
		Summary:        res.Summary,
		ProcessingTime: res.ProcessingTime,
		VideoDuration:  res.VideoDuration,
		ReportURL:      res.ReportURL,
	}
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

// writeError writes an error response in the standard format.
func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}
