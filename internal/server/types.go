// Package server provides the HTTP boundary of the video extractor API.
// It contains handlers, middleware, routes, and request/response DTOs
// separated from the domain types.
package server

// ProcessVideoRequest is the JSON body for processing a video already on disk.
type ProcessVideoRequest struct {
	// VideoPath is the absolute path of the video file on the host.
	VideoPath string `json:"video_path" validate:"required"`
	// SummaryType selects the summary shape; defaults to "comprehensive".
	SummaryType string `json:"summary_type,omitempty" validate:"omitempty,oneof=brief comprehensive key_points"`
}

// ProcessingResponse is the result of processing a video.
type ProcessingResponse struct {
	// Transcript is the speech-to-text output.
	Transcript string `json:"transcript"`
	// Summary is the generated summary.
	Summary string `json:"summary"`
	// ProcessingTime is the wall-clock processing duration in seconds.
	ProcessingTime float64 `json:"processing_time"`
	// VideoDuration is the source video duration in seconds.
	VideoDuration float64 `json:"video_duration"`
	// ReportURL is the uploaded report location, present when S3 is configured.
	ReportURL string `json:"report_url,omitempty"`
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	// Error is the human-readable error message.
	Error string `json:"error"`
	// Code is the error code for programmatic handling.
	Code string `json:"code"`
}

// HealthResponse is the HTTP response for the health check endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// InfoResponse describes the API for the root endpoint.
type InfoResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}
