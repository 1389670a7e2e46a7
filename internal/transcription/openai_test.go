package transcription

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newStubTranscriber points a transcriber at a stub Whisper endpoint.
func newStubTranscriber(t *testing.T, handler http.HandlerFunc) *OpenAITranscriber {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = srv.URL + "/v1"

	tr, err := NewOpenAITranscriber("", WithClient(openai.NewClientWithConfig(cfg)))
	require.NoError(t, err)
	return tr
}

// writeTempAudio creates a placeholder audio file for upload.
func writeTempAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audio.wav")
	require.NoError(t, os.WriteFile(path, []byte("RIFF fake wav"), 0600))
	return path
}

func TestNewOpenAITranscriber_RequiresAPIKey(t *testing.T) {
	_, err := NewOpenAITranscriber("")
	assert.ErrorIs(t, err, ErrAPIKeyRequired)
}

func TestOpenAITranscriber_Transcribe(t *testing.T) {
	t.Run("returns plain transcript text", func(t *testing.T) {
		tr := newStubTranscriber(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/audio/transcriptions", r.URL.Path)
			require.NoError(t, r.ParseMultipartForm(1<<20))
			assert.Equal(t, "whisper-1", r.FormValue("model"))

			w.Header().Set("Content-Type", "text/plain")
			_, _ = w.Write([]byte("hello from the video"))
		})

		text, err := tr.Transcribe(context.Background(), writeTempAudio(t))
		require.NoError(t, err)
		assert.Equal(t, "hello from the video", text)
	})

	t.Run("missing audio file is an error", func(t *testing.T) {
		tr := newStubTranscriber(t, func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("no request expected")
		})

		_, err := tr.Transcribe(context.Background(), "/nonexistent/audio.wav")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "audio file not found")
	})

	t.Run("backend error propagates", func(t *testing.T) {
		tr := newStubTranscriber(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
		})

		_, err := tr.Transcribe(context.Background(), writeTempAudio(t))
		require.Error(t, err)
	})
}

func TestOpenAITranscriber_TranscribeVerbose(t *testing.T) {
	tr := newStubTranscriber(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "verbose_json", r.FormValue("response_format"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"task": "transcribe",
			"language": "english",
			"duration": 9.1,
			"text": "hello world",
			"segments": [
				{"id": 0, "start": 0.0, "end": 4.5, "text": " hello"},
				{"id": 1, "start": 5.5, "end": 9.1, "text": " world"}
			]
		}`))
	})

	res, err := tr.TranscribeVerbose(context.Background(), writeTempAudio(t))
	require.NoError(t, err)

	assert.Equal(t, "hello world", res.Text)
	assert.Equal(t, "english", res.Language)
	assert.InDelta(t, 9.1, res.Duration, 1e-9)
	require.Len(t, res.Segments, 2)
	assert.InDelta(t, 0.0, res.Segments[0].Start, 1e-9)
	assert.InDelta(t, 4.5, res.Segments[0].End, 1e-9)
	assert.Equal(t, " hello", res.Segments[0].Text)
}
