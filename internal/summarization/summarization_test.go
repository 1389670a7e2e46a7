package summarization

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestType_IsValid(t *testing.T) {
	assert.True(t, TypeBrief.IsValid())
	assert.True(t, TypeComprehensive.IsValid())
	assert.True(t, TypeKeyPoints.IsValid())
	assert.False(t, Type("detailed").IsValid())
	assert.False(t, Type("").IsValid())
}

func TestParseListItems(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "numbered list",
			content: "1. First point\n2. Second point\n3. Third point",
			want:    []string{"First point", "Second point", "Third point"},
		},
		{
			name:    "dashed list with surrounding prose",
			content: "Here are the points:\n- Alpha\n- Beta\n\nThat is all.",
			want:    []string{"Alpha", "Beta"},
		},
		{
			name:    "bullet characters",
			content: "• One\n• Two",
			want:    []string{"One", "Two"},
		},
		{
			name:    "no list lines returns whole content as single item",
			content: "The video covers a single topic in depth.",
			want:    []string{"The video covers a single topic in depth."},
		},
		{
			name:    "blank and bare-marker lines are dropped",
			content: "1. Keep this\n\n- \n2. And this",
			want:    []string{"Keep this", "And this"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseListItems(tt.content))
		})
	}
}

func TestSummaryPrompt(t *testing.T) {
	const transcript = "we talked about things"

	t.Run("brief", func(t *testing.T) {
		got := summaryPrompt(transcript, TypeBrief)
		assert.Contains(t, got, transcript)
		assert.Contains(t, got, "2-3 sentence summary")
	})

	t.Run("key points", func(t *testing.T) {
		got := summaryPrompt(transcript, TypeKeyPoints)
		assert.Contains(t, got, "key points discussed")
	})

	t.Run("comprehensive is the default", func(t *testing.T) {
		got := summaryPrompt(transcript, TypeComprehensive)
		assert.Contains(t, got, "comprehensive summary")
		assert.Equal(t, got, summaryPrompt(transcript, Type("unknown")))
	})
}
