package usecase

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"effettobot/internal/domain/entity"
	"effettobot/internal/domain/service"
)

func TestTranscriptMessagesFilterAndOrder(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	msgs := []service.HistoryMessage{
		{ID: "3", AuthorName: "Alice", Content: "third", CreatedAt: base.Add(2 * time.Minute)},
		{ID: "panel", AuthorName: "Bot", Bot: true, Content: "control panel", CreatedAt: base},
		{ID: "1", AuthorName: "Alice", Content: "first", CreatedAt: base},
		{ID: "2", AuthorName: "Staff", Content: "second", CreatedAt: base.Add(time.Minute)},
	}

	filtered := transcriptMessages(msgs)
	require.Len(t, filtered, 3)
	assert.Equal(t, "first", filtered[0].Content)
	assert.Equal(t, "second", filtered[1].Content)
	assert.Equal(t, "third", filtered[2].Content)
}

func TestBuildHTMLTranscript(t *testing.T) {
	ticket := &entity.Ticket{
		ID:        "ticket-123",
		UserID:    "user-1",
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	msgs := []service.HistoryMessage{
		{
			AuthorName:  "Alice",
			Content:     `hello <script>alert("x")</script>`,
			CreatedAt:   time.Date(2026, 3, 1, 12, 5, 0, 0, time.UTC),
			Attachments: []string{"screenshot.png"},
		},
		{
			AuthorName: "Staff",
			CreatedAt:  time.Date(2026, 3, 1, 12, 6, 0, 0, time.UTC),
			Embeds:     []service.HistoryEmbed{{Title: "Order", Description: "paid"}},
		},
	}

	html := string(buildHTMLTranscript(ticket, "Bob", msgs))

	assert.Contains(t, html, "ticket-123")
	assert.Contains(t, html, "Closed by:</strong> Bob")
	// User content is escaped, never interpreted.
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, "📎 screenshot.png")
	// A message without text gets the placeholder.
	assert.Contains(t, html, "<em>No content</em>")
	assert.Contains(t, html, `<div class="embed-title">Order</div>`)
}

func TestBuildTextTranscript(t *testing.T) {
	ticket := &entity.Ticket{ID: "ticket-123", UserID: "user-1"}
	msgs := []service.HistoryMessage{
		{AuthorName: "Alice", Content: "hello", CreatedAt: time.Now()},
	}

	text := string(buildTextTranscript(ticket, "Bob", msgs))
	assert.True(t, strings.HasPrefix(text, "# Ticket Transcript"))
	assert.Contains(t, text, "**Alice:** hello")
}
