package usecase

import (
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"effettobot/internal/domain/entity"
	"effettobot/internal/domain/service"
)

// transcriptFetchLimit bounds the history fetch; a very long ticket yields
// a truncated transcript rather than an unbounded one.
const transcriptFetchLimit = 100

// maxTranscriptBytes is the platform's attachment ceiling. An HTML export
// over the limit falls back to the plain-text rendering.
const maxTranscriptBytes = 8 << 20

// transcriptMessages filters out the system's own messages and orders the
// remainder by creation time ascending.
func transcriptMessages(msgs []service.HistoryMessage) []service.HistoryMessage {
	out := make([]service.HistoryMessage, 0, len(msgs))
	for _, m := range msgs {
		if m.Bot {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func buildHTMLTranscript(ticket *entity.Ticket, closedByName string, msgs []service.HistoryMessage) []byte {
	var b strings.Builder

	b.WriteString(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>Ticket Transcript - ` + html.EscapeString(ticket.ID) + `</title>
<style>
body { font-family: Arial, sans-serif; margin: 20px; background: #2c2f33; color: #dcddde; }
.header { background: #7289da; padding: 20px; border-radius: 8px; margin-bottom: 20px; }
.message { background: #36393f; padding: 15px; margin: 10px 0; border-radius: 8px; border-left: 4px solid #7289da; }
.author { font-weight: bold; color: #7289da; margin-bottom: 5px; }
.timestamp { color: #99aab5; font-size: 0.9em; }
.content { margin-top: 8px; line-height: 1.4; }
.attachment { color: #43b581; margin-top: 5px; }
.embed { background: #2f3136; padding: 10px; border-radius: 4px; margin-top: 10px; }
.embed-title { font-weight: bold; color: #7289da; }
.embed-description { margin-top: 5px; }
</style>
</head>
<body>
<div class="header">
<h1>🎫 Ticket Transcript</h1>
`)
	fmt.Fprintf(&b, "<p><strong>Ticket ID:</strong> %s</p>\n", html.EscapeString(ticket.ID))
	fmt.Fprintf(&b, "<p><strong>User:</strong> &lt;@%s&gt;</p>\n", html.EscapeString(ticket.UserID))
	fmt.Fprintf(&b, "<p><strong>Closed by:</strong> %s</p>\n", html.EscapeString(closedByName))
	fmt.Fprintf(&b, "<p><strong>Created:</strong> %s</p>\n", ticket.CreatedAt.Format(time.RFC1123))
	fmt.Fprintf(&b, "<p><strong>Closed:</strong> %s</p>\n", time.Now().Format(time.RFC1123))
	b.WriteString("</div>\n<div class=\"messages\">\n")

	for _, m := range transcriptMessages(msgs) {
		b.WriteString("<div class=\"message\">\n")
		fmt.Fprintf(&b, "<div class=\"author\">%s</div>\n", html.EscapeString(m.AuthorName))
		fmt.Fprintf(&b, "<div class=\"timestamp\">%s</div>\n", m.CreatedAt.Format(time.RFC1123))
		content := "<em>No content</em>"
		if m.Content != "" {
			content = html.EscapeString(m.Content)
		}
		fmt.Fprintf(&b, "<div class=\"content\">%s</div>\n", content)
		for _, name := range m.Attachments {
			fmt.Fprintf(&b, "<div class=\"attachment\">📎 %s</div>\n", html.EscapeString(name))
		}
		for _, e := range m.Embeds {
			b.WriteString("<div class=\"embed\">")
			if e.Title != "" {
				fmt.Fprintf(&b, "<div class=\"embed-title\">%s</div>", html.EscapeString(e.Title))
			}
			if e.Description != "" {
				fmt.Fprintf(&b, "<div class=\"embed-description\">%s</div>", html.EscapeString(e.Description))
			}
			b.WriteString("</div>\n")
		}
		b.WriteString("</div>\n")
	}

	b.WriteString("</div>\n</body>\n</html>\n")
	return []byte(b.String())
}

// buildTextTranscript is the fallback when the HTML export cannot be
// delivered; it carries the same messages in a plain rendering.
func buildTextTranscript(ticket *entity.Ticket, closedByName string, msgs []service.HistoryMessage) []byte {
	var b strings.Builder

	b.WriteString("# Ticket Transcript\n\n")
	fmt.Fprintf(&b, "**Ticket ID:** %s\n", ticket.ID)
	fmt.Fprintf(&b, "**User:** <@%s>\n", ticket.UserID)
	fmt.Fprintf(&b, "**Closed by:** %s\n\n", closedByName)
	b.WriteString("## Messages:\n\n")

	for _, m := range transcriptMessages(msgs) {
		content := m.Content
		if content == "" {
			content = "(no content)"
		}
		fmt.Fprintf(&b, "**%s:** %s\n", m.AuthorName, content)
		for _, name := range m.Attachments {
			fmt.Fprintf(&b, "📎 Attachment: %s\n", name)
		}
	}

	return []byte(b.String())
}
