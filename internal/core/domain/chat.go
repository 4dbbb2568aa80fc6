package domain

import (
	"strings"
	"time"
)

// MessageRole identifies who produced a message.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Chat is an ordered conversation inside a project. The title is mutable;
// messages are append-only.
type Chat struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Message is a single conversation turn. Messages are never reordered or
// mutated after creation; only appended.
type Message struct {
	ID        string      `json:"id"`
	ChatID    string      `json:"chat_id"`
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	Citations []string    `json:"citations,omitempty"` // cited passage ids
	Strategy  Strategy    `json:"strategy,omitempty"`  // set on assistant turns
	CreatedAt time.Time   `json:"created_at"`
}

// HistoryWindow bounds how much prior conversation is included as LLM
// context.
type HistoryWindow struct {
	MaxMessages int // most recent N messages
	MaxChars    int // hard character budget for the rendered transcript
}

// DefaultHistoryWindow mirrors the product default of the last ten turns.
func DefaultHistoryWindow() HistoryWindow {
	return HistoryWindow{MaxMessages: 10, MaxChars: 8000}
}

// RenderHistory formats messages oldest-first as a plain transcript for
// prompt context. Messages must already be in creation order. The window
// keeps the most recent MaxMessages and truncates from the front when the
// character budget is exceeded, so the latest turns always survive.
func RenderHistory(messages []*Message, w HistoryWindow) string {
	if len(messages) == 0 {
		return ""
	}

	if w.MaxMessages > 0 && len(messages) > w.MaxMessages {
		messages = messages[len(messages)-w.MaxMessages:]
	}

	lines := make([]string, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case RoleUser:
			lines = append(lines, "User: "+m.Content)
		case RoleAssistant:
			lines = append(lines, "Assistant: "+m.Content)
		}
	}

	transcript := strings.Join(lines, "\n")
	if w.MaxChars > 0 && len(transcript) > w.MaxChars {
		// Drop whole lines from the front until it fits.
		for len(lines) > 1 && len(transcript) > w.MaxChars {
			lines = lines[1:]
			transcript = strings.Join(lines, "\n")
		}
		if len(transcript) > w.MaxChars {
			transcript = transcript[len(transcript)-w.MaxChars:]
		}
	}

	return transcript
}
