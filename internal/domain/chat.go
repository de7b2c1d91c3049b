package domain

import (
	"context"
	"strings"
	"time"
)

// WelcomeMessageID is the id of the greeting that opens every chat history.
const WelcomeMessageID = "1"

const welcomeText = "Hello! I'm your AI disaster management assistant. How can I help you today? You can ask about emergency procedures, disaster preparedness, or specific scenarios."

// ChatMessage is one turn of the assistant conversation.
type ChatMessage struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	IsUser    bool      `json:"isUser"`
	Timestamp time.Time `json:"timestamp"`
}

// WelcomeMessage returns the assistant greeting stamped with the current time.
func WelcomeMessage() ChatMessage {
	return ChatMessage{ID: WelcomeMessageID, Content: welcomeText, Timestamp: Now()}
}

// NewUserMessage validates and wraps a user turn.
func NewUserMessage(content string) (ChatMessage, error) {
	if strings.TrimSpace(content) == "" {
		return ChatMessage{}, required("content")
	}
	return ChatMessage{ID: newID(), Content: content, IsUser: true, Timestamp: Now()}, nil
}

// NewAssistantMessage wraps an assistant reply.
func NewAssistantMessage(content string) ChatMessage {
	return ChatMessage{ID: newID(), Content: content, Timestamp: Now()}
}

// TruncateHistory returns the history cut back to its opening welcome
// message. A history that lost its welcome message gets a fresh one.
func TruncateHistory(history []ChatMessage) []ChatMessage {
	if len(history) > 0 && history[0].ID == WelcomeMessageID && !history[0].IsUser {
		return history[:1:1]
	}
	return []ChatMessage{WelcomeMessage()}
}

// ChatContextLength is how many prior messages accompany a prompt sent to a
// generative model.
const ChatContextLength = 5

// ContextWindow returns the last n messages of history.
func ContextWindow(history []ChatMessage, n int) []ChatMessage {
	if n <= 0 {
		return nil
	}
	if len(history) > n {
		history = history[len(history)-n:]
	}
	out := make([]ChatMessage, len(history))
	copy(out, history)
	return out
}

// ReplyGenerator produces an assistant reply from recent conversation
// context and the latest user prompt.
type ReplyGenerator interface {
	GenerateReply(ctx context.Context, history []ChatMessage, prompt string) (string, error)
}
