// Package genai wraps the remote chat-completion service (Groq, reached
// through its OpenAI-compatible API) behind an Adapter whose operations never
// fail: when the service is unconfigured, rate-limited, slow, or erroring,
// each operation transparently falls back to the static response engine.
// Callers cannot observe which tier produced the text.
package genai

import "context"

// Message is a single entry of conversation history sent to the completion
// service. Role is one of system/user/assistant.
type Message struct {
	Role    string
	Content string
}

// Client is the minimal contract a remote completion backend must satisfy.
// Implementations return an error for any failure, including an empty
// completion; the Adapter maps every error to the static fallback.
type Client interface {
	// Complete returns the assistant completion for the given history.
	Complete(ctx context.Context, messages []Message, opts CompletionOptions) (string, error)
}

// CompletionOptions tune a single completion call.
type CompletionOptions struct {
	Temperature float32
	MaxTokens   int
}
