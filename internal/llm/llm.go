package llm

import "context"

// ContentResponse contains generated text and the model that produced it.
type ContentResponse struct {
	Content string
	Model   string
}

// TextGenerator is an interface for generating text from a prompt.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (ContentResponse, error)
}

// Closer is an interface for closing resources.
type Closer interface {
	Close() error
}
