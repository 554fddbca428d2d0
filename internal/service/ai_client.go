package service

import "context"

// ChatCompleter is the part of the model API used to interpret chat messages
type ChatCompleter interface {
	ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error)
	IsEnabled() bool
}

// Embedder turns texts into embedding vectors
type Embedder interface {
	CreateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
	IsEnabled() bool
}

// Ensure OpenAIClient implements both interfaces
var (
	_ ChatCompleter = (*OpenAIClient)(nil)
	_ Embedder      = (*OpenAIClient)(nil)
)
