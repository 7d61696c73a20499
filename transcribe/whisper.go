package transcribe

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

type Result struct {
	Text     string
	Language string
}

// Whisper transcribes local audio files through the OpenAI audio API.
type Whisper struct {
	client *openai.Client
}

func NewWhisper(client *openai.Client) *Whisper {
	return &Whisper{client: client}
}

func (w *Whisper) Transcribe(ctx context.Context, path string) (Result, error) {
	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: path,
		// verbose json carries the detected language
		Format: openai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		return Result{}, fmt.Errorf("failed to transcribe %s: %w", path, err)
	}

	return Result{
		Text:     resp.Text,
		Language: resp.Language,
	}, nil
}
