package content

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"ytdigest/model"
)

const draftPrompt = `You are a content writer. Turn the transcript of a video the user gives you into a readable blog article in the same language. Keep the facts of the transcript, do not invent new ones. Return only the article body, no title and no introductory sentences like "This article is about".`

// Generator drafts an article from a transcript and ties it back to the
// keyword, video and transcript records it came from.
type Generator struct {
	client   *openai.Client
	language string
}

func NewGenerator(client *openai.Client, language string) *Generator {
	if language == "" {
		language = "en"
	}

	return &Generator{
		client:   client,
		language: language,
	}
}

func (g *Generator) Generate(ctx context.Context, keyword *model.Keyword, video *model.Video, transcript *model.Transcript) (*model.Article, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: draftPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("%s\n\n%s", video.Title, transcript.Transcript),
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to draft article: %w", err)
	}

	body := resp.Choices[len(resp.Choices)-1].Message.Content

	return &model.Article{
		KeywordID:    keyword.ID,
		TranscriptID: transcript.ID,
		VideoID:      video.ID,
		Language:     g.language,
		Title:        video.Title,
		Content:      FormatBlog(video.Title, video.URL, time.Now(), body),
		Tags:         keyword.Keyword,
		SEOMetadata: map[string]any{
			"keywords":    keyword.Keyword,
			"source_url":  video.URL,
			"description": Excerpt(body, 160),
		},
		Published: false,
	}, nil
}

// FormatBlog renders the blog template: title heading, date and source
// line, then the body.
func FormatBlog(title, sourceURL string, date time.Time, body string) string {
	return fmt.Sprintf("# %s\n\n%s | %s\n\n%s\n", title, date.Format("2006-01-02"), sourceURL, strings.TrimSpace(body))
}

// Excerpt returns the first max characters of text, cut at a word
// boundary where possible.
func Excerpt(text string, max int) string {
	text = strings.TrimSpace(text)
	if len(text) <= max {
		return text
	}

	cut := text[:max]
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		cut = cut[:idx]
	}

	return cut + "..."
}
