package storage

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/auth"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/fault"
	"github.com/weaviate/weaviate/entities/models"

	"ytdigest/model"
)

const transcriptClass = "Transcript"

// Weaviate indexes transcripts for semantic search. It is a side-store
// next to the document store, never the source of truth.
type Weaviate struct {
	client *weaviate.Client
}

func NewWeaviate(host, weaviateApiKey, openaiApiKey string) (*Weaviate, error) {
	config := weaviate.Config{
		Scheme:     "https",
		Host:       host,
		AuthConfig: auth.ApiKey{Value: weaviateApiKey},
		Headers: map[string]string{
			"X-OpenAI-Api-Key": openaiApiKey,
		},
	}

	c, err := weaviate.NewClient(config)
	if err != nil {
		return nil, err
	}

	return &Weaviate{client: c}, nil
}

func (w *Weaviate) ResetSchema() error {

	// delete old
	if err := w.client.Schema().ClassDeleter().WithClassName(transcriptClass).Do(context.Background()); err != nil {
		// Weaviate returns a 400 if the class does not exist, so this is allowed, only return an error if it's not a 400
		if status, ok := err.(*fault.WeaviateClientError); ok && status.StatusCode != http.StatusBadRequest {
			return err
		}
	}

	// create new
	classObj := &models.Class{
		Class:      transcriptClass,
		Vectorizer: "text2vec-openai",
		ModuleConfig: map[string]any{
			"text2vec-openai": map[string]any{
				"model":        "ada",
				"modelVersion": "002",
				"type":         "text",
			},
		},
	}

	return w.client.Schema().ClassCreator().WithClass(classObj).Do(context.Background())
}

func (w *Weaviate) Save(ctx context.Context, transcript *model.Transcript) error {
	// Weaviate object ids must be UUIDs, derive one from the store id so
	// re-saving the same transcript updates instead of duplicating.
	tID := uuid.NewSHA1(uuid.NameSpaceOID, []byte(transcript.ID)).String()
	properties := map[string]any{
		"videoId":    transcript.VideoID,
		"transcript": transcript.Transcript,
		"language":   transcript.Language,
	}

	exists, err := w.client.Data().
		Checker().
		WithID(tID).
		WithClassName(transcriptClass).
		Do(ctx)
	if err != nil {
		return err
	}

	if exists {
		return w.client.Data().
			Updater().
			WithID(tID).
			WithClassName(transcriptClass).
			WithProperties(properties).
			Do(ctx)
	}

	_, err = w.client.Data().
		Creator().
		WithClassName(transcriptClass).
		WithID(tID).
		WithProperties(properties).
		Do(ctx)

	return err
}
