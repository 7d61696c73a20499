package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/exp/slog"

	"ytdigest/storage"
)

type TranscriptAPI struct {
	transcriptRepo storage.TranscriptRepository
	logger         *slog.Logger
}

func NewTranscriptAPI(transcriptRepo storage.TranscriptRepository, logger *slog.Logger) *TranscriptAPI {
	return &TranscriptAPI{
		transcriptRepo: transcriptRepo,
		logger:         logger,
	}
}

func (t *TranscriptAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	transcriptID, _ := ShiftPath(r.URL.Path)

	switch {
	case r.Method == http.MethodGet && transcriptID == "":
		t.List(w, r)
	default:
		Error(w, http.StatusNotFound, "not found", fmt.Errorf("method %s with subpath %q was not registered in the transcript api", r.Method, transcriptID))
	}
}

// List returns transcripts in a language, lang defaults to en.
func (t *TranscriptAPI) List(w http.ResponseWriter, r *http.Request) {
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		lang = "en"
	}

	transcripts, err := t.transcriptRepo.FindByLanguage(r.Context(), lang)
	if err != nil {
		t.returnErr(r.Context(), w, http.StatusInternalServerError, "could not list transcripts", err)
		return
	}

	type respTranscript struct {
		ID       string `json:"id"`
		VideoID  string `json:"video_id"`
		Language string `json:"language"`
		Text     string `json:"text"`
	}
	resp := make([]respTranscript, 0, len(transcripts))
	for _, transcript := range transcripts {
		resp = append(resp, respTranscript{
			ID:       transcript.ID,
			VideoID:  transcript.VideoID,
			Language: transcript.Language,
			Text:     transcript.Transcript,
		})
	}

	jsonBody, err := json.Marshal(resp)
	if err != nil {
		t.returnErr(r.Context(), w, http.StatusInternalServerError, "could not marshal response", err)
		return
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, string(jsonBody))
}

func (t *TranscriptAPI) returnErr(_ context.Context, w http.ResponseWriter, status int, message string, err error, details ...any) {
	t.logger.Error(message, err, slog.String("details", fmt.Sprintf("%+v", details)))
	Error(w, status, message, err, details...)
}
