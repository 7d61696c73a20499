package model

import "time"

// Transcript is the text output of transcribing a video. A video may
// accumulate more than one transcript over multiple runs, repeated
// transcription is additive history, not an overwrite.
type Transcript struct {
	ID         string
	VideoID    string
	Transcript string
	Language   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (t *Transcript) Validate() error {
	if t.VideoID == "" {
		return violation("video_id", "non-empty string", `""`)
	}
	if t.Transcript == "" {
		return violation("transcript", "non-empty string", `""`)
	}
	if t.Language == "" {
		return violation("language", "non-empty string", `""`)
	}

	return nil
}
