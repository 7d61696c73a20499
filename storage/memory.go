package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"ytdigest/model"
)

// In-memory repositories with the same contract as the Mongo ones. Used in
// tests and for dry runs without a database.

type MemoryKeywordRepository struct {
	mu    sync.RWMutex
	items map[string]model.Keyword
	order []string
}

func NewMemoryKeywordRepository() *MemoryKeywordRepository {
	return &MemoryKeywordRepository{items: make(map[string]model.Keyword)}
}

func (r *MemoryKeywordRepository) Insert(_ context.Context, keyword *model.Keyword) (string, error) {
	if err := keyword.Validate(); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	stored := *keyword
	stored.ID = uuid.NewString()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.items[stored.ID] = stored
	r.order = append(r.order, stored.ID)

	return stored.ID, nil
}

func (r *MemoryKeywordRepository) FindByID(_ context.Context, id string) (*model.Keyword, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.items[id]
	if !ok {
		return nil, nil
	}

	return &stored, nil
}

func (r *MemoryKeywordRepository) FindByPlatformRegion(_ context.Context, platform model.Platform, region model.Region) ([]*model.Keyword, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var keywords []*model.Keyword
	for _, id := range r.order {
		stored := r.items[id]
		if stored.Platform == platform && stored.Region == region {
			k := stored
			keywords = append(keywords, &k)
		}
	}
	sort.SliceStable(keywords, func(i, j int) bool { return keywords[i].Rank < keywords[j].Rank })

	return keywords, nil
}

type MemoryVideoRepository struct {
	mu    sync.RWMutex
	items map[string]model.Video
	order []string
}

func NewMemoryVideoRepository() *MemoryVideoRepository {
	return &MemoryVideoRepository{items: make(map[string]model.Video)}
}

func (r *MemoryVideoRepository) Insert(_ context.Context, video *model.Video) (string, error) {
	if err := video.Validate(); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	stored := *video
	stored.ID = uuid.NewString()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.items[stored.ID] = stored
	r.order = append(r.order, stored.ID)

	return stored.ID, nil
}

func (r *MemoryVideoRepository) FindByID(_ context.Context, id string) (*model.Video, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.items[id]
	if !ok {
		return nil, nil
	}

	return &stored, nil
}

func (r *MemoryVideoRepository) FindByKeywordID(_ context.Context, keywordID string) ([]*model.Video, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var videos []*model.Video
	for _, id := range r.order {
		stored := r.items[id]
		if stored.KeywordID == keywordID {
			v := stored
			videos = append(videos, &v)
		}
	}

	return videos, nil
}

type MemoryTranscriptRepository struct {
	mu    sync.RWMutex
	items map[string]model.Transcript
	order []string
}

func NewMemoryTranscriptRepository() *MemoryTranscriptRepository {
	return &MemoryTranscriptRepository{items: make(map[string]model.Transcript)}
}

func (r *MemoryTranscriptRepository) Insert(_ context.Context, transcript *model.Transcript) (string, error) {
	if err := transcript.Validate(); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	stored := *transcript
	stored.ID = uuid.NewString()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.items[stored.ID] = stored
	r.order = append(r.order, stored.ID)

	return stored.ID, nil
}

func (r *MemoryTranscriptRepository) FindByID(_ context.Context, id string) (*model.Transcript, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.items[id]
	if !ok {
		return nil, nil
	}

	return &stored, nil
}

func (r *MemoryTranscriptRepository) FindByVideoID(_ context.Context, videoID string) (*model.Transcript, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// newest wins, insertion order stands in for created_at
	for i := len(r.order) - 1; i >= 0; i-- {
		stored := r.items[r.order[i]]
		if stored.VideoID == videoID {
			t := stored
			return &t, nil
		}
	}

	return nil, nil
}

func (r *MemoryTranscriptRepository) FindByLanguage(_ context.Context, language string) ([]*model.Transcript, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var transcripts []*model.Transcript
	for _, id := range r.order {
		stored := r.items[id]
		if stored.Language == language {
			t := stored
			transcripts = append(transcripts, &t)
		}
	}

	return transcripts, nil
}

type MemoryArticleRepository struct {
	mu    sync.RWMutex
	items map[string]model.Article
	order []string
}

func NewMemoryArticleRepository() *MemoryArticleRepository {
	return &MemoryArticleRepository{items: make(map[string]model.Article)}
}

func (r *MemoryArticleRepository) Insert(_ context.Context, article *model.Article) (string, error) {
	if err := article.Validate(); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	stored := *article
	stored.ID = uuid.NewString()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.items[stored.ID] = stored
	r.order = append(r.order, stored.ID)

	return stored.ID, nil
}

func (r *MemoryArticleRepository) FindByID(_ context.Context, id string) (*model.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.items[id]
	if !ok {
		return nil, nil
	}

	return &stored, nil
}

func (r *MemoryArticleRepository) FindByLanguage(_ context.Context, language string) ([]*model.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var articles []*model.Article
	for _, id := range r.order {
		stored := r.items[id]
		if stored.Language == language {
			a := stored
			articles = append(articles, &a)
		}
	}

	return articles, nil
}

func (r *MemoryArticleRepository) FindPublished(_ context.Context) ([]*model.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var articles []*model.Article
	for _, id := range r.order {
		stored := r.items[id]
		if stored.Published {
			a := stored
			articles = append(articles, &a)
		}
	}

	return articles, nil
}

func (r *MemoryArticleRepository) SetPublished(_ context.Context, id string, published bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.items[id]
	if !ok || stored.Published == published {
		return false, nil
	}

	stored.Published = published
	stored.UpdatedAt = time.Now().UTC()
	r.items[id] = stored

	return true, nil
}
