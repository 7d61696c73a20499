package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/exp/slog"

	"ytdigest/model"
	"ytdigest/storage"
)

type ArticleAPI struct {
	articleRepo storage.ArticleRepository
	logger      *slog.Logger
}

func NewArticleAPI(articleRepo storage.ArticleRepository, logger *slog.Logger) *ArticleAPI {
	return &ArticleAPI{
		articleRepo: articleRepo,
		logger:      logger,
	}
}

func (a *ArticleAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	articleID, _ := ShiftPath(r.URL.Path)

	switch {
	case r.Method == http.MethodGet && articleID == "":
		a.List(w, r)
	case r.Method == http.MethodGet:
		a.Get(w, r, articleID)
	default:
		Error(w, http.StatusNotFound, "not found", fmt.Errorf("method %s with subpath %q was not registered in the article api", r.Method, articleID))
	}
}

type respArticle struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Language  string    `json:"language"`
	Tags      string    `json:"tags"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
}

func toRespArticle(article *model.Article) respArticle {
	return respArticle{
		ID:        article.ID,
		Title:     article.Title,
		Language:  article.Language,
		Tags:      article.Tags,
		Published: article.Published,
		CreatedAt: article.CreatedAt,
	}
}

// List returns published articles, or all articles in a language when the
// lang query parameter is set.
func (a *ArticleAPI) List(w http.ResponseWriter, r *http.Request) {
	var articles []*model.Article
	var err error
	if lang := r.URL.Query().Get("lang"); lang != "" {
		articles, err = a.articleRepo.FindByLanguage(r.Context(), lang)
	} else {
		articles, err = a.articleRepo.FindPublished(r.Context())
	}
	if err != nil {
		a.returnErr(r.Context(), w, http.StatusInternalServerError, "could not list articles", err)
		return
	}

	resp := make([]respArticle, 0, len(articles))
	for _, article := range articles {
		resp = append(resp, toRespArticle(article))
	}

	jsonBody, err := json.Marshal(resp)
	if err != nil {
		a.returnErr(r.Context(), w, http.StatusInternalServerError, "could not marshal response", err)
		return
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, string(jsonBody))
}

func (a *ArticleAPI) Get(w http.ResponseWriter, r *http.Request, articleID string) {
	article, err := a.articleRepo.FindByID(r.Context(), articleID)
	if err != nil {
		a.returnErr(r.Context(), w, http.StatusInternalServerError, "could not fetch article", err)
		return
	}
	if article == nil {
		Error(w, http.StatusNotFound, "not found", fmt.Errorf("no article with id %q", articleID))
		return
	}

	jsonBody, err := json.Marshal(struct {
		respArticle
		Content string `json:"content"`
	}{toRespArticle(article), article.Content})
	if err != nil {
		a.returnErr(r.Context(), w, http.StatusInternalServerError, "could not marshal response", err)
		return
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, string(jsonBody))
}

func (a *ArticleAPI) returnErr(_ context.Context, w http.ResponseWriter, status int, message string, err error, details ...any) {
	a.logger.Error(message, err, slog.String("details", fmt.Sprintf("%+v", details)))
	Error(w, status, message, err, details...)
}
