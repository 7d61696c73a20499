package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ytdigest/model"
)

const (
	collKeywords    = "keywords"
	collVideos      = "videos"
	collTranscripts = "transcripts"
	collArticles    = "articles"
)

type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongo(ctx context.Context, uri, database string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return &Mongo{
		client: client,
		db:     client.Database(database),
	}, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// Setup creates the collections and the indexes backing the narrow finder
// queries. It is safe to run repeatedly.
func (m *Mongo) Setup(ctx context.Context) error {
	existing, err := m.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}
	present := make(map[string]bool, len(existing))
	for _, name := range existing {
		present[name] = true
	}

	for _, name := range []string{collKeywords, collVideos, collTranscripts, collArticles} {
		if present[name] {
			continue
		}
		if err := m.db.CreateCollection(ctx, name); err != nil {
			return fmt.Errorf("failed to create collection %s: %w", name, err)
		}
	}

	indexes := map[string][]mongo.IndexModel{
		collKeywords: {
			{Keys: bson.D{{Key: "platform", Value: 1}, {Key: "region", Value: 1}, {Key: "rank", Value: 1}}},
		},
		collVideos: {
			{Keys: bson.D{{Key: "keyword_id", Value: 1}}},
		},
		collTranscripts: {
			{Keys: bson.D{{Key: "video_id", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "language", Value: 1}}},
		},
		collArticles: {
			{Keys: bson.D{{Key: "published", Value: 1}}},
			{Keys: bson.D{{Key: "article_language", Value: 1}}},
		},
	}
	for name, models := range indexes {
		if _, err := m.db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", name, err)
		}
	}

	return nil
}

// Empty removes all documents from every collection. Meant for resetting a
// development database, there is no undo.
func (m *Mongo) Empty(ctx context.Context) error {
	for _, name := range []string{collKeywords, collVideos, collTranscripts, collArticles} {
		if _, err := m.db.Collection(name).DeleteMany(ctx, bson.D{}); err != nil {
			return fmt.Errorf("failed to empty collection %s: %w", name, err)
		}
	}

	return nil
}

type keywordDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Keyword   string             `bson:"keyword"`
	Rank      int                `bson:"rank"`
	Score     int                `bson:"score"`
	Platform  string             `bson:"platform"`
	Region    string             `bson:"region"`
	Metadata  map[string]any     `bson:"metadata"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d keywordDoc) toModel() *model.Keyword {
	return &model.Keyword{
		ID:        d.ID.Hex(),
		Keyword:   d.Keyword,
		Rank:      d.Rank,
		Score:     d.Score,
		Platform:  model.Platform(d.Platform),
		Region:    model.Region(d.Region),
		Metadata:  d.Metadata,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type MongoKeywordRepository struct {
	coll *mongo.Collection
}

func NewMongoKeywordRepository(m *Mongo) *MongoKeywordRepository {
	return &MongoKeywordRepository{coll: m.db.Collection(collKeywords)}
}

func (r *MongoKeywordRepository) Insert(ctx context.Context, keyword *model.Keyword) (string, error) {
	if err := keyword.Validate(); err != nil {
		return "", err
	}

	now := time.Now().UTC()
	res, err := r.coll.InsertOne(ctx, keywordDoc{
		Keyword:   keyword.Keyword,
		Rank:      keyword.Rank,
		Score:     keyword.Score,
		Platform:  string(keyword.Platform),
		Region:    string(keyword.Region),
		Metadata:  keyword.Metadata,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return "", fmt.Errorf("failed to insert keyword: %w", err)
	}

	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *MongoKeywordRepository) FindByID(ctx context.Context, id string) (*model.Keyword, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var doc keywordDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find keyword: %w", err)
	}

	return doc.toModel(), nil
}

func (r *MongoKeywordRepository) FindByPlatformRegion(ctx context.Context, platform model.Platform, region model.Region) ([]*model.Keyword, error) {
	filter := bson.M{"platform": string(platform), "region": string(region)}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "rank", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find keywords: %w", err)
	}
	defer cursor.Close(ctx)

	var keywords []*model.Keyword
	for cursor.Next(ctx) {
		var doc keywordDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode keyword: %w", err)
		}
		keywords = append(keywords, doc.toModel())
	}

	return keywords, cursor.Err()
}

type videoDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	KeywordID    primitive.ObjectID `bson:"keyword_id"`
	Category     string             `bson:"video_category"`
	ThumbnailURL string             `bson:"video_thumbnail_url"`
	URL          string             `bson:"video_url"`
	YouTubeID    string             `bson:"video_youtube_id"`
	Title        string             `bson:"video_title"`
	Duration     int                `bson:"video_duration"`
	Views        int                `bson:"video_views"`
	Likes        int                `bson:"video_likes"`
	Comments     int                `bson:"video_comments"`
	Language     string             `bson:"video_language"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (d videoDoc) toModel() *model.Video {
	return &model.Video{
		ID:           d.ID.Hex(),
		KeywordID:    d.KeywordID.Hex(),
		Category:     d.Category,
		ThumbnailURL: d.ThumbnailURL,
		URL:          d.URL,
		YouTubeID:    model.YouTubeVideoID(d.YouTubeID),
		Title:        d.Title,
		Duration:     d.Duration,
		Views:        d.Views,
		Likes:        d.Likes,
		Comments:     d.Comments,
		Language:     d.Language,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type MongoVideoRepository struct {
	coll *mongo.Collection
}

func NewMongoVideoRepository(m *Mongo) *MongoVideoRepository {
	return &MongoVideoRepository{coll: m.db.Collection(collVideos)}
}

func (r *MongoVideoRepository) Insert(ctx context.Context, video *model.Video) (string, error) {
	if err := video.Validate(); err != nil {
		return "", err
	}
	keywordOID, err := primitive.ObjectIDFromHex(video.KeywordID)
	if err != nil {
		return "", fmt.Errorf("invalid keyword id %q: %w", video.KeywordID, err)
	}

	now := time.Now().UTC()
	res, err := r.coll.InsertOne(ctx, videoDoc{
		KeywordID:    keywordOID,
		Category:     video.Category,
		ThumbnailURL: video.ThumbnailURL,
		URL:          video.URL,
		YouTubeID:    string(video.YouTubeID),
		Title:        video.Title,
		Duration:     video.Duration,
		Views:        video.Views,
		Likes:        video.Likes,
		Comments:     video.Comments,
		Language:     video.Language,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return "", fmt.Errorf("failed to insert video: %w", err)
	}

	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *MongoVideoRepository) FindByID(ctx context.Context, id string) (*model.Video, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var doc videoDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find video: %w", err)
	}

	return doc.toModel(), nil
}

func (r *MongoVideoRepository) FindByKeywordID(ctx context.Context, keywordID string) ([]*model.Video, error) {
	keywordOID, err := primitive.ObjectIDFromHex(keywordID)
	if err != nil {
		return nil, nil
	}

	cursor, err := r.coll.Find(ctx, bson.M{"keyword_id": keywordOID})
	if err != nil {
		return nil, fmt.Errorf("failed to find videos: %w", err)
	}
	defer cursor.Close(ctx)

	var videos []*model.Video
	for cursor.Next(ctx) {
		var doc videoDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode video: %w", err)
		}
		videos = append(videos, doc.toModel())
	}

	return videos, cursor.Err()
}

type transcriptDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	VideoID    primitive.ObjectID `bson:"video_id"`
	Transcript string             `bson:"transcript"`
	Language   string             `bson:"language"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
}

func (d transcriptDoc) toModel() *model.Transcript {
	return &model.Transcript{
		ID:         d.ID.Hex(),
		VideoID:    d.VideoID.Hex(),
		Transcript: d.Transcript,
		Language:   d.Language,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

type MongoTranscriptRepository struct {
	coll *mongo.Collection
}

func NewMongoTranscriptRepository(m *Mongo) *MongoTranscriptRepository {
	return &MongoTranscriptRepository{coll: m.db.Collection(collTranscripts)}
}

func (r *MongoTranscriptRepository) Insert(ctx context.Context, transcript *model.Transcript) (string, error) {
	if err := transcript.Validate(); err != nil {
		return "", err
	}
	videoOID, err := primitive.ObjectIDFromHex(transcript.VideoID)
	if err != nil {
		return "", fmt.Errorf("invalid video id %q: %w", transcript.VideoID, err)
	}

	now := time.Now().UTC()
	res, err := r.coll.InsertOne(ctx, transcriptDoc{
		VideoID:    videoOID,
		Transcript: transcript.Transcript,
		Language:   transcript.Language,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return "", fmt.Errorf("failed to insert transcript: %w", err)
	}

	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *MongoTranscriptRepository) FindByID(ctx context.Context, id string) (*model.Transcript, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var doc transcriptDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find transcript: %w", err)
	}

	return doc.toModel(), nil
}

func (r *MongoTranscriptRepository) FindByVideoID(ctx context.Context, videoID string) (*model.Transcript, error) {
	videoOID, err := primitive.ObjectIDFromHex(videoID)
	if err != nil {
		return nil, nil
	}

	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	var doc transcriptDoc
	if err := r.coll.FindOne(ctx, bson.M{"video_id": videoOID}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find transcript: %w", err)
	}

	return doc.toModel(), nil
}

func (r *MongoTranscriptRepository) FindByLanguage(ctx context.Context, language string) ([]*model.Transcript, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"language": language})
	if err != nil {
		return nil, fmt.Errorf("failed to find transcripts: %w", err)
	}
	defer cursor.Close(ctx)

	var transcripts []*model.Transcript
	for cursor.Next(ctx) {
		var doc transcriptDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode transcript: %w", err)
		}
		transcripts = append(transcripts, doc.toModel())
	}

	return transcripts, cursor.Err()
}

type articleDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	KeywordID    primitive.ObjectID `bson:"keyword_id"`
	TranscriptID primitive.ObjectID `bson:"transcript_id"`
	VideoID      primitive.ObjectID `bson:"video_id"`
	Language     string             `bson:"article_language"`
	Title        string             `bson:"title"`
	Content      string             `bson:"content"`
	Tags         string             `bson:"tags"`
	SEOMetadata  map[string]any     `bson:"seo_metadata"`
	Published    bool               `bson:"published"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (d articleDoc) toModel() *model.Article {
	return &model.Article{
		ID:           d.ID.Hex(),
		KeywordID:    d.KeywordID.Hex(),
		TranscriptID: d.TranscriptID.Hex(),
		VideoID:      d.VideoID.Hex(),
		Language:     d.Language,
		Title:        d.Title,
		Content:      d.Content,
		Tags:         d.Tags,
		SEOMetadata:  d.SEOMetadata,
		Published:    d.Published,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type MongoArticleRepository struct {
	coll *mongo.Collection
}

func NewMongoArticleRepository(m *Mongo) *MongoArticleRepository {
	return &MongoArticleRepository{coll: m.db.Collection(collArticles)}
}

func (r *MongoArticleRepository) Insert(ctx context.Context, article *model.Article) (string, error) {
	if err := article.Validate(); err != nil {
		return "", err
	}
	keywordOID, err := primitive.ObjectIDFromHex(article.KeywordID)
	if err != nil {
		return "", fmt.Errorf("invalid keyword id %q: %w", article.KeywordID, err)
	}
	transcriptOID, err := primitive.ObjectIDFromHex(article.TranscriptID)
	if err != nil {
		return "", fmt.Errorf("invalid transcript id %q: %w", article.TranscriptID, err)
	}
	videoOID, err := primitive.ObjectIDFromHex(article.VideoID)
	if err != nil {
		return "", fmt.Errorf("invalid video id %q: %w", article.VideoID, err)
	}

	now := time.Now().UTC()
	res, err := r.coll.InsertOne(ctx, articleDoc{
		KeywordID:    keywordOID,
		TranscriptID: transcriptOID,
		VideoID:      videoOID,
		Language:     article.Language,
		Title:        article.Title,
		Content:      article.Content,
		Tags:         article.Tags,
		SEOMetadata:  article.SEOMetadata,
		Published:    article.Published,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return "", fmt.Errorf("failed to insert article: %w", err)
	}

	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *MongoArticleRepository) FindByID(ctx context.Context, id string) (*model.Article, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var doc articleDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find article: %w", err)
	}

	return doc.toModel(), nil
}

func (r *MongoArticleRepository) FindByLanguage(ctx context.Context, language string) ([]*model.Article, error) {
	return r.find(ctx, bson.M{"article_language": language})
}

func (r *MongoArticleRepository) FindPublished(ctx context.Context) ([]*model.Article, error) {
	return r.find(ctx, bson.M{"published": true})
}

func (r *MongoArticleRepository) find(ctx context.Context, filter bson.M) ([]*model.Article, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find articles: %w", err)
	}
	defer cursor.Close(ctx)

	var articles []*model.Article
	for cursor.Next(ctx) {
		var doc articleDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode article: %w", err)
		}
		articles = append(articles, doc.toModel())
	}

	return articles, cursor.Err()
}

func (r *MongoArticleRepository) SetPublished(ctx context.Context, id string, published bool) (bool, error) {
	current, err := r.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	if current == nil || current.Published == published {
		return false, nil
	}

	oid, _ := primitive.ObjectIDFromHex(id)
	update := bson.M{"$set": bson.M{"published": published, "updated_at": time.Now().UTC()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return false, fmt.Errorf("failed to update article: %w", err)
	}

	return res.ModifiedCount > 0, nil
}
