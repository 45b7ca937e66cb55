package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"vidhub/pkg/models"
)

// VideoRepository is the video catalog: CRUD on the video aggregate plus
// comment append/list. Save is a full-row overwrite, no partial patching.
type VideoRepository interface {
	Create(ctx context.Context, video *models.Video) error
	GetByID(ctx context.Context, id string) (*models.Video, error)
	Save(ctx context.Context, video *models.Video) error
	List(ctx context.Context) ([]models.Video, error)

	AddComment(ctx context.Context, comment *models.Comment) error
	ListComments(ctx context.Context, videoID string) ([]models.Comment, error)
}

type videoRepository struct {
	pool *pgxpool.Pool
}

// NewVideoRepository creates a new PostgreSQL video repository
func NewVideoRepository(pool *pgxpool.Pool) VideoRepository {
	return &videoRepository{pool: pool}
}

// Create inserts a new video row
func (r *videoRepository) Create(ctx context.Context, video *models.Video) error {
	query := `
		INSERT INTO videos (id, title, description, tags, video_url, thumbnail_url, status,
		                    view_count, likes_count, dislikes_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, COALESCE($11, CURRENT_TIMESTAMP), CURRENT_TIMESTAMP)
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		video.ID,
		video.Title,
		video.Description,
		tagsOrEmpty(video.Tags),
		video.VideoURL,
		nullable(video.ThumbnailURL),
		video.Status,
		video.ViewCount,
		video.LikesCount,
		video.DislikesCount,
		video.CreatedAt,
	).Scan(&video.CreatedAt, &video.UpdatedAt)

	if err != nil {
		return r.mapDBError(err, "create_video")
	}
	return nil
}

// GetByID retrieves a video by ID
func (r *videoRepository) GetByID(ctx context.Context, id string) (*models.Video, error) {
	query := `
		SELECT id, title, description, tags, video_url, COALESCE(thumbnail_url, ''), status,
		       view_count, likes_count, dislikes_count, created_at, updated_at
		FROM videos
		WHERE id = $1
	`
	video := &models.Video{}

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&video.ID,
		&video.Title,
		&video.Description,
		&video.Tags,
		&video.VideoURL,
		&video.ThumbnailURL,
		&video.Status,
		&video.ViewCount,
		&video.LikesCount,
		&video.DislikesCount,
		&video.CreatedAt,
		&video.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, models.NewNotFound("video not found", err)
	}
	if err != nil {
		return nil, r.mapDBError(err, "get_video_by_id")
	}
	return video, nil
}

// Save overwrites the whole video row (upsert). video_url is written as-is;
// callers never change it after creation.
func (r *videoRepository) Save(ctx context.Context, video *models.Video) error {
	query := `
		INSERT INTO videos (id, title, description, tags, video_url, thumbnail_url, status,
		                    view_count, likes_count, dislikes_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, COALESCE($11, CURRENT_TIMESTAMP), CURRENT_TIMESTAMP)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			tags = EXCLUDED.tags,
			video_url = EXCLUDED.video_url,
			thumbnail_url = EXCLUDED.thumbnail_url,
			status = EXCLUDED.status,
			view_count = EXCLUDED.view_count,
			likes_count = EXCLUDED.likes_count,
			dislikes_count = EXCLUDED.dislikes_count,
			updated_at = CURRENT_TIMESTAMP
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		video.ID,
		video.Title,
		video.Description,
		tagsOrEmpty(video.Tags),
		video.VideoURL,
		nullable(video.ThumbnailURL),
		video.Status,
		video.ViewCount,
		video.LikesCount,
		video.DislikesCount,
		video.CreatedAt,
	).Scan(&video.UpdatedAt)

	if err != nil {
		return r.mapDBError(err, "save_video")
	}
	return nil
}

// List returns every video. No pagination: the catalog is served whole.
func (r *videoRepository) List(ctx context.Context) ([]models.Video, error) {
	query := `
		SELECT id, title, description, tags, video_url, COALESCE(thumbnail_url, ''), status,
		       view_count, likes_count, dislikes_count, created_at, updated_at
		FROM videos
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, r.mapDBError(err, "list_videos")
	}
	defer rows.Close()

	videos := []models.Video{}
	for rows.Next() {
		var video models.Video
		if err := rows.Scan(
			&video.ID,
			&video.Title,
			&video.Description,
			&video.Tags,
			&video.VideoURL,
			&video.ThumbnailURL,
			&video.Status,
			&video.ViewCount,
			&video.LikesCount,
			&video.DislikesCount,
			&video.CreatedAt,
			&video.UpdatedAt,
		); err != nil {
			return nil, r.mapDBError(err, "list_videos")
		}
		videos = append(videos, video)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapDBError(err, "list_videos")
	}
	return videos, nil
}

// AddComment appends a comment to its video. The bigserial position column
// fixes append order regardless of clock resolution.
func (r *videoRepository) AddComment(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO video_comments (video_id, author_id, text, created_at)
		VALUES ($1, $2, $3, COALESCE($4, CURRENT_TIMESTAMP))
		RETURNING position, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		comment.VideoID,
		comment.AuthorID,
		comment.Text,
		comment.CreatedAt,
	).Scan(&comment.Position, &comment.CreatedAt)

	if err != nil {
		return r.mapDBError(err, "add_comment")
	}
	return nil
}

// ListComments returns a video's comments in append order
func (r *videoRepository) ListComments(ctx context.Context, videoID string) ([]models.Comment, error) {
	query := `
		SELECT position, video_id, author_id, text, created_at
		FROM video_comments
		WHERE video_id = $1
		ORDER BY position
	`

	rows, err := r.pool.Query(ctx, query, videoID)
	if err != nil {
		return nil, r.mapDBError(err, "list_comments")
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var comment models.Comment
		if err := rows.Scan(
			&comment.Position,
			&comment.VideoID,
			&comment.AuthorID,
			&comment.Text,
			&comment.CreatedAt,
		); err != nil {
			return nil, r.mapDBError(err, "list_comments")
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapDBError(err, "list_comments")
	}
	return comments, nil
}

// mapDBError maps database errors to API error kinds. Store failures are
// persistence errors: propagated, not retried.
func (r *videoRepository) mapDBError(err error, operation string) error {
	if err == pgx.ErrNoRows {
		return models.NewNotFound("resource not found", err)
	}

	if pgErr, ok := err.(*pgconn.PgError); ok {
		switch pgErr.Code {
		case "23505": // unique_violation
			return models.NewHTTPError(models.ErrCodeBadRequest, "resource already exists", 409, err)
		case "23503": // foreign_key_violation
			return models.NewBadRequest("invalid relationship", err)
		case "22P02": // invalid_text_representation
			return models.NewBadRequest("invalid input format", err)
		}
	}

	return models.NewPersistenceError("database error during "+operation, err)
}

// nullable maps empty strings to NULL so COALESCE defaults apply
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// tagsOrEmpty maps a nil slice to an empty array. pgx encodes nil as SQL
// NULL, which the NOT NULL tags column rejects.
func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
