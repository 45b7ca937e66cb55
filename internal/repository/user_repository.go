package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"vidhub/pkg/models"
)

// UserRepository is the user directory: subject-keyed user records plus the
// per-user liked/disliked sets and the append-only watch history.
type UserRepository interface {
	FindOrCreateBySub(ctx context.Context, sub string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)

	AddLiked(ctx context.Context, userID, videoID string) error
	RemoveLiked(ctx context.Context, userID, videoID string) error
	AddDisliked(ctx context.Context, userID, videoID string) error
	RemoveDisliked(ctx context.Context, userID, videoID string) error
	IsLiked(ctx context.Context, userID, videoID string) (bool, error)
	IsDisliked(ctx context.Context, userID, videoID string) (bool, error)

	AppendHistory(ctx context.Context, userID, videoID string) error
	GetHistory(ctx context.Context, userID string) ([]models.WatchHistoryEntry, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

// FindOrCreateBySub resolves a user by external subject, provisioning the
// row on first sight. Concurrent first requests for the same subject race
// on the unique sub index; the loser re-reads the winner's row.
func (r *userRepository) FindOrCreateBySub(ctx context.Context, sub string) (*models.User, error) {
	user, err := r.getBySub(ctx, sub)
	if err == nil {
		return user, nil
	}
	if models.StatusOf(err) != 404 {
		return nil, err
	}

	query := `
		INSERT INTO users (id, sub, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (sub) DO NOTHING
		RETURNING id, sub, created_at
	`
	user = &models.User{}
	err = r.pool.QueryRow(ctx, query, uuid.New().String(), sub, time.Now()).Scan(
		&user.ID,
		&user.Sub,
		&user.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		// lost the race, the row exists now
		return r.getBySub(ctx, sub)
	}
	if err != nil {
		return nil, r.mapDBError(err, "create_user")
	}
	return user, nil
}

func (r *userRepository) getBySub(ctx context.Context, sub string) (*models.User, error) {
	query := `SELECT id, sub, created_at FROM users WHERE sub = $1`
	user := &models.User{}

	err := r.pool.QueryRow(ctx, query, sub).Scan(&user.ID, &user.Sub, &user.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, models.NewNotFound("user not found", err)
	}
	if err != nil {
		return nil, r.mapDBError(err, "get_user_by_sub")
	}
	return user, nil
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT id, sub, created_at FROM users WHERE id = $1`
	user := &models.User{}

	err := r.pool.QueryRow(ctx, query, id).Scan(&user.ID, &user.Sub, &user.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, models.NewNotFound("user not found", err)
	}
	if err != nil {
		return nil, r.mapDBError(err, "get_user_by_id")
	}
	return user, nil
}

// AddLiked adds a video to the user's liked set
func (r *userRepository) AddLiked(ctx context.Context, userID, videoID string) error {
	query := `
		INSERT INTO user_video_likes (user_id, video_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, video_id) DO NOTHING
	`
	if _, err := r.pool.Exec(ctx, query, userID, videoID); err != nil {
		return r.mapDBError(err, "add_liked")
	}
	return nil
}

// RemoveLiked removes a video from the user's liked set
func (r *userRepository) RemoveLiked(ctx context.Context, userID, videoID string) error {
	query := `DELETE FROM user_video_likes WHERE user_id = $1 AND video_id = $2`
	if _, err := r.pool.Exec(ctx, query, userID, videoID); err != nil {
		return r.mapDBError(err, "remove_liked")
	}
	return nil
}

// AddDisliked adds a video to the user's disliked set
func (r *userRepository) AddDisliked(ctx context.Context, userID, videoID string) error {
	query := `
		INSERT INTO user_video_dislikes (user_id, video_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, video_id) DO NOTHING
	`
	if _, err := r.pool.Exec(ctx, query, userID, videoID); err != nil {
		return r.mapDBError(err, "add_disliked")
	}
	return nil
}

// RemoveDisliked removes a video from the user's disliked set
func (r *userRepository) RemoveDisliked(ctx context.Context, userID, videoID string) error {
	query := `DELETE FROM user_video_dislikes WHERE user_id = $1 AND video_id = $2`
	if _, err := r.pool.Exec(ctx, query, userID, videoID); err != nil {
		return r.mapDBError(err, "remove_disliked")
	}
	return nil
}

// IsLiked checks membership in the user's liked set
func (r *userRepository) IsLiked(ctx context.Context, userID, videoID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM user_video_likes WHERE user_id = $1 AND video_id = $2)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, userID, videoID).Scan(&exists); err != nil {
		return false, r.mapDBError(err, "is_liked")
	}
	return exists, nil
}

// IsDisliked checks membership in the user's disliked set
func (r *userRepository) IsDisliked(ctx context.Context, userID, videoID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM user_video_dislikes WHERE user_id = $1 AND video_id = $2)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, userID, videoID).Scan(&exists); err != nil {
		return false, r.mapDBError(err, "is_disliked")
	}
	return exists, nil
}

// AppendHistory appends a watch-history record. Duplicates allowed.
func (r *userRepository) AppendHistory(ctx context.Context, userID, videoID string) error {
	query := `
		INSERT INTO user_watch_history (user_id, video_id, watched_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
	`
	if _, err := r.pool.Exec(ctx, query, userID, videoID); err != nil {
		return r.mapDBError(err, "append_history")
	}
	return nil
}

// GetHistory returns the user's watch history in append order
func (r *userRepository) GetHistory(ctx context.Context, userID string) ([]models.WatchHistoryEntry, error) {
	query := `
		SELECT video_id, watched_at
		FROM user_watch_history
		WHERE user_id = $1
		ORDER BY position
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, r.mapDBError(err, "get_history")
	}
	defer rows.Close()

	history := []models.WatchHistoryEntry{}
	for rows.Next() {
		var entry models.WatchHistoryEntry
		if err := rows.Scan(&entry.VideoID, &entry.WatchedAt); err != nil {
			return nil, r.mapDBError(err, "get_history")
		}
		history = append(history, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapDBError(err, "get_history")
	}
	return history, nil
}

// mapDBError maps database errors to API error kinds
func (r *userRepository) mapDBError(err error, operation string) error {
	if err == pgx.ErrNoRows {
		return models.NewNotFound("resource not found", err)
	}

	if pgErr, ok := err.(*pgconn.PgError); ok {
		switch pgErr.Code {
		case "23503": // foreign_key_violation
			return models.NewBadRequest("invalid relationship", err)
		case "22P02": // invalid_text_representation
			return models.NewBadRequest("invalid input format", err)
		}
	}

	return models.NewPersistenceError("database error during "+operation, err)
}
