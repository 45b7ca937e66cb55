package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"vidhub/pkg/models"
)

// In-memory collaborators for service tests. They implement the same
// interfaces the pgx repositories and the minio store do.

type fakeVideoRepo struct {
	videos   map[string]*models.Video
	comments map[string][]models.Comment
	failSave bool
	nextPos  int64
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{
		videos:   make(map[string]*models.Video),
		comments: make(map[string][]models.Comment),
	}
}

func (r *fakeVideoRepo) Create(ctx context.Context, video *models.Video) error {
	// nil tags would encode as SQL NULL and trip the NOT NULL column
	if video.Tags == nil {
		return models.NewPersistenceError("database error during create_video", errors.New("null value in column \"tags\""))
	}
	cp := *video
	r.videos[video.ID] = &cp
	return nil
}

func (r *fakeVideoRepo) GetByID(ctx context.Context, id string) (*models.Video, error) {
	v, ok := r.videos[id]
	if !ok {
		return nil, models.NewNotFound("video not found", errors.New("no rows"))
	}
	cp := *v
	return &cp, nil
}

func (r *fakeVideoRepo) Save(ctx context.Context, video *models.Video) error {
	if r.failSave {
		return models.NewPersistenceError("database error during save_video", errors.New("connection reset"))
	}
	if video.Tags == nil {
		return models.NewPersistenceError("database error during save_video", errors.New("null value in column \"tags\""))
	}
	cp := *video
	r.videos[video.ID] = &cp
	return nil
}

func (r *fakeVideoRepo) List(ctx context.Context) ([]models.Video, error) {
	out := make([]models.Video, 0, len(r.videos))
	for _, v := range r.videos {
		out = append(out, *v)
	}
	return out, nil
}

func (r *fakeVideoRepo) AddComment(ctx context.Context, comment *models.Comment) error {
	r.nextPos++
	comment.Position = r.nextPos
	r.comments[comment.VideoID] = append(r.comments[comment.VideoID], *comment)
	return nil
}

func (r *fakeVideoRepo) ListComments(ctx context.Context, videoID string) ([]models.Comment, error) {
	return append([]models.Comment{}, r.comments[videoID]...), nil
}

type fakeUserRepo struct {
	users    map[string]*models.User // keyed by sub
	liked    map[string]map[string]bool
	disliked map[string]map[string]bool
	history  map[string][]models.WatchHistoryEntry
	failSets bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:    make(map[string]*models.User),
		liked:    make(map[string]map[string]bool),
		disliked: make(map[string]map[string]bool),
		history:  make(map[string][]models.WatchHistoryEntry),
	}
}

func (r *fakeUserRepo) FindOrCreateBySub(ctx context.Context, sub string) (*models.User, error) {
	if u, ok := r.users[sub]; ok {
		cp := *u
		return &cp, nil
	}
	u := &models.User{
		ID:        fmt.Sprintf("user-%d", len(r.users)+1),
		Sub:       sub,
		CreatedAt: time.Now(),
	}
	r.users[sub] = u
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, models.NewNotFound("user not found", errors.New("no rows"))
}

func (r *fakeUserRepo) set(m map[string]map[string]bool, userID string) map[string]bool {
	if m[userID] == nil {
		m[userID] = make(map[string]bool)
	}
	return m[userID]
}

func (r *fakeUserRepo) AddLiked(ctx context.Context, userID, videoID string) error {
	if r.failSets {
		return models.NewPersistenceError("database error during add_liked", errors.New("connection reset"))
	}
	r.set(r.liked, userID)[videoID] = true
	return nil
}

func (r *fakeUserRepo) RemoveLiked(ctx context.Context, userID, videoID string) error {
	if r.failSets {
		return models.NewPersistenceError("database error during remove_liked", errors.New("connection reset"))
	}
	delete(r.set(r.liked, userID), videoID)
	return nil
}

func (r *fakeUserRepo) AddDisliked(ctx context.Context, userID, videoID string) error {
	if r.failSets {
		return models.NewPersistenceError("database error during add_disliked", errors.New("connection reset"))
	}
	r.set(r.disliked, userID)[videoID] = true
	return nil
}

func (r *fakeUserRepo) RemoveDisliked(ctx context.Context, userID, videoID string) error {
	if r.failSets {
		return models.NewPersistenceError("database error during remove_disliked", errors.New("connection reset"))
	}
	delete(r.set(r.disliked, userID), videoID)
	return nil
}

func (r *fakeUserRepo) IsLiked(ctx context.Context, userID, videoID string) (bool, error) {
	return r.set(r.liked, userID)[videoID], nil
}

func (r *fakeUserRepo) IsDisliked(ctx context.Context, userID, videoID string) (bool, error) {
	return r.set(r.disliked, userID)[videoID], nil
}

func (r *fakeUserRepo) AppendHistory(ctx context.Context, userID, videoID string) error {
	r.history[userID] = append(r.history[userID], models.WatchHistoryEntry{
		VideoID:   videoID,
		WatchedAt: time.Now(),
	})
	return nil
}

func (r *fakeUserRepo) GetHistory(ctx context.Context, userID string) ([]models.WatchHistoryEntry, error) {
	return append([]models.WatchHistoryEntry{}, r.history[userID]...), nil
}

func (r *fakeUserRepo) historyCount(userID, videoID string) int {
	n := 0
	for _, e := range r.history[userID] {
		if e.VideoID == videoID {
			n++
		}
	}
	return n
}

type fakeObjectStore struct {
	uploads int
	failPut bool
}

func (s *fakeObjectStore) Upload(ctx context.Context, r io.Reader, size int64, contentType string) (string, error) {
	if s.failPut {
		return "", models.NewUploadError("failed to upload object", errors.New("connection refused"))
	}
	s.uploads++
	return fmt.Sprintf("http://storage.local/vidhub/object-%d", s.uploads), nil
}

func seedVideo(repo *fakeVideoRepo, id string) *models.Video {
	video := &models.Video{
		ID:        id,
		Title:     "seed",
		Tags:      []string{},
		VideoURL:  "http://storage.local/vidhub/" + id,
		Status:    string(models.VideoStatusPublic),
		CreatedAt: time.Now(),
	}
	repo.videos[id] = video
	return video
}
