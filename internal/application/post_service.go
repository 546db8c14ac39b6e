package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/openboard/openboard-api/internal/domain/entity"
	"github.com/openboard/openboard-api/internal/domain/repository"
)

// PostService is a thin pass-through to the post collection. Posts are
// opaque documents; authorEmail is a free-text reference, never checked
// against the users collection, and any authenticated caller may patch
// or delete any post.
type PostService struct {
	Posts  repository.Collection
	Logger *logrus.Logger
}

func NewPostService(posts repository.Collection, logger *logrus.Logger) *PostService {
	return &PostService{Posts: posts, Logger: logger}
}

func (s *PostService) Create(ctx context.Context, doc map[string]any) (string, error) {
	return s.Posts.InsertOne(ctx, doc)
}

func (s *PostService) List(ctx context.Context) ([]entity.Document, error) {
	return s.Posts.FindMany(ctx, "", "")
}

func (s *PostService) Get(ctx context.Context, id string) (entity.Document, error) {
	return s.Posts.FindByID(ctx, id)
}

// Patch merges an arbitrary partial document into the post. No field
// whitelist: vote counters and content edits arrive the same way.
func (s *PostService) Patch(ctx context.Context, id string, patch map[string]any) (int64, error) {
	return s.Posts.UpdateByID(ctx, id, patch)
}

func (s *PostService) Delete(ctx context.Context, id string) (int64, error) {
	return s.Posts.DeleteByID(ctx, id)
}

func (s *PostService) ListByAuthor(ctx context.Context, email string) ([]entity.Document, error) {
	return s.Posts.FindMany(ctx, entity.FieldAuthorEmail, email)
}
