package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/openboard/openboard-api/internal/domain/entity"
	"github.com/openboard/openboard-api/internal/domain/repository"
)

// CommentService covers the two comment operations: create and list by
// post. Comments have no update or delete path. postId is a free-text
// reference; deleting a post can orphan its comments.
type CommentService struct {
	Comments repository.Collection
	Logger   *logrus.Logger
}

func NewCommentService(comments repository.Collection, logger *logrus.Logger) *CommentService {
	return &CommentService{Comments: comments, Logger: logger}
}

func (s *CommentService) Create(ctx context.Context, doc map[string]any) (string, error) {
	return s.Comments.InsertOne(ctx, doc)
}

func (s *CommentService) ListByPost(ctx context.Context, postID string) ([]entity.Document, error) {
	return s.Comments.FindMany(ctx, entity.FieldPostID, postID)
}
