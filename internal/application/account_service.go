package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/openboard/openboard-api/internal/domain/entity"
	"github.com/openboard/openboard-api/internal/domain/repository"
)

// AccountService owns user registration and the role decisions behind
// the admin gate.
type AccountService struct {
	Users  repository.Collection
	Logger *logrus.Logger
}

func NewAccountService(users repository.Collection, logger *logrus.Logger) *AccountService {
	return &AccountService{Users: users, Logger: logger}
}

// RegisterResult reports either the new document id or a duplicate
// signal. A duplicate is not an error: the caller answers with a
// success envelope carrying a null inserted id.
type RegisterResult struct {
	InsertedID string
	Duplicate  bool
}

// Register creates the user unless the email is already taken.
// Uniqueness is a read-before-write check, not a store constraint, so
// two simultaneous registrations for the same email can both pass the
// lookup and both insert.
func (s *AccountService) Register(ctx context.Context, doc map[string]any) (RegisterResult, error) {
	email, _ := doc[entity.FieldEmail].(string)

	_, err := s.Users.FindOne(ctx, entity.FieldEmail, email)
	if err == nil {
		return RegisterResult{Duplicate: true}, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return RegisterResult{}, err
	}

	if _, ok := doc[entity.FieldRole]; !ok {
		doc[entity.FieldRole] = entity.RoleMember
	}
	id, err := s.Users.InsertOne(ctx, doc)
	if err != nil {
		return RegisterResult{}, err
	}
	s.Logger.WithFields(logrus.Fields{"email": email, "id": id}).Info("user registered")
	return RegisterResult{InsertedID: id}, nil
}

func (s *AccountService) List(ctx context.Context) ([]entity.Document, error) {
	return s.Users.FindMany(ctx, "", "")
}

func (s *AccountService) GetByEmail(ctx context.Context, email string) (entity.Document, error) {
	return s.Users.FindOne(ctx, entity.FieldEmail, email)
}

// ElevateToAdmin sets the role field on the user with the given store
// id. Returns ErrNotFound when the id matches nothing.
func (s *AccountService) ElevateToAdmin(ctx context.Context, id string) error {
	matched, err := s.Users.UpdateByID(ctx, id, map[string]any{entity.FieldRole: entity.RoleAdmin})
	if err != nil {
		return err
	}
	if matched == 0 {
		return repository.ErrNotFound
	}
	s.Logger.WithField("id", id).Info("user elevated to admin")
	return nil
}

// IsAdmin reports whether the user behind the email holds the admin
// role. A missing user is simply not an admin; only store faults error.
func (s *AccountService) IsAdmin(ctx context.Context, email string) (bool, error) {
	doc, err := s.Users.FindOne(ctx, entity.FieldEmail, email)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return entity.UserFromDocument(doc).IsAdmin(), nil
}
