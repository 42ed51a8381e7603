package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phones   []Phone
}

// UpdateInput carries a partial update: nil fields are left untouched.
type UpdateInput struct {
	Name     *string
	Email    *string
	Password *string
	Phones   *[]Phone
}

// UseCase describes the user lifecycle behavior.
type UseCase interface {
	Register(ctx context.Context, in RegisterInput) (User, error)
	ListAll(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateInput) (User, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo   Repository
	tokens TokenIssuer
}

// NewService returns default implementation of UseCase.
func NewService(repo Repository, tokens TokenIssuer) UseCase {
	return &service{repo: repo, tokens: tokens}
}

func (s *service) Register(ctx context.Context, in RegisterInput) (User, error) {
	// Best-effort duplicate check; the store's unique email constraint is
	// the backstop against two concurrent registrations.
	if _, err := s.repo.FindByEmail(ctx, in.Email); err == nil {
		return User{}, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	token, err := s.tokens.Issue(ctx, in.Email)
	if err != nil {
		return User{}, err
	}

	now := time.Now().UTC()
	u := User{
		ID:        uuid.New(),
		Name:      in.Name,
		Email:     in.Email,
		Password:  in.Password,
		Created:   now,
		Modified:  now,
		LastLogin: now,
		Token:     token,
		IsActive:  true,
		Phones:    in.Phones,
	}
	assignPhoneIDs(u.Phones)
	return s.repo.Save(ctx, u)
}

func (s *service) ListAll(ctx context.Context) ([]User, error) {
	return s.repo.ListAll(ctx)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return User{}, err
	}

	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.Password != nil {
		u.Password = *in.Password
	}
	if in.Phones != nil {
		u.Phones = *in.Phones
		assignPhoneIDs(u.Phones)
	}

	// id comes from the path; token, isActive and created are never touched.
	u.ID = id
	now := time.Now().UTC()
	u.Modified = now
	u.LastLogin = now

	return s.repo.Save(ctx, u)
}

func (s *service) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.DeleteByID(ctx, id)
}

func assignPhoneIDs(phones []Phone) {
	for i := range phones {
		if phones[i].ID == uuid.Nil {
			phones[i].ID = uuid.New()
		}
	}
}
