package user

import (
	"context"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/lumoshive/service-account-go/internal/user/entity"
	userrepo "github.com/lumoshive/service-account-go/internal/user/repo"
	"github.com/lumoshive/service-account-go/pkg/utilities"
)

// Repository is the credential store contract the service depends on.
type Repository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
}

var (
	ErrDuplicate      = errors.New("email or username already in use")
	ErrBadCredentials = errors.New("invalid email or password")
	ErrUserNotFound   = errors.New("user not found")
	ErrBadRequest     = errors.New("missing required fields")
)

// Service orchestrates account lifecycle flows: signup, login, profile update.
type Service struct {
	repo   Repository
	hasher PasswordHasher
}

func NewService(db *sqlx.DB, r Repository, hasher PasswordHasher) *Service {
	if r == nil {
		r = userrepo.NewUserRepo(db)
	}
	if hasher == nil {
		hasher = BcryptHasher{Cost: 12}
	}
	return &Service{repo: r, hasher: hasher}
}

// Register creates a user with a hashed password. Hashing happens here,
// before anything touches the store.
func (s *Service) Register(ctx context.Context, username, email, password string) (*entity.User, error) {
	username = strings.TrimSpace(username)
	email = normalizeEmail(email)
	if username == "" || email == "" || password == "" {
		return nil, ErrBadRequest
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		ID:           utilities.NewKSUID(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, userrepo.ErrDuplicate) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return u, nil
}

// Authenticate checks email and password. Missing user and wrong password
// both surface as ErrBadCredentials to avoid user enumeration.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, userrepo.ErrNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	if !s.hasher.Verify(u.PasswordHash, password) {
		return nil, ErrBadCredentials
	}
	return u, nil
}

// GetByID loads a user for downstream handlers.
func (s *Service) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userrepo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// ProfileUpdate carries the optional fields of an update request. Nil means
// "keep the prior value".
type ProfileUpdate struct {
	Username    *string
	Email       *string
	FirstName   *string
	LastName    *string
	PhoneNumber *string
	Password    *string
}

// UpdateProfile loads the user, applies the supplied fields and persists.
// A supplied password is re-hashed; an omitted one leaves the hash untouched.
func (s *Service) UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (*entity.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userrepo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if upd.Username != nil {
		u.Username = strings.TrimSpace(*upd.Username)
	}
	if upd.Email != nil {
		u.Email = normalizeEmail(*upd.Email)
	}
	if upd.FirstName != nil {
		u.FirstName = upd.FirstName
	}
	if upd.LastName != nil {
		u.LastName = upd.LastName
	}
	if upd.PhoneNumber != nil {
		u.PhoneNumber = upd.PhoneNumber
	}
	if upd.Password != nil && *upd.Password != "" {
		hash, err := s.hasher.Hash(*upd.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, u); err != nil {
		switch {
		case errors.Is(err, userrepo.ErrNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, userrepo.ErrDuplicate):
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
