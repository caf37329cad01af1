package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/contactkeeper/internal/common"
	"github.com/dmitrijs2005/contactkeeper/internal/dbx"
	"github.com/dmitrijs2005/contactkeeper/internal/server/models"
	"github.com/dmitrijs2005/contactkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/contactkeeper/internal/server/repositories/users"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// bcrypt ignores everything past 72 bytes; longer passwords are cut there
// instead of being rejected.
const bcryptMaxInput = 72

type UserService struct {
	db          *sql.DB
	repoManager repomanager.RepositoryManager
	bcryptCost  int
	newToken    func() string
	dummyHash   []byte
}

// generateFromPassword is a seam for testing bcrypt failures.
var generateFromPassword = bcrypt.GenerateFromPassword

func NewUserService(db *sql.DB, rm repomanager.RepositoryManager, bcryptCost int) (*UserService, error) {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}

	// Login against an unknown username still pays for one comparison.
	dummy, err := generateFromPassword([]byte("contactkeeper-dummy"), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("dummy hash: %w", err)
	}

	return &UserService{
		db:          db,
		repoManager: rm,
		bcryptCost:  bcryptCost,
		newToken:    uuid.NewString,
		dummyHash:   dummy,
	}, nil
}

func bcryptInput(password string) []byte {
	b := []byte(password)
	if len(b) > bcryptMaxInput {
		b = b[:bcryptMaxInput]
	}
	return b
}

func (s *UserService) hashPassword(password string) (string, error) {
	h, err := generateFromPassword(bcryptInput(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), bcryptInput(password)) == nil
}

func internal(err error) error {
	return fmt.Errorf("%w: %w", common.ErrorInternal, err)
}

// Register creates an account. A taken username yields
// common.ErrorUsernameTaken whether it is caught by the lookup or by the
// unique constraint of a concurrent insert.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	in = in.normalize()

	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return nil, internal(err)
	}

	var user *models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repoManager.Users(tx)

		_, err := repo.GetByUsername(ctx, in.Username)
		if err == nil {
			return common.ErrorUsernameTaken
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		user, err = repo.Create(ctx, &models.User{
			Username:     in.Username,
			PasswordHash: hash,
			Name:         in.Name,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorUsernameTaken) {
			return nil, err
		}
		return nil, internal(err)
	}

	return user, nil
}

// Login checks the credentials and issues a fresh token, replacing any token
// the user held before. Unknown usernames and wrong passwords both yield
// common.ErrorInvalidCredentials.
func (s *UserService) Login(ctx context.Context, in LoginInput) (*models.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	in = in.normalize()

	repo := s.repoManager.Users(s.db)

	user, err := repo.GetByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, bcryptInput(in.Password))
			return nil, common.ErrorInvalidCredentials
		}
		return nil, internal(err)
	}

	if !checkPassword(user.PasswordHash, in.Password) {
		return nil, common.ErrorInvalidCredentials
	}

	token := s.newToken()
	if err := repo.SetToken(ctx, user.ID, &token); err != nil {
		return nil, internal(err)
	}
	user.Token = &token

	return user, nil
}

// Resolve maps a bearer token to its user. Empty, unknown and revoked tokens
// yield common.ErrorUnauthorized.
func (s *UserService) Resolve(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, common.ErrorUnauthorized
	}

	user, err := s.repoManager.Users(s.db).GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, internal(err)
	}

	return user, nil
}

// Logout revokes the user's token.
func (s *UserService) Logout(ctx context.Context, user *models.User) error {
	err := s.repoManager.Users(s.db).SetToken(ctx, user.ID, nil)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorUnauthorized
		}
		return internal(err)
	}
	user.Token = nil
	return nil
}

// UpdateProfile changes the name and/or password of user. Absent fields keep
// their stored values; a new password is hashed before storage.
func (s *UserService) UpdateProfile(ctx context.Context, user *models.User, in UpdateUserInput) (*models.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	in = in.normalize()

	var u users.Update
	if in.Name != nil {
		u.Name = in.Name
	}
	if in.Password != nil {
		hash, err := s.hashPassword(*in.Password)
		if err != nil {
			return nil, internal(err)
		}
		u.PasswordHash = &hash
	}

	updated, err := s.repoManager.Users(s.db).Update(ctx, user.ID, u)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, internal(err)
	}

	return updated, nil
}
