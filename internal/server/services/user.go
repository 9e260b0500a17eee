// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, token refresh and the
// username/email availability check.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/server/auth"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenSigner mints and verifies the two token kinds.
type TokenSigner interface {
	IssueAccess(subjectID string) (string, error)
	IssueRefresh(subjectID string) (string, error)
	Verify(token string, kind auth.TokenKind) (string, error)
}

type RegisterInput struct {
	UserName        string
	FullName        string
	Email           string
	Password        string
	ConfirmPassword string
}

// UserService provides authentication-related operations:
//   - Register: create the account, its profile and its session
//   - Login: verify credentials and rotate the session token
//   - RefreshToken: swap a still-current refresh token for a new pair
//   - CheckUser: report whether a username or email is taken
type UserService struct {
	repomanager repomanager.RepositoryManager
	hasher      auth.Hasher
	signer      TokenSigner
	log         logging.Logger
}

func NewUserService(m repomanager.RepositoryManager, hasher auth.Hasher, signer TokenSigner, log logging.Logger) *UserService {
	return &UserService{repomanager: m, hasher: hasher, signer: signer, log: log}
}

// Register creates the user together with an empty profile and a session
// holding the new refresh token. Nothing is stored unless all three writes
// succeed.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*TokenPair, error) {
	if in.Password != in.ConfirmPassword {
		return nil, fmt.Errorf("%w: password and confirmPassword do not match", common.ErrorValidation)
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: hashing password: %v", common.ErrorInternal, err)
	}

	var (
		pair   *TokenPair
		userID string
	)
	err = s.repomanager.InTx(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		user, err := r.Users.Create(ctx, &models.User{
			UserName:     in.UserName,
			FullName:     in.FullName,
			Email:        in.Email,
			PasswordHash: digest,
		})
		if err != nil {
			return err
		}
		userID = user.ID

		if _, err := r.Profiles.Create(ctx, user.ID); err != nil {
			return err
		}

		pair, err = s.generateTokenPair(user.ID)
		if err != nil {
			return err
		}
		return r.Sessions.Create(ctx, user.ID, pair.RefreshToken)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "user registered", "user_id", userID)
	return pair, nil
}

// Login looks the user up by username or email and, when the password
// verifies, replaces the stored refresh token.
func (s *UserService) Login(ctx context.Context, login, password string) (*TokenPair, error) {
	repos := s.repomanager.Repositories()

	user, err := repos.Users.GetByUserNameOrEmail(ctx, login)
	if err != nil {
		return nil, err
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, common.ErrorUnauthorized
	}

	pair, err := s.generateTokenPair(user.ID)
	if err != nil {
		return nil, err
	}
	if err := repos.Sessions.Rotate(ctx, user.ID, pair.RefreshToken); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "user logged in", "user_id", user.ID)
	return pair, nil
}

// RefreshToken verifies the presented refresh token and swaps it for a new
// pair. The swap only happens while the presented token is still the stored
// one, so a token can be exchanged once.
func (s *UserService) RefreshToken(ctx context.Context, presented string) (*TokenPair, error) {
	userID, err := s.signer.Verify(presented, auth.RefreshToken)
	if err != nil {
		return nil, err
	}

	pair, err := s.generateTokenPair(userID)
	if err != nil {
		return nil, err
	}
	if err := s.repomanager.Repositories().Sessions.RotateIfMatch(ctx, userID, presented, pair.RefreshToken); err != nil {
		return nil, err
	}

	s.log.Warn(ctx, "user token refreshed", "user_id", userID)
	return pair, nil
}

// CheckUser returns nil when login is free and common.ErrorConflict when an
// account already uses it as username or email.
func (s *UserService) CheckUser(ctx context.Context, login string) error {
	_, err := s.repomanager.Repositories().Users.GetByUserNameOrEmail(ctx, login)

	s.log.Info(ctx, "account availability checked")

	switch {
	case err == nil:
		return common.ErrorConflict
	case errors.Is(err, common.ErrorNotFound):
		return nil
	default:
		return err
	}
}

func (s *UserService) generateTokenPair(userID string) (*TokenPair, error) {
	access, err := s.signer.IssueAccess(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: issuing access token: %v", common.ErrorInternal, err)
	}
	refresh, err := s.signer.IssueRefresh(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: issuing refresh token: %v", common.ErrorInternal, err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
