// Package services contains server-side business logic: account lifecycle,
// sessions and token rotation, one-time mail tokens, profile documents and
// avatar upload slots.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kampanlabs/sawari/internal/common"
	"github.com/kampanlabs/sawari/internal/dbx"
	"github.com/kampanlabs/sawari/internal/server/auth"
	"github.com/kampanlabs/sawari/internal/server/config"
	"github.com/kampanlabs/sawari/internal/server/mailer"
	"github.com/kampanlabs/sawari/internal/server/models"
	"github.com/kampanlabs/sawari/internal/server/ratelimit"
	"github.com/kampanlabs/sawari/internal/server/repositories/repomanager"
)

// MinPasswordLen is the weakest password the backend accepts.
const MinPasswordLen = 6

const actionTokenValidity = 24 * time.Hour

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Throttle is the consumed surface of the sign-in rate limiter.
type Throttle interface {
	Blocked(ctx context.Context, id string) (bool, error)
	Fail(ctx context.Context, id string) error
	Reset(ctx context.Context, id string) error
}

var _ Throttle = (*ratelimit.Limiter)(nil)

// IdentityService provides account and session operations:
//   - CreateAccount: register, issue verification mail, sign the session in
//   - SignIn: verify credentials under the throttle and mint tokens
//   - Refresh: rotate refresh tokens and mint new access tokens
//   - SignOut / SendVerification / ConfirmVerification / SendPasswordReset
type IdentityService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	throttle                     Throttle
	mail                         mailer.Mailer
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

// NewIdentityService constructs an IdentityService using repositories and
// server config.
func NewIdentityService(db *sql.DB, m repomanager.RepositoryManager, throttle Throttle, mail mailer.Mailer, cfg *config.Config) *IdentityService {
	return &IdentityService{
		db:                           db,
		repomanager:                  m,
		throttle:                     throttle,
		mail:                         mail,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// CreateAccount registers a new identity. Like the managed service it stands
// in for, a successful creation also opens a session, and a verification
// mail goes out before the response returns.
func (s *IdentityService) CreateAccount(ctx context.Context, email, password string) (*models.Account, *TokenPair, error) {
	email = normalizeEmail(email)
	if len(password) < MinPasswordLen {
		return nil, nil, common.ErrorWeakPassword
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, nil, common.ErrorInternal
	}

	repo := s.repomanager.Accounts(s.db)
	account, err := repo.Create(ctx, &models.Account{Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorEmailExists) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("error creating account: %v", err)
	}

	if err := s.issueActionToken(ctx, account, models.ActionVerifyEmail); err != nil {
		// Account exists either way; the client can request a resend.
		return nil, nil, fmt.Errorf("error issuing verification token: %v", err)
	}

	pair, err := s.generateTokenPair(ctx, account.ID, s.db)
	if err != nil {
		return nil, nil, err
	}
	return account, pair, nil
}

// SignIn verifies credentials and, on success, returns the account and a new
// TokenPair. Failures count against the per-identifier throttle.
func (s *IdentityService) SignIn(ctx context.Context, email, password string) (*models.Account, *TokenPair, error) {
	email = normalizeEmail(email)

	blocked, err := s.throttle.Blocked(ctx, email)
	if err != nil {
		return nil, nil, common.ErrorInternal
	}
	if blocked {
		return nil, nil, common.ErrorTooManyRequests
	}

	repo := s.repomanager.Accounts(s.db)
	account, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrorNotFound
		}
		return nil, nil, common.ErrorInternal
	}
	if account.Disabled {
		return nil, nil, common.ErrorAccountDisabled
	}

	ok, err := auth.VerifyPassword(password, account.PasswordHash)
	if err != nil {
		return nil, nil, common.ErrorInternal
	}
	if !ok {
		_ = s.throttle.Fail(ctx, email)
		return nil, nil, common.ErrorUnauthorized
	}

	_ = s.throttle.Reset(ctx, email)

	pair, err := s.generateTokenPair(ctx, account.ID, s.db)
	if err != nil {
		return nil, nil, err
	}
	return account, pair, nil
}

// Refresh validates a refresh token, rotates it transactionally, and returns
// the account with a fresh TokenPair. Expired tokens yield
// common.ErrRefreshTokenExpired.
func (s *IdentityService) Refresh(ctx context.Context, refreshToken string) (*models.Account, *TokenPair, error) {
	repo := s.repomanager.RefreshTokens(s.db)

	token, err := repo.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrInvalidToken
		}
		return nil, nil, fmt.Errorf("error searching refresh token: %v", err)
	}
	if token.Expires.Before(time.Now()) {
		return nil, nil, common.ErrRefreshTokenExpired
	}

	account, err := s.repomanager.Accounts(s.db).GetByID(ctx, token.AccountID)
	if err != nil {
		return nil, nil, common.ErrorInternal
	}

	var pair *TokenPair
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.RefreshTokens(tx)
		if err := repoTx.Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("error deleting refresh token: %v", err)
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, token.AccountID, tx)
		return genErr
	}); err != nil {
		return nil, nil, err
	}
	return account, pair, nil
}

// SignOut invalidates one refresh token. Unknown tokens are not an error;
// the session is gone either way.
func (s *IdentityService) SignOut(ctx context.Context, refreshToken string) error {
	repo := s.repomanager.RefreshTokens(s.db)
	if err := repo.Delete(ctx, refreshToken); err != nil {
		return fmt.Errorf("error deleting refresh token: %v", err)
	}
	return nil
}

// GetAccount returns the account row for id.
func (s *IdentityService) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	return s.repomanager.Accounts(s.db).GetByID(ctx, id)
}

// UpdateDisplayName changes the display name and returns the updated account.
func (s *IdentityService) UpdateDisplayName(ctx context.Context, id, displayName string) (*models.Account, error) {
	repo := s.repomanager.Accounts(s.db)
	if err := repo.UpdateDisplayName(ctx, id, displayName); err != nil {
		return nil, fmt.Errorf("error updating display name: %v", err)
	}
	return repo.GetByID(ctx, id)
}

// LookupMethods returns the registered sign-in methods for an email. An
// unknown email yields an empty slice, not an error.
func (s *IdentityService) LookupMethods(ctx context.Context, email string) ([]string, error) {
	_, err := s.repomanager.Accounts(s.db).GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return []string{}, nil
		}
		return nil, common.ErrorInternal
	}
	return []string{"password"}, nil
}

// SendVerification issues a fresh verification token and mails it. Unknown
// emails are silently accepted so the endpoint does not leak account
// existence.
func (s *IdentityService) SendVerification(ctx context.Context, email string) error {
	return s.sendActionMail(ctx, email, models.ActionVerifyEmail)
}

// ConfirmVerification redeems a verification token and marks the account's
// email verified. Expired tokens yield common.ErrTokenExpired.
func (s *IdentityService) ConfirmVerification(ctx context.Context, token string) error {
	repo := s.repomanager.ActionTokens(s.db)

	at, err := repo.Find(ctx, models.ActionVerifyEmail, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrInvalidToken
		}
		return fmt.Errorf("error searching verification token: %v", err)
	}
	if at.Expires.Before(time.Now()) {
		return common.ErrTokenExpired
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Accounts(tx).SetEmailVerified(ctx, at.AccountID, true); err != nil {
			return err
		}
		return s.repomanager.ActionTokens(tx).Delete(ctx, token)
	})
}

// SendPasswordReset issues a reset token and mails it. Unknown emails are
// silently accepted.
func (s *IdentityService) SendPasswordReset(ctx context.Context, email string) error {
	return s.sendActionMail(ctx, email, models.ActionResetPassword)
}

// --- helpers below ---

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *IdentityService) sendActionMail(ctx context.Context, email string, kind models.ActionKind) error {
	account, err := s.repomanager.Accounts(s.db).GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil
		}
		return common.ErrorInternal
	}
	return s.issueActionToken(ctx, account, kind)
}

func (s *IdentityService) issueActionToken(ctx context.Context, account *models.Account, kind models.ActionKind) error {
	token, err := common.MakeRandHexString(32)
	if err != nil {
		return common.ErrorInternal
	}
	if err := s.repomanager.ActionTokens(s.db).Create(ctx, account.ID, kind, token, actionTokenValidity); err != nil {
		return common.ErrorInternal
	}

	switch kind {
	case models.ActionVerifyEmail:
		return s.mail.SendVerification(ctx, account.Email, token)
	case models.ActionResetPassword:
		return s.mail.SendPasswordReset(ctx, account.Email, token)
	}
	return nil
}

func (s *IdentityService) generateAccessToken(accountID string) (string, error) {
	return auth.GenerateToken(accountID, s.jwtSecret, s.accessTokenValidityDuration)
}

func (s *IdentityService) generateRefreshToken() (string, error) {
	return common.MakeRandHexString(32)
}

func (s *IdentityService) generateTokenPair(ctx context.Context, accountID string, tx dbx.DBTX) (*TokenPair, error) {
	access, err := s.generateAccessToken(accountID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := s.generateRefreshToken()
	if err != nil {
		return nil, common.ErrorInternal
	}
	refreshRepo := s.repomanager.RefreshTokens(tx)
	if err := refreshRepo.Create(ctx, accountID, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
