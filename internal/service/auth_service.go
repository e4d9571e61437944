package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/helpme/helpdesk/internal/auth"
	"github.com/helpme/helpdesk/internal/cache"
	"github.com/helpme/helpdesk/internal/config"
	"github.com/helpme/helpdesk/internal/domain"
	"github.com/helpme/helpdesk/internal/ratelimit"
	"github.com/helpme/helpdesk/internal/repository"
	apperrors "github.com/helpme/helpdesk/pkg/util"
)

// TokenPair carries the access/refresh tokens returned by login and refresh.
type TokenPair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// AuthService coordinates login, refresh and logout flows. Failed logins
// are charged against the per-IP and per-IP+email budgets; successful
// logins never consume budget.
type AuthService struct {
	users        repository.UserRepository
	tokenMgr     *auth.TokenManager
	sessions     cache.Store
	loginLimiter ratelimit.Limiter
	loginLimit   int
	bcryptCost   int
	logger       *zap.Logger
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo     repository.UserRepository
	Sessions     cache.Store
	LoginLimiter ratelimit.Limiter
	Logger       *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:        deps.UserRepo,
		tokenMgr:     auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes, cfg.Auth.RefreshTokenTTLMinutes),
		sessions:     deps.Sessions,
		loginLimiter: deps.LoginLimiter,
		loginLimit:   cfg.RateLimit.LoginLimit,
		bcryptCost:   cfg.Auth.BcryptCost,
		logger:       deps.Logger,
	}
}

// Login authenticates a credential pair and issues a token pair.
func (s *AuthService) Login(ctx context.Context, ip, email, password string) (*domain.User, *TokenPair, error) {
	if err := s.checkLoginBudget(ctx, ip, email); err != nil {
		return nil, nil, err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.recordFailedLogin(ctx, ip, email)
			return nil, nil, apperrors.NewUnauthorized("credenciais inválidas")
		}
		return nil, nil, apperrors.MapError(err)
	}
	if !user.Active {
		s.recordFailedLogin(ctx, ip, email)
		return nil, nil, apperrors.NewUnauthorized("credenciais inválidas")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		s.recordFailedLogin(ctx, ip, email)
		return nil, nil, apperrors.NewUnauthorized("credenciais inválidas")
	}

	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	return user, pair, nil
}

// Refresh rotates a refresh token into a fresh token pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.User, *TokenPair, error) {
	claims, err := s.tokenMgr.ParseToken(refreshToken, auth.TokenKindRefresh)
	if err != nil {
		return nil, nil, apperrors.NewUnauthorized("invalid refresh token")
	}

	userID, ok, err := s.sessions.Get(ctx, sessionKey(claims.ID))
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	if !ok || userID != claims.UserID {
		return nil, nil, apperrors.NewUnauthorized("refresh token revoked")
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewUnauthorized("user not found")
		}
		return nil, nil, apperrors.MapError(err)
	}
	if !user.Active {
		return nil, nil, apperrors.NewUnauthorized("account deactivated")
	}

	// rotation: the presented token is dead once exchanged
	if err := s.sessions.Delete(ctx, sessionKey(claims.ID)); err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	return user, pair, nil
}

// Logout revokes the refresh token session.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.tokenMgr.ParseToken(refreshToken, auth.TokenKindRefresh)
	if err != nil {
		return apperrors.NewUnauthorized("invalid refresh token")
	}
	if err := s.sessions.Delete(ctx, sessionKey(claims.ID)); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) issuePair(ctx context.Context, user *domain.User) (*TokenPair, error) {
	accessToken, accessExp, err := s.tokenMgr.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}
	refreshToken, refreshExp, err := s.tokenMgr.GenerateRefreshToken(user)
	if err != nil {
		return nil, err
	}
	refreshClaims, err := s.tokenMgr.ParseToken(refreshToken, auth.TokenKindRefresh)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Set(ctx, sessionKey(refreshClaims.ID), user.ID, s.tokenMgr.RefreshTTL()); err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:      accessToken,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: refreshExp,
	}, nil
}

func (s *AuthService) checkLoginBudget(ctx context.Context, ip, email string) error {
	for _, key := range loginKeys(ip, email) {
		decision, err := s.loginLimiter.Peek(ctx, key, s.loginLimit)
		if err != nil {
			s.logger.Warn("login limiter unavailable", zap.Error(err))
			return nil
		}
		if !decision.Allowed {
			s.logger.Warn("login rate limit exceeded",
				zap.String("ip", ip),
				zap.String("email", email),
			)
			return apperrors.NewRateLimited("muitas tentativas de login, tente novamente mais tarde")
		}
	}
	return nil
}

func (s *AuthService) recordFailedLogin(ctx context.Context, ip, email string) {
	s.logger.Warn("failed login attempt",
		zap.String("ip", ip),
		zap.String("email", email),
	)
	for _, key := range loginKeys(ip, email) {
		if err := s.loginLimiter.Hit(ctx, key); err != nil {
			s.logger.Warn("login limiter unavailable", zap.Error(err))
		}
	}
}

func loginKeys(ip, email string) []string {
	return []string{"login:" + ip, "login:" + ip + ":" + email}
}

func sessionKey(tokenID string) string {
	return "session:" + tokenID
}
