// internal/service/auth/service.go
package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"vahanbazaar-service/internal/domain/user"
	xerrors "vahanbazaar-service/internal/pkg/errors"
	"vahanbazaar-service/internal/pkg/jwt"
	"vahanbazaar-service/internal/pkg/session"
)

// UserRepository is the persistence surface the auth flow needs.
type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	FindByPhone(ctx context.Context, phone string) (*user.User, error)
	FindByID(ctx context.Context, id int64) (*user.User, error)
	UpdateProfile(ctx context.Context, u *user.User) error
}

// SMSSender delivers the one-time code. The real gateway lives outside
// this service; LogSender stands in for local development.
type SMSSender interface {
	Send(ctx context.Context, phone, message string) error
}

// LogSender writes the message to the log instead of dispatching it.
type LogSender struct {
	Logger *zap.Logger
}

func (s *LogSender) Send(_ context.Context, phone, message string) error {
	s.Logger.Info("sms (log sender)", zap.String("phone", phone), zap.String("message", message))
	return nil
}

// LoginResult is what a successful OTP verification yields.
type LoginResult struct {
	User        *user.User `json:"user"`
	AccessToken string     `json:"access_token"`
	NewUser     bool       `json:"new_user"`
}

// Service implements passwordless phone login: request a code, verify it,
// get a JWT backed by a redis session.
type Service struct {
	users    UserRepository
	otp      *OTPStore
	sms      SMSSender
	jwt      *jwt.Manager
	sessions *session.Manager
	limiter  *session.RateLimiter
	logger   *zap.Logger
}

func NewService(
	users UserRepository,
	otp *OTPStore,
	sms SMSSender,
	jwtManager *jwt.Manager,
	sessions *session.Manager,
	limiter *session.RateLimiter,
	logger *zap.Logger,
) *Service {
	return &Service{
		users:    users,
		otp:      otp,
		sms:      sms,
		jwt:      jwtManager,
		sessions: sessions,
		limiter:  limiter,
		logger:   logger,
	}
}

// RequestOTP issues and dispatches a login code, rate-limited per phone.
func (s *Service) RequestOTP(ctx context.Context, phone string) error {
	if phone == "" {
		return xerrors.ErrInvalidInput
	}

	allowed, remaining, err := s.limiter.CheckOTPRequest(ctx, phone)
	if err != nil {
		return err
	}
	if !allowed {
		s.logger.Warn("otp request rate limited", zap.String("phone", phone))
		return xerrors.ErrRateLimited
	}

	code, err := s.otp.Issue(ctx, phone)
	if err != nil {
		return err
	}

	if err := s.sms.Send(ctx, phone, "Your VahanBazaar login code is "+code); err != nil {
		return err
	}

	s.logger.Info("otp issued",
		zap.String("phone", phone),
		zap.Int64("requests_remaining", remaining),
	)
	return nil
}

// VerifyOTP checks the code, creating the account on first login, and
// issues an access token with its backing session.
func (s *Service) VerifyOTP(ctx context.Context, phone, code, device, ip, userAgent string) (*LoginResult, error) {
	allowed, err := s.limiter.CheckOTPVerify(ctx, phone)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, xerrors.ErrRateLimited
	}

	if err := s.otp.Verify(ctx, phone, code); err != nil {
		return nil, err
	}

	if err := s.limiter.ResetOTPAttempts(ctx, phone); err != nil {
		s.logger.Warn("failed to reset otp counters", zap.Error(err))
	}

	newUser := false
	u, err := s.users.FindByPhone(ctx, phone)
	if errors.Is(err, xerrors.ErrNotFound) {
		u = &user.User{Phone: phone, Role: "member"}
		if err := s.users.Create(ctx, u); err != nil {
			return nil, err
		}
		newUser = true
	} else if err != nil {
		return nil, err
	}

	token, jti, err := s.jwt.Generator.GenerateAccessToken(u.ID, u.Phone, u.Role, device)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sess := &session.SessionData{
		JTI:            jti,
		IdentityID:     u.ID,
		Phone:          u.Phone,
		Device:         device,
		IPAddress:      ip,
		UserAgent:      userAgent,
		LoginAt:        now,
		LastActivityAt: now,
		ExpiresAt:      now.Add(s.jwt.Generator.Ttl),
	}
	if err := s.sessions.CreateSession(ctx, sess); err != nil {
		return nil, err
	}

	s.logger.Info("user logged in",
		zap.Int64("identity_id", u.ID),
		zap.Bool("new_user", newUser),
	)
	return &LoginResult{User: u, AccessToken: token, NewUser: newUser}, nil
}

// Me returns the authenticated user's record.
func (s *Service) Me(ctx context.Context, identityID int64) (*user.User, error) {
	return s.users.FindByID(ctx, identityID)
}

// UpdateProfile applies the non-nil fields of the request.
func (s *Service) UpdateProfile(ctx context.Context, identityID int64, req *user.UpdateProfileRequest) (*user.User, error) {
	u, err := s.users.FindByID(ctx, identityID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		u.FullName = sql.NullString{String: *req.FullName, Valid: *req.FullName != ""}
	}
	if req.City != nil {
		u.City = sql.NullString{String: *req.City, Valid: *req.City != ""}
	}

	if err := s.users.UpdateProfile(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ValidateToken verifies a bearer token end to end: signature, blacklist,
// and backing session. The session's activity timestamp is refreshed as a
// side effect.
func (s *Service) ValidateToken(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := s.jwt.Verifier.VerifyAccessToken(token)
	if err != nil {
		return nil, xerrors.ErrUnauthorized
	}

	blacklisted, err := s.sessions.IsTokenBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if blacklisted {
		return nil, xerrors.ErrUnauthorized
	}

	if _, err := s.sessions.GetSession(ctx, claims.IdentityID, claims.ID); err != nil {
		return nil, xerrors.ErrSessionExpired
	}

	if err := s.sessions.TouchSession(ctx, claims.IdentityID, claims.ID); err != nil {
		s.logger.Warn("failed to touch session", zap.Error(err))
	}

	return claims, nil
}

// Logout revokes the current token and drops its session.
func (s *Service) Logout(ctx context.Context, identityID int64, jti string, tokenExpiry time.Time) error {
	if ttl := time.Until(tokenExpiry); ttl > 0 {
		if err := s.sessions.BlacklistToken(ctx, jti, ttl); err != nil {
			return err
		}
	}
	return s.sessions.InvalidateSession(ctx, identityID, jti)
}
