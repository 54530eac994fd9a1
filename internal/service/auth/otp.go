// internal/service/auth/otp.go
package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	xerrors "vahanbazaar-service/internal/pkg/errors"
)

const otpTTL = 5 * time.Minute

// OTPStore keeps one-time codes in redis, bcrypt-hashed so a redis dump
// never leaks usable codes.
type OTPStore struct {
	client *redis.Client
}

func NewOTPStore(client *redis.Client) *OTPStore {
	return &OTPStore{client: client}
}

// Issue generates a 6-digit code for the phone and stores its hash. A new
// code replaces any outstanding one.
func (s *OTPStore) Issue(ctx context.Context, phone string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash otp: %w", err)
	}

	if err := s.client.Set(ctx, s.key(phone), hash, otpTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store otp: %w", err)
	}

	return code, nil
}

// Verify compares a submitted code against the stored hash. The code is
// consumed on success.
func (s *OTPStore) Verify(ctx context.Context, phone, code string) error {
	hash, err := s.client.Get(ctx, s.key(phone)).Bytes()
	if err == redis.Nil {
		return xerrors.ErrOTPMismatch
	}
	if err != nil {
		return fmt.Errorf("failed to read otp: %w", err)
	}

	if bcrypt.CompareHashAndPassword(hash, []byte(code)) != nil {
		return xerrors.ErrOTPMismatch
	}

	return s.client.Del(ctx, s.key(phone)).Err()
}

func (s *OTPStore) key(phone string) string {
	return fmt.Sprintf("otp:%s", phone)
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
