package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xerrors "vahanbazaar-service/internal/pkg/errors"
)

func newTestOTPStore(t *testing.T) (*OTPStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewOTPStore(client), mr
}

func TestOTPIssueAndVerify(t *testing.T) {
	store, _ := newTestOTPStore(t)
	ctx := context.Background()

	code, err := store.Issue(ctx, "+919876543210")
	require.NoError(t, err)
	assert.Len(t, code, 6)

	require.NoError(t, store.Verify(ctx, "+919876543210", code))

	// The code is consumed on success.
	err = store.Verify(ctx, "+919876543210", code)
	assert.ErrorIs(t, err, xerrors.ErrOTPMismatch)
}

func TestOTPVerifyWrongCode(t *testing.T) {
	store, _ := newTestOTPStore(t)
	ctx := context.Background()

	_, err := store.Issue(ctx, "+919876543210")
	require.NoError(t, err)

	err = store.Verify(ctx, "+919876543210", "000000")
	if err == nil {
		// One-in-a-million collision with the generated code.
		t.Skip("generated code happened to be 000000")
	}
	assert.ErrorIs(t, err, xerrors.ErrOTPMismatch)

	// A wrong guess does not consume the outstanding code.
	_, getErr := store.client.Get(ctx, store.key("+919876543210")).Result()
	assert.NoError(t, getErr)
}

func TestOTPVerifyUnknownPhone(t *testing.T) {
	store, _ := newTestOTPStore(t)

	err := store.Verify(context.Background(), "+910000000000", "123456")
	assert.ErrorIs(t, err, xerrors.ErrOTPMismatch)
}

func TestOTPReissueReplacesOutstandingCode(t *testing.T) {
	store, _ := newTestOTPStore(t)
	ctx := context.Background()

	first, err := store.Issue(ctx, "+919876543210")
	require.NoError(t, err)
	second, err := store.Issue(ctx, "+919876543210")
	require.NoError(t, err)

	if first != second {
		assert.ErrorIs(t, store.Verify(ctx, "+919876543210", first), xerrors.ErrOTPMismatch)
	}
	require.NoError(t, store.Verify(ctx, "+919876543210", second))
}

func TestOTPExpires(t *testing.T) {
	store, mr := newTestOTPStore(t)
	ctx := context.Background()

	code, err := store.Issue(ctx, "+919876543210")
	require.NoError(t, err)

	mr.FastForward(6 * time.Minute)

	err = store.Verify(ctx, "+919876543210", code)
	assert.ErrorIs(t, err, xerrors.ErrOTPMismatch)
}
