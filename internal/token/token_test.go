package token_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kishorefa/Sainxt-platform-backend/internal/domain"
	"github.com/kishorefa/Sainxt-platform-backend/internal/token"
)

func TestSessionRoundTrip(t *testing.T) {
	codec := token.NewCodec("test-secret")

	issued, err := codec.EncodeSession(token.SessionClaims{
		Email:     "a@x.com",
		UserType:  "individual",
		SubjectID: "64f0c2",
	}, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, issued)

	claims, err := codec.DecodeSession(issued)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", claims.Email)
	require.Equal(t, "individual", claims.UserType)
	require.Equal(t, "64f0c2", claims.SubjectID)
}

func TestResetRoundTrip(t *testing.T) {
	codec := token.NewCodec("test-secret")

	issued, err := codec.EncodeReset(token.ResetClaims{Email: "a@x.com"}, 15*time.Minute)
	require.NoError(t, err)

	claims, err := codec.DecodeReset(issued)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", claims.Email)
}

func TestZeroTTLIsExpiredImmediately(t *testing.T) {
	codec := token.NewCodec("test-secret")

	issued, err := codec.EncodeSession(token.SessionClaims{
		Email:     "a@x.com",
		UserType:  "individual",
		SubjectID: "1",
	}, 0)
	require.NoError(t, err)

	_, err = codec.DecodeSession(issued)
	require.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestTamperedTokenIsMalformed(t *testing.T) {
	codec := token.NewCodec("test-secret")

	issued, err := codec.EncodeSession(token.SessionClaims{
		Email:     "a@x.com",
		UserType:  "individual",
		SubjectID: "1",
	}, time.Hour)
	require.NoError(t, err)

	tampered := issued[:len(issued)-2] + "xx"
	_, err = codec.DecodeSession(tampered)
	require.ErrorIs(t, err, domain.ErrTokenMalformed)

	_, err = codec.DecodeSession("not-a-token")
	require.ErrorIs(t, err, domain.ErrTokenMalformed)
}

func TestSecretLengthDoesNotMatter(t *testing.T) {
	for _, secret := range []string{
		"x",
		"short",
		strings.Repeat("long-enough-for-hs256-on-its-own-", 3),
	} {
		codec := token.NewCodec(secret)

		issued, err := codec.EncodeSession(token.SessionClaims{
			Email:     "a@x.com",
			UserType:  "individual",
			SubjectID: "1",
		}, time.Hour)
		require.NoError(t, err, "secret %q", secret)

		claims, err := codec.DecodeSession(issued)
		require.NoError(t, err, "secret %q", secret)
		require.Equal(t, "a@x.com", claims.Email)
	}
}

func TestWrongSecretIsMalformed(t *testing.T) {
	issued, err := token.NewCodec("secret-a").EncodeSession(token.SessionClaims{
		Email:     "a@x.com",
		UserType:  "individual",
		SubjectID: "1",
	}, time.Hour)
	require.NoError(t, err)

	_, err = token.NewCodec("secret-b").DecodeSession(issued)
	require.ErrorIs(t, err, domain.ErrTokenMalformed)
}

func TestClaimShapesDoNotCross(t *testing.T) {
	codec := token.NewCodec("test-secret")

	reset, err := codec.EncodeReset(token.ResetClaims{Email: "a@x.com"}, 15*time.Minute)
	require.NoError(t, err)
	_, err = codec.DecodeSession(reset)
	require.ErrorIs(t, err, domain.ErrTokenMalformed)

	session, err := codec.EncodeSession(token.SessionClaims{
		Email:     "a@x.com",
		UserType:  "individual",
		SubjectID: "1",
	}, time.Hour)
	require.NoError(t, err)
	_, err = codec.DecodeReset(session)
	require.ErrorIs(t, err, domain.ErrTokenMalformed)
}

func TestTokenIsCompactJWS(t *testing.T) {
	codec := token.NewCodec("test-secret")

	issued, err := codec.EncodeReset(token.ResetClaims{Email: "a@x.com"}, time.Minute)
	require.NoError(t, err)
	require.Len(t, strings.Split(issued, "."), 3)
}
