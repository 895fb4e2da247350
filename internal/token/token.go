package token

import (
	"crypto/sha256"
	"fmt"
	"time"

	gojose "github.com/go-jose/go-jose/v4"
	gojwt "github.com/go-jose/go-jose/v4/jwt"

	"github.com/kishorefa/Sainxt-platform-backend/internal/domain"
)

// Session and reset tokens share one signing mechanism but carry an explicit
// shape tag, so a reset token can never be presented as a session credential.
const (
	useSession = "session"
	useReset   = "reset"
)

// signingAlgorithms is the allow-list enforced on parse. Tokens claiming any
// other algorithm are rejected before signature verification.
var signingAlgorithms = []gojose.SignatureAlgorithm{gojose.HS256}

// SessionClaims is the payload of a login session token.
type SessionClaims struct {
	Email     string `json:"email"`
	UserType  string `json:"userType"`
	SubjectID string `json:"id"`
}

// ResetClaims is the payload of a password-reset token.
type ResetClaims struct {
	Email string `json:"email"`
}

type payload struct {
	Email     string `json:"email"`
	UserType  string `json:"userType,omitempty"`
	SubjectID string `json:"id,omitempty"`
	Use       string `json:"token_use"`
}

// Codec signs and verifies the platform's bearer tokens with a symmetric
// server-held secret.
type Codec struct {
	secret []byte
}

// NewCodec constructs a token codec around the signing secret. The secret is
// stretched to a fixed 32-byte key, which HS256 requires as a minimum; the
// configured value itself may be any length.
func NewCodec(secret string) *Codec {
	key := sha256.Sum256([]byte(secret))
	return &Codec{secret: key[:]}
}

// EncodeSession issues a signed session token valid for ttl.
func (c *Codec) EncodeSession(claims SessionClaims, ttl time.Duration) (string, error) {
	return c.encode(payload{
		Email:     claims.Email,
		UserType:  claims.UserType,
		SubjectID: claims.SubjectID,
		Use:       useSession,
	}, ttl)
}

// EncodeReset issues a signed reset token bound to an email, valid for ttl.
func (c *Codec) EncodeReset(claims ResetClaims, ttl time.Duration) (string, error) {
	return c.encode(payload{
		Email: claims.Email,
		Use:   useReset,
	}, ttl)
}

func (c *Codec) encode(custom payload, ttl time.Duration) (string, error) {
	signer, err := gojose.NewSigner(
		gojose.SigningKey{Algorithm: gojose.HS256, Key: c.secret},
		(&gojose.SignerOptions{}).WithType("JWT"),
	)
	if err != nil {
		return "", fmt.Errorf("new signer: %w", err)
	}

	now := time.Now().UTC()
	std := gojwt.Claims{
		IssuedAt: gojwt.NewNumericDate(now),
		Expiry:   gojwt.NewNumericDate(now.Add(ttl)),
	}

	serialized, err := gojwt.Signed(signer).Claims(std).Claims(custom).Serialize()
	if err != nil {
		return "", fmt.Errorf("serialize token: %w", err)
	}
	return serialized, nil
}

// DecodeSession verifies a session token and returns its claims. It fails
// with domain.ErrTokenExpired past the embedded expiry and
// domain.ErrTokenMalformed for signature, structure, or claim-shape problems.
func (c *Codec) DecodeSession(token string) (SessionClaims, error) {
	p, err := c.decode(token, useSession)
	if err != nil {
		return SessionClaims{}, err
	}
	if p.UserType == "" || p.SubjectID == "" {
		return SessionClaims{}, domain.ErrTokenMalformed
	}
	return SessionClaims{Email: p.Email, UserType: p.UserType, SubjectID: p.SubjectID}, nil
}

// DecodeReset verifies a reset token and returns its claims.
func (c *Codec) DecodeReset(token string) (ResetClaims, error) {
	p, err := c.decode(token, useReset)
	if err != nil {
		return ResetClaims{}, err
	}
	return ResetClaims{Email: p.Email}, nil
}

func (c *Codec) decode(token, expectedUse string) (payload, error) {
	parsed, err := gojwt.ParseSigned(token, signingAlgorithms)
	if err != nil {
		return payload{}, domain.ErrTokenMalformed
	}

	var std gojwt.Claims
	var custom payload
	if err := parsed.Claims(c.secret, &std, &custom); err != nil {
		return payload{}, domain.ErrTokenMalformed
	}

	if std.Expiry == nil {
		return payload{}, domain.ErrTokenMalformed
	}
	if !time.Now().Before(std.Expiry.Time()) {
		return payload{}, domain.ErrTokenExpired
	}

	if custom.Use != expectedUse || custom.Email == "" {
		return payload{}, domain.ErrTokenMalformed
	}
	return custom, nil
}
