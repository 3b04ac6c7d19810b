package token_test

import (
	"strings"
	"testing"
	"time"

	"anitrack/pkg/token"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("0123456789abcdef0123456789abcdef")

type clock struct {
	t time.Time
}

func (c *clock) Now() time.Time { return c.t }

func newCodec(t *testing.T, c *clock) *token.Codec {
	t.Helper()
	codec, err := token.NewCodec(secret, token.DefaultTTL, token.WithClock(c.Now))
	require.NoError(t, err)
	return codec
}

func TestIssueAndVerify(t *testing.T) {
	c := &clock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	codec := newCodec(t, c)

	raw, issued, err := codec.Issue(42)
	require.NoError(t, err)
	assert.Equal(t, 3, len(strings.Split(raw, ".")))

	res := codec.Verify(raw)
	require.True(t, res.Valid())
	assert.Equal(t, token.ReasonOK, res.Reason)
	assert.Equal(t, int64(42), res.Claims.UserID)
	assert.Equal(t, issued.ID, res.Claims.ID)
	assert.NotEmpty(t, res.Claims.ID)
	assert.True(t, c.t.Add(token.DefaultTTL).Equal(res.Claims.ExpiresAt.Time))
}

func TestIssueUniqueTokenIDs(t *testing.T) {
	codec := newCodec(t, &clock{t: time.Now()})

	_, first, err := codec.Issue(1)
	require.NoError(t, err)
	_, second, err := codec.Issue(1)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestIssueRejectsInvalidUser(t *testing.T) {
	codec := newCodec(t, &clock{t: time.Now()})

	_, _, err := codec.Issue(0)
	assert.ErrorIs(t, err, token.ErrInvalidUser)
}

func TestVerifyExpiry(t *testing.T) {
	c := &clock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	codec := newCodec(t, c)
	issuedAt := c.t

	raw, _, err := codec.Issue(7)
	require.NoError(t, err)

	c.t = issuedAt.Add(token.DefaultTTL - time.Second)
	assert.True(t, codec.Verify(raw).Valid())

	c.t = issuedAt.Add(token.DefaultTTL + time.Second)
	res := codec.Verify(raw)
	assert.False(t, res.Valid())
	assert.Equal(t, token.ReasonExpired, res.Reason)
	assert.Nil(t, res.Claims)
}

func TestVerifyCorruptedSignature(t *testing.T) {
	codec := newCodec(t, &clock{t: time.Now()})

	raw, _, err := codec.Issue(42)
	require.NoError(t, err)

	parts := strings.Split(raw, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	corrupted := parts[0] + "." + parts[1] + "." + string(sig)

	res := codec.Verify(corrupted)
	assert.False(t, res.Valid())
	assert.Equal(t, token.ReasonSignature, res.Reason)
	assert.Nil(t, res.Claims)
}

func TestVerifyWrongSecret(t *testing.T) {
	c := &clock{t: time.Now()}
	codec := newCodec(t, c)
	other, err := token.NewCodec([]byte("another-secret-another-secret-xx"), token.DefaultTTL, token.WithClock(c.Now))
	require.NoError(t, err)

	raw, _, err := other.Issue(42)
	require.NoError(t, err)

	res := codec.Verify(raw)
	assert.False(t, res.Valid())
	assert.Equal(t, token.ReasonSignature, res.Reason)
}

func TestVerifyMalformed(t *testing.T) {
	codec := newCodec(t, &clock{t: time.Now()})

	for _, raw := range []string{"", "not-a-token", "not.a.jwt", "a.b.c.d", "....", "%%%.%%%.%%%"} {
		res := codec.Verify(raw)
		assert.False(t, res.Valid(), "token %q", raw)
		assert.Equal(t, token.ReasonMalformed, res.Reason, "token %q", raw)
	}
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	codec := newCodec(t, &clock{t: time.Now()})
	claims := jwt.MapClaims{
		"userId": 42,
		"exp":    time.Now().Add(time.Hour).Unix(),
	}

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	assert.False(t, codec.Verify(none).Valid())

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(secret)
	require.NoError(t, err)
	assert.False(t, codec.Verify(hs512).Valid())
}

func TestVerifyClaims(t *testing.T) {
	codec := newCodec(t, &clock{t: time.Now()})
	exp := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name   string
		claims jwt.MapClaims
		reason token.Reason
	}{
		{
			name:   "missing user id",
			claims: jwt.MapClaims{"exp": exp},
			reason: token.ReasonClaims,
		},
		{
			name:   "zero user id",
			claims: jwt.MapClaims{"userId": 0, "exp": exp},
			reason: token.ReasonClaims,
		},
		{
			name:   "non-numeric user id",
			claims: jwt.MapClaims{"userId": "42", "exp": exp},
			reason: token.ReasonMalformed,
		},
		{
			name:   "missing expiry",
			claims: jwt.MapClaims{"userId": 42},
			reason: token.ReasonMalformed,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, test.claims).SignedString(secret)
			require.NoError(t, err)

			res := codec.Verify(raw)
			assert.False(t, res.Valid())
			assert.Equal(t, test.reason, res.Reason)
		})
	}
}

func TestNewCodecValidation(t *testing.T) {
	_, err := token.NewCodec(nil, token.DefaultTTL)
	assert.ErrorIs(t, err, token.ErrEmptySecret)

	_, err = token.NewCodec(secret, 0)
	assert.ErrorIs(t, err, token.ErrInvalidTTL)

	codec, err := token.NewCodec(secret, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, codec.TTL())
}

func TestReasonString(t *testing.T) {
	assert.Equal(t, "expired", token.ReasonExpired.String())
	assert.Equal(t, "unknown", token.Reason(99).String())
}
