package token

import "github.com/golang-jwt/jwt/v5"

// Claims is the payload of a session token. ID (jti) identifies the token
// for revocation.
type Claims struct {
	UserID int64 `json:"userId"`
	jwt.RegisteredClaims
}

// Reason explains why a token failed verification. It is meant for logs
// only and must never reach a response body.
type Reason int

const (
	ReasonOK Reason = iota
	ReasonMalformed
	ReasonSignature
	ReasonExpired
	ReasonClaims
)

func (r Reason) String() string {
	switch r {
	case ReasonOK:
		return "ok"
	case ReasonMalformed:
		return "malformed"
	case ReasonSignature:
		return "signature"
	case ReasonExpired:
		return "expired"
	case ReasonClaims:
		return "claims"
	default:
		return "unknown"
	}
}

// Result is the outcome of Codec.Verify. Claims is nil unless Reason is
// ReasonOK.
type Result struct {
	Claims *Claims
	Reason Reason
}

func (r Result) Valid() bool {
	return r.Reason == ReasonOK && r.Claims != nil
}
