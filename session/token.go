package session

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-console-core/internal/utils"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Payload holds the claims this core reads from the console's bearer token.
// Unknown claims are ignored, so the backend can extend the token without
// breaking older clients.
type Payload struct {
	UserID      string
	Phone       string
	Name        string
	Roles       []string
	Permissions []string
	Locale      string
	KYCStatus   string
	GaushalaID  *int64 // optional facility/tenant scope
	IssuedAt    int64
	ExpiresAt   int64
}

// ParseToken decodes the claims segment of a compact bearer token. It
// returns nil when the token does not have exactly three dot-separated
// segments, when the claims segment is not valid base64url/JSON, or when
// the token has expired (epoch seconds, wall clock).
//
// The signature segment is deliberately not verified: the client holds no
// verification key, and the backend re-verifies the token on every
// authenticated request. The parse here is advisory, gating UX only. A
// deployment that adds verification must fail closed exactly like a
// malformed token.
func ParseToken(raw string) *Payload {
	token, _, err := jwtlib.NewParser().ParseUnverified(raw, jwtlib.MapClaims{})
	if err != nil {
		log.Debug().Err(err).Msg("[ParseToken] token rejected")
		return nil
	}

	claims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok {
		log.Debug().Msg("[ParseToken] token carries no claims object")
		return nil
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		log.Debug().Msg("[ParseToken] token missing exp claim")
		return nil
	}
	if NowTimeFunc().Unix() > int64(exp) {
		log.Debug().Int64("exp", int64(exp)).Msg("[ParseToken] token expired")
		return nil
	}

	userID, _ := claims["user_id"].(string)
	phone, _ := claims["phone"].(string)
	name, _ := claims["name"].(string)
	locale, _ := claims["locale"].(string)
	kycStatus, _ := claims["kyc_status"].(string)
	iat, _ := claims["iat"].(float64)

	payload := &Payload{
		UserID:    userID,
		Phone:     phone,
		Name:      name,
		Locale:    locale,
		KYCStatus: kycStatus,
		IssuedAt:  int64(iat),
		ExpiresAt: int64(exp),
	}

	if roles, ok := claims["roles"].([]any); ok {
		payload.Roles = utils.ToStringSlice(roles)
	}
	if permissions, ok := claims["permissions"].([]any); ok {
		payload.Permissions = utils.ToStringSlice(permissions)
	}
	if gaushalaID, ok := claims["gaushalaId"].(float64); ok {
		payload.GaushalaID = utils.Ptr(int64(gaushalaID))
	}

	return payload
}
