// Package claims extracts a claim set from a compact id token.
//
// The signature is deliberately not verified: the claim set only drives UI
// display and query scoping, while the hosted services enforce authorization
// on every request carrying the token.
package claims

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lycilph/firenotes/internal/errs"
	"github.com/lycilph/firenotes/internal/model"
)

// Parse decodes the payload segment of token and extracts the claims of
// interest. Missing claims stay zero values. Any split, base64, or JSON
// failure returns zero Claims wrapping errs.ErrMalformedToken; callers
// treat that as an anonymous session, never a crash.
func Parse(token string) (model.Claims, error) {
	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mc); err != nil {
		return model.Claims{}, fmt.Errorf("%w: %v", errs.ErrMalformedToken, err)
	}

	c := model.Claims{
		Subject: stringClaim(mc, "user_id"),
		Name:    stringClaim(mc, "name"),
		Email:   stringClaim(mc, "email"),
	}
	if v, ok := mc["email_verified"]; ok {
		c.EmailVerified = boolText(v)
	}
	return c, nil
}

func stringClaim(mc jwt.MapClaims, key string) string {
	if s, ok := mc[key].(string); ok {
		return s
	}
	return ""
}

// boolText coerces a claim value to its textual form ("True"/"False"),
// matching how the origin wire format transports the verified flag.
func boolText(v any) string {
	switch t := v.(type) {
	case bool:
		if t {
			return "True"
		}
		return "False"
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
