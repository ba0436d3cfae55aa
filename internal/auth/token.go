package auth

import (
	"time"

	"eventbook/internal/shared/config"

	"github.com/golang-jwt/jwt/v4"
)

// TokenClaims are the fields bound into every bearer token.
type TokenClaims struct {
	UserID string `json:"user_id"`
	Phone  string `json:"phone"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and validates HMAC-signed bearer tokens binding
// {user id, phone, role, issued-at}. The secret is injected at construction.
// Validation degrades to false/empty on any malformed or tampered input and
// never panics.
type TokenService struct {
	secret    []byte
	expiresIn time.Duration
}

func NewTokenService(cfg config.JWTConfig) *TokenService {
	return &TokenService{
		secret:    []byte(cfg.Secret),
		expiresIn: cfg.ExpiresIn,
	}
}

// Issue creates a signed token for the given identity. The issued-at claim
// makes every call produce a distinct token.
func (t *TokenService) Issue(userID, phone, role string) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		UserID: userID,
		Phone:  phone,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.expiresIn)),
			Issuer:    "eventbook",
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Validate reports whether the token is well formed, carries a valid
// signature under the configured secret, and has not expired.
func (t *TokenService) Validate(tokenString string) bool {
	_, err := t.parse(tokenString)
	return err == nil
}

// ExtractUserID returns the user id bound into the token, or "" if the
// token does not validate.
func (t *TokenService) ExtractUserID(tokenString string) string {
	claims, err := t.parse(tokenString)
	if err != nil {
		return ""
	}
	return claims.UserID
}

// ExtractPhone returns the phone bound into the token, or "".
func (t *TokenService) ExtractPhone(tokenString string) string {
	claims, err := t.parse(tokenString)
	if err != nil {
		return ""
	}
	return claims.Phone
}

// ExtractRole returns the role bound into the token, or "".
func (t *TokenService) ExtractRole(tokenString string) string {
	claims, err := t.parse(tokenString)
	if err != nil {
		return ""
	}
	return claims.Role
}

func (t *TokenService) parse(tokenString string) (*TokenClaims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
