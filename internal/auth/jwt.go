package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/lacosdev-code/peminjaman/internal/model"
)

// Claims carries the resolved technician identity in the session cookie.
// The JTI keys the server-side session row, which enforces the inactivity
// timeout; the token expiry below is only an absolute upper bound.
type Claims struct {
	TechnicianID string `json:"technician_id"`
	Name         string `json:"name"`
	Whatsapp     string `json:"whatsapp,omitempty"`
	AvatarURL    string `json:"avatar_url,omitempty"`
	jwt.RegisteredClaims
}

// Technician reconstructs the technician identity from the claims.
func (c *Claims) Technician() model.Technician {
	return model.Technician{
		ID:        c.TechnicianID,
		Name:      c.Name,
		Whatsapp:  c.Whatsapp,
		AvatarURL: c.AvatarURL,
	}
}

// TokenExpiry is the absolute token lifetime. Sessions usually end well
// before this via the inactivity timeout.
const TokenExpiry = 24 * time.Hour

// GenerateToken creates a session token for a technician with a unique JTI.
func GenerateToken(secret string, tech model.Technician) (token, jti string, err error) {
	jti = uuid.NewString()

	claims := Claims{
		TechnicianID: tech.ID,
		Name:         tech.Name,
		Whatsapp:     tech.Whatsapp,
		AvatarURL:    tech.AvatarURL,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", "", fmt.Errorf("signing token: %w", err)
	}
	return signed, jti, nil
}

// ValidateToken parses and validates a session token, returning the claims.
func ValidateToken(secret, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
