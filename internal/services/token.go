package services

import (
	"fmt"
	"time"

	"github.com/brenio55/SGA/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// Principal is the authenticated identity carried by a bearer token. The
// core trusts these claims as given; credential checks happen only at login.
type Principal struct {
	UserID    int
	CompanyID int
	Role      string
}

// TokenService issues and verifies the HS256 bearer tokens used by the API.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService signing with the given secret.
// Tokens are valid for 7 days.
func NewTokenService(secret string) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    7 * 24 * time.Hour,
	}
}

// Generate signs a token carrying the user's id, company and role.
func (s *TokenService) Generate(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    user.ID,
		"company_id": user.CompanyID,
		"role":       user.Role,
		"exp":        time.Now().Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses the token and returns the principal it carries.
func (s *TokenService) Verify(tokenString string) (*Principal, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, fmt.Errorf("invalid user_id claim")
	}
	companyID, ok := claims["company_id"].(float64)
	if !ok {
		return nil, fmt.Errorf("invalid company_id claim")
	}
	role, _ := claims["role"].(string)

	return &Principal{
		UserID:    int(userID),
		CompanyID: int(companyID),
		Role:      role,
	}, nil
}
