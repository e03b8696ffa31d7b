package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service verifies access tokens issued by the identity provider that fronts
// this console. Token issuance lives outside this service; only verification
// and claim extraction happen here.
type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	GenerateToken(userID string, role string, expiresIn time.Duration) (string, error)
}

type JWTService struct {
	secretKey string
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		secretKey: secretKey,
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// GenerateToken mints an access token with the claims the engine reads.
// Used by operational tooling and tests; production tokens come from the
// identity provider sharing the same secret.
func (j *JWTService) GenerateToken(userID string, role string, expiresIn time.Duration) (string, error) {
	claims := map[string]interface{}{
		"user_id": userID,
		"role":    role,
		"type":    "access",
		"exp":     time.Now().Add(expiresIn).Unix(),
	}
	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, err
}
