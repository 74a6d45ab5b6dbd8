package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Claims is the identity carried by an access token.
type Claims struct {
	UserID       string
	Email        string
	RoleID       int
	Role         user.Role
	DepartmentID *string
}

var ErrMissingClaims = errors.New("token claims are missing or malformed")

type Service interface {
	GenerateAccessToken(u user.User) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey                 string
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                 secretKey,
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) GenerateAccessToken(u user.User) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"user_id":       u.ID,
		"email":         u.Email,
		"role_id":       u.RoleID,
		"role":          string(u.Role),
		"department_id": returnValueOrNil(u.DepartmentID),
		"type":          "access",
		"exp":           expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func returnValueOrNil(value *string) interface{} {
	if value == nil {
		return nil
	}
	return *value
}

// ClaimsFromContext reads the verified token placed in ctx by jwtauth.Verifier.
func ClaimsFromContext(ctx context.Context) (Claims, error) {
	_, raw, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Claims{}, err
	}
	return ParseClaims(raw)
}

// ParseClaims converts the raw claim map into Claims.
func ParseClaims(raw map[string]interface{}) (Claims, error) {
	userID, ok := raw["user_id"].(string)
	if !ok || userID == "" {
		return Claims{}, ErrMissingClaims
	}
	role, ok := raw["role"].(string)
	if !ok || role == "" {
		return Claims{}, ErrMissingClaims
	}

	c := Claims{UserID: userID, Role: user.Role(role)}
	c.Email, _ = raw["email"].(string)
	switch v := raw["role_id"].(type) {
	case float64:
		c.RoleID = int(v)
	case int:
		c.RoleID = v
	case int64:
		c.RoleID = int(v)
	}
	if dept, ok := raw["department_id"].(string); ok && dept != "" {
		c.DepartmentID = &dept
	}
	return c, nil
}
