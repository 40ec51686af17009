package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"devs-society/backend/config"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Token types. A user token never authenticates an admin route and vice versa.
const (
	TypeUser  = "user"
	TypeAdmin = "admin"
)

const issuer = "devs-society"

// Claims custom JWT claims
type Claims struct {
	SubjectID   string   `json:"sub_id"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions,omitempty"`
	CollegeID   string   `json:"college_id,omitempty"` // admins with an active tenure only
	TokenType   string   `json:"token_type"`           // "user" | "admin"
	jwtv5.RegisteredClaims
}

// Manager signs and parses tokens
type Manager struct {
	secret        []byte
	userTokenTTL  time.Duration
	adminTokenTTL time.Duration
}

// NewManager creates a JWT manager
func NewManager(cfg *config.AuthConfig) *Manager {
	return &Manager{
		secret:        []byte(cfg.JWTSecret),
		userTokenTTL:  cfg.UserTokenTTL,
		adminTokenTTL: cfg.AdminTokenTTL,
	}
}

// GenerateUserToken issues a token for a member
func (m *Manager) GenerateUserToken(userID, role string) (string, error) {
	return m.sign(Claims{
		SubjectID: userID,
		Role:      role,
		TokenType: TypeUser,
	}, m.userTokenTTL)
}

// GenerateAdminToken issues a token for an administrator.
// collegeID is empty for super-admins and admins without an active tenure.
func (m *Manager) GenerateAdminToken(adminID, role string, permissions []string, collegeID string) (string, error) {
	return m.sign(Claims{
		SubjectID:   adminID,
		Role:        role,
		Permissions: permissions,
		CollegeID:   collegeID,
		TokenType:   TypeAdmin,
	}, m.adminTokenTTL)
}

func (m *Manager) sign(claims Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwtv5.RegisteredClaims{
		ID:        uuid.New().String(),
		IssuedAt:  jwtv5.NewNumericDate(now),
		ExpiresAt: jwtv5.NewNumericDate(now.Add(ttl)),
		Issuer:    issuer,
	}

	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseToken verifies the signature and expiry
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwtv5.ParseWithClaims(tokenString, &Claims{}, func(t *jwtv5.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
