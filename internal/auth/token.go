package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/anighost1/pp-be/internal/db/models"
)

// ClaimUlb is a ULB embedded into a token.
type ClaimUlb struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ClaimWard is a ward embedded into a token.
type ClaimWard struct {
	ID     uint   `json:"id"`
	WardNo string `json:"ward_no"`
}

// Claims is the payload of a session token. It is a snapshot taken at login
// and is not checked against live permission state.
type Claims struct {
	UserID      uint64                `json:"uid"`
	Email       string                `json:"email"`
	Roles       []string              `json:"roles"`
	Permissions []EffectivePermission `json:"permissions"`
	Ulbs        []ClaimUlb            `json:"ulb"`
	Wards       []ClaimWard           `json:"ward"`
	SuperAdmin  bool                  `json:"isSuperAdmin"`
	jwt.RegisteredClaims
}

// Resolution returns the permission snapshot carried by the claims.
func (c *Claims) Resolution() Resolution {
	return Resolution{SuperUser: c.SuperAdmin, Permissions: c.Permissions}
}

// TokenManager signs and verifies HS256 session tokens.
type TokenManager struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// NewTokenManager creates a token manager.
func NewTokenManager(secret string, expiry time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	return &TokenManager{secret: []byte(secret), expiry: expiry, now: time.Now}, nil
}

// Issue signs a token for u carrying the resolved permissions.
func (m *TokenManager) Issue(u *models.User, res Resolution) (string, *Claims, error) {
	if u == nil {
		return "", nil, ErrInvalidInput
	}

	now := m.now().UTC()

	roles := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, r.Name)
	}

	ulbs := make([]ClaimUlb, 0, len(u.Ulbs))
	for _, ulb := range u.Ulbs {
		ulbs = append(ulbs, ClaimUlb{ID: ulb.ID, Name: ulb.Name})
	}

	wards := make([]ClaimWard, 0, len(u.Wards))
	for _, w := range u.Wards {
		wards = append(wards, ClaimWard{ID: w.ID, WardNo: w.WardNo})
	}

	claims := &Claims{
		UserID:      u.ID,
		Email:       u.Email,
		Roles:       roles,
		Permissions: res.Permissions,
		Ulbs:        ulbs,
		Wards:       wards,
		SuperAdmin:  res.SuperUser,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(u.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", nil, fmt.Errorf("jwt: sign token: %w", err)
	}

	return signed, claims, nil
}

// Parse verifies the signature and expiry of a token and returns its claims.
func (m *TokenManager) Parse(raw string) (*Claims, error) {
	claims := new(Claims)

	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	return claims, nil
}
