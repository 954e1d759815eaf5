package services

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"hotel-storefront/models"
)

// accessClaims mirrors what the hotel API puts in its access tokens.
type accessClaims struct {
	UserID  interface{} `json:"user_id"`
	Email   string      `json:"email"`
	IsStaff bool        `json:"is_staff"`
	IsAdmin bool        `json:"is_admin"`
	jwt.RegisteredClaims
}

// DecodeIdentity reads the access token's claims. The signature is not
// checked here.
func DecodeIdentity(access string) (models.Identity, error) {
	if access == "" {
		return models.Identity{}, fmt.Errorf("empty access token: %w", models.ErrInvalidToken)
	}
	var claims accessClaims
	if _, _, err := jwt.NewParser().ParseUnverified(access, &claims); err != nil {
		return models.Identity{}, fmt.Errorf("%w: %v", models.ErrInvalidToken, err)
	}

	uid, err := subjectID(claims.UserID, claims.Subject)
	if err != nil {
		return models.Identity{}, err
	}

	id := models.Identity{
		UserID:  uid,
		Email:   claims.Email,
		IsStaff: claims.IsStaff,
		IsAdmin: claims.IsAdmin,
	}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time.UTC()
	}
	return id, nil
}

// subjectID takes user_id (number or numeric string), falling back to sub.
func subjectID(userID interface{}, sub string) (uint, error) {
	switch v := userID.(type) {
	case float64:
		if v > 0 && v == float64(uint(v)) {
			return uint(v), nil
		}
	case string:
		if n, err := strconv.ParseUint(v, 10, 64); err == nil && n > 0 {
			return uint(n), nil
		}
	case nil:
		if n, err := strconv.ParseUint(sub, 10, 64); err == nil && n > 0 {
			return uint(n), nil
		}
	}
	return 0, fmt.Errorf("no usable subject id in claims: %w", models.ErrInvalidToken)
}
