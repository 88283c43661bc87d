package auth

import (
	"errors"
	"fmt"
	"time"

	"warung-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 12 * time.Hour

// StaffClaims is the payload of a staff bearer token.
type StaffClaims struct {
	IDUser   uint   `json:"idUser"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// OrderClaims is the payload of a per-table customer token. The subject is
// the order id the table's QR code was issued for.
type OrderClaims struct {
	IDOrder string `json:"idOrder"`
	jwt.RegisteredClaims
}

// Validate rejects tokens that decode but are structurally incomplete.
// A missing required field is a verification failure, not a zero default.
func (c *StaffClaims) Validate() error {
	if c.IDUser == 0 || c.Username == "" {
		return errors.New("staff claims missing idUser or username")
	}
	return nil
}

func (c *OrderClaims) Validate() error {
	if c.IDOrder == "" {
		return errors.New("order claims missing idOrder")
	}
	return nil
}

func GenerateStaffToken(secret, issuer string, user *models.User) (string, error) {
	claims := &StaffClaims{
		IDUser:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func GenerateOrderToken(secret, issuer, orderID string) (string, error) {
	claims := &OrderClaims{
		IDOrder: orderID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseStaffClaims verifies signature, expiry and issuer, then decodes the
// staff claim shape. Callers must treat any returned error uniformly.
func ParseStaffClaims(tokenStr, secret, issuer string) (*StaffClaims, error) {
	claims := &StaffClaims{}
	if err := parseInto(tokenStr, secret, issuer, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func ParseOrderClaims(tokenStr, secret, issuer string) (*OrderClaims, error) {
	claims := &OrderClaims{}
	if err := parseInto(tokenStr, secret, issuer, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func parseInto(tokenStr, secret, issuer string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(issuer), jwt.WithExpirationRequired())
	if err != nil {
		return err
	}
	if !token.Valid {
		return errors.New("token is not valid")
	}
	return nil
}
