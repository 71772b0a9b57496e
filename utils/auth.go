// utils/auth.go
package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// Context keys set by AuthMiddleware.
const (
	CtxUserID = "userId"
	CtxEmail  = "email"
	CtxRole   = "role"
)

// Hash password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(bytes), err
}

// Check password
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Claims carried by panel tokens.
type Claims struct {
	UserID string
	Email  string
	Role   string
}

// Generate JWT token
func GenerateToken(secret string, expiryHours int, claims Claims) (string, error) {
	if secret == "" {
		return "", errors.New("JWT_SECRET not set")
	}
	if expiryHours <= 0 {
		expiryHours = 24
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   claims.UserID,
		"email": claims.Email,
		"role":  claims.Role,
		"exp":   now.Add(time.Duration(expiryHours) * time.Hour).Unix(),
		"iat":   now.Unix(),
	})

	return token.SignedString([]byte(secret))
}

// ParseToken validates the signature and expiry and returns the claims.
func ParseToken(secret, tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Claims{}, err
	}
	if !token.Valid {
		return Claims{}, errors.New("invalid token")
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errors.New("invalid token claims")
	}

	sub, _ := mc["sub"].(string)
	email, _ := mc["email"].(string)
	role, _ := mc["role"].(string)
	if sub == "" {
		return Claims{}, errors.New("token without subject")
	}
	return Claims{UserID: sub, Email: email, Role: role}, nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

// Auth middleware
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := BearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			c.AbortWithStatusJSON(401, gin.H{"error": "Token não fornecido"})
			return
		}

		claims, err := ParseToken(secret, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(401, gin.H{"error": "Token inválido ou expirado"})
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxEmail, claims.Email)
		c.Set(CtxRole, claims.Role)

		c.Next()
	}
}
