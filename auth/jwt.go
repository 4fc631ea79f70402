package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var secret []byte

// Init sets the signing secret. Call once at startup before issuing or
// verifying tokens.
func Init(s string) {
	secret = []byte(s)
}

// GenerateToken mints the opaque session credential for an externally
// authenticated subject.
func GenerateToken(userID, name string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"name":    name,
		"exp":     time.Now().Add(time.Hour * 24 * 3).Unix(), // expires in 3 days
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// VerifyToken parses and validates a session token, returning the subject.
func VerifyToken(tokenString string) (userID string, name string, err error) {
	jwtToken, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return "", "", err
	}
	if !jwtToken.Valid {
		return "", "", errors.New("token invalid")
	}

	claims, ok := jwtToken.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", errors.New("unexpected claims type")
	}
	userID, _ = claims["user_id"].(string)
	name, _ = claims["name"].(string)
	if userID == "" {
		return "", "", errors.New("token missing subject")
	}
	return userID, name, nil
}
