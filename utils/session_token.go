package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Sessions are anonymous: the cookie only carries a random session id,
// signed so clients can't pick each other's ids.

func GenerateSessionToken(sessionID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": sessionID,
		"exp": time.Now().Add(time.Hour * 72).Unix(),
	})
	return token.SignedString([]byte(os.Getenv("SESSION_SECRET")))
}

// ParseSessionToken returns the session id inside a token, or an error if
// the token is missing, forged, or expired.
func ParseSessionToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(os.Getenv("SESSION_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid session token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", errors.New("sid claim missing")
	}
	return sid, nil
}
