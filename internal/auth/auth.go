// Package auth гейт выхода из режима стажёра: проверка шестизначного кода
// и выдача подписанного токена куратора.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

const (
	CookieCuratorToken = "pickpoint_curator"
	subjectCurator     = "curator"
)

var (
	ErrWrongCode    = errors.New("wrong access code")
	ErrInvalidToken = errors.New("invalid curator token")
)

// Gate проверяет код доступа и токены куратора
type Gate struct {
	code   string
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewGate(code, secret string, ttl time.Duration) *Gate {
	return &Gate{code: code, secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Verify сравнивает код за постоянное время
func (g *Gate) Verify(code string) bool {
	return subtle.ConstantTimeCompare([]byte(code), []byte(g.code)) == 1
}

// Issue выдаёт токен куратора, если код верный
func (g *Gate) Issue(code string) (string, time.Time, error) {
	if !g.Verify(code) {
		return "", time.Time{}, ErrWrongCode
	}
	now := g.now()
	exp := now.Add(g.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   subjectCurator,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return token, exp, nil
}

// Check проверяет подпись, срок и субъект токена
func (g *Gate) Check(token string) error {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return g.secret, nil
	})
	if err != nil || !parsed.Valid {
		return ErrInvalidToken
	}
	if claims.Subject != subjectCurator {
		return ErrInvalidToken
	}
	return nil
}

// RequireCurator middleware для операций куратора.
// Токен берётся из заголовка Authorization: Bearer или из cookie.
func (g *Gate) RequireCurator() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearer(c.GetHeader("Authorization"))
		if token == "" {
			if v, err := c.Cookie(CookieCuratorToken); err == nil {
				token = v
			}
		}
		if token == "" || g.Check(token) != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrInvalidToken.Error()})
			return
		}
		c.Next()
	}
}

func bearer(h string) string {
	const prefix = "Bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	return ""
}
