package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/mester-scheduler/internal/domain/identity"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

var errBadPayload = errors.New("invalid_token_payload")

// AuthMiddleware resolve o bearer token em {sub, role}. Quem emite o token
// é outro serviço; aqui só validamos a assinatura HMAC.
func AuthMiddleware(secret string) gin.HandlerFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))
	key := func(*jwt.Token) (interface{}, error) { return []byte(secret), nil }

	return func(c *gin.Context) {
		raw, code := bearer(c.GetHeader("Authorization"))
		if code != "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": code})
			return
		}

		claims := jwt.MapClaims{}
		if _, err := parser.ParseWithClaims(raw, claims, key); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		actor, err := actorFromClaims(claims)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.Set(ContextUserID, actor.UserID)
		c.Set(ContextUserRole, actor.Role)

		c.Next()
	}
}

func bearer(header string) (token, errCode string) {
	if header == "" {
		return "", "missing_authorization_header"
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", "invalid_authorization_header"
	}
	return strings.TrimSpace(token), ""
}

// sub chega como número JSON (float64 no MapClaims).
func actorFromClaims(claims jwt.MapClaims) (identity.Actor, error) {
	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 || sub != float64(uint(sub)) {
		return identity.Actor{}, errBadPayload
	}

	role, _ := claims["role"].(string)
	if !identity.Role(role).Valid() {
		return identity.Actor{}, errBadPayload
	}

	return identity.Actor{UserID: uint(sub), Role: identity.Role(role)}, nil
}

// Actor lê a identidade gravada pelo AuthMiddleware.
func Actor(c *gin.Context) identity.Actor {
	return identity.Actor{
		UserID: c.MustGet(ContextUserID).(uint),
		Role:   c.MustGet(ContextUserRole).(identity.Role),
	}
}
