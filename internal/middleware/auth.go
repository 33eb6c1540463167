package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"recruit_messaging/internal/config"
	"recruit_messaging/internal/domain"
	"recruit_messaging/pkg/logger"
)

const (
	ContextKeyActor     = "actor"
	ContextKeyActorID   = "actor_id"
	ContextKeyActorType = "actor_type"
)

// ActorClaims are the claims the platform's auth service puts into access
// tokens.
type ActorClaims struct {
	ActorID   string `json:"actor_id"`
	ActorType string `json:"actor_type"`
	jwt.RegisteredClaims
}

// AuthMiddleware verifies bearer tokens minted by the auth service and puts
// the verified actor into the request context.
type AuthMiddleware struct {
	jwtSecret []byte
	issuer    string
	log       logger.Logger
}

func NewAuthMiddleware(cfg config.IdentityConfig, log logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSecret: []byte(cfg.JWTSecret),
		issuer:    cfg.Issuer,
		log:       log,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		actor, err := m.parseToken(parts[1])
		if err != nil {
			m.log.Warn("Token validation failed", "error", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(ContextKeyActor, actor)
		c.Set(ContextKeyActorID, actor.ID)
		c.Set(ContextKeyActorType, actor.Type)
		c.Next()
	}
}

func (m *AuthMiddleware) parseToken(tokenString string) (domain.Actor, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"})}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &ActorClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.jwtSecret, nil
	}, opts...)
	if err != nil {
		return domain.Actor{}, err
	}

	claims, ok := token.Claims.(*ActorClaims)
	if !ok || !token.Valid {
		return domain.Actor{}, fmt.Errorf("invalid token claims")
	}

	id, err := uuid.Parse(claims.ActorID)
	if err != nil {
		return domain.Actor{}, fmt.Errorf("invalid actor_id: %w", err)
	}
	actorType, err := domain.ParseActorType(claims.ActorType)
	if err != nil {
		return domain.Actor{}, err
	}

	return domain.Actor{ID: id, Type: actorType}, nil
}

// RequireActorTypes rejects actors whose type is not listed. It must run
// after RequireAuth.
func RequireActorTypes(types ...domain.ActorType) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			c.Abort()
			return
		}
		for _, t := range types {
			if actor.Type == t {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden for this actor type"})
		c.Abort()
	}
}

func ActorFromContext(c *gin.Context) (domain.Actor, bool) {
	v, exists := c.Get(ContextKeyActor)
	if !exists {
		return domain.Actor{}, false
	}
	actor, ok := v.(domain.Actor)
	return actor, ok
}
