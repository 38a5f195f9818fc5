package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tradelink/backend/internal/infrastructure/auth"
	"github.com/tradelink/backend/internal/infrastructure/logger"
	"github.com/tradelink/backend/internal/interfaces/http/dto"
)

// Context keys set by the actor middleware
const (
	ActorIDKey   = "actor_id"
	ActorRoleKey = "actor_role"
)

// ActorAuthConfig holds actor authentication configuration
type ActorAuthConfig struct {
	TokenService *auth.TokenService
	// AllowHeaderIdentity accepts X-Actor-ID / X-Actor-Role headers in place
	// of a token. Development only; never enable in production.
	AllowHeaderIdentity bool
	SkipPaths           []string
}

// ActorAuth resolves the acting party for each request. Identity comes from a
// Bearer token; role-based permission checks stay in the services.
func ActorAuth(cfg ActorAuthConfig) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		actorID, role, err := resolveActor(c, cfg)
		if err != nil {
			requestID := c.GetString("request_id")
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeUnauthorized, err.Error(), requestID))
			return
		}

		c.Set(ActorIDKey, actorID)
		c.Set(ActorRoleKey, role)

		ctx := c.Request.Context()
		ctx, _ = logger.WithActor(ctx, logger.FromContext(ctx), actorID.String(), role)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// resolveActor extracts actor identity from the Authorization header, or from
// the development identity headers when enabled.
func resolveActor(c *gin.Context, cfg ActorAuthConfig) (uuid.UUID, string, error) {
	header := c.GetHeader("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return uuid.Nil, "", auth.ErrInvalidToken
		}
		claims, err := cfg.TokenService.ValidateToken(parts[1])
		if err != nil {
			return uuid.Nil, "", err
		}
		actorID, err := uuid.Parse(claims.ActorID)
		if err != nil {
			return uuid.Nil, "", auth.ErrInvalidToken
		}
		return actorID, claims.Role, nil
	}

	if cfg.AllowHeaderIdentity {
		rawID := c.GetHeader("X-Actor-ID")
		role := c.GetHeader("X-Actor-Role")
		if rawID != "" && role != "" {
			actorID, err := uuid.Parse(rawID)
			if err != nil {
				return uuid.Nil, "", auth.ErrInvalidToken
			}
			return actorID, role, nil
		}
	}

	return uuid.Nil, "", auth.ErrInvalidToken
}

// GetActor returns the authenticated actor from the gin context
func GetActor(c *gin.Context) (uuid.UUID, string, bool) {
	rawID, ok := c.Get(ActorIDKey)
	if !ok {
		return uuid.Nil, "", false
	}
	actorID, ok := rawID.(uuid.UUID)
	if !ok {
		return uuid.Nil, "", false
	}
	rawRole, ok := c.Get(ActorRoleKey)
	if !ok {
		return uuid.Nil, "", false
	}
	role, ok := rawRole.(string)
	if !ok {
		return uuid.Nil, "", false
	}
	return actorID, role, true
}
