package access

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/voduybaokhanh/shop-service/internal/apperror"
	"github.com/voduybaokhanh/shop-service/pkg/jwtutil"
)

const callerKey = "access.caller"

type TokenValidator interface {
	ValidateToken(tokenString string) (*jwtutil.Claims, error)
}

// RoleResolver returns the role an account holds right now.
type RoleResolver interface {
	CurrentRole(ctx context.Context, email string) (string, error)
}

// Middleware rejects requests without a valid bearer token before any handler runs.
// When roles is set the caller's role is read from it instead of the token, so demoted
// or deleted accounts lose access before the token expires.
func Middleware(validator TokenValidator, roles RoleResolver, log *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Error(apperror.Unauthorized("missing authorization header"))
			c.Abort()
			return
		}

		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			c.Error(apperror.Unauthorized("invalid authorization header format"))
			c.Abort()
			return
		}

		claims, err := validator.ValidateToken(strings.TrimSpace(token))
		if err != nil {
			log.Debugf("token rejected: %v", err)
			c.Error(apperror.Unauthorized("invalid or expired token"))
			c.Abort()
			return
		}

		caller := Caller{Email: claims.Email, Role: claims.Role}
		if roles != nil {
			role, err := roles.CurrentRole(c.Request.Context(), claims.Email)
			if err != nil {
				if apperror.IsKind(err, apperror.NotFoundKind) {
					err = apperror.Unauthorized("account no longer exists")
				}
				c.Error(err)
				c.Abort()
				return
			}
			if role != caller.Role {
				log.Debugf("role of %s changed from %s to %s", caller.Email, caller.Role, role)
				caller.Role = role
			}
		}

		c.Set(callerKey, caller)
		c.Next()
	}
}

// FromContext returns the authenticated caller, or the zero Caller on public routes.
func FromContext(c *gin.Context) Caller {
	if v, ok := c.Get(callerKey); ok {
		if caller, ok := v.(Caller); ok {
			return caller
		}
	}
	return Caller{}
}

type AccessLogHook struct{}

func (h *AccessLogHook) Fire(entry *logrus.Entry) error {
	entry.Message = "Access: " + entry.Message
	return nil
}

func (h *AccessLogHook) Levels() []logrus.Level {
	return logrus.AllLevels
}
