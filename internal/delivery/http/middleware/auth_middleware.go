package middleware

import (
	"context"
	"net/http"
	"strings"

	"employee-onboarding-backend/internal/delivery/http/response"
	"employee-onboarding-backend/internal/domain"
	"employee-onboarding-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// InviteClaims is the payload of an onboarding invite token. Subject
// identifies the invitee and becomes the session owner.
type InviteClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// InviteAuth validates HS256 invite tokens from the Authorization header or
// the invite_token cookie. With an empty secret every request passes
// anonymously.
func InviteAuth(secret string) gin.HandlerFunc {
	if secret == "" {
		return func(c *gin.Context) { c.Next() }
	}
	key := []byte(secret)

	return func(c *gin.Context) {
		tokenString := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if tokenString == "" {
			if cookie, err := c.Cookie("invite_token"); err == nil {
				tokenString = cookie
			}
		}
		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or invite_token cookie required", nil)
			c.Abort()
			return
		}

		claims := &InviteClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return key, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			logger.Log.Infow("invite token rejected", "client_ip", c.ClientIP(), "error", err)
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}
		if claims.Subject == "" || claims.ExpiresAt == nil {
			response.Error(c, http.StatusUnauthorized, "Invalid claims", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), claims.Subject)
		c.Set(string(domain.KeyUserEmail), claims.Email)

		ctx := context.WithValue(c.Request.Context(), domain.KeyUserID, claims.Subject)
		ctx = context.WithValue(ctx, domain.KeyUserEmail, claims.Email)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// IssueInviteToken signs a token for subject, used by the token script and tests.
func IssueInviteToken(secret, subject, email string, expiresAt *jwt.NumericDate) (string, error) {
	claims := InviteClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: expiresAt,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
