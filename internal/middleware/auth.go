package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/worktrack/tracker-backend-go/pkg/response"
)

// ContextSubjectID is the gin context key carrying the authenticated subject id.
const ContextSubjectID = "subject_id"

// AdminClaims are the JWT claims issued to administrators.
type AdminClaims struct {
	SubjectID int64 `json:"subject_id"`
	jwt.RegisteredClaims
}

// AdminAuth guards the admin API group with a bearer JWT signed with the
// configured secret. A valid signature alone is not enough: the token's
// subject must also pass the isAdmin check, so a leaked employee token cannot
// reach the admin surface.
func AdminAuth(secret string, isAdmin func(int64) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			response.Unauthorized(c, "Missing bearer token")
			c.Abort()
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims := &AdminClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			response.Unauthorized(c, "Invalid token")
			c.Abort()
			return
		}

		if !isAdmin(claims.SubjectID) {
			response.Forbidden(c, "Not an administrator")
			c.Abort()
			return
		}

		c.Set(ContextSubjectID, claims.SubjectID)
		c.Next()
	}
}
