package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserID uint            `json:"user_id"`
	Phone  string          `json:"phone"`
	Role   models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// JWT signs and verifies session tokens.
type JWT struct {
	Secret []byte
	TTL    time.Duration
}

func NewJWT(secret []byte) *JWT {
	return &JWT{Secret: secret, TTL: 24 * time.Hour}
}

// GenerateToken creates a signed JWT for a given user
func (j *JWT) GenerateToken(user *models.User) (string, error) {
	claims := Claims{
		UserID: user.ID,
		Phone:  user.Phone,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.TTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

func (j *JWT) parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return j.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// AuthRequired validates the JWT and injects claims into context
func (j *JWT) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required (Bearer <token>)"})
			return
		}
		claims, err := j.parse(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		c.Set("userID", claims.UserID)
		c.Set("role", string(claims.Role))
		c.Next()
	}
}

// RoleRequired enforces that caller has one of the allowed roles
func RoleRequired(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerRole := GetRole(c)
		for _, r := range roles {
			if callerRole == r {
				c.Next()
				return
			}
		}
		names := make([]string, len(roles))
		for i, r := range roles {
			names[i] = string(r)
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "Access denied. Required role(s): " + strings.Join(names, ", "),
		})
	}
}

// GetUserID extracts caller user ID from context
func GetUserID(c *gin.Context) uint {
	return c.GetUint("userID")
}

// GetRole extracts caller role from context
func GetRole(c *gin.Context) models.UserRole {
	return models.UserRole(c.GetString("role"))
}
