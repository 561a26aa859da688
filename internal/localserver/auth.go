package localserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenLifetime = 24 * time.Hour

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	var account Account
	err := s.db.Where("username = ?", req.Username).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "invalid credentials"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "invalid credentials"})
		return
	}

	claims := jwt.MapClaims{
		"sub": account.ID,
		"usr": account.Username,
		"exp": s.clock().Add(tokenLifetime).Unix(),
		"iat": s.clock().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtKey))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	s.log.WithField("username", account.Username).Info("login")
	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}

func (s *Server) handleProfile(c *gin.Context) {
	account := s.account(c)
	c.JSON(http.StatusOK, gin.H{
		"user_id":  account.ID,
		"username": account.Username,
		"email":    account.Email,
		"role":     account.Role,
	})
}

// requireAuth validates the bearer token and loads the account behind
// it into the request context.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if len(header) < 8 || !strings.EqualFold(header[:7], "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "missing or invalid token"})
			return
		}

		claims := jwt.MapClaims{}
		_, err := jwt.ParseWithClaims(header[7:], claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(s.jwtKey), nil
		})
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "invalid or expired token"})
			return
		}

		username, _ := claims["usr"].(string)
		if username == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "invalid token subject"})
			return
		}

		var account Account
		if err := s.db.Where("username = ?", username).First(&account).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "unknown account"})
			return
		}
		c.Set(accountKey, account)
		c.Next()
	}
}

const accountKey = "account"

// account returns the authenticated account set by requireAuth.
func (s *Server) account(c *gin.Context) Account {
	return c.MustGet(accountKey).(Account)
}
