package handlers

import (
	"errors"
	"net/http"

	"food-ordering-api/middleware"
	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type SignupRequest struct {
	Name     string          `json:"name" binding:"required"`
	LastName string          `json:"last_name"`
	Phone    string          `json:"phone" binding:"required"`
	Password string          `json:"password" binding:"required,min=6"`
	Role     models.UserRole `json:"role" binding:"required,oneof=customer manager"`
}

type LoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func userBody(u *models.User) gin.H {
	return gin.H{
		"id":        u.ID,
		"name":      u.Name,
		"last_name": u.LastName,
		"phone":     u.Phone,
		"role":      u.Role,
	}
}

// Signup creates a customer or manager account. Support accounts are
// provisioned out of band.
func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	taken, err := h.Repos.Users.PhoneTaken(c.Request.Context(), req.Phone)
	if err != nil {
		h.fail(c, "signup", err)
		return
	}
	if taken {
		c.JSON(http.StatusConflict, gin.H{"error": "Phone already registered"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Name:         req.Name,
		LastName:     req.LastName,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Role:         req.Role,
	}
	if err := h.Repos.Users.Create(h.Repos.DB.WithContext(c.Request.Context()), &user); err != nil {
		h.fail(c, "signup", err)
		return
	}

	token, err := h.JWT.GenerateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully",
		"token":   token,
		"user":    userBody(&user),
	})
}

// Login authenticates a user and returns a JWT
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Repos.Users.FindByPhone(c.Request.Context(), req.Phone)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid phone or password"})
		return
	}
	if err != nil {
		h.fail(c, "login", err)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid phone or password"})
		return
	}

	token, err := h.JWT.GenerateToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    userBody(user),
	})
}

// GetProfile returns the authenticated user's profile
func (h *Handler) GetProfile(c *gin.Context) {
	user, err := h.Repos.Users.FindByID(h.Repos.DB.WithContext(c.Request.Context()), middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
