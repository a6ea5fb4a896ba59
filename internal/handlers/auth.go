package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"eats-api/internal/middleware"
	"eats-api/internal/models"
	"eats-api/internal/service"
)

type AuthHandler struct {
	users *service.Users
}

func NewAuthHandler(users *service.Users) *AuthHandler {
	return &AuthHandler{users: users}
}

type createAccountRequest struct {
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=6"`
	Role     models.UserRole `json:"role" binding:"required"`
}

// CreateAccount registers a new user account.
func (h *AuthHandler) CreateAccount(c *gin.Context) {
	var req createAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if !models.ValidRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid role. Must be: Client, Owner, or Delivery"})
		return
	}
	user, err := h.users.CreateAccount(req.Email, req.Password, req.Role)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, gin.H{"user": gin.H{
		"id":    user.ID,
		"email": user.Email,
		"role":  user.Role,
	}})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates a user and returns a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	token, err := h.users.Login(req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"token": token})
}

// Me returns the authenticated user's own record.
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	ok(c, http.StatusOK, gin.H{"user": user})
}

// UserProfile returns another user's public profile by id.
func (h *AuthHandler) UserProfile(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid user id"})
		return
	}
	user, err := h.users.FindByID(uint(id))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"user": user})
}

type updateAccountRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=6"`
}

// UpdateAccount changes the authenticated user's e-mail and/or password.
func (h *AuthHandler) UpdateAccount(c *gin.Context) {
	user := middleware.CurrentUser(c)
	var req updateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	updated, err := h.users.UpdateAccount(user.ID, req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"user": updated})
}

// DeleteAccount removes the authenticated user's account.
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := h.users.DeleteAccount(user.ID); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{})
}

type verifyEmailRequest struct {
	Code string `json:"code" binding:"required"`
}

// VerifyEmail consumes a verification code.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req verifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.users.VerifyEmail(req.Code); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{})
}
