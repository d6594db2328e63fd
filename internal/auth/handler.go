package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Chelo123Mau/P-RENAPP/internal/submission"
)

type Handler struct{ service Service }

func NewHandler(s Service) *Handler { return &Handler{s} }

// ===============================
// Signup
// ===============================

type SignupRequest struct {
	Username string `json:"username" binding:"required" example:"ana.mendoza"`
	Email    string `json:"email" binding:"required,email" example:"ana@example.com"`
	Password string `json:"password" binding:"required,min=6" example:"secret123"`
}

func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Faltan campos"})
		return
	}

	user, err := h.service.Signup(SignupInput(req))
	if err != nil {
		if errors.Is(err, ErrDuplicateAccount) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error en el servidor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":       true,
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}

// ===============================
// Login
// ===============================

type loginReq struct {
	Identifier string `json:"identifier" example:"ana.mendoza"`
	Username   string `json:"username" example:"ana.mendoza"`
	Email      string `json:"email" example:"ana@example.com"`
	Password   string `json:"password" binding:"required" example:"secret123"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Faltan credenciales"})
		return
	}

	// The frontend sends whichever of identifier/username/email it has.
	ident := req.Identifier
	if ident == "" {
		ident = req.Username
	}
	if ident == "" {
		ident = req.Email
	}
	if ident == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Faltan credenciales"})
		return
	}

	tokens, user, err := h.service.Login(LoginInput{Identifier: ident, Password: req.Password})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrInvalidCredentials.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":        tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"role":     submission.NormalizeRole(user.Role.RoleName),
		},
	})
}

// ===============================
// Me
// ===============================

func (h *Handler) Me(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No autorizado"})
		return
	}
	user := userVal.(User)

	c.JSON(http.StatusOK, gin.H{
		"id":               user.ID,
		"username":         user.Username,
		"email":            user.Email,
		"fullName":         user.FullName,
		"role":             submission.NormalizeRole(user.Role.RoleName),
		"isApproved":       user.IsApproved,
		"profileCompleted": user.ProfileCompleted,
	})
}

// ===============================
// Refresh
// ===============================

type refreshReq struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

func (h *Handler) Refresh(c *gin.Context) {
	var req refreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	token, err := h.service.Refresh(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// ===============================
// Forgot / Reset password
// ===============================

type forgotPasswordReq struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	// Do not reveal whether the account exists.
	if err := h.service.RequestPasswordReset(req.Email); err != nil {
		c.JSON(http.StatusOK, gin.H{"message": "Si existe una cuenta con este correo, se envió un enlace de recuperación"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Si existe una cuenta con este correo, se envió un enlace de recuperación"})
}

type resetPasswordReq struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req resetPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.service.ResetPassword(req.Token, req.NewPassword); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Enlace inválido o expirado"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Contraseña actualizada correctamente"})
}
