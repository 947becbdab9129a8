package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"portfolio-app/config"
	"portfolio-app/internal/api/respond"
	"portfolio-app/internal/domain/users"
	"portfolio-app/internal/validate"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// POST /api/auth/register
func (h *Handler) Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		respond.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	input.Username = strings.ToLower(strings.TrimSpace(input.Username))
	input.Email = strings.TrimSpace(input.Email)

	if !validate.Username(input.Username) {
		respond.Error(c, http.StatusBadRequest, "Username must be 3-30 lowercase letters, digits or underscores")
		return
	}
	if !validate.Email(input.Email) {
		respond.Error(c, http.StatusBadRequest, "Invalid email format")
		return
	}
	if !validate.PasswordStrong(input.Password) {
		respond.Error(c, http.StatusBadRequest, "Password must be at least 8 characters long and contain both letters and numbers")
		return
	}

	var existing users.User
	if err := h.db.Where("email = ? OR username = ?", input.Email, input.Username).First(&existing).Error; err == nil {
		if existing.Email == input.Email {
			respond.Error(c, http.StatusConflict, "Email already registered")
		} else {
			respond.Error(c, http.StatusConflict, "Username is taken")
		}
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}
	hashed := string(hashedPassword)

	user := users.User{
		Name:         input.Name,
		Username:     input.Username,
		Email:        input.Email,
		Password:     &hashed,
		AuthProvider: "local",
		GoogleSub:    nil,
	}

	if err := h.db.Create(&user).Error; err != nil {
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	token, err := issueAppJWT(user)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "Could not create token")
		return
	}

	respond.Created(c, gin.H{"token": token, "user": userDTO(user)})
}

// POST /api/auth/login
func (h *Handler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respond.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	var user users.User
	err := h.db.Where("email = ?", input.Email).First(&user).Error
	if err != nil {
		respond.Error(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if user.Password == nil || *user.Password == "" {
		respond.Error(c, http.StatusUnauthorized, "This account uses Google sign-in")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(input.Password)); err != nil {
		respond.Error(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := issueAppJWT(user)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "Could not create token")
		return
	}

	respond.OK(c, gin.H{"token": token, "user": userDTO(user)})
}

// GET /api/auth/me
func (h *Handler) Me(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		respond.Error(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var user users.User
	if err := h.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respond.Error(c, http.StatusNotFound, "User not found")
			return
		}
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	respond.OK(c, userDTO(user))
}

// POST /api/auth/change-password
func (h *Handler) ChangePassword(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		respond.Error(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, "Invalid input")
		return
	}

	if !validate.PasswordStrong(body.NewPassword) {
		respond.Error(c, http.StatusBadRequest, "New password must be at least 8 characters with letters and numbers")
		return
	}

	var user users.User
	if err := h.db.First(&user, userID).Error; err != nil {
		respond.Error(c, http.StatusUnauthorized, "User not found")
		return
	}

	if user.Password == nil || *user.Password == "" {
		respond.Error(c, http.StatusBadRequest, "This account does not have a password. Sign in with Google first.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(body.OldPassword)); err != nil {
		respond.Error(c, http.StatusUnauthorized, "Old password is incorrect")
		return
	}

	hashedNew, _ := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.DefaultCost)
	if err := h.db.Model(&user).Update("password", string(hashedNew)).Error; err != nil {
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	respond.OK(c, gin.H{"message": "Password changed successfully"})
}

func userDTO(user users.User) gin.H {
	return gin.H{
		"id":       user.ID,
		"name":     user.Name,
		"username": user.Username,
		"email":    user.Email,
	}
}

func issueAppJWT(user users.User) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	return t.SignedString([]byte(config.JWT_SECRET))
}
