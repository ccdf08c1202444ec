package handlers

import (
	"net/http"
	"time"

	"minigram/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	users *services.UserService
}

func NewAuthHandler(users *services.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

// Register 处理注册 (POST /signup)
// multipart 表单：full_name, email, password, date_of_birth, profile_picture
func (h *AuthHandler) Register(c *gin.Context) {
	fullName := c.PostForm("full_name")
	email := c.PostForm("email")
	password := c.PostForm("password")
	dobStr := c.PostForm("date_of_birth")

	var dob time.Time
	if dobStr != "" {
		parsed, err := time.Parse("2006-01-02", dobStr)
		if err != nil {
			JSONError(c, http.StatusBadRequest, "date of birth must be YYYY-MM-DD")
			return
		}
		dob = parsed
	}

	file, header, err := c.Request.FormFile("profile_picture")
	if err != nil {
		JSONError(c, http.StatusBadRequest, "a profile picture is required")
		return
	}
	defer file.Close()

	user, err := h.users.Register(fullName, email, password, dob, file, header)
	if err != nil {
		FailWith(c, err)
		return
	}

	// 注册成功即登录
	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// Login 处理登录 (POST /login)
func (h *AuthHandler) Login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	user, err := h.users.Authenticate(email, password)
	if err != nil {
		// 不区分邮箱不存在和密码错误
		JSONError(c, http.StatusUnauthorized, "Invalid email or password.")
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// Logout 退出登录 (POST /logout)
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.JSON(http.StatusOK, gin.H{"success": true})
}
