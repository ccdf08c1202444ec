package handlers

import (
	"net/http"
	"time"

	"minigram/internal/middleware"
	"minigram/internal/services"
	"minigram/internal/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users *services.UserService
	posts *services.PostService
}

func NewUserHandler(users *services.UserService, posts *services.PostService) *UserHandler {
	return &UserHandler{users: users, posts: posts}
}

// Profile 当前用户资料 (GET /api/profile)
func (h *UserHandler) Profile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
		"age":     user.Age(),
	})
}

// PublicProfile 他人主页 (GET /api/users/:id)
func (h *UserHandler) PublicProfile(c *gin.Context) {
	userID := utils.StringToUint(c.Param("id"))
	if userID == 0 {
		JSONError(c, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := h.users.Get(userID)
	if err != nil {
		FailWith(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"id":             user.ID,
			"fullName":       user.FullName,
			"profilePicture": user.ProfilePicture,
			"createdAt":      user.CreatedAt,
			"age":            user.Age(),
		},
	})
}

// UpdateProfile 更新资料 (POST /api/profile)
// 所有字段可选：full_name, date_of_birth, profile_picture
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var update services.ProfileUpdate

	if name, ok := c.GetPostForm("full_name"); ok {
		update.FullName = &name
	}
	if dobStr, ok := c.GetPostForm("date_of_birth"); ok {
		dob, err := time.Parse("2006-01-02", dobStr)
		if err != nil {
			JSONError(c, http.StatusBadRequest, "date of birth must be YYYY-MM-DD")
			return
		}
		update.DateOfBirth = &dob
	}
	if file, header, err := c.Request.FormFile("profile_picture"); err == nil {
		defer file.Close()
		update.PictureFile = file
		update.PictureHeader = header
	}

	updated, err := h.users.UpdateProfile(user.ID, update)
	if err != nil {
		FailWith(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated successfully",
		"user":    updated,
	})
}
