package middleware

import (
	"net/http"

	"minigram/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const CheckUserKey = "user"

// LoadUser retrieves user from session and sets to context
func LoadUser(database *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get("user_id")

		if userID != nil {
			var user models.User
			result := database.First(&user, userID)
			if result.Error == nil {
				c.Set(CheckUserKey, &user)
			}
		}
		c.Next()
	}
}

// AuthRequired ensures a user is logged in.
// 未登录统一返回通用失败，不进入任何业务逻辑。
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CheckUserKey); !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "User not logged in."})
			return
		}
		c.Next()
	}
}

// CurrentUser 取出 LoadUser 放进上下文的用户，AuthRequired 保证其存在
func CurrentUser(c *gin.Context) *models.User {
	return c.MustGet(CheckUserKey).(*models.User)
}
