package handlers

import (
	"errors"
	"net/http"

	"minigram/internal/services"

	"github.com/gin-gonic/gin"
)

// JSONError 输出 {"error": ...} 结构的失败响应
func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// FailWith 把业务错误映射为 HTTP 状态码并输出 JSON 失败响应。
// 消息直接用错误文本，taxonomy 错误的文本本身就是面向客户端写的。
func FailWith(c *gin.Context, err error) {
	JSONError(c, statusFor(err), msg(err))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrUnsupportedMedia):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func msg(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
