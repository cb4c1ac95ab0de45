package api

import (
	"errors"
	"net/http"

	"suito/config"

	"github.com/gin-gonic/gin"
)

// Response 错误响应结构
// 同步协议的成功响应直接返回协议定义的 JSON，不套这一层
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error 错误响应
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest 400 错误响应
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// InternalError 500 错误响应，release 模式下隐藏内部错误详情
func InternalError(c *gin.Context, err error, fallback string) {
	Error(c, http.StatusInternalServerError, config.SafeErrorMessage(err, fallback))
}

// BindError 请求体解析失败：超出大小限制返回 413，其余返回 400
func BindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		Error(c, http.StatusRequestEntityTooLarge, "请求体过大")
		return
	}
	BadRequest(c, "参数错误: "+err.Error())
}
