package services

import (
	"errors"
)

// 业务错误分类，handler 层用 errors.Is 匹配后映射为 HTTP 状态码和 JSON 错误。
var (
	ErrValidation       = errors.New("validation failed")
	ErrUnsupportedMedia = errors.New("unsupported media type")
	ErrStorage          = errors.New("storage failure")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrNotFound         = errors.New("not found")
	ErrInvalidArgument  = errors.New("invalid argument")
)
