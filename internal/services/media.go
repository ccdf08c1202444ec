package services

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// 帖子图片和头像允许的扩展名
var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// MediaStore 把上传的图片落盘并返回可作为定位符的相对路径。
// root 通常是 "uploads"，定位符形如 uploads/posts/<uuid>-<name>。
type MediaStore struct {
	root string
}

func NewMediaStore(root string) *MediaStore {
	if root == "" {
		root = "uploads"
	}
	return &MediaStore{root: root}
}

// Store 校验并保存上传文件，返回定位符。
// 文件缺失或为空返回 ErrValidation，扩展名不在白名单返回 ErrUnsupportedMedia，
// 写入失败返回 ErrStorage。
func (s *MediaStore) Store(file multipart.File, header *multipart.FileHeader, subdir string) (string, error) {
	if file == nil || header == nil || header.Size == 0 {
		return "", fmt.Errorf("%w: an image file is required", ErrValidation)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExts[ext] {
		return "", fmt.Errorf("%w: only JPG, JPEG, PNG & GIF files are allowed", ErrUnsupportedMedia)
	}

	// uuid 前缀保证并发上传不会撞名，原始文件名只保留安全字符
	fileName := uuid.NewString() + "-" + sanitizeBaseName(header.Filename)

	dir := filepath.Join(s.root, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create upload directory: %v", ErrStorage, err)
	}

	target := filepath.Join(dir, fileName)
	dst, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("%w: create file: %v", ErrStorage, err)
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		os.Remove(target)
		return "", fmt.Errorf("%w: write file: %v", ErrStorage, err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(target)
		return "", fmt.Errorf("%w: close file: %v", ErrStorage, err)
	}

	return path.Join(filepath.ToSlash(s.root), subdir, fileName), nil
}

// Remove 删除定位符对应的文件。幂等：文件不存在不算错误。
func (s *MediaStore) Remove(locator string) error {
	if locator == "" {
		return nil
	}
	if err := os.Remove(filepath.FromSlash(locator)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: remove file: %v", ErrStorage, err)
	}
	return nil
}

// sanitizeBaseName 只保留字母数字和 . - _，其余字符替换为下划线
func sanitizeBaseName(name string) string {
	base := filepath.Base(filepath.ToSlash(name))
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
