package services

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	"minigram/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 为每个测试开一个独立的内存库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, database.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Reaction{},
	))
	return database
}

// makeUpload 构造一个 multipart 上传文件，走和真实请求一样的解析路径
func makeUpload(t *testing.T, filename string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	fw, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())

	file, header, err := req.FormFile("image")
	require.NoError(t, err)
	return file, header
}

func seedUser(t *testing.T, database *gorm.DB, name, email string) *models.User {
	t.Helper()

	user := models.User{
		FullName:    name,
		Email:       email,
		Password:    "x",
		DateOfBirth: time.Date(1995, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, database.Create(&user).Error)
	return &user
}

func seedPost(t *testing.T, database *gorm.DB, media *MediaStore, owner *models.User, description string) *models.Post {
	t.Helper()

	file, header := makeUpload(t, "photo.png", []byte("png-bytes"))
	defer file.Close()

	posts := NewPostService(database, media)
	post, err := posts.Create(owner.ID, description, file, header)
	require.NoError(t, err)
	return post
}
