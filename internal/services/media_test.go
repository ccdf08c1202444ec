package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaStoreStoreAndRemove(t *testing.T) {
	media := NewMediaStore(t.TempDir())

	file, header := makeUpload(t, "My Photo.PNG", []byte("fake-png"))
	defer file.Close()

	locator, err := media.Store(file, header, "posts")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(locator, "My_Photo.PNG"), "locator keeps sanitized base name: %s", locator)
	assert.Contains(t, locator, "/posts/")

	// 字节已经落盘
	data, err := os.ReadFile(filepath.FromSlash(locator))
	require.NoError(t, err)
	assert.Equal(t, []byte("fake-png"), data)

	// 删除后文件消失，重复删除不报错
	require.NoError(t, media.Remove(locator))
	_, err = os.Stat(filepath.FromSlash(locator))
	assert.True(t, os.IsNotExist(err))
	require.NoError(t, media.Remove(locator))
}

func TestMediaStoreUniqueNames(t *testing.T) {
	media := NewMediaStore(t.TempDir())

	f1, h1 := makeUpload(t, "same.jpg", []byte("a"))
	defer f1.Close()
	f2, h2 := makeUpload(t, "same.jpg", []byte("b"))
	defer f2.Close()

	loc1, err := media.Store(f1, h1, "posts")
	require.NoError(t, err)
	loc2, err := media.Store(f2, h2, "posts")
	require.NoError(t, err)

	assert.NotEqual(t, loc1, loc2, "same original name must not collide")
}

func TestMediaStoreRejectsBadExtension(t *testing.T) {
	media := NewMediaStore(t.TempDir())

	file, header := makeUpload(t, "virus.exe", []byte("MZ"))
	defer file.Close()

	_, err := media.Store(file, header, "posts")
	assert.ErrorIs(t, err, ErrUnsupportedMedia)
}

func TestMediaStoreRejectsEmptyFile(t *testing.T) {
	media := NewMediaStore(t.TempDir())

	file, header := makeUpload(t, "empty.png", nil)
	defer file.Close()

	_, err := media.Store(file, header, "posts")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = media.Store(nil, nil, "posts")
	assert.ErrorIs(t, err, ErrValidation)
}
