package services

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"minigram/internal/models"
	"minigram/internal/utils"

	"gorm.io/gorm"
)

const profilePicsSubdir = "profile_pictures"

// ProfileUpdate 描述一次资料更新中被修改的字段。
// nil 表示该字段保持不变，gorm 的 Updates 只会写被设置的列。
type ProfileUpdate struct {
	FullName    *string
	DateOfBirth *time.Time
	// 新头像，可选
	PictureFile   multipart.File
	PictureHeader *multipart.FileHeader
}

// UserService 负责注册、登录以及资料读写。
type UserService struct {
	db    *gorm.DB
	media *MediaStore
}

func NewUserService(database *gorm.DB, media *MediaStore) *UserService {
	return &UserService{db: database, media: media}
}

// Register 创建新用户。头像走同一个 MediaStore 校验和落盘。
func (s *UserService) Register(fullName, email, password string, dob time.Time, file multipart.File, header *multipart.FileHeader) (*models.User, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.TrimSpace(strings.ToLower(email))

	if fullName == "" || email == "" || password == "" || dob.IsZero() {
		return nil, fmt.Errorf("%w: all fields are required", ErrValidation)
	}
	parts := strings.Split(email, "@")
	if len(parts) != 2 || parts[0] == "" || !strings.Contains(parts[1], ".") {
		return nil, fmt.Errorf("%w: invalid email format", ErrValidation)
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: an account with this email already exists", ErrValidation)
	}

	locator, err := s.media.Store(file, header, profilePicsSubdir)
	if err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		FullName:       fullName,
		Email:          email,
		Password:       hash,
		DateOfBirth:    dob,
		ProfilePicture: locator,
	}
	if err := s.db.Create(&user).Error; err != nil {
		s.media.Remove(locator)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// 并发注册同一邮箱，输家在这里收场
			return nil, fmt.Errorf("%w: an account with this email already exists", ErrValidation)
		}
		return nil, fmt.Errorf("%w: insert user: %v", ErrStorage, err)
	}

	return &user, nil
}

// Authenticate 校验邮箱密码。为避免泄露账号是否存在，两种失败返回同一个错误。
func (s *UserService) Authenticate(email, password string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	var user models.User
	if err := s.db.Where("email = ?", email).Limit(1).Find(&user).Error; err != nil {
		return nil, err
	}
	if user.ID == 0 || !utils.CheckPasswordHash(password, user.Password) {
		return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}
	return &user, nil
}

// Get 按 ID 取用户
func (s *UserService) Get(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return nil, err
	}
	return &user, nil
}

// GetDisplayInfo 返回用户的展示名和头像定位符，查不到时回退到默认身份。
func (s *UserService) GetDisplayInfo(userID uint) (name, avatar string) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return DefaultDisplayName, DefaultAvatarLocator
	}
	if user.ProfilePicture == "" {
		return user.FullName, DefaultAvatarLocator
	}
	return user.FullName, user.ProfilePicture
}

// UpdateProfile 应用一组可选的字段变更。
// 不拼 SQL 字符串：把要改的列收进 map 交给 Updates。
func (s *UserService) UpdateProfile(userID uint, update ProfileUpdate) (*models.User, error) {
	changes := map[string]interface{}{}

	if update.FullName != nil {
		name := strings.TrimSpace(*update.FullName)
		if name == "" {
			return nil, fmt.Errorf("%w: full name cannot be empty", ErrValidation)
		}
		changes["full_name"] = name
	}
	if update.DateOfBirth != nil {
		changes["date_of_birth"] = *update.DateOfBirth
	}
	if update.PictureHeader != nil {
		locator, err := s.media.Store(update.PictureFile, update.PictureHeader, profilePicsSubdir)
		if err != nil {
			return nil, err
		}
		changes["profile_picture"] = locator
	}

	if len(changes) == 0 {
		return nil, fmt.Errorf("%w: nothing to update", ErrValidation)
	}

	if err := s.db.Model(&models.User{}).Where("id = ?", userID).
		Updates(changes).Error; err != nil {
		return nil, fmt.Errorf("%w: update profile: %v", ErrStorage, err)
	}

	// 动态列表里带着作者昵称和头像，改完资料要让缓存失效
	utils.GetCache().Delete(feedCacheKey(userID))

	return s.Get(userID)
}
