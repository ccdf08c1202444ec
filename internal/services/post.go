package services

import (
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"time"

	"minigram/internal/models"
	"minigram/internal/utils"

	"gorm.io/gorm"
)

// 作者信息查不到时的兜底展示身份
const (
	DefaultDisplayName   = "User"
	DefaultAvatarLocator = "uploads/profile_pictures/default.jpg"
)

const postsSubdir = "posts"

// PostService 负责帖子的创建、列表、删除，以及图片的存取编排。
type PostService struct {
	db    *gorm.DB
	media *MediaStore
}

func NewPostService(database *gorm.DB, media *MediaStore) *PostService {
	return &PostService{db: database, media: media}
}

func feedCacheKey(ownerID uint) string {
	return fmt.Sprintf("feed:user:%d", ownerID)
}

// Create 校验描述和图片后落盘图片、插入帖子。
// 图片已存但插入失败时删掉文件，绝不留下引用不存在图片的帖子行。
func (s *PostService) Create(ownerID uint, description string, file multipart.File, header *multipart.FileHeader) (*models.Post, error) {
	description = utils.SanitizeText(description)
	if description == "" {
		return nil, fmt.Errorf("%w: post description is required", ErrValidation)
	}

	locator, err := s.media.Store(file, header, postsSubdir)
	if err != nil {
		return nil, err
	}

	post := models.Post{
		OwnerID:     ownerID,
		Description: description,
		Image:       locator,
		// 计数从 0 开始，由 reactions 表派生
	}
	if err := s.db.Create(&post).Error; err != nil {
		// 孤儿文件可以容忍，孤儿帖子行不行
		s.media.Remove(locator)
		return nil, fmt.Errorf("%w: insert post: %v", ErrStorage, err)
	}

	s.enrich(&post, nil)
	utils.GetCache().Delete(feedCacheKey(ownerID))

	return &post, nil
}

// ListByOwner 返回某个用户的全部帖子，最新的在前。
// 结果缓存 1 分钟，帖子或 reaction 变更时主动失效。
func (s *PostService) ListByOwner(ownerID uint) ([]models.Post, error) {
	cacheKey := feedCacheKey(ownerID)
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if posts, ok := cached.([]models.Post); ok {
			return posts, nil
		}
	}

	var posts []models.Post
	if err := s.db.Preload("Owner").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, err
	}

	for i := range posts {
		s.enrich(&posts[i], &posts[i].Owner)
	}

	utils.GetCache().Set(cacheKey, posts, 1*time.Minute)
	return posts, nil
}

// Get 按 ID 取单个帖子
func (s *PostService) Get(postID uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.Preload("Owner").First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: post %d", ErrNotFound, postID)
		}
		return nil, err
	}
	s.enrich(&post, &post.Owner)
	return &post, nil
}

// Delete 删除帖子及其全部 reaction 记录。
// 只允许作者本人删除；图片删除是尽力而为，不阻塞数据库删除。
func (s *PostService) Delete(postID, actingUserID uint) error {
	var post models.Post
	if err := s.db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: post %d", ErrNotFound, postID)
		}
		return err
	}

	if post.OwnerID != actingUserID {
		return fmt.Errorf("%w: post %d belongs to another user", ErrUnauthorized, postID)
	}

	// 文件先删，丢了也不影响下面的行删除
	if err := s.media.Remove(post.Image); err != nil {
		log.Printf("[media] failed to remove %s: %v", post.Image, err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// 级联清掉 reaction 行
		if err := tx.Where("post_id = ?", postID).Delete(&models.Reaction{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, postID).Error
	})
	if err != nil {
		return fmt.Errorf("%w: delete post: %v", ErrStorage, err)
	}

	utils.GetCache().Delete(feedCacheKey(post.OwnerID))
	return nil
}

// enrich 填充展示字段。owner 传 nil 时单独查一次，查不到用默认身份兜底。
func (s *PostService) enrich(post *models.Post, owner *models.User) {
	post.DescriptionHTML = utils.RenderMarkdown(post.Description)

	if owner == nil || owner.ID == 0 {
		var u models.User
		if err := s.db.First(&u, post.OwnerID).Error; err == nil {
			owner = &u
		}
	}
	if owner == nil || owner.ID == 0 {
		post.OwnerDisplayName = DefaultDisplayName
		post.OwnerAvatarLocator = DefaultAvatarLocator
		return
	}
	post.OwnerDisplayName = owner.FullName
	post.OwnerAvatarLocator = owner.ProfilePicture
	if post.OwnerAvatarLocator == "" {
		post.OwnerAvatarLocator = DefaultAvatarLocator
	}
}
