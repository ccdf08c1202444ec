package services

import (
	"errors"
	"fmt"

	"minigram/internal/models"
	"minigram/internal/utils"

	"gorm.io/gorm"
)

// ReactionService 管理点赞/点踩状态机。
// 每个 (user, post) 至多一条记录：
//
//	无记录 + like    -> 插入 like
//	like   + like    -> 删除记录（取消）
//	like   + dislike -> 改为 dislike
//
// 状态变更和计数重算在同一个事务内完成，Post 上的计数永远等于
// reactions 表的实际行数。
type ReactionService struct {
	db *gorm.DB
}

func NewReactionService(database *gorm.DB) *ReactionService {
	return &ReactionService{db: database}
}

// React 应用一次投票并返回帖子最新的 (likeCount, dislikeCount)。
func (s *ReactionService) React(postID, userID uint, kind models.ReactionKind) (int, int, error) {
	if !kind.Valid() {
		return 0, 0, fmt.Errorf("%w: reaction kind must be like or dislike", ErrInvalidArgument)
	}

	var likes, dislikes int64
	var ownerID uint

	apply := func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: post %d", ErrNotFound, postID)
			}
			return err
		}
		ownerID = post.OwnerID

		var existing models.Reaction
		if err := tx.Where("user_id = ? AND post_id = ?", userID, postID).
			Limit(1).Find(&existing).Error; err != nil {
			return err
		}

		switch {
		case existing.ID == 0:
			// 首次投票
			reaction := models.Reaction{UserID: userID, PostID: postID, Kind: kind}
			if err := tx.Create(&reaction).Error; err != nil {
				return err
			}
		case existing.Kind == kind:
			// 同类重复投票 - 取消（toggle off）
			if err := tx.Delete(&models.Reaction{}, existing.ID).Error; err != nil {
				return err
			}
		default:
			// 反向投票 - 切换类型
			if err := tx.Model(&models.Reaction{}).Where("id = ?", existing.ID).
				Update("kind", kind).Error; err != nil {
				return err
			}
		}

		// 在同一事务内按行数重算计数，防止并发下丢失更新
		if err := tx.Model(&models.Reaction{}).
			Where("post_id = ? AND kind = ?", postID, models.ReactionLike).
			Count(&likes).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Reaction{}).
			Where("post_id = ? AND kind = ?", postID, models.ReactionDislike).
			Count(&dislikes).Error; err != nil {
			return err
		}

		return tx.Model(&models.Post{}).Where("id = ?", postID).
			Updates(map[string]interface{}{
				"like_count":    likes,
				"dislike_count": dislikes,
			}).Error
	}

	err := s.db.Transaction(apply)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// 同一用户并发首投，输家撞上唯一索引后重读一次再走状态机
		err = s.db.Transaction(apply)
	}
	if err != nil {
		return 0, 0, err
	}

	// 计数变了，作者的动态列表缓存失效
	utils.GetCache().Delete(feedCacheKey(ownerID))

	return int(likes), int(dislikes), nil
}

// GetUserReaction 查询用户对帖子的当前状态，无记录时返回空串（中立）。
func (s *ReactionService) GetUserReaction(postID, userID uint) (models.ReactionKind, error) {
	var reaction models.Reaction
	err := s.db.Where("user_id = ? AND post_id = ?", userID, postID).
		Limit(1).Find(&reaction).Error
	if err != nil {
		return "", err
	}
	if reaction.ID == 0 {
		return "", nil
	}
	return reaction.Kind, nil
}
