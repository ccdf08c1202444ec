package models

import (
	"time"
)

type Post struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	OwnerID      uint      `gorm:"not null;index" json:"ownerId"`
	Owner        User      `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Description  string    `gorm:"type:text;not null" json:"description"`
	Image        string    `gorm:"not null" json:"imageLocator"` // uploads/posts/...
	LikeCount    int       `gorm:"default:0" json:"likeCount"`
	DislikeCount int       `gorm:"default:0" json:"dislikeCount"`
	CreatedAt    time.Time `json:"createdAt"`

	// 非数据库字段，用于查询时填充
	OwnerDisplayName   string       `gorm:"-" json:"ownerDisplayName"`
	OwnerAvatarLocator string       `gorm:"-" json:"ownerAvatarLocator"`
	DescriptionHTML    string       `gorm:"-" json:"descriptionHtml,omitempty"`
	ViewerReaction     ReactionKind `gorm:"-" json:"viewerReaction,omitempty"`
}

// LikeCount 与 DislikeCount 由 reactions 表派生，
// 每次 reaction 变更后在同一事务内重算，不可单独更新。
