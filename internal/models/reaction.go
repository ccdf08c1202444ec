package models

import (
	"time"
)

type ReactionKind string

const (
	ReactionLike    ReactionKind = "like"
	ReactionDislike ReactionKind = "dislike"
)

// Valid reports whether k is one of the two storable kinds.
// 中立状态不落库：没有行即为中立。
func (k ReactionKind) Valid() bool {
	return k == ReactionLike || k == ReactionDislike
}

// Reaction 点赞/点踩记录 - 每个用户对每个帖子至多一条
type Reaction struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	UserID    uint         `gorm:"not null;index;uniqueIndex:idx_user_post" json:"userId"`
	PostID    uint         `gorm:"not null;index;uniqueIndex:idx_user_post" json:"postId"`
	Post      Post         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Kind      ReactionKind `gorm:"type:varchar(10);not null" json:"kind"`
	CreatedAt time.Time    `json:"createdAt"`
}
