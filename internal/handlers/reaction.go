package handlers

import (
	"net/http"

	"minigram/internal/middleware"
	"minigram/internal/models"
	"minigram/internal/services"
	"minigram/internal/utils"

	"github.com/gin-gonic/gin"
)

type ReactionHandler struct {
	reactions *services.ReactionService
}

func NewReactionHandler(reactions *services.ReactionService) *ReactionHandler {
	return &ReactionHandler{reactions: reactions}
}

// React 点赞/点踩 (POST /api/posts/:id/react)
// 表单字段 kind: "like" | "dislike"。重复同类投票即取消。
func (h *ReactionHandler) React(c *gin.Context) {
	user := middleware.CurrentUser(c)

	postID := utils.StringToUint(c.Param("id"))
	if postID == 0 {
		JSONError(c, http.StatusBadRequest, "invalid post id")
		return
	}

	kind := models.ReactionKind(c.PostForm("kind"))

	likes, dislikes, err := h.reactions.React(postID, user.ID, kind)
	if err != nil {
		FailWith(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"likeCount":    likes,
		"dislikeCount": dislikes,
	})
}

// MyReaction 查询当前用户对帖子的投票状态 (GET /api/posts/:id/reaction)
// 只读，无记录时 kind 为空串
func (h *ReactionHandler) MyReaction(c *gin.Context) {
	user := middleware.CurrentUser(c)

	postID := utils.StringToUint(c.Param("id"))
	if postID == 0 {
		JSONError(c, http.StatusBadRequest, "invalid post id")
		return
	}

	kind, err := h.reactions.GetUserReaction(postID, user.ID)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to load reaction")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "kind": kind})
}
