package handlers

import (
	"errors"
	"net/http"

	"minigram/internal/middleware"
	"minigram/internal/models"
	"minigram/internal/services"
	"minigram/internal/utils"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	posts     *services.PostService
	reactions *services.ReactionService
}

func NewPostHandler(posts *services.PostService, reactions *services.ReactionService) *PostHandler {
	return &PostHandler{posts: posts, reactions: reactions}
}

// Create 发布帖子 (POST /api/posts)
// multipart 表单：description, image
func (h *PostHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	description := c.PostForm("description")
	if description == "" {
		JSONError(c, http.StatusBadRequest, "Post description is required.")
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		JSONError(c, http.StatusBadRequest, "Please select a valid image file.")
		return
	}
	defer file.Close()

	post, err := h.posts.Create(user.ID, description, file, header)
	if err != nil {
		FailWith(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "post": post})
}

// ListMine 当前用户的动态列表 (GET /api/posts)
func (h *PostHandler) ListMine(c *gin.Context) {
	user := middleware.CurrentUser(c)
	h.listFor(c, user.ID)
}

// ListByUser 指定用户的动态列表 (GET /api/users/:id/posts)
func (h *PostHandler) ListByUser(c *gin.Context) {
	ownerID := utils.StringToUint(c.Param("id"))
	if ownerID == 0 {
		JSONError(c, http.StatusBadRequest, "invalid user id")
		return
	}
	h.listFor(c, ownerID)
}

func (h *PostHandler) listFor(c *gin.Context, ownerID uint) {
	viewer := middleware.CurrentUser(c)

	cached, err := h.posts.ListByOwner(ownerID)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to load posts")
		return
	}

	// 列表可能来自缓存，先拷贝再标注观看者自己的投票状态
	posts := make([]models.Post, len(cached))
	copy(posts, cached)
	for i := range posts {
		if kind, err := h.reactions.GetUserReaction(posts[i].ID, viewer.ID); err == nil {
			posts[i].ViewerReaction = kind
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "posts": posts})
}

// Delete 删除帖子 (DELETE /api/posts/:id)
// 仅作者可删；越权和不存在对客户端是同一个失败
func (h *PostHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)

	postID := utils.StringToUint(c.Param("id"))
	if postID == 0 {
		JSONError(c, http.StatusBadRequest, "invalid post id")
		return
	}

	if err := h.posts.Delete(postID, user.ID); err != nil {
		if errors.Is(err, services.ErrUnauthorized) || errors.Is(err, services.ErrNotFound) {
			JSONError(c, http.StatusForbidden, "Failed to delete post or unauthorized.")
			return
		}
		FailWith(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
