// internal/handlers/blog.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gamebazaar/gamebazaar-backend/internal/services"
	"github.com/gamebazaar/gamebazaar-backend/internal/utils"
)

type BlogHandler struct {
	blogService    *services.BlogService
	storageService *services.StorageService
}

func NewBlogHandler(blogService *services.BlogService, storageService *services.StorageService) *BlogHandler {
	return &BlogHandler{
		blogService:    blogService,
		storageService: storageService,
	}
}

// GET /blogs
func (h *BlogHandler) GetBlogs(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	blogs, total, err := h.blogService.ListBlogs(viewerFromContext(c), c.Request.URL.Query(), params)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	result := utils.CreatePaginationResult(blogs, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /blogs/featured
func (h *BlogHandler) GetFeaturedBlogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "6"))
	if limit < 1 || limit > 50 {
		limit = 6
	}

	blogs, err := h.blogService.GetFeaturedBlogs(viewerFromContext(c), limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, blogs)
}

// GET /blogs/slug/:slug
func (h *BlogHandler) GetBlogBySlug(c *gin.Context) {
	blog, err := h.blogService.GetBlogBySlug(c.Param("slug"), viewerFromContext(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, blog)
}

// GET /blogs/:id
func (h *BlogHandler) GetBlog(c *gin.Context) {
	blogID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid blog ID", nil)
		return
	}

	blog, err := h.blogService.GetBlog(blogID, viewerFromContext(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, blog)
}

// POST /blogs
func (h *BlogHandler) CreateBlog(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	blog, err := h.blogService.CreateBlog(actor, &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, blog)
}

// PUT /blogs/:id
func (h *BlogHandler) UpdateBlog(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	blogID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid blog ID", nil)
		return
	}

	var req services.UpdateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	blog, err := h.blogService.UpdateBlog(actor, blogID, &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, blog)
}

// DELETE /blogs/:id
func (h *BlogHandler) DeleteBlog(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	blogID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid blog ID", nil)
		return
	}

	if err := h.blogService.DeleteBlog(actor, blogID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Blog deleted"})
}

// PUT /blogs/:id/like
func (h *BlogHandler) ToggleLike(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	blogID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid blog ID", nil)
		return
	}

	blog, err := h.blogService.ToggleLike(actor, blogID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, blog)
}

// POST /blogs/:id/comment
func (h *BlogHandler) CreateComment(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	blogID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid blog ID", nil)
		return
	}

	var req services.BlogCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	blog, err := h.blogService.CreateComment(actor, blogID, &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, blog)
}

// PUT /blogs/:id/comment/:commentId
func (h *BlogHandler) UpdateComment(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	blogID, commentID, ok := parseBlogCommentIDs(c)
	if !ok {
		return
	}

	var req services.BlogCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	blog, err := h.blogService.UpdateComment(actor, blogID, commentID, &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, blog)
}

// DELETE /blogs/:id/comment/:commentId
func (h *BlogHandler) DeleteComment(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	blogID, commentID, ok := parseBlogCommentIDs(c)
	if !ok {
		return
	}

	blog, err := h.blogService.DeleteComment(actor, blogID, commentID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, blog)
}

// PUT /blogs/:id/comment/:commentId/like
func (h *BlogHandler) ToggleCommentLike(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	blogID, commentID, ok := parseBlogCommentIDs(c)
	if !ok {
		return
	}

	blog, err := h.blogService.ToggleCommentLike(actor, blogID, commentID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, blog)
}

// POST /blogs/:id/comment/:commentId/reply
func (h *BlogHandler) CreateCommentReply(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	blogID, commentID, ok := parseBlogCommentIDs(c)
	if !ok {
		return
	}

	var req services.BlogCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	blog, err := h.blogService.CreateCommentReply(actor, blogID, commentID, &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, blog)
}

// PUT /blogs/:id/comment/:commentId/reply/:replyId
func (h *BlogHandler) UpdateCommentReply(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	blogID, commentID, replyID, ok := parseBlogReplyIDs(c)
	if !ok {
		return
	}

	var req services.BlogCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	blog, err := h.blogService.UpdateCommentReply(actor, blogID, commentID, replyID, &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, blog)
}

// DELETE /blogs/:id/comment/:commentId/reply/:replyId
func (h *BlogHandler) DeleteCommentReply(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	blogID, commentID, replyID, ok := parseBlogReplyIDs(c)
	if !ok {
		return
	}

	blog, err := h.blogService.DeleteCommentReply(actor, blogID, commentID, replyID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, blog)
}

// PUT /blogs/:id/comment/:commentId/reply/:replyId/like
func (h *BlogHandler) ToggleCommentReplyLike(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	blogID, commentID, replyID, ok := parseBlogReplyIDs(c)
	if !ok {
		return
	}

	blog, err := h.blogService.ToggleCommentReplyLike(actor, blogID, commentID, replyID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, blog)
}

// POST /blogs/images
func (h *BlogHandler) UploadImage(c *gin.Context) {
	if _, ok := actorFromContext(c); !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "No file provided", nil)
		return
	}
	defer file.Close()

	if err := h.storageService.ValidateImage(file); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	result, err := h.storageService.UploadFile(file, header, h.storageService.GetDefaultUploadOptions("blogs"))
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, result)
}

func parseBlogCommentIDs(c *gin.Context) (blogID, commentID uuid.UUID, ok bool) {
	blogID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid blog ID", nil)
		return uuid.Nil, uuid.Nil, false
	}
	commentID, err = uuid.Parse(c.Param("commentId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid comment ID", nil)
		return uuid.Nil, uuid.Nil, false
	}
	return blogID, commentID, true
}

func parseBlogReplyIDs(c *gin.Context) (blogID, commentID, replyID uuid.UUID, ok bool) {
	blogID, commentID, ok = parseBlogCommentIDs(c)
	if !ok {
		return uuid.Nil, uuid.Nil, uuid.Nil, false
	}
	replyID, err := uuid.Parse(c.Param("replyId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid reply ID", nil)
		return uuid.Nil, uuid.Nil, uuid.Nil, false
	}
	return blogID, commentID, replyID, true
}
