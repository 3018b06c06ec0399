// internal/services/blog_service.go
package services

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/gamebazaar/gamebazaar-backend/internal/apperrors"
	"github.com/gamebazaar/gamebazaar-backend/internal/catalog"
	"github.com/gamebazaar/gamebazaar-backend/internal/models"
	"github.com/gamebazaar/gamebazaar-backend/internal/utils"
)

type BlogService struct {
	db *gorm.DB
}

type CreateBlogRequest struct {
	Title          string            `json:"title" validate:"required,min=1,max=255"`
	Description    string            `json:"description,omitempty"`
	Content        string            `json:"content" validate:"required,min=1"`
	BlogType       string            `json:"blog_type,omitempty" validate:"omitempty,max=100"`
	FrontpageImage string            `json:"frontpage_image,omitempty"`
	Images         []string          `json:"images,omitempty"`
	Status         models.BlogStatus `json:"status,omitempty"`
	Tags           []string          `json:"tags,omitempty"`
	Featured       bool              `json:"featured,omitempty"`
	RelatedGameIDs []uuid.UUID       `json:"related_game_ids,omitempty"`
}

type UpdateBlogRequest struct {
	Title          string            `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description    *string           `json:"description,omitempty"`
	Content        string            `json:"content,omitempty"`
	BlogType       string            `json:"blog_type,omitempty" validate:"omitempty,max=100"`
	FrontpageImage string            `json:"frontpage_image,omitempty"`
	Images         []string          `json:"images,omitempty"`
	Status         models.BlogStatus `json:"status,omitempty"`
	Tags           []string          `json:"tags,omitempty"`
	Featured       *bool             `json:"featured,omitempty"`
	RelatedGameIDs []uuid.UUID       `json:"related_game_ids,omitempty"`
}

type BlogCommentRequest struct {
	Content string `json:"content" validate:"required,min=1"`
}

// BlogResponse carries viewer-relative permissions alongside the post.
type BlogResponse struct {
	models.Blog
	LikeUserIDs []uuid.UUID           `json:"like_user_ids"`
	LikeCount   int                   `json:"like_count"`
	Comments    []BlogCommentResponse `json:"comments"`
	Permissions PermissionFlags       `json:"permissions"`
}

type BlogCommentResponse struct {
	ID          uuid.UUID                  `json:"id"`
	User        *models.PublicUser         `json:"user,omitempty"`
	Content     string                     `json:"content"`
	Likes       []uuid.UUID                `json:"likes"`
	LikeCount   int                        `json:"like_count"`
	Replies     []BlogCommentReplyResponse `json:"replies"`
	Permissions PermissionFlags            `json:"permissions"`
	CreatedAt   time.Time                  `json:"created_at"`
	UpdatedAt   time.Time                  `json:"updated_at"`
}

type BlogCommentReplyResponse struct {
	ID          uuid.UUID          `json:"id"`
	User        *models.PublicUser `json:"user,omitempty"`
	Content     string             `json:"content"`
	Likes       []uuid.UUID        `json:"likes"`
	LikeCount   int                `json:"like_count"`
	Permissions PermissionFlags    `json:"permissions"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

var blogFilterOptions = catalog.Options{
	Fields: map[string]string{
		"blog_type": "blog_type",
		"featured":  "featured",
		"views":     "views",
	},
	ArraySetFields: map[string]string{
		"tag": "tags",
	},
	SearchColumns: []string{
		"title",
		"description",
		"content",
	},
}

// readWordsPerMinute drives the derived read_time field.
const readWordsPerMinute = 200

func NewBlogService(db *gorm.DB) *BlogService {
	return &BlogService{db: db}
}

// CreateBlog publishes a post under the actor. Non-admin authors
// cannot park drafts, their posts go out as published.
func (s *BlogService) CreateBlog(actor Actor, req *CreateBlogRequest) (*models.Blog, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("validation failed", utils.GetValidationErrors(err))
	}
	if len(req.Images) > models.MaxBlogImages {
		return nil, apperrors.Validation("too many images", map[string]interface{}{"max": models.MaxBlogImages})
	}

	status := req.Status
	if status == "" {
		status = models.BlogStatusPublished
	}
	if !status.Valid() {
		return nil, apperrors.Validation("unknown blog status: "+string(status), nil)
	}
	if !actor.IsAdmin() {
		status = models.BlogStatusPublished
	}

	slug := utils.Slugify(req.Title)
	var count int64
	s.db.Model(&models.Blog{}).Where("slug = ?", slug).Count(&count)
	if count > 0 {
		return nil, apperrors.Conflict("a post with this title already exists")
	}

	blog := &models.Blog{
		Title:          req.Title,
		Slug:           slug,
		Description:    req.Description,
		Content:        req.Content,
		BlogType:       req.BlogType,
		FrontpageImage: req.FrontpageImage,
		Images:         pq.StringArray(req.Images),
		AuthorID:       actor.ID,
		Status:         status,
		Tags:           pq.StringArray(req.Tags),
		Featured:       req.Featured,
		ReadTime:       estimateReadTime(req.Content),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(blog).Error; err != nil {
			return apperrors.Internal("failed to create blog", err)
		}
		return s.replaceRelatedGames(tx, blog, req.RelatedGameIDs)
	})
	if err != nil {
		return nil, err
	}

	return blog, nil
}

// ListBlogs translates the query bag and pages the result. Non-admin
// viewers only ever see published posts.
func (s *BlogService) ListBlogs(viewer *Actor, query url.Values, params utils.PaginationParams) ([]models.Blog, int64, error) {
	dbQuery := catalog.Apply(s.db.Model(&models.Blog{}), query, blogFilterOptions)
	dbQuery = s.visibleTo(dbQuery, viewer)

	var total int64
	if err := dbQuery.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal("failed to count blogs", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "title", "views"}
	dbQuery = utils.ApplySort(dbQuery, params, allowedSortFields)
	dbQuery = utils.ApplyPagination(dbQuery, params)

	var blogs []models.Blog
	if err := dbQuery.Preload("Author").Find(&blogs).Error; err != nil {
		return nil, 0, apperrors.Internal("failed to fetch blogs", err)
	}

	return blogs, total, nil
}

// GetBlogBySlug resolves a post for reading and bumps its view count.
func (s *BlogService) GetBlogBySlug(slug string, viewer *Actor) (*BlogResponse, error) {
	var blog models.Blog
	query := s.visibleTo(s.blogQuery(), viewer)
	if err := query.Where("slug = ?", slug).First(&blog).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("blog")
		}
		return nil, apperrors.Internal("database error", err)
	}

	go s.incrementViews(blog.ID)

	resp := s.toBlogResponse(&blog, viewer)
	return &resp, nil
}

func (s *BlogService) GetBlog(blogID uuid.UUID, viewer *Actor) (*BlogResponse, error) {
	return s.loadBlog(blogID, viewer)
}

// UpdateBlog edits the author's own post.
func (s *BlogService) UpdateBlog(actor Actor, blogID uuid.UUID, req *UpdateBlogRequest) (*BlogResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("validation failed", utils.GetValidationErrors(err))
	}
	if len(req.Images) > models.MaxBlogImages {
		return nil, apperrors.Validation("too many images", map[string]interface{}{"max": models.MaxBlogImages})
	}

	var blog models.Blog
	if err := s.db.First(&blog, blogID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("blog")
		}
		return nil, apperrors.Internal("database error", err)
	}

	if !IsOwner(actor, blog.AuthorID) {
		return nil, apperrors.Forbidden("only the author can edit a post")
	}

	updates := make(map[string]interface{})
	if req.Title != "" && req.Title != blog.Title {
		slug := utils.Slugify(req.Title)
		var count int64
		s.db.Model(&models.Blog{}).Where("slug = ? AND id <> ?", slug, blogID).Count(&count)
		if count > 0 {
			return nil, apperrors.Conflict("a post with this title already exists")
		}
		updates["title"] = req.Title
		updates["slug"] = slug
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Content != "" {
		updates["content"] = req.Content
		updates["read_time"] = estimateReadTime(req.Content)
	}
	if req.BlogType != "" {
		updates["blog_type"] = req.BlogType
	}
	if req.FrontpageImage != "" {
		updates["frontpage_image"] = req.FrontpageImage
	}
	if req.Images != nil {
		updates["images"] = pq.StringArray(req.Images)
	}
	if req.Status != "" {
		if !req.Status.Valid() {
			return nil, apperrors.Validation("unknown blog status: "+string(req.Status), nil)
		}
		if actor.IsAdmin() {
			updates["status"] = req.Status
		}
	}
	if req.Tags != nil {
		updates["tags"] = pq.StringArray(req.Tags)
	}
	if req.Featured != nil {
		updates["featured"] = *req.Featured
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&blog).Updates(updates).Error; err != nil {
				return apperrors.Internal("failed to update blog", err)
			}
		}
		if req.RelatedGameIDs != nil {
			return s.replaceRelatedGames(tx, &blog, req.RelatedGameIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.loadBlog(blogID, &actor)
}

// DeleteBlog removes a post with its full comment tree and like rows.
func (s *BlogService) DeleteBlog(actor Actor, blogID uuid.UUID) error {
	var blog models.Blog
	if err := s.db.First(&blog, blogID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("blog")
		}
		return apperrors.Internal("database error", err)
	}

	if !CanModerate(actor, blog.AuthorID) {
		return apperrors.Forbidden("not authorized to delete this post")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var commentIDs []uuid.UUID
		if err := tx.Model(&models.BlogComment{}).Where("blog_id = ?", blogID).
			Pluck("id", &commentIDs).Error; err != nil {
			return apperrors.Internal("failed to delete blog", err)
		}
		for _, commentID := range commentIDs {
			if err := s.deleteCommentTree(tx, commentID); err != nil {
				return apperrors.Internal("failed to delete blog", err)
			}
		}
		if err := tx.Unscoped().Where("blog_id = ?", blogID).Delete(&models.BlogLike{}).Error; err != nil {
			return apperrors.Internal("failed to delete blog", err)
		}
		if err := tx.Model(&blog).Association("RelatedGames").Clear(); err != nil {
			return apperrors.Internal("failed to delete blog", err)
		}
		if err := tx.Unscoped().Delete(&models.Blog{}, blogID).Error; err != nil {
			return apperrors.Internal("failed to delete blog", err)
		}
		return nil
	})
}

func (s *BlogService) GetFeaturedBlogs(viewer *Actor, limit int) ([]models.Blog, error) {
	var blogs []models.Blog
	query := s.visibleTo(s.db.Model(&models.Blog{}), viewer).Where("featured = ?", true)
	if err := query.Preload("Author").Order("created_at DESC").Limit(limit).Find(&blogs).Error; err != nil {
		return nil, apperrors.Internal("failed to fetch featured blogs", err)
	}
	return blogs, nil
}

// ToggleLike flips the actor's like on a post.
func (s *BlogService) ToggleLike(actor Actor, blogID uuid.UUID) (*BlogResponse, error) {
	if err := s.mustBeVisible(blogID, &actor); err != nil {
		return nil, err
	}

	res := s.db.Where("blog_id = ? AND user_id = ?", blogID, actor.ID).Delete(&models.BlogLike{})
	if res.Error != nil {
		return nil, apperrors.Internal("failed to toggle like", res.Error)
	}
	if res.RowsAffected == 0 {
		like := models.BlogLike{BlogID: blogID, UserID: actor.ID}
		if err := s.db.Create(&like).Error; err != nil {
			return nil, apperrors.Internal("failed to toggle like", err)
		}
	}

	return s.loadBlog(blogID, &actor)
}

func (s *BlogService) CreateComment(actor Actor, blogID uuid.UUID, req *BlogCommentRequest) (*BlogResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("validation failed", utils.GetValidationErrors(err))
	}
	if err := s.mustBeVisible(blogID, &actor); err != nil {
		return nil, err
	}

	comment := models.BlogComment{BlogID: blogID, UserID: actor.ID, Content: req.Content}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, apperrors.Internal("failed to create comment", err)
	}

	return s.loadBlog(blogID, &actor)
}

func (s *BlogService) UpdateComment(actor Actor, blogID, commentID uuid.UUID, req *BlogCommentRequest) (*BlogResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("validation failed", utils.GetValidationErrors(err))
	}

	comment, err := s.findComment(blogID, commentID)
	if err != nil {
		return nil, err
	}
	if !IsOwner(actor, comment.UserID) {
		return nil, apperrors.Forbidden("only the author can edit a comment")
	}

	if err := s.db.Model(comment).Update("content", req.Content).Error; err != nil {
		return nil, apperrors.Internal("failed to update comment", err)
	}

	return s.loadBlog(blogID, &actor)
}

func (s *BlogService) DeleteComment(actor Actor, blogID, commentID uuid.UUID) (*BlogResponse, error) {
	comment, err := s.findComment(blogID, commentID)
	if err != nil {
		return nil, err
	}
	if !CanModerate(actor, comment.UserID) {
		return nil, apperrors.Forbidden("not authorized to delete this comment")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.deleteCommentTree(tx, commentID)
	})
	if err != nil {
		return nil, apperrors.Internal("failed to delete comment", err)
	}

	return s.loadBlog(blogID, &actor)
}

func (s *BlogService) ToggleCommentLike(actor Actor, blogID, commentID uuid.UUID) (*BlogResponse, error) {
	if _, err := s.findComment(blogID, commentID); err != nil {
		return nil, err
	}

	res := s.db.Where("comment_id = ? AND user_id = ?", commentID, actor.ID).
		Delete(&models.BlogCommentLike{})
	if res.Error != nil {
		return nil, apperrors.Internal("failed to toggle like", res.Error)
	}
	if res.RowsAffected == 0 {
		like := models.BlogCommentLike{CommentID: commentID, UserID: actor.ID}
		if err := s.db.Create(&like).Error; err != nil {
			return nil, apperrors.Internal("failed to toggle like", err)
		}
	}

	return s.loadBlog(blogID, &actor)
}

// CreateCommentReply attaches a reply to a comment. The tree bottoms
// out here.
func (s *BlogService) CreateCommentReply(actor Actor, blogID, commentID uuid.UUID, req *BlogCommentRequest) (*BlogResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("validation failed", utils.GetValidationErrors(err))
	}
	if _, err := s.findComment(blogID, commentID); err != nil {
		return nil, err
	}

	reply := models.BlogCommentReply{CommentID: commentID, UserID: actor.ID, Content: req.Content}
	if err := s.db.Create(&reply).Error; err != nil {
		return nil, apperrors.Internal("failed to create reply", err)
	}

	return s.loadBlog(blogID, &actor)
}

func (s *BlogService) UpdateCommentReply(actor Actor, blogID, commentID, replyID uuid.UUID, req *BlogCommentRequest) (*BlogResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("validation failed", utils.GetValidationErrors(err))
	}

	reply, err := s.findCommentReply(blogID, commentID, replyID)
	if err != nil {
		return nil, err
	}
	if !IsOwner(actor, reply.UserID) {
		return nil, apperrors.Forbidden("only the author can edit a reply")
	}

	if err := s.db.Model(reply).Update("content", req.Content).Error; err != nil {
		return nil, apperrors.Internal("failed to update reply", err)
	}

	return s.loadBlog(blogID, &actor)
}

func (s *BlogService) DeleteCommentReply(actor Actor, blogID, commentID, replyID uuid.UUID) (*BlogResponse, error) {
	reply, err := s.findCommentReply(blogID, commentID, replyID)
	if err != nil {
		return nil, err
	}
	if !CanModerate(actor, reply.UserID) {
		return nil, apperrors.Forbidden("not authorized to delete this reply")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("reply_id = ?", replyID).
			Delete(&models.BlogCommentReplyLike{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.BlogCommentReply{}, replyID).Error
	})
	if err != nil {
		return nil, apperrors.Internal("failed to delete reply", err)
	}

	return s.loadBlog(blogID, &actor)
}

func (s *BlogService) ToggleCommentReplyLike(actor Actor, blogID, commentID, replyID uuid.UUID) (*BlogResponse, error) {
	if _, err := s.findCommentReply(blogID, commentID, replyID); err != nil {
		return nil, err
	}

	res := s.db.Where("reply_id = ? AND user_id = ?", replyID, actor.ID).
		Delete(&models.BlogCommentReplyLike{})
	if res.Error != nil {
		return nil, apperrors.Internal("failed to toggle like", res.Error)
	}
	if res.RowsAffected == 0 {
		like := models.BlogCommentReplyLike{ReplyID: replyID, UserID: actor.ID}
		if err := s.db.Create(&like).Error; err != nil {
			return nil, apperrors.Internal("failed to toggle like", err)
		}
	}

	return s.loadBlog(blogID, &actor)
}

func (s *BlogService) blogQuery() *gorm.DB {
	return s.db.
		Preload("Author").
		Preload("RelatedGames").
		Preload("Likes").
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Comments.User").
		Preload("Comments.Likes").
		Preload("Comments.Replies", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Comments.Replies.User").
		Preload("Comments.Replies.Likes")
}

// visibleTo restricts the query to published posts unless the viewer
// is an admin.
func (s *BlogService) visibleTo(query *gorm.DB, viewer *Actor) *gorm.DB {
	if viewer != nil && viewer.IsAdmin() {
		return query
	}
	return query.Where("status = ?", models.BlogStatusPublished)
}

func (s *BlogService) loadBlog(blogID uuid.UUID, viewer *Actor) (*BlogResponse, error) {
	var blog models.Blog
	if err := s.visibleTo(s.blogQuery(), viewer).First(&blog, blogID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("blog")
		}
		return nil, apperrors.Internal("database error", err)
	}

	resp := s.toBlogResponse(&blog, viewer)
	return &resp, nil
}

// mustBeVisible guards mutations on a post the viewer can actually
// see, so nobody writes onto a draft they could never read back.
func (s *BlogService) mustBeVisible(blogID uuid.UUID, viewer *Actor) error {
	var count int64
	query := s.visibleTo(s.db.Model(&models.Blog{}), viewer).Where("id = ?", blogID)
	if err := query.Count(&count).Error; err != nil {
		return apperrors.Internal("database error", err)
	}
	if count == 0 {
		return apperrors.NotFound("blog")
	}
	return nil
}

func (s *BlogService) findComment(blogID, commentID uuid.UUID) (*models.BlogComment, error) {
	var comment models.BlogComment
	if err := s.db.Where("id = ? AND blog_id = ?", commentID, blogID).First(&comment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("comment")
		}
		return nil, apperrors.Internal("database error", err)
	}
	return &comment, nil
}

func (s *BlogService) findCommentReply(blogID, commentID, replyID uuid.UUID) (*models.BlogCommentReply, error) {
	if _, err := s.findComment(blogID, commentID); err != nil {
		return nil, err
	}

	var reply models.BlogCommentReply
	if err := s.db.Where("id = ? AND comment_id = ?", replyID, commentID).First(&reply).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("reply")
		}
		return nil, apperrors.Internal("database error", err)
	}
	return &reply, nil
}

func (s *BlogService) deleteCommentTree(tx *gorm.DB, commentID uuid.UUID) error {
	var replyIDs []uuid.UUID
	if err := tx.Model(&models.BlogCommentReply{}).Where("comment_id = ?", commentID).
		Pluck("id", &replyIDs).Error; err != nil {
		return err
	}

	if len(replyIDs) > 0 {
		if err := tx.Unscoped().Where("reply_id IN ?", replyIDs).
			Delete(&models.BlogCommentReplyLike{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("id IN ?", replyIDs).
			Delete(&models.BlogCommentReply{}).Error; err != nil {
			return err
		}
	}

	if err := tx.Unscoped().Where("comment_id = ?", commentID).
		Delete(&models.BlogCommentLike{}).Error; err != nil {
		return err
	}
	return tx.Unscoped().Delete(&models.BlogComment{}, commentID).Error
}

func (s *BlogService) replaceRelatedGames(tx *gorm.DB, blog *models.Blog, gameIDs []uuid.UUID) error {
	if gameIDs == nil {
		return nil
	}

	var games []models.Game
	if len(gameIDs) > 0 {
		if err := tx.Where("id IN ?", gameIDs).Find(&games).Error; err != nil {
			return apperrors.Internal("failed to resolve related games", err)
		}
	}
	if err := tx.Model(blog).Association("RelatedGames").Replace(games); err != nil {
		return apperrors.Internal("failed to link related games", err)
	}
	return nil
}

func (s *BlogService) incrementViews(blogID uuid.UUID) {
	s.db.Model(&models.Blog{}).Where("id = ?", blogID).
		UpdateColumn("views", gorm.Expr("views + 1"))
}

func (s *BlogService) toBlogResponse(blog *models.Blog, viewer *Actor) BlogResponse {
	resp := BlogResponse{
		Blog:        *blog,
		LikeUserIDs: make([]uuid.UUID, 0, len(blog.Likes)),
		Comments:    make([]BlogCommentResponse, 0, len(blog.Comments)),
		Permissions: Permissions(viewer, blog.AuthorID),
	}
	for _, like := range blog.Likes {
		resp.LikeUserIDs = append(resp.LikeUserIDs, like.UserID)
	}
	resp.LikeCount = len(resp.LikeUserIDs)

	for i := range blog.Comments {
		resp.Comments = append(resp.Comments, s.toCommentResponse(&blog.Comments[i], viewer))
	}

	return resp
}

func (s *BlogService) toCommentResponse(comment *models.BlogComment, viewer *Actor) BlogCommentResponse {
	resp := BlogCommentResponse{
		ID:          comment.ID,
		Content:     comment.Content,
		Likes:       make([]uuid.UUID, 0, len(comment.Likes)),
		Replies:     make([]BlogCommentReplyResponse, 0, len(comment.Replies)),
		Permissions: Permissions(viewer, comment.UserID),
		CreatedAt:   comment.CreatedAt,
		UpdatedAt:   comment.UpdatedAt,
	}
	if comment.User != nil {
		pub := comment.User.Public()
		resp.User = &pub
	}
	for _, like := range comment.Likes {
		resp.Likes = append(resp.Likes, like.UserID)
	}
	resp.LikeCount = len(resp.Likes)

	for i := range comment.Replies {
		reply := &comment.Replies[i]
		rr := BlogCommentReplyResponse{
			ID:          reply.ID,
			Content:     reply.Content,
			Likes:       make([]uuid.UUID, 0, len(reply.Likes)),
			Permissions: Permissions(viewer, reply.UserID),
			CreatedAt:   reply.CreatedAt,
			UpdatedAt:   reply.UpdatedAt,
		}
		if reply.User != nil {
			pub := reply.User.Public()
			rr.User = &pub
		}
		for _, like := range reply.Likes {
			rr.Likes = append(rr.Likes, like.UserID)
		}
		rr.LikeCount = len(rr.Likes)
		resp.Replies = append(resp.Replies, rr)
	}

	return resp
}

func estimateReadTime(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + readWordsPerMinute - 1) / readWordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
