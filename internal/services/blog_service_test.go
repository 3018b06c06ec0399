// internal/services/blog_service_test.go
package services

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/gamebazaar/gamebazaar-backend/internal/apperrors"
	"github.com/gamebazaar/gamebazaar-backend/internal/models"
	"github.com/gamebazaar/gamebazaar-backend/internal/utils"
)

type BlogServiceTestSuite struct {
	suite.Suite
	blogs *BlogService
}

func TestBlogServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BlogServiceTestSuite))
}

func (s *BlogServiceTestSuite) SetupTest() {
	db := setupTestDB(s.T())
	s.blogs = NewBlogService(db)
}

func (s *BlogServiceTestSuite) createPost(actor Actor, title string) *models.Blog {
	blog, err := s.blogs.CreateBlog(actor, &CreateBlogRequest{
		Title:   title,
		Content: "Some content worth reading.",
	})
	s.Require().NoError(err)
	return blog
}

func (s *BlogServiceTestSuite) TestCreateBlogSlugAndReadTime() {
	db := s.blogs.db
	admin := createTestUser(s.T(), db, "boss", models.UserRoleAdmin)

	blog, err := s.blogs.CreateBlog(asActor(admin), &CreateBlogRequest{
		Title:   "Top 10 RPGs of 2026!",
		Content: strings.Repeat("word ", 450),
	})
	s.Require().NoError(err)
	s.Equal("top-10-rpgs-of-2026", blog.Slug)
	s.Equal(models.BlogStatusPublished, blog.Status)
	// 450 words at 200 wpm rounds up to 3 minutes
	s.Equal(3, blog.ReadTime)
}

func (s *BlogServiceTestSuite) TestDuplicateTitleConflicts() {
	admin := createTestUser(s.T(), s.blogs.db, "boss", models.UserRoleAdmin)

	s.createPost(asActor(admin), "Release Notes")

	_, err := s.blogs.CreateBlog(asActor(admin), &CreateBlogRequest{
		Title:   "Release Notes",
		Content: "different content",
	})
	s.True(apperrors.Is(err, apperrors.CodeConflict))
}

func (s *BlogServiceTestSuite) TestNonAdminAuthorsForcedPublished() {
	author := createTestUser(s.T(), s.blogs.db, "writer", models.UserRoleUser)

	blog, err := s.blogs.CreateBlog(asActor(author), &CreateBlogRequest{
		Title:   "My Draft Attempt",
		Content: "content",
		Status:  models.BlogStatusDraft,
	})
	s.Require().NoError(err)
	s.Equal(models.BlogStatusPublished, blog.Status)
}

func (s *BlogServiceTestSuite) TestDraftVisibility() {
	db := s.blogs.db
	admin := createTestUser(s.T(), db, "boss", models.UserRoleAdmin)
	reader := createTestUser(s.T(), db, "reader", models.UserRoleUser)

	draft, err := s.blogs.CreateBlog(asActor(admin), &CreateBlogRequest{
		Title:   "Unfinished Post",
		Content: "wip",
		Status:  models.BlogStatusDraft,
	})
	s.Require().NoError(err)
	s.createPost(asActor(admin), "Public Post")

	page := utils.PaginationParams{Page: 1, Limit: 10}

	// Anonymous and regular viewers see only published posts
	list, total, err := s.blogs.ListBlogs(nil, url.Values{}, page)
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Require().Len(list, 1)
	s.Equal("Public Post", list[0].Title)

	readerActor := asActor(reader)
	_, total, err = s.blogs.ListBlogs(&readerActor, url.Values{}, page)
	s.Require().NoError(err)
	s.Equal(int64(1), total)

	adminActor := asActor(admin)
	_, total, err = s.blogs.ListBlogs(&adminActor, url.Values{}, page)
	s.Require().NoError(err)
	s.Equal(int64(2), total)

	// Direct fetch of a draft follows the same rule
	_, err = s.blogs.GetBlog(draft.ID, &readerActor)
	s.True(apperrors.Is(err, apperrors.CodeNotFound))

	got, err := s.blogs.GetBlog(draft.ID, &adminActor)
	s.Require().NoError(err)
	s.Equal("Unfinished Post", got.Title)
}

func (s *BlogServiceTestSuite) TestDraftRejectsInteractionFromNonAdmins() {
	db := s.blogs.db
	admin := createTestUser(s.T(), db, "boss", models.UserRoleAdmin)
	reader := createTestUser(s.T(), db, "reader", models.UserRoleUser)

	draft, err := s.blogs.CreateBlog(asActor(admin), &CreateBlogRequest{
		Title:   "Hidden Post",
		Content: "wip",
		Status:  models.BlogStatusDraft,
	})
	s.Require().NoError(err)

	// A post the viewer cannot read takes no comments or likes from them
	_, err = s.blogs.CreateComment(asActor(reader), draft.ID, &BlogCommentRequest{Content: "sneaky"})
	s.True(apperrors.Is(err, apperrors.CodeNotFound))

	_, err = s.blogs.ToggleLike(asActor(reader), draft.ID)
	s.True(apperrors.Is(err, apperrors.CodeNotFound))

	var commentCount int64
	db.Model(&models.BlogComment{}).Count(&commentCount)
	s.Zero(commentCount)

	// The author can still interact with their own draft
	_, err = s.blogs.CreateComment(asActor(admin), draft.ID, &BlogCommentRequest{Content: "note to self"})
	s.NoError(err)
}

func (s *BlogServiceTestSuite) TestGetBySlug() {
	admin := createTestUser(s.T(), s.blogs.db, "boss", models.UserRoleAdmin)
	s.createPost(asActor(admin), "Findable Post")

	blog, err := s.blogs.GetBlogBySlug("findable-post", nil)
	s.Require().NoError(err)
	s.Equal("Findable Post", blog.Title)

	_, err = s.blogs.GetBlogBySlug("missing-post", nil)
	s.True(apperrors.Is(err, apperrors.CodeNotFound))
}

func (s *BlogServiceTestSuite) TestUpdateBlogOwnerAndStatusRules() {
	db := s.blogs.db
	author := createTestUser(s.T(), db, "writer", models.UserRoleUser)
	admin := createTestUser(s.T(), db, "boss", models.UserRoleAdmin)

	blog := s.createPost(asActor(author), "Original Title")

	// Only the author edits, admins included
	_, err := s.blogs.UpdateBlog(asActor(admin), blog.ID, &UpdateBlogRequest{Title: "Hijacked"})
	s.True(apperrors.Is(err, apperrors.CodeForbidden))

	updated, err := s.blogs.UpdateBlog(asActor(author), blog.ID, &UpdateBlogRequest{Title: "Renamed Title"})
	s.Require().NoError(err)
	s.Equal("renamed-title", updated.Slug)

	// Non-admin authors cannot move their post out of published
	updated, err = s.blogs.UpdateBlog(asActor(author), blog.ID, &UpdateBlogRequest{Status: models.BlogStatusDraft})
	s.Require().NoError(err)
	s.Equal(models.BlogStatusPublished, updated.Status)
}

func (s *BlogServiceTestSuite) TestLikeToggle() {
	db := s.blogs.db
	admin := createTestUser(s.T(), db, "boss", models.UserRoleAdmin)
	reader := createTestUser(s.T(), db, "reader", models.UserRoleUser)

	blog := s.createPost(asActor(admin), "Likeable Post")

	liked, err := s.blogs.ToggleLike(asActor(reader), blog.ID)
	s.Require().NoError(err)
	s.Equal(1, liked.LikeCount)
	s.Contains(liked.LikeUserIDs, reader.ID)

	unliked, err := s.blogs.ToggleLike(asActor(reader), blog.ID)
	s.Require().NoError(err)
	s.Equal(0, unliked.LikeCount)
}

func (s *BlogServiceTestSuite) TestCommentTree() {
	db := s.blogs.db
	admin := createTestUser(s.T(), db, "boss", models.UserRoleAdmin)
	reader := createTestUser(s.T(), db, "reader", models.UserRoleUser)

	blog := s.createPost(asActor(admin), "Discussed Post")

	withComment, err := s.blogs.CreateComment(asActor(reader), blog.ID, &BlogCommentRequest{Content: "nice read"})
	s.Require().NoError(err)
	s.Require().Len(withComment.Comments, 1)

	commentID := withComment.Comments[0].ID
	withReply, err := s.blogs.CreateCommentReply(asActor(admin), blog.ID, commentID, &BlogCommentRequest{Content: "thanks"})
	s.Require().NoError(err)
	s.Require().Len(withReply.Comments[0].Replies, 1)

	// Comment author edits, admin does not
	_, err = s.blogs.UpdateComment(asActor(admin), blog.ID, commentID, &BlogCommentRequest{Content: "edited"})
	s.True(apperrors.Is(err, apperrors.CodeForbidden))

	edited, err := s.blogs.UpdateComment(asActor(reader), blog.ID, commentID, &BlogCommentRequest{Content: "edited"})
	s.Require().NoError(err)
	s.Equal("edited", edited.Comments[0].Content)

	// Admin can moderate the comment away, replies go with it
	afterDelete, err := s.blogs.DeleteComment(asActor(admin), blog.ID, commentID)
	s.Require().NoError(err)
	s.Empty(afterDelete.Comments)

	var replyCount int64
	db.Model(&models.BlogCommentReply{}).Count(&replyCount)
	s.Zero(replyCount)
}

func (s *BlogServiceTestSuite) TestCommentsKeepInsertionOrder() {
	db := s.blogs.db
	admin := createTestUser(s.T(), db, "boss", models.UserRoleAdmin)
	reader := createTestUser(s.T(), db, "reader", models.UserRoleUser)

	blog := s.createPost(asActor(admin), "Busy Post")

	_, err := s.blogs.CreateComment(asActor(reader), blog.ID, &BlogCommentRequest{Content: "first comment"})
	s.Require().NoError(err)
	withComments, err := s.blogs.CreateComment(asActor(admin), blog.ID, &BlogCommentRequest{Content: "second comment"})
	s.Require().NoError(err)

	// Comments read back oldest first
	s.Require().Len(withComments.Comments, 2)
	s.Equal("first comment", withComments.Comments[0].Content)
	s.Equal("second comment", withComments.Comments[1].Content)

	commentID := withComments.Comments[0].ID
	_, err = s.blogs.CreateCommentReply(asActor(admin), blog.ID, commentID, &BlogCommentRequest{Content: "first reply"})
	s.Require().NoError(err)
	withReplies, err := s.blogs.CreateCommentReply(asActor(reader), blog.ID, commentID, &BlogCommentRequest{Content: "second reply"})
	s.Require().NoError(err)

	s.Require().Len(withReplies.Comments[0].Replies, 2)
	s.Equal("first reply", withReplies.Comments[0].Replies[0].Content)
	s.Equal("second reply", withReplies.Comments[0].Replies[1].Content)
}

func (s *BlogServiceTestSuite) TestCommentLikeToggle() {
	db := s.blogs.db
	admin := createTestUser(s.T(), db, "boss", models.UserRoleAdmin)
	reader := createTestUser(s.T(), db, "reader", models.UserRoleUser)

	blog := s.createPost(asActor(admin), "Comment Likes Post")
	withComment, err := s.blogs.CreateComment(asActor(reader), blog.ID, &BlogCommentRequest{Content: "first"})
	s.Require().NoError(err)
	commentID := withComment.Comments[0].ID

	liked, err := s.blogs.ToggleCommentLike(asActor(admin), blog.ID, commentID)
	s.Require().NoError(err)
	s.Equal(1, liked.Comments[0].LikeCount)

	unliked, err := s.blogs.ToggleCommentLike(asActor(admin), blog.ID, commentID)
	s.Require().NoError(err)
	s.Equal(0, unliked.Comments[0].LikeCount)
}

func (s *BlogServiceTestSuite) TestDeleteBlogCascades() {
	db := s.blogs.db
	admin := createTestUser(s.T(), db, "boss", models.UserRoleAdmin)
	reader := createTestUser(s.T(), db, "reader", models.UserRoleUser)

	blog := s.createPost(asActor(admin), "Doomed Post")
	withComment, err := s.blogs.CreateComment(asActor(reader), blog.ID, &BlogCommentRequest{Content: "so long"})
	s.Require().NoError(err)
	_, err = s.blogs.CreateCommentReply(asActor(admin), blog.ID, withComment.Comments[0].ID, &BlogCommentRequest{Content: "farewell"})
	s.Require().NoError(err)
	_, err = s.blogs.ToggleLike(asActor(reader), blog.ID)
	s.Require().NoError(err)

	s.True(apperrors.Is(s.blogs.DeleteBlog(asActor(reader), blog.ID), apperrors.CodeForbidden))
	s.Require().NoError(s.blogs.DeleteBlog(asActor(admin), blog.ID))

	var counts = map[string]interface{}{
		"blogs":                &models.Blog{},
		"blog_comments":        &models.BlogComment{},
		"blog_comment_replies": &models.BlogCommentReply{},
		"blog_likes":           &models.BlogLike{},
	}
	for table, model := range counts {
		var n int64
		db.Model(model).Count(&n)
		s.Zero(n, table)
	}
}

func (s *BlogServiceTestSuite) TestTagFilter() {
	db := s.blogs.db
	admin := createTestUser(s.T(), db, "boss", models.UserRoleAdmin)

	_, err := s.blogs.CreateBlog(asActor(admin), &CreateBlogRequest{
		Title:   "RPG Roundup",
		Content: "content",
		Tags:    []string{"rpg", "reviews"},
	})
	s.Require().NoError(err)
	_, err = s.blogs.CreateBlog(asActor(admin), &CreateBlogRequest{
		Title:   "Shooter Roundup",
		Content: "content",
		Tags:    []string{"fps"},
	})
	s.Require().NoError(err)

	list, total, err := s.blogs.ListBlogs(nil, url.Values{"tag": {"rpg"}}, utils.PaginationParams{Page: 1, Limit: 10})
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Require().Len(list, 1)
	s.Equal("RPG Roundup", list[0].Title)
}
