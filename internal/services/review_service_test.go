// internal/services/review_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/gamebazaar/gamebazaar-backend/internal/apperrors"
	"github.com/gamebazaar/gamebazaar-backend/internal/models"
	"github.com/gamebazaar/gamebazaar-backend/internal/utils"
)

type ReviewServiceTestSuite struct {
	suite.Suite
	games   *GameService
	reviews *ReviewService
}

func TestReviewServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReviewServiceTestSuite))
}

func (s *ReviewServiceTestSuite) SetupTest() {
	db := setupTestDB(s.T())
	s.games = NewGameService(db)
	s.reviews = NewReviewService(db, s.games)
}

func (s *ReviewServiceTestSuite) gameRating(gameID interface{}) (float64, int64) {
	var game models.Game
	s.Require().NoError(s.reviews.db.First(&game, gameID).Error)
	return game.AverageRating, game.NumReviews
}

func (s *ReviewServiceTestSuite) TestCreateReviewRecomputesRating() {
	db := s.reviews.db
	alice := createTestUser(s.T(), db, "alice", models.UserRoleUser)
	bob := createTestUser(s.T(), db, "bob", models.UserRoleUser)
	game := createTestGame(s.T(), db, "Rated Game", 20, 5)

	_, err := s.reviews.CreateReview(asActor(alice), game.ID, &CreateReviewRequest{Rating: 5, Comment: "great"})
	s.Require().NoError(err)

	avg, count := s.gameRating(game.ID)
	s.Equal(5.0, avg)
	s.Equal(int64(1), count)

	_, err = s.reviews.CreateReview(asActor(bob), game.ID, &CreateReviewRequest{Rating: 2, Comment: "meh"})
	s.Require().NoError(err)

	avg, count = s.gameRating(game.ID)
	s.InDelta(3.5, avg, 0.001)
	s.Equal(int64(2), count)
}

func (s *ReviewServiceTestSuite) TestDuplicateReviewConflicts() {
	db := s.reviews.db
	alice := createTestUser(s.T(), db, "alice", models.UserRoleUser)
	game := createTestGame(s.T(), db, "Once Game", 20, 5)

	_, err := s.reviews.CreateReview(asActor(alice), game.ID, &CreateReviewRequest{Rating: 4, Comment: "good"})
	s.Require().NoError(err)

	_, err = s.reviews.CreateReview(asActor(alice), game.ID, &CreateReviewRequest{Rating: 5, Comment: "again"})
	s.True(apperrors.Is(err, apperrors.CodeConflict))
}

func (s *ReviewServiceTestSuite) TestRatingBounds() {
	db := s.reviews.db
	alice := createTestUser(s.T(), db, "alice", models.UserRoleUser)
	game := createTestGame(s.T(), db, "Bounds Game", 20, 5)

	_, err := s.reviews.CreateReview(asActor(alice), game.ID, &CreateReviewRequest{Rating: 0, Comment: "x"})
	s.True(apperrors.Is(err, apperrors.CodeValidation))

	_, err = s.reviews.CreateReview(asActor(alice), game.ID, &CreateReviewRequest{Rating: 6, Comment: "x"})
	s.True(apperrors.Is(err, apperrors.CodeValidation))
}

func (s *ReviewServiceTestSuite) TestUpdateReviewOwnerOnly() {
	db := s.reviews.db
	alice := createTestUser(s.T(), db, "alice", models.UserRoleUser)
	admin := createTestUser(s.T(), db, "boss", models.UserRoleAdmin)
	game := createTestGame(s.T(), db, "Edit Game", 20, 5)

	review, err := s.reviews.CreateReview(asActor(alice), game.ID, &CreateReviewRequest{Rating: 4, Comment: "good"})
	s.Require().NoError(err)

	// Admins may not edit someone else's review
	_, err = s.reviews.UpdateReview(asActor(admin), review.ID, &UpdateReviewRequest{Rating: 1, Comment: "nope"})
	s.True(apperrors.Is(err, apperrors.CodeForbidden))

	updated, err := s.reviews.UpdateReview(asActor(alice), review.ID, &UpdateReviewRequest{Rating: 2, Comment: "revised"})
	s.Require().NoError(err)
	s.Equal(2, updated.Rating)

	avg, _ := s.gameRating(game.ID)
	s.Equal(2.0, avg)
}

func (s *ReviewServiceTestSuite) TestDeleteReviewResetsRating() {
	db := s.reviews.db
	alice := createTestUser(s.T(), db, "alice", models.UserRoleUser)
	admin := createTestUser(s.T(), db, "boss", models.UserRoleAdmin)
	stranger := createTestUser(s.T(), db, "stranger", models.UserRoleUser)
	game := createTestGame(s.T(), db, "Delete Game", 20, 5)

	review, err := s.reviews.CreateReview(asActor(alice), game.ID, &CreateReviewRequest{Rating: 4, Comment: "good"})
	s.Require().NoError(err)

	s.True(apperrors.Is(s.reviews.DeleteReview(asActor(stranger), review.ID), apperrors.CodeForbidden))

	// Admin can moderate
	s.Require().NoError(s.reviews.DeleteReview(asActor(admin), review.ID))

	avg, count := s.gameRating(game.ID)
	s.Equal(0.0, avg)
	s.Equal(int64(0), count)
}

func (s *ReviewServiceTestSuite) TestLikeToggle() {
	db := s.reviews.db
	alice := createTestUser(s.T(), db, "alice", models.UserRoleUser)
	bob := createTestUser(s.T(), db, "bob", models.UserRoleUser)
	game := createTestGame(s.T(), db, "Liked Game", 20, 5)

	review, err := s.reviews.CreateReview(asActor(alice), game.ID, &CreateReviewRequest{Rating: 5, Comment: "great"})
	s.Require().NoError(err)

	liked, err := s.reviews.ToggleReviewLike(asActor(bob), review.ID)
	s.Require().NoError(err)
	s.Equal(1, liked.LikeCount)
	s.Contains(liked.Likes, bob.ID)

	// Second toggle removes
	unliked, err := s.reviews.ToggleReviewLike(asActor(bob), review.ID)
	s.Require().NoError(err)
	s.Equal(0, unliked.LikeCount)
}

func (s *ReviewServiceTestSuite) TestReplyTreeDepthTwo() {
	db := s.reviews.db
	alice := createTestUser(s.T(), db, "alice", models.UserRoleUser)
	bob := createTestUser(s.T(), db, "bob", models.UserRoleUser)
	game := createTestGame(s.T(), db, "Tree Game", 20, 5)

	review, err := s.reviews.CreateReview(asActor(alice), game.ID, &CreateReviewRequest{Rating: 5, Comment: "great"})
	s.Require().NoError(err)

	withReply, err := s.reviews.CreateReply(asActor(bob), review.ID, &ReplyRequest{Comment: "agreed"})
	s.Require().NoError(err)
	s.Require().Len(withReply.Replies, 1)

	replyID := withReply.Replies[0].ID
	withNested, err := s.reviews.CreateNestedReply(asActor(alice), review.ID, replyID, &ReplyRequest{Comment: "thanks"})
	s.Require().NoError(err)
	s.Require().Len(withNested.Replies, 1)
	s.Require().Len(withNested.Replies[0].NestedReplies, 1)

	// Deleting the reply takes its nested replies with it
	afterDelete, err := s.reviews.DeleteReply(asActor(bob), review.ID, replyID)
	s.Require().NoError(err)
	s.Empty(afterDelete.Replies)

	var nestedCount int64
	db.Model(&models.ReviewNestedReply{}).Count(&nestedCount)
	s.Zero(nestedCount)
}

func (s *ReviewServiceTestSuite) TestRepliesKeepInsertionOrder() {
	db := s.reviews.db
	alice := createTestUser(s.T(), db, "alice", models.UserRoleUser)
	bob := createTestUser(s.T(), db, "bob", models.UserRoleUser)
	game := createTestGame(s.T(), db, "Threaded Game", 20, 5)

	review, err := s.reviews.CreateReview(asActor(alice), game.ID, &CreateReviewRequest{Rating: 5, Comment: "great"})
	s.Require().NoError(err)

	_, err = s.reviews.CreateReply(asActor(bob), review.ID, &ReplyRequest{Comment: "first reply"})
	s.Require().NoError(err)
	withReplies, err := s.reviews.CreateReply(asActor(alice), review.ID, &ReplyRequest{Comment: "second reply"})
	s.Require().NoError(err)

	// Replies read back oldest first
	s.Require().Len(withReplies.Replies, 2)
	s.Equal("first reply", withReplies.Replies[0].Comment)
	s.Equal("second reply", withReplies.Replies[1].Comment)

	replyID := withReplies.Replies[0].ID
	_, err = s.reviews.CreateNestedReply(asActor(alice), review.ID, replyID, &ReplyRequest{Comment: "first nested"})
	s.Require().NoError(err)
	withNested, err := s.reviews.CreateNestedReply(asActor(bob), review.ID, replyID, &ReplyRequest{Comment: "second nested"})
	s.Require().NoError(err)

	s.Require().Len(withNested.Replies[0].NestedReplies, 2)
	s.Equal("first nested", withNested.Replies[0].NestedReplies[0].Comment)
	s.Equal("second nested", withNested.Replies[0].NestedReplies[1].Comment)
}

func (s *ReviewServiceTestSuite) TestPermissionFlagsPerViewer() {
	db := s.reviews.db
	alice := createTestUser(s.T(), db, "alice", models.UserRoleUser)
	admin := createTestUser(s.T(), db, "boss", models.UserRoleAdmin)
	game := createTestGame(s.T(), db, "Flags Game", 20, 5)

	created, err := s.reviews.CreateReview(asActor(alice), game.ID, &CreateReviewRequest{Rating: 5, Comment: "great"})
	s.Require().NoError(err)

	// Author sees both flags
	s.True(created.Permissions.CanEdit)
	s.True(created.Permissions.CanDelete)

	adminActor := asActor(admin)
	asAdmin, err := s.reviews.GetReview(created.ID, &adminActor)
	s.Require().NoError(err)
	s.False(asAdmin.Permissions.CanEdit)
	s.True(asAdmin.Permissions.CanDelete)

	anonymous, err := s.reviews.GetReview(created.ID, nil)
	s.Require().NoError(err)
	s.False(anonymous.Permissions.CanEdit)
	s.False(anonymous.Permissions.CanDelete)
}

func (s *ReviewServiceTestSuite) TestListByGameNewestFirst() {
	db := s.reviews.db
	alice := createTestUser(s.T(), db, "alice", models.UserRoleUser)
	bob := createTestUser(s.T(), db, "bob", models.UserRoleUser)
	game := createTestGame(s.T(), db, "Ordered Game", 20, 5)

	_, err := s.reviews.CreateReview(asActor(alice), game.ID, &CreateReviewRequest{Rating: 5, Comment: "first"})
	s.Require().NoError(err)
	_, err = s.reviews.CreateReview(asActor(bob), game.ID, &CreateReviewRequest{Rating: 3, Comment: "second"})
	s.Require().NoError(err)

	list, total, err := s.reviews.ListByGame(game.ID, nil, utils.PaginationParams{Page: 1, Limit: 10})
	s.Require().NoError(err)
	s.Equal(int64(2), total)
	s.Require().Len(list, 2)
	s.Equal("second", list[0].Comment)
	s.Equal("first", list[1].Comment)
}
