// internal/services/review_service.go
package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gamebazaar/gamebazaar-backend/internal/apperrors"
	"github.com/gamebazaar/gamebazaar-backend/internal/models"
	"github.com/gamebazaar/gamebazaar-backend/internal/utils"
)

type ReviewService struct {
	db    *gorm.DB
	games *GameService
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required,min=1"`
}

type UpdateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required,min=1"`
}

type ReplyRequest struct {
	Comment string `json:"comment" validate:"required,min=1"`
}

// ReviewResponse is the viewer-relative shape of a review node. Like
// lists collapse to user ids plus a count; permission flags are
// computed against the viewer at serialization time.
type ReviewResponse struct {
	ID          uuid.UUID          `json:"id"`
	GameID      uuid.UUID          `json:"game_id"`
	User        *models.PublicUser `json:"user,omitempty"`
	Rating      int                `json:"rating"`
	Comment     string             `json:"comment"`
	Likes       []uuid.UUID        `json:"likes"`
	LikeCount   int                `json:"like_count"`
	Replies     []ReplyResponse    `json:"replies"`
	Permissions PermissionFlags    `json:"permissions"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

type ReplyResponse struct {
	ID            uuid.UUID             `json:"id"`
	User          *models.PublicUser    `json:"user,omitempty"`
	Comment       string                `json:"comment"`
	Likes         []uuid.UUID           `json:"likes"`
	LikeCount     int                   `json:"like_count"`
	NestedReplies []NestedReplyResponse `json:"nested_replies"`
	Permissions   PermissionFlags       `json:"permissions"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

type NestedReplyResponse struct {
	ID          uuid.UUID          `json:"id"`
	User        *models.PublicUser `json:"user,omitempty"`
	Comment     string             `json:"comment"`
	Likes       []uuid.UUID        `json:"likes"`
	LikeCount   int                `json:"like_count"`
	Permissions PermissionFlags    `json:"permissions"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

func NewReviewService(db *gorm.DB, games *GameService) *ReviewService {
	return &ReviewService{db: db, games: games}
}

// CreateReview posts the actor's review of a game, at most one per
// user per game.
func (s *ReviewService) CreateReview(actor Actor, gameID uuid.UUID, req *CreateReviewRequest) (*ReviewResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("validation failed", utils.GetValidationErrors(err))
	}

	var review models.Review
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var game models.Game
		if err := tx.First(&game, gameID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("game")
			}
			return apperrors.Internal("database error", err)
		}

		var count int64
		tx.Model(&models.Review{}).
			Where("user_id = ? AND game_id = ?", actor.ID, gameID).
			Count(&count)
		if count > 0 {
			return apperrors.Conflict("you have already reviewed this game")
		}

		review = models.Review{
			UserID:  actor.ID,
			GameID:  gameID,
			Rating:  req.Rating,
			Comment: req.Comment,
		}
		if err := tx.Create(&review).Error; err != nil {
			return apperrors.Internal("failed to create review", err)
		}

		return s.games.RecalculateRating(tx, gameID)
	})
	if err != nil {
		return nil, err
	}

	return s.loadReview(review.ID, &actor)
}

// ListByGame returns a game's reviews newest first, fully expanded.
func (s *ReviewService) ListByGame(gameID uuid.UUID, viewer *Actor, params utils.PaginationParams) ([]ReviewResponse, int64, error) {
	query := s.db.Model(&models.Review{}).Where("game_id = ?", gameID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal("failed to count reviews", err)
	}

	var reviews []models.Review
	if err := utils.ApplyPagination(s.reviewQuery().Where("game_id = ?", gameID).Order("created_at DESC"), params).
		Find(&reviews).Error; err != nil {
		return nil, 0, apperrors.Internal("failed to fetch reviews", err)
	}

	responses := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, s.toReviewResponse(&reviews[i], viewer))
	}

	return responses, total, nil
}

func (s *ReviewService) GetReview(reviewID uuid.UUID, viewer *Actor) (*ReviewResponse, error) {
	return s.loadReview(reviewID, viewer)
}

// UpdateReview changes the author's own review. Admins do not get a
// bypass on edits.
func (s *ReviewService) UpdateReview(actor Actor, reviewID uuid.UUID, req *UpdateReviewRequest) (*ReviewResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("validation failed", utils.GetValidationErrors(err))
	}

	var review models.Review
	if err := s.db.First(&review, reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("review")
		}
		return nil, apperrors.Internal("database error", err)
	}

	if !IsOwner(actor, review.UserID) {
		return nil, apperrors.Forbidden("only the author can edit a review")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&review).Updates(map[string]interface{}{
			"rating":  req.Rating,
			"comment": req.Comment,
		}).Error; err != nil {
			return apperrors.Internal("failed to update review", err)
		}
		return s.games.RecalculateRating(tx, review.GameID)
	})
	if err != nil {
		return nil, err
	}

	return s.loadReview(reviewID, &actor)
}

// DeleteReview removes a review and its whole reply tree, then
// recomputes the game's aggregate rating.
func (s *ReviewService) DeleteReview(actor Actor, reviewID uuid.UUID) error {
	var review models.Review
	if err := s.db.First(&review, reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("review")
		}
		return apperrors.Internal("database error", err)
	}

	if !CanModerate(actor, review.UserID) {
		return apperrors.Forbidden("not authorized to delete this review")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.deleteReviewTree(tx, reviewID); err != nil {
			return apperrors.Internal("failed to delete review", err)
		}
		return s.games.RecalculateRating(tx, review.GameID)
	})
}

// ToggleReviewLike flips the actor's like on a review: present rows
// are removed, absent ones inserted.
func (s *ReviewService) ToggleReviewLike(actor Actor, reviewID uuid.UUID) (*ReviewResponse, error) {
	var review models.Review
	if err := s.db.First(&review, reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("review")
		}
		return nil, apperrors.Internal("database error", err)
	}

	res := s.db.Where("review_id = ? AND user_id = ?", reviewID, actor.ID).
		Delete(&models.ReviewLike{})
	if res.Error != nil {
		return nil, apperrors.Internal("failed to toggle like", res.Error)
	}
	if res.RowsAffected == 0 {
		like := models.ReviewLike{ReviewID: reviewID, UserID: actor.ID}
		if err := s.db.Create(&like).Error; err != nil {
			return nil, apperrors.Internal("failed to toggle like", err)
		}
	}

	return s.loadReview(reviewID, &actor)
}

// CreateReply attaches a first-level reply to a review.
func (s *ReviewService) CreateReply(actor Actor, reviewID uuid.UUID, req *ReplyRequest) (*ReviewResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("validation failed", utils.GetValidationErrors(err))
	}

	var review models.Review
	if err := s.db.First(&review, reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("review")
		}
		return nil, apperrors.Internal("database error", err)
	}

	reply := models.ReviewReply{
		ReviewID: reviewID,
		UserID:   actor.ID,
		Comment:  req.Comment,
	}
	if err := s.db.Create(&reply).Error; err != nil {
		return nil, apperrors.Internal("failed to create reply", err)
	}

	return s.loadReview(reviewID, &actor)
}

func (s *ReviewService) UpdateReply(actor Actor, reviewID, replyID uuid.UUID, req *ReplyRequest) (*ReviewResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("validation failed", utils.GetValidationErrors(err))
	}

	reply, err := s.findReply(reviewID, replyID)
	if err != nil {
		return nil, err
	}
	if !IsOwner(actor, reply.UserID) {
		return nil, apperrors.Forbidden("only the author can edit a reply")
	}

	if err := s.db.Model(reply).Update("comment", req.Comment).Error; err != nil {
		return nil, apperrors.Internal("failed to update reply", err)
	}

	return s.loadReview(reviewID, &actor)
}

// DeleteReply removes a reply and its nested replies.
func (s *ReviewService) DeleteReply(actor Actor, reviewID, replyID uuid.UUID) (*ReviewResponse, error) {
	reply, err := s.findReply(reviewID, replyID)
	if err != nil {
		return nil, err
	}
	if !CanModerate(actor, reply.UserID) {
		return nil, apperrors.Forbidden("not authorized to delete this reply")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.deleteReplyTree(tx, replyID)
	})
	if err != nil {
		return nil, apperrors.Internal("failed to delete reply", err)
	}

	return s.loadReview(reviewID, &actor)
}

func (s *ReviewService) ToggleReplyLike(actor Actor, reviewID, replyID uuid.UUID) (*ReviewResponse, error) {
	if _, err := s.findReply(reviewID, replyID); err != nil {
		return nil, err
	}

	res := s.db.Where("reply_id = ? AND user_id = ?", replyID, actor.ID).
		Delete(&models.ReviewReplyLike{})
	if res.Error != nil {
		return nil, apperrors.Internal("failed to toggle like", res.Error)
	}
	if res.RowsAffected == 0 {
		like := models.ReviewReplyLike{ReplyID: replyID, UserID: actor.ID}
		if err := s.db.Create(&like).Error; err != nil {
			return nil, apperrors.Internal("failed to toggle like", err)
		}
	}

	return s.loadReview(reviewID, &actor)
}

// CreateNestedReply attaches a second-level reply. The tree bottoms
// out here, nested replies cannot be replied to.
func (s *ReviewService) CreateNestedReply(actor Actor, reviewID, replyID uuid.UUID, req *ReplyRequest) (*ReviewResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("validation failed", utils.GetValidationErrors(err))
	}

	if _, err := s.findReply(reviewID, replyID); err != nil {
		return nil, err
	}

	nested := models.ReviewNestedReply{
		ReplyID: replyID,
		UserID:  actor.ID,
		Comment: req.Comment,
	}
	if err := s.db.Create(&nested).Error; err != nil {
		return nil, apperrors.Internal("failed to create nested reply", err)
	}

	return s.loadReview(reviewID, &actor)
}

func (s *ReviewService) UpdateNestedReply(actor Actor, reviewID, replyID, nestedID uuid.UUID, req *ReplyRequest) (*ReviewResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("validation failed", utils.GetValidationErrors(err))
	}

	nested, err := s.findNestedReply(reviewID, replyID, nestedID)
	if err != nil {
		return nil, err
	}
	if !IsOwner(actor, nested.UserID) {
		return nil, apperrors.Forbidden("only the author can edit a reply")
	}

	if err := s.db.Model(nested).Update("comment", req.Comment).Error; err != nil {
		return nil, apperrors.Internal("failed to update nested reply", err)
	}

	return s.loadReview(reviewID, &actor)
}

func (s *ReviewService) DeleteNestedReply(actor Actor, reviewID, replyID, nestedID uuid.UUID) (*ReviewResponse, error) {
	nested, err := s.findNestedReply(reviewID, replyID, nestedID)
	if err != nil {
		return nil, err
	}
	if !CanModerate(actor, nested.UserID) {
		return nil, apperrors.Forbidden("not authorized to delete this reply")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("nested_reply_id = ?", nestedID).
			Delete(&models.ReviewNestedReplyLike{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.ReviewNestedReply{}, nestedID).Error
	})
	if err != nil {
		return nil, apperrors.Internal("failed to delete nested reply", err)
	}

	return s.loadReview(reviewID, &actor)
}

func (s *ReviewService) ToggleNestedReplyLike(actor Actor, reviewID, replyID, nestedID uuid.UUID) (*ReviewResponse, error) {
	if _, err := s.findNestedReply(reviewID, replyID, nestedID); err != nil {
		return nil, err
	}

	res := s.db.Where("nested_reply_id = ? AND user_id = ?", nestedID, actor.ID).
		Delete(&models.ReviewNestedReplyLike{})
	if res.Error != nil {
		return nil, apperrors.Internal("failed to toggle like", res.Error)
	}
	if res.RowsAffected == 0 {
		like := models.ReviewNestedReplyLike{NestedReplyID: nestedID, UserID: actor.ID}
		if err := s.db.Create(&like).Error; err != nil {
			return nil, apperrors.Internal("failed to toggle like", err)
		}
	}

	return s.loadReview(reviewID, &actor)
}

func (s *ReviewService) reviewQuery() *gorm.DB {
	return s.db.
		Preload("User").
		Preload("Likes").
		Preload("Replies", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Replies.User").
		Preload("Replies.Likes").
		Preload("Replies.NestedReplies", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Replies.NestedReplies.User").
		Preload("Replies.NestedReplies.Likes")
}

func (s *ReviewService) loadReview(reviewID uuid.UUID, viewer *Actor) (*ReviewResponse, error) {
	var review models.Review
	if err := s.reviewQuery().First(&review, reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("review")
		}
		return nil, apperrors.Internal("database error", err)
	}

	resp := s.toReviewResponse(&review, viewer)
	return &resp, nil
}

func (s *ReviewService) findReply(reviewID, replyID uuid.UUID) (*models.ReviewReply, error) {
	var reply models.ReviewReply
	if err := s.db.Where("id = ? AND review_id = ?", replyID, reviewID).First(&reply).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("reply")
		}
		return nil, apperrors.Internal("database error", err)
	}
	return &reply, nil
}

func (s *ReviewService) findNestedReply(reviewID, replyID, nestedID uuid.UUID) (*models.ReviewNestedReply, error) {
	if _, err := s.findReply(reviewID, replyID); err != nil {
		return nil, err
	}

	var nested models.ReviewNestedReply
	if err := s.db.Where("id = ? AND reply_id = ?", nestedID, replyID).First(&nested).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("reply")
		}
		return nil, apperrors.Internal("database error", err)
	}
	return &nested, nil
}

// deleteReviewTree hard-deletes a review with its replies, nested
// replies and all like rows.
func (s *ReviewService) deleteReviewTree(tx *gorm.DB, reviewID uuid.UUID) error {
	var replyIDs []uuid.UUID
	if err := tx.Model(&models.ReviewReply{}).Where("review_id = ?", reviewID).
		Pluck("id", &replyIDs).Error; err != nil {
		return err
	}

	for _, replyID := range replyIDs {
		if err := s.deleteReplyTree(tx, replyID); err != nil {
			return err
		}
	}

	if err := tx.Unscoped().Where("review_id = ?", reviewID).Delete(&models.ReviewLike{}).Error; err != nil {
		return err
	}
	return tx.Unscoped().Delete(&models.Review{}, reviewID).Error
}

func (s *ReviewService) deleteReplyTree(tx *gorm.DB, replyID uuid.UUID) error {
	var nestedIDs []uuid.UUID
	if err := tx.Model(&models.ReviewNestedReply{}).Where("reply_id = ?", replyID).
		Pluck("id", &nestedIDs).Error; err != nil {
		return err
	}

	if len(nestedIDs) > 0 {
		if err := tx.Unscoped().Where("nested_reply_id IN ?", nestedIDs).
			Delete(&models.ReviewNestedReplyLike{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("id IN ?", nestedIDs).
			Delete(&models.ReviewNestedReply{}).Error; err != nil {
			return err
		}
	}

	if err := tx.Unscoped().Where("reply_id = ?", replyID).Delete(&models.ReviewReplyLike{}).Error; err != nil {
		return err
	}
	return tx.Unscoped().Delete(&models.ReviewReply{}, replyID).Error
}

func (s *ReviewService) toReviewResponse(review *models.Review, viewer *Actor) ReviewResponse {
	resp := ReviewResponse{
		ID:          review.ID,
		GameID:      review.GameID,
		Rating:      review.Rating,
		Comment:     review.Comment,
		Likes:       make([]uuid.UUID, 0, len(review.Likes)),
		Replies:     make([]ReplyResponse, 0, len(review.Replies)),
		Permissions: Permissions(viewer, review.UserID),
		CreatedAt:   review.CreatedAt,
		UpdatedAt:   review.UpdatedAt,
	}
	if review.User != nil {
		pub := review.User.Public()
		resp.User = &pub
	}
	for _, like := range review.Likes {
		resp.Likes = append(resp.Likes, like.UserID)
	}
	resp.LikeCount = len(resp.Likes)

	for i := range review.Replies {
		resp.Replies = append(resp.Replies, s.toReplyResponse(&review.Replies[i], viewer))
	}

	return resp
}

func (s *ReviewService) toReplyResponse(reply *models.ReviewReply, viewer *Actor) ReplyResponse {
	resp := ReplyResponse{
		ID:            reply.ID,
		Comment:       reply.Comment,
		Likes:         make([]uuid.UUID, 0, len(reply.Likes)),
		NestedReplies: make([]NestedReplyResponse, 0, len(reply.NestedReplies)),
		Permissions:   Permissions(viewer, reply.UserID),
		CreatedAt:     reply.CreatedAt,
		UpdatedAt:     reply.UpdatedAt,
	}
	if reply.User != nil {
		pub := reply.User.Public()
		resp.User = &pub
	}
	for _, like := range reply.Likes {
		resp.Likes = append(resp.Likes, like.UserID)
	}
	resp.LikeCount = len(resp.Likes)

	for i := range reply.NestedReplies {
		nested := &reply.NestedReplies[i]
		nr := NestedReplyResponse{
			ID:          nested.ID,
			Comment:     nested.Comment,
			Likes:       make([]uuid.UUID, 0, len(nested.Likes)),
			Permissions: Permissions(viewer, nested.UserID),
			CreatedAt:   nested.CreatedAt,
			UpdatedAt:   nested.UpdatedAt,
		}
		if nested.User != nil {
			pub := nested.User.Public()
			nr.User = &pub
		}
		for _, like := range nested.Likes {
			nr.Likes = append(nr.Likes, like.UserID)
		}
		nr.LikeCount = len(nr.Likes)
		resp.NestedReplies = append(resp.NestedReplies, nr)
	}

	return resp
}
