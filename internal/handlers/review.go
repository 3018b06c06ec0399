// internal/handlers/review.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gamebazaar/gamebazaar-backend/internal/services"
	"github.com/gamebazaar/gamebazaar-backend/internal/utils"
)

type ReviewHandler struct {
	reviewService *services.ReviewService
}

func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// GET /games/:id/reviews
func (h *ReviewHandler) GetGameReviews(c *gin.Context) {
	gameID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid game ID", nil)
		return
	}

	params := utils.GetPaginationParams(c)
	reviews, total, err := h.reviewService.ListByGame(gameID, viewerFromContext(c), params)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	result := utils.CreatePaginationResult(reviews, total, params)
	utils.PaginatedResponse(c, result)
}

// POST /games/:id/reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	gameID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid game ID", nil)
		return
	}

	var req services.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	review, err := h.reviewService.CreateReview(actor, gameID, &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, review)
}

// GET /reviews/:id
func (h *ReviewHandler) GetReview(c *gin.Context) {
	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid review ID", nil)
		return
	}

	review, err := h.reviewService.GetReview(reviewID, viewerFromContext(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, review)
}

// PUT /reviews/:id
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid review ID", nil)
		return
	}

	var req services.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	review, err := h.reviewService.UpdateReview(actor, reviewID, &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, review)
}

// DELETE /reviews/:id
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid review ID", nil)
		return
	}

	if err := h.reviewService.DeleteReview(actor, reviewID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Review deleted"})
}

// PUT /reviews/:id/like
func (h *ReviewHandler) ToggleLike(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid review ID", nil)
		return
	}

	review, err := h.reviewService.ToggleReviewLike(actor, reviewID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, review)
}

// POST /reviews/:id/reply
func (h *ReviewHandler) CreateReply(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid review ID", nil)
		return
	}

	var req services.ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	review, err := h.reviewService.CreateReply(actor, reviewID, &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, review)
}

// PUT /reviews/:id/reply/:replyId
func (h *ReviewHandler) UpdateReply(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	reviewID, replyID, ok := parseReviewReplyIDs(c)
	if !ok {
		return
	}

	var req services.ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	review, err := h.reviewService.UpdateReply(actor, reviewID, replyID, &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, review)
}

// DELETE /reviews/:id/reply/:replyId
func (h *ReviewHandler) DeleteReply(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	reviewID, replyID, ok := parseReviewReplyIDs(c)
	if !ok {
		return
	}

	review, err := h.reviewService.DeleteReply(actor, reviewID, replyID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, review)
}

// PUT /reviews/:id/reply/:replyId/like
func (h *ReviewHandler) ToggleReplyLike(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	reviewID, replyID, ok := parseReviewReplyIDs(c)
	if !ok {
		return
	}

	review, err := h.reviewService.ToggleReplyLike(actor, reviewID, replyID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, review)
}

// POST /reviews/:id/reply/:replyId/nested
func (h *ReviewHandler) CreateNestedReply(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	reviewID, replyID, ok := parseReviewReplyIDs(c)
	if !ok {
		return
	}

	var req services.ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	review, err := h.reviewService.CreateNestedReply(actor, reviewID, replyID, &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, review)
}

// PUT /reviews/:id/reply/:replyId/nested/:nestedReplyId
func (h *ReviewHandler) UpdateNestedReply(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	reviewID, replyID, nestedID, ok := parseNestedReplyIDs(c)
	if !ok {
		return
	}

	var req services.ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	review, err := h.reviewService.UpdateNestedReply(actor, reviewID, replyID, nestedID, &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, review)
}

// DELETE /reviews/:id/reply/:replyId/nested/:nestedReplyId
func (h *ReviewHandler) DeleteNestedReply(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	reviewID, replyID, nestedID, ok := parseNestedReplyIDs(c)
	if !ok {
		return
	}

	review, err := h.reviewService.DeleteNestedReply(actor, reviewID, replyID, nestedID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, review)
}

// PUT /reviews/:id/reply/:replyId/nested/:nestedReplyId/like
func (h *ReviewHandler) ToggleNestedReplyLike(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	reviewID, replyID, nestedID, ok := parseNestedReplyIDs(c)
	if !ok {
		return
	}

	review, err := h.reviewService.ToggleNestedReplyLike(actor, reviewID, replyID, nestedID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, review)
}

func parseReviewReplyIDs(c *gin.Context) (reviewID, replyID uuid.UUID, ok bool) {
	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid review ID", nil)
		return uuid.Nil, uuid.Nil, false
	}
	replyID, err = uuid.Parse(c.Param("replyId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid reply ID", nil)
		return uuid.Nil, uuid.Nil, false
	}
	return reviewID, replyID, true
}

func parseNestedReplyIDs(c *gin.Context) (reviewID, replyID, nestedID uuid.UUID, ok bool) {
	reviewID, replyID, ok = parseReviewReplyIDs(c)
	if !ok {
		return uuid.Nil, uuid.Nil, uuid.Nil, false
	}
	nestedID, err := uuid.Parse(c.Param("nestedReplyId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid reply ID", nil)
		return uuid.Nil, uuid.Nil, uuid.Nil, false
	}
	return reviewID, replyID, nestedID, true
}
