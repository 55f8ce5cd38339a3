package handler

import (
	"net/http"

	"drinkcatalog/drinks-service/internal/app/drinks/entity"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ReviewHandler struct {
	reviewService ReviewServiceInterface
	validator     *validator.Validate
}

func NewReviewHandler(reviewService ReviewServiceInterface) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		validator:     validator.New(),
	}
}

func (h *ReviewHandler) bind(c *gin.Context) (entity.ReviewInput, bool) {
	var in entity.ReviewInput

	userID, ok := currentUserID(c)
	if !ok {
		return in, false
	}

	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return in, false
	}

	if err := h.validator.Struct(in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return in, false
	}

	in.UserID = userID
	return in, true
}

func (h *ReviewHandler) AddReview(c *gin.Context) {
	in, ok := h.bind(c)
	if !ok {
		return
	}

	review, err := h.reviewService.Add(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "Failed to add review")
		return
	}

	c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	reviewID := c.Param("id")
	if reviewID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Review ID is required"})
		return
	}

	in, ok := h.bind(c)
	if !ok {
		return
	}
	in.ID = reviewID

	review, err := h.reviewService.Update(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "Failed to update review")
		return
	}

	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	reviewID := c.Param("id")
	if reviewID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Review ID is required"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), reviewID, userID); err != nil {
		respondError(c, err, "Failed to delete review")
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Review deleted successfully"})
}

func (h *ReviewHandler) ListForRating(c *gin.Context) {
	ratingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reviews, err := h.reviewService.ListForRating(c.Request.Context(), ratingID)
	if err != nil {
		respondError(c, err, "Failed to list reviews")
		return
	}

	c.JSON(http.StatusOK, entity.ReviewListResponse{
		Reviews: reviews,
		Total:   len(reviews),
	})
}
