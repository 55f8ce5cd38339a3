package handler

import (
	"net/http"

	"drinkcatalog/drinks-service/internal/app/drinks/entity"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type RatingHandler struct {
	ratingService RatingServiceInterface
	validator     *validator.Validate
}

func NewRatingHandler(ratingService RatingServiceInterface) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
		validator:     validator.New(),
	}
}

func (h *RatingHandler) bind(c *gin.Context) (entity.RatingInput, bool) {
	var in entity.RatingInput

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

func (h *RatingHandler) CreateRating(c *gin.Context) {
	in, ok := h.bind(c)
	if !ok {
		return
	}

	rating, err := h.ratingService.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "Failed to create rating")
		return
	}

	c.JSON(http.StatusCreated, rating)
}

func (h *RatingHandler) UpdateRating(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	in, ok := h.bind(c)
	if !ok {
		return
	}
	in.ID = id

	rating, err := h.ratingService.Update(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "Failed to update rating")
		return
	}

	c.JSON(http.StatusOK, rating)
}

func (h *RatingHandler) DeleteRating(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.ratingService.Delete(c.Request.Context(), id, userID); err != nil {
		respondError(c, err, "Failed to delete rating")
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Rating deleted successfully"})
}

func (h *RatingHandler) ListForDrink(c *gin.Context) {
	drinkID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ratings, err := h.ratingService.ListForDrink(c.Request.Context(), drinkID)
	if err != nil {
		respondError(c, err, "Failed to list ratings")
		return
	}

	c.JSON(http.StatusOK, entity.RatingListResponse{
		Ratings: ratings,
		Total:   len(ratings),
	})
}

func (h *RatingHandler) AverageForDrink(c *gin.Context) {
	drinkID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	avg, err := h.ratingService.AverageFor(c.Request.Context(), drinkID)
	if err != nil {
		respondError(c, err, "Failed to compute average rating")
		return
	}

	c.JSON(http.StatusOK, entity.AverageRatingResponse{
		DrinkID: drinkID,
		Average: avg,
	})
}
