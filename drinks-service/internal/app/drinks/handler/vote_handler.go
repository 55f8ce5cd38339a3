package handler

import (
	"net/http"
	"time"

	"drinkcatalog/drinks-service/internal/app/drinks/entity"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type VoteHandler struct {
	votingService VotingServiceInterface
	validator     *validator.Validate
	location      *time.Location
	now           func() time.Time
}

// NewVoteHandler takes the zone in which calendar days are counted.
func NewVoteHandler(votingService VotingServiceInterface, location *time.Location) *VoteHandler {
	return &VoteHandler{
		votingService: votingService,
		validator:     validator.New(),
		location:      location,
		now:           time.Now,
	}
}

func (h *VoteHandler) CastVote(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req entity.CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	if err := h.votingService.CastVote(c.Request.Context(), userID, req.DrinkID, h.now().In(h.location)); err != nil {
		respondError(c, err, "Failed to cast vote")
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Vote recorded"})
}

func (h *VoteHandler) GetMyVote(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	vote, err := h.votingService.VoteOfUserForDay(c.Request.Context(), userID, h.now().In(h.location))
	if err != nil {
		respondError(c, err, "Failed to get vote")
		return
	}

	c.JSON(http.StatusOK, vote)
}
