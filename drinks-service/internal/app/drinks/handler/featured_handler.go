package handler

import (
	"net/http"
	"time"

	"drinkcatalog/drinks-service/internal/app/drinks/entity"

	"github.com/gin-gonic/gin"
)

type FeaturedHandler struct {
	featuredService FeaturedServiceInterface
	location        *time.Location
	now             func() time.Time
}

func NewFeaturedHandler(featuredService FeaturedServiceInterface, location *time.Location) *FeaturedHandler {
	return &FeaturedHandler{
		featuredService: featuredService,
		location:        location,
		now:             time.Now,
	}
}

func (h *FeaturedHandler) GetFeatured(c *gin.Context) {
	today := h.now().In(h.location)

	drink, err := h.featuredService.GetFeaturedDrink(c.Request.Context(), today)
	if err != nil {
		respondError(c, err, "Failed to get drink of the day")
		return
	}

	c.JSON(http.StatusOK, entity.FeaturedDrinkResponse{
		Day:   today.Format(time.DateOnly),
		Drink: *drink,
	})
}

func (h *FeaturedHandler) Rotate(c *gin.Context) {
	item, err := h.featuredService.ForceRotate(c.Request.Context(), h.now().In(h.location))
	if err != nil {
		respondError(c, err, "Failed to rotate drink of the day")
		return
	}

	c.JSON(http.StatusOK, item)
}
