package handler

import (
	"net/http"

	"drinkcatalog/drinks-service/internal/app/drinks/entity"
	"drinkcatalog/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type CatalogHandler struct {
	catalogService CatalogServiceInterface
	validator      *validator.Validate
}

func NewCatalogHandler(catalogService CatalogServiceInterface) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		validator:      validator.New(),
	}
}

// SearchDrinks serves GET /drinks. order_by and order are parallel lists;
// a missing order defaults to ascending.
func (h *CatalogHandler) SearchDrinks(c *gin.Context) {
	var params entity.DrinkQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		metrics.ValidationFailures.WithLabelValues("query").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	if err := h.validator.Struct(params); err != nil {
		metrics.ValidationFailures.WithLabelValues("query").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	drinks, err := h.catalogService.SearchDrinks(c.Request.Context(), toFilter(params))
	if err != nil {
		respondError(c, err, "Failed to search drinks")
		return
	}

	c.JSON(http.StatusOK, entity.DrinkListResponse{
		Drinks: drinks,
		Total:  len(drinks),
	})
}

func toFilter(p entity.DrinkQueryParams) entity.DrinkFilter {
	f := entity.DrinkFilter{
		Keyword:       p.Keyword,
		BrandNames:    p.Brands,
		CategoryNames: p.Categories,
		MinAlcohol:    p.MinAlcohol,
		MaxAlcohol:    p.MaxAlcohol,
	}
	for i, field := range p.OrderBy {
		ascending := i >= len(p.Order) || p.Order[i] != "desc"
		f.OrderBy = append(f.OrderBy, entity.OrderKey{Field: field, Ascending: ascending})
	}
	return f
}

func (h *CatalogHandler) GetDrink(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	drink, err := h.catalogService.GetDrink(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to get drink")
		return
	}

	c.JSON(http.StatusOK, drink)
}

func (h *CatalogHandler) CreateDrink(c *gin.Context) {
	var req entity.CreateDrinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	drink, err := h.catalogService.CreateDrink(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create drink")
		return
	}

	c.JSON(http.StatusCreated, drink)
}

func (h *CatalogHandler) ListBrands(c *gin.Context) {
	brands, err := h.catalogService.ListBrands(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list brands")
		return
	}
	c.JSON(http.StatusOK, brands)
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list categories")
		return
	}
	c.JSON(http.StatusOK, categories)
}
