package entity

import "time"

// DrinkFilter is the catalog query. Empty fields do not filter.
type DrinkFilter struct {
	Keyword       string
	BrandNames    []string
	CategoryNames []string
	MinAlcohol    *float64
	MaxAlcohol    *float64
	OrderBy       []OrderKey
}

// OrderKey is one (field, direction) pair. Recognized fields are OrderByName
// and OrderByAlcoholContent.
type OrderKey struct {
	Field     string
	Ascending bool
}

const (
	OrderByName           = "Name"
	OrderByAlcoholContent = "AlcoholContent"
)

// RatingInput is the create and update payload of a rating. ID is ignored on create.
type RatingInput struct {
	ID       int64              `json:"-"`
	DrinkID  int64              `json:"drink_id" validate:"required,gt=0"`
	UserID   int64              `json:"-"`
	Value    *float64           `json:"value" validate:"required"`
	Date     Optional[time.Time] `json:"date"`
	IsActive Optional[bool]     `json:"is_active"`
}

// ReviewInput is the create and update payload of a review. ID is ignored on create.
type ReviewInput struct {
	ID           string              `json:"-"`
	RatingID     int64               `json:"rating_id" validate:"required,gt=0"`
	UserID       int64               `json:"-"`
	Content      string              `json:"content"`
	CreationDate Optional[time.Time] `json:"creation_date"`
	IsActive     Optional[bool]      `json:"is_active"`
}

// === HTTP ===

// DrinkQueryParams is bound from GET /drinks.
type DrinkQueryParams struct {
	Keyword    string   `form:"keyword" validate:"max=200"`
	Brands     []string `form:"brand"`
	Categories []string `form:"category"`
	MinAlcohol *float64 `form:"min_alcohol" validate:"omitempty,gte=0,lte=100"`
	MaxAlcohol *float64 `form:"max_alcohol" validate:"omitempty,gte=0,lte=100"`
	OrderBy    []string `form:"order_by"`
	Order      []string `form:"order" validate:"dive,oneof=asc desc"`
}

type CreateDrinkRequest struct {
	Name           string  `json:"name" validate:"required,min=1,max=200"`
	ImageURL       string  `json:"image_url" validate:"omitempty,url"`
	AlcoholContent float64 `json:"alcohol_content" validate:"gte=0,lte=100"`
	BrandID        int64   `json:"brand_id" validate:"required,gt=0"`
	CategoryIDs    []int64 `json:"category_ids" validate:"dive,gt=0"`
}

type CastVoteRequest struct {
	DrinkID int64 `json:"drink_id" validate:"required,gt=0"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type DrinkListResponse struct {
	Drinks []Drink `json:"drinks"`
	Total  int     `json:"total"`
}

type AverageRatingResponse struct {
	DrinkID int64   `json:"drink_id"`
	Average float64 `json:"average"`
}

type RatingListResponse struct {
	Ratings []Rating `json:"ratings"`
	Total   int      `json:"total"`
}

type ReviewListResponse struct {
	Reviews []Review `json:"reviews"`
	Total   int      `json:"total"`
}

type FeaturedDrinkResponse struct {
	Day   string `json:"day"`
	Drink Drink  `json:"drink"`
}
