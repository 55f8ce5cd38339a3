package entity

import (
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
)

const (
	MinAlcoholContent = 0.0
	MaxAlcoholContent = 100.0
)

var ErrInvalidAlcoholContent = errors.New("alcohol content must be between 0 and 100")

type Brand struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
}

func (Brand) TableName() string {
	return "brands"
}

type Category struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
}

func (Category) TableName() string {
	return "categories"
}

// Drink is a catalog entry. Its identity never changes after creation.
type Drink struct {
	ID             int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name           string     `json:"name" gorm:"type:varchar(200);not null"`
	ImageURL       string     `json:"image_url" gorm:"type:text"`
	AlcoholContent float64    `json:"alcohol_content" gorm:"not null;check:alcohol_content >= 0 AND alcohol_content <= 100"`
	BrandID        int64      `json:"brand_id" gorm:"not null;index"`
	Brand          Brand      `json:"brand" gorm:"foreignKey:BrandID;constraint:OnDelete:RESTRICT;"`
	Categories     []Category `json:"categories" gorm:"many2many:drink_categories;"`
}

func (Drink) TableName() string {
	return "drinks"
}

// NewDrink builds a drink, rejecting alcohol content outside [0, 100].
func NewDrink(name, imageURL string, alcoholContent float64, brand Brand, categories []Category) (*Drink, error) {
	d := &Drink{
		Name:           name,
		ImageURL:       imageURL,
		AlcoholContent: alcoholContent,
		BrandID:        brand.ID,
		Brand:          brand,
		Categories:     categories,
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Drink) Validate() error {
	if d.AlcoholContent < MinAlcoholContent || d.AlcoholContent > MaxAlcoholContent {
		return fmt.Errorf("%w: got %.2f", ErrInvalidAlcoholContent, d.AlcoholContent)
	}
	return nil
}

// BeforeSave keeps rows written through gorm within the alcohol range.
func (d *Drink) BeforeSave(*gorm.DB) error {
	return d.Validate()
}

// HasCategory reports whether the drink is tagged with the named category.
func (d *Drink) HasCategory(name string) bool {
	for _, c := range d.Categories {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Vote is one user's ballot for one calendar day. VoteDay is DayOf(VotedAt)
// and (user_id, vote_day) is unique.
type Vote struct {
	ID      int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID  int64     `json:"user_id" gorm:"not null;uniqueIndex:idx_votes_user_day,priority:1"`
	DrinkID int64     `json:"drink_id" gorm:"not null;index"`
	VotedAt time.Time `json:"voted_at" gorm:"not null;index"`
	VoteDay time.Time `json:"vote_day" gorm:"type:date;not null;uniqueIndex:idx_votes_user_day,priority:2"`
}

func (Vote) TableName() string {
	return "votes"
}

// FeaturedItem is the drink of the day. At most one row per day.
type FeaturedItem struct {
	ID      int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	DrinkID int64     `json:"drink_id" gorm:"not null"`
	Day     time.Time `json:"day" gorm:"type:date;not null;uniqueIndex"`
}

func (FeaturedItem) TableName() string {
	return "featured_items"
}

type Rating struct {
	ID       int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	DrinkID  int64     `json:"drink_id" gorm:"not null;index"`
	UserID   int64     `json:"user_id" gorm:"not null;index"`
	Value    *float64  `json:"value"`
	Date     time.Time `json:"date" gorm:"not null"`
	IsActive bool      `json:"is_active" gorm:"not null"`
}

func (Rating) TableName() string {
	return "ratings"
}

type Review struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	RatingID     int64              `json:"rating_id" bson:"rating_id"`
	UserID       int64              `json:"user_id" bson:"user_id"`
	Content      string             `json:"content" bson:"content"`
	CreationDate time.Time          `json:"creation_date" bson:"creation_date"`
	IsActive     bool               `json:"is_active" bson:"is_active"`
}
