package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Blog post categories. Fixed enum, validated at the request boundary.
const (
	CategoryFrontend = "frontend"
	CategoryBackend  = "backend"
	CategoryDevops   = "devops"
	CategoryMobile   = "mobile"
	CategoryTutorial = "tutorial"
	CategoryOpinion  = "opinion"
	CategoryNews     = "news"
)

// Categories lists every valid blog post category.
var Categories = []string{
	CategoryFrontend,
	CategoryBackend,
	CategoryDevops,
	CategoryMobile,
	CategoryTutorial,
	CategoryOpinion,
	CategoryNews,
}

// BlogPost is a single article. Slug is the public lookup key.
//
// PublishedAt is a first-publish timestamp: it is stamped the first time
// Published flips to true and never reset, even across unpublish cycles.
type BlogPost struct {
	ID       uuid.UUID                   `json:"id" gorm:"type:char(36);primaryKey"`
	Title    string                      `json:"title" gorm:"size:200;not null"`
	Slug     string                      `json:"slug" gorm:"uniqueIndex;size:200;not null"`
	Excerpt  string                      `json:"excerpt" gorm:"size:500"`
	Content  string                      `json:"content" gorm:"type:text;not null"`
	Category string                      `json:"category" gorm:"size:20;not null;index"`
	Tags     datatypes.JSONSlice[string] `json:"tags"`

	AuthorID uuid.UUID `json:"authorId" gorm:"type:char(36);index;not null"`
	Author   *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID"`

	Published   bool       `json:"published" gorm:"not null;default:false;index"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	Featured    bool       `json:"featured" gorm:"not null;default:false"`

	ReadTime int   `json:"readTime" gorm:"not null;default:5"` // minutes
	Views    int64 `json:"views" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (p *BlogPost) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
