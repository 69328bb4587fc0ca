package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// EducationContent carries rich text (HTML) in Content. AssignedTo is the
// only place the content-to-patient edge is kept; it is replaced wholesale
// by an assign action, never diffed.
type EducationContent struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`
	Title       string         `gorm:"column:title;size:255;not null" json:"title"`
	Description string         `gorm:"column:description;type:text" json:"description"`
	Author      string         `gorm:"column:author;size:255" json:"author"`
	Thumbnail   string         `gorm:"column:thumbnail;size:255" json:"thumbnail"`
	Content     string         `gorm:"column:content;type:text" json:"content"`
	Category    string         `gorm:"column:category;size:100" json:"category"`
	AssignedTo  pq.StringArray `gorm:"column:assigned_to;type:text[]" json:"assigned_to,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (e *EducationContent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

func (e EducationContent) EntityID() string       { return e.ID }
func (e *EducationContent) SetEntityID(id string) { e.ID = id }
