package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MovieModel struct {
	ID          string    `gorm:"type:uuid;primary_key" json:"id"`
	Title       string    `gorm:"type:varchar(200);not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Genre       string    `gorm:"type:varchar(50)" json:"genre"`
	ReleaseYear int       `gorm:"default:0" json:"release_year"`
	Rating      float64   `gorm:"default:0" json:"rating"`
	PosterURL   string    `gorm:"type:varchar(500)" json:"poster_url"`
	UploadedBy  string    `gorm:"type:uuid;not null;index" json:"uploaded_by"`
	UploadedAt  time.Time `gorm:"not null;index:,sort:desc" json:"uploaded_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (MovieModel) TableName() string {
	return "movies"
}

func (m *MovieModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}
