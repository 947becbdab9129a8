package links

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomLink is a user-ordered external link shown on the public profile.
type CustomLink struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uint   `gorm:"not null;index:idx_custom_links_user_order,priority:1" json:"-"`

	Title   string  `gorm:"not null" json:"title"`
	URL     string  `gorm:"not null" json:"url"`
	IconURL *string `gorm:"column:icon_url" json:"icon_url,omitempty"`
	Enabled bool    `gorm:"not null;default:true" json:"enabled"`

	// advisory ordering, assigned max+1 per owner on create
	DisplayOrder int `gorm:"not null;default:0;index:idx_custom_links_user_order,priority:2" json:"display_order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (l *CustomLink) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
