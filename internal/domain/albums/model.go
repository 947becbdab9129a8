package albums

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Album struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uint   `gorm:"not null;index:idx_albums_user_id" json:"-"`

	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description,omitempty"`

	// Invariant: once an album has at least one image, the cover is non-null.
	CoverImageID *string `gorm:"type:uuid" json:"cover_image_id,omitempty"`
	CoverImage   *Image  `gorm:"foreignKey:CoverImageID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"cover_image,omitempty"`

	Images []Image `gorm:"foreignKey:AlbumID;constraint:OnDelete:CASCADE;" json:"images,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Album) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

type Image struct {
	ID      string `gorm:"type:uuid;primaryKey" json:"id"`
	AlbumID string `gorm:"type:uuid;not null;index:idx_images_album_id" json:"album_id"`

	// object key in the media bucket
	Path string `gorm:"not null" json:"path"`

	CreatedAt time.Time `json:"created_at"`
}

func (i *Image) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
