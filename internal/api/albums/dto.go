package albums

import (
	"time"

	"portfolio-app/internal/domain/albums"
)

type ImageDTO struct {
	ID        string    `json:"id"`
	AlbumID   string    `json:"album_id"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

type AlbumDTO struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	CoverImageID *string    `json:"cover_image_id,omitempty"`
	CoverURL     *string    `json:"cover_url,omitempty"`
	Images       []ImageDTO `json:"images"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (h *Handler) toImageDTO(img albums.Image) ImageDTO {
	return ImageDTO{
		ID:        img.ID,
		AlbumID:   img.AlbumID,
		URL:       h.store.PublicURL(img.Path),
		CreatedAt: img.CreatedAt,
	}
}

func (h *Handler) toAlbumDTO(a albums.Album) AlbumDTO {
	dto := AlbumDTO{
		ID:           a.ID,
		Title:        a.Title,
		Description:  a.Description,
		CoverImageID: a.CoverImageID,
		Images:       make([]ImageDTO, 0, len(a.Images)),
		CreatedAt:    a.CreatedAt,
	}
	if a.CoverImage != nil {
		u := h.store.PublicURL(a.CoverImage.Path)
		dto.CoverURL = &u
	}
	for _, img := range a.Images {
		dto.Images = append(dto.Images, h.toImageDTO(img))
	}
	return dto
}
