package albums

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"portfolio-app/internal/api/respond"
	"portfolio-app/internal/domain/albums"
	"portfolio-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ObjectStore is the slice of the media store the album handlers need;
// tests substitute a fake.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, key string) error
	PublicURL(key string) string
}

type Handler struct {
	db    *gorm.DB
	store ObjectStore
}

func NewHandler(db *gorm.DB, store ObjectStore) *Handler {
	return &Handler{db: db, store: store}
}

func mustUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		respond.Error(c, http.StatusUnauthorized, "Unauthorized")
		return 0, false
	}
	return userID, true
}

// ------------------------------
// GET /api/albums  (public; ?username= narrows to one model)
// ------------------------------
func (h *Handler) List(c *gin.Context) {
	q := h.db.Model(&albums.Album{}).
		Preload("CoverImage").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Order("created_at DESC")

	if username := c.Query("username"); username != "" {
		var user users.User
		if err := h.db.Where("username = ?", username).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respond.Error(c, http.StatusNotFound, "Model not found")
				return
			}
			respond.Error(c, http.StatusInternalServerError, err.Error())
			return
		}
		q = q.Where("user_id = ?", user.ID)
	}

	var rows []albums.Album
	if err := q.Find(&rows).Error; err != nil {
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]AlbumDTO, 0, len(rows))
	for _, a := range rows {
		out = append(out, h.toAlbumDTO(a))
	}
	respond.OK(c, out)
}

// ------------------------------
// POST /api/albums
// ------------------------------
func (h *Handler) Create(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		respond.Error(c, http.StatusBadRequest, "Title is required")
		return
	}

	album := albums.Album{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := h.db.Create(&album).Error; err != nil {
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	respond.Created(c, h.toAlbumDTO(album))
}

// ------------------------------
// POST /api/albums/:id/images  (multipart, field "image")
// The first image of a coverless album becomes the cover in the same
// transaction, so no reader sees an album with images and no cover.
// ------------------------------
func (h *Handler) UploadImage(c *gin.Context) {
	albumID := c.Param("id")

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var album albums.Album
	if err := h.db.First(&album, "id = ? AND user_id = ?", albumID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respond.Error(c, http.StatusNotFound, "Album not found")
			return
		}
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "Image file is required")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		respond.Error(c, http.StatusBadRequest, "File must be an image")
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "Failed to read upload")
		return
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	key := fmt.Sprintf("albums/%s/%s%s", album.ID, uuid.NewString(), ext)

	if err := h.store.Put(c.Request.Context(), key, src, fileHeader.Size, contentType); err != nil {
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	image := albums.Image{
		AlbumID: album.ID,
		Path:    key,
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&image).Error; err != nil {
			return err
		}
		if album.CoverImageID == nil {
			return tx.Model(&albums.Album{}).
				Where("id = ? AND cover_image_id IS NULL", album.ID).
				Update("cover_image_id", image.ID).Error
		}
		return nil
	})
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	respond.Created(c, h.toImageDTO(image))
}

// ------------------------------
// PUT /api/albums/:id/cover  {image_id}
// ------------------------------
func (h *Handler) SetCover(c *gin.Context) {
	albumID := c.Param("id")

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req struct {
		ImageID string `json:"image_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ImageID == "" {
		respond.Error(c, http.StatusBadRequest, "image_id is required")
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		var album albums.Album
		if err := tx.First(&album, "id = ? AND user_id = ?", albumID, userID).Error; err != nil {
			return err
		}

		// the cover must already live in this album
		var image albums.Image
		if err := tx.First(&image, "id = ? AND album_id = ?", req.ImageID, album.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errWrongAlbum
			}
			return err
		}

		return tx.Model(&albums.Album{}).
			Where("id = ?", album.ID).
			Update("cover_image_id", image.ID).Error
	})

	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			respond.Error(c, http.StatusNotFound, "Album not found")
		case errors.Is(err, errWrongAlbum):
			respond.Error(c, http.StatusBadRequest, "Image does not belong to this album")
		default:
			respond.Error(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	respond.OK(c, gin.H{"status": "ok"})
}

var errWrongAlbum = errors.New("image belongs to a different album")

// ------------------------------
// DELETE /api/albums/:id/images/:imageId
// Deleting the cover promotes the oldest remaining image.
// ------------------------------
func (h *Handler) DeleteImage(c *gin.Context) {
	albumID := c.Param("id")
	imageID := c.Param("imageId")

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var removedPath string

	err := h.db.Transaction(func(tx *gorm.DB) error {
		var album albums.Album
		if err := tx.First(&album, "id = ? AND user_id = ?", albumID, userID).Error; err != nil {
			return err
		}

		var image albums.Image
		if err := tx.First(&image, "id = ? AND album_id = ?", imageID, album.ID).Error; err != nil {
			return err
		}
		removedPath = image.Path

		if err := tx.Delete(&image).Error; err != nil {
			return err
		}

		wasCover := album.CoverImageID != nil && *album.CoverImageID == image.ID
		if !wasCover {
			return nil
		}

		// oldest remaining image becomes the new cover, NULL when none left
		var replacement albums.Image
		err := tx.Where("album_id = ?", album.ID).
			Order("created_at ASC, id ASC").
			First(&replacement).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Model(&albums.Album{}).
				Where("id = ?", album.ID).
				Update("cover_image_id", nil).Error
		}
		if err != nil {
			return err
		}
		return tx.Model(&albums.Album{}).
			Where("id = ?", album.ID).
			Update("cover_image_id", replacement.ID).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respond.Error(c, http.StatusNotFound, "Image not found")
			return
		}
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	// stored object removal is best-effort; the row is gone either way
	_ = h.store.Remove(c.Request.Context(), removedPath)

	respond.OK(c, gin.H{"status": "deleted"})
}

// ------------------------------
// DELETE /api/albums/:id  (cascades images)
// ------------------------------
func (h *Handler) Delete(c *gin.Context) {
	albumID := c.Param("id")

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var paths []string

	err := h.db.Transaction(func(tx *gorm.DB) error {
		var album albums.Album
		if err := tx.First(&album, "id = ? AND user_id = ?", albumID, userID).Error; err != nil {
			return err
		}

		var images []albums.Image
		if err := tx.Where("album_id = ?", album.ID).Find(&images).Error; err != nil {
			return err
		}
		for _, img := range images {
			paths = append(paths, img.Path)
		}

		// clear the cover pointer before the images go
		if err := tx.Model(&albums.Album{}).
			Where("id = ?", album.ID).
			Update("cover_image_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Delete(&albums.Image{}, "album_id = ?", album.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&albums.Album{}, "id = ?", album.ID).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respond.Error(c, http.StatusNotFound, "Album not found")
			return
		}
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	for _, p := range paths {
		_ = h.store.Remove(c.Request.Context(), p)
	}

	respond.OK(c, gin.H{"status": "deleted"})
}
