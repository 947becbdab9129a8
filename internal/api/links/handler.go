package links

import (
	"errors"
	"net/http"
	"strings"

	"portfolio-app/internal/api/respond"
	"portfolio-app/internal/domain/links"
	"portfolio-app/internal/validate"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
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
// GET /api/custom-links
// ------------------------------
func (h *Handler) List(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var rows []links.CustomLink
	if err := h.db.
		Where("user_id = ?", userID).
		Order("display_order ASC, created_at ASC").
		Find(&rows).Error; err != nil {
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	respond.OK(c, rows)
}

// ------------------------------
// POST /api/custom-links
// display_order defaults to append (max+1 per owner); the client may pin
// an explicit value instead.
// ------------------------------
func (h *Handler) Create(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req struct {
		Title        string  `json:"title"`
		URL          string  `json:"url"`
		IconURL      *string `json:"icon_url"`
		Enabled      *bool   `json:"enabled"`
		DisplayOrder *int    `json:"display_order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	req.URL = strings.TrimSpace(req.URL)
	if req.Title == "" {
		respond.Error(c, http.StatusBadRequest, "Title is required")
		return
	}
	if req.URL == "" {
		respond.Error(c, http.StatusBadRequest, "URL is required")
		return
	}
	if !validate.URL(req.URL) {
		respond.Error(c, http.StatusBadRequest, "Invalid URL format")
		return
	}

	link := links.CustomLink{
		UserID:  userID,
		Title:   req.Title,
		URL:     req.URL,
		IconURL: req.IconURL,
		Enabled: true,
	}
	if req.Enabled != nil {
		link.Enabled = *req.Enabled
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if req.DisplayOrder != nil {
			link.DisplayOrder = *req.DisplayOrder
		} else {
			link.DisplayOrder = nextDisplayOrder(tx, userID)
		}
		return tx.Create(&link).Error
	})
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	respond.Created(c, link)
}

// nextDisplayOrder computes max+1 scoped to the owner. Ordering is
// advisory; a read failure appends at 0 rather than failing the create.
func nextDisplayOrder(tx *gorm.DB, userID uint) int {
	var max *int
	err := tx.Model(&links.CustomLink{}).
		Where("user_id = ?", userID).
		Select("MAX(display_order)").
		Scan(&max).Error
	if err != nil || max == nil {
		return 0
	}
	return *max + 1
}

// ------------------------------
// PUT /api/custom-links/:id
// ------------------------------
func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req struct {
		Title        *string `json:"title"`
		URL          *string `json:"url"`
		IconURL      *string `json:"icon_url"`
		Enabled      *bool   `json:"enabled"`
		DisplayOrder *int    `json:"display_order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		respond.Error(c, http.StatusBadRequest, "Title is required")
		return
	}
	if req.URL != nil && !validate.URL(*req.URL) {
		respond.Error(c, http.StatusBadRequest, "Invalid URL format")
		return
	}

	var link links.CustomLink
	if err := h.db.First(&link, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respond.Error(c, http.StatusNotFound, "Link not found")
			return
		}
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = strings.TrimSpace(*req.Title)
	}
	if req.URL != nil {
		updates["url"] = strings.TrimSpace(*req.URL)
	}
	if req.IconURL != nil {
		updates["icon_url"] = *req.IconURL
	}
	if req.Enabled != nil {
		updates["enabled"] = *req.Enabled
	}
	if req.DisplayOrder != nil {
		updates["display_order"] = *req.DisplayOrder
	}

	if len(updates) > 0 {
		if err := h.db.Model(&link).Updates(updates).Error; err != nil {
			respond.Error(c, http.StatusInternalServerError, err.Error())
			return
		}
		if err := h.db.First(&link, "id = ?", link.ID).Error; err != nil {
			respond.Error(c, http.StatusInternalServerError, err.Error())
			return
		}
	}

	respond.OK(c, link)
}

// ------------------------------
// DELETE /api/custom-links/:id
// ------------------------------
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	res := h.db.Delete(&links.CustomLink{}, "id = ? AND user_id = ?", id, userID)
	if res.Error != nil {
		respond.Error(c, http.StatusInternalServerError, res.Error.Error())
		return
	}
	if res.RowsAffected == 0 {
		respond.Error(c, http.StatusNotFound, "Link not found")
		return
	}

	respond.OK(c, gin.H{"status": "deleted"})
}
