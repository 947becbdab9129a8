package profile

import (
	"errors"
	"net/http"

	"portfolio-app/internal/api/respond"
	"portfolio-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// URLResolver turns stored object keys into browser-facing URLs.
type URLResolver interface {
	PublicURL(key string) string
}

type Handler struct {
	db    *gorm.DB
	store URLResolver
}

func NewHandler(db *gorm.DB, store URLResolver) *Handler {
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
// GET /api/profile
// Returns defaults when the row does not exist yet; the row itself is only
// created on first save.
// ------------------------------
func (h *Handler) Get(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var p users.Profile
	err := h.db.Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		p = defaultProfile(userID)
	} else if err != nil {
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	respond.OK(c, h.toOwnerDTO(p))
}

// ------------------------------
// PUT /api/profile  (lazy create on first save)
// ------------------------------
func (h *Handler) Save(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req struct {
		DisplayName *string `json:"display_name"`
		Headline    *string `json:"headline"`
		Bio         *string `json:"bio"`
		Height      *string `json:"height"`
		Bust        *string `json:"bust"`
		Waist       *string `json:"waist"`
		Hips        *string `json:"hips"`
		Shoe        *string `json:"shoe"`
		PhotoPath   *string `json:"photo_path"`
		HeaderPath  *string `json:"header_path"`
		ShowPhoto   *bool   `json:"show_photo"`
		ShowHeader  *bool   `json:"show_header"`
		ShowStats   *bool   `json:"show_stats"`
		ShowContact *bool   `json:"show_contact"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	var p users.Profile
	err := h.db.Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		p = defaultProfile(userID)
		if err := h.db.Create(&p).Error; err != nil {
			respond.Error(c, http.StatusInternalServerError, err.Error())
			return
		}
	} else if err != nil {
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.DisplayName != nil {
		updates["display_name"] = *req.DisplayName
	}
	if req.Headline != nil {
		updates["headline"] = *req.Headline
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.Height != nil {
		updates["height"] = *req.Height
	}
	if req.Bust != nil {
		updates["bust"] = *req.Bust
	}
	if req.Waist != nil {
		updates["waist"] = *req.Waist
	}
	if req.Hips != nil {
		updates["hips"] = *req.Hips
	}
	if req.Shoe != nil {
		updates["shoe"] = *req.Shoe
	}
	if req.PhotoPath != nil {
		updates["photo_path"] = *req.PhotoPath
	}
	if req.HeaderPath != nil {
		updates["header_path"] = *req.HeaderPath
	}
	if req.ShowPhoto != nil {
		updates["show_photo"] = *req.ShowPhoto
	}
	if req.ShowHeader != nil {
		updates["show_header"] = *req.ShowHeader
	}
	if req.ShowStats != nil {
		updates["show_stats"] = *req.ShowStats
	}
	if req.ShowContact != nil {
		updates["show_contact"] = *req.ShowContact
	}

	if len(updates) > 0 {
		if err := h.db.Model(&p).Updates(updates).Error; err != nil {
			respond.Error(c, http.StatusInternalServerError, err.Error())
			return
		}
		if err := h.db.Where("user_id = ?", userID).First(&p).Error; err != nil {
			respond.Error(c, http.StatusInternalServerError, err.Error())
			return
		}
	}

	respond.OK(c, h.toOwnerDTO(p))
}

// ------------------------------
// GET /api/profiles/:username  (public, honors visibility toggles)
// ------------------------------
func (h *Handler) GetPublic(c *gin.Context) {
	username := c.Param("username")

	var user users.User
	if err := h.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respond.Error(c, http.StatusNotFound, "Profile not found")
			return
		}
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	var p users.Profile
	err := h.db.Where("user_id = ?", user.ID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		p = defaultProfile(user.ID)
	} else if err != nil {
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	respond.OK(c, h.toPublicDTO(user, p))
}

func defaultProfile(userID uint) users.Profile {
	shown := true
	return users.Profile{
		UserID:      userID,
		ShowPhoto:   &shown,
		ShowHeader:  &shown,
		ShowStats:   &shown,
		ShowContact: &shown,
	}
}
