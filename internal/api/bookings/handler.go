package bookings

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"portfolio-app/internal/api/respond"
	"portfolio-app/internal/domain/bookings"
	"portfolio-app/internal/domain/users"
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

type bookingFields struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	JobType  string `json:"job_type"`
	Dates    string `json:"dates"`
	Location string `json:"location"`
	PayRate  string `json:"pay_rate"`
	Details  string `json:"details"`
}

func (f *bookingFields) validate() string {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	if f.Name == "" {
		return "Name is required"
	}
	if f.Email == "" {
		return "Email is required"
	}
	if !validate.Email(f.Email) {
		return "Invalid email format"
	}
	return ""
}

// ------------------------------
// GET /api/bookings
// ------------------------------
func (h *Handler) List(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var rows []bookings.Booking
	if err := h.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	respond.OK(c, rows)
}

// ------------------------------
// POST /api/bookings
// Status is forced to "pending" on creation; a caller-supplied status is
// accepted only through update.
// ------------------------------
func (h *Handler) Create(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req bookingFields
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		respond.Error(c, http.StatusBadRequest, msg)
		return
	}

	booking := bookings.Booking{
		UserID:   userID,
		Name:     req.Name,
		Email:    req.Email,
		JobType:  req.JobType,
		Dates:    req.Dates,
		Location: req.Location,
		PayRate:  req.PayRate,
		Details:  req.Details,
		Status:   bookings.StatusPending,
	}

	if err := h.db.Create(&booking).Error; err != nil {
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	respond.Created(c, booking)
}

// ------------------------------
// POST /api/bookings/guest
// No identity token. The booking is owned by the target model, resolved
// from model_id or username; the anonymous client only holds the email.
// ------------------------------
func (h *Handler) CreateAsGuest(c *gin.Context) {
	var req struct {
		bookingFields
		ModelID  string `json:"model_id"`
		Username string `json:"username"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		respond.Error(c, http.StatusBadRequest, msg)
		return
	}

	target, found := h.resolveTargetModel(req.ModelID, req.Username)
	if !found {
		respond.Error(c, http.StatusNotFound, "Model not found")
		return
	}

	booking := bookings.Booking{
		UserID:   target.ID,
		Name:     req.Name,
		Email:    req.Email,
		JobType:  req.JobType,
		Dates:    req.Dates,
		Location: req.Location,
		PayRate:  req.PayRate,
		Details:  req.Details,
		Status:   bookings.StatusPending,
	}

	if err := h.db.Create(&booking).Error; err != nil {
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	respond.Created(c, booking)
}

func (h *Handler) resolveTargetModel(modelID, username string) (users.User, bool) {
	var user users.User

	if modelID != "" {
		// bit size matches uint so the id cannot wrap on 32-bit builds
		id, err := strconv.ParseUint(modelID, 10, strconv.IntSize)
		if err == nil {
			if err := h.db.First(&user, uint(id)).Error; err == nil {
				return user, true
			}
		}
	}
	if username != "" {
		if err := h.db.Where("username = ?", username).First(&user).Error; err == nil {
			return user, true
		}
	}
	return users.User{}, false
}

// ------------------------------
// PUT /api/bookings/:id
// Missing and not-owned answer identically so booking ids of other models
// cannot be probed.
// ------------------------------
func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req struct {
		JobType  *string `json:"job_type"`
		Dates    *string `json:"dates"`
		Location *string `json:"location"`
		PayRate  *string `json:"pay_rate"`
		Details  *string `json:"details"`
		Status   *string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	if req.Status != nil && !bookings.ValidStatus(*req.Status) {
		respond.Error(c, http.StatusBadRequest, "Invalid status")
		return
	}

	var booking bookings.Booking
	if err := h.db.First(&booking, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respond.Error(c, http.StatusNotFound, "Booking not found")
			return
		}
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.JobType != nil {
		updates["job_type"] = *req.JobType
	}
	if req.Dates != nil {
		updates["dates"] = *req.Dates
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.PayRate != nil {
		updates["pay_rate"] = *req.PayRate
	}
	if req.Details != nil {
		updates["details"] = *req.Details
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	if len(updates) > 0 {
		if err := h.db.Model(&booking).Updates(updates).Error; err != nil {
			respond.Error(c, http.StatusInternalServerError, err.Error())
			return
		}
		if err := h.db.First(&booking, "id = ?", booking.ID).Error; err != nil {
			respond.Error(c, http.StatusInternalServerError, err.Error())
			return
		}
	}

	respond.OK(c, booking)
}

// ------------------------------
// DELETE /api/bookings/:id
// ------------------------------
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&bookings.Booking{}, "id = ? AND user_id = ?", id, userID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		// messages cascade with the booking
		return tx.Delete(&bookings.BookingMessage{}, "booking_id = ?", id).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respond.Error(c, http.StatusNotFound, "Booking not found")
			return
		}
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	respond.OK(c, gin.H{"status": "deleted"})
}
