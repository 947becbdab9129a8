package bookings

import (
	"errors"
	"net/http"
	"strings"

	"portfolio-app/internal/api/respond"
	"portfolio-app/internal/domain/bookings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Chat access is dual-identity: the owning model proves itself with the
// identity token, the original requester with the booking's email. Nobody
// else gets in, booking id alone is not enough.

// loadOwnedBooking fetches a booking scoped to the authenticated owner.
func (h *Handler) loadOwnedBooking(c *gin.Context) (bookings.Booking, bool) {
	id := c.Param("id")

	userID, ok := mustUserID(c)
	if !ok {
		return bookings.Booking{}, false
	}

	var booking bookings.Booking
	if err := h.db.First(&booking, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respond.Error(c, http.StatusNotFound, "Booking not found")
		} else {
			respond.Error(c, http.StatusInternalServerError, err.Error())
		}
		return bookings.Booking{}, false
	}
	return booking, true
}

// loadGuestBooking fetches a booking proven by the requester email.
// Comparison is exact-string, no normalization.
func (h *Handler) loadGuestBooking(c *gin.Context, email string) (bookings.Booking, bool) {
	id := c.Param("id")

	if email == "" {
		respond.Error(c, http.StatusBadRequest, "Email is required")
		return bookings.Booking{}, false
	}

	var booking bookings.Booking
	if err := h.db.First(&booking, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respond.Error(c, http.StatusNotFound, "Booking not found")
		} else {
			respond.Error(c, http.StatusInternalServerError, err.Error())
		}
		return bookings.Booking{}, false
	}

	if booking.Email != email {
		// same outward signal as a missing booking
		respond.Error(c, http.StatusNotFound, "Booking not found")
		return bookings.Booking{}, false
	}
	return booking, true
}

func (h *Handler) listMessages(c *gin.Context, bookingID string) {
	var msgs []bookings.BookingMessage
	if err := h.db.
		Where("booking_id = ?", bookingID).
		Order("created_at ASC").
		Find(&msgs).Error; err != nil {
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond.OK(c, msgs)
}

func (h *Handler) appendMessage(c *gin.Context, bookingID, sender, body string) {
	body = strings.TrimSpace(body)
	if body == "" {
		respond.Error(c, http.StatusBadRequest, "Message body is required")
		return
	}

	msg := bookings.BookingMessage{
		BookingID: bookingID,
		Sender:    sender,
		Body:      body,
	}
	if err := h.db.Create(&msg).Error; err != nil {
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	respond.Created(c, msg)
}

// ------------------------------
// GET /api/bookings/:id/messages
// ------------------------------
func (h *Handler) ListMessages(c *gin.Context) {
	booking, ok := h.loadOwnedBooking(c)
	if !ok {
		return
	}
	h.listMessages(c, booking.ID)
}

// ------------------------------
// POST /api/bookings/:id/messages
// ------------------------------
func (h *Handler) CreateMessage(c *gin.Context) {
	booking, ok := h.loadOwnedBooking(c)
	if !ok {
		return
	}

	var req struct {
		Body string `json:"body"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	h.appendMessage(c, booking.ID, bookings.SenderModel, req.Body)
}

// ------------------------------
// GET /api/bookings/:id/guest-messages?email=...
// ------------------------------
func (h *Handler) ListGuestMessages(c *gin.Context) {
	booking, ok := h.loadGuestBooking(c, c.Query("email"))
	if !ok {
		return
	}
	h.listMessages(c, booking.ID)
}

// ------------------------------
// POST /api/bookings/:id/guest-messages
// ------------------------------
func (h *Handler) CreateGuestMessage(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
		Body  string `json:"body"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	booking, ok := h.loadGuestBooking(c, req.Email)
	if !ok {
		return
	}

	h.appendMessage(c, booking.ID, bookings.SenderClient, req.Body)
}
