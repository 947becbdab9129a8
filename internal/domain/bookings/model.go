package bookings

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
	StatusCompleted = "completed"
)

const (
	SenderModel  = "model"
	SenderClient = "client"
)

// ValidStatus reports whether s is one of the four booking states.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

// Booking is a job request from a client to a model. UserID is always the
// owning model's id, even on the guest path where the creator has no account.
type Booking struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uint   `gorm:"not null;index:idx_bookings_user_id" json:"-"`

	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"not null" json:"email"`
	JobType  string `json:"job_type,omitempty"`
	Dates    string `json:"dates,omitempty"`
	Location string `json:"location,omitempty"`
	PayRate  string `gorm:"column:pay_rate" json:"pay_rate,omitempty"`
	Details  string `json:"details,omitempty"`

	Status string `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	Messages []BookingMessage `gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;" json:"messages,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// BookingMessage is one chat turn. Messages are append-only; there is no
// edit or delete, they only go away when the booking does.
type BookingMessage struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	BookingID string `gorm:"type:uuid;not null;index:idx_booking_messages_booking_id" json:"booking_id"`

	Sender string `gorm:"type:varchar(10);not null" json:"sender"`
	Body   string `gorm:"not null" json:"body"`

	CreatedAt time.Time `json:"created_at"`
}

func (m *BookingMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
