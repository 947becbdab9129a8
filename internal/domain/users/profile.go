package users

import "time"

// Profile holds the public-facing display fields of a user. Created lazily
// on first save, one row per user.
type Profile struct {
	ID     uint `gorm:"primaryKey" json:"-"`
	UserID uint `gorm:"not null;uniqueIndex:idx_profiles_user_id" json:"-"`

	DisplayName string `json:"display_name,omitempty"`
	Headline    string `json:"headline,omitempty"`
	Bio         string `json:"bio,omitempty"`

	// measurements, free text
	Height string `json:"height,omitempty"`
	Bust   string `json:"bust,omitempty"`
	Waist  string `json:"waist,omitempty"`
	Hips   string `json:"hips,omitempty"`
	Shoe   string `json:"shoe,omitempty"`

	PhotoPath  *string `json:"photo_path,omitempty"`
	HeaderPath *string `json:"header_path,omitempty"`

	// Visibility toggles are pointers so an explicit false survives Create;
	// a plain bool zero value would be dropped in favor of the column default.
	ShowPhoto   *bool `gorm:"not null;default:true" json:"show_photo"`
	ShowHeader  *bool `gorm:"not null;default:true" json:"show_header"`
	ShowStats   *bool `gorm:"not null;default:true" json:"show_stats"`
	ShowContact *bool `gorm:"not null;default:true" json:"show_contact"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Shown reports a visibility toggle; an unset toggle counts as visible.
func Shown(v *bool) bool {
	return v == nil || *v
}
