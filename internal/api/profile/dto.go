package profile

import "portfolio-app/internal/domain/users"

type StatsDTO struct {
	Height string `json:"height,omitempty"`
	Bust   string `json:"bust,omitempty"`
	Waist  string `json:"waist,omitempty"`
	Hips   string `json:"hips,omitempty"`
	Shoe   string `json:"shoe,omitempty"`
}

type OwnerProfileDTO struct {
	DisplayName string    `json:"display_name"`
	Headline    string    `json:"headline"`
	Bio         string    `json:"bio"`
	Stats       StatsDTO  `json:"stats"`
	PhotoPath   *string   `json:"photo_path,omitempty"`
	PhotoURL    *string   `json:"photo_url,omitempty"`
	HeaderPath  *string   `json:"header_path,omitempty"`
	HeaderURL   *string   `json:"header_url,omitempty"`
	ShowPhoto   bool      `json:"show_photo"`
	ShowHeader  bool      `json:"show_header"`
	ShowStats   bool      `json:"show_stats"`
	ShowContact bool      `json:"show_contact"`
}

type PublicProfileDTO struct {
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Headline    string    `json:"headline"`
	Bio         string    `json:"bio"`
	Stats       *StatsDTO `json:"stats,omitempty"`
	PhotoURL    *string   `json:"photo_url,omitempty"`
	HeaderURL   *string   `json:"header_url,omitempty"`
	Email       *string   `json:"email,omitempty"`
}

func (h *Handler) resolve(path *string) *string {
	if path == nil || *path == "" {
		return nil
	}
	u := h.store.PublicURL(*path)
	return &u
}

func (h *Handler) toOwnerDTO(p users.Profile) OwnerProfileDTO {
	return OwnerProfileDTO{
		DisplayName: p.DisplayName,
		Headline:    p.Headline,
		Bio:         p.Bio,
		Stats: StatsDTO{
			Height: p.Height,
			Bust:   p.Bust,
			Waist:  p.Waist,
			Hips:   p.Hips,
			Shoe:   p.Shoe,
		},
		PhotoPath:   p.PhotoPath,
		PhotoURL:    h.resolve(p.PhotoPath),
		HeaderPath:  p.HeaderPath,
		HeaderURL:   h.resolve(p.HeaderPath),
		ShowPhoto:   users.Shown(p.ShowPhoto),
		ShowHeader:  users.Shown(p.ShowHeader),
		ShowStats:   users.Shown(p.ShowStats),
		ShowContact: users.Shown(p.ShowContact),
	}
}

// toPublicDTO elides everything a hidden toggle covers.
func (h *Handler) toPublicDTO(user users.User, p users.Profile) PublicProfileDTO {
	dto := PublicProfileDTO{
		Username:    user.Username,
		DisplayName: p.DisplayName,
		Headline:    p.Headline,
		Bio:         p.Bio,
	}
	if dto.DisplayName == "" {
		dto.DisplayName = user.Name
	}
	if users.Shown(p.ShowStats) {
		dto.Stats = &StatsDTO{
			Height: p.Height,
			Bust:   p.Bust,
			Waist:  p.Waist,
			Hips:   p.Hips,
			Shoe:   p.Shoe,
		}
	}
	if users.Shown(p.ShowPhoto) {
		dto.PhotoURL = h.resolve(p.PhotoPath)
	}
	if users.Shown(p.ShowHeader) {
		dto.HeaderURL = h.resolve(p.HeaderPath)
	}
	if users.Shown(p.ShowContact) {
		email := user.Email
		dto.Email = &email
	}
	return dto
}
