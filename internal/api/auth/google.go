package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"portfolio-app/config"
	"portfolio-app/internal/api/respond"
	"portfolio-app/internal/domain/users"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

func googleOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     config.GOOGLE_CLIENT_ID,
		ClientSecret: config.GOOGLE_CLIENT_SECRET,
		RedirectURL:  config.GOOGLE_REDIRECT_URL,
		Scopes: []string{
			"openid",
			"email",
			"profile",
		},
		Endpoint: google.Endpoint,
	}
}

func randomState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// GET /api/auth/google
func (h *Handler) GoogleStart(c *gin.Context) {
	state, err := randomState()
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "failed to generate state")
		return
	}

	// state travels in an HttpOnly cookie
	c.SetCookie(
		"oauth_state",
		state,
		300,
		"/",
		"",
		false,
		true,
	)

	url := googleOAuthConfig().AuthCodeURL(state, oauth2.AccessTypeOnline)
	c.Redirect(http.StatusFound, url)
}

// GET /api/auth/google/callback
func (h *Handler) GoogleCallback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if code == "" || state == "" {
		respond.Error(c, http.StatusBadRequest, "missing code/state")
		return
	}

	cookieState, err := c.Cookie("oauth_state")
	if err != nil || cookieState != state {
		respond.Error(c, http.StatusBadRequest, "invalid oauth state")
		return
	}

	tok, err := googleOAuthConfig().Exchange(c.Request.Context(), code)
	if err != nil {
		respond.Error(c, http.StatusUnauthorized, "failed to exchange code")
		return
	}

	rawIDToken, ok := tok.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		respond.Error(c, http.StatusUnauthorized, "missing id_token")
		return
	}

	claims, err := verifyGoogleIDToken(c, rawIDToken)
	if err != nil {
		respond.Error(c, http.StatusUnauthorized, err.Error())
		return
	}

	user, err := h.findOrCreateGoogleUser(claims)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "failed to create user")
		return
	}

	tokenString, err := issueAppJWT(user)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "could not create token")
		return
	}

	redirect := config.GOOGLE_FRONTEND_REDIRECT
	if redirect == "" {
		respond.OK(c, gin.H{"token": tokenString, "user": userDTO(user)})
		return
	}
	c.Redirect(http.StatusFound, redirect+"?token="+tokenString)
}

/* ---------------- helpers ---------------- */

type googleIDClaims struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
}

func verifyGoogleIDToken(c *gin.Context, rawIDToken string) (*googleIDClaims, error) {
	ctx := c.Request.Context()

	provider, err := oidc.NewProvider(ctx, "https://accounts.google.com")
	if err != nil {
		return nil, errors.New("failed to init google oidc provider")
	}

	verifier := provider.Verifier(&oidc.Config{
		ClientID: config.GOOGLE_CLIENT_ID,
	})

	idToken, err := verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, errors.New("invalid id_token")
	}

	var claims googleIDClaims
	if err := idToken.Claims(&claims); err != nil {
		return nil, errors.New("failed to decode token claims")
	}

	if claims.Email == "" || claims.Sub == "" {
		return nil, errors.New("token missing required claims")
	}

	return &claims, nil
}

func (h *Handler) findOrCreateGoogleUser(gc *googleIDClaims) (users.User, error) {
	var user users.User

	// 1) try by google_sub
	if gc.Sub != "" {
		if err := h.db.Where("google_sub = ?", gc.Sub).First(&user).Error; err == nil {
			return user, nil
		}
	}

	// 2) try by email, link google_sub if missing
	if err := h.db.Where("email = ?", gc.Email).First(&user).Error; err == nil {
		if user.GoogleSub == nil {
			sub := gc.Sub
			user.GoogleSub = &sub
			user.AuthProvider = "google"
			if err := h.db.Save(&user).Error; err != nil {
				return users.User{}, err
			}
		}
		return user, nil
	}

	// 3) create a new google user
	sub := gc.Sub
	username, err := h.availableUsername(gc.Email)
	if err != nil {
		return users.User{}, err
	}

	user = users.User{
		Name:         firstNonEmpty(gc.GivenName, gc.Name),
		Username:     username,
		Email:        gc.Email,
		Password:     nil,
		AuthProvider: "google",
		GoogleSub:    &sub,
	}

	if err := h.db.Create(&user).Error; err != nil {
		return users.User{}, err
	}
	return user, nil
}

// availableUsername derives a username from the email local part and
// suffixes a counter until it is free.
func (h *Handler) availableUsername(email string) (string, error) {
	base := strings.ToLower(strings.SplitN(email, "@", 2)[0])
	cleaned := make([]rune, 0, len(base))
	for _, r := range base {
		switch {
		case 'a' <= r && r <= 'z', '0' <= r && r <= '9', r == '_':
			cleaned = append(cleaned, r)
		}
	}
	if len(cleaned) < 3 {
		cleaned = append(cleaned, []rune("model")...)
	}
	candidate := string(cleaned)

	for i := 0; ; i++ {
		name := candidate
		if i > 0 {
			name = fmt.Sprintf("%s%d", candidate, i)
		}
		var existing users.User
		err := h.db.Where("username = ?", name).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return name, nil
		}
		if err != nil {
			return "", err
		}
	}
}

func firstNonEmpty(s ...string) string {
	for _, v := range s {
		if v != "" {
			return v
		}
	}
	return ""
}
