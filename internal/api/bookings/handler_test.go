package bookings

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"portfolio-app/database"
	"portfolio-app/internal/domain/bookings"
	"portfolio-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openBookingsTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:bookings_%s_%d?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"), time.Now().UnixNano())
	db, errOpen := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if errOpen != nil {
		t.Fatalf("open db: %v", errOpen)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newBookingsRouter(db *gorm.DB, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(db)

	r := gin.New()
	if userID != 0 {
		r.Use(func(c *gin.Context) { c.Set("user_id", userID) })
	}
	r.GET("/api/bookings", h.List)
	r.POST("/api/bookings", h.Create)
	r.POST("/api/bookings/guest", h.CreateAsGuest)
	r.PUT("/api/bookings/:id", h.Update)
	r.DELETE("/api/bookings/:id", h.Delete)
	r.GET("/api/bookings/:id/messages", h.ListMessages)
	r.POST("/api/bookings/:id/messages", h.CreateMessage)
	r.GET("/api/bookings/:id/guest-messages", h.ListGuestMessages)
	r.POST("/api/bookings/:id/guest-messages", h.CreateGuestMessage)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedModel(t *testing.T, db *gorm.DB, username string) users.User {
	t.Helper()
	user := users.User{Name: "Test Model", Username: username, Email: username + "@example.com"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestCreateForcesPendingStatus(t *testing.T) {
	db := openBookingsTestDB(t)
	model := seedModel(t, db, "mona")
	r := newBookingsRouter(db, model.ID)

	w := doJSON(t, r, "POST", "/api/bookings",
		`{"name":"Acme","email":"client@agency.com","job_type":"editorial","status":"accepted"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var row bookings.Booking
	if err := db.First(&row).Error; err != nil {
		t.Fatalf("load booking: %v", err)
	}
	if row.Status != bookings.StatusPending {
		t.Fatalf("expected status pending, got %q", row.Status)
	}
	if row.UserID != model.ID {
		t.Fatalf("expected owner %d, got %d", model.ID, row.UserID)
	}
}

func TestCreateRejectsInvalidEmail(t *testing.T) {
	db := openBookingsTestDB(t)
	model := seedModel(t, db, "mona")
	r := newBookingsRouter(db, model.ID)

	w := doJSON(t, r, "POST", "/api/bookings", `{"name":"Acme","email":"not-an-email"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&bookings.Booking{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no persisted booking, found %d", count)
	}
}

func TestUpdateByNonOwnerLooksLikeMissing(t *testing.T) {
	db := openBookingsTestDB(t)
	owner := seedModel(t, db, "owner")
	other := seedModel(t, db, "other")

	booking := bookings.Booking{UserID: owner.ID, Name: "Acme", Email: "client@agency.com", Status: bookings.StatusPending}
	if err := db.Create(&booking).Error; err != nil {
		t.Fatalf("seed booking: %v", err)
	}

	intruder := newBookingsRouter(db, other.ID)
	wForeign := doJSON(t, intruder, "PUT", "/api/bookings/"+booking.ID, `{"status":"accepted"}`)
	wMissing := doJSON(t, intruder, "PUT", "/api/bookings/no-such-id", `{"status":"accepted"}`)

	if wForeign.Code != http.StatusNotFound || wMissing.Code != http.StatusNotFound {
		t.Fatalf("expected 404/404, got %d/%d", wForeign.Code, wMissing.Code)
	}
	if wForeign.Body.String() != wMissing.Body.String() {
		t.Fatalf("not-owned and missing must answer identically: %q vs %q",
			wForeign.Body.String(), wMissing.Body.String())
	}

	var row bookings.Booking
	db.First(&row, "id = ?", booking.ID)
	if row.Status != bookings.StatusPending {
		t.Fatalf("status must be unchanged, got %q", row.Status)
	}
}

func TestUpdateRejectsInvalidStatus(t *testing.T) {
	db := openBookingsTestDB(t)
	owner := seedModel(t, db, "owner")
	booking := bookings.Booking{UserID: owner.ID, Name: "Acme", Email: "client@agency.com", Status: bookings.StatusPending}
	if err := db.Create(&booking).Error; err != nil {
		t.Fatalf("seed booking: %v", err)
	}

	r := newBookingsRouter(db, owner.ID)
	w := doJSON(t, r, "PUT", "/api/bookings/"+booking.ID, `{"status":"archived"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGuestCreateUnknownTarget(t *testing.T) {
	db := openBookingsTestDB(t)
	r := newBookingsRouter(db, 0)

	w := doJSON(t, r, "POST", "/api/bookings/guest",
		`{"model_id":"X","name":"A","email":"a@b.com"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&bookings.Booking{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no persisted booking, found %d", count)
	}
}

func TestGuestCreateModelIDBeyond32BitsMissesLowIDs(t *testing.T) {
	db := openBookingsTestDB(t)
	seedModel(t, db, "mona") // first row, id 1

	r := newBookingsRouter(db, 0)
	// 2^32+1 would land on id 1 if the parsed id were truncated to 32 bits
	w := doJSON(t, r, "POST", "/api/bookings/guest",
		`{"model_id":"4294967297","name":"A","email":"a@b.com"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&bookings.Booking{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no persisted booking, found %d", count)
	}
}

func TestGuestCreateRoundTrip(t *testing.T) {
	db := openBookingsTestDB(t)
	model := seedModel(t, db, "mona")

	guest := newBookingsRouter(db, 0)
	w := doJSON(t, guest, "POST", "/api/bookings/guest",
		`{"username":"mona","name":"Acme Casting","email":"client@agency.com","job_type":"runway","dates":"June 1-3","location":"Milan","pay_rate":"500/day","details":"two shows"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var created bookings.Booking
	if err := db.First(&created).Error; err != nil {
		t.Fatalf("load booking: %v", err)
	}
	if created.UserID != model.ID {
		t.Fatalf("guest booking must be owned by the target model: got %d, want %d", created.UserID, model.ID)
	}
	if created.Status != bookings.StatusPending {
		t.Fatalf("expected pending, got %q", created.Status)
	}

	// the owning model sees the same field values through the authed list
	owner := newBookingsRouter(db, model.ID)
	wList := doJSON(t, owner, "GET", "/api/bookings", "")
	if wList.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", wList.Code)
	}

	var resp struct {
		Data []bookings.Booking `json:"data"`
	}
	if err := json.Unmarshal(wList.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(resp.Data) != 1 {
		t.Fatalf("expected one booking, got %d", len(resp.Data))
	}
	got := resp.Data[0]
	if got.Name != "Acme Casting" || got.Email != "client@agency.com" ||
		got.JobType != "runway" || got.Dates != "June 1-3" ||
		got.Location != "Milan" || got.PayRate != "500/day" || got.Details != "two shows" {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
}

func TestDeleteCascadesMessages(t *testing.T) {
	db := openBookingsTestDB(t)
	owner := seedModel(t, db, "owner")
	booking := bookings.Booking{UserID: owner.ID, Name: "Acme", Email: "client@agency.com", Status: bookings.StatusPending}
	if err := db.Create(&booking).Error; err != nil {
		t.Fatalf("seed booking: %v", err)
	}
	msg := bookings.BookingMessage{BookingID: booking.ID, Sender: bookings.SenderClient, Body: "hello"}
	if err := db.Create(&msg).Error; err != nil {
		t.Fatalf("seed message: %v", err)
	}

	r := newBookingsRouter(db, owner.ID)
	w := doJSON(t, r, "DELETE", "/api/bookings/"+booking.ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&bookings.BookingMessage{}).Where("booking_id = ?", booking.ID).Count(&count)
	if count != 0 {
		t.Fatalf("messages must go with the booking, found %d", count)
	}
}
