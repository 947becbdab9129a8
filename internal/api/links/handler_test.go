package links

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"portfolio-app/database"
	"portfolio-app/internal/domain/links"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openLinksTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:links_%s_%d?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"), time.Now().UnixNano())
	db, errOpen := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if errOpen != nil {
		t.Fatalf("open db: %v", errOpen)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newLinksRouter(db *gorm.DB, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(db)

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", userID) })
	r.GET("/api/custom-links", h.List)
	r.POST("/api/custom-links", h.Create)
	r.PUT("/api/custom-links/:id", h.Update)
	r.DELETE("/api/custom-links/:id", h.Delete)
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

func TestCreateRejectsInvalidURL(t *testing.T) {
	db := openLinksTestDB(t)
	r := newLinksRouter(db, 1)

	w := doJSON(t, r, "POST", "/api/custom-links", `{"title":"Portfolio","url":"not-a-url"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.Success || resp.Error != "Invalid URL format" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestSequentialCreatesIncreaseDisplayOrder(t *testing.T) {
	db := openLinksTestDB(t)
	r := newLinksRouter(db, 1)

	for i, title := range []string{"One", "Two", "Three"} {
		w := doJSON(t, r, "POST", "/api/custom-links",
			fmt.Sprintf(`{"title":%q,"url":"https://example.com/%d"}`, title, i))
		if w.Code != http.StatusCreated {
			t.Fatalf("create %d: expected 201, got %d: %s", i, w.Code, w.Body.String())
		}
	}

	var rows []links.CustomLink
	if err := db.Where("user_id = ?", 1).Order("created_at ASC").Find(&rows).Error; err != nil {
		t.Fatalf("load links: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 links, got %d", len(rows))
	}
	for i, row := range rows {
		if row.DisplayOrder != i {
			t.Fatalf("link %d: expected display_order %d, got %d", i, i, row.DisplayOrder)
		}
	}
}

func TestDisplayOrderIsOwnerScoped(t *testing.T) {
	db := openLinksTestDB(t)
	first := newLinksRouter(db, 1)
	second := newLinksRouter(db, 2)

	doJSON(t, first, "POST", "/api/custom-links", `{"title":"A","url":"https://a.example.com"}`)
	doJSON(t, first, "POST", "/api/custom-links", `{"title":"B","url":"https://b.example.com"}`)
	w := doJSON(t, second, "POST", "/api/custom-links", `{"title":"C","url":"https://c.example.com"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}

	var row links.CustomLink
	if err := db.Where("user_id = ?", 2).First(&row).Error; err != nil {
		t.Fatalf("load link: %v", err)
	}
	if row.DisplayOrder != 0 {
		t.Fatalf("another owner's links must not affect the counter, got %d", row.DisplayOrder)
	}
}

func TestUpdateByNonOwnerLooksLikeMissing(t *testing.T) {
	db := openLinksTestDB(t)
	owner := newLinksRouter(db, 1)
	intruder := newLinksRouter(db, 2)

	w := doJSON(t, owner, "POST", "/api/custom-links", `{"title":"Portfolio","url":"https://example.com"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	var created struct {
		Data links.CustomLink `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create: %v", err)
	}

	wForeign := doJSON(t, intruder, "PUT", "/api/custom-links/"+created.Data.ID, `{"title":"Mine now"}`)
	wMissing := doJSON(t, intruder, "PUT", "/api/custom-links/no-such-id", `{"title":"Mine now"}`)

	if wForeign.Code != http.StatusNotFound || wMissing.Code != http.StatusNotFound {
		t.Fatalf("expected 404/404, got %d/%d", wForeign.Code, wMissing.Code)
	}
	if wForeign.Body.String() != wMissing.Body.String() {
		t.Fatalf("not-owned and missing must answer identically")
	}

	var row links.CustomLink
	db.First(&row, "id = ?", created.Data.ID)
	if row.Title != "Portfolio" {
		t.Fatalf("title must be unchanged, got %q", row.Title)
	}
}

func TestDeleteScopedToOwner(t *testing.T) {
	db := openLinksTestDB(t)
	owner := newLinksRouter(db, 1)
	intruder := newLinksRouter(db, 2)

	w := doJSON(t, owner, "POST", "/api/custom-links", `{"title":"Portfolio","url":"https://example.com"}`)
	var created struct {
		Data links.CustomLink `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create: %v", err)
	}

	if w := doJSON(t, intruder, "DELETE", "/api/custom-links/"+created.Data.ID, ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign delete, got %d", w.Code)
	}
	if w := doJSON(t, owner, "DELETE", "/api/custom-links/"+created.Data.ID, ""); w.Code != http.StatusOK {
		t.Fatalf("expected 200 for owner delete, got %d", w.Code)
	}

	var count int64
	db.Model(&links.CustomLink{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no links left, found %d", count)
	}
}
