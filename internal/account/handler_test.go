package account

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AndyisCodingMate/housesync-product/internal/documents"
	"github.com/AndyisCodingMate/housesync-product/internal/profilepictures"
)

func newClaimRouter(docRepo *documents.MemoryRepo, picRepo *profilepictures.MemoryRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewHandler(NewService(docRepo, picRepo))

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userId", "user-1")
		c.Set("isGuest", false)
		c.Next()
	})
	handler.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func TestClaimGuestMigratesData(t *testing.T) {
	docRepo := documents.NewMemoryRepo()
	picRepo := profilepictures.NewMemoryRepo()
	router := newClaimRouter(docRepo, picRepo)

	guestID := "11111111-1111-1111-1111-111111111111"
	guestUserID := "guest:" + guestID

	doc := documents.Document{
		ID:        "doc-1",
		UserID:    guestUserID,
		FileName:  "lease.pdf",
		FileType:  "pdf",
		FileSize:  123,
		Category:  documents.CategoryIdentity,
		CreatedAt: time.Now().UTC(),
	}
	if err := docRepo.Create(context.Background(), doc); err != nil {
		t.Fatalf("create document: %v", err)
	}
	pic := profilepictures.ProfilePicture{
		ID:       "pic-1",
		UserID:   guestUserID,
		FileName: "avatar.png",
		IsActive: true,
	}
	if err := picRepo.Create(context.Background(), pic); err != nil {
		t.Fatalf("create picture: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/account/claim-guest", nil)
	req.Header.Set("X-Guest-Id", guestID)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	docs, err := docRepo.ListByUser(context.Background(), "user-1", 10, 0)
	if err != nil {
		t.Fatalf("list docs: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 migrated doc, got %d", len(docs))
	}

	active, err := picRepo.GetActive(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("get active picture: %v", err)
	}
	if active.ID != "pic-1" {
		t.Fatalf("migrated picture = %q", active.ID)
	}
}

func TestClaimGuestIdempotentAndIsolated(t *testing.T) {
	docRepo := documents.NewMemoryRepo()
	picRepo := profilepictures.NewMemoryRepo()
	router := newClaimRouter(docRepo, picRepo)

	guestID := "22222222-2222-2222-2222-222222222222"
	guestUserID := "guest:" + guestID

	doc := documents.Document{
		ID:        "doc-2",
		UserID:    guestUserID,
		FileName:  "lease.pdf",
		FileType:  "pdf",
		FileSize:  123,
		Category:  documents.CategoryMiscellaneous,
		CreatedAt: time.Now().UTC(),
	}
	if err := docRepo.Create(context.Background(), doc); err != nil {
		t.Fatalf("create document: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/account/claim-guest", nil)
	req.Header.Set("X-Guest-Id", guestID)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	req2 := httptest.NewRequest(http.MethodPost, "/api/v1/account/claim-guest", nil)
	req2.Header.Set("X-Guest-Id", guestID)
	resp2 := httptest.NewRecorder()
	router.ServeHTTP(resp2, req2)
	if resp2.Code != http.StatusOK {
		t.Fatalf("expected status 200 on idempotent call, got %d", resp2.Code)
	}

	docs, err := docRepo.ListByUser(context.Background(), "user-2", 10, 0)
	if err != nil {
		t.Fatalf("list docs: %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("expected no docs for other user, got %d", len(docs))
	}
}
