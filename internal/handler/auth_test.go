package handler

import (
	"net/http"
	"testing"

	"portfolio-tracker/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func TestLogin_BannedUserRejected(t *testing.T) {
	db := newTestDB(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("Passw0rdX"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{
		Username:     "banned_user",
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		IsBanned:     true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	h := NewAuthHandler(db, "secret", 1, bcrypt.MinCost)

	c, w := testRequest(t, nil, http.MethodPost, `{"username":"banned_user","password":"Passw0rdX"}`, "")
	h.Login(c)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusForbidden, w.Body.String())
	}
}

func TestLogin_UnbannedUserAccepted(t *testing.T) {
	db := newTestDB(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("Passw0rdX"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{
		Username:     "normal_user",
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	h := NewAuthHandler(db, "secret", 1, bcrypt.MinCost)

	c, w := testRequest(t, nil, http.MethodPost, `{"username":"normal_user","password":"Passw0rdX"}`, "")
	h.Login(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}
}
