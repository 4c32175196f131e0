package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/dto"
	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func newFavoriteService(db *gorm.DB) *FavoriteService {
	return NewFavoriteService(db, NewCatalogService(db))
}

func favoritesCount(t *testing.T, db *gorm.DB, id uuid.UUID) int {
	t.Helper()
	var m models.Model
	if err := db.First(&m, "id = ?", id).Error; err != nil {
		t.Fatalf("load model: %v", err)
	}
	return m.FavoritesCount
}

func TestFavoriteRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := newFavoriteService(db)
	ctx := context.Background()

	u := createUser(t, db, "jane")
	m := createModel(t, db, models.CategoryForeign, "lena")

	added, err := svc.Add(ctx, u.ID, &dto.AddFavoriteRequest{ModelID: m.ID.String()})
	if err != nil || !added {
		t.Fatalf("add: added=%v err=%v", added, err)
	}

	favs, err := svc.List(ctx, u.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(favs) != 1 || favs[0].ModelID != m.ID.String() {
		t.Fatalf("expected favorite for %s, got %+v", m.ID, favs)
	}
	if favs[0].Category != models.CategoryForeign || favs[0].Name != "lena" || favs[0].FavoritesCount != 1 {
		t.Fatalf("favorite not enriched from live model: %+v", favs[0])
	}

	var stored models.Favorite
	db.First(&stored, "user_id = ?", u.ID)
	if stored.Name != "lena" || stored.Category != "Foreign" || stored.ImageURL != m.ImageURL {
		t.Fatalf("snapshot not filled from model: %+v", stored)
	}

	removed, err := svc.Remove(ctx, u.ID, m.ID.String())
	if err != nil || !removed {
		t.Fatalf("remove: removed=%v err=%v", removed, err)
	}
	favs, _ = svc.List(ctx, u.ID)
	if len(favs) != 0 {
		t.Fatalf("expected no favorites after remove, got %+v", favs)
	}
	if n := favoritesCount(t, db, m.ID); n != 0 {
		t.Fatalf("expected favorites_count 0, got %d", n)
	}
}

func TestAddFavoriteIsIdempotentPerModel(t *testing.T) {
	db := newTestDB(t)
	svc := newFavoriteService(db)
	ctx := context.Background()

	u := createUser(t, db, "jane")
	m := createModel(t, db, models.CategoryLocal, "ana")

	first := &dto.AddFavoriteRequest{ModelID: m.ID.String(), ImageURL: "https://img/a.jpg"}
	second := &dto.AddFavoriteRequest{ModelID: m.ID.String(), ImageURL: "https://img/b.jpg"}

	if added, err := svc.Add(ctx, u.ID, first); err != nil || !added {
		t.Fatalf("first add: %v %v", added, err)
	}
	if added, err := svc.Add(ctx, u.ID, first); err != nil || added {
		t.Fatalf("identical add should be a no-op: %v %v", added, err)
	}
	if added, err := svc.Add(ctx, u.ID, second); err != nil || added {
		t.Fatalf("add with different snapshot should be a no-op: %v %v", added, err)
	}

	var rows int64
	db.Model(&models.Favorite{}).Where("user_id = ?", u.ID).Count(&rows)
	if rows != 1 {
		t.Fatalf("expected exactly one favorite row, got %d", rows)
	}
	if n := favoritesCount(t, db, m.ID); n != 1 {
		t.Fatalf("expected favorites_count 1, got %d", n)
	}
}

func TestRemoveFavoriteNeverGoesNegative(t *testing.T) {
	db := newTestDB(t)
	svc := newFavoriteService(db)
	ctx := context.Background()

	u := createUser(t, db, "jane")
	m := createModel(t, db, models.CategoryLocal, "ana")

	removed, err := svc.Remove(ctx, u.ID, m.ID.String())
	if err != nil || removed {
		t.Fatalf("remove without add: removed=%v err=%v", removed, err)
	}
	if n := favoritesCount(t, db, m.ID); n != 0 {
		t.Fatalf("expected favorites_count 0, got %d", n)
	}
}

func TestFavoritesCountAcrossUsers(t *testing.T) {
	db := newTestDB(t)
	svc := newFavoriteService(db)
	ctx := context.Background()

	m := createModel(t, db, models.CategoryLocal, "ana")
	a := createUser(t, db, "a")
	b := createUser(t, db, "b")

	svc.Add(ctx, a.ID, &dto.AddFavoriteRequest{ModelID: m.ID.String()})
	svc.Add(ctx, b.ID, &dto.AddFavoriteRequest{ModelID: m.ID.String()})
	if n := favoritesCount(t, db, m.ID); n != 2 {
		t.Fatalf("expected 2, got %d", n)
	}
	svc.Remove(ctx, a.ID, m.ID.String())
	if n := favoritesCount(t, db, m.ID); n != 1 {
		t.Fatalf("expected 1, got %d", n)
	}
}

func TestListDropsDeletedModels(t *testing.T) {
	db := newTestDB(t)
	svc := newFavoriteService(db)
	catalog := NewCatalogService(db)
	ctx := context.Background()

	u := createUser(t, db, "jane")
	keep := createModel(t, db, models.CategoryLocal, "keep")
	gone := createModel(t, db, models.CategoryLocal, "gone")

	svc.Add(ctx, u.ID, &dto.AddFavoriteRequest{ModelID: keep.ID.String()})
	svc.Add(ctx, u.ID, &dto.AddFavoriteRequest{ModelID: gone.ID.String()})
	if _, err := catalog.Delete(ctx, gone.ID.String()); err != nil {
		t.Fatalf("delete model: %v", err)
	}

	favs, err := svc.List(ctx, u.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(favs) != 1 || favs[0].ModelID != keep.ID.String() {
		t.Fatalf("expected only the surviving model, got %+v", favs)
	}

	var rows int64
	db.Model(&models.Favorite{}).Where("user_id = ?", u.ID).Count(&rows)
	if rows != 2 {
		t.Fatalf("dangling favorite row should be kept, got %d rows", rows)
	}
}

func TestAddFavoriteForMissingModelKeepsRow(t *testing.T) {
	db := newTestDB(t)
	svc := newFavoriteService(db)
	ctx := context.Background()

	u := createUser(t, db, "jane")
	added, err := svc.Add(ctx, u.ID, &dto.AddFavoriteRequest{ModelID: uuid.NewString(), Name: "ghost"})
	if err != nil || !added {
		t.Fatalf("add: added=%v err=%v", added, err)
	}
	favs, _ := svc.List(ctx, u.ID)
	if len(favs) != 0 {
		t.Fatalf("unresolved favorite must not be listed, got %+v", favs)
	}
}

func TestFavoriteErrors(t *testing.T) {
	db := newTestDB(t)
	svc := newFavoriteService(db)
	ctx := context.Background()
	m := createModel(t, db, models.CategoryLocal, "ana")

	if _, err := svc.Add(ctx, uuid.New(), &dto.AddFavoriteRequest{ModelID: m.ID.String()}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	u := createUser(t, db, "jane")
	if _, err := svc.Add(ctx, u.ID, &dto.AddFavoriteRequest{ModelID: "../x"}); !errors.Is(err, ErrInvalidModelID) {
		t.Fatalf("expected ErrInvalidModelID, got %v", err)
	}
	if _, err := svc.List(ctx, uuid.New()); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestReconcileRepairsDrift(t *testing.T) {
	db := newTestDB(t)
	svc := newFavoriteService(db)
	ctx := context.Background()

	u := createUser(t, db, "jane")
	m := createModel(t, db, models.CategoryLocal, "ana")
	other := createModel(t, db, models.CategoryLocal, "bea")
	svc.Add(ctx, u.ID, &dto.AddFavoriteRequest{ModelID: m.ID.String()})

	db.Model(&models.Model{}).Where("id = ?", m.ID).UpdateColumn("favorites_count", 5)
	db.Model(&models.Model{}).Where("id = ?", other.ID).UpdateColumn("favorites_count", -2)

	updated, err := svc.Reconcile(ctx)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if updated != 2 {
		t.Fatalf("expected 2 corrected models, got %d", updated)
	}
	if n := favoritesCount(t, db, m.ID); n != 1 {
		t.Fatalf("expected 1, got %d", n)
	}
	if n := favoritesCount(t, db, other.ID); n != 0 {
		t.Fatalf("expected 0, got %d", n)
	}
}

func TestDeleteUserReleasesFavorites(t *testing.T) {
	db := newTestDB(t)
	favs := newFavoriteService(db)
	users := NewUserService(db)
	bookings := NewBookingService(db)
	ctx := context.Background()

	u := createUser(t, db, "jane")
	m := createModel(t, db, models.CategoryLocal, "ana")
	favs.Add(ctx, u.ID, &dto.AddFavoriteRequest{ModelID: m.ID.String()})
	if _, err := bookings.Create(ctx, u.ID, validBookingRequest(m)); err != nil {
		t.Fatalf("create booking: %v", err)
	}

	if err := users.Delete(ctx, u.ID.String()); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if n := favoritesCount(t, db, m.ID); n != 0 {
		t.Fatalf("expected favorites_count 0, got %d", n)
	}
	var bookingRows int64
	db.Model(&models.Booking{}).Count(&bookingRows)
	if bookingRows != 1 {
		t.Fatalf("bookings must survive user deletion, got %d", bookingRows)
	}
	if err := users.Delete(ctx, u.ID.String()); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if err := users.Delete(ctx, "nope"); !errors.Is(err, ErrInvalidUserID) {
		t.Fatalf("expected ErrInvalidUserID, got %v", err)
	}
}
