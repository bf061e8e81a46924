package store

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/aryamehta0302/handfield/internal/gesture"
)

func testProfile(name string) *Profile {
	return &Profile{
		ID:     uuid.New().String(),
		Name:   name,
		Tuning: gesture.DefaultTuning(),
	}
}

func TestProfileRepository_CreateAndGet(t *testing.T) {
	s := newTestStore(t)
	repo := s.Profiles()

	p := testProfile("default")
	p.Tuning.PinchDistanceMax = 0.09

	if err := repo.Create(p); err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}

	got, err := repo.GetByID(p.ID)
	if err != nil {
		t.Fatalf("failed to get profile: %v", err)
	}
	if got.Name != "default" {
		t.Errorf("name = %q, want %q", got.Name, "default")
	}
	if got.Tuning != p.Tuning {
		t.Errorf("tuning = %+v, want %+v", got.Tuning, p.Tuning)
	}
	if got.CreatedAt.IsZero() {
		t.Error("created_at should be set")
	}
}

func TestProfileRepository_GetByName(t *testing.T) {
	s := newTestStore(t)
	repo := s.Profiles()

	p := testProfile("calibrated")
	if err := repo.Create(p); err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}

	got, err := repo.GetByName("calibrated")
	if err != nil {
		t.Fatalf("failed to get profile by name: %v", err)
	}
	if got.ID != p.ID {
		t.Errorf("id = %q, want %q", got.ID, p.ID)
	}
}

func TestProfileRepository_GetMissing(t *testing.T) {
	s := newTestStore(t)
	repo := s.Profiles()

	if _, err := repo.GetByID("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID error = %v, want ErrNotFound", err)
	}
	if _, err := repo.GetByName("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByName error = %v, want ErrNotFound", err)
	}
}

func TestProfileRepository_DuplicateName(t *testing.T) {
	s := newTestStore(t)
	repo := s.Profiles()

	if err := repo.Create(testProfile("dup")); err != nil {
		t.Fatalf("failed to create first profile: %v", err)
	}
	if err := repo.Create(testProfile("dup")); err == nil {
		t.Fatal("expected unique constraint error for duplicate name")
	}
}

func TestProfileRepository_List(t *testing.T) {
	s := newTestStore(t)
	repo := s.Profiles()

	for _, name := range []string{"a", "b", "c"} {
		if err := repo.Create(testProfile(name)); err != nil {
			t.Fatalf("failed to create profile %q: %v", name, err)
		}
	}

	profiles, err := repo.List()
	if err != nil {
		t.Fatalf("failed to list profiles: %v", err)
	}
	if len(profiles) != 3 {
		t.Errorf("list returned %d profiles, want 3", len(profiles))
	}
}

func TestProfileRepository_Update(t *testing.T) {
	s := newTestStore(t)
	repo := s.Profiles()

	p := testProfile("tweak")
	if err := repo.Create(p); err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}

	p.Name = "tweaked"
	p.Tuning.StableRunLength = 5
	if err := repo.Update(p); err != nil {
		t.Fatalf("failed to update profile: %v", err)
	}

	got, err := repo.GetByID(p.ID)
	if err != nil {
		t.Fatalf("failed to get profile: %v", err)
	}
	if got.Name != "tweaked" {
		t.Errorf("name = %q, want %q", got.Name, "tweaked")
	}
	if got.Tuning.StableRunLength != 5 {
		t.Errorf("stable run length = %d, want 5", got.Tuning.StableRunLength)
	}
}

func TestProfileRepository_UpdateMissing(t *testing.T) {
	s := newTestStore(t)

	p := testProfile("ghost")
	if err := s.Profiles().Update(p); !errors.Is(err, ErrNotFound) {
		t.Errorf("update error = %v, want ErrNotFound", err)
	}
}

func TestProfileRepository_Delete(t *testing.T) {
	s := newTestStore(t)
	repo := s.Profiles()

	p := testProfile("gone")
	if err := repo.Create(p); err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}

	if err := repo.Delete(p.ID); err != nil {
		t.Fatalf("failed to delete profile: %v", err)
	}
	if _, err := repo.GetByID(p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("get after delete error = %v, want ErrNotFound", err)
	}
	if err := repo.Delete(p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}

func TestSettingsRepository_SetAndGet(t *testing.T) {
	s := newTestStore(t)
	repo := s.Settings()

	if err := repo.Set(SettingActiveProfile, "abc-123"); err != nil {
		t.Fatalf("failed to set setting: %v", err)
	}

	got, err := repo.Get(SettingActiveProfile)
	if err != nil {
		t.Fatalf("failed to get setting: %v", err)
	}
	if got != "abc-123" {
		t.Errorf("value = %q, want %q", got, "abc-123")
	}
}

func TestSettingsRepository_SetOverwrites(t *testing.T) {
	s := newTestStore(t)
	repo := s.Settings()

	if err := repo.Set("camera_id", "0"); err != nil {
		t.Fatalf("failed to set setting: %v", err)
	}
	if err := repo.Set("camera_id", "1"); err != nil {
		t.Fatalf("failed to overwrite setting: %v", err)
	}

	got, err := repo.Get("camera_id")
	if err != nil {
		t.Fatalf("failed to get setting: %v", err)
	}
	if got != "1" {
		t.Errorf("value = %q, want %q", got, "1")
	}
}

func TestSettingsRepository_GetMissing(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Settings().Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("get error = %v, want ErrNotFound", err)
	}
}

func TestSettingsRepository_All(t *testing.T) {
	s := newTestStore(t)
	repo := s.Settings()

	repo.Set("a", "1")
	repo.Set("b", "2")

	all, err := repo.All()
	if err != nil {
		t.Fatalf("failed to list settings: %v", err)
	}
	if len(all) != 2 || all["a"] != "1" || all["b"] != "2" {
		t.Errorf("all = %v, want map[a:1 b:2]", all)
	}
}

func TestSettingsRepository_DeleteMissingIsNoop(t *testing.T) {
	s := newTestStore(t)

	if err := s.Settings().Delete("nope"); err != nil {
		t.Errorf("delete of missing key should not error: %v", err)
	}
}
