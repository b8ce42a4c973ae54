package repository

import (
	"context"
	"errors"
	"testing"
)

func TestCreateUser(t *testing.T) {
	r := newTestRepo(t)

	user := mustCreateUser(t, r, "Alice", "alice@example.com")
	if user.ID == 0 {
		t.Fatal("expected non-zero ID")
	}
	if user.CreatedAt.IsZero() {
		t.Fatal("expected non-zero CreatedAt")
	}

	found, err := r.FindUserByEmail(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}
	if found.ID != user.ID || found.Name != "Alice" {
		t.Fatalf("unexpected user: %+v", found)
	}
}

func TestFindUserByEmail_NotFound(t *testing.T) {
	r := newTestRepo(t)

	_, err := r.FindUserByEmail(context.Background(), "missing@example.com")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEmailTaken(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	alice := mustCreateUser(t, r, "Alice", "alice@example.com")
	mustCreateUser(t, r, "Bob", "bob@example.com")

	taken, err := r.EmailTaken(ctx, "bob@example.com", alice.ID)
	if err != nil {
		t.Fatalf("email taken: %v", err)
	}
	if !taken {
		t.Fatal("expected bob's email to be taken for alice")
	}

	// A user's own email does not count as taken.
	taken, err = r.EmailTaken(ctx, "alice@example.com", alice.ID)
	if err != nil {
		t.Fatalf("email taken: %v", err)
	}
	if taken {
		t.Fatal("own email must not count as taken")
	}

	taken, err = r.EmailTaken(ctx, "free@example.com", alice.ID)
	if err != nil {
		t.Fatalf("email taken: %v", err)
	}
	if taken {
		t.Fatal("unused email must not count as taken")
	}
}

func TestUpdateUserProfile(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	alice := mustCreateUser(t, r, "Alice", "alice@example.com")
	if err := r.UpdateUserProfile(ctx, alice.ID, "Alicia", "alicia@example.com"); err != nil {
		t.Fatalf("update profile: %v", err)
	}

	found, err := r.FindUserByID(ctx, alice.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if found.Name != "Alicia" || found.Email != "alicia@example.com" {
		t.Fatalf("unexpected user after update: %+v", found)
	}
}

func TestUpdateUserProfile_NotFound(t *testing.T) {
	r := newTestRepo(t)

	err := r.UpdateUserProfile(context.Background(), 9999, "Nobody", "nobody@example.com")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateUserPhoto(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	alice := mustCreateUser(t, r, "Alice", "alice@example.com")
	if err := r.UpdateUserPhoto(ctx, alice.ID, "uploads/profile_1_1.jpg"); err != nil {
		t.Fatalf("update photo: %v", err)
	}

	found, err := r.FindUserByID(ctx, alice.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if found.ProfilePhoto != "uploads/profile_1_1.jpg" {
		t.Fatalf("unexpected photo path: %q", found.ProfilePhoto)
	}
}
