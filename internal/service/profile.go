package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/Dan9191/task-manager/internal/models"
	"github.com/google/uuid"
)

// Standard mailbox syntax: local part, @, domain containing a dot.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var photoExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
}

// Profile builds the profile view model. The database is the source of
// truth for the photo path; a file missing on disk degrades to a nil
// PhotoURL rather than failing the request.
func (s *Service) Profile(ctx context.Context, userID int64) (*models.Profile, error) {
	user, err := s.repo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile := &models.Profile{User: user}
	if user.ProfilePhoto != "" {
		if _, err := os.Stat(user.ProfilePhoto); err == nil {
			url := "/uploads/" + filepath.Base(user.ProfilePhoto)
			profile.PhotoURL = &url
		} else {
			s.log.Warnf("Profile photo missing on disk for user %d: %s", userID, user.ProfilePhoto)
		}
	}
	return profile, nil
}

// UpdateProfile validates and persists new display fields, then refreshes
// the cached fields on the user's live sessions.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, name, email string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return nil, invalidField("name", "Name and email are required.")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	taken, err := s.repo.EmailTaken(ctx, email, userID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateEmail
	}

	if err := s.repo.UpdateUserProfile(ctx, userID, name, email); err != nil {
		return nil, err
	}
	if err := s.repo.RefreshSessionProfile(ctx, userID, name, email); err != nil {
		return nil, err
	}

	s.log.Infof("Profile updated for user %d", userID)
	return s.repo.FindUserByID(ctx, userID)
}

// ReplaceProfilePhoto stores an uploaded photo and points the user record
// at it. The disk write happens before the row update, and the previous
// file is removed only after the update succeeds, so a failure partway
// never leaves the record pointing at a deleted file.
func (s *Service) ReplaceProfilePhoto(ctx context.Context, userID int64, data []byte, declaredMime string) (string, error) {
	ext, ok := photoExtensions[declaredMime]
	if !ok {
		return "", invalidField("profile_photo", "Invalid file type. Please upload JPEG, PNG, or GIF images only.")
	}
	if len(data) == 0 {
		return "", invalidField("profile_photo", "Uploaded file is empty.")
	}

	user, err := s.repo.FindUserByID(ctx, userID)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.config.UploadDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to prepare upload directory: %w", err)
	}
	name := fmt.Sprintf("profile_%d_%d_%s.%s", userID, time.Now().Unix(), uuid.NewString(), ext)
	path := filepath.Join(s.config.UploadDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to store photo: %w", err)
	}

	if err := s.repo.UpdateUserPhoto(ctx, userID, path); err != nil {
		// Roll back the orphaned file so the record stays consistent.
		_ = os.Remove(path)
		return "", err
	}

	if user.ProfilePhoto != "" {
		if err := os.Remove(user.ProfilePhoto); err != nil && !os.IsNotExist(err) {
			s.log.Warnf("Failed to remove old photo %s: %v", user.ProfilePhoto, err)
		}
	}

	s.log.Infof("Profile photo replaced for user %d: %s", userID, path)
	return path, nil
}

func validateEmail(email string) error {
	if email == "" {
		return invalidField("email", "Email is required.")
	}
	if !emailPattern.MatchString(email) {
		return invalidField("email", "Please enter a valid email address.")
	}
	return nil
}
