package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/Dan9191/task-manager/internal/middleware"
)

const maxPhotoBytes = 10 << 20

// Profile returns the profile view model
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	profile, err := h.svc.Profile(r.Context(), session.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// UpdateProfile handles both profile forms: a multipart post carrying a
// profile_photo part replaces the photo, otherwise name/email are updated.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxPhotoBytes); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid form data."})
			return
		}
		file, header, err := r.FormFile("profile_photo")
		if err != nil && !errors.Is(err, http.ErrMissingFile) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid file upload."})
			return
		}
		if err == nil {
			defer file.Close()
			data, err := io.ReadAll(io.LimitReader(file, maxPhotoBytes))
			if err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Failed to read uploaded file."})
				return
			}
			path, err := h.svc.ReplaceProfilePhoto(r.Context(), session.UserID, data, header.Header.Get("Content-Type"))
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]string{
				"message": "Profile photo updated successfully!",
				"path":    path,
			})
			return
		}
		// No photo part: fall through to the name/email update.
	} else if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid form data."})
		return
	}

	user, err := h.svc.UpdateProfile(r.Context(), session.UserID,
		r.PostFormValue("name"), r.PostFormValue("email"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Profile updated successfully!",
		"user":    user,
	})
}
