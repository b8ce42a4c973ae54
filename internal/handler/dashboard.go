package handler

import (
	"net/http"

	"github.com/Dan9191/task-manager/internal/middleware"
)

// Dashboard returns statistics, recent and upcoming tasks for the
// authenticated user.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	dashboard, err := h.svc.Dashboard(r.Context(), session.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"name":      session.Name,
		"dashboard": dashboard,
	})
}
