package handler

import (
	"net/http"
	"strconv"

	"github.com/Dan9191/task-manager/internal/middleware"
)

// Tasks serves the task page: list reads plus the delete/toggle/edit query
// actions carried over from the page's links.
func (h *Handler) Tasks(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	userID := session.UserID
	q := r.URL.Query()

	if raw := q.Get("delete"); raw != "" {
		taskID, err := parseID(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid task id."})
			return
		}
		if err := h.svc.DeleteTask(r.Context(), userID, taskID); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully!"})
		return
	}

	if raw := q.Get("toggle"); raw != "" {
		taskID, err := parseID(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid task id."})
			return
		}
		if err := h.svc.ToggleTask(r.Context(), userID, taskID); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Task status updated!"})
		return
	}

	tasks, err := h.svc.ListTasks(r.Context(), userID, q.Get("filter"))
	if err != nil {
		writeError(w, err)
		return
	}
	view := map[string]any{"tasks": tasks}

	if raw := q.Get("edit"); raw != "" {
		taskID, err := parseID(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid task id."})
			return
		}
		editTask, err := h.svc.GetTask(r.Context(), userID, taskID)
		if err != nil {
			writeError(w, err)
			return
		}
		view["edit_task"] = editTask
	}

	writeJSON(w, http.StatusOK, view)
}

// SaveTask handles the task form: action=create inserts, action=update
// rewrites the task named by task_id.
func (h *Handler) SaveTask(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid form data."})
		return
	}

	title := r.PostFormValue("title")
	description := r.PostFormValue("description")
	dueDate := r.PostFormValue("due_date")

	switch r.PostFormValue("action") {
	case "create":
		task, err := h.svc.CreateTask(r.Context(), session.UserID, title, description, dueDate)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"message": "Task created successfully!",
			"task":    task,
		})

	case "update":
		taskID, err := parseID(r.PostFormValue("task_id"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid task id."})
			return
		}
		if err := h.svc.UpdateTask(r.Context(), session.UserID, taskID, title, description, dueDate); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Task updated successfully!"})

	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Unknown action."})
	}
}

func parseID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}
