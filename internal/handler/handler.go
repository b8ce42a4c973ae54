package handler

import (
	"github.com/Dan9191/task-manager/internal/service"
)

// Handler translates HTTP requests into service calls and view models for
// the rendering layer.
type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}
