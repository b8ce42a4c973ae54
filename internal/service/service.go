package service

import (
	"github.com/Dan9191/task-manager/internal/config"
	"github.com/Dan9191/task-manager/internal/models"
	"github.com/Dan9191/task-manager/internal/repository"
	"github.com/sirupsen/logrus"
)

// Mailer sends the overdue-task reminder digest. Implemented by
// utils/email.Sender; nil disables reminders.
type Mailer interface {
	SendOverdueDigest(to, name string, tasks []*models.OverdueItem) error
}

// Service handles business logic
type Service struct {
	repo   *repository.Repository
	log    *logrus.Logger
	config *config.Config
	mailer Mailer
}

// NewService initializes a new service
func NewService(repo *repository.Repository, log *logrus.Logger, cfg *config.Config, mailer Mailer) *Service {
	return &Service{repo: repo, log: log, config: cfg, mailer: mailer}
}
