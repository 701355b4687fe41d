package service

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/worktrack/tracker-backend-go/internal/models"
	"github.com/worktrack/tracker-backend-go/internal/notify"
	"github.com/worktrack/tracker-backend-go/internal/repository"
)

// TimeoffService handles absence requests and their admin resolution flow.
type TimeoffService struct {
	timeoffRepo *repository.TimeoffRepository
	userRepo    *repository.UserRepository
	notifier    notify.Notifier
}

// NewTimeoffService creates a timeoff service.
func NewTimeoffService(timeoffRepo *repository.TimeoffRepository, userRepo *repository.UserRepository,
	notifier notify.Notifier) *TimeoffService {
	return &TimeoffService{timeoffRepo: timeoffRepo, userRepo: userRepo, notifier: notifier}
}

// Submit files a new pending request and notifies administrators.
func (s *TimeoffService) Submit(subjectID int64, reason string) (int64, error) {
	if reason == "" {
		return 0, fmt.Errorf("timeoff reason must not be empty")
	}

	name, err := s.userRepo.GetName(subjectID)
	if err != nil {
		return 0, err
	}

	id, err := s.timeoffRepo.Create(subjectID, name, reason)
	if err != nil {
		return 0, err
	}

	message := fmt.Sprintf("📋 Time off request #%d from %s:\n%s", id, name, reason)
	if err := s.notifier.NotifyAdmins(message); err != nil {
		log.Errorf("[TimeoffService] Failed to notify admins about request %d: %v", id, err)
	}
	return id, nil
}

// Respond resolves a pending request. Status must be approved or rejected;
// already-resolved requests are rejected with an error.
func (s *TimeoffService) Respond(requestID, adminID int64, status string) error {
	if status != models.TimeoffApproved && status != models.TimeoffRejected {
		return fmt.Errorf("invalid resolution status %q", status)
	}
	if err := s.timeoffRepo.Respond(requestID, adminID, status); err != nil {
		return err
	}
	log.Infof("[TimeoffService] Request %d resolved as %s by admin %d", requestID, status, adminID)
	return nil
}

// ListForSubject returns a subject's requests, newest first.
func (s *TimeoffService) ListForSubject(subjectID int64) ([]models.TimeoffRequest, error) {
	return s.timeoffRepo.ListForSubject(subjectID)
}

// ListPending returns all unresolved requests for the admin queue.
func (s *TimeoffService) ListPending() ([]models.TimeoffRequest, error) {
	return s.timeoffRepo.ListPending()
}

// Stats aggregates a subject's request counts.
func (s *TimeoffService) Stats(subjectID int64) (models.TimeoffStats, error) {
	return s.timeoffRepo.StatsForSubject(subjectID)
}
