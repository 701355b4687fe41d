package service

import (
	"fmt"

	"github.com/worktrack/tracker-backend-go/internal/models"
	"github.com/worktrack/tracker-backend-go/internal/repository"
)

// UserService manages the subject registry.
type UserService struct {
	userRepo *repository.UserRepository
}

// NewUserService creates a user service.
func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register adds or renames a subject.
func (s *UserService) Register(subjectID int64, fullName string, isAdmin bool) error {
	if fullName == "" {
		return fmt.Errorf("full name must not be empty")
	}
	return s.userRepo.Upsert(subjectID, fullName, isAdmin)
}

// GetName resolves a subject's display name, with a placeholder for
// unregistered subjects.
func (s *UserService) GetName(subjectID int64) (string, error) {
	return s.userRepo.GetName(subjectID)
}

// List returns all registered subjects.
func (s *UserService) List() ([]models.Subject, error) {
	return s.userRepo.List()
}
