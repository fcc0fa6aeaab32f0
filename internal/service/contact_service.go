package service

import (
	"context"
	"fmt"

	"agentdesk/internal/model"
	"agentdesk/internal/repository"
)

// ContactService stores contact form submissions.
type ContactService interface {
	SubmitContact(ctx context.Context, name, email, company, message string) error
}

type contactService struct {
	repo repository.ContactRepository
}

// NewContactService creates a contact service.
func NewContactService(repo repository.ContactRepository) ContactService {
	return &contactService{repo: repo}
}

func (s *contactService) SubmitContact(ctx context.Context, name, email, company, message string) error {
	contact := &model.Contact{
		Name:    name,
		Email:   email,
		Company: company,
		Message: message,
	}
	if err := s.repo.Create(ctx, contact); err != nil {
		return fmt.Errorf("store contact: %w", err)
	}
	return nil
}
