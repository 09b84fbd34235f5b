package service

import (
	"context"
	"fmt"

	"folio/internal/mail"
	"folio/internal/model"
	"folio/internal/repository"
)

// ContactInput is a validated contact form submission.
type ContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// ContactService stores contact messages and notifies the site owner.
type ContactService interface {
	Submit(ctx context.Context, in ContactInput) (*model.ContactMessage, error)
	List(ctx context.Context, page, limit int) ([]model.ContactMessage, *Pagination, error)
}

type contactService struct {
	contactRepo repository.ContactRepository
	mailer      mail.Mailer
}

// NewContactService creates a new contact service.
func NewContactService(contactRepo repository.ContactRepository, mailer mail.Mailer) ContactService {
	return &contactService{
		contactRepo: contactRepo,
		mailer:      mailer,
	}
}

// Submit persists the message, then notifies the owner in the background.
// The notification is best-effort: a mail failure only logs, the
// submission is already acknowledged.
func (s *contactService) Submit(ctx context.Context, in ContactInput) (*model.ContactMessage, error) {
	msg := &model.ContactMessage{
		Name:    in.Name,
		Email:   in.Email,
		Subject: in.Subject,
		Message: in.Message,
	}
	if err := s.contactRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("store contact message: %w", err)
	}

	go func(m model.ContactMessage) {
		if err := s.mailer.SendContactNotification(&m); err != nil {
			logger.Warn().Err(err).Str("subject", m.Subject).Msg("contact notification failed")
		}
	}(*msg)

	return msg, nil
}

// List pages stored messages for the admin panel, newest first.
func (s *contactService) List(ctx context.Context, page, limit int) ([]model.ContactMessage, *Pagination, error) {
	page, limit = normalizePage(page, limit)

	msgs, err := s.contactRepo.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, nil, err
	}
	total, err := s.contactRepo.Count(ctx)
	if err != nil {
		return nil, nil, err
	}

	return msgs, newPagination(page, limit, total), nil
}
