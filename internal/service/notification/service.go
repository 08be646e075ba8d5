package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wardlink/admin-api/internal/model"
	"github.com/wardlink/admin-api/internal/repository"
)

// EmailSender delivers a message over SMTP. Implemented by the email package.
type EmailSender interface {
	Send(to, subject, body string) error
}

// Service records notifications and stages outbox events for the broker.
// Delivery to external channels happens asynchronously; the row is the
// source of truth for what was sent.
type Service struct {
	repo   repository.NotificationRepository
	outbox repository.OutboxRepository
	email  EmailSender
	now    func() time.Time
}

func NewService(repo repository.NotificationRepository, outbox repository.OutboxRepository, email EmailSender) *Service {
	return &Service{repo: repo, outbox: outbox, email: email, now: time.Now}
}

// NotifyRequest describes one notification to record and dispatch.
type NotifyRequest struct {
	PatientID *uuid.UUID
	Audience  model.NotificationAudience
	Channel   string
	Subject   string
	Content   string
	Recipient string
}

// Notify persists the notification and stages a broker event. When the
// channel is email and a recipient is known, delivery is attempted inline
// and the row records the outcome.
func (s *Service) Notify(ctx context.Context, req *NotifyRequest) (*model.Notification, error) {
	n := &model.Notification{
		ID:        uuid.New(),
		PatientID: req.PatientID,
		Audience:  req.Audience,
		Channel:   req.Channel,
		Subject:   req.Subject,
		Content:   req.Content,
		Recipient: req.Recipient,
		Status:    model.NotificationStatusPending,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	if err := s.stageEvent(ctx, n); err != nil {
		return nil, err
	}

	if n.Channel == "email" && n.Recipient != "" && s.email != nil {
		if err := s.email.Send(n.Recipient, n.Subject, n.Content); err != nil {
			n.Status = model.NotificationStatusFailed
		} else {
			now := s.now()
			n.Status = model.NotificationStatusSent
			n.SentAt = &now
		}
		if err := s.repo.Update(ctx, n); err != nil {
			return nil, fmt.Errorf("failed to update notification: %w", err)
		}
	}
	return n, nil
}

func (s *Service) stageEvent(ctx context.Context, n *model.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification payload: %w", err)
	}
	event := &model.OutboxEvent{
		ID:        uuid.New(),
		EventType: "notification.created",
		Payload:   payload,
		Status:    model.OutboxStatusPending,
	}
	if err := s.outbox.Create(ctx, event); err != nil {
		return fmt.Errorf("failed to stage notification event: %w", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, filters *model.NotificationFilters) ([]*model.Notification, error) {
	notifications, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}
