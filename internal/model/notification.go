package model

import (
	"time"

	"github.com/google/uuid"
)

type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "pending"
	NotificationStatusSent    NotificationStatus = "sent"
	NotificationStatusFailed  NotificationStatus = "failed"
)

// Audience picks which store a notification is written for.
type NotificationAudience string

const (
	AudienceAdmin   NotificationAudience = "admin"
	AudiencePatient NotificationAudience = "patient"
)

type Notification struct {
	ID        uuid.UUID            `db:"id" json:"id"`
	PatientID *uuid.UUID           `db:"patient_id" json:"patient_id,omitempty"`
	Audience  NotificationAudience `db:"audience" json:"audience"`
	Channel   string               `db:"channel" json:"channel"`
	Subject   string               `db:"subject" json:"subject"`
	Content   string               `db:"content" json:"content"`
	Recipient string               `db:"recipient" json:"recipient,omitempty"`
	Status    NotificationStatus   `db:"status" json:"status"`
	SentAt    *time.Time           `db:"sent_at" json:"sent_at,omitempty"`
	CreatedAt time.Time            `db:"created_at" json:"created_at"`
	UpdatedAt time.Time            `db:"updated_at" json:"updated_at"`
}

type NotificationFilters struct {
	Audience NotificationAudience
	Status   NotificationStatus
	Limit    int
}
