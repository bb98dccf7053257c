package dto

import (
	"time"
)

// Request DTOs

type AuditLogFilterRequest struct {
	UserID string `validate:"omitempty,max=36"`
	Action string `validate:"omitempty,max=100"`
	Page   int    `validate:"gte=0"`
	Limit  int    `validate:"gte=0,lte=200"`
}

// Response DTOs

// AuditLogResponse flattens the recorded metadata into the changed entity and
// its before/after values
type AuditLogResponse struct {
	ID        int64         `json:"id"`
	UserID    *string       `json:"user_id,omitempty"`
	User      *UserResponse `json:"user,omitempty"`
	Action    string        `json:"action"`
	Entity    string        `json:"entity,omitempty"`
	EntityID  string        `json:"entity_id,omitempty"`
	OldValue  interface{}   `json:"old_value,omitempty"`
	NewValue  interface{}   `json:"new_value,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

type AuditLogListResponse struct {
	Logs  []AuditLogResponse `json:"logs"`
	Total int64              `json:"total"`
}
