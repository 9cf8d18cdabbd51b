package models

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

const (
	// HomeServicesLimit caps the landing page list.
	HomeServicesLimit = 6
)

const (
	FieldLastLogin = "lastLogin"
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"
)
