// internal/models/admin.go
package models

import "github.com/google/uuid"

// Notification is the in-app half of the notification collaborator;
// email is the other half. Created best-effort alongside order
// lifecycle transitions.
type Notification struct {
	BaseModel
	UserID              *uuid.UUID `json:"user_id,omitempty" gorm:"type:uuid;index"`
	Type                string     `json:"type" gorm:"size:50;not null;index"`
	Title               string     `json:"title" gorm:"size:255;not null"`
	Message             string     `json:"message" gorm:"type:text"`
	Priority            string     `json:"priority" gorm:"size:20;default:'medium'"`
	IsRead              bool       `json:"is_read" gorm:"default:false"`
	RelatedResourceType string     `json:"related_resource_type,omitempty" gorm:"size:50"`
	RelatedResourceID   *uuid.UUID `json:"related_resource_id,omitempty" gorm:"type:uuid"`
}

type AuditLog struct {
	BaseModel
	UserID       *uuid.UUID `json:"user_id,omitempty" gorm:"type:uuid;index"`
	Action       string     `json:"action" gorm:"size:255;not null"`
	ResourceType string     `json:"resource_type" gorm:"size:50"`
	ResourceID   *uuid.UUID `json:"resource_id,omitempty" gorm:"type:uuid"`
	IPAddress    string     `json:"ip_address" gorm:"size:45"`
	UserAgent    string     `json:"user_agent" gorm:"size:512"`
	NewValues    JSONB      `json:"new_values,omitempty" gorm:"type:jsonb"`
}
