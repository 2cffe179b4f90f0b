package audit

import "time"

// Event is an immutable record of an authorization-relevant denial.
// OwnerID (the actual owner of the resource the actor was denied on) is
// attacker-useful and is never serialized into API responses.
type Event struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Kind         string    `gorm:"size:32;index" json:"kind"`
	Actor        string    `gorm:"size:64;index" json:"actor"`
	ResourceType string    `gorm:"size:32" json:"resourceType,omitempty"`
	ResourceID   string    `gorm:"size:64" json:"resourceId,omitempty"`
	OwnerID      string    `gorm:"size:64" json:"-"`
	StatusCode   int       `json:"statusCode"`
	Method       string    `gorm:"size:8" json:"method"`
	Path         string    `gorm:"size:255" json:"path"`
	RequestID    string    `gorm:"size:64" json:"requestId,omitempty"`
	CreatedAt    time.Time `gorm:"index" json:"createdAt"`
}

// TableName overrides the GORM table name.
func (Event) TableName() string {
	return "auth_audit_events"
}
