package models

// User represents a registered person who can belong to groups.
type User struct {
	Base
	Email       string `gorm:"uniqueIndex;not null" json:"email"`
	Password    string `gorm:"not null" json:"-"`
	DisplayName string `gorm:"size:100" json:"display_name"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`

	// ActiveGroupID remembers the group the user last selected. It is only
	// echoed back to clients; services always take the group id explicitly.
	ActiveGroupID *string `gorm:"type:uuid" json:"active_group_id,omitempty"`
}
