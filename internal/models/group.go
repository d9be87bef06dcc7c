package models

import "time"

// BillingCycle is how often dues are expected from members.
type BillingCycle string

const (
	BillingCycleMonthly BillingCycle = "monthly"
)

// MemberRole is a member's permission level within a group.
type MemberRole string

const (
	MemberRoleAdmin  MemberRole = "admin"
	MemberRoleMember MemberRole = "member"
)

// Group is a shared fund that members contribute to and spend from.
type Group struct {
	Base
	Name          string        `gorm:"not null;size:100" json:"name"`
	Description   string        `gorm:"size:500" json:"description"`
	CreatedBy     string        `gorm:"type:uuid;not null" json:"created_by"`
	InviteCode    string        `gorm:"uniqueIndex;size:16;not null" json:"invite_code"`
	MonthlyAmount int64         `gorm:"type:bigint;default:0" json:"monthly_amount"`
	BillingCycle  BillingCycle  `gorm:"size:16;default:monthly" json:"billing_cycle"`
	AllowPrepay   bool          `gorm:"default:false" json:"allow_prepay"`
	Members       []GroupMember `gorm:"foreignKey:GroupID" json:"members,omitempty"`
}

// GroupMember links a user to a group with a role.
type GroupMember struct {
	Base
	GroupID      string     `gorm:"type:uuid;not null;uniqueIndex:idx_group_member" json:"group_id"`
	UserID       string     `gorm:"type:uuid;not null;uniqueIndex:idx_group_member" json:"user_id"`
	Role         MemberRole `gorm:"size:16;not null" json:"role"`
	CustomAmount *int64     `gorm:"type:bigint" json:"custom_amount,omitempty"`
	JoinedAt     time.Time  `gorm:"not null" json:"joined_at"`

	User User `gorm:"foreignKey:UserID" json:"user"`
}

// IsAdmin reports whether the member holds the admin role.
func (m *GroupMember) IsAdmin() bool {
	return m.Role == MemberRoleAdmin
}

// DuesAmount is what the member owes per billing cycle in group g.
func (m *GroupMember) DuesAmount(g *Group) int64 {
	if m.CustomAmount != nil {
		return *m.CustomAmount
	}
	return g.MonthlyAmount
}
