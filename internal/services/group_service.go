package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "groupledger/internal/errors"
	"groupledger/internal/models"
	"groupledger/internal/uuid"
)

// groupService handles group membership and settings.
type groupService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGroupService creates a new GroupServicer.
func NewGroupService(db *gorm.DB) GroupServicer {
	return &groupService{db: db, now: time.Now}
}

// loadMembership returns userID's membership in groupID. A missing group is
// group/not-exist; an existing group the user does not belong to is FORBIDDEN.
func loadMembership(db *gorm.DB, groupID, userID string) (*models.GroupMember, error) {
	if groupID == "" {
		return nil, apperrors.ErrGroupNotFound
	}

	var group models.Group
	if err := db.Select("id").First(&group, "id = ?", groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGroupNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var member models.GroupMember
	if err := db.Where("group_id = ? AND user_id = ?", groupID, userID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrForbidden, "You are not a member of this group")
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &member, nil
}

// requireAdmin is loadMembership plus an admin role check.
func requireAdmin(db *gorm.DB, groupID, userID string) (*models.GroupMember, error) {
	member, err := loadMembership(db, groupID, userID)
	if err != nil {
		return nil, err
	}
	if !member.IsAdmin() {
		return nil, apperrors.ErrNotAdmin
	}
	return member, nil
}

// findMember looks up a member of a group the caller already has access to.
func findMember(db *gorm.DB, groupID, userID string) (*models.GroupMember, error) {
	var member models.GroupMember
	if err := db.Where("group_id = ? AND user_id = ?", groupID, userID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMemberNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &member, nil
}

func loadGroup(db *gorm.DB, groupID string) (*models.Group, error) {
	var group models.Group
	if err := db.First(&group, "id = ?", groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGroupNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &group, nil
}

func countAdmins(db *gorm.DB, groupID string) (int64, error) {
	var n int64
	err := db.Model(&models.GroupMember{}).
		Where("group_id = ? AND role = ?", groupID, models.MemberRoleAdmin).
		Count(&n).Error
	return n, err
}

// CreateGroup creates a group with the caller as its first admin.
func (s *groupService) CreateGroup(userID string, input GroupInput) (*models.Group, error) {
	if err := validateText("name", input.Name, true, maxGroupNameLength); err != nil {
		return nil, err
	}
	if err := validateText("description", input.Description, false, maxDescriptionLength); err != nil {
		return nil, err
	}
	if input.MonthlyAmount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "monthly amount must not be negative")
	}

	group := &models.Group{
		Name:          strings.TrimSpace(input.Name),
		Description:   input.Description,
		CreatedBy:     userID,
		InviteCode:    uuid.InviteCode(),
		MonthlyAmount: input.MonthlyAmount,
		BillingCycle:  models.BillingCycleMonthly,
		AllowPrepay:   input.AllowPrepay,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(group).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		member := &models.GroupMember{
			GroupID:  group.ID,
			UserID:   userID,
			Role:     models.MemberRoleAdmin,
			JoinedAt: s.now(),
		}
		if err := tx.Omit(clause.Associations).Create(member).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		group.Members = []models.GroupMember{*member}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return group, nil
}

// GetGroup returns a group with its members. Only members may read it.
func (s *groupService) GetGroup(userID, groupID string) (*models.Group, error) {
	if _, err := loadMembership(s.db, groupID, userID); err != nil {
		return nil, err
	}

	var group models.Group
	err := s.db.
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("joined_at ASC") }).
		Preload("Members.User").
		First(&group, "id = ?", groupID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGroupNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &group, nil
}

// ListUserGroups returns every group the user belongs to.
func (s *groupService) ListUserGroups(userID string) ([]models.Group, error) {
	var groups []models.Group
	err := s.db.
		Joins("JOIN group_members ON group_members.group_id = groups.id").
		Where("group_members.user_id = ?", userID).
		Order("groups.created_at ASC").
		Find(&groups).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return groups, nil
}

// GetMembership returns the caller's membership, with the user preloaded.
func (s *groupService) GetMembership(userID, groupID string) (*models.GroupMember, error) {
	member, err := loadMembership(s.db, groupID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.db.First(&member.User, "id = ?", userID).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return member, nil
}

// JoinGroup adds the caller to the group identified by inviteCode.
func (s *groupService) JoinGroup(userID, inviteCode string) (*models.Group, error) {
	code := strings.ToUpper(strings.TrimSpace(inviteCode))
	if code == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invite code is required")
	}

	var group models.Group
	if err := s.db.Where("invite_code = ?", code).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInviteNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var existing int64
	if err := s.db.Model(&models.GroupMember{}).
		Where("group_id = ? AND user_id = ?", group.ID, userID).
		Count(&existing).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if existing > 0 {
		return nil, apperrors.ErrAlreadyMember
	}

	member := &models.GroupMember{
		GroupID:  group.ID,
		UserID:   userID,
		Role:     models.MemberRoleMember,
		JoinedAt: s.now(),
	}
	if err := s.db.Omit(clause.Associations).Create(member).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &group, nil
}

// LeaveGroup removes the caller from a group. The only admin cannot leave
// while other members remain.
func (s *groupService) LeaveGroup(userID, groupID string) error {
	member, err := loadMembership(s.db, groupID, userID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if member.IsAdmin() {
			admins, err := countAdmins(tx, groupID)
			if err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			var members int64
			if err := tx.Model(&models.GroupMember{}).Where("group_id = ?", groupID).Count(&members).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			if admins == 1 && members > 1 {
				return apperrors.ErrSoleAdmin
			}
		}
		return removeMembership(tx, member)
	})
}

func removeMembership(tx *gorm.DB, member *models.GroupMember) error {
	if err := tx.Delete(&models.GroupMember{}, "id = ?", member.ID).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := tx.Model(&models.User{}).
		Where("id = ? AND active_group_id = ?", member.UserID, member.GroupID).
		Update("active_group_id", nil).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// RemoveMember removes another member from a group. Admin only.
func (s *groupService) RemoveMember(actorID, groupID, memberID string) error {
	if _, err := requireAdmin(s.db, groupID, actorID); err != nil {
		return err
	}
	if actorID == memberID {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "use leave to remove yourself")
	}

	target, err := findMember(s.db, groupID, memberID)
	if err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		return removeMembership(tx, target)
	})
}

// UpdateMemberRole changes a member's role. Demoting the last admin is
// refused.
func (s *groupService) UpdateMemberRole(actorID, groupID, memberID string, role models.MemberRole) (*models.GroupMember, error) {
	if role != models.MemberRoleAdmin && role != models.MemberRoleMember {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "role must be admin or member")
	}
	if _, err := requireAdmin(s.db, groupID, actorID); err != nil {
		return nil, err
	}

	target, err := findMember(s.db, groupID, memberID)
	if err != nil {
		return nil, err
	}
	if target.Role == role {
		return target, nil
	}

	if target.IsAdmin() && role == models.MemberRoleMember {
		admins, err := countAdmins(s.db, groupID)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if admins <= 1 {
			return nil, apperrors.ErrSoleAdmin
		}
	}

	if err := s.db.Model(target).Update("role", role).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	target.Role = role
	return target, nil
}

// UpdateSettings applies the non-nil fields of settings. Admin only.
func (s *groupService) UpdateSettings(actorID, groupID string, settings GroupSettings) (*models.Group, error) {
	if _, err := requireAdmin(s.db, groupID, actorID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if settings.Name != nil {
		if err := validateText("name", *settings.Name, true, maxGroupNameLength); err != nil {
			return nil, err
		}
		updates["name"] = strings.TrimSpace(*settings.Name)
	}
	if settings.Description != nil {
		if err := validateText("description", *settings.Description, false, maxDescriptionLength); err != nil {
			return nil, err
		}
		updates["description"] = *settings.Description
	}
	if settings.MonthlyAmount != nil {
		if *settings.MonthlyAmount < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "monthly amount must not be negative")
		}
		updates["monthly_amount"] = *settings.MonthlyAmount
	}
	if settings.BillingCycle != nil {
		if *settings.BillingCycle != models.BillingCycleMonthly {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "billing cycle must be monthly")
		}
		updates["billing_cycle"] = *settings.BillingCycle
	}
	if settings.AllowPrepay != nil {
		updates["allow_prepay"] = *settings.AllowPrepay
	}

	if len(updates) > 0 {
		if err := s.db.Model(&models.Group{}).Where("id = ?", groupID).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return loadGroup(s.db, groupID)
}

// SetMemberAmount overrides a member's dues. A nil amount restores the
// group default. Admin only.
func (s *groupService) SetMemberAmount(actorID, groupID, memberID string, amount *int64) (*models.GroupMember, error) {
	if amount != nil && *amount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
	}
	if _, err := requireAdmin(s.db, groupID, actorID); err != nil {
		return nil, err
	}

	target, err := findMember(s.db, groupID, memberID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(target).Update("custom_amount", amount).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	target.CustomAmount = amount
	return target, nil
}
