package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "groupledger/internal/errors"
	"groupledger/internal/models"
	"groupledger/internal/services"
)

// GroupHandler handles group membership and settings requests.
type GroupHandler struct {
	groupService services.GroupServicer
	auditService services.AuditServicer
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(groupService services.GroupServicer, auditService services.AuditServicer) *GroupHandler {
	return &GroupHandler{groupService: groupService, auditService: auditService}
}

// CreateGroupRequest represents the request payload for creating a group
type CreateGroupRequest struct {
	Name          string `json:"name" binding:"required,max=100"`
	Description   string `json:"description" binding:"max=500"`
	MonthlyAmount int64  `json:"monthly_amount" binding:"gte=0"`
	AllowPrepay   bool   `json:"allow_prepay"`
}

// JoinGroupRequest carries an invite code.
type JoinGroupRequest struct {
	InviteCode string `json:"invite_code" binding:"required,max=16"`
}

// UpdateSettingsRequest holds the group settings to change. Omitted fields
// are left as they are.
type UpdateSettingsRequest struct {
	Name          *string              `json:"name" binding:"omitempty,max=100"`
	Description   *string              `json:"description" binding:"omitempty,max=500"`
	MonthlyAmount *int64               `json:"monthly_amount" binding:"omitempty,gte=0"`
	BillingCycle  *models.BillingCycle `json:"billing_cycle" binding:"omitempty,billing_cycle"`
	AllowPrepay   *bool                `json:"allow_prepay"`
}

// UpdateRoleRequest changes a member's role.
type UpdateRoleRequest struct {
	Role models.MemberRole `json:"role" binding:"required,member_role"`
}

// SetAmountRequest overrides a member's dues. A null amount restores the
// group default.
type SetAmountRequest struct {
	Amount *int64 `json:"amount" binding:"omitempty,gte=0"`
}

// CreateGroup handles the creation of a new group
// @Summary     Create a group
// @Description Create a group with the caller as its first admin
// @Tags        groups
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateGroupRequest true "Group details"
// @Success     201 {object} models.Group "Group created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /groups [post]
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	group, err := h.groupService.CreateGroup(userID, services.GroupInput{
		Name:          req.Name,
		Description:   req.Description,
		MonthlyAmount: req.MonthlyAmount,
		AllowPrepay:   req.AllowPrepay,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, group.ID, "CREATE_GROUP", "group", group.ID, c.ClientIP(),
		map[string]interface{}{"name": group.Name, "monthly_amount": group.MonthlyAmount})

	c.JSON(http.StatusCreated, gin.H{"group": group})
}

// ListGroups returns the caller's groups
// @Summary     List groups
// @Description List the groups the caller belongs to
// @Tags        groups
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  models.Group "Groups"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /groups [get]
func (h *GroupHandler) ListGroups(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	groups, err := h.groupService.ListUserGroups(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

// GetGroup returns a group with its members
// @Summary     Get group
// @Description Get a group and its members. The caller must be a member.
// @Tags        groups
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Group ID"
// @Success     200 {object} models.Group "Group details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not a member"
// @Failure     404 {object} ErrorResponse "Group not found"
// @Router      /groups/{id} [get]
func (h *GroupHandler) GetGroup(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	groupID, err := pathParam(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	group, err := h.groupService.GetGroup(userID, groupID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"group": group})
}

// JoinGroup adds the caller to the group owning an invite code
// @Summary     Join group
// @Description Join a group using its invite code
// @Tags        groups
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body JoinGroupRequest true "Invite code"
// @Success     200 {object} models.Group "Joined group"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Invite code not found"
// @Failure     409 {object} ErrorResponse "Already a member"
// @Router      /groups/join [post]
func (h *GroupHandler) JoinGroup(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req JoinGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	group, err := h.groupService.JoinGroup(userID, req.InviteCode)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, group.ID, "JOIN_GROUP", "group", group.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"group": group})
}

// LeaveGroup removes the caller from a group
// @Summary     Leave group
// @Description Leave a group. The sole admin of a group with other members must hand over first.
// @Tags        groups
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Group ID"
// @Success     200 {object} map[string]string "Left group"
// @Failure     403 {object} ErrorResponse "Sole admin"
// @Failure     404 {object} ErrorResponse "Group not found"
// @Router      /groups/{id}/membership [delete]
func (h *GroupHandler) LeaveGroup(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	groupID, err := pathParam(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.groupService.LeaveGroup(userID, groupID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, groupID, "LEAVE_GROUP", "group", groupID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Left group"})
}

// RemoveMember removes another member from a group
// @Summary     Remove member
// @Description Remove a member from the group. Admin only.
// @Tags        groups
// @Produce     json
// @Security    BearerAuth
// @Param       id       path string true "Group ID"
// @Param       memberId path string true "Member user ID"
// @Success     200 {object} map[string]string "Member removed"
// @Failure     403 {object} ErrorResponse "Not an admin"
// @Failure     404 {object} ErrorResponse "Member not found"
// @Router      /groups/{id}/members/{memberId} [delete]
func (h *GroupHandler) RemoveMember(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	groupID, err := pathParam(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	memberID, err := pathParam(c, "memberId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.groupService.RemoveMember(userID, groupID, memberID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, groupID, "REMOVE_MEMBER", "group_member", memberID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Member removed"})
}

// UpdateMemberRole changes a member's role
// @Summary     Update member role
// @Description Promote or demote a member. Admin only. The last admin cannot be demoted.
// @Tags        groups
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id       path string            true "Group ID"
// @Param       memberId path string            true "Member user ID"
// @Param       request  body UpdateRoleRequest true "New role"
// @Success     200 {object} models.GroupMember "Updated member"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Not an admin"
// @Failure     404 {object} ErrorResponse "Member not found"
// @Router      /groups/{id}/members/{memberId}/role [put]
func (h *GroupHandler) UpdateMemberRole(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	groupID, err := pathParam(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	memberID, err := pathParam(c, "memberId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	member, err := h.groupService.UpdateMemberRole(userID, groupID, memberID, req.Role)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, groupID, "UPDATE_MEMBER_ROLE", "group_member", memberID, c.ClientIP(),
		map[string]interface{}{"role": req.Role})

	c.JSON(http.StatusOK, gin.H{"member": member})
}

// SetMemberAmount overrides a member's dues
// @Summary     Set member dues
// @Description Override the amount a member owes per cycle. A null amount restores the group default. Admin only.
// @Tags        groups
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id       path string           true "Group ID"
// @Param       memberId path string           true "Member user ID"
// @Param       request  body SetAmountRequest true "Dues override"
// @Success     200 {object} models.GroupMember "Updated member"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Not an admin"
// @Failure     404 {object} ErrorResponse "Member not found"
// @Router      /groups/{id}/members/{memberId}/amount [put]
func (h *GroupHandler) SetMemberAmount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	groupID, err := pathParam(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	memberID, err := pathParam(c, "memberId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SetAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	member, err := h.groupService.SetMemberAmount(userID, groupID, memberID, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, groupID, "SET_MEMBER_AMOUNT", "group_member", memberID, c.ClientIP(),
		map[string]interface{}{"amount": req.Amount})

	c.JSON(http.StatusOK, gin.H{"member": member})
}

// UpdateSettings changes group settings
// @Summary     Update group settings
// @Description Change name, description, dues, billing cycle or prepay policy. Admin only.
// @Tags        groups
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                true "Group ID"
// @Param       request body UpdateSettingsRequest true "Settings to change"
// @Success     200 {object} models.Group "Updated group"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Not an admin"
// @Failure     404 {object} ErrorResponse "Group not found"
// @Router      /groups/{id}/settings [put]
func (h *GroupHandler) UpdateSettings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	groupID, err := pathParam(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	group, err := h.groupService.UpdateSettings(userID, groupID, services.GroupSettings{
		Name:          req.Name,
		Description:   req.Description,
		MonthlyAmount: req.MonthlyAmount,
		BillingCycle:  req.BillingCycle,
		AllowPrepay:   req.AllowPrepay,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, groupID, "UPDATE_GROUP_SETTINGS", "group", groupID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"group": group})
}
