package services

import (
	"testing"

	"groupledger/internal/models"
	"groupledger/internal/testutil"
)

func TestCreateGroup(t *testing.T) {
	t.Run("creator_becomes_admin", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGroupService(db)
		user := testutil.CreateTestUser(t, db)

		group, err := svc.CreateGroup(user.ID, GroupInput{Name: "  Flat 4B  ", MonthlyAmount: 1500, AllowPrepay: true})
		testutil.AssertNoError(t, err)

		if group.Name != "Flat 4B" {
			t.Errorf("expected trimmed name, got %q", group.Name)
		}
		if len(group.InviteCode) != 8 {
			t.Errorf("expected 8-char invite code, got %q", group.InviteCode)
		}
		if group.BillingCycle != models.BillingCycleMonthly {
			t.Errorf("expected monthly billing, got %s", group.BillingCycle)
		}

		member, err := svc.GetMembership(user.ID, group.ID)
		testutil.AssertNoError(t, err)
		if !member.IsAdmin() {
			t.Error("expected creator to be admin")
		}
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGroupService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateGroup(user.ID, GroupInput{Name: "  "})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("markup_in_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGroupService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateGroup(user.ID, GroupInput{Name: "<b>Flat</b>"})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("negative_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGroupService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateGroup(user.ID, GroupInput{Name: "Flat", MonthlyAmount: -1})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetGroup(t *testing.T) {
	t.Run("member_sees_members", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGroupService(db)
		owner := testutil.CreateTestUserWithEmail(t, db, "owner@example.com", "Owner")
		other := testutil.CreateTestUser(t, db)
		group := testutil.CreateTestGroup(t, db, owner)
		testutil.AddTestMember(t, db, group, other, models.MemberRoleMember)

		got, err := svc.GetGroup(other.ID, group.ID)
		testutil.AssertNoError(t, err)

		if len(got.Members) != 2 {
			t.Fatalf("expected 2 members, got %d", len(got.Members))
		}
		if got.Members[0].User.DisplayName != "Owner" {
			t.Errorf("expected owner first with user preloaded, got %+v", got.Members[0].User)
		}
	})

	t.Run("non_member_forbidden", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGroupService(db)
		owner := testutil.CreateTestUser(t, db)
		outsider := testutil.CreateTestUser(t, db)
		group := testutil.CreateTestGroup(t, db, owner)

		_, err := svc.GetGroup(outsider.ID, group.ID)
		testutil.AssertAppError(t, err, "FORBIDDEN")
	})

	t.Run("missing_group", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGroupService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.GetGroup(user.ID, "0190b7c4-0000-7000-8000-000000000000")
		testutil.AssertAppError(t, err, "group/not-exist")
	})
}

func TestListUserGroups(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewGroupService(db)
	user := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)
	testutil.CreateTestGroup(t, db, user)
	testutil.CreateTestGroup(t, db, user)
	testutil.CreateTestGroup(t, db, other)

	groups, err := svc.ListUserGroups(user.ID)
	testutil.AssertNoError(t, err)

	if len(groups) != 2 {
		t.Errorf("expected 2 groups, got %d", len(groups))
	}
}

func TestJoinGroup(t *testing.T) {
	t.Run("valid_code", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGroupService(db)
		owner := testutil.CreateTestUser(t, db)
		joiner := testutil.CreateTestUser(t, db)
		group := testutil.CreateTestGroup(t, db, owner)

		joined, err := svc.JoinGroup(joiner.ID, " "+group.InviteCode+" ")
		testutil.AssertNoError(t, err)

		if joined.ID != group.ID {
			t.Errorf("expected group %s, got %s", group.ID, joined.ID)
		}
		member, err := svc.GetMembership(joiner.ID, group.ID)
		testutil.AssertNoError(t, err)
		if member.Role != models.MemberRoleMember {
			t.Errorf("expected member role, got %s", member.Role)
		}
	})

	t.Run("unknown_code", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGroupService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.JoinGroup(user.ID, "NOPE1234")
		testutil.AssertAppError(t, err, "invite/not-exist")
	})

	t.Run("already_member", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGroupService(db)
		owner := testutil.CreateTestUser(t, db)
		group := testutil.CreateTestGroup(t, db, owner)

		_, err := svc.JoinGroup(owner.ID, group.InviteCode)
		testutil.AssertAppError(t, err, "member/already-exist")
	})
}

func TestLeaveGroup(t *testing.T) {
	t.Run("member_leaves", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGroupService(db)
		userSvc := NewUserService(db)
		owner := testutil.CreateTestUser(t, db)
		member := testutil.CreateTestUser(t, db)
		group := testutil.CreateTestGroup(t, db, owner)
		testutil.AddTestMember(t, db, group, member, models.MemberRoleMember)
		_, err := userSvc.SetActiveGroup(member.ID, group.ID)
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.LeaveGroup(member.ID, group.ID))

		_, err = svc.GetMembership(member.ID, group.ID)
		testutil.AssertAppError(t, err, "FORBIDDEN")

		reloaded, err := userSvc.GetUserByID(member.ID)
		testutil.AssertNoError(t, err)
		if reloaded.ActiveGroupID != nil {
			t.Error("expected active group to be cleared on leave")
		}
	})

	t.Run("sole_admin_with_members", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGroupService(db)
		owner := testutil.CreateTestUser(t, db)
		member := testutil.CreateTestUser(t, db)
		group := testutil.CreateTestGroup(t, db, owner)
		testutil.AddTestMember(t, db, group, member, models.MemberRoleMember)

		err := svc.LeaveGroup(owner.ID, group.ID)
		testutil.AssertAppError(t, err, "permission/sole-admin")
	})

	t.Run("sole_admin_alone", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGroupService(db)
		owner := testutil.CreateTestUser(t, db)
		group := testutil.CreateTestGroup(t, db, owner)

		testutil.AssertNoError(t, svc.LeaveGroup(owner.ID, group.ID))
	})

	t.Run("one_of_two_admins", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGroupService(db)
		owner := testutil.CreateTestUser(t, db)
		admin := testutil.CreateTestUser(t, db)
		member := testutil.CreateTestUser(t, db)
		group := testutil.CreateTestGroup(t, db, owner)
		testutil.AddTestMember(t, db, group, admin, models.MemberRoleAdmin)
		testutil.AddTestMember(t, db, group, member, models.MemberRoleMember)

		testutil.AssertNoError(t, svc.LeaveGroup(owner.ID, group.ID))
	})
}

func TestRemoveMember(t *testing.T) {
	t.Run("admin_removes_member", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGroupService(db)
		owner := testutil.CreateTestUser(t, db)
		member := testutil.CreateTestUser(t, db)
		group := testutil.CreateTestGroup(t, db, owner)
		testutil.AddTestMember(t, db, group, member, models.MemberRoleMember)

		testutil.AssertNoError(t, svc.RemoveMember(owner.ID, group.ID, member.ID))

		_, err := svc.GetMembership(member.ID, group.ID)
		testutil.AssertAppError(t, err, "FORBIDDEN")
	})

	t.Run("non_admin", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGroupService(db)
		owner := testutil.CreateTestUser(t, db)
		member := testutil.CreateTestUser(t, db)
		group := testutil.CreateTestGroup(t, db, owner)
		testutil.AddTestMember(t, db, group, member, models.MemberRoleMember)

		err := svc.RemoveMember(member.ID, group.ID, owner.ID)
		testutil.AssertAppError(t, err, "permission/not-admin")
	})

	t.Run("unknown_member", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGroupService(db)
		owner := testutil.CreateTestUser(t, db)
		outsider := testutil.CreateTestUser(t, db)
		group := testutil.CreateTestGroup(t, db, owner)

		err := svc.RemoveMember(owner.ID, group.ID, outsider.ID)
		testutil.AssertAppError(t, err, "member/not-exist")
	})

	t.Run("self", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGroupService(db)
		owner := testutil.CreateTestUser(t, db)
		group := testutil.CreateTestGroup(t, db, owner)

		err := svc.RemoveMember(owner.ID, group.ID, owner.ID)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestUpdateMemberRole(t *testing.T) {
	t.Run("promote", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGroupService(db)
		owner := testutil.CreateTestUser(t, db)
		member := testutil.CreateTestUser(t, db)
		group := testutil.CreateTestGroup(t, db, owner)
		testutil.AddTestMember(t, db, group, member, models.MemberRoleMember)

		updated, err := svc.UpdateMemberRole(owner.ID, group.ID, member.ID, models.MemberRoleAdmin)
		testutil.AssertNoError(t, err)

		if !updated.IsAdmin() {
			t.Error("expected member to be promoted")
		}
	})

	t.Run("demote_last_admin", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGroupService(db)
		owner := testutil.CreateTestUser(t, db)
		group := testutil.CreateTestGroup(t, db, owner)

		_, err := svc.UpdateMemberRole(owner.ID, group.ID, owner.ID, models.MemberRoleMember)
		testutil.AssertAppError(t, err, "permission/sole-admin")
	})

	t.Run("invalid_role", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGroupService(db)
		owner := testutil.CreateTestUser(t, db)
		group := testutil.CreateTestGroup(t, db, owner)

		_, err := svc.UpdateMemberRole(owner.ID, group.ID, owner.ID, "owner")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestUpdateSettings(t *testing.T) {
	t.Run("partial_update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGroupService(db)
		owner := testutil.CreateTestUser(t, db)
		group := testutil.CreateTestGroup(t, db, owner)

		amount := int64(2500)
		prepay := false
		updated, err := svc.UpdateSettings(owner.ID, group.ID, GroupSettings{MonthlyAmount: &amount, AllowPrepay: &prepay})
		testutil.AssertNoError(t, err)

		if updated.MonthlyAmount != 2500 {
			t.Errorf("expected monthly amount 2500, got %d", updated.MonthlyAmount)
		}
		if updated.AllowPrepay {
			t.Error("expected prepay disabled")
		}
		if updated.Name != group.Name {
			t.Errorf("expected name unchanged, got %s", updated.Name)
		}
	})

	t.Run("non_admin", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGroupService(db)
		owner := testutil.CreateTestUser(t, db)
		member := testutil.CreateTestUser(t, db)
		group := testutil.CreateTestGroup(t, db, owner)
		testutil.AddTestMember(t, db, group, member, models.MemberRoleMember)

		name := "Mine now"
		_, err := svc.UpdateSettings(member.ID, group.ID, GroupSettings{Name: &name})
		testutil.AssertAppError(t, err, "permission/not-admin")
	})

	t.Run("unsupported_cycle", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGroupService(db)
		owner := testutil.CreateTestUser(t, db)
		group := testutil.CreateTestGroup(t, db, owner)

		cycle := models.BillingCycle("weekly")
		_, err := svc.UpdateSettings(owner.ID, group.ID, GroupSettings{BillingCycle: &cycle})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestSetMemberAmount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewGroupService(db)
	owner := testutil.CreateTestUser(t, db)
	member := testutil.CreateTestUser(t, db)
	group := testutil.CreateTestGroup(t, db, owner)
	testutil.AddTestMember(t, db, group, member, models.MemberRoleMember)

	custom := int64(400)
	updated, err := svc.SetMemberAmount(owner.ID, group.ID, member.ID, &custom)
	testutil.AssertNoError(t, err)
	if updated.DuesAmount(group) != 400 {
		t.Errorf("expected custom dues 400, got %d", updated.DuesAmount(group))
	}

	cleared, err := svc.SetMemberAmount(owner.ID, group.ID, member.ID, nil)
	testutil.AssertNoError(t, err)
	if cleared.DuesAmount(group) != group.MonthlyAmount {
		t.Errorf("expected group default dues, got %d", cleared.DuesAmount(group))
	}

	negative := int64(-5)
	_, err = svc.SetMemberAmount(owner.ID, group.ID, member.ID, &negative)
	testutil.AssertAppError(t, err, "INVALID_INPUT")
}
