package services

import (
	"testing"

	"parishbooks/internal/models"
	"parishbooks/internal/pagination"
	"parishbooks/internal/testutil"
)

func TestCreateMember(t *testing.T) {
	t.Run("success_with_default_status", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMemberService(db)

		member, err := svc.CreateMember("Grace", "Mensah", "female", "+233201234567", "grace@example.com", "", nil, nil, "")
		testutil.AssertNoError(t, err)

		if member.Status != models.MemberStatusActive {
			t.Errorf("expected default active status, got %q", member.Status)
		}
		if member.FullName() != "Grace Mensah" {
			t.Errorf("unexpected full name %q", member.FullName())
		}
	})

	t.Run("missing_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMemberService(db)

		_, err := svc.CreateMember("", "Mensah", "", "", "", "", nil, nil, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetMembers(t *testing.T) {
	t.Run("search_matches_either_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMemberService(db)

		_, err := svc.CreateMember("Kwame", "Owusu", "", "", "", "", nil, nil, "")
		testutil.AssertNoError(t, err)
		_, err = svc.CreateMember("Ama", "Boateng", "", "", "", "", nil, nil, "")
		testutil.AssertNoError(t, err)

		result, err := svc.GetMembers(pagination.PageRequest{}, "owusu", nil)
		testutil.AssertNoError(t, err)
		if result.TotalItems != 1 {
			t.Errorf("expected 1 match, got %d", result.TotalItems)
		}
	})

	t.Run("status_filter", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMemberService(db)

		_, err := svc.CreateMember("Active", "Person", "", "", "", "", nil, nil, models.MemberStatusActive)
		testutil.AssertNoError(t, err)
		_, err = svc.CreateMember("Visiting", "Person", "", "", "", "", nil, nil, models.MemberStatusVisitor)
		testutil.AssertNoError(t, err)

		visitor := models.MemberStatusVisitor
		result, err := svc.GetMembers(pagination.PageRequest{}, "", &visitor)
		testutil.AssertNoError(t, err)
		if result.TotalItems != 1 {
			t.Errorf("expected 1 visitor, got %d", result.TotalItems)
		}
	})
}

func TestUpdateMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewMemberService(db)
	member := testutil.CreateTestMember(t, db)

	status := models.MemberStatusInactive
	phone := "+233209999999"
	updated, err := svc.UpdateMember(member.ID, MemberUpdateFields{Status: &status, Phone: &phone})
	testutil.AssertNoError(t, err)

	if updated.Status != models.MemberStatusInactive {
		t.Errorf("expected inactive status, got %q", updated.Status)
	}
	if updated.Phone != phone {
		t.Errorf("expected updated phone, got %q", updated.Phone)
	}
}

func TestDeleteMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewMemberService(db)
	member := testutil.CreateTestMember(t, db)

	testutil.AssertNoError(t, svc.DeleteMember(member.ID))

	_, err := svc.GetMemberByID(member.ID)
	testutil.AssertAppError(t, err, "MEMBER_NOT_FOUND")
}
