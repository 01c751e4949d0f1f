package services

import (
	"testing"
	"time"

	"parishbooks/internal/models"
	"parishbooks/internal/pagination"
	"parishbooks/internal/testutil"

	"gorm.io/gorm"
)

func newAttendanceFixture(t *testing.T, db *gorm.DB) AttendanceServicer {
	t.Helper()
	return NewAttendanceService(db, NewMemberService(db), NewEventService(db))
}

func TestRecordAttendance(t *testing.T) {
	t.Run("creates_record", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newAttendanceFixture(t, db)
		event := testutil.CreateTestEvent(t, db)
		member := testutil.CreateTestMember(t, db)

		record, err := svc.RecordAttendance(event.ID, member.ID, true, "")
		testutil.AssertNoError(t, err)
		if !record.Present {
			t.Error("expected present record")
		}
	})

	t.Run("rerecording_updates_existing_row", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newAttendanceFixture(t, db)
		event := testutil.CreateTestEvent(t, db)
		member := testutil.CreateTestMember(t, db)

		first, err := svc.RecordAttendance(event.ID, member.ID, true, "")
		testutil.AssertNoError(t, err)

		second, err := svc.RecordAttendance(event.ID, member.ID, false, "left early")
		testutil.AssertNoError(t, err)
		if second.ID != first.ID {
			t.Errorf("expected the same record, got %s and %s", first.ID, second.ID)
		}
		if second.Present {
			t.Error("expected record flipped to absent")
		}

		var count int64
		db.Model(&models.Attendance{}).Where("event_id = ?", event.ID).Count(&count)
		if count != 1 {
			t.Errorf("expected one record per member per event, got %d", count)
		}
	})

	t.Run("unknown_event", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newAttendanceFixture(t, db)
		member := testutil.CreateTestMember(t, db)

		_, err := svc.RecordAttendance("00000000-0000-0000-0000-000000000000", member.ID, true, "")
		testutil.AssertAppError(t, err, "EVENT_NOT_FOUND")
	})

	t.Run("unknown_member", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newAttendanceFixture(t, db)
		event := testutil.CreateTestEvent(t, db)

		_, err := svc.RecordAttendance(event.ID, "00000000-0000-0000-0000-000000000000", true, "")
		testutil.AssertAppError(t, err, "MEMBER_NOT_FOUND")
	})
}

func TestGetEventSummary(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := newAttendanceFixture(t, db)
	event := testutil.CreateTestEvent(t, db)

	for i := 0; i < 3; i++ {
		member := testutil.CreateTestMember(t, db)
		_, err := svc.RecordAttendance(event.ID, member.ID, true, "")
		testutil.AssertNoError(t, err)
	}
	absent := testutil.CreateTestMember(t, db)
	_, err := svc.RecordAttendance(event.ID, absent.ID, false, "")
	testutil.AssertNoError(t, err)

	summary, err := svc.GetEventSummary(event.ID)
	testutil.AssertNoError(t, err)
	if summary.Present != 3 || summary.Absent != 1 {
		t.Errorf("expected 3 present / 1 absent, got %d/%d", summary.Present, summary.Absent)
	}
}

func TestGetMemberAttendance(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := newAttendanceFixture(t, db)
	member := testutil.CreateTestMember(t, db)

	for i := 0; i < 2; i++ {
		event := testutil.CreateTestEvent(t, db)
		_, err := svc.RecordAttendance(event.ID, member.ID, true, "")
		testutil.AssertNoError(t, err)
	}

	result, err := svc.GetMemberAttendance(member.ID, pagination.PageRequest{})
	testutil.AssertNoError(t, err)
	if result.TotalItems != 2 {
		t.Errorf("expected 2 records, got %d", result.TotalItems)
	}
}

func TestEventDeleteRemovesAttendance(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	eventSvc := NewEventService(db)
	svc := NewAttendanceService(db, NewMemberService(db), eventSvc)

	event := testutil.CreateTestEvent(t, db)
	member := testutil.CreateTestMember(t, db)
	_, err := svc.RecordAttendance(event.ID, member.ID, true, "")
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, eventSvc.DeleteEvent(event.ID))

	var count int64
	db.Model(&models.Attendance{}).Where("event_id = ?", event.ID).Count(&count)
	if count != 0 {
		t.Errorf("expected attendance removed with the event, got %d", count)
	}

	_, err = eventSvc.GetEventByID(event.ID)
	testutil.AssertAppError(t, err, "EVENT_NOT_FOUND")
}

func TestCreateEventValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewEventService(db)

	start := time.Now()
	end := start.Add(-time.Hour)
	_, err := svc.CreateEvent("Backwards Event", "", "", start, &end)
	testutil.AssertAppError(t, err, "INVALID_INPUT")

	_, err = svc.CreateEvent("", "", "", start, nil)
	testutil.AssertAppError(t, err, "INVALID_INPUT")
}
