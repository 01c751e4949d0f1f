package services

import (
	"errors"
	"testing"

	"parishbooks/internal/models"
	"parishbooks/internal/testutil"
)

// failingSender simulates a provider outage.
type failingSender struct{}

func (failingSender) Send(phone, body string) error {
	return errors.New("provider unavailable")
}

func TestSendToMembers(t *testing.T) {
	t.Run("delivers_to_members_with_phones", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMessageService(db, NewLogSender(), "Parish")

		memberA := testutil.CreateTestMember(t, db)
		memberB := testutil.CreateTestMember(t, db)

		message, err := svc.SendToMembers("Service moved to 10am", []string{memberA.ID, memberB.ID})
		testutil.AssertNoError(t, err)

		if len(message.Recipients) != 2 {
			t.Fatalf("expected 2 recipients, got %d", len(message.Recipients))
		}
		for _, r := range message.Recipients {
			if r.Status != models.MessageStatusSent {
				t.Errorf("expected sent status, got %q", r.Status)
			}
		}
	})

	t.Run("skips_members_without_phone", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMessageService(db, NewLogSender(), "Parish")

		withPhone := testutil.CreateTestMember(t, db)
		noPhone := testutil.CreateTestMember(t, db)
		testutil.AssertNoError(t, db.Model(noPhone).Update("phone", "").Error)

		message, err := svc.SendToMembers("Hello", []string{withPhone.ID, noPhone.ID})
		testutil.AssertNoError(t, err)
		if len(message.Recipients) != 1 {
			t.Errorf("expected 1 reachable recipient, got %d", len(message.Recipients))
		}
	})

	t.Run("no_reachable_recipients", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMessageService(db, NewLogSender(), "Parish")

		noPhone := testutil.CreateTestMember(t, db)
		testutil.AssertNoError(t, db.Model(noPhone).Update("phone", "").Error)

		_, err := svc.SendToMembers("Hello", []string{noPhone.ID})
		testutil.AssertAppError(t, err, "NO_RECIPIENTS")
	})

	t.Run("delivery_failure_marks_recipient_failed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMessageService(db, failingSender{}, "Parish")

		member := testutil.CreateTestMember(t, db)

		message, err := svc.SendToMembers("Hello", []string{member.ID})
		testutil.AssertNoError(t, err)
		if message.Recipients[0].Status != models.MessageStatusFailed {
			t.Errorf("expected failed status, got %q", message.Recipients[0].Status)
		}
		if message.Recipients[0].Error == "" {
			t.Error("expected the delivery error to be recorded")
		}
	})

	t.Run("nil_sender_leaves_queued", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMessageService(db, nil, "Parish")

		member := testutil.CreateTestMember(t, db)

		message, err := svc.SendToMembers("Hello", []string{member.ID})
		testutil.AssertNoError(t, err)
		if message.Recipients[0].Status != models.MessageStatusQueued {
			t.Errorf("expected queued status, got %q", message.Recipients[0].Status)
		}
	})

	t.Run("empty_body", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMessageService(db, NewLogSender(), "Parish")

		member := testutil.CreateTestMember(t, db)
		_, err := svc.SendToMembers("", []string{member.ID})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetMessageByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewMessageService(db, NewLogSender(), "Parish")

	member := testutil.CreateTestMember(t, db)
	sent, err := svc.SendToMembers("Hello", []string{member.ID})
	testutil.AssertNoError(t, err)

	loaded, err := svc.GetMessageByID(sent.ID)
	testutil.AssertNoError(t, err)
	if len(loaded.Recipients) != 1 {
		t.Errorf("expected recipients preloaded, got %d", len(loaded.Recipients))
	}

	_, err = svc.GetMessageByID("00000000-0000-0000-0000-000000000000")
	testutil.AssertAppError(t, err, "MESSAGE_NOT_FOUND")
}
