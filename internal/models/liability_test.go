package models

import (
	"encoding/json"
	"testing"
)

func TestLoanFlagUnmarshalJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want bool
	}{
		{"bool_true", `true`, true},
		{"bool_false", `false`, false},
		{"string_true", `"true"`, true},
		{"string_false", `"false"`, false},
		{"string_true_mixed_case", `"True"`, true},
		{"string_padded", `" true "`, true},
		{"string_garbage", `"yes"`, false},
		{"number", `1`, false},
		{"null", `null`, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var f LoanFlag
			if err := json.Unmarshal([]byte(tc.in), &f); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if f.Bool() != tc.want {
				t.Errorf("input %s: expected %v, got %v", tc.in, tc.want, f.Bool())
			}
		})
	}
}

func TestLoanFlagInStruct(t *testing.T) {
	// The flag arrives inside liability payloads; the string form must
	// round-trip to a real boolean.
	var payload struct {
		IsLoan LoanFlag `json:"is_loan"`
	}
	if err := json.Unmarshal([]byte(`{"is_loan":"false"}`), &payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.IsLoan.Bool() {
		t.Error(`expected string "false" to decode as false`)
	}

	out, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != `{"is_loan":false}` {
		t.Errorf("expected boolean encoding, got %s", out)
	}
}

func TestLiabilityRecalculate(t *testing.T) {
	cases := []struct {
		name          string
		total, paid   int64
		wantRemaining int64
		wantStatus    LiabilityStatus
	}{
		{"untouched", 5000, 0, 5000, LiabilityStatusOpen},
		{"partial", 5000, 2000, 3000, LiabilityStatusPartial},
		{"paid_exactly", 5000, 5000, 0, LiabilityStatusPaid},
		{"overpaid", 5000, 6000, -1000, LiabilityStatusPaid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := Liability{TotalAmount: tc.total, AmountPaid: tc.paid}
			l.Recalculate()
			if l.AmountRemaining != tc.wantRemaining {
				t.Errorf("expected remaining %d, got %d", tc.wantRemaining, l.AmountRemaining)
			}
			if l.Status != tc.wantStatus {
				t.Errorf("expected status %q, got %q", tc.wantStatus, l.Status)
			}
		})
	}
}
