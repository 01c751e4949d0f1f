package models

import "testing"

func TestPaymentDetailsValue(t *testing.T) {
	t.Run("empty_stores_null", func(t *testing.T) {
		v, err := PaymentDetails{}.Value()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v != nil {
			t.Errorf("expected NULL for empty details, got %v", v)
		}
	})

	t.Run("populated_stores_json", func(t *testing.T) {
		v, err := PaymentDetails{Source: PaymentDetailsSourceLiability, LiabilityID: "abc"}.Value()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		s, ok := v.(string)
		if !ok {
			t.Fatalf("expected string, got %T", v)
		}
		if s != `{"source":"liability","liability_id":"abc"}` {
			t.Errorf("unexpected encoding %s", s)
		}
	})
}

func TestPaymentDetailsScan(t *testing.T) {
	t.Run("valid_json", func(t *testing.T) {
		var p PaymentDetails
		if err := p.Scan(`{"source":"liability","liability_id":"abc"}`); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.LiabilityID != "abc" || p.Source != PaymentDetailsSourceLiability {
			t.Errorf("unexpected details %+v", p)
		}
	})

	t.Run("null", func(t *testing.T) {
		p := PaymentDetails{LiabilityID: "stale"}
		if err := p.Scan(nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !p.IsZero() {
			t.Errorf("expected reset details, got %+v", p)
		}
	})

	t.Run("malformed_json_is_tolerated", func(t *testing.T) {
		var p PaymentDetails
		if err := p.Scan("not json at all"); err != nil {
			t.Fatalf("expected malformed data to be ignored, got error: %v", err)
		}
		if !p.IsZero() {
			t.Errorf("expected empty details, got %+v", p)
		}
	})

	t.Run("byte_slice", func(t *testing.T) {
		var p PaymentDetails
		if err := p.Scan([]byte(`{"liability_id":"xyz"}`)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.LiabilityID != "xyz" {
			t.Errorf("unexpected details %+v", p)
		}
	})
}
