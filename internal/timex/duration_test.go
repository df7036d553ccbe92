package timex

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDurationUnmarshalString(t *testing.T) {
	var d Duration
	if err := json.Unmarshal([]byte(`"5m"`), &d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Duration != 5*time.Minute {
		t.Errorf("want 5m, got %v", d.Duration)
	}
}

func TestDurationUnmarshalNumber(t *testing.T) {
	var d Duration
	if err := json.Unmarshal([]byte(`60000000000`), &d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Duration != time.Minute {
		t.Errorf("want 1m, got %v", d.Duration)
	}
}

func TestDurationUnmarshalInvalid(t *testing.T) {
	var d Duration
	if err := json.Unmarshal([]byte(`"not a duration"`), &d); err == nil {
		t.Error("want error for invalid duration string")
	}
	if err := json.Unmarshal([]byte(`true`), &d); err == nil {
		t.Error("want error for invalid type")
	}
}

func TestDurationRoundTrip(t *testing.T) {
	in := Duration{90 * time.Second}
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out Duration
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Duration != in.Duration {
		t.Errorf("round trip mismatch: %v != %v", out.Duration, in.Duration)
	}
}
