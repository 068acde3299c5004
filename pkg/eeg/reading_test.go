package eeg

import (
	"errors"
	"testing"
)

const sampleRaw = "F[not_focus:0.88 focus:0.12] Y[yaw_left:0.29 yaw_right:0.71] yaw=3416.347 B[rate0.5=0.00]"

func TestParseReading(t *testing.T) {
	r, err := ParseReading(sampleRaw)
	if err != nil {
		t.Fatalf("ParseReading failed: %v", err)
	}

	if r.Focus != 0.12 {
		t.Errorf("Focus = %v, want 0.12", r.Focus)
	}
	if r.NotFocus != 0.88 {
		t.Errorf("NotFocus = %v, want 0.88", r.NotFocus)
	}
	if r.YawLeft != 0.29 {
		t.Errorf("YawLeft = %v, want 0.29", r.YawLeft)
	}
	if r.YawRight != 0.71 {
		t.Errorf("YawRight = %v, want 0.71", r.YawRight)
	}
	if r.YawAbsolute != 3416.347 {
		t.Errorf("YawAbsolute = %v, want 3416.347", r.YawAbsolute)
	}
	if r.BlinkRate != 0.0 {
		t.Errorf("BlinkRate = %v, want 0", r.BlinkRate)
	}
}

func TestParseReading_FieldOrder(t *testing.T) {
	// Same fields, different order, plus an unknown field that must be ignored.
	raw := "yaw=-12.5 B[rate0.5=0.03] quality=87 Y[yaw_right:0.40 yaw_left:0.60] F[focus:0.55 not_focus:0.45]"

	r, err := ParseReading(raw)
	if err != nil {
		t.Fatalf("ParseReading failed: %v", err)
	}
	if r.Focus != 0.55 || r.NotFocus != 0.45 {
		t.Errorf("focus pair = (%v, %v), want (0.55, 0.45)", r.Focus, r.NotFocus)
	}
	if r.YawAbsolute != -12.5 {
		t.Errorf("YawAbsolute = %v, want -12.5", r.YawAbsolute)
	}
}

func TestParseReading_LabelPrefix(t *testing.T) {
	r, err := ParseReading("not_focus | " + sampleRaw)
	if err != nil {
		t.Fatalf("ParseReading failed: %v", err)
	}
	if r.Focus != 0.12 {
		t.Errorf("Focus = %v, want 0.12", r.Focus)
	}
}

func TestParseReading_Malformed(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantField string
	}{
		{
			name:      "missing focus block",
			raw:       "Y[yaw_left:0.29 yaw_right:0.71] yaw=3416.347 B[rate0.5=0.00]",
			wantField: "focus",
		},
		{
			name:      "missing yaw",
			raw:       "F[not_focus:0.88 focus:0.12] Y[yaw_left:0.29 yaw_right:0.71] B[rate0.5=0.00]",
			wantField: "yaw",
		},
		{
			name:      "missing blink rate",
			raw:       "F[not_focus:0.88 focus:0.12] Y[yaw_left:0.29 yaw_right:0.71] yaw=3416.347",
			wantField: "blink_rate",
		},
		{
			name:      "non-numeric focus",
			raw:       "F[not_focus:0.88 focus:high] Y[yaw_left:0.29 yaw_right:0.71] yaw=3416.347 B[rate0.5=0.00]",
			wantField: "focus",
		},
		{
			name:      "empty",
			raw:       "",
			wantField: "focus",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseReading(tt.raw)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var merr *MalformedReadingError
			if !errors.As(err, &merr) {
				t.Fatalf("expected *MalformedReadingError, got %T", err)
			}
			if merr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", merr.Field, tt.wantField)
			}
		})
	}
}

func TestParseReading_Deterministic(t *testing.T) {
	a, err := ParseReading(sampleRaw)
	if err != nil {
		t.Fatalf("ParseReading failed: %v", err)
	}
	b, err := ParseReading(sampleRaw)
	if err != nil {
		t.Fatalf("ParseReading failed: %v", err)
	}

	// Everything but the timestamp must match exactly.
	a.Timestamp = b.Timestamp
	if a != b {
		t.Errorf("readings differ: %+v vs %+v", a, b)
	}
}
