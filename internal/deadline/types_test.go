package deadline

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseApplicationType(t *testing.T) {
	tests := []struct {
		key     string
		want    ApplicationType
		wantErr bool
	}{
		{"fast_track", ApplicationFastTrack, false},
		{"non_notified", ApplicationNonNotified, false},
		{"Non-Notified", ApplicationNonNotified, false},
		{" notified_hearing ", ApplicationNotifiedHearing, false},
		{"notified_hearing_extended", ApplicationNotifiedHearingExtended, false},
		{"standard", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := ParseApplicationType(tt.key)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseApplicationType(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrUnknownApplicationType) {
				t.Errorf("ParseApplicationType(%q) error = %v, want ErrUnknownApplicationType", tt.key, err)
			}
			if got != tt.want {
				t.Errorf("ParseApplicationType(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestApplicationTypeRoundTrip(t *testing.T) {
	for _, at := range ApplicationTypes() {
		got, err := ParseApplicationType(at.String())
		if err != nil || got != at {
			t.Errorf("ParseApplicationType(%q) = %v, %v", at.String(), got, err)
		}
		if at.Label() == "unknown" {
			t.Errorf("%v has no label", at)
		}
	}
	if ApplicationType(0).BaseDays() != 0 {
		t.Errorf("invalid type has a base allowance")
	}
}

func TestParseHoldPeriod(t *testing.T) {
	hold, err := ParseHoldPeriod("h1", "further_information", "2024-03-05", "8/03/2024")
	if err != nil {
		t.Fatalf("ParseHoldPeriod() error = %v", err)
	}
	if hold.ID != "h1" || hold.Type != HoldFurtherInformation {
		t.Errorf("ParseHoldPeriod() = %+v", hold)
	}
	if hold.Start.String() != "2024-03-05" || hold.End.String() != "2024-03-08" {
		t.Errorf("ParseHoldPeriod() dates = %v, %v", hold.Start, hold.End)
	}
	if !hold.Complete() {
		t.Errorf("Complete() = false, want true")
	}
}

func TestParseHoldPeriod_RawInput(t *testing.T) {
	hold, err := ParseHoldPeriod("", "deferral", "", "not a date")
	if err != nil {
		t.Fatalf("ParseHoldPeriod() error = %v", err)
	}
	if hold.ID == "" {
		t.Errorf("ParseHoldPeriod() did not generate an id")
	}
	if hold.Complete() || !hold.Start.IsZero() || !hold.End.IsZero() {
		t.Errorf("ParseHoldPeriod() kept invalid bounds: %+v", hold)
	}

	if _, err := ParseHoldPeriod("x", "lunch", "2024-03-05", "2024-03-06"); !errors.Is(err, ErrUnknownHoldType) {
		t.Errorf("ParseHoldPeriod(unknown type) error = %v, want ErrUnknownHoldType", err)
	}
}

func TestParseExtension(t *testing.T) {
	tests := []struct {
		raw  string
		want int
		set  bool
	}{
		{"5", 5, true},
		{" 12 ", 12, true},
		{"0", 0, true},
		{"-4", 0, true},
		{"", 0, false},
		{"five", 0, false},
		{"2.5", 0, false},
		{"10000", 10000, true},
		{"10001", 0, false},
		{"9223372036854775807", 0, false},
		{"9223372036854775808", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			ext := ParseExtension("e", tt.raw)
			if (ext.Days != nil) != tt.set {
				t.Errorf("ParseExtension(%q).Days set = %v, want %v", tt.raw, ext.Days != nil, tt.set)
			}
			if ext.Value() != tt.want {
				t.Errorf("ParseExtension(%q).Value() = %d, want %d", tt.raw, ext.Value(), tt.want)
			}
		})
	}
}

func TestResultJSON(t *testing.T) {
	hold, _ := ParseHoldPeriod("h", "commissioned_report", "2024-03-05", "2024-03-06")
	r := Result{
		Trigger:         hold.Start,
		ApplicationType: ApplicationNotifiedHearing,
		Holds:           []HoldBreakdown{{ID: "h", Type: hold.Type, Start: hold.Start, End: hold.End}},
	}

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	out := string(data)
	for _, want := range []string{
		`"trigger":"2024-03-05"`,
		`"application_type":"notified_hearing"`,
		`"type":"commissioned_report"`,
		`"decision":""`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Marshal() = %s, missing %s", out, want)
		}
	}
	if strings.Contains(out, "day0_reason") {
		t.Errorf("Marshal() = %s, unadjusted Day 0 should omit its reason", out)
	}
}
