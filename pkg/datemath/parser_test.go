package datemath_test

import (
	"errors"
	"testing"
	"time"

	"deadline-doom/pkg/datemath"
)

func TestNewParser(t *testing.T) {
	_, err := datemath.NewParser("Asia/Ho_Chi_Minh")
	if err != nil {
		t.Fatalf("unexpected error creating valid parser: %v", err)
	}

	_, err = datemath.NewParser("Invalid/Timezone")
	if err == nil {
		t.Fatalf("expected error for invalid timezone")
	}
}

func TestParse(t *testing.T) {
	parser, _ := datemath.NewParser("UTC")
	baseTime := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC) // Wednesday, May 1, 2024
	startOfBase := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "Calendar date", input: "2024-05-09", want: startOfBase.AddDate(0, 0, 8)},
		{name: "Calendar date with spaces", input: "  2024-05-01 ", want: startOfBase},
		{name: "Today", input: "today", want: startOfBase},
		{name: "Tomorrow uppercase", input: "Tomorrow", want: startOfBase.AddDate(0, 0, 1)},
		{name: "Yesterday", input: "yesterday", want: startOfBase.AddDate(0, 0, -1)},
		{name: "In 3 days", input: "in 3 days", want: startOfBase.AddDate(0, 0, 3)},
		{name: "In 2 weeks", input: "in 2 weeks", want: startOfBase.AddDate(0, 0, 14)},
		{name: "In 1 month", input: "in 1 month", want: startOfBase.AddDate(0, 1, 0)},
		{name: "Invalid duration pattern", input: "in a few days", wantErr: true},
		{name: "Next Monday (from Wed)", input: "next monday", want: startOfBase.AddDate(0, 0, 5)},
		{name: "Next Wednesday (from Wed)", input: "next wednesday", want: startOfBase.AddDate(0, 0, 7)},
		{name: "Invalid Next Weekday", input: "next funday", wantErr: true},
		{name: "Unknown phrase", input: "some random day", wantErr: true},
		{name: "Empty", input: "", wantErr: true},
		{name: "Impossible date", input: "2024-02-30", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.Parse(tt.input, baseTime)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, datemath.ErrUnrecognized) {
					t.Errorf("error %v should wrap ErrUnrecognized", err)
				}
				return
			}
			if !got.Equal(tt.want) {
				t.Errorf("Parse() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStartOfDay_UsesParserTimezone(t *testing.T) {
	parser := datemath.MustParser("Asia/Ho_Chi_Minh") // UTC+7
	// 20:00 UTC on May 1 is already May 2 in Ho Chi Minh City.
	got := parser.StartOfDay(time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC))

	if got.Day() != 2 || got.Hour() != 0 {
		t.Errorf("StartOfDay() = %v, want May 2 00:00 local", got)
	}
	if parser.Format(got) != "2024-05-02" {
		t.Errorf("Format() = %s, want 2024-05-02", parser.Format(got))
	}
}
