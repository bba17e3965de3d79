package timeparse

import (
	"testing"
	"time"
)

func TestParse_ISO8601(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2024-03-15", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"2024-03-15T10:30:00Z", time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"2024-03-15 10:30:45", time.Date(2024, 3, 15, 10, 30, 45, 0, time.UTC)},
		{"2024-03-15T10:30:00.500Z", time.Date(2024, 3, 15, 10, 30, 0, 500000000, time.UTC)},
	}

	for _, tt := range tests {
		got, ok := Parse(tt.input)
		if !ok {
			t.Errorf("Parse(%q) failed, want %v", tt.input, tt.want)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParse_Rejects(t *testing.T) {
	inputs := []string{
		"", "   ", "not a date", "CUST-9931", "2024-99-99",
		"12345", // numeric but outside the serial date window
	}
	for _, input := range inputs {
		if got, ok := Parse(input); ok {
			t.Errorf("Parse(%q) = %v, want failure", input, got)
		}
	}
}

func TestParse_ExcelSerial(t *testing.T) {
	// 45000 days after 1899-12-30 is 2023-03-15.
	got, ok := Parse("45000")
	if !ok {
		t.Fatal("Parse(45000) failed")
	}
	want := time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Parse(45000) = %v, want %v", got, want)
	}
}

func TestParseOrdered(t *testing.T) {
	dmy, ok := ParseOrdered("05/04/2024", OrderDMY)
	if !ok || dmy.Day() != 5 || dmy.Month() != time.April {
		t.Errorf("ParseOrdered DMY = %v, want 2024-04-05", dmy)
	}

	mdy, ok := ParseOrdered("05/04/2024", OrderMDY)
	if !ok || mdy.Day() != 4 || mdy.Month() != time.May {
		t.Errorf("ParseOrdered MDY = %v, want 2024-05-04", mdy)
	}

	// Day > 12 is unambiguous regardless of preference.
	forced, ok := ParseOrdered("25/04/2024", OrderMDY)
	if !ok || forced.Day() != 25 || forced.Month() != time.April {
		t.Errorf("ParseOrdered(25/04/2024, MDY) = %v, want 2024-04-25", forced)
	}
}

func TestCombine(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	combined, ok := Combine(date, "14:45:30")
	if !ok {
		t.Fatal("Combine with valid clock failed")
	}
	want := time.Date(2024, 3, 15, 14, 45, 30, 0, time.UTC)
	if !combined.Equal(want) {
		t.Errorf("Combine = %v, want %v", combined, want)
	}

	// Unparsable clock falls back to implicit midnight.
	fallback, ok := Combine(date, "garbage")
	if ok {
		t.Error("Combine with garbage clock reported success")
	}
	if !fallback.Equal(date) {
		t.Errorf("Combine fallback = %v, want %v", fallback, date)
	}
}

func TestOrderDetector(t *testing.T) {
	tests := []struct {
		name    string
		samples []string
		want    Order
	}{
		{"day first", []string{"25/01/2024", "13/02/2024", "01/03/2024"}, OrderDMY},
		{"month first", []string{"01/25/2024", "02/13/2024"}, OrderMDY},
		{"ambiguous", []string{"01/02/2024", "03/04/2024"}, OrderYMD},
		{"empty", nil, OrderYMD},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewOrderDetector(10)
			for _, s := range tt.samples {
				d.Add(s)
			}
			if got := d.Detect(); got != tt.want {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}
