package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "dot separator", input: "12.34", want: 1234},
		{name: "comma separator", input: "12,34", want: 1234},
		{name: "integer", input: "75", want: 7500},
		{name: "single fractional digit", input: "9.5", want: 950},
		{name: "third digit rounds down", input: "12.344", want: 1234},
		{name: "third digit rounds up", input: "12.345", want: 1235},
		{name: "zero", input: "0", want: 0},
		{name: "negative", input: "-5.50", want: -550},
		{name: "leading whitespace", input: " 3.10", want: 310},
		{name: "max expense boundary", input: "10000.00", want: 1_000_000},
		{name: "empty", input: "", wantErr: true},
		{name: "letters", input: "abc", wantErr: true},
		{name: "two separators", input: "1.2.3", wantErr: true},
		{name: "plus sign", input: "+5", wantErr: true},
		{name: "bare minus", input: "-", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDecimalToCents(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDecimalToCents(%q) expected error, got %d", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDecimalToCents(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseDecimalToCents(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatCents(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{cents: 1234, want: "12.34"},
		{cents: 7500, want: "75.00"},
		{cents: 5, want: "0.05"},
		{cents: 0, want: "0.00"},
		{cents: -550, want: "-5.50"},
		{cents: 1_000_000, want: "10000.00"},
	}

	for _, tt := range tests {
		if got := FormatCents(tt.cents); got != tt.want {
			t.Errorf("FormatCents(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	m := Money{Cents: 12345}
	data, err := m.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if string(data) != "123.45" {
		t.Fatalf("MarshalJSON = %s, want 123.45", data)
	}

	var parsed Money
	if err := parsed.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if parsed.Cents != m.Cents {
		t.Errorf("round trip changed cents: got %d, want %d", parsed.Cents, m.Cents)
	}

	var fromString Money
	if err := fromString.UnmarshalJSON([]byte(`"123.45"`)); err != nil {
		t.Fatalf("UnmarshalJSON string form: %v", err)
	}
	if fromString.Cents != 12345 {
		t.Errorf("string form cents = %d, want 12345", fromString.Cents)
	}
}
