package utils

import "testing"

func TestExtractFloorAndIndex(t *testing.T) {
	cases := []struct {
		deskNumber string
		floor      int
		index      int
		wantErr    error
	}{
		{"205", 2, 5, nil},
		{"101", 1, 1, nil},
		{"999", 9, 99, nil},
		{"2003", 2, 3, nil},
		{"12045", 12, 45, nil},
		{"3000", 3, 0, nil},
		{"99", 0, 0, ErrDeskNumberTooShort},
		{"5", 0, 0, ErrDeskNumberTooShort},
		{"abc", 0, 0, ErrDeskNumberNotNumeric},
		{"", 0, 0, ErrDeskNumberNotNumeric},
	}

	for _, tt := range cases {
		floor, index, err := ExtractFloorAndIndex(tt.deskNumber)
		if err != tt.wantErr {
			t.Fatalf("ExtractFloorAndIndex(%q) err=%v, want %v", tt.deskNumber, err, tt.wantErr)
		}
		if err != nil {
			continue
		}
		if floor != tt.floor || index != tt.index {
			t.Fatalf("ExtractFloorAndIndex(%q)=(%d,%d), want (%d,%d)", tt.deskNumber, floor, index, tt.floor, tt.index)
		}
	}
}
