package parse

import "testing"

func TestLocation(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		district  string
		street    string
		remainder string
	}{
		{
			name:      "full address",
			in:        "台中市西屯區台灣大道三段99號",
			district:  "西屯區",
			street:    "台灣大道",
			remainder: "三段99號",
		},
		{
			name:      "other city",
			in:        "台北市信義區松仁路100號",
			district:  "信義區",
			street:    "松仁路",
			remainder: "100號",
		},
		{
			name:      "no city prefix",
			in:        "北屯區文心路四段55號",
			district:  "北屯區",
			street:    "文心路",
			remainder: "四段55號",
		},
		{
			name:      "district only",
			in:        "西屯區",
			district:  "西屯區",
			street:    DefaultStreet,
			remainder: DefaultRemainder,
		},
		{
			name:      "street only",
			in:        "大隆路192號",
			district:  DefaultDistrict,
			street:    "大隆路",
			remainder: "192號",
		},
		{
			name:      "no recognizable tokens",
			in:        "某某地方",
			district:  DefaultDistrict,
			street:    DefaultStreet,
			remainder: "某某地方",
		},
		{
			name:      "empty input falls back",
			in:        "",
			district:  FallbackDistrict,
			street:    FallbackStreet,
			remainder: FallbackRemainder,
		},
		{
			name:      "blank input falls back",
			in:        "   ",
			district:  FallbackDistrict,
			street:    FallbackStreet,
			remainder: FallbackRemainder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			district, street, remainder := Location(tt.in)
			if district != tt.district || street != tt.street || remainder != tt.remainder {
				t.Errorf("Location(%q) = (%q, %q, %q), want (%q, %q, %q)",
					tt.in, district, street, remainder, tt.district, tt.street, tt.remainder)
			}
		})
	}
}

func TestPlate(t *testing.T) {
	tests := []struct {
		in      string
		letters string
		digits  string
	}{
		{"ABC-1234", "ABC", "1234"},
		{"1234", "", "1234"},
		{"AB-12-34", "AB", "12-34"}, // split once on the first hyphen
		{"", "", ""},
		{"-1234", "", "1234"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			letters, digits := Plate(tt.in)
			if letters != tt.letters || digits != tt.digits {
				t.Errorf("Plate(%q) = (%q, %q), want (%q, %q)", tt.in, letters, digits, tt.letters, tt.digits)
			}
		})
	}
}
