package model

import (
	"strings"
	"testing"
)

func TestValidNationalID(t *testing.T) {
	tests := []struct {
		id    string
		valid bool
	}{
		{"A123456789", true},
		{"B123456780", true},
		{"A123456788", false}, // checksum off by one
		{"A123456780", false},
		{"a123456789", false}, // lowercase letter
		{"A12345678", false},  // too short
		{"A1234567890", false},
		{"AB23456789", false},
		{"1123456789", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := ValidNationalID(tt.id); got != tt.valid {
				t.Errorf("ValidNationalID(%q) = %v, want %v", tt.id, got, tt.valid)
			}
		})
	}
}

func TestNormalizeGender(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"male", "male", false},
		{"m", "male", false},
		{"1", "male", false},
		{"男", "male", false},
		{"MALE", "male", false},
		{" female ", "female", false},
		{"f", "female", false},
		{"2", "female", false},
		{"女", "female", false},
		{"x", "", true},
		{"3", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeGender(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NormalizeGender(%q) should fail", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeGender(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("NormalizeGender(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewUserInfo(t *testing.T) {
	u, err := NewUserInfo("王小明", "1", "a123456789", "台中市西屯區大隆路1號", "0912345678", "wang@example.com")
	if err != nil {
		t.Fatalf("NewUserInfo failed: %v", err)
	}
	if u.Gender != "male" {
		t.Errorf("Gender: got %q, want male", u.Gender)
	}
	if u.NationalID != "A123456789" {
		t.Errorf("NationalID not normalized: got %q", u.NationalID)
	}
}

func TestNewUserInfo_Invalid(t *testing.T) {
	tests := []struct {
		name                                  string
		uname, gender, id, addr, phone, email string
	}{
		{"bad checksum", "王小明", "male", "A123456788", "addr", "0912", "a@b.c"},
		{"bad gender", "王小明", "unknown", "A123456789", "addr", "0912", "a@b.c"},
		{"bad email", "王小明", "male", "A123456789", "addr", "0912", "not-an-email"},
		{"empty name", "", "male", "A123456789", "addr", "0912", "a@b.c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewUserInfo(tt.uname, tt.gender, tt.id, tt.addr, tt.phone, tt.email); err == nil {
				t.Error("NewUserInfo should fail")
			}
		})
	}
}

func TestGenderFromID(t *testing.T) {
	male := UserInfo{NationalID: "A123456789"}
	if got := male.GenderFromID(); got != "male" {
		t.Errorf("GenderFromID: got %q, want male", got)
	}
	female := UserInfo{NationalID: "A223456789"}
	if got := female.GenderFromID(); got != "female" {
		t.Errorf("GenderFromID: got %q, want female", got)
	}
}

func TestNewViolationInfo_Defaults(t *testing.T) {
	v, err := NewViolationInfo("evidence.mp4", "2026-08-30 14:30", "ABC-1234", "台中市西屯區大隆路")
	if err != nil {
		t.Fatalf("NewViolationInfo failed: %v", err)
	}
	if v.Description != DefaultDescription {
		t.Errorf("Description: got %q, want %q", v.Description, DefaultDescription)
	}
	if !strings.HasPrefix(v.Statute, "53-1") {
		t.Errorf("Statute: got %q, want the default statute citation", v.Statute)
	}
}

func TestNewViolationInfo_BadDatetime(t *testing.T) {
	tests := []string{
		"2026/08/30 14:30",
		"2026-08-30",
		"yesterday",
		"",
	}
	for _, dt := range tests {
		t.Run(dt, func(t *testing.T) {
			if _, err := NewViolationInfo("evidence.mp4", dt, "ABC-1234", "somewhere"); err == nil {
				t.Errorf("NewViolationInfo should reject datetime %q", dt)
			}
		})
	}
}
