package model

import (
	"fmt"
	"strings"
)

// Default violation description and statute citation used when the caller
// does not override them. The statute string is what the portal expects in
// its qclass field, verbatim.
const (
	DefaultDescription = "闖紅燈"
	DefaultStatute     = "53-1 駕駛人行經有燈光號誌管制之交岔路口闖紅燈者。"
)

// UserInfo identifies the person filing the report.
type UserInfo struct {
	Name       string `validate:"required"`
	Gender     string `validate:"required,oneof=male female"`
	NationalID string `validate:"required,twid"`
	Address    string `validate:"required"`
	Phone      string `validate:"required"`
	Email      string `validate:"required,email"`
}

// NewUserInfo builds a validated UserInfo. The gender token is normalized
// (1/male/m/男 and 2/female/f/女 are accepted) and the national ID is
// uppercased and checked against the format and checksum rules. An error is
// returned for any field that fails validation.
func NewUserInfo(name, gender, nationalID, address, phone, email string) (UserInfo, error) {
	g, err := NormalizeGender(gender)
	if err != nil {
		return UserInfo{}, err
	}

	u := UserInfo{
		Name:       strings.TrimSpace(name),
		Gender:     g,
		NationalID: strings.ToUpper(strings.TrimSpace(nationalID)),
		Address:    strings.TrimSpace(address),
		Phone:      strings.TrimSpace(phone),
		Email:      strings.TrimSpace(email),
	}
	if err := validate().Struct(u); err != nil {
		return UserInfo{}, fmt.Errorf("invalid user info: %w", err)
	}
	return u, nil
}

// GenderFromID infers gender from the second character of the national ID
// (1 is male, 2 is female). It is a convenience for pre-filling prompts and
// never overrides an explicitly supplied gender.
func (u UserInfo) GenderFromID() string {
	if len(u.NationalID) == 10 && u.NationalID[1] == '2' {
		return "female"
	}
	return "male"
}

// NormalizeGender maps the accepted gender spellings onto the two canonical
// tokens the portal understands.
func NormalizeGender(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "male", "m", "男":
		return "male", nil
	case "2", "female", "f", "女":
		return "female", nil
	}
	return "", fmt.Errorf("unrecognized gender %q: want male/female, 1/2, m/f, 男/女", raw)
}

// ViolationInfo describes one observed violation and its video evidence.
type ViolationInfo struct {
	// VideoFile is the local path of the evidence video to upload.
	VideoFile string `validate:"required"`

	// Datetime is the violation time in "YYYY-MM-DD HH:MM" form.
	Datetime string `validate:"required,datetime=2006-01-02 15:04"`

	// LicensePlate is free text, conventionally "LETTERS-DIGITS".
	LicensePlate string `validate:"required"`

	// Location is the free-text violation location; it is decomposed
	// heuristically before submission.
	Location string `validate:"required"`

	Description string `validate:"required"`
	Statute     string `validate:"required"`
}

// NewViolationInfo builds a validated ViolationInfo with the default
// description and statute citation.
func NewViolationInfo(videoFile, datetime, licensePlate, location string) (ViolationInfo, error) {
	v := ViolationInfo{
		VideoFile:    strings.TrimSpace(videoFile),
		Datetime:     strings.TrimSpace(datetime),
		LicensePlate: strings.TrimSpace(licensePlate),
		Location:     strings.TrimSpace(location),
		Description:  DefaultDescription,
		Statute:      DefaultStatute,
	}
	if err := validate().Struct(v); err != nil {
		return ViolationInfo{}, fmt.Errorf("invalid violation info: %w", err)
	}
	return v, nil
}

// SubmissionResult is the sole outcome of a submission attempt. Expected
// failures are reported here rather than as errors.
type SubmissionResult struct {
	// Success reports whether the portal accepted the submission.
	Success bool

	// Message is a human-readable outcome description.
	Message string

	// CaptchaPath, when non-empty, is the captcha image used for this
	// attempt, kept available for caller inspection.
	CaptchaPath string

	// CaptchaRequired is set when OCR is disabled and a human must read
	// the image at CaptchaPath, then resubmit with the text.
	CaptchaRequired bool
}
