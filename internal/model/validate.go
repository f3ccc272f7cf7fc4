package model

import (
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	vOnce    sync.Once
	vStruct  *validator.Validate
	twidForm = regexp.MustCompile(`^[A-Z][0-9]{9}$`)
)

// Letter values for the national ID checksum. The sequence is not strictly
// alphabetical: I, O and W-Z carry historical assignments.
var twidLetterValues = map[byte]int{
	'A': 10, 'B': 11, 'C': 12, 'D': 13, 'E': 14, 'F': 15, 'G': 16, 'H': 17,
	'I': 34, 'J': 18, 'K': 19, 'L': 20, 'M': 21, 'N': 22, 'O': 35, 'P': 23,
	'Q': 24, 'R': 25, 'S': 26, 'T': 27, 'U': 28, 'V': 29, 'W': 32, 'X': 30,
	'Y': 31, 'Z': 33,
}

var twidWeights = [11]int{1, 9, 8, 7, 6, 5, 4, 3, 2, 1, 1}

// ValidNationalID reports whether id matches the [A-Z][0-9]{9} format and
// passes the weighted checksum.
func ValidNationalID(id string) bool {
	if !twidForm.MatchString(id) {
		return false
	}
	x := twidLetterValues[id[0]]
	digits := [11]int{x / 10, x % 10}
	for i := 1; i < 10; i++ {
		digits[i+1] = int(id[i] - '0')
	}
	sum := 0
	for i, d := range digits {
		sum += d * twidWeights[i]
	}
	return sum%10 == 0
}

// validate returns the shared validator with the custom twid rule
// registered. Registration happens once; the validator itself is safe for
// concurrent use.
func validate() *validator.Validate {
	vOnce.Do(func() {
		vStruct = validator.New(validator.WithRequiredStructEnabled())
		_ = vStruct.RegisterValidation("twid", func(fl validator.FieldLevel) bool {
			return ValidNationalID(fl.Field().String())
		})
	})
	return vStruct
}
