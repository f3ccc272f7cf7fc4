package captcha

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// createCaptchaImage renders text in black on white with some colored noise
// lines, approximating a portal challenge.
func createCaptchaImage(t *testing.T, text string) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 160, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 160; x++ {
			img.Set(x, y, color.White)
		}
	}

	// Interference lines in a light color
	for x := 0; x < 160; x++ {
		img.Set(x, 12+x%5, color.RGBA{R: 180, G: 220, B: 250, A: 255})
		img.Set(x, 30-x%7, color.RGBA{R: 250, G: 200, B: 180, A: 255})
	}

	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(20, 28),
	}
	d.DrawString(text)

	path := filepath.Join(t.TempDir(), "captcha.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create image file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

func TestAcceptable(t *testing.T) {
	tests := []struct {
		text string
		ok   bool
	}{
		{"AB12", true},
		{"X9Y8Z7", true},
		{"ab12", true},
		{"AB1", false},   // too short
		{"AB 12", false}, // inner whitespace
		{"AB-12", false},
		{"", false},
		{"語音驗證", false}, // multibyte is never whitelisted output
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := Acceptable(tt.text); got != tt.ok {
				t.Errorf("Acceptable(%q) = %v, want %v", tt.text, got, tt.ok)
			}
		})
	}
}

func TestPreprocess_Binarizes(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			src.Set(x, y, color.White)
		}
	}
	for y := 5; y < 15; y++ {
		for x := 10; x < 30; x++ {
			src.Set(x, y, color.Black)
		}
	}

	out := Preprocess(src)

	bounds := out.Bounds()
	if bounds.Dx() != 40 || bounds.Dy() != 20 {
		t.Fatalf("dimensions changed: got %dx%d", bounds.Dx(), bounds.Dy())
	}

	gray, ok := out.(*image.Gray)
	if !ok {
		t.Fatalf("Preprocess should binarize to *image.Gray, got %T", out)
	}
	sawInk, sawPaper := false, false
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			switch gray.GrayAt(x, y).Y {
			case 0:
				sawInk = true
			case 255:
				sawPaper = true
			default:
				t.Fatalf("non-binary pixel %d at (%d,%d)", gray.GrayAt(x, y).Y, x, y)
			}
		}
	}
	if !sawInk || !sawPaper {
		t.Error("expected both ink and paper pixels after thresholding")
	}
}

func TestSolver_MissingFile(t *testing.T) {
	s := NewTesseractSolver(zerolog.Nop())

	_, err := s.Solve(filepath.Join(t.TempDir(), "nope.png"))
	if err == nil {
		t.Fatal("Solve should fail for a missing file")
	}
	var cerr *Error
	if !errors.As(err, &cerr) {
		t.Errorf("error should be a *Error, got %T", err)
	}
}

func TestSolver_RejectsBlankImage(t *testing.T) {
	path := createCaptchaImage(t, "")
	s := NewTesseractSolver(zerolog.Nop())

	// Tesseract absent: OCR fails. Tesseract present: the empty result
	// fails the acceptance policy. Either way Solve returns a *Error.
	_, err := s.Solve(path)
	if err == nil {
		t.Fatal("Solve should reject an image with no text")
	}
	var cerr *Error
	if !errors.As(err, &cerr) {
		t.Errorf("error should be a *Error, got %T", err)
	}
}

func TestSolver_ReadsRenderedText(t *testing.T) {
	path := createCaptchaImage(t, "AB12CD")
	s := NewTesseractSolver(zerolog.Nop())

	text, err := s.Solve(path)
	if err != nil {
		var cerr *Error
		if errors.As(err, &cerr) && cerr.Err != nil {
			// Tesseract might not be installed - skip test
			t.Skip("Tesseract not available")
		}
		// An unacceptable read of a tiny bitmap font is a plausible
		// OCR outcome, not a solver defect
		t.Skipf("OCR could not read the rendered text: %v", err)
	}
	if !Acceptable(text) {
		t.Errorf("Solve returned unacceptable text %q", text)
	}
}
