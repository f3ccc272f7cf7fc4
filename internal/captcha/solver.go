package captcha

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"

	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/otiai10/gosseract/v2"
	"github.com/rs/zerolog"
)

// Whitelist is the character set the portal uses for its challenges.
const Whitelist = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// contrastBoost is the contrast adjustment applied before OCR, a 2x
// enhancement in imaging's percentage terms.
const contrastBoost = 50

// Solver reads the challenge text out of a captcha image file.
type Solver interface {
	Solve(path string) (string, error)
}

// TesseractSolver preprocesses the image and runs Tesseract constrained to
// the portal's alphanumeric whitelist.
type TesseractSolver struct {
	log zerolog.Logger
}

// NewTesseractSolver returns a solver logging through log.
func NewTesseractSolver(log zerolog.Logger) *TesseractSolver {
	return &TesseractSolver{log: log}
}

// Solve loads the image at path, preprocesses it (noise suppression,
// grayscale, sharpen, contrast boost, binarization) and OCRs it. The result
// is accepted only when it has at least four characters, all alphanumeric;
// anything else returns an *Error carrying the rejected text.
func (s *TesseractSolver) Solve(path string) (string, error) {
	img, err := imaging.Open(path)
	if err != nil {
		s.log.Error().Err(err).Str("path", path).Msg("captcha image decode failed")
		return "", &Error{Op: "solve", Reason: "image decode failed", Err: err}
	}

	pre := Preprocess(img)

	// Tesseract wants a file path; write the preprocessed frame beside
	// the system temp files and drop it when done.
	tmp, err := os.CreateTemp("", "captcha-pre-*.png")
	if err != nil {
		return "", &Error{Op: "solve", Reason: "temp file creation failed", Err: err}
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := png.Encode(tmp, pre); err != nil {
		tmp.Close()
		return "", &Error{Op: "solve", Reason: "temp image encode failed", Err: err}
	}
	tmp.Close()

	text, err := s.recognize(tmpPath)
	if err != nil {
		s.log.Error().Err(err).Msg("captcha OCR failed")
		return "", &Error{Op: "solve", Reason: "OCR failed", Err: err}
	}

	text = strings.TrimSpace(text)
	s.log.Info().Str("text", text).Msg("captcha OCR result")

	if !Acceptable(text) {
		return "", &Error{Op: "solve", Reason: "result failed acceptance policy", Text: text}
	}
	return text, nil
}

func (s *TesseractSolver) recognize(path string) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImage(path); err != nil {
		return "", err
	}
	if err := client.SetWhitelist(Whitelist); err != nil {
		return "", err
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return "", err
	}
	return client.Text()
}

// Acceptable reports whether an OCR candidate looks like a plausible
// challenge answer: at least four characters, all alphanumeric.
func Acceptable(text string) bool {
	if len(text) < 4 {
		return false
	}
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c >= 'A' && c <= 'Z':
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}

// Preprocess runs the OCR preparation pipeline: suppress colored noise,
// grayscale, sharpen, boost contrast, then binarize.
func Preprocess(img image.Image) image.Image {
	cleaned := suppressNoise(img)
	gray := imaging.Grayscale(cleaned)
	sharp := imaging.Sharpen(gray, 1.0)
	boosted := imaging.AdjustContrast(sharp, contrastBoost)
	return segment.Threshold(boosted, 128)
}

// suppressNoise whitens pixels whose color sits far from the darkest pixel
// in the frame. Portals draw colored interference lines over near-black
// glyphs; dropping everything distant from the ink color erases most of
// them before thresholding.
func suppressNoise(img image.Image) *image.NRGBA {
	src := imaging.Clone(img)
	bounds := src.Bounds()

	ink, ok := darkestColor(src)
	if !ok {
		return src
	}

	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c, ok := colorful.MakeColor(src.NRGBAAt(x, y))
			if !ok {
				continue
			}
			if c.DistanceLab(ink) > 0.45 {
				src.SetNRGBA(x, y, white)
			}
		}
	}
	return src
}

// darkestColor finds the lowest-luminance opaque pixel, used as the ink
// reference color.
func darkestColor(img *image.NRGBA) (colorful.Color, bool) {
	bounds := img.Bounds()
	found := false
	var ink colorful.Color
	best := 2.0 // luminance is 0..1

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c, ok := colorful.MakeColor(img.NRGBAAt(x, y))
			if !ok {
				continue
			}
			l, _, _ := c.Lab()
			if l < best {
				best = l
				ink = c
				found = true
			}
		}
	}
	return ink, found
}
