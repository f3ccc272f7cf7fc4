package portal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"

	"github.com/twtraffic/violation-reporter/internal/model"
	"github.com/twtraffic/violation-reporter/internal/parse"
)

// detailContentLimit is the portal's detail narrative length cap.
const detailContentLimit = 500

// SubmitViolation runs one submission attempt end to end: form-page fetch,
// captcha resolution, multipart assembly, post, response interpretation.
//
// captchaText, when non-empty, is used verbatim; a fresh captcha image is
// still fetched so the portal sees a challenge request preceding the
// submission and the caller has an audit copy. When captchaText is empty
// and OCR is disabled, the attempt suspends: the result carries
// CaptchaRequired with the image path, no post happens, and the image is
// left in place for the caller (release it with RemoveCaptchaImage).
//
// The captcha image of the attempt is removed on every other exit path.
// Domain-level failures never surface as panics or errors; the result's
// Message says what went wrong.
func (c *Client) SubmitViolation(ctx context.Context, user model.UserInfo, violation model.ViolationInfo, captchaText string) model.SubmissionResult {
	if _, err := os.Stat(violation.VideoFile); err != nil {
		c.log.Warn().Str("path", violation.VideoFile).Msg("video file missing")
		return model.SubmissionResult{Message: fmt.Sprintf("影片檔案不存在：%s", violation.VideoFile)}
	}

	totalFileSize, err := c.fetchFormField(ctx)
	if err != nil {
		if errors.Is(err, errFieldMissing) {
			c.log.Error().Msg("form page missing totfilesize field")
			return model.SubmissionResult{Message: "無法找到參數"}
		}
		c.log.Error().Err(err).Msg("form page fetch failed")
		return model.SubmissionResult{Message: fmt.Sprintf("提交過程發生錯誤：%v", err)}
	}

	var captchaPath string
	cleanup := true
	defer func() {
		if cleanup {
			c.store.Remove(captchaPath)
		}
	}()

	switch {
	case captchaText != "":
		// The portal expects a challenge request before every save, so
		// fetch an image even though the supplied text is what counts.
		captchaPath, err = c.fetcher.Fetch(ctx)
		if err != nil {
			return model.SubmissionResult{Message: fmt.Sprintf("提交過程發生錯誤：%v", err)}
		}
	case !c.enableOCR:
		captchaPath, err = c.fetcher.Fetch(ctx)
		if err != nil {
			return model.SubmissionResult{Message: fmt.Sprintf("提交過程發生錯誤：%v", err)}
		}
		cleanup = false // image ownership transfers to the caller
		return model.SubmissionResult{
			Message:         "需要手動輸入驗證碼",
			CaptchaPath:     captchaPath,
			CaptchaRequired: true,
		}
	default:
		captchaText, captchaPath, err = c.resolver.Resolve(ctx)
		if err != nil {
			return model.SubmissionResult{Message: fmt.Sprintf("提交過程發生錯誤：%v", err)}
		}
	}

	out, err := c.post(ctx, user, violation, captchaText, totalFileSize)
	if err != nil {
		c.log.Error().Err(err).Msg("submission failed")
		return model.SubmissionResult{
			Message:     fmt.Sprintf("提交過程發生錯誤：%v", err),
			CaptchaPath: captchaPath,
		}
	}

	if out.success {
		c.log.Info().Str("video", violation.VideoFile).Msg("submission accepted")
	}
	return model.SubmissionResult{Success: out.success, Message: out.message, CaptchaPath: captchaPath}
}

// fetchFormField loads the form page and extracts the hidden total-file-size
// value that must be echoed back on submission.
func (c *Client) fetchFormField(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodGet, c.formURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("form page returned status %d", resp.StatusCode)
	}
	return totalFileSizeField(resp.Body)
}

// post assembles the multipart payload and performs the submission.
func (c *Client) post(ctx context.Context, user model.UserInfo, violation model.ViolationInfo, captchaText, totalFileSize string) (outcome, error) {
	district, street, remainder := parse.Location(violation.Location)
	plateLetters, plateDigits := parse.Plate(violation.LicensePlate)

	body, contentType, err := buildPayload(user, violation, submissionFields{
		totalFileSize: totalFileSize,
		district:      district,
		street:        street,
		remainder:     remainder,
		plateLetters:  plateLetters,
		plateDigits:   plateDigits,
		captchaText:   captchaText,
	})
	if err != nil {
		return outcome{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, submitTimeout)
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodPost, c.submitURL, body)
	if err != nil {
		return outcome{}, err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return outcome{}, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return outcome{}, err
	}
	return interpretResponse(resp.StatusCode, string(respBody), c.log), nil
}

// submissionFields carries the derived values that join the user and
// violation data in the form payload.
type submissionFields struct {
	totalFileSize string
	district      string
	street        string
	remainder     string
	plateLetters  string
	plateDigits   string
	captchaText   string
}

// buildPayload writes the multipart form body. Field names, the fixed
// isforeigner/job values and the empty licensenumber slots are portal
// conventions and must match exactly.
func buildPayload(user model.UserInfo, violation model.ViolationInfo, sub submissionFields) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := []struct{ name, value string }{
		{"totfilesize", sub.totalFileSize},
		{"name", user.Name},
		{"gender", canonicalGender(user.Gender)},
		{"isforeigner", "taiwan"},
		{"sub", user.NationalID},
		{"address", user.Address},
		{"liaisontel", user.Phone},
		{"email", user.Email},
		{"job", ""},
		{"qclass", violation.Statute},
		{"cityarea", sub.district},
		{"street", sub.street},
		{"inputaddress", sub.remainder},
		{"violationdatetime", violation.Datetime},
		{"licensenumber1", ""},
		{"licensenumber2", sub.plateLetters},
		{"licensenumber3", sub.plateDigits},
		{"licensenumber4", ""},
		{"detailcontent", detailContent(violation)},
		{"captcha", sub.captchaText},
	}
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", err
		}
	}

	if err := attachVideo(w, violation.VideoFile); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// attachVideo streams the evidence file into the filename1 part with the
// fixed video/mp4 content type.
func attachVideo(w *multipart.Writer, path string) error {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="filename1"; filename="%s"`, filepath.Base(path)))
	h.Set("Content-Type", "video/mp4")
	part, err := w.CreatePart(h)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(part, f)
	return err
}

// detailContent renders the narrative the portal shows reviewers, capped at
// the portal's length limit.
func detailContent(v model.ViolationInfo) string {
	s := fmt.Sprintf("車輛於%s在%s%s，詳見附件影片。", v.Datetime, v.Location, v.Description)
	if r := []rune(s); len(r) > detailContentLimit {
		s = string(r[:detailContentLimit])
	}
	return s
}

// canonicalGender maps anything outside the two canonical tokens to empty,
// matching the portal's select options.
func canonicalGender(g string) string {
	if g == "male" || g == "female" {
		return g
	}
	return ""
}

func (c *Client) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	for k, vs := range c.headers {
		req.Header[k] = append([]string(nil), vs...)
	}
	return req, nil
}
