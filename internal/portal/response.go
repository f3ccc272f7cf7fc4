package portal

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

// The portal reports validation complaints by bundling them into script
// alert() calls, decorated with 【】 brackets and separated by exclamation
// marks; pages that fail some other way carry the literal marker 錯誤.
var (
	alertRe = regexp.MustCompile(`(?s)alert\(["'](.*?)["']\)`)
	bangRe  = regexp.MustCompile(`[!！]+`)
)

// outcome is the interpreted submission response.
type outcome struct {
	success bool
	message string
}

// interpretResponse derives a human-readable outcome from the submission
// response. Alert string literals, when present, are concatenated, stripped
// of bracket decoration, split on exclamation marks and re-joined with a
// full-width semicolon, reproducing the portal's own message convention.
func interpretResponse(status int, body string, log zerolog.Logger) outcome {
	if status != http.StatusOK {
		log.Warn().Int("status", status).Msg("submission rejected")
		return outcome{message: fmt.Sprintf("提交失敗，狀態碼：%d", status)}
	}

	if alerts := alertRe.FindAllStringSubmatch(body, -1); len(alerts) > 0 {
		texts := make([]string, 0, len(alerts))
		for _, m := range alerts {
			texts = append(texts, m[1])
		}
		combined := strings.Join(texts, " ")
		combined = strings.NewReplacer("\n", " ", "\r", " ", "【", "", "】", "").Replace(combined)

		var reasons []string
		for _, p := range bangRe.Split(combined, -1) {
			if p = strings.TrimSpace(p); p != "" {
				reasons = append(reasons, p)
			}
		}
		msg := "未知原因"
		if len(reasons) > 0 {
			msg = strings.Join(reasons, "；")
		}
		log.Warn().Str("reason", msg).Msg("submission rejected")
		return outcome{message: "提交失敗：" + msg}
	}

	if !strings.Contains(body, "錯誤") {
		return outcome{success: true, message: "檢舉提交成功"}
	}

	snippet := body
	if r := []rune(snippet); len(r) > 200 {
		snippet = string(r[:200])
	}
	log.Warn().Str("snippet", snippet).Msg("submission rejected with error marker")
	return outcome{message: "提交失敗：伺服器回應包含錯誤訊息"}
}
