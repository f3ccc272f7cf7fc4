package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/twtraffic/violation-reporter/internal/logging"
	"github.com/twtraffic/violation-reporter/internal/model"
	"github.com/twtraffic/violation-reporter/internal/portal"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("traffic-report %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("traffic-report - Taichung traffic-violation submission tool")
			fmt.Println()
			fmt.Println("Usage: traffic-report [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables (also read from .env):")
			fmt.Println("  TRAFFIC_LOG_FILE       Log file path (default traffic_violation.log)")
			fmt.Println("  TRAFFIC_CAPTCHA_DIR    Captcha scratch directory (default captcha_catch)")
			fmt.Println("  TRAFFIC_ENABLE_OCR     y/n, default y")
			fmt.Println("  TRAFFIC_OCR_RETRIES    OCR retry budget (default 3)")
			return
		}
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	in := bufio.NewReader(os.Stdin)
	fmt.Println("=== 交通違規檢舉工具 ===")

	fmt.Println("\n--- 設定選項 ---")
	enableOCR := promptBool(in, "是否啟用OCR自動識別驗證碼？(y/n，預設y)：", envDefault("TRAFFIC_ENABLE_OCR", "y") != "n")
	captchaDir := prompt(in, "驗證碼暫存資料夾路徑（Enter使用預設captcha_catch）：", os.Getenv("TRAFFIC_CAPTCHA_DIR"))
	retries := promptInt(in, "OCR重試次數（Enter使用預設3次）：", envInt("TRAFFIC_OCR_RETRIES", 3))

	log, closer, err := logging.NewFileLogger(envDefault("TRAFFIC_LOG_FILE", logging.DefaultPath))
	if err != nil {
		return err
	}
	defer closer.Close()

	client, err := portal.New(portal.Options{
		CaptchaDir:        captchaDir,
		DisableOCR:        !enableOCR,
		MaxCaptchaRetries: retries,
		Logger:            log,
	})
	if err != nil {
		return err
	}
	defer client.PurgeCaptchaImages()

	ocrState := "啟用"
	if !enableOCR {
		ocrState = "停用"
	}
	fmt.Printf("設定完成：OCR=%s，重試次數=%d\n", ocrState, retries)

	user, err := promptUser(in)
	if err != nil {
		return err
	}
	violation, err := promptViolation(in)
	if err != nil {
		return err
	}

	ctx := context.Background()
	result := client.SubmitViolation(ctx, user, violation, "")

	if result.CaptchaRequired {
		fmt.Printf("\n請開啟驗證碼圖片：%s\n", result.CaptchaPath)
		text := prompt(in, "請輸入驗證碼：", "")
		imagePath := result.CaptchaPath
		result = client.SubmitViolation(ctx, user, violation, text)
		client.RemoveCaptchaImage(imagePath)
	}

	if result.Success {
		fmt.Println("\n✓ " + result.Message)
	} else {
		fmt.Println("\n✗ " + result.Message)
		if result.CaptchaPath != "" {
			fmt.Printf("  （本次使用的驗證碼圖片：%s）\n", result.CaptchaPath)
		}
	}
	return nil
}

// promptUser collects and validates reporter identity fields, re-prompting
// on bad national IDs or gender tokens.
func promptUser(in *bufio.Reader) (model.UserInfo, error) {
	fmt.Println("\n--- 檢舉人資料 ---")
	for {
		name := prompt(in, "姓名：", "")
		gender := prompt(in, "性別（male/female 或 1/2/男/女）：", "")
		id := prompt(in, "身分證字號：", "")
		if !model.ValidNationalID(strings.ToUpper(strings.TrimSpace(id))) {
			fmt.Println("身分證字號格式或檢核碼錯誤，請重新輸入。")
			continue
		}
		address := prompt(in, "聯絡地址：", "")
		phone := prompt(in, "聯絡電話：", "")
		email := prompt(in, "Email：", "")

		user, err := model.NewUserInfo(name, gender, id, address, phone, email)
		if err != nil {
			fmt.Printf("資料有誤：%v，請重新輸入。\n", err)
			continue
		}
		return user, nil
	}
}

// promptViolation collects the violation fields.
func promptViolation(in *bufio.Reader) (model.ViolationInfo, error) {
	fmt.Println("\n--- 違規資料 ---")
	for {
		video := prompt(in, "影片檔案路徑：", "")
		datetime := prompt(in, "違規時間（YYYY-MM-DD HH:MM）：", "")
		plate := prompt(in, "車牌號碼（如 ABC-1234）：", "")
		location := prompt(in, "違規地點：", "")

		violation, err := model.NewViolationInfo(video, datetime, plate, location)
		if err != nil {
			fmt.Printf("資料有誤：%v，請重新輸入。\n", err)
			continue
		}
		return violation, nil
	}
}

func prompt(in *bufio.Reader, label, fallback string) string {
	fmt.Print(label)
	line, _ := in.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return fallback
	}
	return line
}

func promptBool(in *bufio.Reader, label string, fallback bool) bool {
	switch strings.ToLower(prompt(in, label, "")) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	}
	return fallback
}

func promptInt(in *bufio.Reader, label string, fallback int) int {
	raw := prompt(in, label, "")
	if n, err := strconv.Atoi(raw); err == nil && n > 0 {
		return n
	}
	return fallback
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil && n > 0 {
		return n
	}
	return fallback
}
