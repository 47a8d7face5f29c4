// Package config は環境変数から設定を読み込み、アプリケーション全体で使用する設定を提供します。
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config はアプリケーションの設定を保持する構造体です。
type Config struct {
	// サーバー設定
	Port    string // APIサーバーのポート番号
	GinMode string // Ginの実行モード (debug, release, test)

	// CORS設定
	CORSAllowedOrigins string // CORS許可オリジン（カンマ区切り）

	// 生成AI設定
	GeminiAPIKey string // Gemini APIキー
	GeminiModel  string // 使用するGeminiモデル名

	// PDF生成設定
	FontsDir    string // TTFフォントを配置するディレクトリ
	ArtifactDir string // 生成したPDFを保存するルートディレクトリ

	// テンプレート制限
	MinFontSize float64 // テンプレートで指定できる最小フォントサイズ
	MaxFontSize float64 // テンプレートで指定できる最大フォントサイズ
}

// Load は環境変数から設定を読み込みます。
// .env.local ファイルが存在する場合はそこから読み込みます。
func Load() (*Config, error) {
	// .env.local ファイルを読み込む（存在しない場合はスキップ）
	loadEnvFile()

	config := &Config{
		// サーバー設定
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "debug"),

		// CORS設定
		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),

		// 生成AI設定
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.0-flash-001"),

		// PDF生成設定
		FontsDir:    getEnv("FONTS_DIR", "fonts"),
		ArtifactDir: getEnv("ARTIFACT_DIR", filepath.Join(os.TempDir(), "lingua-forge")),

		// テンプレート制限
		MinFontSize: getEnvAsFloat("MIN_FONT_SIZE", 6),
		MaxFontSize: getEnvAsFloat("MAX_FONT_SIZE", 24),
	}

	// 必須設定のバリデーション
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func loadEnvFile() {
	if err := godotenv.Load(".env.local"); err == nil {
		return
	}

	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	parent := filepath.Dir(cwd)
	if parent == "" || parent == cwd {
		return
	}

	_ = godotenv.Load(filepath.Join(parent, ".env.local"))
}

// Validate は設定の妥当性を検証します。
func (c *Config) Validate() error {
	// ローカル開発ではAPIキーは任意（skipAiジョブのみ動作する）
	// 本番環境では厳格にチェックする想定
	if c.GinMode == "release" {
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required in release mode")
		}
	}

	if c.MinFontSize <= 0 || c.MaxFontSize < c.MinFontSize {
		return fmt.Errorf("invalid font size bounds: min=%v max=%v", c.MinFontSize, c.MaxFontSize)
	}

	return nil
}

// getEnv は環境変数を取得し、存在しない場合はデフォルト値を返します。
func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsFloat は環境変数を浮動小数点数として取得します。
func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}
