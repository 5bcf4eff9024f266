package config

import (
	"time"

	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義なのだ
const (
	DefaultTextModel     = "gemini-2.5-flash"
	DefaultImageModel    = "gemini-2.5-flash-image-preview"
	DefaultHTTPTimeout   = 30 * time.Second
	DefaultImageInterval = 12 * time.Second // 画像生成コールの最小間隔なのだ
	DefaultOutputDir     = "output"
	DefaultStyle         = "Shonen"
)

// Config はアプリケーション全体の環境設定（APIキーやクラウド設定）を保持する構造体なのだ。
type Config struct {
	ProjectID    string
	LocationID   string
	GeminiAPIKey string
	TextModel    string
	ImageModel   string

	Options GenerateOptions
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
func LoadConfig() *Config {
	cfg := &Config{
		ProjectID:    envutil.GetEnv("PROJECT_ID", ""),
		LocationID:   envutil.GetEnv("REGION", ""),
		GeminiAPIKey: envutil.GetEnv("GEMINI_API_KEY", ""),
		TextModel:    envutil.GetEnv("GEMINI_MODEL", DefaultTextModel),
		ImageModel:   envutil.GetEnv("IMAGE_GEMINI_MODEL", DefaultImageModel),
	}
	return cfg
}

// GenerateOptions は CLI フラグから渡される実行時のパラメータなのだ。
type GenerateOptions struct {
	// 物語の基本情報
	Title  string // --title
	Author string // --author
	Style  string // --style: Shonen / Shojo / Seinen / Chibi
	Story  string // --story: あらすじを直接指定

	// ソース入力関連（--story と排他で使う）
	StoryURL   string // --story-url: Webページからあらすじを取得
	StoryFile  string // --story-file: ファイルから読む（'-'で標準入力なのだ）
	ScriptFile string // --script-file: image サブコマンドで使う既存台本JSON

	// 生成結果の出力設定
	OutputDir  string // --output-dir（ローカル or gs://...）
	SaveScript bool   // --save-script: 台本JSONも成果物に残す
	SavePages  bool   // --save-pages: ページ画像を個別保存する

	// AI挙動設定
	TextModel  string // --model: テキスト生成用のGeminiモデル
	ImageModel string // --image-model: 画像生成用のGeminiモデル

	// 実行制御
	HTTPTimeout   time.Duration // --http-timeout
	ImageInterval time.Duration // --image-interval: 画像生成コールの最小間隔
}
