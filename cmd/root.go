package cmd

import (
	"fmt"
	"os"

	"github.com/shouni/go-comic-genesis/internal/config"

	clibase "github.com/shouni/go-cli-base"
	"github.com/spf13/cobra"
)

// opts は全サブコマンドで共有される実行時パラメータなのだ。
var opts config.GenerateOptions

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	// --- 物語の基本情報 ---
	rootCmd.PersistentFlags().StringVarP(&opts.Title, "title", "t", "", "漫画のタイトルなのだ。")
	rootCmd.PersistentFlags().StringVarP(&opts.Author, "author", "a", "", "作者名なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.Style, "style", config.DefaultStyle, "画風（Shonen / Shojo / Seinen / Chibi）なのだ。")

	// --- ソース入力関連 ---
	rootCmd.PersistentFlags().StringVar(&opts.Story, "story", "", "あらすじテキストを直接指定するのだ。")
	rootCmd.PersistentFlags().StringVarP(&opts.StoryURL, "story-url", "u", "", "Webページからあらすじを取得するためのURLなのだ。")
	rootCmd.PersistentFlags().StringVarP(&opts.StoryFile, "story-file", "f", "", "あらすじファイルのパス（'-'で標準入力なのだ）。")

	// --- 生成結果の出力設定 ---
	rootCmd.PersistentFlags().StringVarP(&opts.OutputDir, "output-dir", "o", config.DefaultOutputDir, "成果物の保存先ディレクトリ（ローカル or gs://...）なのだ。")
	rootCmd.PersistentFlags().BoolVar(&opts.SaveScript, "save-script", false, "台本JSONも成果物として残すのだ。")
	rootCmd.PersistentFlags().BoolVar(&opts.SavePages, "save-pages", false, "PDFに加えてページ画像を個別保存するのだ。")

	// --- AIモデル・挙動設定 ---
	rootCmd.PersistentFlags().StringVar(&opts.TextModel, "model", config.DefaultTextModel, "テキスト生成に使う Gemini モデル名なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.ImageModel, "image-model", config.DefaultImageModel, "画像生成に使う Gemini モデル名なのだ。")
	rootCmd.PersistentFlags().DurationVar(&opts.HTTPTimeout, "http-timeout", config.DefaultHTTPTimeout, "Webリクエストのタイムアウトなのだ。")
	rootCmd.PersistentFlags().DurationVar(&opts.ImageInterval, "image-interval", config.DefaultImageInterval, "画像生成コールの最小間隔なのだ。")
}

// preRunAppE は、コマンド実行前に環境変数などの必須チェックを行うのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	// Gemini APIを利用するため、APIキーの存在チェックは欠かせないのだ！
	if os.Getenv("GEMINI_API_KEY") == "" {
		return fmt.Errorf("エラー: 環境変数 GEMINI_API_KEY が設定されていません。Gemini APIの利用には必須なのだ")
	}

	return nil
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	clibase.Execute(
		"comic-genesis",
		addAppFlags,
		preRunAppE,
		generateCmd,
		scriptCmd,
		charactersCmd,
		imageCmd,
	)
}

// loadConfig は環境設定とフラグをマージするのだ。
func loadConfig() *config.Config {
	cfg := config.LoadConfig()
	if opts.TextModel != "" {
		cfg.TextModel = opts.TextModel
	}
	if opts.ImageModel != "" {
		cfg.ImageModel = opts.ImageModel
	}
	cfg.Options = opts
	return cfg
}

// hasStorySource はあらすじの入力経路がひとつでも指定されているか返すのだ。
func hasStorySource() bool {
	return opts.Story != "" || opts.StoryURL != "" || opts.StoryFile != "" || isStdin()
}

func isStdin() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}
