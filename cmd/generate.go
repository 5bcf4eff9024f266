package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-comic-genesis/internal/pipeline"

	"github.com/spf13/cobra"
)

// generateCmd は、あらすじから漫画PDFまでの全工程を実行するのだ。
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "あらすじから漫画PDF一式を生成するのだ。",
	Long: `あらすじを解析してキャラクター設定と台本を生成し、表紙・本編・締めページの
画像を順に描いて1冊のPDFに綴じるのだ。出力はPDF（と指定に応じた台本JSON・ページ画像）になるのだよ。`,
	RunE: generateCommand,
}

func generateCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// 1. 必須チェック
	if !hasStorySource() {
		return fmt.Errorf("あらすじ（--story / --story-url / --story-file）を指定してほしいのだ")
	}
	resolveStdinFallback()

	// 2. 環境変数等から基本設定をロードするのだ
	cfg := loadConfig()

	slog.Info("漫画生成パイプラインを起動するのだ！",
		"title", opts.Title,
		"style", opts.Style,
		"text_model", cfg.TextModel,
		"image_model", cfg.ImageModel,
		"output", opts.OutputDir)

	// 3. 更新した config を考慮しつつパイプラインを実行するのだ
	if err := pipeline.Execute(ctx, cfg); err != nil {
		return fmt.Errorf("パイプライン実行中にエラーが発生したのだ: %w", err)
	}

	slog.Info("すべての生成工程が完了したのだ！")
	return nil
}

// resolveStdinFallback はソース未指定かつパイプ入力のとき標準入力を使うのだ。
func resolveStdinFallback() {
	if opts.Story == "" && opts.StoryURL == "" && opts.StoryFile == "" && isStdin() {
		opts.StoryFile = "-"
	}
}
