package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-comic-genesis/internal/pipeline"

	"github.com/spf13/cobra"
)

// imageCmd は、既存の台本JSONファイルを読み込んで画像生成フェーズを実行するためのサブコマンドなのだ。
// 台本生成をスキップして、画像生成とPDF綴じ込みのみを行うのだ。
var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "台本JSONから画像を生成してPDFに綴じるのだ。",
	Long: `すでに生成・修正済みの台本JSONファイルを読み込み、表紙から締めページまでの
画像生成とPDFの綴じ込みを実行するのだ。テキスト生成のコストを抑えつつ、
画像の再生成や調整を行いたい場合に便利なのだ。`,
	RunE: imageCommand,
}

func init() {
	imageCmd.Flags().StringVarP(&opts.ScriptFile, "script-file", "s", "", "台本JSONファイルのパス（ローカル or gs://...）なのだ。")
}

// imageCommand は、image サブコマンドの実行ロジック本体なのだ。
func imageCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if opts.ScriptFile == "" {
		return fmt.Errorf("台本JSON（--script-file）を指定してほしいのだ")
	}

	cfg := loadConfig()

	slog.Info("台本からの画像生成を開始するのだ！",
		"script", opts.ScriptFile,
		"image_model", cfg.ImageModel)

	if err := pipeline.ExecuteImageOnly(ctx, cfg); err != nil {
		return fmt.Errorf("画像生成中にエラーが発生したのだ: %w", err)
	}
	return nil
}
