package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-comic-genesis/internal/pipeline"

	"github.com/spf13/cobra"
)

// scriptCmd は、台本の生成（JSON出力）のみを実行するのだ。
var scriptCmd = &cobra.Command{
	Use:   "script",
	Short: "台本（JSON）のみを生成して保存するのだ。",
	Long: `あらすじを解析し、キャラクター設定と漫画の台本（ページ、コマ、台詞、描写指示）を
JSON形式で出力するのだ。画像生成は行わないのだよ。出力した台本は手直しして
image サブコマンドに渡せるのだ。`,
	RunE: scriptCommand,
}

func scriptCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if !hasStorySource() {
		return fmt.Errorf("あらすじ（--story / --story-url / --story-file）を指定してほしいのだ")
	}
	resolveStdinFallback()

	cfg := loadConfig()

	slog.Info("台本生成を開始するのだ！", "title", opts.Title, "model", cfg.TextModel)

	if err := pipeline.ExecuteScriptOnly(ctx, cfg); err != nil {
		return fmt.Errorf("台本生成中にエラーが発生したのだ: %w", err)
	}
	return nil
}
