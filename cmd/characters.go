package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-comic-genesis/internal/pipeline"

	"github.com/spf13/cobra"
)

// charactersCmd は、キャラクター設定の生成のみを実行するのだ。
var charactersCmd = &cobra.Command{
	Use:   "characters",
	Short: "キャラクター設定（JSON）のみを生成して保存するのだ。",
	Long: `あらすじを解析し、登場キャラクターの名前と作画向けの詳細な設定を
JSON形式で出力するのだ。台本や画像の生成は行わないのだよ。`,
	RunE: charactersCommand,
}

func charactersCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if !hasStorySource() {
		return fmt.Errorf("あらすじ（--story / --story-url / --story-file）を指定してほしいのだ")
	}
	resolveStdinFallback()

	cfg := loadConfig()

	slog.Info("キャラクター設定の生成を開始するのだ！", "model", cfg.TextModel)

	if err := pipeline.ExecuteProfilesOnly(ctx, cfg); err != nil {
		return fmt.Errorf("キャラクター設定の生成中にエラーが発生したのだ: %w", err)
	}
	return nil
}
