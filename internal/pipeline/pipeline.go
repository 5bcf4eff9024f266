// Package pipeline はCLIサブコマンドから呼ばれる実行エントリ群です。
// 依存の組み立てと成果物の保存まで含めた1コマンド分の仕事をまとめます。
package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/shouni/go-comic-genesis/internal/builder"
	"github.com/shouni/go-comic-genesis/internal/config"
	"github.com/shouni/go-comic-genesis/pkg/domain"
	"github.com/shouni/go-comic-genesis/pkg/publisher"

	"github.com/shouni/go-http-kit/httpkit"
	gcsfactory "github.com/shouni/go-remote-io/remoteio/gcs"
)

// Execute は、あらすじの取得から漫画PDFの保存までを一気に実行するのだ。
func Execute(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	details, err := resolveStoryDetails(ctx, appCtx)
	if err != nil {
		return err
	}

	orchestrator, err := builder.BuildOrchestrator(appCtx)
	if err != nil {
		return fmt.Errorf("オーケストレーターの構築に失敗したのだ: %w", err)
	}

	result, err := orchestrator.Run(ctx, details, logProgress)
	if err != nil {
		return fmt.Errorf("漫画の生成に失敗したのだ: %w", err)
	}

	return publishResult(ctx, appCtx, result.Script, result.Images)
}

// ExecuteProfilesOnly は、キャラクター設定の生成だけを実行して保存するのだ。
func ExecuteProfilesOnly(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	details, err := resolveStoryDetails(ctx, appCtx)
	if err != nil {
		return err
	}

	profileGen, err := builder.BuildProfileGenerator(appCtx)
	if err != nil {
		return err
	}

	chars, err := profileGen.Generate(ctx, details.Story, details.Style)
	if err != nil {
		return fmt.Errorf("キャラクター設定の生成に失敗したのだ: %w", err)
	}

	path, err := writeJSON(ctx, appCtx, publisher.SafeFileName(details.Title)+"_characters.json", chars)
	if err != nil {
		return err
	}
	slog.Info("キャラクター設定を保存したのだ！", "path", path, "count", len(chars))
	return nil
}

// ExecuteScriptOnly は、台本の生成までを実行してJSONとして保存するのだ。
// 画像生成はスキップされるため、台本を手直ししてから image サブコマンドに渡せる。
func ExecuteScriptOnly(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	details, err := resolveStoryDetails(ctx, appCtx)
	if err != nil {
		return err
	}

	profileGen, err := builder.BuildProfileGenerator(appCtx)
	if err != nil {
		return err
	}
	chars, err := profileGen.Generate(ctx, details.Story, details.Style)
	if err != nil {
		return fmt.Errorf("キャラクター設定の生成に失敗したのだ: %w", err)
	}

	scriptGen, err := builder.BuildScriptGenerator(appCtx)
	if err != nil {
		return err
	}
	script, err := scriptGen.Generate(ctx, details, chars)
	if err != nil {
		return fmt.Errorf("台本の生成に失敗したのだ: %w", err)
	}

	path, err := writeJSON(ctx, appCtx, publisher.SafeFileName(details.Title)+"_script.json", script)
	if err != nil {
		return err
	}
	slog.Info("台本を保存したのだ！", "path", path, "pages", len(script.Pages))
	return nil
}

// ExecuteImageOnly は、既存の台本JSONを読み込み、画像生成と保存だけを実行するのだ。
func ExecuteImageOnly(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	// 台本JSONの読み込み
	rc, err := appCtx.Reader.Open(ctx, cfg.Options.ScriptFile)
	if err != nil {
		return fmt.Errorf("台本ファイル '%s' の読み込みに失敗しました: %w", cfg.Options.ScriptFile, err)
	}
	defer rc.Close()

	var script domain.ComicScript
	if err := json.NewDecoder(rc).Decode(&script); err != nil {
		return fmt.Errorf("台本ファイル '%s' のデコードに失敗しました: %w", cfg.Options.ScriptFile, err)
	}
	domain.SortPages(script.Pages)

	orchestrator, err := builder.BuildOrchestrator(appCtx)
	if err != nil {
		return fmt.Errorf("オーケストレーターの構築に失敗したのだ: %w", err)
	}

	result, err := orchestrator.Render(ctx, &script, logProgress)
	if err != nil {
		return fmt.Errorf("画像生成に失敗したのだ: %w", err)
	}

	return publishResult(ctx, appCtx, result.Script, result.Images)
}

// setupAppContext は、提供された設定と共有コンポーネントを使用して、アプリケーションコンテキストを初期化して返すのだ。
func setupAppContext(ctx context.Context, cfg *config.Config) (*builder.AppContext, error) {
	timeout := cfg.Options.HTTPTimeout
	if timeout <= 0 {
		timeout = config.DefaultHTTPTimeout
	}
	httpClient := httpkit.New(timeout)

	aiClient, err := builder.InitializeAIClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create ai client: %w", err)
	}

	gcsFactory, err := gcsfactory.NewGCSClientFactory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client factory: %w", err)
	}

	reader, err := gcsFactory.NewInputReader()
	if err != nil {
		return nil, err
	}
	writer, err := gcsFactory.NewOutputWriter()
	if err != nil {
		return nil, err
	}

	appCtx := builder.NewAppContext(cfg, httpClient, aiClient, reader, writer)
	return &appCtx, nil
}

// resolveStoryDetails はあらすじテキストを読み込み、入力一式を検証済みで返すのだ。
func resolveStoryDetails(ctx context.Context, appCtx *builder.AppContext) (domain.StoryDetails, error) {
	opts := appCtx.Options

	style, err := domain.ParseStyle(opts.Style)
	if err != nil {
		return domain.StoryDetails{}, err
	}

	source, err := builder.BuildStorySource(appCtx)
	if err != nil {
		return domain.StoryDetails{}, err
	}
	story, err := source.Read(ctx, opts)
	if err != nil {
		return domain.StoryDetails{}, err
	}

	details := domain.StoryDetails{
		Title:  opts.Title,
		Author: opts.Author,
		Style:  style,
		Story:  story,
	}
	if err := details.Validate(); err != nil {
		return domain.StoryDetails{}, err
	}
	return details, nil
}

// publishResult は生成結果を成果物として保存するのだ。
func publishResult(ctx context.Context, appCtx *builder.AppContext, script *domain.ComicScript, images []domain.PageImage) error {
	pub, err := builder.BuildPublisher(appCtx)
	if err != nil {
		return err
	}

	opts := publisher.Options{
		OutputDir:  appCtx.Options.OutputDir,
		SaveScript: appCtx.Options.SaveScript,
		SavePages:  appCtx.Options.SavePages,
	}
	result, err := pub.Publish(ctx, script, images, opts)
	if err != nil {
		return fmt.Errorf("成果物の保存に失敗したのだ: %w", err)
	}

	slog.Info("漫画が完成したのだ！", "pdf", result.PDFPath)
	return nil
}

// writeJSON は中間成果物をJSONとして出力ディレクトリへ書き出すのだ。
func writeJSON(ctx context.Context, appCtx *builder.AppContext, name string, v any) (string, error) {
	path, err := publisher.ResolveOutputPath(appCtx.Options.OutputDir, name)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("JSONのエンコードに失敗したのだ: %w", err)
	}
	if err := appCtx.Writer.Write(ctx, path, bytes.NewReader(data), "application/json; charset=utf-8"); err != nil {
		return "", fmt.Errorf("'%s' の書き込みに失敗したのだ: %w", path, err)
	}
	return path, nil
}

// logProgress はオーケストレーターの進捗をログに流すのだ。
func logProgress(state domain.LoadingState) {
	if !state.IsLoading {
		return
	}
	slog.Info("進捗", "progress", state.Progress, "message", state.Message)
}
