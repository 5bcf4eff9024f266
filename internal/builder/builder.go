package builder

import (
	"context"
	"fmt"

	"github.com/shouni/go-comic-genesis/internal/runner"
	"github.com/shouni/go-comic-genesis/pkg/generator"
	comicpipe "github.com/shouni/go-comic-genesis/pkg/pipeline"
	"github.com/shouni/go-comic-genesis/pkg/publisher"

	"github.com/shouni/go-gemini-client/gemini"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// InitializeAIClient は gemini クライアントを初期化します。
func InitializeAIClient(ctx context.Context, apiKey string) (gemini.GenerativeModel, error) {
	const defaultGeminiTemperature = float32(0.2)
	clientConfig := gemini.Config{
		APIKey:      apiKey,
		Temperature: genai.Ptr(defaultGeminiTemperature),
	}
	aiClient, err := gemini.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	return aiClient, nil
}

// BuildOrchestrator は全生成ステージを束ねたオーケストレーターを構築します。
func BuildOrchestrator(appCtx *AppContext) (*comicpipe.Orchestrator, error) {
	profileGen, err := generator.NewCharacterProfileGenerator(appCtx.aiClient, appCtx.Config.TextModel)
	if err != nil {
		return nil, fmt.Errorf("キャラクター設定ジェネレーターの初期化に失敗したのだ: %w", err)
	}

	scriptGen, err := generator.NewScriptGenerator(appCtx.aiClient, appCtx.Config.TextModel)
	if err != nil {
		return nil, fmt.Errorf("台本ジェネレーターの初期化に失敗したのだ: %w", err)
	}

	interval := appCtx.Options.ImageInterval
	var limiter *rate.Limiter
	if interval > 0 {
		limiter = rate.NewLimiter(rate.Every(interval), 1)
	}
	synth, err := generator.NewPageImageSynthesizer(appCtx.aiClient, appCtx.Config.ImageModel, limiter)
	if err != nil {
		return nil, fmt.Errorf("画像シンセサイザーの初期化に失敗したのだ: %w", err)
	}

	return comicpipe.New(profileGen, scriptGen, synth)
}

// BuildProfileGenerator はキャラクター設定ステージ単体を構築します。
func BuildProfileGenerator(appCtx *AppContext) (*generator.CharacterProfileGenerator, error) {
	return generator.NewCharacterProfileGenerator(appCtx.aiClient, appCtx.Config.TextModel)
}

// BuildScriptGenerator は台本ステージ単体を構築します。
func BuildScriptGenerator(appCtx *AppContext) (*generator.ScriptGenerator, error) {
	return generator.NewScriptGenerator(appCtx.aiClient, appCtx.Config.TextModel)
}

// BuildPublisher は成果物の永続化を担うパブリッシャーを構築します。
func BuildPublisher(appCtx *AppContext) (*publisher.ComicPublisher, error) {
	pub, err := publisher.NewComicPublisher(appCtx.Writer)
	if err != nil {
		return nil, fmt.Errorf("パブリッシャーの初期化に失敗しました: %w", err)
	}
	return pub, nil
}

// BuildStorySource はあらすじの入力ソース（URL/ファイル/標準入力）を構築します。
func BuildStorySource(appCtx *AppContext) (*runner.StorySource, error) {
	return runner.NewStorySource(appCtx.httpClient, appCtx.Reader)
}
