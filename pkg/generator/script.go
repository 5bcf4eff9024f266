package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/shouni/go-comic-genesis/pkg/domain"
	"github.com/shouni/go-comic-genesis/pkg/narrative"
	"github.com/shouni/go-comic-genesis/pkg/prompts"
	"github.com/shouni/go-comic-genesis/pkg/schema"
)

// ScriptGenerator はキャラクター設定を踏まえて台本を生成します。
type ScriptGenerator struct {
	aiClient TextModel
	model    string
}

// NewScriptGenerator は ScriptGenerator を初期化するのだ。
func NewScriptGenerator(aiClient TextModel, model string) (*ScriptGenerator, error) {
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient (TextModel) is required")
	}
	return &ScriptGenerator{aiClient: aiClient, model: model}, nil
}

// Generate はあらすじを分類して構造文脈を組み立て、ページ台本を生成するのだ。
// 返却前にページ番号で安定ソートする。モデルの返却順は信用しないのだよ。
func (g *ScriptGenerator) Generate(ctx context.Context, details domain.StoryDetails, chars []domain.CharacterProfile) (*domain.ComicScript, error) {
	structure := narrative.Classify(details.Story)
	slog.Info("物語構造を分類しました", "structure", structure.Name)

	prompt := prompts.BuildScript(details.Story, details.Style, chars, structure)

	resp, err := g.aiClient.GenerateContent(ctx, g.model, prompt)
	if err != nil {
		return nil, domain.NewFailure(domain.StageScript, domain.FailureCall,
			fmt.Errorf("script generation call failed: %w", err))
	}

	text := responseText(resp)
	var pages []domain.MangaPage
	if err := json.Unmarshal([]byte(schema.ExtractJSON(text)), &pages); err != nil {
		slog.Error("台本の応答がパースできません", "error", err, "response", text)
		return nil, domain.NewFailure(domain.StageScript, domain.FailureMalformed,
			fmt.Errorf("failed to generate the manga script: %w", err))
	}
	if len(pages) == 0 {
		return nil, domain.NewFailure(domain.StageScript, domain.FailureEmpty,
			fmt.Errorf("generated script was empty"))
	}

	domain.SortPages(pages)

	slog.Info("台本を生成しました", "pages", len(pages))
	return &domain.ComicScript{
		Title:      details.Title,
		Author:     details.Author,
		Style:      details.Style,
		Story:      details.Story,
		Characters: chars,
		Pages:      pages,
	}, nil
}
