package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/shouni/go-comic-genesis/pkg/domain"
	"github.com/shouni/go-comic-genesis/pkg/prompts"
	"github.com/shouni/go-comic-genesis/pkg/schema"
)

// CharacterProfileGenerator はあらすじからキャラクター設定を生成します。
type CharacterProfileGenerator struct {
	aiClient TextModel
	model    string
}

// NewCharacterProfileGenerator は CharacterProfileGenerator を初期化するのだ。
func NewCharacterProfileGenerator(aiClient TextModel, model string) (*CharacterProfileGenerator, error) {
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient (TextModel) is required")
	}
	return &CharacterProfileGenerator{aiClient: aiClient, model: model}, nil
}

// Generate はあらすじと画風からキャラクター設定の一覧を生成するのだ。
// 応答がパースできない、または空配列のときはエラーにする。後続の全ステージが
// この一覧に依存するため、空のまま先へ進めてはいけないのだよ。
func (g *CharacterProfileGenerator) Generate(ctx context.Context, story string, style domain.Style) ([]domain.CharacterProfile, error) {
	prompt := prompts.BuildCharacterProfiles(story, style)

	resp, err := g.aiClient.GenerateContent(ctx, g.model, prompt)
	if err != nil {
		return nil, domain.NewFailure(domain.StageCharacterProfiles, domain.FailureCall,
			fmt.Errorf("character profile generation call failed: %w", err))
	}

	text := responseText(resp)
	var chars []domain.CharacterProfile
	if err := json.Unmarshal([]byte(schema.ExtractJSON(text)), &chars); err != nil {
		slog.Error("キャラクター設定の応答がパースできません", "error", err, "response", text)
		return nil, domain.NewFailure(domain.StageCharacterProfiles, domain.FailureMalformed,
			fmt.Errorf("failed to generate character profiles from the story: %w", err))
	}

	valid := make([]domain.CharacterProfile, 0, len(chars))
	for _, c := range chars {
		if c.Name == "" || c.Description == "" {
			slog.Warn("不完全なキャラクター設定を除外します", "name", c.Name)
			continue
		}
		valid = append(valid, c)
	}
	if len(valid) == 0 {
		return nil, domain.NewFailure(domain.StageCharacterProfiles, domain.FailureEmpty,
			fmt.Errorf("failed to generate character profiles from the story"))
	}

	slog.Info("キャラクター設定を生成しました", "count", len(valid))
	return valid, nil
}
