// Package pipeline は生成ステージを直列に束ねるオーケストレーターです。
// あらすじ → キャラクター設定 → 台本 → ページ画像列 という一本道で、
// リトライはせず、最初の失敗でラン全体を中断します。
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/shouni/go-comic-genesis/pkg/domain"
	"github.com/shouni/go-comic-genesis/pkg/generator"
	"github.com/shouni/go-comic-genesis/pkg/prompts"
)

// ProfileGenerator はキャラクター設定ステージの窓口です。
type ProfileGenerator interface {
	Generate(ctx context.Context, story string, style domain.Style) ([]domain.CharacterProfile, error)
}

// ScriptWriter は台本ステージの窓口です。
type ScriptWriter interface {
	Generate(ctx context.Context, details domain.StoryDetails, chars []domain.CharacterProfile) (*domain.ComicScript, error)
}

// ImageSynthesizer はページ画像合成ステージの窓口です。
type ImageSynthesizer interface {
	Synthesize(ctx context.Context, req generator.PageRequest) (*domain.PageImage, error)
}

// Result は1ランの成果物一式です。
// Images は「表紙 → 本編ページ順 → 締めページ」の順で並びます。
type Result struct {
	Script *domain.ComicScript
	Images []domain.PageImage
}

// Orchestrator は全ステージを所有し、進捗を単一のコールバックへ発行します。
type Orchestrator struct {
	profiles ProfileGenerator
	script   ScriptWriter
	images   ImageSynthesizer
}

// New は Orchestrator を初期化するのだ。
func New(profiles ProfileGenerator, script ScriptWriter, images ImageSynthesizer) (*Orchestrator, error) {
	if profiles == nil || script == nil || images == nil {
		return nil, fmt.Errorf("all stage generators are required")
	}
	return &Orchestrator{profiles: profiles, script: script, images: images}, nil
}

// Run はあらすじから漫画一式を生成するのだ。
// 進捗は 0 → 10 → 25 → 40 と進み、残り 55 を画像生成が等分する。
// 成否にかかわらず最後に必ず待機状態（IsLoading=false）を発行するのだよ。
func (o *Orchestrator) Run(ctx context.Context, details domain.StoryDetails, onProgress domain.ProgressFunc) (*Result, error) {
	emit := emitter(onProgress)
	defer emit(domain.LoadingState{IsLoading: false})

	if err := details.Validate(); err != nil {
		return nil, err
	}

	emit(domain.LoadingState{IsLoading: true, Message: "Analyzing story premise...", Progress: 0})
	slog.Info("漫画生成ランを開始します", "title", details.Title, "style", details.Style)

	emit(domain.LoadingState{IsLoading: true, Message: "Generating character profiles...", Progress: 10})
	chars, err := o.profiles.Generate(ctx, details.Story, details.Style)
	if err != nil {
		return nil, domain.Tag(domain.StageCharacterProfiles, err)
	}

	emit(domain.LoadingState{IsLoading: true, Message: "Writing the manga script...", Progress: 25})
	script, err := o.script.Generate(ctx, details, chars)
	if err != nil {
		return nil, domain.Tag(domain.StageScript, err)
	}

	images, err := o.renderScript(ctx, script, emit)
	if err != nil {
		return nil, err
	}

	emit(domain.LoadingState{IsLoading: true, Message: "Your manga is ready!", Progress: 100})
	slog.Info("漫画生成ランが完了しました", "pages", len(script.Pages), "images", len(images))
	return &Result{Script: script, Images: images}, nil
}

// Render は既存の台本から画像列だけを生成し直すのだ。
// 台本生成をスキップする分、進捗は 40 から始まる。
func (o *Orchestrator) Render(ctx context.Context, script *domain.ComicScript, onProgress domain.ProgressFunc) (*Result, error) {
	emit := emitter(onProgress)
	defer emit(domain.LoadingState{IsLoading: false})

	if script == nil || len(script.Pages) == 0 {
		return nil, domain.NewFailure(domain.StagePageImage, domain.FailureEmpty,
			fmt.Errorf("script has no pages to render"))
	}

	images, err := o.renderScript(ctx, script, emit)
	if err != nil {
		return nil, err
	}

	emit(domain.LoadingState{IsLoading: true, Message: "Your manga is ready!", Progress: 100})
	return &Result{Script: script, Images: images}, nil
}

// renderScript は表紙・本編・締めの順で画像を連鎖生成するのだ。
// 各ページは直前の画像を参照に受け取る。この連鎖が巻全体の画風を保つ要であり、
// 参照の張り替えや並列化は見た目の一貫性を壊すため行わない。
func (o *Orchestrator) renderScript(ctx context.Context, script *domain.ComicScript, emit domain.ProgressFunc) ([]domain.PageImage, error) {
	details := script.Details()
	total := len(script.Pages) + 2 // 表紙と締めページの分なのだ
	images := make([]domain.PageImage, 0, total)

	emit(domain.LoadingState{IsLoading: true, Message: "Drawing the title page...", Progress: 40})
	title, err := o.images.Synthesize(ctx, generator.PageRequest{
		Prompt: prompts.BuildTitlePage(details, script.Characters),
	})
	if err != nil {
		return nil, domain.Tag(domain.StageTitleImage, err)
	}
	images = append(images, *title)
	emit(progressState(len(images), total, "Drawing the title page... done"))

	for i, page := range script.Pages {
		msg := fmt.Sprintf("Drawing page %d of %d...", i+1, len(script.Pages))
		emit(domain.LoadingState{IsLoading: true, Message: msg, Progress: progressValue(len(images), total)})

		prev := images[len(images)-1]
		img, err := o.images.Synthesize(ctx, generator.PageRequest{
			Prompt:    prompts.BuildStoryPage(page, len(script.Pages), details, script.Characters),
			Page:      &script.Pages[i],
			Style:     script.Style,
			Reference: &prev,
		})
		if err != nil {
			return nil, domain.Tag(domain.StagePageImage, err)
		}
		images = append(images, *img)
		emit(progressState(len(images), total, msg+" done"))
	}

	emit(domain.LoadingState{IsLoading: true, Message: "Drawing the final page...", Progress: progressValue(len(images), total)})
	last := images[len(images)-1]
	conclusion, err := o.images.Synthesize(ctx, generator.PageRequest{
		Prompt:    prompts.BuildConclusionPage(details),
		Reference: &last,
	})
	if err != nil {
		return nil, domain.Tag(domain.StageConclusionImage, err)
	}
	images = append(images, *conclusion)
	emit(progressState(len(images), total, "Drawing the final page... done"))

	return images, nil
}

// emitter は nil 安全な進捗発行クロージャを返すのだ。
func emitter(onProgress domain.ProgressFunc) domain.ProgressFunc {
	if onProgress == nil {
		return func(domain.LoadingState) {}
	}
	return onProgress
}

// progressValue は画像 k/total 枚完了時点の進捗値を返すのだ。
// 台本確定の 40 から残り 55 を画像の枚数で等分する。
func progressValue(done, total int) int {
	return 40 + int(math.Round(float64(done)/float64(total)*55))
}

func progressState(done, total int, msg string) domain.LoadingState {
	return domain.LoadingState{IsLoading: true, Message: msg, Progress: progressValue(done, total)}
}
