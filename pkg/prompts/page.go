package prompts

import (
	"fmt"
	"strings"

	"github.com/shouni/go-comic-genesis/pkg/domain"
)

// ConsistencyPreamble は参照画像パーツの直前に置く一貫性指示なのだ。
// 「参照画像 → 指示文」の並び順はサービス側の一貫性誘導に効くため入れ替え禁止。
const ConsistencyPreamble = "--- VISUAL CONSISTENCY REFERENCE ---\nMaintain strict visual consistency with this reference for character designs, art style, color palette, and overall aesthetic. Keep characters recognizable while allowing for natural poses and expressions."

// ComicTechniques は構図ガイダンス付きページに常に付加される固定の技法ブロックです。
const ComicTechniques = `PROFESSIONAL COMIC TECHNIQUES:
- Use proper panel gutters and borders
- Maintain clear reading flow (left to right, top to bottom)
- Balance text and visual elements
- Apply comic book color theory and contrast
- Ensure character consistency and proportions
- Use appropriate camera angles and perspectives`

// CharacterCast はキャラクター一覧を "Name: description; ..." 形式に畳むのだ。
func CharacterCast(chars []domain.CharacterProfile) string {
	parts := make([]string, 0, len(chars))
	for _, c := range chars {
		parts = append(parts, fmt.Sprintf("%s: %s", c.Name, c.Description))
	}
	return strings.Join(parts, "; ")
}

// BuildTitlePage は表紙画像生成用のプロンプトを構築します。
func BuildTitlePage(details domain.StoryDetails, chars []domain.CharacterProfile) string {
	var sb strings.Builder
	sb.WriteString("TASK: Create a dynamic manga title page.\n")
	sb.WriteString(fmt.Sprintf("STYLE: %s, black and white.\n", details.Style))
	sb.WriteString("ASPECT RATIO: 3:4 vertical.\n")
	sb.WriteString(fmt.Sprintf("TITLE: %q\n", details.Title))
	sb.WriteString(fmt.Sprintf("AUTHOR: %q\n", details.Author))
	sb.WriteString(fmt.Sprintf("CHARACTERS: Feature the main characters: %s.\n", CharacterCast(chars)))
	sb.WriteString("INSTRUCTIONS: Create a compelling cover image. Generate ONLY the image.")
	return sb.String()
}

// BuildStoryPage は本編1ページ分の画像生成プロンプトを構築するのだ。
func BuildStoryPage(page domain.MangaPage, totalPages int, details domain.StoryDetails, chars []domain.CharacterProfile) string {
	panelBlocks := make([]string, 0, len(page.Panels))
	for _, p := range page.Panels {
		panelBlocks = append(panelBlocks, panelBlock(p, chars))
	}

	var sb strings.Builder
	sb.WriteString("TASK: Create a manga page image.\n")
	sb.WriteString(fmt.Sprintf("STYLE: %s, black and white.\n", details.Style))
	sb.WriteString("ASPECT RATIO: 3:4 vertical.\n")
	sb.WriteString(fmt.Sprintf("CHARACTERS: %s.\n", CharacterCast(chars)))
	sb.WriteString(fmt.Sprintf("PAGE: %d of %d, with %d panels.\n\n", page.PageNumber, totalPages, len(page.Panels)))
	sb.WriteString("PANEL INSTRUCTIONS:\n")
	sb.WriteString(strings.Join(panelBlocks, "\n\n"))
	sb.WriteString("\n\nFINAL INSTRUCTIONS: Arrange panels dynamically. Place dialogue in speech bubbles for the correct characters. Generate ONLY the image.")
	return sb.String()
}

// panelBlock は1コマ分の指示を描画するのだ。
// セリフと話者が揃っているとき、話者名がキャラクター設定に完全一致すれば
// その設定の全文をセリフと結び付けて埋め込む。一致しない場合は話者ラベルを
// そのまま使う。"Narrator" や未登録名のための意図的なフォールバックであり、
// あいまい一致に置き換えてはいけないのだ。
func panelBlock(p domain.Panel, chars []domain.CharacterProfile) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Panel %d: %s", p.PanelNumber, p.Description))

	if p.HasDialogue() && p.Speaker != "" {
		if c := domain.FindCharacter(chars, p.Speaker); c != nil {
			sb.WriteString(fmt.Sprintf("\n  - Dialogue: The character speaking is %s (%s). They say: %q", c.Name, c.Description, p.Dialogue))
		} else {
			sb.WriteString(fmt.Sprintf("\n  - Dialogue (%s): %q", p.Speaker, p.Dialogue))
		}
	}
	return sb.String()
}

// BuildConclusionPage は締めの1枚（"The End" ページ）のプロンプトを構築します。
func BuildConclusionPage(details domain.StoryDetails) string {
	var sb strings.Builder
	sb.WriteString("TASK: Create a final, evocative manga page.\n")
	sb.WriteString(fmt.Sprintf("STYLE: %s, black and white.\n", details.Style))
	sb.WriteString("ASPECT RATIO: 3:4 vertical.\n")
	sb.WriteString(fmt.Sprintf("STORY CONTEXT: The story was about %q.\n", details.Story))
	sb.WriteString("INSTRUCTIONS: The page should feel like a conclusion. Maybe a character looking towards the horizon or a symbolic image related to the story. Include a small, stylized \"The End\" text. Generate ONLY the image.")
	return sb.String()
}

// WithComposition はプロンプトに構図ガイダンスと固定技法ブロックを付加するのだ。
func WithComposition(prompt, directive string) string {
	var sb strings.Builder
	sb.WriteString(prompt)
	sb.WriteString("\n\nCOMPOSITION GUIDANCE:\n")
	sb.WriteString(directive)
	sb.WriteString("\n\n")
	sb.WriteString(ComicTechniques)
	return sb.String()
}
