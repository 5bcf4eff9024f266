package prompts

import (
	"fmt"
	"strings"

	"github.com/shouni/go-comic-genesis/pkg/domain"
	"github.com/shouni/go-comic-genesis/pkg/narrative"
	"github.com/shouni/go-comic-genesis/pkg/schema"
)

// BuildScript は台本生成用のプロンプトを構築するのだ。
// 分類済みの物語構造はここでプロンプト文脈としてのみ使われ、
// 出力の形状には一切影響しないのだよ。
func BuildScript(story string, style domain.Style, chars []domain.CharacterProfile, structure narrative.Structure) string {
	var sb strings.Builder

	sb.WriteString("You are a master storyteller and comic book editor with decades of experience creating compelling visual narratives. Your expertise spans multiple genres and you understand the delicate balance between visual storytelling and narrative pacing.\n\n")

	sb.WriteString("ADVANCED STORYTELLING ANALYSIS:\n")
	sb.WriteString(fmt.Sprintf("Story Structure Detected: %s\n", structure.Name))
	sb.WriteString(fmt.Sprintf("Key Narrative Beats: %s\n\n", strings.Join(structure.KeyBeats, " -> ")))

	sb.WriteString(`STORY ENHANCEMENT MISSION:
Transform this premise into a professional comic script that maximizes emotional impact and reader engagement. Apply advanced storytelling techniques:
1. HOOK: Create an immediate visual and emotional hook in the first panel
2. CHARACTER ARCS: Ensure each character has clear motivation and growth
3. PACING: Use panel composition to control story rhythm (close-ups for emotion, wide shots for action)
4. VISUAL STORYTELLING: Show don't tell - use visual metaphors and symbolism
5. CLIFFHANGERS: End pages with compelling moments that drive page-turns
6. CLIMAX: Build to a satisfying emotional and visual climax

`)

	sb.WriteString("TECHNICAL SPECIFICATIONS:\n")
	sb.WriteString(fmt.Sprintf("- Visual Style: %s manga aesthetic with professional composition\n", style))
	sb.WriteString("- Page Count: 4-5 pages optimized for digital reading\n")
	sb.WriteString("- Panel Density: 2-4 panels per page with dynamic layouts\n")
	sb.WriteString("- Dialogue: Concise, character-driven, emotionally resonant\n\n")

	sb.WriteString("CHARACTER CAST:\n")
	for _, c := range chars {
		sb.WriteString(fmt.Sprintf("- %s: %s\n", c.Name, c.Description))
	}
	sb.WriteString("\n")

	sb.WriteString("STORY PREMISE TO ENHANCE:\n")
	sb.WriteString(fmt.Sprintf("%q\n\n", story))

	sb.WriteString(fmt.Sprintf(`INSTRUCTIONS:
1. First, mentally outline the enhanced story following the %s structure
2. Identify the key emotional moments and visual set pieces
3. Plan panel compositions that support the narrative flow
4. Create a script where each panel serves both story and visual impact
5. Ensure dialogue feels natural and advances both plot and character

`, structure.Name))

	sb.WriteString(schema.MangaScript().Instruction())
	return sb.String()
}
