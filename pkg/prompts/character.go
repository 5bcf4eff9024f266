// Package prompts は各生成ステージに渡す指示文を構築します。
// 文面は英語（モデルへの指示言語）、組み立ては strings.Builder のセクション積みです。
package prompts

import (
	"fmt"
	"strings"

	"github.com/shouni/go-comic-genesis/pkg/domain"
	"github.com/shouni/go-comic-genesis/pkg/schema"
)

// BuildCharacterProfiles はキャラクター設定生成用のプロンプトを構築するのだ。
// 2〜4体の生成はここで指示するだけで、機械的な強制は受信側の検証に委ねる。
func BuildCharacterProfiles(story string, style domain.Style) string {
	var sb strings.Builder

	sb.WriteString("You are a master character designer and development expert specializing in compelling visual storytelling. Create rich, multi-dimensional character profiles that will serve as the foundation for a professional comic series.\n\n")

	sb.WriteString("ADVANCED CHARACTER DEVELOPMENT BRIEF:\n")
	sb.WriteString(fmt.Sprintf("Style: %s manga aesthetic with professional character design principles\n", style))
	sb.WriteString(fmt.Sprintf("Story Context: %q\n\n", story))

	sb.WriteString(`CHARACTER CREATION GUIDELINES:
1. VISUAL DISTINCTIVENESS: Each character must have unique, memorable visual traits
2. PERSONALITY DEPTH: Include both strengths and meaningful flaws/conflicts
3. STORY FUNCTION: Each character should serve a clear narrative purpose
4. VISUAL CONSISTENCY: Provide specific details for artistic consistency (eye color, hair style, clothing, etc.)
5. EMOTIONAL RANGE: Consider how the character will express different emotions visually

`)

	sb.WriteString("TECHNICAL SPECIFICATIONS:\n")
	sb.WriteString("- Create 2-4 main characters (protagonists, deuteragonists, key supporting characters)\n")
	sb.WriteString("- Each character needs comprehensive visual and personality descriptions\n")
	sb.WriteString(fmt.Sprintf("- Include distinctive features that work well in %s art style\n", style))
	sb.WriteString("- Consider character relationships and visual contrast between characters\n")
	sb.WriteString("- Ensure characters can drive the story forward through their actions and conflicts\n\n")

	sb.WriteString("Generate character profiles that will enable consistent, professional comic book character design and compelling character-driven storytelling.\n\n")

	sb.WriteString(schema.CharacterProfiles().Instruction())
	return sb.String()
}
