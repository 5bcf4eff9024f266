// Package composition はページの内容と画風からコマ割りの方針（レイアウト指示文）を
// 決定します。最初にマッチした規則が勝つ順序付き決定表で、順序は契約です。
package composition

import (
	"strings"

	"github.com/shouni/go-comic-genesis/pkg/domain"
)

// 7種類の固定レイアウト指示文。このいずれか1つだけが返るのだ。
const (
	DirectiveAction   = "DYNAMIC ACTION LAYOUT: Use large, impactful panels with diagonal compositions. Include speed lines and dramatic angles."
	DirectiveEmotion  = "EMOTIONAL BEATS LAYOUT: Mix close-up reaction shots with medium shots. Use varying panel sizes to control pacing."
	DirectiveDialogue = "DIALOGUE-HEAVY LAYOUT: Use conversational panel flow with clear sight lines between speakers. Balance text and visuals."
	DirectiveShonen   = "SHONEN ENERGY LAYOUT: Bold, angular panels with dynamic perspectives. Emphasize movement and power."
	DirectiveShojo    = "SHOJO AESTHETIC LAYOUT: Flowing, organic panel shapes with decorative elements. Focus on character expressions."
	DirectiveSeinen   = "MATURE COMPOSITION: Clean, sophisticated panel layouts with subtle visual metaphors and realistic proportions."
	DirectiveBalanced = "BALANCED COMPOSITION: Professional comic layout with clear visual hierarchy and optimal reading flow."
)

var (
	actionWords  = []string{"action", "fight", "explosion", "running", "chase"}
	emotionWords = []string{"emotional", "tears", "close-up", "reaction", "shock"}
)

// Advise はページと画風から1つのレイアウト指示文を返します。
// 決定的・全域的で、失敗モードはありません。
//
// 規則は先勝ちで評価されるのだ:
//  1. アクションあり かつ コマ数≤3 → アクションレイアウト
//  2. 感情描写あり かつ コマ数≥3 → 感情ビートレイアウト
//  3. セリフあり かつ コマ数≥4 → 会話重視レイアウト
//  4. Shonen / Shojo / Seinen はそれぞれ専用レイアウト
//  5. それ以外（Chibi 含む）は汎用バランスレイアウト
func Advise(page domain.MangaPage, style domain.Style) string {
	panelCount := len(page.Panels)
	hasAction := anyPanelContains(page.Panels, actionWords)
	hasEmotion := anyPanelContains(page.Panels, emotionWords)
	hasDialogue := false
	for _, p := range page.Panels {
		if p.HasDialogue() {
			hasDialogue = true
			break
		}
	}

	switch {
	case hasAction && panelCount <= 3:
		return DirectiveAction
	case hasEmotion && panelCount >= 3:
		return DirectiveEmotion
	case hasDialogue && panelCount >= 4:
		return DirectiveDialogue
	case style == domain.StyleShonen:
		return DirectiveShonen
	case style == domain.StyleShojo:
		return DirectiveShojo
	case style == domain.StyleSeinen:
		return DirectiveSeinen
	default:
		return DirectiveBalanced
	}
}

// anyPanelContains はいずれかのコマの描写文がキーワードを含むかを
// 大小文字を無視した部分一致で判定するのだ。
func anyPanelContains(panels []domain.Panel, words []string) bool {
	for _, p := range panels {
		desc := strings.ToLower(p.Description)
		for _, w := range words {
			if strings.Contains(desc, w) {
				return true
			}
		}
	}
	return false
}
