package prompts

import (
	"strings"
	"testing"

	"github.com/shouni/go-comic-genesis/pkg/domain"
)

var testChars = []domain.CharacterProfile{
	{Name: "Kenji", Description: "A spiky-haired boy with a red scarf"},
	{Name: "Yuki", Description: "A calm girl with silver hair"},
}

func TestBuildStoryPage_DialogueBinding(t *testing.T) {
	details := domain.StoryDetails{Title: "Test", Story: "story", Author: "author", Style: domain.StyleShonen}

	t.Run("既知の話者はキャラクター設定ごと埋め込まれること", func(t *testing.T) {
		page := domain.MangaPage{
			PageNumber: 1,
			Panels: []domain.Panel{
				{PanelNumber: 1, Description: "Kenji runs.", Dialogue: "Wait for me!", Speaker: "Kenji"},
			},
		}
		got := BuildStoryPage(page, 4, details, testChars)
		if !strings.Contains(got, "The character speaking is Kenji (A spiky-haired boy with a red scarf)") {
			t.Errorf("話者の設定が埋め込まれていません:\n%s", got)
		}
		if !strings.Contains(got, `They say: "Wait for me!"`) {
			t.Errorf("セリフが描画されていません:\n%s", got)
		}
	})

	t.Run("未知の話者はラベルのまま使われること", func(t *testing.T) {
		page := domain.MangaPage{
			PageNumber: 2,
			Panels: []domain.Panel{
				{PanelNumber: 1, Description: "A wide shot.", Dialogue: "Years passed.", Speaker: "Narrator"},
			},
		}
		got := BuildStoryPage(page, 4, details, testChars)
		if !strings.Contains(got, `Dialogue (Narrator): "Years passed."`) {
			t.Errorf("話者ラベルのフォールバックが描画されていません:\n%s", got)
		}
		if strings.Contains(got, "The character speaking is Narrator") {
			t.Error("未知の話者に設定が紐付いてしまっています")
		}
	})

	t.Run("話者名の照合は大文字小文字を区別すること", func(t *testing.T) {
		page := domain.MangaPage{
			PageNumber: 3,
			Panels: []domain.Panel{
				{PanelNumber: 1, Description: "Close-up.", Dialogue: "...", Speaker: "kenji"},
			},
		}
		got := BuildStoryPage(page, 4, details, testChars)
		if !strings.Contains(got, `Dialogue (kenji):`) {
			t.Errorf("完全一致しない話者はフォールバックされるべきです:\n%s", got)
		}
	})

	t.Run("セリフなしのコマに話者行が出ないこと", func(t *testing.T) {
		page := domain.MangaPage{
			PageNumber: 4,
			Panels: []domain.Panel{
				{PanelNumber: 1, Description: "Silent panel.", Speaker: "Kenji"},
			},
		}
		got := BuildStoryPage(page, 4, details, testChars)
		if strings.Contains(got, "Dialogue") && strings.Contains(got, "They say") {
			t.Errorf("セリフなしのコマに話者行が描画されています:\n%s", got)
		}
	})
}

func TestBuildTitlePage(t *testing.T) {
	details := domain.StoryDetails{Title: "Star Quest", Story: "s", Author: "Taro", Style: domain.StyleSeinen}
	got := BuildTitlePage(details, testChars)

	for _, want := range []string{
		`TITLE: "Star Quest"`,
		`AUTHOR: "Taro"`,
		"STYLE: Seinen",
		"ASPECT RATIO: 3:4 vertical",
		"Kenji: A spiky-haired boy with a red scarf; Yuki: A calm girl with silver hair",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("表紙プロンプトに %q が含まれていません", want)
		}
	}
}

func TestBuildConclusionPage(t *testing.T) {
	details := domain.StoryDetails{Title: "t", Story: "a tale of friendship", Author: "a", Style: domain.StyleShojo}
	got := BuildConclusionPage(details)

	if !strings.Contains(got, `"a tale of friendship"`) {
		t.Error("あらすじが文脈に含まれていません")
	}
	if !strings.Contains(got, `"The End"`) {
		t.Error("締めの文言指示がありません")
	}
}

func TestWithComposition(t *testing.T) {
	got := WithComposition("BASE PROMPT", "Use dynamic diagonal layouts.")
	if !strings.HasPrefix(got, "BASE PROMPT") {
		t.Error("元のプロンプトが先頭に保たれていません")
	}
	if !strings.Contains(got, "COMPOSITION GUIDANCE:\nUse dynamic diagonal layouts.") {
		t.Error("構図ガイダンスが付加されていません")
	}
	if !strings.Contains(got, "PROFESSIONAL COMIC TECHNIQUES:") {
		t.Error("固定技法ブロックが付加されていません")
	}
}
