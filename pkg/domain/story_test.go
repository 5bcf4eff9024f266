package domain

import "testing"

func TestParseStyle(t *testing.T) {
	t.Run("大小文字を無視して解決できること", func(t *testing.T) {
		got, err := ParseStyle("shonen")
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if got != StyleShonen {
			t.Errorf("期待値 %s, 実際の値 %s", StyleShonen, got)
		}
	})

	t.Run("未知のスタイルはエラーになること", func(t *testing.T) {
		if _, err := ParseStyle("noir"); err == nil {
			t.Error("未知のスタイルでエラーが発生しませんでした")
		}
	})
}

func TestStoryDetails_Validate(t *testing.T) {
	valid := StoryDetails{Title: "T", Story: "s", Author: "A", Style: StyleChibi}
	if err := valid.Validate(); err != nil {
		t.Fatalf("正常な入力でエラーが発生しました: %v", err)
	}

	cases := map[string]StoryDetails{
		"タイトル欠落": {Story: "s", Author: "A", Style: StyleChibi},
		"本文欠落":   {Title: "T", Author: "A", Style: StyleChibi},
		"作者欠落":   {Title: "T", Story: "s", Style: StyleChibi},
		"スタイル不正": {Title: "T", Story: "s", Author: "A", Style: "noir"},
	}
	for name, d := range cases {
		if err := d.Validate(); err == nil {
			t.Errorf("%s: エラーが期待されましたが nil でした", name)
		}
	}
}

func TestFindCharacter(t *testing.T) {
	chars := []CharacterProfile{
		{Name: "Yuki", Description: "silver hair"},
		{Name: "Narrator", Description: "unused"},
	}

	t.Run("完全一致で見つかること", func(t *testing.T) {
		c := FindCharacter(chars, "Yuki")
		if c == nil || c.Description != "silver hair" {
			t.Fatalf("期待したプロフィールが返りませんでした: %+v", c)
		}
	})

	t.Run("部分一致や大小文字違いでは見つからないこと", func(t *testing.T) {
		if FindCharacter(chars, "yuki") != nil {
			t.Error("大小文字違いで一致してはいけません")
		}
		if FindCharacter(chars, "Yu") != nil {
			t.Error("部分一致で一致してはいけません")
		}
	})
}
