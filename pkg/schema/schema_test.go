package schema

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNode_String(t *testing.T) {
	t.Run("スキーマが正しいJSONとして描画されること", func(t *testing.T) {
		n := CharacterProfiles()

		var decoded map[string]any
		if err := json.Unmarshal([]byte(n.String()), &decoded); err != nil {
			t.Fatalf("描画結果がJSONとしてパースできません: %v", err)
		}
		if decoded["type"] != "array" {
			t.Errorf("ルートは array のはずです: %v", decoded["type"])
		}
	})

	t.Run("必須フィールドリストが含まれること", func(t *testing.T) {
		s := MangaScript().String()
		for _, want := range []string{`"pageNumber"`, `"panels"`, `"panelNumber"`, `"description"`} {
			if !strings.Contains(s, want) {
				t.Errorf("スキーマに %s が含まれていません", want)
			}
		}
	})
}

func TestNode_Instruction(t *testing.T) {
	inst := CharacterProfiles().Instruction()
	if !strings.HasPrefix(inst, "OUTPUT CONTRACT:") {
		t.Error("契約ブロックのヘッダーがありません")
	}
	if !strings.Contains(inst, `"required":["name","description"]`) &&
		!strings.Contains(inst, `"required":["description","name"]`) {
		// map のキー順は不定だが required はスライスなので順序固定なのだ
		t.Errorf("required リストが描画されていません: %s", inst)
	}
}

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"素のJSONはそのまま", `[{"a":1}]`, `[{"a":1}]`},
		{"jsonフェンス付き", "```json\n[1,2]\n```", "[1,2]"},
		{"言語指定なしフェンス", "```\n{}\n```", "{}"},
		{"前後の空白", "  \n [] \n ", "[]"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractJSON(tc.in); got != tc.want {
				t.Errorf("期待値 %q, 実際の値 %q", tc.want, got)
			}
		})
	}
}
