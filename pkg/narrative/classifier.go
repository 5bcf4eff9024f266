// Package narrative は物語テキストを固定の物語構造アーキタイプに分類します。
// AIモデルではなく順序付きキーワードテーブルによる決定的な分類で、
// 判定順そのものが契約の一部です。
package narrative

import "strings"

// Structure は分類結果（構造名と重要ビートの列）です。
// Script Generator のプロンプト文脈としてのみ使われ、ラン終了後は破棄されます。
type Structure struct {
	Name     string
	KeyBeats []string
}

// archetype はキーワード集合と対応する構造のペアなのだ。
type archetype struct {
	keywords  []string
	structure Structure
}

// archetypes は優先順に並んだ判定テーブルなのだ。
// 先にマッチしたものが勝つ。"love" と "robot" を両方含む物語は
// 先に検査される側（romance）に分類される。この順序を変えてはいけないのだ。
var archetypes = []archetype{
	{
		keywords: []string{"journey", "quest", "adventure", "hero", "save", "rescue", "destiny"},
		structure: Structure{
			Name: "Hero's Journey",
			KeyBeats: []string{
				"Ordinary World & Call to Adventure",
				"Crossing the Threshold & First Challenge",
				"Trials and Revelations",
				"Climax and Return Transformed",
			},
		},
	},
	{
		keywords: []string{"mystery", "detective", "investigate", "clue", "solve", "suspect", "hidden"},
		structure: Structure{
			Name: "Mystery Investigation",
			KeyBeats: []string{
				"Crime/Mystery Introduction",
				"Investigation & Red Herrings",
				"Major Revelation & Twist",
				"Resolution & Truth Revealed",
			},
		},
	},
	{
		keywords: []string{"love", "relationship", "heart", "romance", "together", "feelings"},
		structure: Structure{
			Name: "Romance Arc",
			KeyBeats: []string{
				"Meet Cute & Initial Attraction",
				"Building Connection & Obstacles",
				"Crisis & Near Loss",
				"Resolution & Happy Ending",
			},
		},
	},
	{
		keywords: []string{"future", "space", "technology", "robot", "alien", "planet", "sci-fi"},
		structure: Structure{
			Name: "Sci-Fi Adventure",
			KeyBeats: []string{
				"World Setup & Inciting Incident",
				"Exploration & Discovery",
				"Conflict & High Stakes",
				"Resolution & Future Implications",
			},
		},
	},
}

// fallback はどのカテゴリにも該当しない物語のための三幕構成なのだ。
var fallback = Structure{
	Name: "Three-Act Structure",
	KeyBeats: []string{
		"Setup & Character Introduction",
		"Rising Action & Complications",
		"Climax & High Stakes",
		"Resolution & Character Growth",
	},
}

// Classify は物語テキストを1つのアーキタイプに分類します。
// 決定的・全域的で、失敗モードはありません。
func Classify(story string) Structure {
	lower := strings.ToLower(story)
	for _, a := range archetypes {
		for _, kw := range a.keywords {
			if strings.Contains(lower, kw) {
				return a.structure
			}
		}
	}
	return fallback
}
