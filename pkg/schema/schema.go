// Package schema は生成コールに課す構造化出力契約を型として表現します。
// 契約はプロンプトの OUTPUT CONTRACT ブロックとして描画され、応答のパース後
// 検証の基準にもなります。トランスポートはスキーマを機械的に強制しないため、
// 検証はあくまで受信側の責務です。
package schema

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Type はスキーマノードの型種別です。
type Type string

const (
	TypeString  Type = "string"
	TypeInteger Type = "integer"
	TypeObject  Type = "object"
	TypeArray   Type = "array"
)

// Node は JSON-schema 風の形状定義なのだ。
type Node struct {
	Type        Type             `json:"type"`
	Description string           `json:"description,omitempty"`
	Items       *Node            `json:"items,omitempty"`
	Properties  map[string]*Node `json:"properties,omitempty"`
	Required    []string         `json:"required,omitempty"`
}

// String はスキーマをプロンプト埋め込み用のJSONテキストにします。
func (n *Node) String() string {
	data, err := json.Marshal(n)
	if err != nil {
		// ノードは静的に構築される純データなので、ここに来たら定義ミスなのだ
		return fmt.Sprintf(`{"error":%q}`, err.Error())
	}
	return string(data)
}

// Instruction はAIへの出力契約ブロックを描画するのだ。
// プロンプト末尾に付加して使う。
func (n *Node) Instruction() string {
	var sb strings.Builder
	sb.WriteString("OUTPUT CONTRACT:\n")
	sb.WriteString("Respond with ONLY a JSON value matching this schema, no prose and no markdown fences:\n")
	sb.WriteString(n.String())
	return sb.String()
}

// CharacterProfiles はキャラクター設定配列の出力契約です。
// 2〜4件の生成はプロンプト側で指示され、機械的には強制されません。
func CharacterProfiles() *Node {
	return &Node{
		Type: TypeArray,
		Items: &Node{
			Type: TypeObject,
			Properties: map[string]*Node{
				"name": {
					Type:        TypeString,
					Description: "The character's name.",
				},
				"description": {
					Type:        TypeString,
					Description: "A detailed visual and personality description of the character suitable for an artist.",
				},
			},
			Required: []string{"name", "description"},
		},
	}
}

// MangaScript は台本（ページ配列）の出力契約です。
func MangaScript() *Node {
	return &Node{
		Type: TypeArray,
		Items: &Node{
			Type: TypeObject,
			Properties: map[string]*Node{
				"pageNumber": {Type: TypeInteger},
				"panels": {
					Type: TypeArray,
					Items: &Node{
						Type: TypeObject,
						Properties: map[string]*Node{
							"panelNumber": {Type: TypeInteger},
							"description": {
								Type:        TypeString,
								Description: "A detailed visual description of the action and setting in the panel. No dialogue.",
							},
							"dialogue": {
								Type:        TypeString,
								Description: "The dialogue spoken in the panel. Can be empty.",
							},
							"speaker": {
								Type:        TypeString,
								Description: "Who is speaking the dialogue. Can be 'Narrator' or a character name.",
							},
						},
						Required: []string{"panelNumber", "description"},
					},
				},
			},
			Required: []string{"pageNumber", "panels"},
		},
	}
}

// ExtractJSON はAIの応答テキストからJSON本体を取り出すのだ。
// モデルが付けがちな ```json フェンスと前後の空白を剥がすだけで、
// それ以上の修復は試みない（修復はパース失敗の隠蔽になるのだ）。
func ExtractJSON(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
