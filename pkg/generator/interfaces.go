// Package generator は各生成ステージ（キャラクター設定・台本・ページ画像）を担当します。
// 通信クライアントはステージごとに必要最小のインターフェースで受け取り、
// テストではモックに差し替えます。
package generator

import (
	"context"
	"strings"

	"github.com/shouni/go-gemini-client/gemini"
	"google.golang.org/genai"
)

// TextModel はテキスト生成コールの窓口です。
// gemini.GenerativeModel がこれを満たします。
type TextModel interface {
	GenerateContent(ctx context.Context, model string, prompt string) (*gemini.Response, error)
}

// ImageModel はマルチモーダル画像生成コールの窓口です。
type ImageModel interface {
	GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error)
}

// responseText は応答の候補パーツからテキストを連結して取り出すのだ。
// テキストが1つもない応答は空文字列になり、後段のパースで弾かれる。
func responseText(resp *gemini.Response) string {
	if resp == nil || resp.RawResponse == nil || len(resp.RawResponse.Candidates) == 0 {
		return ""
	}
	candidate := resp.RawResponse.Candidates[0]
	if candidate.Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String()
}
