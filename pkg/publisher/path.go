package publisher

import (
	"strings"

	"github.com/shouni/go-utils/urlpath"
)

// ResolveOutputPath は、ベースとなるディレクトリパスとファイル名から、
// GCS/ローカルを考慮した最終的な出力パスを生成します。
func ResolveOutputPath(baseDir, fileName string) (string, error) {
	return urlpath.ResolveOutputPath(baseDir, fileName)
}

// SafeFileName はタイトルをファイル名の基底部へ変換するのだ。
// 英数字以外はすべて "_" に置換し、小文字化して "_manga" を付ける。
// 置換結果の衝突よりも、どのストレージでも安全に通る名前を優先する。
func SafeFileName(title string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		} else {
			sb.WriteRune('_')
		}
	}
	return sb.String() + "_manga"
}
