// Package runner はCLI実行時の入出力まわりの細かい仕事を担当します。
package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shouni/go-comic-genesis/internal/config"

	"github.com/shouni/go-http-kit/httpkit"
	"github.com/shouni/go-remote-io/remoteio"
	"github.com/shouni/go-web-exact/v2/extract"
)

// StorySource は、あらすじテキストを複数の入力経路から読み込むのだ。
// 優先順は「--story 直接指定 → URL → ファイル（'-'で標準入力）」。
type StorySource struct {
	extractor *extract.Extractor   // Webサイトから本文を抽出するエクストラクター
	reader    remoteio.InputReader // ローカルやGCSのファイルを読み込むリーダー
	stdin     io.Reader
}

// NewStorySource は StorySource の新しいインスタンスを生成して返すのだ。
func NewStorySource(httpClient httpkit.ClientInterface, reader remoteio.InputReader) (*StorySource, error) {
	extractor, err := extract.NewExtractor(httpClient)
	if err != nil {
		return nil, fmt.Errorf("エクストラクターの初期化に失敗したのだ: %w", err)
	}
	return &StorySource{
		extractor: extractor,
		reader:    reader,
		stdin:     os.Stdin,
	}, nil
}

// Read は設定に基づいて適切な方法であらすじテキストを取得するのだ。
func (s *StorySource) Read(ctx context.Context, opts config.GenerateOptions) (string, error) {
	text, err := s.readRaw(ctx, opts)
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("あらすじのテキストが空なのだ")
	}
	return text, nil
}

func (s *StorySource) readRaw(ctx context.Context, opts config.GenerateOptions) (string, error) {
	// 直接指定が最優先なのだ
	if opts.Story != "" {
		return opts.Story, nil
	}

	// URLが指定されている場合は、Webスクレイピングを実行するのだ
	if opts.StoryURL != "" {
		text, _, err := s.extractor.FetchAndExtractText(ctx, opts.StoryURL)
		if err != nil {
			return "", fmt.Errorf("URLからのあらすじ取得に失敗したのだ: %w", err)
		}
		return text, nil
	}

	if opts.StoryFile == "-" {
		data, err := io.ReadAll(s.stdin)
		if err != nil {
			return "", fmt.Errorf("標準入力の読み込みに失敗したのだ: %w", err)
		}
		return string(data), nil
	}

	if opts.StoryFile != "" {
		rc, err := s.reader.Open(ctx, opts.StoryFile)
		if err != nil {
			return "", fmt.Errorf("あらすじファイル '%s' の読み込みに失敗したのだ: %w", opts.StoryFile, err)
		}
		defer rc.Close()

		data, err := io.ReadAll(rc)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	return "", fmt.Errorf("あらすじのソース（--story / --story-url / --story-file）を指定してほしいのだ")
}
