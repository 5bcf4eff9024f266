// Package publisher は生成された漫画一式の永続化を担います。
// 出力先はローカルディレクトリと GCS のどちらでもよく、
// 書き込みはすべて remoteio.OutputWriter 経由で行います。
package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/shouni/go-comic-genesis/pkg/domain"
	"github.com/shouni/go-remote-io/remoteio"
	"golang.org/x/sync/errgroup"
)

// Options はパブリッシュ動作を制御する設定項目です。
type Options struct {
	OutputDir string
	// SaveScript を立てると台本JSONも成果物として残します。
	SaveScript bool
	// SavePages を立てるとPDFに加えて各ページ画像を個別に保存します。
	SavePages bool
}

// PublishResult はパブリッシュ処理の結果として生成されたファイルの情報を保持します。
type PublishResult struct {
	PDFPath    string   // 綴じ込んだPDFのパス
	ScriptPath string   // 台本JSONのパス（保存した場合のみ）
	ImagePaths []string // 個別保存した全ページ画像のパスリスト
}

const pagesDirSuffix = "_pages"

// ComicPublisher は成果物の永続化を担います。
type ComicPublisher struct {
	writer remoteio.OutputWriter
}

// NewComicPublisher は ComicPublisher を初期化するのだ。
func NewComicPublisher(writer remoteio.OutputWriter) (*ComicPublisher, error) {
	if writer == nil {
		return nil, fmt.Errorf("writer (remoteio.OutputWriter) is required")
	}
	return &ComicPublisher{writer: writer}, nil
}

// pageWrite は保存先パスを確定させたページ画像1枚分の書き込み予定なのだ。
type pageWrite struct {
	path  string
	image domain.PageImage
}

// Publish はPDFの綴じ込みと付随成果物の保存を一括して実行するのだ。
// PDF構築とパス解決は直列で先に済ませ、確定済みバイト列の書き出しだけ並行で走らせる。
// パス解決に失敗したまま書き込みゴルーチンを残さないよう、g.Go はすべての解決後に積む。
func (p *ComicPublisher) Publish(ctx context.Context, script *domain.ComicScript, images []domain.PageImage, opts Options) (PublishResult, error) {
	result := PublishResult{}
	base := SafeFileName(script.Title)

	pdfData, err := BuildPDF(images)
	if err != nil {
		return result, fmt.Errorf("PDFの構築に失敗しました: %w", err)
	}

	pdfPath, err := ResolveOutputPath(opts.OutputDir, base+".pdf")
	if err != nil {
		return result, err
	}
	result.PDFPath = pdfPath

	var scriptPath string
	if opts.SaveScript {
		scriptPath, err = ResolveOutputPath(opts.OutputDir, base+"_script.json")
		if err != nil {
			return result, err
		}
		result.ScriptPath = scriptPath
	}

	var pageWrites []pageWrite
	if opts.SavePages {
		pageWrites, err = resolvePageWrites(images, opts.OutputDir, base)
		if err != nil {
			return result, err
		}
		for _, pw := range pageWrites {
			result.ImagePaths = append(result.ImagePaths, pw.path)
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := p.writer.Write(gctx, pdfPath, bytes.NewReader(pdfData), "application/pdf"); err != nil {
			return fmt.Errorf("PDFの書き込みに失敗しました %s: %w", pdfPath, err)
		}
		return nil
	})

	if opts.SaveScript {
		g.Go(func() error {
			data, err := json.MarshalIndent(script, "", "  ")
			if err != nil {
				return fmt.Errorf("台本のエンコードに失敗しました: %w", err)
			}
			if err := p.writer.Write(gctx, scriptPath, bytes.NewReader(data), "application/json; charset=utf-8"); err != nil {
				return fmt.Errorf("台本の書き込みに失敗しました %s: %w", scriptPath, err)
			}
			return nil
		})
	}

	for _, pw := range pageWrites {
		pw := pw
		g.Go(func() error {
			if err := p.writer.Write(gctx, pw.path, bytes.NewReader(pw.image.Data), pw.image.MimeType); err != nil {
				return fmt.Errorf("画像の書き込みに失敗しました %s: %w", pw.path, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}

	slog.Info("成果物を保存しました", "pdf", result.PDFPath, "images", len(result.ImagePaths))
	return result, nil
}

// resolvePageWrites は空データを除いた各ページ画像の保存先パスを確定させるのだ。
func resolvePageWrites(images []domain.PageImage, outputDir, base string) ([]pageWrite, error) {
	pagesDir, err := ResolveOutputPath(outputDir, base+pagesDirSuffix)
	if err != nil {
		return nil, err
	}

	writes := make([]pageWrite, 0, len(images))
	for i, img := range images {
		if len(img.Data) == 0 {
			continue
		}
		name := fmt.Sprintf("page_%03d%s", i+1, img.FileExt())
		fullPath, err := ResolveOutputPath(pagesDir, name)
		if err != nil {
			return nil, fmt.Errorf("出力パスの解決に失敗しました: %w", err)
		}
		writes = append(writes, pageWrite{path: fullPath, image: img})
	}
	return writes, nil
}
