package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/shouni/gemini-image-kit/imgutil"
	"github.com/shouni/go-comic-genesis/pkg/composition"
	"github.com/shouni/go-comic-genesis/pkg/domain"
	"github.com/shouni/go-comic-genesis/pkg/prompts"
	"github.com/shouni/go-gemini-client/gemini"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// ページ画像は縦読み前提の縦長固定なのだ。
const pageAspectRatio = "3:4"

// 参照画像はインライン添付する前にJPEG圧縮してペイロードを抑えるのだ。
const referenceJPEGQuality = 75

// PageRequest は1枚分の画像合成リクエストです。
type PageRequest struct {
	// Prompt はページの基本プロンプト（prompts パッケージで構築済み）です。
	Prompt string
	// Page は台本ページです。表紙と締めページでは nil にします。
	// 非 nil のとき構図ガイダンスがプロンプトに付加されます。
	Page *domain.MangaPage
	// Style は構図ガイダンスの画風ディスパッチに使われます。
	Style domain.Style
	// Reference は直前に生成されたページ画像です。表紙では nil にします。
	// 非 nil のとき一貫性指示と共に参照画像としてモデルへ渡されます。
	Reference *domain.PageImage
	// Seed を固定すると再現性のある生成になります。
	Seed *int64
}

// PageImageSynthesizer は台本ページを1枚のラスタ画像へ合成します。
// 呼び出しはレートリミッタで間引かれます。
type PageImageSynthesizer struct {
	aiClient ImageModel
	model    string
	limiter  *rate.Limiter
}

// NewPageImageSynthesizer は PageImageSynthesizer を初期化するのだ。
func NewPageImageSynthesizer(aiClient ImageModel, model string, limiter *rate.Limiter) (*PageImageSynthesizer, error) {
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient (ImageModel) is required")
	}
	if limiter == nil {
		// 無制限ではなく「制限なしのリミッタ」を明示的に持つのだ
		limiter = rate.NewLimiter(rate.Inf, 1)
	}
	return &PageImageSynthesizer{aiClient: aiClient, model: model, limiter: limiter}, nil
}

// Synthesize はリクエストを1枚のページ画像へ合成するのだ。
// パーツの並び順は「一貫性指示 → 参照画像 → ページ指示」で固定。
// 参照画像より先に一貫性指示を読ませるための順序なので入れ替えてはいけない。
func (s *PageImageSynthesizer) Synthesize(ctx context.Context, req PageRequest) (*domain.PageImage, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, domain.NewFailure("", domain.FailureCall,
			fmt.Errorf("rate limiter wait interrupted: %w", err))
	}

	prompt := req.Prompt
	if req.Page != nil {
		prompt = prompts.WithComposition(prompt, composition.Advise(*req.Page, req.Style))
	}

	var parts []*genai.Part
	if req.Reference != nil {
		parts = append(parts, &genai.Part{Text: prompts.ConsistencyPreamble})
		parts = append(parts, referencePart(req.Reference))
	}
	parts = append(parts, &genai.Part{Text: prompt})

	opts := gemini.GenerateOptions{
		AspectRatio: pageAspectRatio,
		Seed:        req.Seed,
	}

	resp, err := s.aiClient.GenerateWithParts(ctx, s.model, parts, opts)
	if err != nil {
		return nil, domain.NewFailure("", domain.FailureCall,
			fmt.Errorf("AI failed to generate an image: %w", err))
	}

	img, err := extractImage(resp)
	if err != nil {
		return nil, domain.NewFailure("", domain.FailureMalformed, err)
	}
	return img, nil
}

// referencePart は直前ページの画像を添付パーツへ変換するのだ。
// 圧縮に失敗しても生成自体は止めず、元データのまま添付する。
func referencePart(ref *domain.PageImage) *genai.Part {
	data := ref.Data
	mimeType := ref.MimeType
	if compressed, err := imgutil.CompressToJPEG(ref.Data, referenceJPEGQuality); err == nil {
		data = compressed
		mimeType = "image/jpeg"
	} else {
		slog.Warn("参照画像のJPEG圧縮に失敗したため元データを使います", "error", err)
	}
	return &genai.Part{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}}
}

// extractImage は応答の候補パーツから最初の画像データを取り出すのだ。
func extractImage(resp *gemini.Response) (*domain.PageImage, error) {
	if resp == nil || resp.RawResponse == nil || len(resp.RawResponse.Candidates) == 0 {
		return nil, fmt.Errorf("image generation returned no candidates")
	}

	candidate := resp.RawResponse.Candidates[0]
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return &domain.PageImage{
					Data:     part.InlineData.Data,
					MimeType: part.InlineData.MIMEType,
				}, nil
			}
		}
	}

	// テキストだけ返ってきた場合の調査用に応答全体を残すのだ
	if raw, err := json.Marshal(resp.RawResponse); err == nil {
		slog.Error("応答に画像データが含まれていません", "response", string(raw))
	}
	return nil, fmt.Errorf("image generation response contained no image data")
}
