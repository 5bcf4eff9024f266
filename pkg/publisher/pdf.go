package publisher

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/shouni/gemini-image-kit/imgutil"
	"github.com/shouni/go-comic-genesis/pkg/domain"

	// モデルがWebPを返すことがあるため、JPEG変換用にデコーダを登録しておくのだ
	_ "golang.org/x/image/webp"
)

// PDFのページ寸法（mm）。縦長の単行本サイズに合わせた固定値なのだ。
const (
	pdfPageWidth  = 150.0
	pdfPageHeight = 200.0
)

// fpdfが扱えないフォーマットをJPEGへ変換するときの品質なのだ。
const pdfJPEGQuality = 90

// BuildPDF はページ画像列を1冊のPDFへ綴じるのだ。
// 1画像=1ページで、各画像はアスペクト比を保ったままページ内に収めて中央寄せする。
func BuildPDF(images []domain.PageImage) ([]byte, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("no images to bind into a PDF")
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "mm",
		Size:    fpdf.SizeType{Wd: pdfPageWidth, Ht: pdfPageHeight},
	})

	for i, img := range images {
		if len(img.Data) == 0 {
			continue
		}
		data := img.Data
		imageType, ok := pdfImageType(img.MimeType)
		if !ok {
			// WebPなどfpdf非対応のフォーマットはJPEGへ変換して綴じるのだ
			converted, err := imgutil.CompressToJPEG(img.Data, pdfJPEGQuality)
			if err != nil {
				return nil, fmt.Errorf("page %d: unsupported image type %s: %w", i+1, img.MimeType, err)
			}
			data = converted
			imageType = "JPG"
		}

		name := fmt.Sprintf("page_%03d", i+1)
		opts := fpdf.ImageOptions{ImageType: imageType}
		info := pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
		if pdf.Err() {
			return nil, fmt.Errorf("page %d: failed to register image: %w", i+1, pdf.Error())
		}

		pdf.AddPage()
		x, y, w, h := fitRect(info.Width(), info.Height())
		pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render the PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// fitRect は画像をページ内に収める描画矩形を計算するのだ。
func fitRect(imgW, imgH float64) (x, y, w, h float64) {
	if imgW <= 0 || imgH <= 0 {
		return 0, 0, pdfPageWidth, pdfPageHeight
	}

	scale := pdfPageWidth / imgW
	if s := pdfPageHeight / imgH; s < scale {
		scale = s
	}
	w = imgW * scale
	h = imgH * scale
	x = (pdfPageWidth - w) / 2
	y = (pdfPageHeight - h) / 2
	return x, y, w, h
}

// pdfImageType は MIME タイプを fpdf の画像タイプ名へ変換するのだ。
// fpdfがそのまま受け付けないタイプでは ok=false を返す。
func pdfImageType(mimeType string) (string, bool) {
	switch mimeType {
	case "image/png":
		return "PNG", true
	case "image/jpeg", "image/jpg":
		return "JPG", true
	case "image/gif":
		return "GIF", true
	default:
		return "", false
	}
}
