package publisher

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/shouni/go-comic-genesis/pkg/domain"
)

// --- Mocks ---

type mockWriter struct {
	mu      sync.Mutex
	written map[string]string // path -> contentType
	err     error
}

func newMockWriter() *mockWriter {
	return &mockWriter{written: map[string]string{}}
}

func (m *mockWriter) Write(ctx context.Context, path string, r io.Reader, contentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, err := io.ReadAll(r); err != nil {
		return err
	}
	m.written[path] = contentType
	return nil
}

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func testScript() *domain.ComicScript {
	return &domain.ComicScript{
		Title:  "Star Quest",
		Author: "Taro",
		Style:  domain.StyleShonen,
		Story:  "s",
		Pages: []domain.MangaPage{
			{PageNumber: 1, Panels: []domain.Panel{{PanelNumber: 1, Description: "a"}}},
		},
	}
}

// --- Tests ---

func TestSafeFileName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Star Quest", "star_quest_manga"},
		{"My, Comic!!", "my__comic___manga"},
		{"ABC123", "abc123_manga"},
		{"", "_manga"},
	}
	for _, tc := range cases {
		if got := SafeFileName(tc.in); got != tc.want {
			t.Errorf("SafeFileName(%q) = %q, 期待値 %q", tc.in, got, tc.want)
		}
	}
}

func TestResolveOutputPath(t *testing.T) {
	t.Run("ローカルパスが結合されること", func(t *testing.T) {
		got, err := ResolveOutputPath("out", "a.pdf")
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasSuffix(got, "a.pdf") {
			t.Errorf("ファイル名が末尾にありません: %s", got)
		}
	})

	t.Run("GCSのURIはスキームが保たれること", func(t *testing.T) {
		got, err := ResolveOutputPath("gs://bucket/dir", "a.pdf")
		if err != nil {
			t.Fatal(err)
		}
		if got != "gs://bucket/dir/a.pdf" {
			t.Errorf("GCSパスが想定と違います: %s", got)
		}
	})
}

func TestBuildPDF(t *testing.T) {
	t.Run("画像列からPDFが構築できること", func(t *testing.T) {
		images := []domain.PageImage{
			{Data: testPNG(t, 30, 40), MimeType: "image/png"},
			{Data: testPNG(t, 30, 40), MimeType: "image/png"},
		}
		data, err := BuildPDF(images)
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if !bytes.HasPrefix(data, []byte("%PDF")) {
			t.Error("PDFのマジックナンバーがありません")
		}
	})

	t.Run("空の画像列はエラーになること", func(t *testing.T) {
		if _, err := BuildPDF(nil); err == nil {
			t.Error("空入力でエラーになるべきです")
		}
	})

	t.Run("fpdf非対応のMIMEタイプはJPEGへ変換して綴じること", func(t *testing.T) {
		// デコーダはMIMEではなく中身で判別するので、PNGバイト列で変換経路を通せるのだ
		images := []domain.PageImage{{Data: testPNG(t, 30, 40), MimeType: "image/webp"}}
		data, err := BuildPDF(images)
		if err != nil {
			t.Fatalf("変換して綴じられるべきです: %v", err)
		}
		if !bytes.HasPrefix(data, []byte("%PDF")) {
			t.Error("PDFのマジックナンバーがありません")
		}
	})

	t.Run("デコードできない未対応画像はエラーになること", func(t *testing.T) {
		images := []domain.PageImage{{Data: []byte("x"), MimeType: "image/webp"}}
		if _, err := BuildPDF(images); err == nil {
			t.Error("デコード不能データはエラーになるべきです")
		}
	})
}

func TestFitRect(t *testing.T) {
	t.Run("縦長画像は高さ基準で収まり左右中央になること", func(t *testing.T) {
		x, y, w, h := fitRect(300, 400)
		if h != 200 {
			t.Errorf("高さはページいっぱいのはずです: %f", h)
		}
		if w != 150 {
			t.Errorf("3:4はページ比と一致するので幅もいっぱいのはずです: %f", w)
		}
		if x != 0 || y != 0 {
			t.Errorf("比率一致ならオフセットは0のはずです: x=%f y=%f", x, y)
		}
	})

	t.Run("横長画像は幅基準で収まり上下中央になること", func(t *testing.T) {
		x, y, w, h := fitRect(400, 200)
		if w != 150 {
			t.Errorf("幅はページいっぱいのはずです: %f", w)
		}
		if h != 75 {
			t.Errorf("高さは比率どおり縮むはずです: %f", h)
		}
		if x != 0 {
			t.Errorf("横はオフセット0のはずです: %f", x)
		}
		if y != 62.5 {
			t.Errorf("縦は中央寄せのはずです: %f", y)
		}
	})
}

func TestComicPublisher_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("PDFと付随成果物が書き込まれること", func(t *testing.T) {
		imgs := []domain.PageImage{
			{Data: testPNG(t, 30, 40), MimeType: "image/png"},
			{Data: testPNG(t, 30, 40), MimeType: "image/png"},
		}
		writer := newMockWriter()
		p, err := NewComicPublisher(writer)
		if err != nil {
			t.Fatal(err)
		}

		result, err := p.Publish(ctx, testScript(), imgs, Options{
			OutputDir:  "out",
			SaveScript: true,
			SavePages:  true,
		})
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}

		if ct := writer.written[result.PDFPath]; ct != "application/pdf" {
			t.Errorf("PDFが書かれていません: %s", ct)
		}
		if !strings.Contains(result.PDFPath, "star_quest_manga.pdf") {
			t.Errorf("PDFのファイル名が想定と違います: %s", result.PDFPath)
		}
		if !strings.Contains(result.ScriptPath, "star_quest_manga_script.json") {
			t.Errorf("台本のファイル名が想定と違います: %s", result.ScriptPath)
		}
		if len(result.ImagePaths) != 2 {
			t.Fatalf("ページ画像は2枚のはずです: %d", len(result.ImagePaths))
		}
		if !strings.Contains(result.ImagePaths[0], "page_001.png") {
			t.Errorf("ページ画像名が想定と違います: %s", result.ImagePaths[0])
		}
	})

	t.Run("フラグなしではPDFだけ書かれること", func(t *testing.T) {
		imgs := []domain.PageImage{{Data: testPNG(t, 30, 40), MimeType: "image/png"}}
		writer := newMockWriter()
		p, _ := NewComicPublisher(writer)

		result, err := p.Publish(ctx, testScript(), imgs, Options{OutputDir: "out"})
		if err != nil {
			t.Fatal(err)
		}
		if len(writer.written) != 1 {
			t.Errorf("書き込みは1件のはずです: %v", writer.written)
		}
		if result.ScriptPath != "" || len(result.ImagePaths) != 0 {
			t.Error("保存フラグなしで付随成果物が報告されています")
		}
	})

	t.Run("書き込み失敗が伝播すること", func(t *testing.T) {
		imgs := []domain.PageImage{{Data: testPNG(t, 30, 40), MimeType: "image/png"}}
		writer := newMockWriter()
		writer.err = errors.New("disk full")
		p, _ := NewComicPublisher(writer)

		if _, err := p.Publish(ctx, testScript(), imgs, Options{OutputDir: "out"}); err == nil {
			t.Error("書き込み失敗はエラーになるべきです")
		}
	})

	t.Run("パス解決に失敗したら何も書き込まれずに返ること", func(t *testing.T) {
		imgs := []domain.PageImage{{Data: testPNG(t, 30, 40), MimeType: "image/png"}}
		writer := newMockWriter()
		p, _ := NewComicPublisher(writer)

		// 不正なパーセントエンコードでGCSパスの解決を失敗させるのだ
		_, err := p.Publish(ctx, testScript(), imgs, Options{
			OutputDir:  "gs://bucket/%zz",
			SaveScript: true,
			SavePages:  true,
		})
		if err == nil {
			t.Fatal("パス解決の失敗はエラーになるべきです")
		}

		writer.mu.Lock()
		defer writer.mu.Unlock()
		if len(writer.written) != 0 {
			t.Errorf("エラー返却後に書き込みが残っています: %v", writer.written)
		}
	})

	t.Run("空データのページはスキップされること", func(t *testing.T) {
		imgs := []domain.PageImage{
			{Data: testPNG(t, 30, 40), MimeType: "image/png"},
			{MimeType: "image/png"},
		}
		writer := newMockWriter()
		p, _ := NewComicPublisher(writer)

		result, err := p.Publish(ctx, testScript(), imgs, Options{OutputDir: "out", SavePages: true})
		if err != nil {
			t.Fatal(err)
		}
		if len(result.ImagePaths) != 1 {
			t.Errorf("空でないページだけ保存されるべきです: %v", result.ImagePaths)
		}
	})
}
