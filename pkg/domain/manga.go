package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Panel は漫画ページ内の1コマの構成情報を保持します。
type Panel struct {
	PanelNumber int    `json:"panelNumber"`
	Description string `json:"description"`
	Dialogue    string `json:"dialogue,omitempty"`
	Speaker     string `json:"speaker,omitempty"`
}

// HasDialogue はトリム後のセリフが空でないかを返すのだ。
func (p Panel) HasDialogue() bool {
	return strings.TrimSpace(p.Dialogue) != ""
}

// MangaPage は漫画の1ページ分のコマ列を保持します。
// Panels の並び順がそのまま読み順です。
type MangaPage struct {
	PageNumber int     `json:"pageNumber"`
	Panels     []Panel `json:"panels"`
}

// SortPages はページ番号の昇順でページ列を安定ソートするのだ。
// AIがページを順不同で返しても成立するようにするための防御的な正規化で、
// 省略してはいけない必須ステップなのだよ。
func SortPages(pages []MangaPage) {
	sort.SliceStable(pages, func(i, j int) bool {
		return pages[i].PageNumber < pages[j].PageNumber
	})
}

// ComicScript は1ランの中間成果物（キャラクター設定＋台本）の永続化形式です。
// script コマンドで保存し、image コマンドで読み込んで画像フェーズを再開できます。
type ComicScript struct {
	Title      string             `json:"title"`
	Author     string             `json:"author"`
	Style      Style              `json:"style"`
	Story      string             `json:"story"`
	Characters []CharacterProfile `json:"characters"`
	Pages      []MangaPage        `json:"pages"`
}

// Details は台本から元の StoryDetails を復元します。
func (s ComicScript) Details() StoryDetails {
	return StoryDetails{Title: s.Title, Story: s.Story, Author: s.Author, Style: s.Style}
}

// PageImage は画像生成コールが返した1枚のラスターデータです。
// 出力リストに追加された後は不変で、ラン内で再生成されることはありません。
type PageImage struct {
	Data     []byte
	MimeType string
}

// FileExt は保存時の拡張子を MIME タイプから決定するのだ。
func (img PageImage) FileExt() string {
	switch img.MimeType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}

// String はデバッグログ向けの要約を返します。画像データ本体は含めません。
func (img PageImage) String() string {
	return fmt.Sprintf("PageImage(%s, %d bytes)", img.MimeType, len(img.Data))
}
