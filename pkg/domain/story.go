package domain

import (
	"fmt"
	"strings"
)

// Style は漫画の画風（アートスタイル）を表す列挙型なのだ。
type Style string

const (
	StyleShonen Style = "Shonen"
	StyleShojo  Style = "Shojo"
	StyleSeinen Style = "Seinen"
	StyleChibi  Style = "Chibi"
)

// Styles はサポートされる全スタイルを定義順に保持します。
var Styles = []Style{StyleShonen, StyleShojo, StyleSeinen, StyleChibi}

// ParseStyle は文字列を大小文字を無視して Style に解決するのだ。
// 未知の値はエラーを返すのだよ。
func ParseStyle(s string) (Style, error) {
	for _, st := range Styles {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("未知のスタイル: '%s'。サポートされているのは [Shonen, Shojo, Seinen, Chibi] です", s)
}

// StoryDetails は1回の生成ランの入力となる物語の基本情報です。
// ラン開始時に一度だけ与えられ、以後変更されません。
type StoryDetails struct {
	Title  string `json:"title"`
	Story  string `json:"story"`
	Author string `json:"author"`
	Style  Style  `json:"style"`
}

// Validate は必須フィールドの存在を確認します。
func (d StoryDetails) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("タイトルが空です")
	}
	if strings.TrimSpace(d.Story) == "" {
		return fmt.Errorf("物語のテキストが空です")
	}
	if strings.TrimSpace(d.Author) == "" {
		return fmt.Errorf("作者名が空です")
	}
	if _, err := ParseStyle(string(d.Style)); err != nil {
		return err
	}
	return nil
}

// CharacterProfile はAIが物語から導出した登場キャラクターの設定です。
// Name はラン内で一意、Description は外見と性格を含む作画向けの記述です。
type CharacterProfile struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// FindCharacter は名前の完全一致でプロフィールを検索するのだ。
// 見つからない場合は nil を返す。あいまい一致は行わない（"Narrator" 等の
// 話者ラベルがそのまま使われるケースを正しく素通しするためなのだ）。
func FindCharacter(chars []CharacterProfile, name string) *CharacterProfile {
	for i := range chars {
		if chars[i].Name == name {
			return &chars[i]
		}
	}
	return nil
}
