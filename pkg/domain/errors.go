package domain

import "fmt"

// FailureKind は生成パイプラインの失敗分類です。
// どの種別もリトライはされず、最初の失敗がラン全体を中断させます。
type FailureKind string

const (
	// FailureCall は外部生成APIの呼び出し自体の失敗（ネットワーク、認証、クォータ）です。
	FailureCall FailureKind = "capability_call"
	// FailureMalformed は呼び出しは成功したが応答がスキーマ/形状検証を通らない失敗です。
	// 画像パーツが1つも見つからないケースもここに含まれます。
	FailureMalformed FailureKind = "malformed_response"
	// FailureEmpty は構造的には正しいが意味的に空の結果（例: 0ページの台本）です。
	FailureEmpty FailureKind = "empty_result"
)

// パイプラインのステージ名。エラーはこの名前でタグ付けされて呼び出し元に届きます。
const (
	StageCharacterProfiles = "character-profiles"
	StageScript            = "script"
	StageTitleImage        = "title-image"
	StagePageImage         = "page-image"
	StageConclusionImage   = "conclusion-image"
)

// Failure はステージ名と失敗種別を持つパイプラインエラーなのだ。
// Stage が未確定のまま生成され、オーケストレーターが Tag で確定させることもある。
type Failure struct {
	Stage string
	Kind  FailureKind
	Err   error
}

func (f *Failure) Error() string {
	if f.Stage != "" {
		return fmt.Sprintf("[%s] %s: %v", f.Stage, f.Kind, f.Err)
	}
	return fmt.Sprintf("%s: %v", f.Kind, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// NewFailure はステージ確定済みの Failure を生成します。
func NewFailure(stage string, kind FailureKind, err error) *Failure {
	return &Failure{Stage: stage, Kind: kind, Err: err}
}

// Tag はエラーにステージ名を与えるのだ。
// すでに Failure でステージ未設定ならその場で確定し、
// それ以外のエラーは capability_call としてラップする。
func Tag(stage string, err error) error {
	if err == nil {
		return nil
	}
	if f, ok := err.(*Failure); ok {
		if f.Stage == "" {
			f.Stage = stage
		}
		return f
	}
	return &Failure{Stage: stage, Kind: FailureCall, Err: err}
}

// KindOf はエラーから失敗種別を取り出します。Failure でなければ FailureCall 扱いです。
func KindOf(err error) FailureKind {
	if f, ok := err.(*Failure); ok {
		return f.Kind
	}
	return FailureCall
}
