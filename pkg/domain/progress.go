package domain

// LoadingState はラン実行中にオーケストレーターが繰り返し発行する進捗状態です。
// 書き込むのはオーケストレーターのみ、読むのは呼び出し側のみという一方向の契約です。
type LoadingState struct {
	IsLoading bool   `json:"isLoading"`
	Message   string `json:"message"`
	Progress  int    `json:"progress"` // 0〜100
}

// ProgressFunc は進捗通知のコールバック型なのだ。
// fire-and-forget で呼ばれるため、受け手は最新値を描画するだけでよく、
// 発行順を入れ替えて適用してはいけないのだ。nil を渡せば通知は行われない。
type ProgressFunc func(LoadingState)
