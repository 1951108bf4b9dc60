package domain

import (
	"fmt"
	"strings"
)

// WorkflowKind は1回のリクエストで使用するワークフローの種別です。
// どの Composer / Normalizer の組を使うかを決定し、リクエスト中は変化しません。
type WorkflowKind int

const (
	// ImageGeneration はプロンプトから画像を生成するワークフローです。
	ImageGeneration WorkflowKind = iota + 1
	// TextEditing は指示に従ってテキストを書き換えるワークフローです。
	TextEditing
	// ResearchGrounding は Web 検索で裏付けされたリサーチを行うワークフローです。
	ResearchGrounding
)

// String は API の action 名と同じ表記を返します。
func (k WorkflowKind) String() string {
	switch k {
	case ImageGeneration:
		return "image"
	case TextEditing:
		return "text"
	case ResearchGrounding:
		return "search"
	default:
		return fmt.Sprintf("WorkflowKind(%d)", int(k))
	}
}

// ParseWorkflowKind は action 名を WorkflowKind に変換します。
func ParseWorkflowKind(action string) (WorkflowKind, error) {
	switch strings.ToLower(strings.TrimSpace(action)) {
	case "image":
		return ImageGeneration, nil
	case "text", "edit":
		return TextEditing, nil
	case "search", "research":
		return ResearchGrounding, nil
	default:
		return 0, fmt.Errorf("未知のワークフローです: %q", action)
	}
}

// Request はワークフローごとのリクエストを表す閉じた型です。
// ImageRequest / TextEditRequest / ResearchRequest のみが実装します。
type Request interface {
	Kind() WorkflowKind
	// Validate は必須項目を検証し、不正な場合は Configuration エラーを返します。
	Validate() error
	isRequest()
}

// Result はワークフローごとの結果を表す閉じた型です。
// 利用側は型スイッチで具象型を取り出します。
type Result interface {
	Kind() WorkflowKind
	isResult()
}
