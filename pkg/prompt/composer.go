// Package prompt はワークフローごとの入力からモデルへ送るペイロードを組み立てます。
// ここの関数は I/O を行わず、同じ入力に対して常に同じ出力を返します。
package prompt

import (
	"fmt"

	"github.com/shouni/scripic-kit/pkg/domain"
)

// EditPrompt はテキスト編集リクエストの送信内容です。
type EditPrompt struct {
	UserMessage       string
	SystemInstruction string
	Temperature       float32
}

// ResearchPrompt はリサーチリクエストの送信内容です。
type ResearchPrompt struct {
	UserMessage       string
	SystemInstruction string
	WebSearch         bool
}

// ComposeImagePrompt はプロンプト、画風の句、品質指示を連結します。
// 画風が None の場合、画風の句は一切含まれません。
func ComposeImagePrompt(req domain.ImageRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	style, _ := domain.ParseStyle(string(req.Style))

	text := req.Prompt
	if !style.IsNone() {
		text += fmt.Sprintf(styleClauseFormat, style)
	}
	return text + QualitySuffix, nil
}

// ComposeEditPrompt は指示と元テキスト（引用符付き）を1つのメッセージにまとめます。
func ComposeEditPrompt(req domain.TextEditRequest) (EditPrompt, error) {
	if err := req.Validate(); err != nil {
		return EditPrompt{}, err
	}
	return EditPrompt{
		UserMessage:       fmt.Sprintf(editMessageFormat, req.Instruction, req.Text),
		SystemInstruction: EditSystemInstruction,
		Temperature:       EditTemperature,
	}, nil
}

// ComposeResearchPrompt はクエリをそのまま送信し、出力文法をシステム指示で固定します。
func ComposeResearchPrompt(req domain.ResearchRequest) (ResearchPrompt, error) {
	if err := req.Validate(); err != nil {
		return ResearchPrompt{}, err
	}
	return ResearchPrompt{
		UserMessage:       req.Query,
		SystemInstruction: ResearchSystemInstruction,
		WebSearch:         true,
	}, nil
}
