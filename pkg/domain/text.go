package domain

import "strings"

// TextEditRequest はテキスト編集の要求です。
// Instruction は複数の指示を ", " で連結したものでも構いません。
type TextEditRequest struct {
	Text        string
	Instruction string
}

func (TextEditRequest) Kind() WorkflowKind { return TextEditing }
func (TextEditRequest) isRequest()         {}

func (r TextEditRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" || strings.TrimSpace(r.Instruction) == "" {
		return ConfigurationError("Por favor, introduce un texto y al menos una instrucción.")
	}
	return nil
}

// TextResult は編集後のテキストです。
// Empty はモデルがテキストを返さず、Text に代替文が入っていることを示します。
type TextResult struct {
	Text  string
	Empty bool
}

func (TextResult) Kind() WorkflowKind { return TextEditing }
func (TextResult) isResult()          {}
