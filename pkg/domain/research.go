package domain

import "strings"

// ResearchRequest は Web 検索付きリサーチの要求です。
type ResearchRequest struct {
	Query string
}

func (ResearchRequest) Kind() WorkflowKind { return ResearchGrounding }
func (ResearchRequest) isRequest()         {}

func (r ResearchRequest) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return ConfigurationError("La consulta de investigación no puede estar vacía.")
	}
	return nil
}

// Finding はモデルの出力テキストを区切り記号で分割して得られる1件の調査結果です。
type Finding struct {
	Title  string
	Points []string
	// Bulleted は Points と同じ長さで、各行が "-" 付きの箇条書きだったかを保持します。
	Bulleted   []bool
	SourceLine string
}

// IsBullet は i 番目のポイントが箇条書きかどうかを返します。
func (f Finding) IsBullet(i int) bool {
	return i >= 0 && i < len(f.Bulleted) && f.Bulleted[i]
}

// Source は grounding metadata から取り出した引用元です。重複排除は行いません。
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// ResearchResult はリサーチの結果です。
type ResearchResult struct {
	Findings []Finding
	Sources  []Source
	// RawText はパース前のモデル出力です（空の場合は代替文）。
	RawText string
	// Empty はモデルがテキストを返さなかったことを示します。
	Empty bool
}

func (ResearchResult) Kind() WorkflowKind { return ResearchGrounding }
func (ResearchResult) isResult()          {}
