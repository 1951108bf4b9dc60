package normalizer

import (
	"strings"

	"github.com/shouni/scripic-kit/pkg/domain"
)

const (
	// BlockDelimiter は調査結果のブロックを区切る記号です。
	BlockDelimiter = "---"
	bulletMarker   = "-"
)

// ParseBlocks はモデルの出力を BlockDelimiter で分割し、Finding の列に変換します。
//
// 各ブロックは空行を除いてトリムした行に分解され、先頭行がタイトル、最終行が
// 出典行、その間がポイントになります。"-" で始まるポイントは記号を取り除いて
// 箇条書きとして記録します。1行だけのブロックはタイトルと出典行が同じ行になります。
// 空のブロックは捨てられ、エラーにはなりません。
func ParseBlocks(text string) []domain.Finding {
	findings := make([]domain.Finding, 0)
	for _, block := range strings.Split(text, BlockDelimiter) {
		if strings.TrimSpace(block) == "" {
			continue
		}
		if f, ok := parseBlock(block); ok {
			findings = append(findings, f)
		}
	}
	return findings
}

func parseBlock(block string) (domain.Finding, bool) {
	lines := nonEmptyLines(block)
	if len(lines) == 0 {
		return domain.Finding{}, false
	}

	var inner []string
	if len(lines) > 2 {
		inner = lines[1 : len(lines)-1]
	}
	f := domain.Finding{
		Title:      lines[0],
		Points:     make([]string, 0, len(inner)),
		Bulleted:   make([]bool, 0, len(inner)),
		SourceLine: lines[len(lines)-1],
	}
	for _, line := range inner {
		if rest, ok := strings.CutPrefix(line, bulletMarker); ok {
			f.Points = append(f.Points, strings.TrimSpace(rest))
			f.Bulleted = append(f.Bulleted, true)
			continue
		}
		f.Points = append(f.Points, line)
		f.Bulleted = append(f.Bulleted, false)
	}
	return f, true
}

func nonEmptyLines(block string) []string {
	raw := strings.Split(block, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// FormatFinding は Finding を ParseBlocks が解釈できる1ブロックのテキストに戻します。
func FormatFinding(f domain.Finding) string {
	if len(f.Points) == 0 && f.Title == f.SourceLine {
		return f.Title
	}
	lines := make([]string, 0, len(f.Points)+2)
	lines = append(lines, f.Title)
	for i, p := range f.Points {
		if f.IsBullet(i) {
			p = bulletMarker + " " + p
		}
		lines = append(lines, p)
	}
	lines = append(lines, f.SourceLine)
	return strings.Join(lines, "\n")
}

// FormatFindings は複数の Finding を区切り記号で連結します。
func FormatFindings(findings []domain.Finding) string {
	blocks := make([]string, len(findings))
	for i, f := range findings {
		blocks[i] = FormatFinding(f)
	}
	return strings.Join(blocks, "\n"+BlockDelimiter+"\n")
}
