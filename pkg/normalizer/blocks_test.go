package normalizer

import (
	"reflect"
	"strings"
	"testing"

	"github.com/shouni/scripic-kit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParseBlocks(t *testing.T) {
	t.Run("区切り記号で2件の Finding に分割される", func(t *testing.T) {
		text := "Mars Rover\n- Found ice\n- New images\nNASA.gov\n---\nAI Breakthrough\nModel released\nTechCrunch"

		got := ParseBlocks(text)

		require.Len(t, got, 2)
		assert.Equal(t, domain.Finding{
			Title:      "Mars Rover",
			Points:     []string{"Found ice", "New images"},
			Bulleted:   []bool{true, true},
			SourceLine: "NASA.gov",
		}, got[0])
		assert.Equal(t, domain.Finding{
			Title:      "AI Breakthrough",
			Points:     []string{"Model released"},
			Bulleted:   []bool{false},
			SourceLine: "TechCrunch",
		}, got[1])
	})

	t.Run("1行だけのブロックはタイトルと出典行が同じになる", func(t *testing.T) {
		got := ParseBlocks("  Solo una línea  \n")

		require.Len(t, got, 1)
		assert.Equal(t, "Solo una línea", got[0].Title)
		assert.Equal(t, "Solo una línea", got[0].SourceLine)
		assert.Empty(t, got[0].Points)
	})

	t.Run("空行と前後の空白は無視される", func(t *testing.T) {
		got := ParseBlocks("\n\n  Título \r\n\n   -   punto  \n\n Fuente \n---\n   \n---")

		require.Len(t, got, 1)
		assert.Equal(t, "Título", got[0].Title)
		assert.Equal(t, []string{"punto"}, got[0].Points)
		assert.True(t, got[0].IsBullet(0))
		assert.Equal(t, "Fuente", got[0].SourceLine)
	})

	t.Run("空の入力は空の列を返す", func(t *testing.T) {
		assert.Empty(t, ParseBlocks(""))
		assert.Empty(t, ParseBlocks(" --- \n---\n\t"))
	})
}

func TestParseBlocks_SingleBlockProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := rapid.StringMatching(`[a-zA-Z .\n\t-]{1,80}`).
			Filter(func(s string) bool {
				return !strings.Contains(s, BlockDelimiter) && strings.TrimSpace(s) != ""
			}).
			Draw(rt, "text")

		if got := ParseBlocks(text); len(got) != 1 {
			rt.Fatalf("expected exactly one finding for %q, got %d", text, len(got))
		}
	})
}

func TestParseBlocks_DelimiterOnlyProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		pieces := rapid.SliceOf(rapid.SampledFrom([]string{" ", "\n", "\t", "\r\n", BlockDelimiter})).Draw(rt, "pieces")

		if got := ParseBlocks(strings.Join(pieces, "")); len(got) != 0 {
			rt.Fatalf("expected no findings, got %d", len(got))
		}
	})
}

// lineGen はトリム済みで "-" や区切り記号を含まない1行を生成します。
func lineGen() *rapid.Generator[string] {
	return rapid.StringMatching(`[A-Za-z0-9]([A-Za-z0-9 .,:]{0,20}[A-Za-z0-9.,])?`)
}

func TestFormatFinding_RoundTripProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 5).Draw(rt, "points")
		f := domain.Finding{
			Title:      lineGen().Draw(rt, "title"),
			Points:     make([]string, 0, n),
			Bulleted:   make([]bool, 0, n),
			SourceLine: lineGen().Draw(rt, "source"),
		}
		for i := 0; i < n; i++ {
			f.Points = append(f.Points, lineGen().Draw(rt, "point"))
			f.Bulleted = append(f.Bulleted, rapid.Bool().Draw(rt, "bulleted"))
		}

		got := ParseBlocks(FormatFinding(f))
		if len(got) != 1 || !reflect.DeepEqual(got[0], f) {
			rt.Fatalf("round trip mismatch:\nwant %#v\ngot  %#v", f, got)
		}
	})
}

func TestFormatFindings(t *testing.T) {
	text := "A\n- uno\ndos\nFuente A\n---\nB\nFuente B"
	got := FormatFindings(ParseBlocks(text))
	assert.Equal(t, text, got)
}

func FuzzParseBlocks(f *testing.F) {
	f.Add("Mars Rover\n- Found ice\n- New images\nNASA.gov\n---\nAI Breakthrough\nModel released\nTechCrunch")
	f.Add("---\n---")
	f.Add("solo")
	f.Add("- \n-\n--\n----")

	f.Fuzz(func(t *testing.T, text string) {
		for _, finding := range ParseBlocks(text) {
			if finding.Title == "" || finding.SourceLine == "" {
				t.Fatalf("title and source line must not be empty: %#v", finding)
			}
			if finding.Title != strings.TrimSpace(finding.Title) {
				t.Fatalf("title must be trimmed: %q", finding.Title)
			}
			if len(finding.Points) != len(finding.Bulleted) {
				t.Fatalf("points and bullet flags must have the same length")
			}
			if strings.Contains(finding.Title, BlockDelimiter) || strings.Contains(finding.SourceLine, BlockDelimiter) {
				t.Fatalf("delimiter leaked into finding: %#v", finding)
			}
		}
	})
}
