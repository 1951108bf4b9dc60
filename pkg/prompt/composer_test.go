package prompt

import (
	"strings"
	"testing"

	"github.com/shouni/scripic-kit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

const styleMarker = " en estilo artístico "

func TestComposeImagePrompt(t *testing.T) {
	t.Run("画風なしの場合は品質指示のみが付与される", func(t *testing.T) {
		got, err := ComposeImagePrompt(domain.ImageRequest{Prompt: "Un paisaje futurista", Style: domain.StyleNone})
		require.NoError(t, err)
		assert.Equal(t, "Un paisaje futurista Alta calidad, detalle cinematográfico, 4k, iluminación profesional.", got)
	})

	t.Run("画風ありの場合は画風の句が1つ入る", func(t *testing.T) {
		got, err := ComposeImagePrompt(domain.ImageRequest{Prompt: "Un gato", Style: domain.StyleGhibli})
		require.NoError(t, err)
		assert.Equal(t, "Un gato en estilo artístico Ghibli. Alta calidad, detalle cinematográfico, 4k, iluminación profesional.", got)
	})

	t.Run("空のプロンプトは Configuration エラー", func(t *testing.T) {
		_, err := ComposeImagePrompt(domain.ImageRequest{Prompt: " \n"})
		assert.True(t, domain.IsKind(err, domain.KindConfiguration))
	})
}

func TestComposeImagePrompt_StyleClauseProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := rapid.StringMatching(`[A-Za-z][A-Za-z0-9 ,]{0,40}`).Draw(rt, "prompt")
		style := rapid.SampledFrom(domain.Styles).Draw(rt, "style")

		got, err := ComposeImagePrompt(domain.ImageRequest{Prompt: text, Style: style})
		if err != nil {
			rt.Fatalf("unexpected error: %v", err)
		}

		n := strings.Count(got, styleMarker)
		if style.IsNone() {
			if n != 0 {
				rt.Fatalf("style clause must be absent for None: %q", got)
			}
			return
		}
		if n != 1 || !strings.Contains(got, styleMarker+string(style)+".") {
			rt.Fatalf("expected exactly one clause naming %s: %q", style, got)
		}

		again, _ := ComposeImagePrompt(domain.ImageRequest{Prompt: text, Style: style})
		if again != got {
			rt.Fatalf("output must be stable for identical input")
		}
	})
}

func TestComposeEditPrompt(t *testing.T) {
	got, err := ComposeEditPrompt(domain.TextEditRequest{
		Text:        "hola mundo",
		Instruction: JoinInstructions([]string{"Resumir de forma concisa", "Traducir al Inglés"}, ""),
	})
	require.NoError(t, err)

	assert.Equal(t, "INSTRUCCIÓN: Resumir de forma concisa, Traducir al Inglés\n\nTEXTO: \"hola mundo\"", got.UserMessage)
	assert.Equal(t, EditSystemInstruction, got.SystemInstruction)
	assert.InDelta(t, 0.7, got.Temperature, 1e-6)

	_, err = ComposeEditPrompt(domain.TextEditRequest{Text: "hola"})
	assert.True(t, domain.IsKind(err, domain.KindConfiguration))
}

func TestComposeResearchPrompt(t *testing.T) {
	got, err := ComposeResearchPrompt(domain.ResearchRequest{Query: "Últimas noticias de Marte"})
	require.NoError(t, err)

	assert.Equal(t, "Últimas noticias de Marte", got.UserMessage)
	assert.True(t, got.WebSearch)
	assert.Contains(t, got.SystemInstruction, `"---"`)

	_, err = ComposeResearchPrompt(domain.ResearchRequest{Query: ""})
	assert.True(t, domain.IsKind(err, domain.KindConfiguration))
}

func TestJoinInstructions(t *testing.T) {
	assert.Equal(t, "", JoinInstructions(nil, "  "))
	assert.Equal(t, "A, B, libre", JoinInstructions([]string{"A", " ", "B"}, " libre "))
}
