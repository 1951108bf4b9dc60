package normalizer

import (
	"strings"

	"github.com/shouni/scripic-kit/pkg/domain"
	"google.golang.org/genai"
)

// TextFallback はモデルがテキストを返さなかった場合の代替文です。
const TextFallback = "No se generó respuesta del modelo."

// NormalizeText はレスポンスのテキストを加工せずに返します。
// テキストが空の場合も失敗にはせず、代替文と Empty=true を返します。
func NormalizeText(resp *genai.GenerateContentResponse) *domain.TextResult {
	text := responseText(resp)
	if text == "" {
		return &domain.TextResult{Text: TextFallback, Empty: true}
	}
	return &domain.TextResult{Text: text}
}

// responseText は最初の候補のテキストパートを連結します（思考パートは除外）。
func responseText(resp *genai.GenerateContentResponse) string {
	candidate := firstCandidate(resp)
	if candidate == nil || candidate.Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}
