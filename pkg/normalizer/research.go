package normalizer

import (
	"github.com/shouni/scripic-kit/pkg/domain"
	"google.golang.org/genai"
)

const (
	// ResearchFallback はモデルがテキストを返さなかった場合の代替文です。
	ResearchFallback = "No se encontraron resultados relevantes."
	// SourceTitleFallback はタイトルのない引用元に使用します。
	SourceTitleFallback = "Fuente externa"
)

// ExtractSources は grounding chunk のうち Web 参照を持つものを Source に変換します。
// 順序は保持し、重複排除は行いません。Web 参照のない chunk の数を dropped として返します。
func ExtractSources(resp *genai.GenerateContentResponse) (sources []domain.Source, dropped int) {
	sources = make([]domain.Source, 0)
	candidate := firstCandidate(resp)
	if candidate == nil || candidate.GroundingMetadata == nil {
		return sources, 0
	}

	for _, chunk := range candidate.GroundingMetadata.GroundingChunks {
		if chunk == nil || chunk.Web == nil {
			dropped++
			continue
		}
		title := chunk.Web.Title
		if title == "" {
			title = SourceTitleFallback
		}
		sources = append(sources, domain.Source{Title: title, URI: chunk.Web.URI})
	}
	return sources, dropped
}

// NormalizeResearch は引用元を取り出し、出力テキストを ParseBlocks で分割します。
// 2番目の戻り値は ExtractSources が除外した chunk の数です。
func NormalizeResearch(resp *genai.GenerateContentResponse) (*domain.ResearchResult, int) {
	sources, dropped := ExtractSources(resp)

	result := &domain.ResearchResult{Sources: sources}
	result.RawText = responseText(resp)
	if result.RawText == "" {
		result.RawText = ResearchFallback
		result.Empty = true
	}
	result.Findings = ParseBlocks(result.RawText)
	return result, dropped
}
