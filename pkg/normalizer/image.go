// Package normalizer はワークフローごとにプロバイダのレスポンスを
// UI に依存しない結果型へ変換します。
package normalizer

import (
	"fmt"

	"github.com/shouni/scripic-kit/pkg/domain"
	"google.golang.org/genai"
)

// DefaultImageMIMEType は InlineData に MIME タイプがない場合に使用します。
const DefaultImageMIMEType = "image/png"

const (
	msgSafetyBlocked = "Contenido bloqueado por filtros de seguridad. Intenta con una descripción diferente."
	msgNoImageData   = "El modelo no devolvió datos de imagen."
)

// safetyFinishReasons は安全フィルターによる停止を示す FinishReason です。
var safetyFinishReasons = map[genai.FinishReason]bool{
	genai.FinishReasonSafety:                       true,
	genai.FinishReasonBlocklist:                    true,
	genai.FinishReasonProhibitedContent:            true,
	genai.FinishReasonSPII:                         true,
	genai.FinishReason("IMAGE_SAFETY"):             true,
	genai.FinishReason("IMAGE_PROHIBITED_CONTENT"): true,
}

// NormalizeImage は画像生成のレスポンスから最初の InlineData を取り出します。
// 候補がない、または安全フィルターで停止した場合は SafetyBlocked、
// 画像データが見つからない場合は EmptyResult を返します。
func NormalizeImage(resp *genai.GenerateContentResponse) (*domain.ImageResult, error) {
	candidate := firstCandidate(resp)
	if candidate == nil {
		return nil, domain.NewError(domain.KindSafetyBlocked, msgSafetyBlocked, blockReason(resp))
	}
	if safetyFinishReasons[candidate.FinishReason] {
		return nil, domain.NewError(domain.KindSafetyBlocked, msgSafetyBlocked,
			fmt.Errorf("FinishReason: %s", candidate.FinishReason))
	}

	// 最初の候補 (Candidate) のみを利用する。
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
				continue
			}
			mimeType := part.InlineData.MIMEType
			if mimeType == "" {
				mimeType = DefaultImageMIMEType
			}
			return &domain.ImageResult{MimeType: mimeType, Data: part.InlineData.Data}, nil
		}
	}

	return nil, domain.NewError(domain.KindEmptyResult, msgNoImageData,
		fmt.Errorf("FinishReason: %s", candidate.FinishReason))
}

func firstCandidate(resp *genai.GenerateContentResponse) *genai.Candidate {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	return resp.Candidates[0]
}

func blockReason(resp *genai.GenerateContentResponse) error {
	if resp == nil || resp.PromptFeedback == nil || resp.PromptFeedback.BlockReason == "" {
		return fmt.Errorf("no candidates")
	}
	return fmt.Errorf("BlockReason: %s", resp.PromptFeedback.BlockReason)
}
