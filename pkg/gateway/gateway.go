// Package gateway はモデル呼び出しを1回だけ実行し、失敗を分類して返します。
// レスポンスの中身（安全フィルターや空結果）の解釈は normalizer の責務です。
package gateway

import (
	"context"
	"strings"

	"github.com/shouni/scripic-kit/pkg/domain"
	"google.golang.org/genai"
)

// DefaultEndpoint は Gemini API の既定のエンドポイントです。
const DefaultEndpoint = "https://generativelanguage.googleapis.com"

// Gateway はモデルを呼び出すための境界です。テストでは代替実装を注入します。
type Gateway interface {
	Invoke(ctx context.Context, req Request) (*genai.GenerateContentResponse, error)
}

// Credentials は環境から渡される認証情報とエンドポイントです。
// 中身の形式は解釈せず、値が存在するかだけを確認します。
type Credentials struct {
	APIKey   string
	Endpoint string
}

// Validate は API キーが設定されているかを確認します。
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return domain.ConfigurationError("La API_KEY no está configurada.")
	}
	return nil
}

// Request は1回のモデル呼び出しの内容です。
type Request struct {
	Kind              domain.WorkflowKind
	Model             string
	Parts             []*genai.Part
	SystemInstruction string
	Temperature       *float32
	// AspectRatio は画像生成時のみ設定します。
	AspectRatio string
	// WebSearch は Google Search ツールを有効にします。
	WebSearch bool
}

// Validate は送信前にリクエストの形を検証します。
func (r Request) Validate() error {
	if strings.TrimSpace(r.Model) == "" {
		return domain.ConfigurationError("No se ha configurado el modelo.")
	}
	if len(r.Parts) == 0 {
		return domain.ConfigurationError("La solicitud no contiene contenido.")
	}
	return nil
}

func (r Request) contents() []*genai.Content {
	return []*genai.Content{genai.NewContentFromParts(r.Parts, genai.RoleUser)}
}

func (r Request) config() *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature: r.Temperature,
	}
	if r.SystemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(r.SystemInstruction, genai.RoleUser)
	}
	if r.AspectRatio != "" {
		cfg.ImageConfig = &genai.ImageConfig{AspectRatio: r.AspectRatio}
	}
	if r.WebSearch {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}
	return cfg
}

func transportError(message string, err error) error {
	return domain.NewError(domain.KindTransport, message, err)
}
