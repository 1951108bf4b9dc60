package gateway

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shouni/scripic-kit/pkg/domain"
	"google.golang.org/genai"
)

// contentGenerator は genai.Models のうち利用するメソッドだけを切り出したものです。
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GenAIGateway は genai SDK を直接呼び出す Gateway です。
type GenAIGateway struct {
	models contentGenerator
}

// NewGenAIGateway は認証情報から genai クライアントを生成します。
// API キーがない場合はネットワークに触れる前に Configuration エラーを返します。
func NewGenAIGateway(ctx context.Context, creds Credentials) (*GenAIGateway, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	cc := &genai.ClientConfig{
		APIKey:  creds.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if creds.Endpoint != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: creds.Endpoint}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, domain.NewError(domain.KindConfiguration, "No se pudo inicializar el cliente de Gemini.", err)
	}
	return &GenAIGateway{models: client.Models}, nil
}

// Invoke はモデルを1回だけ呼び出します。再試行は行いません。
func (g *GenAIGateway) Invoke(ctx context.Context, req Request) (*genai.GenerateContentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	resp, err := g.models.GenerateContent(ctx, req.Model, req.contents(), req.config())
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			slog.WarnContext(ctx, "Gemini API がエラーを返しました",
				"workflow", req.Kind, "model", req.Model, "code", apiErr.Code, "status", apiErr.Status)
		}
		return nil, transportError("Error al conectar con el servicio de Gemini.", err)
	}
	if resp == nil {
		return nil, transportError("El servicio de Gemini devolvió una respuesta vacía.", nil)
	}
	return resp, nil
}
