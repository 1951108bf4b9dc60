package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/scripic-kit/pkg/domain"
	"google.golang.org/genai"
)

// DefaultAPIVersion は REST エンドポイントの API バージョンです。
const DefaultAPIVersion = "v1beta"

// HTTPGateway は generateContent REST エンドポイントを直接呼び出す Gateway です。
// プロキシ経由で Gemini に到達する構成で使用します。
// リトライを行わない httpkit.Doer.Do を使うため、1回の Invoke は1回の POST になります。
type HTTPGateway struct {
	client     httpkit.Doer
	creds      Credentials
	apiVersion string
}

// NewHTTPGateway は HTTP クライアントと認証情報を注入して HTTPGateway を生成します。
func NewHTTPGateway(client httpkit.Doer, creds Credentials) (*HTTPGateway, error) {
	if client == nil {
		return nil, fmt.Errorf("httpClient is required")
	}
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(creds.Endpoint) == "" {
		return nil, domain.ConfigurationError("No se ha configurado el endpoint de Gemini.")
	}
	return &HTTPGateway{client: client, creds: creds, apiVersion: DefaultAPIVersion}, nil
}

// generateContentRequest は REST API のリクエストボディです。
type generateContentRequest struct {
	Contents          []*wireContent    `json:"contents"`
	SystemInstruction *wireContent      `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
	Tools             []wireTool        `json:"tools,omitempty"`
}

type wireContent struct {
	Role  string     `json:"role,omitempty"`
	Parts []wirePart `json:"parts"`
}

type wirePart struct {
	Text       string    `json:"text,omitempty"`
	InlineData *wireBlob `json:"inlineData,omitempty"`
	FileData   *wireFile `json:"fileData,omitempty"`
}

type wireBlob struct {
	MIMEType string `json:"mimeType"`
	Data     []byte `json:"data"`
}

type wireFile struct {
	MIMEType string `json:"mimeType,omitempty"`
	FileURI  string `json:"fileUri"`
}

type generationConfig struct {
	Temperature *float32         `json:"temperature,omitempty"`
	ImageConfig *wireImageConfig `json:"imageConfig,omitempty"`
}

type wireImageConfig struct {
	AspectRatio string `json:"aspectRatio"`
}

type wireTool struct {
	GoogleSearch *struct{} `json:"googleSearch,omitempty"`
}

// errorEnvelope は REST API のエラーレスポンスです。
type errorEnvelope struct {
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Invoke は REST エンドポイントに1回だけ POST します。
func (g *HTTPGateway) Invoke(ctx context.Context, req Request) (*genai.GenerateContentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(toWireRequest(req))
	if err != nil {
		return nil, domain.NewError(domain.KindConfiguration, "No se pudo codificar la solicitud.", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpointURL(req.Model), bytes.NewReader(body))
	if err != nil {
		return nil, domain.NewError(domain.KindConfiguration, "El endpoint de Gemini no es válido.", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", g.creds.APIKey)

	httpResp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, transportError("Error al conectar con el servicio de Gemini.", err)
	}
	raw, err := httpkit.HandleResponse(httpResp)
	if err != nil {
		var statusErr *httpkit.NonRetryableHTTPError
		if errors.As(err, &statusErr) {
			raw = statusErr.Body
		} else {
			return nil, transportError("El servicio de Gemini devolvió un error.", err)
		}
	}

	var envelope errorEnvelope
	if jsonErr := json.Unmarshal(raw, &envelope); jsonErr == nil && envelope.Error != nil {
		slog.WarnContext(ctx, "Gemini REST API がエラーを返しました",
			"workflow", req.Kind, "model", req.Model, "code", envelope.Error.Code, "status", envelope.Error.Status)
		return nil, transportError("El servicio de Gemini devolvió un error.",
			fmt.Errorf("%d %s: %s", envelope.Error.Code, envelope.Error.Status, envelope.Error.Message))
	}
	if err != nil {
		return nil, transportError("El servicio de Gemini devolvió un error.", err)
	}

	var resp genai.GenerateContentResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, transportError("No se pudo interpretar la respuesta de Gemini.", err)
	}
	return &resp, nil
}

func (g *HTTPGateway) endpointURL(model string) string {
	base := strings.TrimRight(g.creds.Endpoint, "/")
	return fmt.Sprintf("%s/%s/models/%s:generateContent", base, g.apiVersion, url.PathEscape(model))
}

func toWireRequest(req Request) generateContentRequest {
	out := generateContentRequest{
		Contents: []*wireContent{{Role: string(genai.RoleUser), Parts: toWireParts(req.Parts)}},
	}
	if req.SystemInstruction != "" {
		out.SystemInstruction = &wireContent{Parts: []wirePart{{Text: req.SystemInstruction}}}
	}
	if req.Temperature != nil || req.AspectRatio != "" {
		out.GenerationConfig = &generationConfig{Temperature: req.Temperature}
		if req.AspectRatio != "" {
			out.GenerationConfig.ImageConfig = &wireImageConfig{AspectRatio: req.AspectRatio}
		}
	}
	if req.WebSearch {
		out.Tools = []wireTool{{GoogleSearch: &struct{}{}}}
	}
	return out
}

func toWireParts(parts []*genai.Part) []wirePart {
	out := make([]wirePart, 0, len(parts))
	for _, p := range parts {
		if p == nil {
			continue
		}
		wp := wirePart{Text: p.Text}
		if p.InlineData != nil {
			wp.InlineData = &wireBlob{MIMEType: p.InlineData.MIMEType, Data: p.InlineData.Data}
		}
		if p.FileData != nil {
			wp.FileData = &wireFile{MIMEType: p.FileData.MIMEType, FileURI: p.FileData.FileURI}
		}
		out = append(out, wp)
	}
	return out
}
