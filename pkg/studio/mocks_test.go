package studio

import (
	"context"

	"github.com/shouni/scripic-kit/pkg/gateway"
	"google.golang.org/genai"
)

// --- Mocks ---

// mockGateway は gateway.Gateway のテスト用モックです。
type mockGateway struct {
	invokeFunc func(ctx context.Context, req gateway.Request) (*genai.GenerateContentResponse, error)
	calls      int
	lastReq    gateway.Request
}

func (m *mockGateway) Invoke(ctx context.Context, req gateway.Request) (*genai.GenerateContentResponse, error) {
	m.calls++
	m.lastReq = req
	if m.invokeFunc == nil {
		return nil, nil
	}
	return m.invokeFunc(ctx, req)
}

func respondWith(resp *genai.GenerateContentResponse) *mockGateway {
	return &mockGateway{invokeFunc: func(ctx context.Context, req gateway.Request) (*genai.GenerateContentResponse, error) {
		return resp, nil
	}}
}

type mockPreparer struct {
	part    *genai.Part
	lastURL string
}

func (m *mockPreparer) PrepareImagePart(ctx context.Context, rawURL string) *genai.Part {
	m.lastURL = rawURL
	return m.part
}

func candidateResponse(c *genai.Candidate) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{c}}
}

func textCandidate(text string) *genai.GenerateContentResponse {
	return candidateResponse(&genai.Candidate{
		Content:      &genai.Content{Parts: []*genai.Part{{Text: text}}},
		FinishReason: genai.FinishReasonStop,
	})
}
