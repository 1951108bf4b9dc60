package gateway

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"google.golang.org/genai"
)

// --- Mocks ---

// mockModels は contentGenerator のテスト用モックです。
type mockModels struct {
	calls        int
	lastModel    string
	lastContents []*genai.Content
	lastConfig   *genai.GenerateContentConfig
	resp         *genai.GenerateContentResponse
	err          error
}

func (m *mockModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	m.calls++
	m.lastModel = model
	m.lastContents = contents
	m.lastConfig = config
	return m.resp, m.err
}

// mockDoer は httpkit.Doer を実装します。
type mockDoer struct {
	calls    int
	lastReq  *http.Request
	lastBody []byte
	status   int
	body     []byte
	err      error
}

func (m *mockDoer) Do(req *http.Request) (*http.Response, error) {
	m.calls++
	m.lastReq = req
	if req.Body != nil {
		m.lastBody, _ = io.ReadAll(req.Body)
	}
	if m.err != nil {
		return nil, m.err
	}
	status := m.status
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader(m.body)),
		Request:    req,
	}, nil
}
