package server

import (
	"context"

	"github.com/shouni/scripic-kit/pkg/domain"
)

// mockRunner は Runner のテスト用モックです。
type mockRunner struct {
	runFunc func(ctx context.Context, req domain.Request) (domain.Result, error)
	calls   int
	lastReq domain.Request
}

func (m *mockRunner) Run(ctx context.Context, req domain.Request) (domain.Result, error) {
	m.calls++
	m.lastReq = req
	if m.runFunc == nil {
		return nil, domain.NewError(domain.KindUnknown, "no implementado", nil)
	}
	return m.runFunc(ctx, req)
}

func returning(res domain.Result, err error) *mockRunner {
	return &mockRunner{runFunc: func(ctx context.Context, req domain.Request) (domain.Result, error) {
		return res, err
	}}
}
