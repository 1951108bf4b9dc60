package gateway

import (
	"context"
	"sync"

	"google.golang.org/genai"
)

// Factory は Gateway を生成します。
type Factory func(ctx context.Context) (Gateway, error)

// Lazy は最初の Invoke で Gateway を生成して使い回します。
// 生成に失敗した場合は保持せず、次回の呼び出しで再度生成を試みます。
type Lazy struct {
	factory Factory
	mu      sync.Mutex
	gw      Gateway
}

// NewLazy は factory を使って遅延生成する Gateway を返します。
func NewLazy(factory Factory) *Lazy {
	return &Lazy{factory: factory}
}

func (l *Lazy) get(ctx context.Context) (Gateway, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.gw != nil {
		return l.gw, nil
	}
	gw, err := l.factory(ctx)
	if err != nil {
		return nil, err
	}
	l.gw = gw
	return gw, nil
}

// Invoke は生成済みの Gateway に委譲します。
func (l *Lazy) Invoke(ctx context.Context, req Request) (*genai.GenerateContentResponse, error) {
	gw, err := l.get(ctx)
	if err != nil {
		return nil, err
	}
	return gw.Invoke(ctx, req)
}
