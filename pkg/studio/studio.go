// Package studio は3つのワークフロー（画像生成・テキスト編集・Web リサーチ）の
// 統合窓口です。各メソッドはプロンプト組み立て、Gateway 呼び出し、正規化を
// 順に実行し、失敗を domain.OrchestrationError に分類して返します。
package studio

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shouni/scripic-kit/pkg/domain"
	"github.com/shouni/scripic-kit/pkg/gateway"
	"github.com/shouni/scripic-kit/pkg/normalizer"
	"github.com/shouni/scripic-kit/pkg/prompt"
	"google.golang.org/genai"
)

const (
	// DefaultImageModel は画像生成に使うモデルです。
	DefaultImageModel = "gemini-2.5-flash-image"
	// DefaultTextModel はテキスト編集とリサーチに使うモデルです。
	DefaultTextModel = "gemini-3-flash-preview"
)

// ImagePartPreparer は参照画像 URL を送信用の Part に変換します。asset.Loader が満たします。
type ImagePartPreparer interface {
	PrepareImagePart(ctx context.Context, rawURL string) *genai.Part
}

// Config は Studio の構築時に渡す設定です。
type Config struct {
	Credentials gateway.Credentials
	ImageModel  string
	TextModel   string
}

func (c Config) withDefaults() Config {
	if c.ImageModel == "" {
		c.ImageModel = DefaultImageModel
	}
	if c.TextModel == "" {
		c.TextModel = DefaultTextModel
	}
	return c
}

// Studio はワークフローの実行を担当します。状態を持たないため並行に呼び出せます。
type Studio struct {
	cfg    Config
	gw     gateway.Gateway
	assets ImagePartPreparer
}

// Option は Studio の設定を変更します。
type Option func(*Studio)

// WithAssetLoader は参照画像の読み込みを有効にします。
func WithAssetLoader(p ImagePartPreparer) Option {
	return func(s *Studio) { s.assets = p }
}

// New は Gateway を注入して Studio を初期化します。
func New(cfg Config, gw gateway.Gateway, opts ...Option) (*Studio, error) {
	if gw == nil {
		return nil, fmt.Errorf("gateway is required")
	}
	s := &Studio{cfg: cfg.withDefaults(), gw: gw}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// GenerateImage はプロンプト（と任意の参照画像）から画像を1枚生成します。
func (s *Studio) GenerateImage(ctx context.Context, req domain.ImageRequest) (res *domain.ImageResult, err error) {
	defer s.finish(ctx, domain.ImageGeneration, time.Now(), &err)

	if err := s.cfg.Credentials.Validate(); err != nil {
		return nil, err
	}
	text, err := prompt.ComposeImagePrompt(req)
	if err != nil {
		return nil, err
	}

	parts := []*genai.Part{genai.NewPartFromText(text)}
	if req.ReferenceURL != "" && s.assets != nil {
		if imgPart := s.assets.PrepareImagePart(ctx, req.ReferenceURL); imgPart != nil {
			parts = append(parts, imgPart)
		}
	}

	resp, err := s.gw.Invoke(ctx, gateway.Request{
		Kind:        domain.ImageGeneration,
		Model:       s.cfg.ImageModel,
		Parts:       parts,
		AspectRatio: string(req.AspectRatio.OrDefault()),
	})
	if err != nil {
		return nil, err
	}
	return normalizer.NormalizeImage(resp)
}

// EditText は指示に従ってテキストを書き換えます。
// モデルがテキストを返さない場合も成功として代替文を返します。
func (s *Studio) EditText(ctx context.Context, req domain.TextEditRequest) (res *domain.TextResult, err error) {
	defer s.finish(ctx, domain.TextEditing, time.Now(), &err)

	if err := s.cfg.Credentials.Validate(); err != nil {
		return nil, err
	}
	p, err := prompt.ComposeEditPrompt(req)
	if err != nil {
		return nil, err
	}

	temperature := p.Temperature
	resp, err := s.gw.Invoke(ctx, gateway.Request{
		Kind:              domain.TextEditing,
		Model:             s.cfg.TextModel,
		Parts:             []*genai.Part{genai.NewPartFromText(p.UserMessage)},
		SystemInstruction: p.SystemInstruction,
		Temperature:       &temperature,
	})
	if err != nil {
		return nil, err
	}

	res = normalizer.NormalizeText(resp)
	if res.Empty {
		slog.WarnContext(ctx, "モデルがテキストを返さなかったため代替文を使用します", "workflow", domain.TextEditing)
	}
	return res, nil
}

// RunResearch は Web 検索を有効にしてクエリを実行し、結果を Finding と引用元に分解します。
func (s *Studio) RunResearch(ctx context.Context, req domain.ResearchRequest) (res *domain.ResearchResult, err error) {
	defer s.finish(ctx, domain.ResearchGrounding, time.Now(), &err)

	if err := s.cfg.Credentials.Validate(); err != nil {
		return nil, err
	}
	p, err := prompt.ComposeResearchPrompt(req)
	if err != nil {
		return nil, err
	}

	resp, err := s.gw.Invoke(ctx, gateway.Request{
		Kind:              domain.ResearchGrounding,
		Model:             s.cfg.TextModel,
		Parts:             []*genai.Part{genai.NewPartFromText(p.UserMessage)},
		SystemInstruction: p.SystemInstruction,
		WebSearch:         p.WebSearch,
	})
	if err != nil {
		return nil, err
	}

	res, dropped := normalizer.NormalizeResearch(resp)
	if dropped > 0 {
		slog.DebugContext(ctx, "Web 参照のない引用元を除外しました", "dropped", dropped)
	}
	return res, nil
}

// Run はリクエストの種類に応じてワークフローを実行します。
func (s *Studio) Run(ctx context.Context, req domain.Request) (domain.Result, error) {
	switch r := req.(type) {
	case domain.ImageRequest:
		return nilIfFailed[*domain.ImageResult](s.GenerateImage(ctx, r))
	case domain.TextEditRequest:
		return nilIfFailed[*domain.TextResult](s.EditText(ctx, r))
	case domain.ResearchRequest:
		return nilIfFailed[*domain.ResearchResult](s.RunResearch(ctx, r))
	case *domain.ImageRequest:
		if r != nil {
			return nilIfFailed[*domain.ImageResult](s.GenerateImage(ctx, *r))
		}
	case *domain.TextEditRequest:
		if r != nil {
			return nilIfFailed[*domain.TextResult](s.EditText(ctx, *r))
		}
	case *domain.ResearchRequest:
		if r != nil {
			return nilIfFailed[*domain.ResearchResult](s.RunResearch(ctx, *r))
		}
	}
	return nil, domain.ConfigurationError("Acción no soportada.")
}

// nilIfFailed は失敗時に型付き nil ポインタがインターフェースに入らないようにします。
func nilIfFailed[T domain.Result](res T, err error) (domain.Result, error) {
	if err != nil {
		return nil, err
	}
	return res, nil
}

// finish は panic を Unknown に変換し、未分類のエラーを Unknown でラップしてからログを出力します。
func (s *Studio) finish(ctx context.Context, kind domain.WorkflowKind, start time.Time, errp *error) {
	if r := recover(); r != nil {
		*errp = domain.NewError(domain.KindUnknown, "Error inesperado.", fmt.Errorf("panic: %v", r))
	}
	if *errp != nil {
		if _, ok := domain.AsOrchestrationError(*errp); !ok {
			*errp = domain.NewError(domain.KindUnknown, (*errp).Error(), *errp)
		}
	}

	elapsed := time.Since(start)
	if *errp != nil {
		slog.WarnContext(ctx, "ワークフローが失敗しました",
			"workflow", kind, "kind", domain.KindOf(*errp), "elapsed", elapsed, "error", *errp)
		return
	}
	slog.InfoContext(ctx, "ワークフローが完了しました", "workflow", kind, "elapsed", elapsed)
}
