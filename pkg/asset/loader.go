// Package asset は画像生成に添付する参照画像の取得・圧縮・キャッシュを担当します。
package asset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/shouni/go-remote-io/pkg/remoteio"
	"github.com/shouni/scripic-kit/pkg/imgutil"
	"google.golang.org/genai"
)

const (
	cacheKeyImageData = "image_data:"
	schemeData        = "data"
)

// ErrUnsupportedSource は参照画像の取得手段が設定されていない場合に返されます。
var ErrUnsupportedSource = errors.New("参照画像の取得手段が設定されていません")

// Loader は参照画像 URL を genai.Part に変換します。
type Loader struct {
	httpClient HTTPClient
	reader     remoteio.InputReader
	cache      ImageCacher
	expiration time.Duration
	resolver   IPResolver
	compress   bool
	quality    int
}

// Option は Loader の設定を変更します。
type Option func(*Loader)

// WithCompression は JPEG 再圧縮の有無と品質を設定します。
func WithCompression(enabled bool, quality int) Option {
	return func(l *Loader) {
		l.compress = enabled
		l.quality = quality
	}
}

// WithResolver は SSRF チェックで使う名前解決を差し替えます。
func WithResolver(r IPResolver) Option {
	return func(l *Loader) { l.resolver = r }
}

// NewLoader は依存関係を注入して Loader を初期化します。
// reader と cache は nil を許容します（gs:// 非対応 / キャッシュなし動作）。
func NewLoader(httpClient HTTPClient, reader remoteio.InputReader, cache ImageCacher, cacheTTL time.Duration, opts ...Option) (*Loader, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("httpClient is required")
	}

	l := &Loader{
		httpClient: httpClient,
		reader:     reader,
		cache:      cache,
		expiration: cacheTTL,
		compress:   true,
		quality:    imgutil.DefaultQuality,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// PrepareImagePart は URL から画像を取得し、InlineData の Part を作成します。
// 取得に失敗した場合や画像でない場合は警告を記録して nil を返します。
func (l *Loader) PrepareImagePart(ctx context.Context, rawURL string) *genai.Part {
	data, err := l.Load(ctx, rawURL)
	if err != nil {
		slog.WarnContext(ctx, "参照画像を利用できないためスキップします", "url", rawURL, "error", err)
		return nil
	}
	mimeType, _ := imgutil.DetectImageMIME(data)
	return &genai.Part{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}}
}

// Load は URL の画像データを取得し、必要に応じて圧縮した結果を返します。
// 結果は URL をキーにキャッシュされます。data: URI はデコードのみ行い、キャッシュしません。
func (l *Loader) Load(ctx context.Context, rawURL string) ([]byte, error) {
	if strings.HasPrefix(rawURL, schemeData+":") {
		_, data, err := imgutil.DecodeDataURI(rawURL)
		if err != nil {
			return nil, err
		}
		return l.prepare(data, "data URI")
	}

	cacheKey := cacheKeyImageData + rawURL
	if l.cache != nil {
		if val, ok := l.cache.Get(cacheKey); ok {
			if data, ok := val.([]byte); ok {
				slog.DebugContext(ctx, "参照画像をキャッシュから取得しました", "url", rawURL)
				return data, nil
			}
		}
	}

	data, err := l.fetchImageData(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if data, err = l.prepare(data, rawURL); err != nil {
		return nil, err
	}

	if l.cache != nil {
		l.cache.Set(cacheKey, data, l.expiration)
	}
	return data, nil
}

// prepare は画像であることを確認し、設定に応じて再圧縮します。
func (l *Loader) prepare(data []byte, source string) ([]byte, error) {
	if _, ok := imgutil.DetectImageMIME(data); !ok {
		return nil, fmt.Errorf("画像データではありません: %s", source)
	}
	if l.compress {
		data = imgutil.ShrinkIfSmaller(data, l.quality)
	}
	return data, nil
}

func (l *Loader) fetchImageData(ctx context.Context, rawURL string) ([]byte, error) {
	if safe, err := IsSafeURL(ctx, l.resolver, rawURL); err != nil || !safe {
		return nil, fmt.Errorf("安全ではないURLが指定されました: %w", err)
	}

	if strings.HasPrefix(rawURL, schemeGCS+"://") {
		if l.reader == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, rawURL)
		}
		rc, err := l.reader.Open(ctx, rawURL)
		if err != nil {
			return nil, fmt.Errorf("GCSからの読み込みに失敗しました: %w", err)
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}

	data, err := l.httpClient.FetchBytes(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("画像のダウンロードに失敗しました: %w", err)
	}
	return data, nil
}
