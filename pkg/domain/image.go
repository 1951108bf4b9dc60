package domain

import (
	"fmt"
	"strings"

	"github.com/shouni/scripic-kit/pkg/imgutil"
)

// Style は画像生成時に付与する画風です。値はそのままプロンプトに埋め込まれます。
type Style string

const (
	StyleNone      Style = "ninguna"
	StyleAnime     Style = "Anime"
	StyleGhibli    Style = "Ghibli"
	StyleRealistic Style = "Realista"
	StyleOil       Style = "Oleo"
)

// Styles は選択可能な画風の一覧です（UI の表示順）。
var Styles = []Style{StyleNone, StyleAnime, StyleGhibli, StyleRealistic, StyleOil}

// IsNone は画風の指定がないかどうかを返します。ゼロ値も指定なしとして扱います。
func (s Style) IsNone() bool {
	return s == "" || s == StyleNone
}

// ParseStyle は UI やコマンドラインからの入力を Style に変換します。
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ninguna", "ninguno", "none":
		return StyleNone, nil
	case "anime":
		return StyleAnime, nil
	case "ghibli", "studio ghibli":
		return StyleGhibli, nil
	case "realista", "realistic":
		return StyleRealistic, nil
	case "oleo", "óleo", "oil":
		return StyleOil, nil
	default:
		return "", ConfigurationError(fmt.Sprintf("Estilo no soportado: %q", s))
	}
}

// AspectRatio は生成画像のアスペクト比です。
type AspectRatio string

const (
	AspectSquare          AspectRatio = "1:1"
	AspectLandscape       AspectRatio = "16:9"
	AspectPortrait        AspectRatio = "9:16"
	AspectClassic         AspectRatio = "4:3"
	AspectClassicPortrait AspectRatio = "3:4"
)

// DefaultAspectRatio は未指定時に使用するアスペクト比です。
const DefaultAspectRatio = AspectSquare

// OrDefault は未指定の場合に DefaultAspectRatio を返します。
func (a AspectRatio) OrDefault() AspectRatio {
	if a == "" {
		return DefaultAspectRatio
	}
	return a
}

// ParseAspectRatio は入力文字列を AspectRatio に変換します。空文字は既定値になります。
func ParseAspectRatio(s string) (AspectRatio, error) {
	a := AspectRatio(strings.TrimSpace(s)).OrDefault()
	switch a {
	case AspectSquare, AspectLandscape, AspectPortrait, AspectClassic, AspectClassicPortrait:
		return a, nil
	default:
		return "", ConfigurationError(fmt.Sprintf("Relación de aspecto no soportada: %q", s))
	}
}

// ImageRequest は画像生成の要求です。
type ImageRequest struct {
	Prompt      string
	Style       Style
	AspectRatio AspectRatio
	// ReferenceURL は任意の参照画像です（http(s) または gs://）。
	ReferenceURL string
}

func (ImageRequest) Kind() WorkflowKind { return ImageGeneration }
func (ImageRequest) isRequest()         {}

// Validate はプロンプト、画風、アスペクト比を検証します。
func (r ImageRequest) Validate() error {
	if strings.TrimSpace(r.Prompt) == "" {
		return ConfigurationError("La descripción de la imagen no puede estar vacía.")
	}
	if _, err := ParseStyle(string(r.Style)); err != nil {
		return err
	}
	if _, err := ParseAspectRatio(string(r.AspectRatio)); err != nil {
		return err
	}
	return nil
}

// ImageResult は生成された画像です。
type ImageResult struct {
	MimeType string
	Data     []byte
}

func (ImageResult) Kind() WorkflowKind { return ImageGeneration }
func (ImageResult) isResult()          {}

// DataURI は UI 境界で使用する data URI 表現を返します。
func (r ImageResult) DataURI() string {
	return imgutil.EncodeDataURI(r.MimeType, r.Data)
}
