package imgutil

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"net/http"
	"strings"
)

// DefaultQuality は参照画像を送信前に再エンコードする際の JPEG 品質です。
const DefaultQuality = 75

// CompressToJPEG は画像データ（PNG, GIF, JPEG等）をJPEG形式に圧縮します。
// quality は 1〜100 に丸められます。
func CompressToJPEG(data []byte, quality int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("画像のデコードに失敗しました: %w", err)
	}

	quality = min(max(quality, 1), 100)
	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("JPEGエンコードに失敗しました: %w", err)
	}
	return buf.Bytes(), nil
}

// ShrinkIfSmaller は JPEG 圧縮を試み、元データより小さくなった場合のみ圧縮結果を返します。
// デコードできないデータはそのまま返します。
func ShrinkIfSmaller(data []byte, quality int) []byte {
	compressed, err := CompressToJPEG(data, quality)
	if err != nil || len(compressed) >= len(data) {
		return data
	}
	return compressed
}

// DetectImageMIME はデータの先頭から MIME タイプを判定し、画像であれば返します。
func DetectImageMIME(data []byte) (string, bool) {
	mimeType := http.DetectContentType(data)
	return mimeType, strings.HasPrefix(mimeType, "image/")
}
