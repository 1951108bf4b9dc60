package imgutil

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// EncodeDataURI は MIME タイプとバイト列を data:<mime>;base64,<data> 形式に変換します。
func EncodeDataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURI は base64 形式の data URI を MIME タイプとバイト列に分解します。
func DecodeDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, fmt.Errorf("data URI ではありません")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("data URI にデータ部がありません")
	}
	mimeType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, fmt.Errorf("base64 以外のエンコーディングには対応していません")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("base64 デコードに失敗しました: %w", err)
	}
	return mimeType, data, nil
}
