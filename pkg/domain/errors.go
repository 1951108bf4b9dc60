package domain

import (
	"errors"
	"fmt"
)

// ErrorKind は利用者向けに公開する失敗の分類です。
type ErrorKind int

const (
	// KindConfiguration は認証情報の欠落や不正な入力です。入力か環境を直す必要があります。
	KindConfiguration ErrorKind = iota + 1
	// KindSafetyBlocked はプロバイダが生成を拒否したことを示します。
	KindSafetyBlocked
	// KindEmptyResult は通信は成功したが利用可能なデータがなかったことを示します。
	KindEmptyResult
	// KindTransport はネットワーク、HTTP、デコードの失敗です。
	KindTransport
	// KindUnknown は分類できなかった失敗です。
	KindUnknown
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindSafetyBlocked:
		return "safety_blocked"
	case KindEmptyResult:
		return "empty_result"
	case KindTransport:
		return "transport"
	case KindUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Retryable は呼び出し側が同じ操作を再試行してよいかを返します。
// このパッケージ自身は再試行を行いません。
func (k ErrorKind) Retryable() bool {
	return k == KindTransport || k == KindEmptyResult
}

// OrchestrationError は分類済みの失敗です。生成後に変更されることはありません。
type OrchestrationError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// NewError は OrchestrationError を生成します。
func NewError(kind ErrorKind, message string, err error) *OrchestrationError {
	return &OrchestrationError{Kind: kind, Message: message, Err: err}
}

// ConfigurationError は Configuration 分類のエラーを生成します。
func ConfigurationError(message string) *OrchestrationError {
	return NewError(KindConfiguration, message, nil)
}

func (e *OrchestrationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *OrchestrationError) Unwrap() error {
	return e.Err
}

// AsOrchestrationError はエラーチェーンから OrchestrationError を取り出します。
func AsOrchestrationError(err error) (*OrchestrationError, bool) {
	var oe *OrchestrationError
	if errors.As(err, &oe) {
		return oe, true
	}
	return nil, false
}

// KindOf はエラーの分類を返します。分類されていないエラーは KindUnknown です。
func KindOf(err error) ErrorKind {
	if err == nil {
		return 0
	}
	if oe, ok := AsOrchestrationError(err); ok {
		return oe.Kind
	}
	return KindUnknown
}

// IsKind はエラーが指定した分類かどうかを返します。
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}
