package msd

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidHeader はマジックヘッダが一致しない場合のエラー
	ErrInvalidHeader = errors.New("invalid msd header")

	// ErrOutOfBounds はオフセットがバッファの範囲外を指している場合のエラー
	ErrOutOfBounds = errors.New("offset out of bounds")

	// ErrDecode は文字列が検出したエンコーディングで復号できない場合のエラー
	ErrDecode = errors.New("cannot decode text")

	// ErrInvalidSize はサポートしていない整数幅を指定した場合のエラー
	ErrInvalidSize = errors.New("unsupported integer size")
)

// OutOfBoundsError は範囲外アクセスの詳細を保持します
type OutOfBoundsError struct {
	Offset int // 読み込み開始位置
	Size   int // 読み込みサイズ
	Len    int // バッファ長
}

// Error はエラーメッセージを返します
func (e *OutOfBoundsError) Error() string {
	if e.Size == 0 {
		return fmt.Sprintf("%v: address 0x%x is past the end of a %d byte buffer", ErrOutOfBounds, e.Offset, e.Len)
	}
	return fmt.Sprintf("%v: read of %d bytes at 0x%x exceeds buffer of %d bytes", ErrOutOfBounds, e.Size, e.Offset, e.Len)
}

// Unwrap は ErrOutOfBounds を返します
func (e *OutOfBoundsError) Unwrap() error {
	return ErrOutOfBounds
}

// DecodeError は復号に失敗したテキストの情報を保持します
type DecodeError struct {
	TextID   uint32
	Address  uint32
	Encoding EncodingKind
}

// Error はエラーメッセージを返します
func (e *DecodeError) Error() string {
	return fmt.Sprintf("%v: text 0x%x at 0x%x is not valid %s", ErrDecode, e.TextID, e.Address, e.Encoding)
}

// Unwrap は ErrDecode を返します
func (e *DecodeError) Unwrap() error {
	return ErrDecode
}

// ErrUnknownEncoding は指定されたエンコーディング名を解釈できない場合のエラー
var ErrUnknownEncoding = errors.New("unknown encoding")
