package msd

import (
	"bytes"
	"fmt"
)

// HeaderSize はマジックヘッダのバイト数
const HeaderSize = 8

// Magic は MSD ファイル先頭の識別子 ("MSDA" 00 00 01 00)
var Magic = [HeaderSize]byte{'M', 'S', 'D', 'A', 0x00, 0x00, 0x01, 0x00}

// CheckHeader はバッファがマジックヘッダで始まっているかを返します
func CheckHeader(buf []byte) bool {
	if len(buf) < HeaderSize {
		return false
	}
	return bytes.Equal(buf[:HeaderSize], Magic[:])
}

// ValidateHeader はヘッダを検証し、不一致なら ErrInvalidHeader を返します。
// 他のどの読み込みよりも先に呼び出す必要があります。
func ValidateHeader(buf []byte) error {
	if CheckHeader(buf) {
		return nil
	}
	n := min(len(buf), HeaderSize)
	return fmt.Errorf("%w: got % x", ErrInvalidHeader, buf[:n])
}
