package msd

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
)

// EncodingKind はファイル内の文字列に適用されるエンコーディングの種類
type EncodingKind int

const (
	// SingleByte は 1 バイト系 (Windows-1252) のフォールバック
	SingleByte EncodingKind = iota
	// DoubleByte は Shift-JIS 系の日本語テキスト
	DoubleByte
)

// String は内部名を返します
func (k EncodingKind) String() string {
	switch k {
	case DoubleByte:
		return "shift-jis"
	case SingleByte:
		return "ansi"
	default:
		return fmt.Sprintf("EncodingKind(%d)", int(k))
	}
}

// Encoding は対応する x/text のエンコーディングを返します
func (k EncodingKind) Encoding() encoding.Encoding {
	if k == DoubleByte {
		return japanese.ShiftJIS
	}
	return charmap.Windows1252
}

// ParseEncodingKind は名前から EncodingKind を返します
func ParseEncodingKind(name string) (EncodingKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "shift-jis", "shift_jis", "sjis", "cp932", "windows-31j":
		return DoubleByte, nil
	case "ansi", "cp1252", "windows-1252":
		return SingleByte, nil
	default:
		return SingleByte, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
}

// DecodeText は raw を kind のエンコーディングで UTF-8 に変換します。
// 置換文字 (U+FFFD) に落ちるバイト列があれば ErrDecode を返します。
func DecodeText(raw []byte, kind EncodingKind) (string, error) {
	out, err := kind.Encoding().NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecode, err)
	}
	// どちらの文字セットも正当な文字として U+FFFD を含まない
	if bytes.ContainsRune(out, utf8.RuneError) {
		return "", ErrDecode
	}
	return string(out), nil
}
