package msd

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// StopPattern は文字列の終端を示す 2 バイトのマーカー
var StopPattern = []byte{0x00, 0x00}

// Reader は不変のバイト列からリトルエンディアンの値を読み出します。
// バッファを書き換えることはないため、同じバッファに対して何度呼んでも同じ結果になります。
type Reader struct {
	buf []byte
}

// NewReader は新しい Reader を作成します
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Len はバッファ長を返します
func (r *Reader) Len() int {
	return len(r.buf)
}

// ReadUint は addr から size バイトを符号なしリトルエンディアン整数として読みます。
// size は 1, 2, 4, 8 のいずれかです。
func (r *Reader) ReadUint(addr, size int) (uint64, error) {
	if err := r.check(addr, size); err != nil {
		return 0, err
	}
	b := r.buf[addr : addr+size]
	switch size {
	case 1:
		return uint64(b[0]), nil
	case 2:
		return uint64(binary.LittleEndian.Uint16(b)), nil
	case 4:
		return uint64(binary.LittleEndian.Uint32(b)), nil
	case 8:
		return binary.LittleEndian.Uint64(b), nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
}

// Uint32 は addr から 4 バイトの値を読みます
func (r *Reader) Uint32(addr int) (uint32, error) {
	v, err := r.ReadUint(addr, 4)
	return uint32(v), err
}

// ReadBoundedBytes は addr から stop が最初に現れる位置の手前までを返します。
// stop が見つからない場合はバッファ末尾まで、addr が範囲外の場合は空スライスを返します。
// 戻り値はバッファのサブスライスなので呼び出し側で変更しないでください。
func (r *Reader) ReadBoundedBytes(addr int, stop []byte) []byte {
	if addr < 0 || addr >= len(r.buf) {
		return r.buf[len(r.buf):]
	}
	rest := r.buf[addr:]
	// 2 バイト単位の整列は考慮しない (既存ファイルとの互換のため)
	if i := bytes.Index(rest, stop); i >= 0 {
		return rest[:i]
	}
	return rest
}

// check は読み込み範囲がバッファ内に収まっているかを確認します
func (r *Reader) check(addr, size int) error {
	if size <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if addr < 0 || addr > len(r.buf) || size > len(r.buf)-addr {
		return &OutOfBoundsError{Offset: addr, Size: size, Len: len(r.buf)}
	}
	return nil
}
