package msd

// テーブルのレイアウト
const (
	textCountOffset  = 0x08
	recordTableStart = 0x10
	recordStride     = 0x0C
	addressGap       = 0x08
)

// Record はレコードテーブルの 1 エントリ (text_id とアドレスの組) を表します
type Record struct {
	Index   int
	TextID  uint32
	Address uint32
}

// RecordOffsets は i 番目のレコードの text_id とアドレスのオフセットを返します。
// レコードは 12 バイト間隔で、アドレスは text_id の 8 バイト後ろにあります。
func RecordOffsets(i int) (idOff, addrOff int) {
	idOff = recordTableStart + i*recordStride
	return idOff, idOff + addressGap
}

// TextCount はオフセット 8 のテキスト数を読みます
func (r *Reader) TextCount() (uint32, error) {
	return r.Uint32(textCountOffset)
}

// Record は i 番目のレコードを読みます
func (r *Reader) Record(i int) (Record, error) {
	idOff, addrOff := RecordOffsets(i)
	id, err := r.Uint32(idOff)
	if err != nil {
		return Record{}, err
	}
	addr, err := r.Uint32(addrOff)
	if err != nil {
		return Record{}, err
	}
	return Record{Index: i, TextID: id, Address: addr}, nil
}
