// Package msd は MSD 形式 (テキストリソース) のバイナリを読み込むためのパッケージです。
//
// ファイルレイアウト (リトルエンディアン):
//
//	0x00          8  magic      "MSDA" 00 00 01 00
//	0x08          4  text_count レコード数
//	0x10 + i*0xC  4  text_id[i]
//	0x18 + i*0xC  4  address[i] 文字列の絶対オフセット
//	address[i]..     文字列     00 00 で終端
//
// 文字列のエンコーディングは最初の文字列から推定し、ファイル全体に適用します。
//
// 基本的な使い方:
//
//	data, _ := os.ReadFile("event.msd")
//	table, err := msd.Parse(data)
//	if err != nil {
//	    // errors.Is(err, msd.ErrInvalidHeader) など
//	}
//	for _, id := range table.IDs {
//	    fmt.Println(id, table.Texts[id])
//	}
package msd

// TextTable は text_id から文字列への対応表
type TextTable struct {
	Encoding EncodingKind
	Texts    map[uint32]string
	// IDs は各 text_id が最初に現れた順序。重複した ID は値だけが後のレコードで上書きされます。
	IDs []uint32
}

func newTextTable(kind EncodingKind, sizeHint int) *TextTable {
	return &TextTable{
		Encoding: kind,
		Texts:    make(map[uint32]string, sizeHint),
		IDs:      make([]uint32, 0, sizeHint),
	}
}

// set は id の値を設定します (後勝ち)
func (t *TextTable) set(id uint32, text string) {
	if _, ok := t.Texts[id]; !ok {
		t.IDs = append(t.IDs, id)
	}
	t.Texts[id] = text
}

// Len はエントリ数を返します
func (t *TextTable) Len() int {
	return len(t.Texts)
}

// Get は id に対応する文字列を返します
func (t *TextTable) Get(id uint32) (string, bool) {
	s, ok := t.Texts[id]
	return s, ok
}

// DecoderOptions は Decoder の設定オプション
type DecoderOptions struct {
	// Detector は文字コード判定器。nil の場合は ChardetDetector を使用します
	Detector Detector
	// Encoding が指定されている場合は判定を行わずにこのエンコーディングを使用します
	Encoding *EncodingKind
}

// Decoder は MSD バッファを TextTable に変換します。
// 状態を持たないため、複数の goroutine から同時に使用できます。
type Decoder struct {
	detector Detector
	encoding *EncodingKind
}

// NewDecoder は新しい Decoder を作成します
func NewDecoder() *Decoder {
	return NewDecoderWithOptions(DecoderOptions{})
}

// NewDecoderWithOptions は新しい Decoder をオプション付きで作成します
func NewDecoderWithOptions(opts DecoderOptions) *Decoder {
	detector := opts.Detector
	if detector == nil {
		detector = NewChardetDetector()
	}
	var enc *EncodingKind
	if opts.Encoding != nil {
		k := *opts.Encoding
		enc = &k
	}
	return &Decoder{detector: detector, encoding: enc}
}

var defaultDecoder = NewDecoder()

// Parse はデフォルトの Decoder で buf を解析します
func Parse(buf []byte) (*TextTable, error) {
	return defaultDecoder.Decode(buf)
}

// Decode は buf を解析して TextTable を返します。
// ヘッダ検証に失敗した場合、ヘッダ以降のバイトは一切読みません。
func (d *Decoder) Decode(buf []byte) (*TextTable, error) {
	if err := ValidateHeader(buf); err != nil {
		return nil, err
	}

	r := NewReader(buf)
	count, err := r.TextCount()
	if err != nil {
		return nil, err
	}

	kind := SingleByte
	switch {
	case d.encoding != nil:
		kind = *d.encoding
	case count > 0:
		kind = DetectEncoding(buf, d.detector)
	}

	table := newTextTable(kind, sizeHint(count, len(buf)))
	for i := uint32(0); i < count; i++ {
		rec, err := r.Record(int(i))
		if err != nil {
			return nil, err
		}
		text, err := d.readText(r, rec, kind)
		if err != nil {
			return nil, err
		}
		table.set(rec.TextID, text)
	}

	return table, nil
}

// readText はレコードが指す文字列を読み込んで復号します
func (d *Decoder) readText(r *Reader, rec Record, kind EncodingKind) (string, error) {
	if uint64(rec.Address) > uint64(r.Len()) {
		return "", &OutOfBoundsError{Offset: int(rec.Address), Len: r.Len()}
	}
	raw := r.ReadBoundedBytes(int(rec.Address), StopPattern)
	text, err := DecodeText(raw, kind)
	if err != nil {
		return "", &DecodeError{TextID: rec.TextID, Address: rec.Address, Encoding: kind}
	}
	return text, nil
}

// sizeHint は信頼できない text_count をバッファに収まるレコード数で制限します
func sizeHint(count uint32, bufLen int) int {
	fit := 0
	if bufLen >= recordTableStart+recordStride {
		fit = (bufLen - recordTableStart) / recordStride
	}
	return int(min(uint64(count), uint64(fit)))
}
