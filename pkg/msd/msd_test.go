package msd

import (
	"encoding/binary"
	"errors"
	"testing"
)

func TestParse_SingleByte(t *testing.T) {
	// magic + text_count=1 + パディング + {id=0x2A, address=0x20} + "Hi" 00 00
	buf := make([]byte, 0x20)
	copy(buf, Magic[:])
	buf[0x08] = 0x01
	buf[0x10] = 0x2A
	buf[0x18] = 0x20
	buf = append(buf, 'H', 'i', 0x00, 0x00)

	table, err := Parse(buf)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if table.Encoding != SingleByte {
		t.Errorf("Encoding = %v, want SingleByte", table.Encoding)
	}
	if table.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", table.Len())
	}
	if got, ok := table.Get(0x2A); !ok || got != "Hi" {
		t.Errorf("Get(0x2A) = %q, %v; want \"Hi\", true", got, ok)
	}
}

func TestParse_DoubleByte(t *testing.T) {
	const phrase = "こんにちは、世界"
	buf := buildMSD(t, []testRecord{
		{id: 0x2A, text: toShiftJIS(t, phrase)},
		{id: 0x2B, text: toShiftJIS(t, "さようなら")},
	})

	decoder := NewDecoderWithOptions(DecoderOptions{Detector: fixedDetector("Shift_JIS")})
	table, err := decoder.Decode(buf)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if table.Encoding != DoubleByte {
		t.Errorf("Encoding = %v, want DoubleByte", table.Encoding)
	}
	if got := table.Texts[0x2A]; got != phrase {
		t.Errorf("Texts[0x2A] = %q, want %q", got, phrase)
	}
	if got := table.Texts[0x2B]; got != "さようなら" {
		t.Errorf("Texts[0x2B] = %q, want %q", got, "さようなら")
	}
}

func TestParse_DoubleByteWithChardet(t *testing.T) {
	const sentence = "これはテストです。わたしのなまえはさくらです。これはテストです。わたしのなまえはさくらです。"
	buf := buildMSD(t, []testRecord{
		{id: 1, text: toShiftJIS(t, sentence)},
		{id: 2, text: toShiftJIS(t, "はい")},
	})

	table, err := Parse(buf)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if table.Encoding != DoubleByte {
		t.Fatalf("Encoding = %v, want DoubleByte", table.Encoding)
	}
	if table.Texts[1] != sentence || table.Texts[2] != "はい" {
		t.Errorf("Texts = %q", table.Texts)
	}
}

func TestParse_ShortJapanese(t *testing.T) {
	tests := []struct {
		name   string
		phrase string
	}{
		{"挨拶", "こんにちは"},
		{"句読点と漢字", "こんにちは、世界"},
		{"2文字", "はい"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := buildMSD(t, []testRecord{{id: 0x2A, text: toShiftJIS(t, tt.phrase)}})

			table, err := Parse(buf)
			if err != nil {
				t.Fatalf("Parse() failed: %v", err)
			}
			if table.Encoding != DoubleByte {
				t.Errorf("Encoding = %v, want DoubleByte", table.Encoding)
			}
			if got, ok := table.Get(0x2A); !ok || got != tt.phrase {
				t.Errorf("Get(0x2A) = %q, %v; want %q", got, ok, tt.phrase)
			}
		})
	}
}

func TestParse_HeaderErrors(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
	}{
		{"空", nil},
		{"MSDAのみ (4バイト)", []byte("MSDA")},
		{"別のマジック", []byte("MSDB\x00\x00\x01\x00\x01\x00\x00\x00")},
		{
			// ヘッダ以降を読むと範囲外になるバッファでも InvalidHeader になる
			name: "ヘッダ不正かつ巨大なtext_count",
			buf:  []byte{'X', 'S', 'D', 'A', 0, 0, 1, 0, 0xFF, 0xFF, 0xFF, 0xFF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.buf)
			if !errors.Is(err, ErrInvalidHeader) {
				t.Errorf("Parse() error = %v, want ErrInvalidHeader", err)
			}
			if errors.Is(err, ErrOutOfBounds) {
				t.Errorf("Parse() error = %v, must not be ErrOutOfBounds", err)
			}
		})
	}
}

func TestParse_EmptyTable(t *testing.T) {
	buf := append(Magic[:], 0x00, 0x00, 0x00, 0x00)

	detector := DetectorFunc(func([]byte) (Guess, error) {
		t.Error("detector should not run for an empty table")
		return Guess{}, nil
	})
	table, err := NewDecoderWithOptions(DecoderOptions{Detector: detector}).Decode(buf)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if table.Len() != 0 || len(table.IDs) != 0 {
		t.Errorf("table = %+v, want empty", table)
	}
	if table.Encoding != SingleByte {
		t.Errorf("Encoding = %v, want SingleByte", table.Encoding)
	}
}

func TestParse_MissingTextCount(t *testing.T) {
	_, err := Parse(Magic[:])
	if !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Parse() error = %v, want ErrOutOfBounds", err)
	}
}

func TestParse_UnterminatedLastString(t *testing.T) {
	buf := buildMSD(t, []testRecord{
		{id: 1, text: []byte("first")},
		{id: 2, text: []byte("tail"), noTerminator: true},
	})

	table, err := Parse(buf)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if table.Texts[2] != "tail" {
		t.Errorf("Texts[2] = %q, want \"tail\"", table.Texts[2])
	}
}

func TestParse_DuplicateIDs(t *testing.T) {
	buf := buildMSD(t, []testRecord{
		{id: 7, text: []byte("old")},
		{id: 3, text: []byte("three")},
		{id: 7, text: []byte("new")},
	})

	table, err := Parse(buf)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	count := binary.LittleEndian.Uint32(buf[textCountOffset:])
	if uint32(table.Len()) > count {
		t.Errorf("Len() = %d exceeds text_count %d", table.Len(), count)
	}
	if table.Len() != 2 {
		t.Errorf("Len() = %d, want 2", table.Len())
	}
	if table.Texts[7] != "new" {
		t.Errorf("Texts[7] = %q, want \"new\" (last record wins)", table.Texts[7])
	}
	if len(table.IDs) != 2 || table.IDs[0] != 7 || table.IDs[1] != 3 {
		t.Errorf("IDs = %v, want [7 3]", table.IDs)
	}
}

func TestParse_OutOfBounds(t *testing.T) {
	t.Run("text_countがテーブルを超える", func(t *testing.T) {
		buf := buildMSD(t, []testRecord{{id: 1, text: []byte("A")}})
		binary.LittleEndian.PutUint32(buf[textCountOffset:], 0xFFFFFFFF)

		_, err := Parse(buf)
		if !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Parse() error = %v, want ErrOutOfBounds", err)
		}
	})

	t.Run("アドレスがバッファ外", func(t *testing.T) {
		buf := buildMSD(t, []testRecord{
			{id: 1, text: []byte("A")},
			{id: 2, text: []byte("B")},
		})
		_, addrOff := RecordOffsets(1)
		binary.LittleEndian.PutUint32(buf[addrOff:], uint32(len(buf)+1))

		_, err := Parse(buf)
		var oob *OutOfBoundsError
		if !errors.As(err, &oob) {
			t.Fatalf("Parse() error = %v, want *OutOfBoundsError", err)
		}
		if oob.Offset != len(buf)+1 {
			t.Errorf("Offset = 0x%X, want 0x%X", oob.Offset, len(buf)+1)
		}
	})

	t.Run("アドレスがバッファ末尾ちょうど", func(t *testing.T) {
		buf := buildMSD(t, []testRecord{
			{id: 1, text: []byte("A")},
			{id: 2, text: []byte("B")},
		})
		_, addrOff := RecordOffsets(1)
		binary.LittleEndian.PutUint32(buf[addrOff:], uint32(len(buf)))

		table, err := Parse(buf)
		if err != nil {
			t.Fatalf("Parse() failed: %v", err)
		}
		if got, ok := table.Get(2); !ok || got != "" {
			t.Errorf("Get(2) = %q, %v; want \"\", true", got, ok)
		}
	})
}

func TestParse_DecodeError(t *testing.T) {
	buf := buildMSD(t, []testRecord{
		{id: 0x10, text: toShiftJIS(t, "正常")},
		{id: 0x11, text: []byte{0x82, 0xA0, 0x81, 0x20}},
	})

	decoder := NewDecoderWithOptions(DecoderOptions{Detector: fixedDetector("cp932")})
	table, err := decoder.Decode(buf)
	if table != nil {
		t.Error("Decode() should not return a partial table")
	}

	var decErr *DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("Decode() error = %v, want *DecodeError", err)
	}
	if decErr.TextID != 0x11 {
		t.Errorf("TextID = 0x%X, want 0x11", decErr.TextID)
	}
	if decErr.Encoding != DoubleByte {
		t.Errorf("Encoding = %v, want DoubleByte", decErr.Encoding)
	}
	if !errors.Is(err, ErrDecode) {
		t.Error("DecodeError should unwrap to ErrDecode")
	}
}

func TestDecoder_ForcedEncoding(t *testing.T) {
	buf := buildMSD(t, []testRecord{{id: 1, text: toShiftJIS(t, "テスト")}})

	kind := DoubleByte
	detector := DetectorFunc(func([]byte) (Guess, error) {
		t.Error("detector should not run when the encoding is forced")
		return Guess{}, nil
	})
	decoder := NewDecoderWithOptions(DecoderOptions{Detector: detector, Encoding: &kind})
	kind = SingleByte // オプションはコピーされる

	table, err := decoder.Decode(buf)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if table.Encoding != DoubleByte || table.Texts[1] != "テスト" {
		t.Errorf("table = %+v", table)
	}
}

func TestDecoder_Deterministic(t *testing.T) {
	buf := buildMSD(t, []testRecord{
		{id: 1, text: []byte("one")},
		{id: 2, text: []byte("two")},
	})
	orig := append([]byte(nil), buf...)

	decoder := NewDecoderWithOptions(DecoderOptions{Detector: fixedDetector("windows-1252")})
	first, err := decoder.Decode(buf)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		again, err := decoder.Decode(buf)
		if err != nil {
			t.Fatalf("Decode() #%d failed: %v", i, err)
		}
		for _, id := range first.IDs {
			if again.Texts[id] != first.Texts[id] {
				t.Errorf("Decode() #%d Texts[%d] = %q, want %q", i, id, again.Texts[id], first.Texts[id])
			}
		}
	}
	if string(buf) != string(orig) {
		t.Error("Decode() must not modify the buffer")
	}
}
