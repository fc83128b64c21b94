package msd

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// testRecord はテスト用 MSD バッファの 1 レコード
type testRecord struct {
	id   uint32
	text []byte
	// noTerminator が true の場合は 00 00 を付けない (最後のレコードのみ有効)
	noTerminator bool
}

// buildMSD はレコードから MSD バッファを組み立てます
func buildMSD(t *testing.T, records []testRecord) []byte {
	t.Helper()

	tableEnd := recordTableStart + len(records)*recordStride
	if len(records) == 0 {
		tableEnd = recordTableStart
	}
	buf := make([]byte, tableEnd)
	copy(buf, Magic[:])
	binary.LittleEndian.PutUint32(buf[textCountOffset:], uint32(len(records)))

	for i, rec := range records {
		idOff, addrOff := RecordOffsets(i)
		binary.LittleEndian.PutUint32(buf[idOff:], rec.id)
		binary.LittleEndian.PutUint32(buf[addrOff:], uint32(len(buf)))
		buf = append(buf, rec.text...)
		if !rec.noTerminator {
			buf = append(buf, StopPattern...)
		}
	}
	return buf
}

// toShiftJIS はUTF-8文字列をShift-JISに変換するヘルパー関数
func toShiftJIS(t *testing.T, str string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := transform.NewWriter(&buf, japanese.ShiftJIS.NewEncoder())
	if _, err := io.WriteString(w, str); err != nil {
		t.Fatalf("Shift-JIS変換に失敗しました: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Shift-JIS変換に失敗しました: %v", err)
	}
	return buf.Bytes()
}

// fixedDetector は常に同じラベルを返す Detector
func fixedDetector(label string) Detector {
	return DetectorFunc(func([]byte) (Guess, error) {
		return Guess{Label: label, Confidence: 100}, nil
	})
}
