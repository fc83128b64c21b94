package app

import (
	"encoding/binary"
	"strings"
	"testing"

	"github.com/shiroemons/go-msdtext/pkg/msd"
)

// msdEntry はテスト用 MSD バッファの1レコード
type msdEntry struct {
	id   uint32
	text []byte
}

// buildMSD はレコードから MSD バッファを組み立てます
func buildMSD(t *testing.T, entries ...msdEntry) []byte {
	t.Helper()

	// レコードテーブルの終端
	tableEnd, _ := msd.RecordOffsets(len(entries))
	buf := make([]byte, tableEnd)
	copy(buf, msd.Magic[:])
	binary.LittleEndian.PutUint32(buf[0x08:], uint32(len(entries)))

	for i, e := range entries {
		idOff, addrOff := msd.RecordOffsets(i)
		binary.LittleEndian.PutUint32(buf[idOff:], e.id)
		binary.LittleEndian.PutUint32(buf[addrOff:], uint32(len(buf)))
		buf = append(buf, e.text...)
		buf = append(buf, msd.StopPattern...)
	}
	return buf
}

// outputLines は出力を行ごとに分割します
func outputLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
