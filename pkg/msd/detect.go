package msd

import (
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/japanese"
)

// Guess は文字コード判定器の推定結果
type Guess struct {
	Label      string // 推定したエンコーディング名
	Confidence int    // 信頼度 (0-100)
}

// Detector はバイト列から最も可能性の高いエンコーディングを推定します
type Detector interface {
	Detect(sample []byte) (Guess, error)
}

// DetectorFunc は関数を Detector として扱うためのアダプタ
type DetectorFunc func(sample []byte) (Guess, error)

// Detect は f(sample) を呼び出します
func (f DetectorFunc) Detect(sample []byte) (Guess, error) {
	return f(sample)
}

// ChardetDetector は ICU 由来の統計的判定を行う Detector
type ChardetDetector struct {
	detector *chardet.Detector
}

// NewChardetDetector は新しい ChardetDetector を作成します
func NewChardetDetector() *ChardetDetector {
	return &ChardetDetector{detector: chardet.NewTextDetector()}
}

// Detect は sample のエンコーディングを推定します。
// 短い Shift-JIS の文字列は windows-1252 と判定されやすいため、
// 8 ビット文字を含み Shift-JIS として復号できる場合は Shift-JIS の候補を、
// それ以外は 1 バイト系の候補を優先します。該当する候補がなければ最上位を返します。
func (d *ChardetDetector) Detect(sample []byte) (Guess, error) {
	results, err := d.detector.DetectAll(sample)
	if err != nil {
		return Guess{}, err
	}
	// ASCII だけなら Shift-JIS の候補は選ばない
	want := SingleByte
	if hasHighBytes(sample) {
		if _, err := DecodeText(sample, DoubleByte); err == nil {
			want = DoubleByte
		}
	}
	for _, r := range results {
		if NormalizeLabel(r.Charset) == want {
			return Guess{Label: r.Charset, Confidence: r.Confidence}, nil
		}
	}
	best := results[0]
	return Guess{Label: best.Charset, Confidence: best.Confidence}, nil
}

// hasHighBytes は 0x80 以上のバイトを含むかを返します
func hasHighBytes(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return true
		}
	}
	return false
}

// shiftJISAliases は Shift-JIS として扱うラベル (小文字)
var shiftJISAliases = map[string]struct{}{
	"shift-jis":   {},
	"shift_jis":   {},
	"cp932":       {},
	"windows-31j": {},
	"sjis":        {},
	"ms_kanji":    {},
	"x-sjis":      {},
}

// NormalizeLabel は判定器のラベルを 2 種類の EncodingKind に集約します
func NormalizeLabel(label string) EncodingKind {
	l := strings.ToLower(strings.TrimSpace(label))
	if l == "" {
		return SingleByte
	}
	if _, ok := shiftJISAliases[l]; ok {
		return DoubleByte
	}
	if enc, err := htmlindex.Get(l); err == nil && enc == japanese.ShiftJIS {
		return DoubleByte
	}
	return SingleByte
}

// DetectEncoding は最初のレコードの文字列をサンプルとしてファイル全体のエンコーディングを決めます。
// 判定できない場合は常に SingleByte を返し、エラーにはしません。
func DetectEncoding(buf []byte, detector Detector) EncodingKind {
	r := NewReader(buf)
	_, addrOff := RecordOffsets(0)
	addr, err := r.Uint32(addrOff)
	if err != nil {
		return SingleByte
	}
	sample := r.ReadBoundedBytes(int(addr), StopPattern)
	if len(sample) == 0 || detector == nil {
		return SingleByte
	}
	guess, err := detector.Detect(sample)
	if err != nil {
		return SingleByte
	}
	return NormalizeLabel(guess.Label)
}
