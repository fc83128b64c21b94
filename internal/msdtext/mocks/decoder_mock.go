package mocks

import (
	"sync/atomic"

	"github.com/shiroemons/go-msdtext/pkg/msd"
)

// MockDecoder はDecoderのモック実装です
type MockDecoder struct {
	Table *msd.TextTable
	Error error

	calls atomic.Int32
}

// Decode はモック実装です
func (m *MockDecoder) Decode(buf []byte) (*msd.TextTable, error) {
	m.calls.Add(1)
	if m.Error != nil {
		return nil, m.Error
	}
	return m.Table, nil
}

// CallCount はDecodeが呼ばれた回数を返します
func (m *MockDecoder) CallCount() int {
	return int(m.calls.Load())
}
