// Package interfaces はmsdtextコマンドで使用するインターフェースを定義します
package interfaces

import (
	"github.com/shiroemons/go-msdtext/pkg/msd"
)

// FileSystem はファイルシステム操作のインターフェース
type FileSystem interface {
	FileExists(filename string) bool
	ReadFile(filename string) ([]byte, error)
	WriteFile(filename string, data []byte, perm uint32) error
	MkdirAll(path string, perm uint32) error
	Stat(name string) (FileInfo, error)
}

// FileInfo はファイル情報のインターフェース
type FileInfo interface {
	Name() string
	IsDir() bool
}

// Decoder はMSDバッファを解析するインターフェース
type Decoder interface {
	Decode(buf []byte) (*msd.TextTable, error)
}

// TableCache は解析済みテーブルのキャッシュのインターフェース
type TableCache interface {
	GetOrDecode(buf []byte, decode func([]byte) (*msd.TextTable, error)) (*msd.TextTable, bool, error)
}

// Logger はログ出力のインターフェース
type Logger interface {
	Printf(format string, a ...any)
}
