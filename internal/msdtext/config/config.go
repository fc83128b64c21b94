// Package config はmsdtextコマンドの設定管理を行います
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/spf13/pflag"
)

const Version = "0.1.0"

// 入力エンコーディングの指定
const (
	EncodingAuto     = "auto"
	EncodingShiftJIS = "shift-jis"
	EncodingANSI     = "ansi"
)

// 出力ファイルのエンコーディング
const (
	OutputEncodingSource = "source" // 検出したエンコーディングのまま書き出す
	OutputEncodingUTF8   = "utf8"   // UTF-8 (BOMあり)
)

var (
	// ErrInvalidEncoding はエンコーディング指定が不正な場合のエラー
	ErrInvalidEncoding = errors.New("不正なエンコーディング指定です")

	// ErrInvalidWorkers はワーカー数が不正な場合のエラー
	ErrInvalidWorkers = errors.New("ワーカー数は1以上を指定してください")

	// ErrInvalidCacheSize はキャッシュサイズが負の場合のエラー
	ErrInvalidCacheSize = errors.New("キャッシュサイズは0以上を指定してください")
)

// Config はアプリケーションの設定を保持します
type Config struct {
	Inputs         []string
	OutputDir      string // 空の場合は入力ファイルと同じディレクトリ
	Encoding       string
	OutputEncoding string
	Parallel       bool
	Workers        int
	CacheSize      int
	DebugMode      bool
	DryRun         bool
	ShowVersion    bool
}

// NewConfig はデフォルト値の設定を返します
func NewConfig() *Config {
	return &Config{
		Encoding:       EncodingAuto,
		OutputEncoding: OutputEncodingSource,
		Workers:        4,
		CacheSize:      64,
	}
}

// BindFlags はフラグセットに設定項目を登録します
func BindFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVarP(&cfg.OutputDir, "output", "o", cfg.OutputDir, "output directory for the generated .txt files (default: next to each input)")
	fs.StringVarP(&cfg.Encoding, "encoding", "e", cfg.Encoding, "text encoding of the input: auto, shift-jis or ansi")
	fs.StringVar(&cfg.OutputEncoding, "output-encoding", cfg.OutputEncoding, "encoding of the generated files: source or utf8")
	fs.BoolVarP(&cfg.Parallel, "parallel", "p", cfg.Parallel, "process input files in parallel")
	fs.IntVarP(&cfg.Workers, "workers", "w", cfg.Workers, "number of workers for parallel processing")
	fs.IntVar(&cfg.CacheSize, "cache-size", cfg.CacheSize, "number of decoded buffers to keep for identical inputs (0 disables)")
	fs.BoolVarP(&cfg.DebugMode, "debug", "d", cfg.DebugMode, "enable debug output")
	fs.BoolVarP(&cfg.DryRun, "dry-run", "n", cfg.DryRun, "decode and report without writing output files")
	fs.BoolVarP(&cfg.ShowVersion, "version", "v", cfg.ShowVersion, "show version information")
}

// Validate は設定値を検証します
func (c *Config) Validate() error {
	switch strings.ToLower(c.Encoding) {
	case EncodingAuto, EncodingShiftJIS, EncodingANSI:
	default:
		return fmt.Errorf("%w: --encoding %q", ErrInvalidEncoding, c.Encoding)
	}
	switch strings.ToLower(c.OutputEncoding) {
	case OutputEncodingSource, OutputEncodingUTF8:
	default:
		return fmt.Errorf("%w: --output-encoding %q", ErrInvalidEncoding, c.OutputEncoding)
	}
	if c.Parallel && c.Workers < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, c.Workers)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCacheSize, c.CacheSize)
	}
	return nil
}

// VersionString はバージョン表示用の文字列を返します
func VersionString() string {
	return fmt.Sprintf("msdtext version %s", Version)
}

// DebugLogger はデバッグ出力を管理します。
// 並列処理のワーカーから同時に呼ばれるため、書き込みはロックで直列化します。
type DebugLogger struct {
	enabled bool
	out     io.Writer
	mu      sync.Mutex
}

// NewDebugLoggerTo は出力先を指定してDebugLoggerを作成します
func NewDebugLoggerTo(enabled bool, out io.Writer) *DebugLogger {
	return &DebugLogger{enabled: enabled, out: out}
}

// Printf はデバッグモードが有効な場合のみメッセージを表示します
func (d *DebugLogger) Printf(format string, a ...any) {
	if !d.enabled {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintf(d.out, format, a...)
}
