// Package fileutil はファイル操作のユーティリティ関数を提供します
package fileutil

import (
	"fmt"
	"path/filepath"

	"golang.org/x/text/encoding"

	msderrors "github.com/shiroemons/go-msdtext/internal/msdtext/errors"
	"github.com/shiroemons/go-msdtext/internal/msdtext/interfaces"
	"github.com/shiroemons/go-msdtext/pkg/msd"
)

// utf8BOM はUTF-8のバイトオーダーマーク
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// LoadInput は入力ファイルを読み込みます。
// 存在しない場合は解析を始める前に ErrFileNotFound を返します。
func LoadInput(fs interfaces.FileSystem, path string) ([]byte, error) {
	if !fs.FileExists(path) {
		return nil, msderrors.NewFileError("open", path, msderrors.ErrFileNotFound)
	}
	info, err := fs.Stat(path)
	if err != nil {
		return nil, msderrors.NewFileError("stat", path, err)
	}
	if info.IsDir() {
		return nil, msderrors.NewFileError("open", path, msderrors.ErrNotRegularFile)
	}
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, msderrors.NewFileError("read", path, err)
	}
	return data, nil
}

// GenerateOutputFilename は入力ファイル名から出力ファイル名を生成します (a.msd -> a.msd.txt)
func GenerateOutputFilename(inputPath string) string {
	return filepath.Base(inputPath) + ".txt"
}

// OutputPath は出力ファイルのパスを返します。outputDir が空なら入力と同じディレクトリです。
func OutputPath(inputPath, outputDir string) string {
	dir := outputDir
	if dir == "" {
		dir = filepath.Dir(inputPath)
	}
	return filepath.Join(dir, GenerateOutputFilename(inputPath))
}

// EncodeText はレポートを出力用のバイト列に変換します。
// utf8 が true の場合はBOM付きUTF-8、それ以外は kind のエンコーディングで書き出します。
// kind で表現できない文字は置換文字に置き換えます。
func EncodeText(content string, kind msd.EncodingKind, utf8 bool) ([]byte, error) {
	if utf8 {
		out := make([]byte, 0, len(utf8BOM)+len(content))
		out = append(out, utf8BOM...)
		return append(out, content...), nil
	}

	encoder := encoding.ReplaceUnsupported(kind.Encoding().NewEncoder())
	out, err := encoder.Bytes([]byte(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodeContent, err)
	}
	return out, nil
}

// SaveFile はディレクトリを作成してからファイルを書き込みます
func SaveFile(fs interfaces.FileSystem, outputPath string, data []byte) error {
	dir := filepath.Dir(outputPath)
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: %w", ErrCreateDirectory, err)
	}
	if err := fs.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteContent, err)
	}
	return nil
}
