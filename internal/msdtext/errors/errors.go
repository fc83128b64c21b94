// Package errors はカスタムエラータイプを提供します
package errors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrFileNotFound は入力ファイルが存在しない場合のエラー
	ErrFileNotFound = errors.New("file does not exist")

	// ErrNotRegularFile は入力パスがファイルではない場合のエラー
	ErrNotRegularFile = errors.New("not a regular file")
)

// FileError はファイル操作に関するエラー
type FileError struct {
	Op   string // 実行していた操作
	Path string // ファイルパス
	Err  error  // 元のエラー
}

// Error はエラーメッセージを返します
func (e *FileError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap は元のエラーを返します
func (e *FileError) Unwrap() error {
	return e.Err
}

// NewFileError は新しいFileErrorを作成します
func NewFileError(op, path string, err error) *FileError {
	return &FileError{
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// Message は利用者向けの1行メッセージを返します。
// FileError は操作名とパスを省き、元のエラーだけを表示します。
func Message(err error) string {
	var fe *FileError
	if errors.As(err, &fe) {
		return fe.Err.Error()
	}
	return err.Error()
}
