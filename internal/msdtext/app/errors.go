package app

import "errors"

var (
	// ErrNoInput は入力ファイルが指定されていない場合のエラー
	ErrNoInput = errors.New("入力ファイルが指定されていません")

	// ErrFilesFailed は1件以上のファイルの処理に失敗した場合のエラー
	ErrFilesFailed = errors.New("処理に失敗したファイルがあります")

	// ErrSaveFile はファイルの保存に失敗した場合のエラー
	ErrSaveFile = errors.New("ファイルの保存に失敗しました")

	// ErrReadFile はファイルの読み込みに失敗した場合のエラー
	ErrReadFile = errors.New("ファイルの読み込みに失敗しました")
)
