// Package models はmsdtextコマンドで使用するデータモデルを定義します
package models

import "github.com/shiroemons/go-msdtext/pkg/msd"

// FileResult は1ファイル分の処理結果を表します
type FileResult struct {
	Name       string // 表示用のファイル名
	Path       string // 入力パス
	OutputPath string // 出力パス（dry-run時も計算済み）
	Table      *msd.TextTable
	CacheHit   bool
	Written    bool
	Err        error
}

// OK は処理が成功したかを返します
func (r FileResult) OK() bool {
	return r.Err == nil
}

// Summary は全ファイルの処理結果の集計です
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	Written   int
	CacheHits int
}

// Add は結果を集計に加えます
func (s *Summary) Add(r FileResult) {
	s.Total++
	if r.OK() {
		s.Succeeded++
	} else {
		s.Failed++
	}
	if r.Written {
		s.Written++
	}
	if r.CacheHit {
		s.CacheHits++
	}
}
