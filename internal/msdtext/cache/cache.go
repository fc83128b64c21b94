// Package cache は解析済みテーブルをバッファの内容ごとに保持します
package cache

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/shiroemons/go-msdtext/pkg/msd"
)

// ErrInvalidSize はキャッシュサイズが負の場合のエラー
var ErrInvalidSize = errors.New("キャッシュサイズが不正です")

// key はバッファの内容を識別します
type key struct {
	sum  uint64
	size int
}

func (k key) String() string {
	return fmt.Sprintf("%016x-%d", k.sum, k.size)
}

// entry は解析結果と解析元のバッファ。
// ハッシュが衝突した場合に別の内容の結果を返さないよう、元のバッファと比較します。
type entry struct {
	src   []byte
	table *msd.TextTable
}

// TableCache は同じ内容のバッファを一度だけ解析するためのキャッシュ。
// 複数のgoroutineから同時に使用できます。
type TableCache struct {
	tables *lru.Cache[key, entry]
	group  singleflight.Group
	hash   func([]byte) uint64
}

// New は最大 size 件を保持するキャッシュを作成します。size が0の場合はキャッシュしません。
func New(size int) (*TableCache, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if size == 0 {
		return &TableCache{}, nil
	}
	tables, err := lru.New[key, entry](size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSize, err)
	}
	return &TableCache{tables: tables, hash: xxhash.Sum64}, nil
}

// Enabled はキャッシュが有効かを返します
func (c *TableCache) Enabled() bool {
	return c != nil && c.tables != nil
}

// Len は保持しているテーブル数を返します
func (c *TableCache) Len() int {
	if !c.Enabled() {
		return 0
	}
	return c.tables.Len()
}

func (c *TableCache) keyOf(buf []byte) key {
	return key{sum: c.hash(buf), size: len(buf)}
}

// lookup は内容が一致する場合のみキャッシュ済みのテーブルを返します
func (c *TableCache) lookup(k key, buf []byte) (*msd.TextTable, bool) {
	e, ok := c.tables.Get(k)
	if !ok || !bytes.Equal(e.src, buf) {
		return nil, false
	}
	return e.table, true
}

// GetOrDecode はキャッシュ済みのテーブルを返し、なければ decode で解析して保持します。
// 2番目の戻り値はキャッシュから取得した場合に true になります。
// 解析エラーはキャッシュしません。buf は保持されるため呼び出し後に変更しないでください。
func (c *TableCache) GetOrDecode(buf []byte, decode func([]byte) (*msd.TextTable, error)) (*msd.TextTable, bool, error) {
	if !c.Enabled() {
		table, err := decode(buf)
		return table, false, err
	}

	k := c.keyOf(buf)
	if table, ok := c.lookup(k, buf); ok {
		return table, true, nil
	}

	// 同時に同じ内容が来た場合は1回だけ解析する
	v, err, _ := c.group.Do(k.String(), func() (any, error) {
		if table, ok := c.lookup(k, buf); ok {
			return entry{src: buf, table: table}, nil
		}
		table, err := decode(buf)
		if err != nil {
			return nil, err
		}
		e := entry{src: buf, table: table}
		c.tables.Add(k, e)
		return e, nil
	})
	if err != nil {
		return nil, false, err
	}
	e := v.(entry)
	if !bytes.Equal(e.src, buf) {
		// 同じキーで別の内容が同時に解析された
		table, err := decode(buf)
		return table, false, err
	}
	return e.table, false, nil
}
