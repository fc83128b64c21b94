// Package app はアプリケーションのメインロジックを実装します
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shiroemons/go-msdtext/internal/msdtext/cache"
	"github.com/shiroemons/go-msdtext/internal/msdtext/config"
	msderrors "github.com/shiroemons/go-msdtext/internal/msdtext/errors"
	"github.com/shiroemons/go-msdtext/internal/msdtext/fileutil"
	"github.com/shiroemons/go-msdtext/internal/msdtext/interfaces"
	"github.com/shiroemons/go-msdtext/internal/msdtext/models"
	"github.com/shiroemons/go-msdtext/internal/msdtext/report"
	"github.com/shiroemons/go-msdtext/pkg/msd"
)

// App はアプリケーションのメインロジックを管理します
type App struct {
	config  *config.Config
	logger  interfaces.Logger
	decoder interfaces.Decoder
	cache   interfaces.TableCache
	fs      interfaces.FileSystem
	stdout  io.Writer
}

// Options はAppの設定オプション
type Options struct {
	FileSystem interfaces.FileSystem
	Decoder    interfaces.Decoder
	Cache      interfaces.TableCache
	Stdout     io.Writer
}

// New は新しいAppを作成します
func New(cfg *config.Config) *App {
	return NewWithOptions(cfg, Options{})
}

// NewWithOptions は新しいAppをオプション付きで作成します
func NewWithOptions(cfg *config.Config, opts Options) *App {
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	logger := config.NewDebugLoggerTo(cfg.DebugMode, stdout)

	// デフォルトのファイルシステムを設定
	fs := opts.FileSystem
	if fs == nil {
		fs = fileutil.NewOSFileSystem()
	}

	// デフォルトのDecoderを設定
	var decoder interfaces.Decoder
	if opts.Decoder != nil {
		decoder = opts.Decoder
	} else {
		decoder = newDecoder(cfg, logger)
	}

	// デフォルトのキャッシュを設定
	var tableCache interfaces.TableCache
	if opts.Cache != nil {
		tableCache = opts.Cache
	} else {
		c, err := cache.New(cfg.CacheSize)
		if err != nil {
			logger.Printf("キャッシュを無効にします: %v\n", err)
			c, _ = cache.New(0)
		}
		tableCache = c
	}

	return &App{
		config:  cfg,
		logger:  logger,
		decoder: decoder,
		cache:   tableCache,
		fs:      fs,
		stdout:  stdout,
	}
}

// newDecoder は設定に従ってMSDデコーダを作成します
func newDecoder(cfg *config.Config, logger interfaces.Logger) *msd.Decoder {
	if cfg.Encoding == "" || strings.EqualFold(cfg.Encoding, config.EncodingAuto) {
		return msd.NewDecoder()
	}
	kind, err := msd.ParseEncodingKind(cfg.Encoding)
	if err != nil {
		logger.Printf("エンコーディング指定 %q を解釈できないため自動判定します: %v\n", cfg.Encoding, err)
		return msd.NewDecoder()
	}
	logger.Printf("エンコーディングを %s に固定します\n", kind)
	return msd.NewDecoderWithOptions(msd.DecoderOptions{Encoding: &kind})
}

// Run は指定されたファイルを順に処理します。
// 1件の失敗で他のファイルの処理は止まりません。
func (a *App) Run(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return ErrNoInput
	}

	var results []models.FileResult
	var err error
	if a.config.Parallel && len(paths) > 1 {
		results, err = a.processParallel(ctx, paths)
	} else {
		results, err = a.processSequential(ctx, paths)
	}

	var summary models.Summary
	for _, r := range results {
		summary.Add(r)
	}
	a.logger.Printf("処理結果: 合計 %d, 成功 %d, 失敗 %d, 書き込み %d, キャッシュ %d\n",
		summary.Total, summary.Succeeded, summary.Failed, summary.Written, summary.CacheHits)

	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%w: %d/%d", ErrFilesFailed, summary.Failed, summary.Total)
	}
	return nil
}

// processSequential はファイルを1件ずつ処理します
func (a *App) processSequential(ctx context.Context, paths []string) ([]models.FileResult, error) {
	results := make([]models.FileResult, 0, len(paths))
	for _, path := range paths {
		// コンテキストのキャンセルチェック
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}
		result := a.processFile(path)
		a.printResult(result)
		results = append(results, result)
	}
	return results, nil
}

// processFile は1ファイルを読み込み、解析してレポートを書き出します
func (a *App) processFile(path string) models.FileResult {
	result := models.FileResult{
		Name:       filepath.Base(path),
		Path:       path,
		OutputPath: fileutil.OutputPath(path, a.config.OutputDir),
	}

	buf, err := fileutil.LoadInput(a.fs, path)
	if err != nil {
		result.Err = fmt.Errorf("%w: %w", ErrReadFile, err)
		return result
	}
	if len(buf) >= msd.HeaderSize {
		a.logger.Printf("%s: ヘッダ % x, %d バイト\n", result.Name, buf[:msd.HeaderSize], len(buf))
	}

	table, hit, err := a.cache.GetOrDecode(buf, a.decoder.Decode)
	if err != nil {
		result.Err = err
		return result
	}
	result.Table = table
	result.CacheHit = hit
	a.logger.Printf("%s: エンコーディング %s, %d 件 (キャッシュ: %v)\n", result.Name, table.Encoding, table.Len(), hit)

	if a.config.DryRun {
		a.logger.Printf("%s: dry-run のため %s には書き込みません\n", result.Name, result.OutputPath)
		return result
	}

	utf8 := strings.EqualFold(a.config.OutputEncoding, config.OutputEncodingUTF8)
	data, err := fileutil.EncodeText(report.Format(table), table.Encoding, utf8)
	if err != nil {
		result.Err = fmt.Errorf("%w: %w", ErrSaveFile, err)
		return result
	}
	if err := fileutil.SaveFile(a.fs, result.OutputPath, data); err != nil {
		result.Err = fmt.Errorf("%w: %w", ErrSaveFile, err)
		return result
	}
	result.Written = true
	a.logger.Printf("テキストを %s に保存しました\n", result.OutputPath)

	return result
}

// printResult は1ファイル分の結果を表示します
func (a *App) printResult(r models.FileResult) {
	if r.OK() {
		fmt.Fprintf(a.stdout, "%s read successfully\n", r.Name)
		return
	}
	fmt.Fprintf(a.stdout, "Error with %s: %s\n", r.Name, errorMessage(r.Err))
}

// errorMessage は利用者向けのエラーメッセージを返します
func errorMessage(err error) string {
	if errors.Is(err, msd.ErrInvalidHeader) {
		return msd.ErrInvalidHeader.Error()
	}
	return msderrors.Message(err)
}
