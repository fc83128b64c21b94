package app

import (
	"context"
	"sync"

	"github.com/shiroemons/go-msdtext/internal/msdtext/models"
)

// 処理ジョブ
type fileJob struct {
	index int
	path  string
}

// 処理結果
type fileJobResult struct {
	index  int
	result models.FileResult
}

// processParallel はワーカーでファイルを並列に処理します。
// 結果は入力順に表示します。
func (a *App) processParallel(ctx context.Context, paths []string) ([]models.FileResult, error) {
	numWorkers := a.config.Workers
	if numWorkers <= 0 {
		numWorkers = 4 // デフォルトのワーカー数
	}
	if numWorkers > len(paths) {
		numWorkers = len(paths)
	}

	jobs := make(chan fileJob, numWorkers*2)
	results := make(chan fileJobResult, numWorkers*2)
	var wg sync.WaitGroup

	// ワーカーを起動
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				results <- fileJobResult{index: job.index, result: a.processFile(job.path)}
			}
		}()
	}

	// 結果処理用のgoroutineを起動
	collected := make([]*models.FileResult, len(paths))
	resultDone := make(chan struct{})
	go func() {
		for r := range results {
			res := r.result
			collected[r.index] = &res
		}
		close(resultDone)
	}()

	// ジョブを投入
	var ctxErr error
dispatch:
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			ctxErr = err
			break
		}
		select {
		case <-ctx.Done():
			ctxErr = ctx.Err()
			break dispatch
		case jobs <- fileJob{index: i, path: path}:
		}
	}

	close(jobs)
	wg.Wait()
	close(results)
	<-resultDone

	out := make([]models.FileResult, 0, len(paths))
	for _, r := range collected {
		if r == nil {
			continue // キャンセルにより未処理
		}
		a.printResult(*r)
		out = append(out, *r)
	}
	return out, ctxErr
}
