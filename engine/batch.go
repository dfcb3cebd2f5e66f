package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-bog/common"
)

func (e *engine) Batch(root string) ([]Result, error) {
	folders, err := listSceneFolders(root)
	if err != nil {
		return nil, fmt.Errorf("failed to list scene folders in %s: %w", root, err)
	}
	if len(folders) == 0 {
		common.LogWarn("no scene folders found in %s", root)
		return nil, nil
	}

	workers := min(e.batchWorkers, len(folders))
	pool := worker.NewDynamicWorkerPool(workers, len(folders), 1*time.Second)
	defer pool.Stop()

	// Each task owns one slot of results.
	results := make([]Result, len(folders))
	var wg sync.WaitGroup
	for i, folder := range folders {
		wg.Add(1)
		idx, dir := i, folder
		pool.SubmitTask(worker.Task{
			ID:      idx,
			Payload: dir,
			Do: func() (any, error) {
				defer wg.Done()
				results[idx] = e.run(dir, e.overwrite)
				return nil, results[idx].Err
			},
		})
	}
	wg.Wait()

	failed := 0
	for _, r := range results {
		if !r.Succeeded() {
			failed++
		}
	}
	common.LogInfo("batch %s: %d imported, %d failed", root, len(results)-failed, failed)
	return results, nil
}
