package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Carmen-Shannon/oxy-bog/common"
	"github.com/fsnotify/fsnotify"
)

func (e *engine) Watch(ctx context.Context, folder string, onResult func(Result)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(folder); err != nil {
		return fmt.Errorf("failed to watch %s: %w", folder, err)
	}

	assetRoot := absPath(e.AssetRoot())
	output := filepath.Join(assetRoot, SceneName(folder))

	reimport := func() {
		e.parser.Invalidate(folder)
		res := e.run(folder, true)
		if onResult != nil {
			onResult(res)
		}
	}

	common.LogInfo("watching %s", folder)
	reimport()

	timer := time.NewTimer(e.watchDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevantEvent(event, assetRoot, output) {
				continue
			}
			common.LogDebug("watch event %s", event)
			timer.Reset(e.watchDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			common.LogWarn("watch error on %s: %v", folder, err)
		case <-timer.C:
			reimport()
		}
	}
}

// relevantEvent filters out chmod-only events, hidden files such as staging folders,
// and the import's own writes: the asset root itself and the scene's output folder.
func relevantEvent(event fsnotify.Event, assetRoot, output string) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}
	name := absPath(event.Name)
	return name != assetRoot && !within(name, output)
}

// within reports whether path is dir or lies under it.
func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
