package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// 编辑器保存时常连续触发多次写事件，合并到一次重渲染
const watchDebounce = 150 * time.Millisecond

// watchFiles calls fn after any of paths is written or re-created, until ctx is done.
// Errors from fn are logged and watching continues.
func watchFiles(ctx context.Context, paths []string, logger *log.Logger, fn func() error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("创建文件监听失败: %w", err)
	}
	defer w.Close()

	// 监听所在目录，以便捕获"写临时文件再重命名"式的保存
	targets := map[string]bool{}
	dirs := map[string]bool{}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		targets[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("监听目录 %s 失败: %w", dir, err)
		}
	}

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !targets[abs] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				logger.Debug("文件变化", "file", event.Name, "op", event.Op.String())
				pending = time.After(watchDebounce)
			}

		case <-pending:
			pending = nil
			if err := fn(); err != nil {
				logger.Error("重新渲染失败", "err", err)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("文件监听出错", "err", err)
		}
	}
}
