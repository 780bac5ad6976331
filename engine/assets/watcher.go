package assets

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/sketchbook/engine/assets/loaders"
	"github.com/spaghettifunk/sketchbook/engine/core"
)

// watcher reloads registered assets when their files change on disk.
type watcher struct {
	fsnotify *fsnotify.Watcher
	files    *loaders.FileFetcher
	done     chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
}

// Watch starts watching dir and all of its sub-directories. File events are
// mapped back to sources relative to the coordinator's base directory; a
// created or written file re-registers every descriptor with that source as
// a new batch, a removed file forgets their stored results.
func (c *Coordinator) Watch(dir string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.isClosed {
		return core.ErrClosed
	}
	if c.watcher == nil {
		fsWatch, err := fsnotify.NewWatcher()
		if err != nil {
			return err
		}
		c.watcher = &watcher{
			fsnotify: fsWatch,
			files:    loaders.NewFileFetcher(c.baseDir),
			done:     make(chan struct{}),
		}
		c.watcher.wg.Add(1)
		go c.watcher.start(c)
	}
	return c.watcher.watchRecursive(dir, false)
}

func (w *watcher) start(c *Coordinator) {
	defer w.wg.Done()
	for {
		select {
		case e, ok := <-w.fsnotify.Events:
			if !ok {
				return
			}
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					if err := w.watchRecursive(e.Name, false); err != nil {
						core.LogWarn("failed to watch '%s': %s", e.Name, err)
					}
				}
				continue
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				w.handleFileEvent(c, e.Name)
			}
			if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				w.removeAsset(c, e.Name)
			}

		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("asset watcher: %s", err.Error())

		case <-w.done:
			return
		}
	}
}

// watchRecursive adds all directories under the given one to the watch list.
func (w *watcher) watchRecursive(path string, unWatch bool) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !fi.IsDir() {
			return nil
		}
		if unWatch {
			return w.fsnotify.Remove(walkPath)
		}
		return w.fsnotify.Add(walkPath)
	})
}

func (w *watcher) sources(path string) []string {
	var out []string
	if rel, ok := w.files.Rel(path); ok {
		out = append(out, rel, "file://"+rel)
	}
	if abs, err := filepath.Abs(path); err == nil {
		out = append(out, abs)
	}
	return out
}

// Handle the creation or modification of a file
func (w *watcher) handleFileEvent(c *Coordinator, path string) {
	var reload []Descriptor
	for _, src := range w.sources(path) {
		reload = append(reload, c.descriptorsForSource(src)...)
	}
	if len(reload) == 0 {
		return
	}
	core.LogInfo("'%s' changed, reloading %d asset(s)", path, len(reload))
	if _, err := c.Register(context.Background(), reload); err != nil && !errors.Is(err, core.ErrClosed) {
		core.LogError("reload of '%s' failed: %s", path, err)
	}
}

// Remove the stored results of a deleted file
func (w *watcher) removeAsset(c *Coordinator, path string) {
	for _, src := range w.sources(path) {
		for _, d := range c.descriptorsForSource(src) {
			if c.Forget(d.ID) {
				core.LogInfo("'%s' removed, forgot asset '%s'", path, d.ID)
			}
		}
	}
}

func (w *watcher) close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fsnotify.Close()
		w.wg.Wait()
	})
	return err
}
