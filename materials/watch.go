package materials

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changed material specs and shaders under a directory.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error

	debounce time.Duration
	closeCh  chan struct{}
	once     sync.Once
}

// DefaultDebounce is how long a path must stay quiet before it is reported.
const DefaultDebounce = 100 * time.Millisecond

func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
		shaders := filepath.Join(dir, "shaders")
		if err := w.Add(shaders); err != nil {
			// a materials directory without its own shaders is fine
			continue
		}
	}

	watcher := &Watcher{
		watcher:  w,
		Events:   make(chan string, 16),
		Errors:   make(chan error, 4),
		debounce: DefaultDebounce,
		closeCh:  make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

// Poll drains pending change notifications without blocking.
func (w *Watcher) Poll() (changed []string) {
	if w == nil {
		return nil
	}
	for {
		select {
		case name := <-w.Events:
			changed = append(changed, name)
		default:
			return changed
		}
	}
}

// PollErrors drains pending watcher errors without blocking.
func (w *Watcher) PollErrors() (errs []error) {
	if w == nil {
		return nil
	}
	for {
		select {
		case err := <-w.Errors:
			errs = append(errs, err)
		default:
			return errs
		}
	}
}

type pendingChange struct {
	name string
	gen  int
}

// run forwards a path once it has been quiet for debounce, so a burst of
// writes to one file produces a single event after the last write.
func (w *Watcher) run() {
	timers := make(map[string]*time.Timer)
	gens := make(map[string]int)
	fired := make(chan pendingChange, 16)
	defer func() {
		for _, t := range timers {
			t.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			name := filepath.ToSlash(event.Name)
			if !isSpecFile(name) && !isShaderFile(name) {
				continue
			}
			if t, ok := timers[name]; ok {
				t.Stop()
			}
			gens[name]++
			change := pendingChange{name: name, gen: gens[name]}
			timers[name] = time.AfterFunc(w.debounce, func() {
				select {
				case fired <- change:
				case <-w.closeCh:
				}
			})
		case change := <-fired:
			// a later write restarted the wait
			if gens[change.name] != change.gen {
				continue
			}
			delete(timers, change.name)
			delete(gens, change.name)
			select {
			case w.Events <- change.name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}
