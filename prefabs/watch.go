package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 100 * time.Millisecond

// ChangeKind says which part of the simulation a changed file feeds.
type ChangeKind int

const (
	ChangeTuning ChangeKind = iota
	ChangeCourse
	ChangeScript
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeCourse:
		return "course"
	case ChangeScript:
		return "script"
	}
	return "tuning"
}

type Change struct {
	Path string
	Kind ChangeKind
}

// classify maps a path to its ChangeKind. Files that feed nothing report
// false.
func classify(path string) (ChangeKind, bool) {
	base := strings.ToLower(filepath.Base(path))
	switch ext := filepath.Ext(base); {
	case base == CourseFile:
		return ChangeCourse, true
	case ext == ".yaml" || ext == ".yml":
		return ChangeTuning, true
	case ext == ".tengo":
		return ChangeScript, true
	}
	return 0, false
}

// Watcher reports edits to tuning, course and script files. Events and Errors
// are closed once the watcher stops.
type Watcher struct {
	fs      *fsnotify.Watcher
	Events  chan Change
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fs.Add(dir); err != nil {
			_ = fs.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fs:      fs,
		Events:  make(chan Change, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.fs.Close()
		<-w.done
	})
	return err
}

// Drain returns every pending change without blocking, one per path.
func (w *Watcher) Drain() []Change {
	var out []Change
	seen := map[string]bool{}
	for {
		select {
		case c, ok := <-w.Events:
			if !ok {
				return out
			}
			if !seen[c.Path] {
				seen[c.Path] = true
				out = append(out, c)
			}
		default:
			return out
		}
	}
}

// Err returns a pending watch error, if any, without blocking.
func (w *Watcher) Err() error {
	select {
	case err := <-w.Errors:
		return err
	default:
		return nil
	}
}

func (w *Watcher) run() {
	defer func() {
		close(w.Events)
		close(w.Errors)
		close(w.done)
	}()

	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			kind, ok := classify(event.Name)
			if !ok {
				continue
			}
			now := time.Now()
			if t, seen := last[event.Name]; seen && now.Sub(t) < watchDebounce {
				continue
			}
			last[event.Name] = now
			select {
			case w.Events <- Change{Path: event.Name, Kind: kind}:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			// Keep only the first error until the host drains it.
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}
