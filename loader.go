package native

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/ZenLiuCN/fn"
)

// Loader opens native libraries at most once per canonical path and owns the opened handles.
//
// Use Steps:
//
//  1. [Resolve] the logical library name to a path.
//  2. [Loader.Open] the path, or [Loader.Load] it with the [Signatures] to bind.
//  3. Call the bound functions through [Func.Call] or the typed function from [As].
//
// Note:
//
//  1. Libraries are never unloaded, the Loader keeps them for the life of the process.
//  2. Open is serialized, concurrent first loads of the same path map it once.
type Loader struct {
	Remedy Remedy
	mu     sync.Mutex
	libs   map[string]*Library
	open   func(path string) (uintptr, error)
	debug  bool
}

// NewLoader create new Loader with the remedy printed for missing libraries, an optional debug parameter will enable debug logging inside Loader
func NewLoader(remedy Remedy, debug ...bool) *Loader {
	return &Loader{
		Remedy: remedy,
		libs:   make(map[string]*Library),
		open:   openLibrary,
		debug:  len(debug) > 0 && debug[0],
	}
}

// Open maps the library at path. A missing file is reported as [LibraryNotFoundError] before any native call.
// Opening the same file again, by any path, returns the same [Library].
func (l *Loader) Open(path string) (lib *Library, err error) {
	var fi fs.FileInfo
	if fi, err = os.Stat(path); err != nil || fi.IsDir() {
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			return nil, l.notFound(path)
		}
		return nil, &LibraryLoadError{Path: path, Err: err}
	}
	key, err := canonical(path)
	if err != nil {
		return nil, &LibraryLoadError{Path: path, Err: err}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if lib = l.libs[key]; lib != nil {
		if l.debug {
			log.Printf("reuse library: %s", key)
		}
		return
	}
	if l.debug {
		log.Printf("open library: %s", key)
	}
	var h uintptr
	h, err = l.open(key)
	if err == nil && h == 0 {
		err = errors.New("nil handle")
	}
	if err != nil {
		if l.debug {
			log.Printf("open library %s failed: %v", key, err)
		}
		return nil, &LibraryLoadError{Path: key, Err: err}
	}
	lib = &Library{path: key, handle: h, debug: l.debug}
	l.libs[key] = lib
	return
}

// Load opens the library at path and binds sigs. Bindings that succeeded are returned even when some symbols failed.
func (l *Loader) Load(path string, sigs Signatures) (Bindings, error) {
	lib, err := l.Open(path)
	if err != nil {
		return nil, err
	}
	return lib.BindAll(sigs)
}

// LoadNamed resolves the logical library name inside base then loads it.
func (l *Loader) LoadNamed(base, name string, sigs Signatures) (Bindings, error) {
	path, err := Resolve(base, name)
	if err != nil {
		return nil, err
	}
	return l.Load(path, sigs)
}

// Libraries lists canonical paths of the opened libraries, sorted.
func (l *Loader) Libraries() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	v := fn.MapKeys(l.libs)
	slices.Sort(v)
	return v
}

// Library returns the opened library of path, if any.
func (l *Loader) Library(path string) (*Library, bool) {
	key, err := canonical(path)
	if err != nil {
		return nil, false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	lib, ok := l.libs[key]
	return lib, ok
}

func (l *Loader) notFound(path string) error {
	dir := filepath.Dir(path)
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return &LibraryNotFoundError{
		Path:    path,
		Dir:     dir,
		Command: l.Remedy.Command(filepath.Base(path)),
	}
}

func canonical(path string) (p string, err error) {
	if p, err = filepath.Abs(path); err != nil {
		return
	}
	return filepath.EvalSymlinks(p)
}
