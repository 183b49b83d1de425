// Package memhandles is an in-process reference implementation of
// registry.HandleManager: it dispenses small integer handles backed by
// a map rather than a real per-process kernel object table, for
// cmd/regtool and the test suite. A real RPC transport's handle manager
// is an external collaborator out of scope for this module (spec.md
// §1); this is a stand-in, not a second production implementation.
package memhandles

import (
	"io"
	"os"
	"sync"

	"github.com/go-compat/regsrv/internal/fdio"
	"github.com/go-compat/regsrv/internal/regtree"
	"github.com/go-compat/regsrv/pkg/types"
)

type object struct {
	key    *regtree.Key
	access types.AccessMask
}

// Manager is a thread-safe HandleManager. The zero value is not usable;
// construct one with New.
type Manager struct {
	mu      sync.Mutex
	next    types.Handle
	objects map[types.Handle]*object
	files   map[types.Handle]string
}

// New returns an empty Manager.
func New() *Manager {
	return &Manager{
		next:    1,
		objects: make(map[types.Handle]*object),
		files:   make(map[types.Handle]string),
	}
}

// Alloc dispenses a new handle referring to key with the given access,
// taking a reference of its own (alloc_handle).
func (m *Manager) Alloc(key *regtree.Key, access types.AccessMask) (types.Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	h := m.next
	m.objects[h] = &object{key: key.AddRef(), access: access}
	return h, nil
}

// Resolve returns the key behind handle, checking that every bit of
// access was granted when the handle was allocated.
func (m *Manager) Resolve(handle types.Handle, access types.AccessMask) (*regtree.Key, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	obj, ok := m.objects[handle]
	if !ok {
		return nil, types.ErrNotFound
	}
	if obj.access&access != access {
		return nil, types.ErrAccessDenied
	}
	return obj.key.AddRef(), nil
}

// Close releases handle's reference and forgets it (close_handle).
func (m *Manager) Close(handle types.Handle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	obj, ok := m.objects[handle]
	if !ok {
		return types.ErrNotFound
	}
	delete(m.objects, handle)
	obj.key.Release()
	return nil
}

// RegisterFile associates path with a new handle for later ReadFile or
// WriteFile calls, the in-process stand-in for a real handle manager
// already holding an open file object.
func (m *Manager) RegisterFile(path string) types.Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	h := m.next
	m.files[h] = path
	return h
}

// ReadFile opens handle's registered path for reading and adopts it
// (get_read_fd).
func (m *Manager) ReadFile(handle types.Handle) (io.ReadCloser, error) {
	path, ok := m.filePath(handle)
	if !ok {
		return nil, types.ErrNotFound
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, types.Wrap(types.ErrKindNotFound, "open for read", err)
	}
	return fdio.AdoptReader(int(f.Fd())), nil
}

// WriteFile creates (or truncates) handle's registered path and adopts
// it for writing (get_write_fd).
func (m *Manager) WriteFile(handle types.Handle) (io.WriteCloser, error) {
	path, ok := m.filePath(handle)
	if !ok {
		return nil, types.ErrNotFound
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, types.Wrap(types.ErrKindNotFound, "open for write", err)
	}
	return fdio.AdoptWriter(int(f.Fd())), nil
}

func (m *Manager) filePath(handle types.Handle) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.files[handle]
	return p, ok
}
