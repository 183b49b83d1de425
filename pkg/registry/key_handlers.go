package registry

import (
	"time"

	"github.com/go-compat/regsrv/internal/regtree"
	"github.com/go-compat/regsrv/internal/roots"
	"github.com/go-compat/regsrv/pkg/types"
)

// CreateKey implements the create_key opcode: resolve hkey with
// CREATE_SUB_KEY, create_key the subpath, allocate a handle for the
// result.
func (s *Service) CreateKey(hkey types.Handle, path string, class *string, options types.CreateOptions) (newHandle types.Handle, created bool, err error) {
	base, err := s.resolve(hkey, types.KeyCreateSubKey)
	if err != nil {
		return 0, false, err
	}
	defer base.Release()

	k, created, err := regtree.CreateKey(base, path, class, options, s.currentLevel, time.Now())
	if err != nil {
		return 0, false, err
	}
	defer k.Release()

	s.trace("Create", k)
	h, err := s.handles.Alloc(k, types.KeyAllAccess)
	if err != nil {
		return 0, false, err
	}
	return h, created, nil
}

// OpenKey implements the open_key opcode: resolve hkey with no extra
// access bits, open_key the subpath, allocate a handle for the result.
func (s *Service) OpenKey(hkey types.Handle, path string, access types.AccessMask) (types.Handle, error) {
	base, err := s.resolve(hkey, 0)
	if err != nil {
		return 0, err
	}
	defer base.Release()

	k, err := regtree.OpenKey(base, path)
	if err != nil {
		return 0, err
	}
	defer k.Release()

	s.trace("Open", k)
	return s.handles.Alloc(k, coerceAccess(access))
}

// DeleteKey implements the delete_key opcode: resolve hkey with
// CREATE_SUB_KEY, delete_key the subpath.
func (s *Service) DeleteKey(hkey types.Handle, path string) error {
	base, err := s.resolve(hkey, types.KeyCreateSubKey)
	if err != nil {
		return err
	}
	defer base.Release()

	s.trace("Delete", base, "subpath", path)
	return regtree.DeleteKey(base, path, time.Now())
}

// CloseKey implements the close_key opcode: closing a well-known root
// handle is a silent no-op (the root table, not the handle manager,
// owns its lifetime); any other handle is closed through the handle
// manager.
func (s *Service) CloseKey(hkey types.Handle) error {
	if roots.IsRoot(hkey) {
		return nil
	}
	return s.handles.Close(hkey)
}

// EnumKey implements the enum_key opcode: resolve hkey with
// ENUMERATE_SUB_KEYS, enum_key at index.
func (s *Service) EnumKey(hkey types.Handle, index int) (name, class string, modif time.Time, err error) {
	k, err := s.resolve(hkey, types.KeyEnumerateSubKeys)
	if err != nil {
		return "", "", time.Time{}, err
	}
	defer k.Release()

	s.trace("Enum", k, "index", index)
	return regtree.EnumKey(k, index)
}

// QueryKeyInfo implements the query_key_info opcode: resolve hkey with
// QUERY_VALUE, query_key.
func (s *Service) QueryKeyInfo(hkey types.Handle) (regtree.KeyQueryInfo, error) {
	k, err := s.resolve(hkey, types.KeyQueryValue)
	if err != nil {
		return regtree.KeyQueryInfo{}, err
	}
	defer k.Release()

	return regtree.QueryKey(k), nil
}
