package registry

import (
	"time"

	"github.com/go-compat/regsrv/internal/regtext"
	"github.com/go-compat/regsrv/internal/regtextv1"
	"github.com/go-compat/regsrv/internal/regtree"
	"github.com/go-compat/regsrv/pkg/types"
)

// LoadRegistry implements the load_registry opcode: resolve hkey with
// SET_VALUE|CREATE_SUB_KEY, adopt the handle manager's read stream, and
// run it through the v2 loader against hkey's key as the load target.
// Per-line parse errors are logged and non-fatal; a missing v2 header or
// a read failure aborts the whole load.
func (s *Service) LoadRegistry(hkey types.Handle, fileHandle types.Handle) error {
	k, err := s.resolve(hkey, types.KeySetValue|types.KeyCreateSubKey)
	if err != nil {
		return err
	}
	defer k.Release()

	r, err := s.handles.ReadFile(fileHandle)
	if err != nil {
		return err
	}
	defer r.Close()

	resolveRoot := func(name string) (*regtree.Key, bool) {
		return s.roots.ResolveLabel(name, time.Now())
	}

	s.trace("Load", k)
	lineErrs, err := regtext.Load(r, k, s.currentLevel, time.Now(), resolveRoot)
	for _, le := range lineErrs {
		s.log.Warn("load_registry: malformed line", "line", le.Line, "error", le.Err)
	}
	return err
}

// SaveRegistry implements the save_registry opcode: resolve hkey with
// QUERY_VALUE|ENUMERATE_SUB_KEYS, adopt the handle manager's write
// stream, and render hkey's subtree with whichever codec
// saving_version currently selects.
func (s *Service) SaveRegistry(hkey types.Handle, fileHandle types.Handle) error {
	k, err := s.resolve(hkey, types.KeyQueryValue|types.KeyEnumerateSubKeys)
	if err != nil {
		return err
	}
	defer k.Release()

	w, err := s.handles.WriteFile(fileHandle)
	if err != nil {
		return err
	}

	s.trace("Save", k)
	if s.savingVersion == 1 {
		err = regtextv1.Save(w, k, s.savingLevel)
	} else {
		err = regtext.Save(w, k, s.savingLevel, s.roots.LabelOf)
	}
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	return err
}

// SetRegistryLevels implements the set_registry_levels opcode: writes
// the process-wide current_level/saving_level globals this Service
// owns. version selects the save format for subsequent SaveRegistry
// calls: 0 for v2 (the default), 1 for the legacy v1 format.
func (s *Service) SetRegistryLevels(current, saving, version int) {
	s.currentLevel = current
	s.savingLevel = saving
	s.savingVersion = version
}
