package registry

import (
	"time"

	"github.com/go-compat/regsrv/internal/regtree"
	"github.com/go-compat/regsrv/pkg/types"
)

// MaxValueData bounds a single set_key_value payload: the request's
// variable-length tail has a known capacity, and exceeding it is an
// OUTOFMEMORY error rather than a silent truncation (spec.md §6). This
// package has no real request buffer to size against, so it exposes the
// limit as a Service field callers size to their own transport's
// capacity; the zero value selects DefaultMaxValueData.
const DefaultMaxValueData = 1 << 20

// SetKeyValue implements the set_key_value opcode: resolve hkey with
// SET_VALUE, length-check, set_value.
func (s *Service) SetKeyValue(hkey types.Handle, name string, typ types.RegType, data []byte) error {
	if len(data) > s.maxValueData() {
		return types.ErrOutOfMemory
	}
	k, err := s.resolve(hkey, types.KeySetValue)
	if err != nil {
		return err
	}
	defer k.Release()

	s.trace("Set", k, "value", name)
	return regtree.SetValue(k, name, typ, data, s.currentLevel, time.Now())
}

func (s *Service) maxValueData() int {
	if s.MaxValueData == 0 {
		return DefaultMaxValueData
	}
	return s.MaxValueData
}

// GetKeyValue implements the get_key_value opcode: resolve hkey with
// QUERY_VALUE, get_value.
func (s *Service) GetKeyValue(hkey types.Handle, name string) (types.RegType, []byte, error) {
	k, err := s.resolve(hkey, types.KeyQueryValue)
	if err != nil {
		return 0, nil, err
	}
	defer k.Release()

	s.trace("Get", k, "value", name)
	return regtree.GetValue(k, name)
}

// EnumKeyValue implements the enum_key_value opcode: resolve hkey with
// QUERY_VALUE, enum_value at index.
func (s *Service) EnumKeyValue(hkey types.Handle, index int) (regtree.KeyValue, error) {
	k, err := s.resolve(hkey, types.KeyQueryValue)
	if err != nil {
		return regtree.KeyValue{}, err
	}
	defer k.Release()

	return regtree.EnumValue(k, index)
}

// DeleteKeyValue implements the delete_key_value opcode: resolve hkey
// with SET_VALUE, delete_value.
func (s *Service) DeleteKeyValue(hkey types.Handle, name string) error {
	k, err := s.resolve(hkey, types.KeySetValue)
	if err != nil {
		return err
	}
	defer k.Release()

	s.trace("DeleteValue", k, "value", name)
	return regtree.DeleteValue(k, name, s.currentLevel, time.Now())
}
