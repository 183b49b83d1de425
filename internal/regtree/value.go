package regtree

import (
	"time"

	"github.com/go-compat/regsrv/internal/wstr"
	"github.com/go-compat/regsrv/pkg/types"
)

// findValue is find_value: binary search over the sorted values array.
func (k *Key) findValue(name string) (int, bool) {
	items := k.values.items()
	lo, hi := 0, len(items)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		res := wstr.CompareFold(items[mid].Name, name)
		switch {
		case res == 0:
			return mid, true
		case res > 0:
			hi = mid - 1
		default:
			lo = mid + 1
		}
	}
	return lo, false
}

// insertValue is insert_value: look up by name, or insert a
// zero-initialized slot at the sorted position and return its index.
func (k *Key) insertValue(name string) int {
	idx, found := k.findValue(name)
	if found {
		return idx
	}
	k.values.insertAt(idx, KeyValue{Name: name})
	return idx
}

// SetValue sets (or creates) a value by name, replacing its type and
// data and touching the key (set_value). Data is copied defensively.
func SetValue(k *Key, name string, typ types.RegType, data []byte, currentLevel int, now time.Time) error {
	if allocFailure != nil && allocFailure() {
		return types.ErrOutOfMemory
	}
	cp := append([]byte(nil), data...)
	idx := k.insertValue(name)
	v := k.values.at(idx)
	v.Type = typ
	v.Data = cp
	k.values.set(idx, v)
	k.touch(currentLevel, now)
	return nil
}

// GetValue returns the type and data of the named value, or
// ErrNotFound if it doesn't exist (get_value).
func GetValue(k *Key, name string) (types.RegType, []byte, error) {
	idx, found := k.findValue(name)
	if !found {
		return 0, nil, types.ErrNotFound
	}
	v := k.values.at(idx)
	return v.Type, append([]byte(nil), v.Data...), nil
}

// EnumValue reports the index'th value of k, or ErrNoMoreItems once
// index is out of range (enum_value).
func EnumValue(k *Key, index int) (KeyValue, error) {
	if index < 0 || index >= k.ValueCount() {
		return KeyValue{}, types.ErrNoMoreItems
	}
	return k.ValueAt(index), nil
}

// DeleteValue removes the named value, touching the key
// (delete_value). Returns ErrNotFound if no such value exists.
func DeleteValue(k *Key, name string, currentLevel int, now time.Time) error {
	idx, found := k.findValue(name)
	if !found {
		return types.ErrNotFound
	}
	k.values.removeAt(idx)
	k.touch(currentLevel, now)
	return nil
}
