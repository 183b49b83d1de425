// Package registry implements the RPC dispatch layer: each opcode of
// the dispatch table resolves its hkey argument through the external
// handle manager or the root-key table, performs the corresponding
// internal/regtree or codec operation, and releases every reference it
// acquired on every exit path. Grounded on the DECL_HANDLER blocks in
// server/registry.c.
package registry

import (
	"io"

	"github.com/go-compat/regsrv/internal/regtree"
	"github.com/go-compat/regsrv/pkg/types"
)

// HandleManager is the external object/handle manager collaborator: an
// opaque capability layer this package treats as out of scope (the RPC
// transport and process table that own it are assumed, not modeled
// here). It resolves and allocates the opaque per-process handles the
// dispatch table operates on, and adopts a handle's backing object into
// a byte stream for load/save.
type HandleManager interface {
	// Resolve returns the key a non-root handle refers to, checking
	// access, with a new reference (get_hkey_obj's delegate branch).
	Resolve(handle types.Handle, access types.AccessMask) (*regtree.Key, error)
	// Alloc dispenses a new handle referring to key with the given
	// access (alloc_handle).
	Alloc(key *regtree.Key, access types.AccessMask) (types.Handle, error)
	// Close releases a previously allocated handle (close_handle).
	Close(handle types.Handle) error
	// ReadFile adopts handle's backing object as a readable stream
	// (get_read_fd).
	ReadFile(handle types.Handle) (io.ReadCloser, error)
	// WriteFile adopts handle's backing object as a writable stream
	// (get_write_fd).
	WriteFile(handle types.Handle) (io.WriteCloser, error)
}
