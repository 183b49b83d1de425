package registry

import (
	"io"
	"log/slog"
	"time"

	"github.com/go-compat/regsrv/internal/regtext"
	"github.com/go-compat/regsrv/internal/regtree"
	"github.com/go-compat/regsrv/internal/roots"
	"github.com/go-compat/regsrv/pkg/types"
)

// Service is the dispatcher: the single point every RPC opcode of
// spec.md §4.8 is routed through. It owns the process-wide level
// counters (current_level, saving_level) and the v1/v2 save-format
// switch (saving_version), matching the single-threaded cooperative
// server described in §5 — callers are expected to serialize calls to
// a Service the way the source's cooperative scheduler serializes
// requests.
type Service struct {
	roots   *roots.Table
	handles HandleManager
	log     *slog.Logger

	debugLevel    int
	currentLevel  int
	savingLevel   int
	savingVersion int

	// MaxValueData bounds a single set_key_value payload; exceeding it
	// is an OUTOFMEMORY error. Zero means DefaultMaxValueData.
	MaxValueData int
}

// New builds a Service over handles, the external handle-manager
// collaborator. A nil logger discards all trace output.
func New(handles HandleManager, log *slog.Logger) *Service {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		roots:   roots.NewTable(),
		handles: handles,
		log:     log,
	}
}

// SetDebugLevel controls the dump_operation-style structured tracing:
// above 1, the create, open, delete, enum, set, get, delete-value, load
// and save opcodes log their name and the dumped path of the key they
// operated on. The other opcodes are not traced.
func (s *Service) SetDebugLevel(level int) { s.debugLevel = level }

// Close tears down the root table, releasing every populated slot once
// (the server-shutdown teardown of spec.md §4.5).
func (s *Service) Close() { s.roots.Close() }

// coerceAccess folds MAXIMUM_ALLOWED into KEY_ALL_ACCESS, per the
// dispatch table's blanket rule in spec.md §4.8.
func coerceAccess(access types.AccessMask) types.AccessMask {
	if access&types.MaximumAllowed != 0 {
		return types.KeyAllAccess
	}
	return access
}

// resolve is get_hkey_obj: a well-known root handle resolves through the
// root table with a new reference; anything else delegates to the
// external handle manager.
func (s *Service) resolve(hkey types.Handle, access types.AccessMask) (*regtree.Key, error) {
	access = coerceAccess(access)
	if roots.IsRoot(hkey) {
		return s.roots.Get(hkey, time.Now())
	}
	return s.handles.Resolve(hkey, access)
}

// trace emits a dump_operation-equivalent line when debugLevel > 1.
func (s *Service) trace(op string, k *regtree.Key, extra ...any) {
	if s.debugLevel <= 1 {
		return
	}
	args := append([]any{"path", regtext.DumpPath(k, s.roots.LabelOf)}, extra...)
	s.log.Debug(op, args...)
}
