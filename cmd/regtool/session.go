package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-compat/regsrv/internal/roots"
	"github.com/go-compat/regsrv/pkg/registry"
	"github.com/go-compat/regsrv/pkg/registry/memhandles"
	"github.com/go-compat/regsrv/pkg/types"
)

// session wires a fresh Service and handle manager for one CLI
// invocation: the tree lives only in this process's memory, so every
// command that wants continuity across invocations loads --file first
// and mutating commands save it back afterward.
type session struct {
	svc  *registry.Service
	mgr  *memhandles.Manager
	root types.Handle
}

func newSession() (*session, error) {
	hkey, ok := roots.ByName(rootName)
	if !ok {
		return nil, fmt.Errorf("unknown root %q", rootName)
	}

	var logger *slog.Logger
	if debugLevel > 1 {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	} else {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	mgr := memhandles.New()
	svc := registry.New(mgr, logger)
	svc.SetDebugLevel(debugLevel)
	svc.SetRegistryLevels(0, 0, saveVersion)

	s := &session{svc: svc, mgr: mgr, root: hkey}

	if regFile != "" {
		if _, err := os.Stat(regFile); err == nil {
			loadHandle := mgr.RegisterFile(regFile)
			if err := svc.LoadRegistry(hkey, loadHandle); err != nil {
				svc.Close()
				return nil, fmt.Errorf("failed to load %s: %w", regFile, err)
			}
			printVerbose("Loaded %s\n", regFile)
		} else if !os.IsNotExist(err) {
			svc.Close()
			return nil, fmt.Errorf("failed to stat %s: %w", regFile, err)
		}
	}
	return s, nil
}

func (s *session) saveAndClose() error {
	defer s.svc.Close()
	if regFile == "" {
		return nil
	}
	saveHandle := s.mgr.RegisterFile(regFile)
	if err := s.svc.SaveRegistry(s.root, saveHandle); err != nil {
		return fmt.Errorf("failed to save %s: %w", regFile, err)
	}
	printVerbose("Saved %s\n", regFile)
	return nil
}

func (s *session) close() {
	s.svc.Close()
}
