package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"

	"foldertree/internal/core"
	"foldertree/internal/server/database"
)

var ErrJournalDisabled = errors.New("command journal is disabled")

// Journal stores the outcome of executed commands.
type Journal interface {
	Record(ctx context.Context, entry *database.Entry) error
	Recent(ctx context.Context, limit int) ([]*database.Entry, error)
	GetStats(ctx context.Context) (*database.Stats, error)
}

// Stats combines the tree counts with the journal counts when a journal is set.
type Stats struct {
	Tree    core.Stats      `json:"tree"`
	Journal *database.Stats `json:"journal,omitempty"`
}

// TreeService serializes access to one tree. Every operation takes the same
// lock, so a command always sees the tree left by the previous one.
type TreeService struct {
	mu      sync.Mutex
	tree    *core.Filetree
	journal Journal
}

// NewTreeService wraps tree. journal may be nil.
func NewTreeService(tree *core.Filetree, journal Journal) *TreeService {
	return &TreeService{
		tree:    tree,
		journal: journal,
	}
}

func (s *TreeService) AddFolder(ctx context.Context, path, name string) error {
	return s.mutate(ctx, core.CmdAddFolder, path, name, func(dir *core.Folder) error {
		return dir.AddFolder(name)
	})
}

func (s *TreeService) AddFile(ctx context.Context, path, name, content string) error {
	return s.mutate(ctx, core.CmdAddFile, path, name, func(dir *core.Folder) error {
		return dir.AddFile(name, content)
	})
}

func (s *TreeService) RemoveFolder(ctx context.Context, path, name string) error {
	return s.mutate(ctx, core.CmdRemoveFolder, path, name, func(dir *core.Folder) error {
		return dir.RemoveFolder(name)
	})
}

func (s *TreeService) RemoveFile(ctx context.Context, path, name string) error {
	return s.mutate(ctx, core.CmdRemoveFile, path, name, func(dir *core.Folder) error {
		return dir.RemoveFile(name)
	})
}

func (s *TreeService) mutate(ctx context.Context, kind core.CommandKind, path, name string, op func(*core.Folder) error) error {
	s.mu.Lock()
	dir, err := s.tree.Resolve(path)
	if err == nil {
		err = op(dir)
	}
	s.mu.Unlock()

	s.record(ctx, kind, path, name, err)
	if err != nil {
		return err
	}

	slog.Info("tree updated", "command", string(kind), "path", path, "name", name)
	return nil
}

// ReadFile returns the content of the named file in the folder at path.
func (s *TreeService) ReadFile(ctx context.Context, path, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir, err := s.tree.Resolve(path)
	if err != nil {
		return "", err
	}
	f := dir.GetFile(name)
	if f == nil {
		return "", &core.EntryError{Kind: core.KindFile, Name: name, Err: core.ErrNotFound}
	}
	return f.Content(), nil
}

// SearchFile returns the path of the first file named name.
func (s *TreeService) SearchFile(ctx context.Context, name string) (string, error) {
	s.mu.Lock()
	found, ok := s.tree.SearchFile(name)
	s.mu.Unlock()

	var err error
	if !ok {
		err = &core.EntryError{Kind: core.KindFile, Name: name, Err: core.ErrNotFound}
	}
	s.record(ctx, core.CmdSearchFile, "", name, err)
	return found, err
}

// SearchFolder returns the path of the first folder named name.
func (s *TreeService) SearchFolder(ctx context.Context, name string) (string, error) {
	s.mu.Lock()
	found, ok := s.tree.SearchFolder(name)
	s.mu.Unlock()

	var err error
	if !ok {
		err = &core.EntryError{Kind: core.KindFolder, Name: name, Err: core.ErrNotFound}
	}
	s.record(ctx, core.CmdSearchFolder, "", name, err)
	return found, err
}

// Display writes the rendered tree to w.
func (s *TreeService) Display(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Display(w)
}

// Render returns the rendered tree as a string.
func (s *TreeService) Render() string {
	var b strings.Builder
	s.Display(&b)
	return b.String()
}

// Export returns the tree as a zip archive.
func (s *TreeService) Export() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.ToZipBytes()
}

func (s *TreeService) Stats(ctx context.Context) (*Stats, error) {
	s.mu.Lock()
	stats := &Stats{Tree: s.tree.Stats()}
	s.mu.Unlock()

	if s.journal != nil {
		journalStats, err := s.journal.GetStats(ctx)
		if err != nil {
			return nil, err
		}
		stats.Journal = journalStats
	}
	return stats, nil
}

// History returns the most recent journal entries, newest first.
func (s *TreeService) History(ctx context.Context, limit int) ([]*database.Entry, error) {
	if s.journal == nil {
		return nil, ErrJournalDisabled
	}
	return s.journal.Recent(ctx, limit)
}

// record stores the command outcome. Journal failures are logged only.
func (s *TreeService) record(ctx context.Context, kind core.CommandKind, path, name string, cmdErr error) {
	if s.journal == nil {
		return
	}

	entry := &database.Entry{
		Command:   string(kind),
		Path:      path,
		Name:      name,
		Succeeded: cmdErr == nil,
	}
	if cmdErr != nil {
		msg := cmdErr.Error()
		entry.Error = &msg
	}

	if err := s.journal.Record(ctx, entry); err != nil {
		slog.Error("failed to record command",
			"command", string(kind),
			"path", path,
			"name", name,
			"error", err,
		)
	}
}
