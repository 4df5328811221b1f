// Package session owns the tree being edited: it loads the initial input,
// applies file-driven populates, and writes reports and snapshots.
package session

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/webwalker/internal/dirtree"
	"github.com/zjrosen/webwalker/internal/log"
	"github.com/zjrosen/webwalker/internal/paths"
	"github.com/zjrosen/webwalker/internal/snapshots/domain"
	"github.com/zjrosen/webwalker/internal/tracing"
)

var (
	// ErrConflictingInputs is returned when both an input file and an input
	// tree are given.
	ErrConflictingInputs = errors.New("input file and input tree are mutually exclusive")

	// ErrNoInputFile is returned by Reload when the session was not started
	// from a scraped input file.
	ErrNoInputFile = errors.New("session has no input file")
)

// Options configures Open.
type Options struct {
	// RootName names the root of a tree built from a list or from nothing.
	RootName string
	// InputFile is a scraped href list used to populate the root.
	InputFile string
	// InputTree is a saved report to rebuild the tree from.
	InputTree string
	// DataDir is the base for relative file names.
	DataDir string
	// OutputFile is the default Save target.
	OutputFile string
	// Hostname is stripped from scraped entries.
	Hostname string

	// Tracer may be nil.
	Tracer trace.Tracer
	// Snapshots, when set, receives a snapshot on every Save.
	Snapshots domain.SnapshotRepository
}

// Session is a single tree being edited. It is not safe for concurrent use.
type Session struct {
	opts      Options
	forest    *dirtree.Forest
	root      dirtree.NodeID
	populator *dirtree.Populator
	inputPath string
	warnings  []string
}

// SaveResult describes a completed Save.
type SaveResult struct {
	Path       string
	SnapshotID string
}

// Open builds the initial tree. A missing input file or an unparseable
// input tree is not fatal: the session starts with an empty root and the
// problem is reported through Warnings.
func Open(ctx context.Context, opts Options) (*Session, error) {
	if opts.InputFile != "" && opts.InputTree != "" {
		return nil, ErrConflictingInputs
	}
	if strings.TrimSpace(opts.RootName) == "" {
		opts.RootName = "/"
	}

	s := &Session{
		opts:      opts,
		forest:    dirtree.NewForest(),
		populator: dirtree.NewPopulator(opts.Hostname),
	}

	err := tracing.Run(ctx, opts.Tracer, tracing.SpanSessionOpen, func(ctx context.Context, span trace.Span) error {
		switch {
		case opts.InputTree != "":
			return s.loadTree(ctx, paths.ResolveDataFile(opts.DataDir, opts.InputTree))
		case opts.InputFile != "":
			s.inputPath = paths.ResolveDataFile(opts.DataDir, opts.InputFile)
			return s.loadList(ctx, s.inputPath)
		default:
			return s.createEmptyRoot()
		}
	}, attribute.String(tracing.AttrRoot, opts.RootName))
	if err != nil {
		return nil, err
	}

	log.Info(log.CatSession, "session opened",
		"root", s.Root().Name(),
		"nodes", s.forest.Len(),
		"warnings", len(s.warnings))
	return s, nil
}

func (s *Session) loadList(ctx context.Context, path string) error {
	return tracing.Run(ctx, s.opts.Tracer, tracing.SpanLoadList, func(_ context.Context, span trace.Span) error {
		if err := s.createEmptyRoot(); err != nil {
			return err
		}

		data, err := os.ReadFile(path) //nolint:gosec // G304: user supplied input file
		if errors.Is(err, fs.ErrNotExist) {
			s.warn("File %s not found, starting with an empty tree", path)
			span.AddEvent(tracing.EventInputMissing, trace.WithAttributes(attribute.String(tracing.AttrPath, path)))
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading input file: %w", err)
		}

		res, err := s.populator.Populate(s.forest, s.root, string(data))
		if err != nil {
			return err
		}
		span.SetAttributes(
			attribute.Int(tracing.AttrAdded, len(res.Added)),
			attribute.Int(tracing.AttrSkipped, res.Skipped),
		)
		return nil
	}, attribute.String(tracing.AttrPath, path))
}

func (s *Session) loadTree(ctx context.Context, path string) error {
	return tracing.Run(ctx, s.opts.Tracer, tracing.SpanLoadTree, func(_ context.Context, span trace.Span) error {
		f, err := os.Open(path) //nolint:gosec // G304: user supplied input tree
		if errors.Is(err, fs.ErrNotExist) {
			s.warn("File %s not found, starting with an empty tree", path)
			span.AddEvent(tracing.EventInputMissing, trace.WithAttributes(attribute.String(tracing.AttrPath, path)))
			return s.createEmptyRoot()
		}
		if err != nil {
			return fmt.Errorf("opening input tree: %w", err)
		}
		defer func() { _ = f.Close() }()

		root, err := dirtree.ParseTreeReader(s.forest, f)
		if err != nil {
			log.ErrorErr(log.CatParse, "input tree rejected", err, "path", path)
			s.warn("Could not load tree from %s (%v), starting with an empty tree", path, err)
			span.AddEvent(tracing.EventTreeReset)
			s.forest.Reset()
			return s.createEmptyRoot()
		}
		s.root = root.ID()
		span.SetAttributes(attribute.Int(tracing.AttrNodes, s.forest.Len()))
		return nil
	}, attribute.String(tracing.AttrPath, path))
}

func (s *Session) createEmptyRoot() error {
	root, err := s.forest.Create(s.opts.RootName, dirtree.RootLevel)
	if err != nil {
		return fmt.Errorf("creating root: %w", err)
	}
	s.root = root.ID()
	return nil
}

func (s *Session) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	s.warnings = append(s.warnings, msg)
	log.Warn(log.CatSession, msg)
}

// Forest returns the session's forest.
func (s *Session) Forest() *dirtree.Forest { return s.forest }

// Root returns the root node.
func (s *Session) Root() *dirtree.Node {
	n, _ := s.forest.Node(s.root)
	return n
}

// Populator returns the populator configured with the session's hostname.
func (s *Session) Populator() *dirtree.Populator { return s.populator }

// Warnings returns the non-fatal problems met while opening.
func (s *Session) Warnings() []string { return s.warnings }

// InputPath returns the resolved scraped input file, or "" when the session
// was not started from one.
func (s *Session) InputPath() string { return s.inputPath }

// DefaultOutputFile returns the file Save uses when given no name.
func (s *Session) DefaultOutputFile() string {
	if s.opts.OutputFile == "" {
		return "outputfile.txt"
	}
	return s.opts.OutputFile
}

// Render returns the report for the whole tree.
func (s *Session) Render() (string, error) {
	return s.forest.Render(s.root)
}

// PopulateFrom reads a scraped list from name (resolved against the data
// directory) and attaches its entries under node.
func (s *Session) PopulateFrom(ctx context.Context, node dirtree.NodeID, name string) (dirtree.PopulateResult, error) {
	return s.populateFile(ctx, node, paths.ResolveDataFile(s.opts.DataDir, name))
}

func (s *Session) populateFile(ctx context.Context, node dirtree.NodeID, path string) (dirtree.PopulateResult, error) {
	var res dirtree.PopulateResult
	err := tracing.Run(ctx, s.opts.Tracer, tracing.SpanPopulate, func(_ context.Context, span trace.Span) error {
		if path == "" {
			return fmt.Errorf("no file name given")
		}
		data, err := os.ReadFile(path) //nolint:gosec // G304: user supplied input file
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		res, err = s.populator.Populate(s.forest, node, string(data))
		if err != nil {
			return err
		}
		span.SetAttributes(
			attribute.Int(tracing.AttrAdded, len(res.Added)),
			attribute.Int(tracing.AttrSkipped, res.Skipped),
		)
		return nil
	}, attribute.String(tracing.AttrPath, path), attribute.Int64(tracing.AttrNode, int64(node)))
	return res, err
}

// Reload populates the root again from the input file. Entries already in
// the tree are skipped, so only new links are added.
func (s *Session) Reload(ctx context.Context) (dirtree.PopulateResult, error) {
	if s.inputPath == "" {
		return dirtree.PopulateResult{}, ErrNoInputFile
	}
	var res dirtree.PopulateResult
	err := tracing.Run(ctx, s.opts.Tracer, tracing.SpanSessionReload, func(ctx context.Context, _ trace.Span) error {
		var err error
		res, err = s.populateFile(ctx, s.root, s.inputPath)
		return err
	})
	if err == nil {
		log.Info(log.CatSession, "reloaded input file", "path", s.inputPath, "added", len(res.Added))
	}
	return res, err
}

// Save writes the report to name (resolved against the data directory; empty
// means the default output file), creating parent directories, and records a
// snapshot when a repository is configured.
func (s *Session) Save(ctx context.Context, name, label string) (SaveResult, error) {
	if strings.TrimSpace(name) == "" {
		name = s.DefaultOutputFile()
	}
	path := paths.ResolveDataFile(s.opts.DataDir, name)
	result := SaveResult{Path: path}

	err := tracing.Run(ctx, s.opts.Tracer, tracing.SpanSave, func(ctx context.Context, span trace.Span) error {
		body, err := s.Render()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil { //nolint:gosec // G306: reports are meant to be shared
			return fmt.Errorf("writing %s: %w", path, err)
		}
		span.SetAttributes(attribute.Int(tracing.AttrNodes, s.forest.Len()))

		if s.opts.Snapshots == nil {
			return nil
		}
		id, err := s.snapshot(ctx, body, label)
		if err != nil {
			return fmt.Errorf("saved %s but snapshot failed: %w", path, err)
		}
		result.SnapshotID = id
		return nil
	}, attribute.String(tracing.AttrPath, path))
	if err != nil {
		return result, err
	}

	log.Info(log.CatSession, "saved tree", "path", path, "snapshot", result.SnapshotID)
	return result, nil
}

func (s *Session) snapshot(ctx context.Context, body, label string) (string, error) {
	var id string
	err := tracing.Run(ctx, s.opts.Tracer, tracing.SpanSnapshotSave, func(_ context.Context, span trace.Span) error {
		snap, err := domain.NewSnapshot(s.Root().Name(), label, body, s.forest.Stats(s.root).Nodes)
		if err != nil {
			return err
		}
		if err := s.opts.Snapshots.Save(snap); err != nil {
			return err
		}
		id = snap.ID()
		span.SetAttributes(attribute.String(tracing.AttrSnapshot, id))
		return nil
	})
	return id, err
}
