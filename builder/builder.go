// Package builder orchestrates IR construction: it walks a project
// directory, dispatches each file to the language plugin registered
// for its extension, and merges every file's extracted nodes and edges
// into one ir.Graph.
package builder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	sitter "github.com/smacker/go-tree-sitter"
	"golang.org/x/sync/errgroup"

	"github.com/shivasurya/code-pathfinder/engine/diagnostic"
	"github.com/shivasurya/code-pathfinder/engine/ir"
	"github.com/shivasurya/code-pathfinder/engine/lang"
)

// Options configures a build run.
type Options struct {
	// RepoID seeds stable-ID derivation; a caller re-running over the
	// same repository should pass the same RepoID so node IDs stay
	// stable across runs. Empty means "generate one for this run"
	// (fine for one-shot CLI invocations, wrong for incremental mode).
	RepoID string
	// SkipDirs is a set of directory base names never descended into
	// (vendor, node_modules, .git, ...).
	SkipDirs map[string]bool
	// Concurrency bounds the number of files parsed in parallel. <= 0
	// means unbounded (errgroup's default).
	Concurrency int
}

// DefaultSkipDirs matches the teacher's default ignore set, generalized
// beyond its Python/Java focus to every supported language's common
// dependency directories.
func DefaultSkipDirs() map[string]bool {
	return map[string]bool{
		".git": true, "vendor": true, "node_modules": true,
		"target": true, "build": true, "dist": true, ".venv": true,
		"__pycache__": true,
	}
}

// FileError pairs a file path with the error extracting it. One bad
// file never aborts the whole build; the caller decides how to react.
type FileError struct {
	File string
	Err  error
}

func (e FileError) Error() string { return fmt.Sprintf("%s: %v", e.File, e.Err) }

// Diagnostic converts a FileError into the engine's shared diagnostic
// type, so callers reporting build problems alongside analysis
// diagnostics (orchestrator stage failures, config errors) can collect
// everything into one diagnostic.Bag.
func (e FileError) Diagnostic() diagnostic.Error {
	return diagnostic.Error{
		Kind:    diagnostic.KindExtractionError,
		Message: e.Err.Error(),
		Range:   diagnostic.Range{File: e.File},
	}
}

// Result is the outcome of a Build.
type Result struct {
	Graph  *ir.Graph
	Errors []FileError
}

// Build walks root, parses every file with a registered language
// plugin, and merges the results into a single ir.Graph. Independent
// files are parsed concurrently (tree-sitter parsers are not
// goroutine-safe, so every file is parsed with a freshly created
// *sitter.Parser).
func Build(ctx context.Context, root string, opts Options) (*Result, error) {
	if opts.SkipDirs == nil {
		opts.SkipDirs = DefaultSkipDirs()
	}
	repoID := opts.RepoID
	if repoID == "" {
		repoID = uuid.NewString()
	}

	files, err := discoverFiles(root, opts.SkipDirs)
	if err != nil {
		return nil, fmt.Errorf("builder: discover files: %w", err)
	}

	type fileResult struct {
		file   string
		result lang.ExtractResult
		err    error
	}
	results := make([]fileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}

	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			plugin, ok := lang.ForExtension(filepath.Ext(f))
			if !ok {
				return nil
			}

			// A fresh parser per file: sitter.Parser is not
			// goroutine-safe, and sharing one across concurrent workers
			// would need its own synchronization for no real benefit —
			// parser construction is cheap relative to parsing.
			parser := sitter.NewParser()
			parser.SetLanguage(plugin.GrammarHandle())
			source, err := os.ReadFile(f)
			if err != nil {
				results[i] = fileResult{file: f, err: err}
				return nil
			}

			tree, err := parser.ParseCtx(gctx, nil, source)
			if err != nil {
				results[i] = fileResult{file: f, err: err}
				return nil
			}

			rel, err := filepath.Rel(root, f)
			if err != nil {
				rel = f
			}
			results[i] = fileResult{file: rel, result: plugin.Extract(tree, source, rel, repoID)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	graph := ir.NewGraph()
	var fileErrors []FileError
	for _, r := range results {
		if r.file == "" {
			continue
		}
		if r.err != nil {
			fileErrors = append(fileErrors, FileError{File: r.file, Err: r.err})
			continue
		}
		for _, n := range r.result.Nodes {
			graph.AddNode(n)
		}
		for _, e := range r.result.Edges {
			graph.AddEdge(e)
		}
		for _, extractErr := range r.result.Errors {
			fileErrors = append(fileErrors, FileError{File: r.file, Err: extractErr})
		}
	}

	sort.Slice(fileErrors, func(i, j int) bool { return fileErrors[i].File < fileErrors[j].File })
	return &Result{Graph: graph, Errors: fileErrors}, nil
}

func discoverFiles(root string, skip map[string]bool) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		base := d.Name()
		if d.IsDir() {
			if base != "." && skip[base] {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(base, ".") {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
