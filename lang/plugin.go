// Package lang defines the LanguagePlugin contract every tree-sitter
// grammar binding implements, and a registry keyed by file extension so
// the builder can dispatch parsing without knowing concrete language
// packages.
package lang

import (
	"fmt"
	"sort"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/shivasurya/code-pathfinder/engine/ir"
)

// ExtractResult is one file's contribution to the IR graph.
type ExtractResult struct {
	Nodes []*ir.Node
	Edges []*ir.Edge
	// Errors collects per-subtree extraction failures that shouldn't
	// abort the whole file; the caller (builder) decides whether any
	// of them escalate.
	Errors []error
}

// VariableExtractor pulls the variable references a tree-sitter node
// reads and writes, shared by the IR builder's DFG pass and by callers
// that want def/use info without running the full Extract.
type VariableExtractor func(node *sitter.Node, source []byte) (reads []string, writes []string)

// Plugin is the contract a language binding implements: a tree-sitter
// grammar handle, a stable language identifier, the IR-producing
// Extract pass, and a VariableExtractor.
type Plugin interface {
	GrammarHandle() *sitter.Language
	LanguageID() string
	Extract(tree *sitter.Tree, source []byte, file, repoID string) ExtractResult
	VariableExtractor() VariableExtractor
}

var (
	mu         sync.RWMutex
	byID       = make(map[string]Plugin)
	extToLang  = make(map[string]string)
)

// Register associates a plugin with its language ID and the file
// extensions (including the leading dot) it claims. Language plugin
// packages call this from an init() function.
func Register(p Plugin, extensions ...string) {
	mu.Lock()
	defer mu.Unlock()
	byID[p.LanguageID()] = p
	for _, ext := range extensions {
		extToLang[ext] = p.LanguageID()
	}
}

// For returns the plugin registered for a language ID.
func For(languageID string) (Plugin, bool) {
	mu.RLock()
	defer mu.RUnlock()
	p, ok := byID[languageID]
	return p, ok
}

// ForExtension returns the plugin registered for a file extension.
func ForExtension(ext string) (Plugin, bool) {
	mu.RLock()
	defer mu.RUnlock()
	id, ok := extToLang[ext]
	if !ok {
		return nil, false
	}
	p, ok := byID[id]
	return p, ok
}

// IDs returns every registered language ID, sorted for deterministic
// iteration (e.g. when logging which languages a run will parse).
func IDs() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(byID))
	for id := range byID {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// ErrUnsupportedExtension is returned by callers that look up a plugin
// for a file extension with no registered language.
func ErrUnsupportedExtension(ext string) error {
	return fmt.Errorf("lang: no plugin registered for extension %q", ext)
}
