package lang_test

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	tsgolang "github.com/smacker/go-tree-sitter/golang"
	"github.com/shivasurya/code-pathfinder/engine/ir"
	"github.com/shivasurya/code-pathfinder/engine/lang"
	_ "github.com/shivasurya/code-pathfinder/engine/lang/golang"
)

func TestRegistry_ResolvesByExtensionAndID(t *testing.T) {
	p, ok := lang.ForExtension(".go")
	if !ok {
		t.Fatal("expected .go to resolve to a registered plugin")
	}
	if p.LanguageID() != "go" {
		t.Fatalf("expected language id 'go', got %q", p.LanguageID())
	}

	byID, ok := lang.For("go")
	if !ok || byID.LanguageID() != "go" {
		t.Fatal("expected lookup by language id to succeed")
	}

	if _, ok := lang.ForExtension(".nope"); ok {
		t.Fatal("expected unregistered extension to miss")
	}
}

func TestIDs_ContainsGo(t *testing.T) {
	found := false
	for _, id := range lang.IDs() {
		if id == "go" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected 'go' in registered language IDs")
	}
}

func TestGoPlugin_ExtractsBothFunctions(t *testing.T) {
	p, ok := lang.For("go")
	if !ok {
		t.Fatal("go plugin not registered")
	}

	src := []byte("package main\n\nfunc main() {\n\thelper()\n}\n\nfunc helper() {}\n")
	parser := sitter.NewParser()
	parser.SetLanguage(tsgolang.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	result := p.Extract(tree, src, "main.go", "repo")
	if len(result.Nodes) == 0 {
		t.Fatal("expected at least one extracted node")
	}

	var sawMain, sawHelper bool
	for _, n := range result.Nodes {
		if n.Kind == ir.KindFunction && n.FQN == "main" {
			sawMain = true
		}
		if n.Kind == ir.KindFunction && n.FQN == "helper" {
			sawHelper = true
		}
	}
	if !sawMain || !sawHelper {
		t.Fatalf("expected main and helper functions, got %+v", result.Nodes)
	}
}
