// Package python registers the Python tree-sitter grammar as a lang.Plugin.
package python

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/shivasurya/code-pathfinder/engine/ir"
	"github.com/shivasurya/code-pathfinder/engine/lang"
)

const languageID = "python"

var table = lang.Table{
	Entities: map[string]ir.Kind{
		"module":              ir.KindModule,
		"class_definition":    ir.KindClass,
		"function_definition": ir.KindFunction,
		"parameters":          ir.KindParameter,
	},
	CallTypes:         map[string]bool{"call": true},
	CallFunctionField: "function",
	ImportTypes: map[string]bool{
		"import_statement":      true,
		"import_from_statement": true,
	},
}

type plugin struct{}

func (plugin) GrammarHandle() *sitter.Language { return python.GetLanguage() }
func (plugin) LanguageID() string              { return languageID }

func (plugin) Extract(tree *sitter.Tree, source []byte, file, repoID string) lang.ExtractResult {
	return lang.Walk(tree, source, file, repoID, languageID, table)
}

func (plugin) VariableExtractor() lang.VariableExtractor {
	return lang.SimpleVariableExtractor("identifier", map[string]bool{
		"assignment": true,
	}, "left")
}

func init() {
	lang.Register(plugin{}, ".py")
}
