// Package rust registers the Rust tree-sitter grammar as a lang.Plugin.
package rust

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/shivasurya/code-pathfinder/engine/ir"
	"github.com/shivasurya/code-pathfinder/engine/lang"
)

const languageID = "rust"

var table = lang.Table{
	Entities: map[string]ir.Kind{
		"mod_item":        ir.KindModule,
		"struct_item":     ir.KindStruct,
		"trait_item":      ir.KindInterface,
		"impl_item":       ir.KindClass,
		"function_item":   ir.KindFunction,
		"parameter":       ir.KindParameter,
	},
	NameField: map[string]string{
		"impl_item": "type",
	},
	CallTypes:         map[string]bool{"call_expression": true},
	CallFunctionField: "function",
	ImportTypes:       map[string]bool{"use_declaration": true},
}

type plugin struct{}

func (plugin) GrammarHandle() *sitter.Language { return rust.GetLanguage() }
func (plugin) LanguageID() string              { return languageID }

func (plugin) Extract(tree *sitter.Tree, source []byte, file, repoID string) lang.ExtractResult {
	return lang.Walk(tree, source, file, repoID, languageID, table)
}

func (plugin) VariableExtractor() lang.VariableExtractor {
	return lang.SimpleVariableExtractor("identifier", map[string]bool{
		"assignment_expression": true,
	}, "left")
}

func init() {
	lang.Register(plugin{}, ".rs")
}
