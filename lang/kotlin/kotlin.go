// Package kotlin registers the Kotlin tree-sitter grammar as a lang.Plugin.
package kotlin

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/kotlin"
	"github.com/shivasurya/code-pathfinder/engine/ir"
	"github.com/shivasurya/code-pathfinder/engine/lang"
)

const languageID = "kotlin"

var table = lang.Table{
	Entities: map[string]ir.Kind{
		"class_declaration":    ir.KindClass,
		"function_declaration": ir.KindFunction,
		"property_declaration": ir.KindField,
		"parameter":            ir.KindParameter,
	},
	CallTypes:         map[string]bool{"call_expression": true},
	CallFunctionField: "function",
	ImportTypes:       map[string]bool{"import_header": true},
}

type plugin struct{}

func (plugin) GrammarHandle() *sitter.Language { return kotlin.GetLanguage() }
func (plugin) LanguageID() string              { return languageID }

func (plugin) Extract(tree *sitter.Tree, source []byte, file, repoID string) lang.ExtractResult {
	return lang.Walk(tree, source, file, repoID, languageID, table)
}

func (plugin) VariableExtractor() lang.VariableExtractor {
	return lang.SimpleVariableExtractor("simple_identifier", map[string]bool{
		"assignment": true,
	}, "left")
}

func init() {
	lang.Register(plugin{}, ".kt", ".kts")
}
