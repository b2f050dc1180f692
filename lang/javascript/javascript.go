// Package javascript registers the JavaScript/TypeScript tree-sitter
// grammar as a lang.Plugin.
package javascript

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/shivasurya/code-pathfinder/engine/ir"
	"github.com/shivasurya/code-pathfinder/engine/lang"
)

const languageID = "javascript"

var table = lang.Table{
	Entities: map[string]ir.Kind{
		"program":              ir.KindModule,
		"class_declaration":    ir.KindClass,
		"function_declaration": ir.KindFunction,
		"method_definition":    ir.KindMethod,
		"variable_declarator":  ir.KindVariable,
		"formal_parameters":    ir.KindParameter,
	},
	NameField: map[string]string{
		"variable_declarator": "name",
	},
	CallTypes:         map[string]bool{"call_expression": true},
	CallFunctionField: "function",
	ImportTypes:       map[string]bool{"import_statement": true},
}

type plugin struct{}

func (plugin) GrammarHandle() *sitter.Language { return javascript.GetLanguage() }
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
	lang.Register(plugin{}, ".js", ".jsx", ".ts", ".tsx")
}
