// Package golang registers the Go tree-sitter grammar as a lang.Plugin.
package golang

import (
	sitter "github.com/smacker/go-tree-sitter"
	tsgolang "github.com/smacker/go-tree-sitter/golang"
	"github.com/shivasurya/code-pathfinder/engine/ir"
	"github.com/shivasurya/code-pathfinder/engine/lang"
)

const languageID = "go"

var table = lang.Table{
	Entities: map[string]ir.Kind{
		"package_clause":      ir.KindModule,
		"function_declaration": ir.KindFunction,
		"method_declaration":  ir.KindMethod,
		"type_spec":           ir.KindStruct,
		"interface_type":       ir.KindInterface,
		"field_declaration":   ir.KindField,
		"var_spec":            ir.KindVariable,
		"const_spec":          ir.KindVariable,
		"parameter_declaration": ir.KindParameter,
	},
	CallTypes:         map[string]bool{"call_expression": true},
	CallFunctionField: "function",
	ImportTypes:       map[string]bool{"import_spec": true},
}

type plugin struct{}

func (plugin) GrammarHandle() *sitter.Language { return tsgolang.GetLanguage() }
func (plugin) LanguageID() string              { return languageID }

func (plugin) Extract(tree *sitter.Tree, source []byte, file, repoID string) lang.ExtractResult {
	return lang.Walk(tree, source, file, repoID, languageID, table)
}

func (plugin) VariableExtractor() lang.VariableExtractor {
	return lang.SimpleVariableExtractor("identifier", map[string]bool{
		"short_var_declaration": true,
		"assignment_statement":  true,
	}, "left")
}

func init() {
	lang.Register(plugin{}, ".go")
}
