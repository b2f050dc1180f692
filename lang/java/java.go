// Package java registers the Java tree-sitter grammar as a lang.Plugin.
package java

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/shivasurya/code-pathfinder/engine/ir"
	"github.com/shivasurya/code-pathfinder/engine/lang"
)

const languageID = "java"

var table = lang.Table{
	Entities: map[string]ir.Kind{
		"class_declaration":     ir.KindClass,
		"interface_declaration": ir.KindInterface,
		"method_declaration":    ir.KindMethod,
		"field_declaration":     ir.KindField,
		"formal_parameter":      ir.KindParameter,
	},
	CallTypes:         map[string]bool{"method_invocation": true},
	CallFunctionField: "name",
	ImportTypes:       map[string]bool{"import_declaration": true},
}

type plugin struct{}

func (plugin) GrammarHandle() *sitter.Language { return java.GetLanguage() }
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
	lang.Register(plugin{}, ".java")
}
