package lang

import sitter "github.com/smacker/go-tree-sitter"

// SimpleVariableExtractor builds a VariableExtractor from a grammar's
// identifier node type and its assignment node type(s): every
// identifier that is the `targetField` child of an assignment node is
// a write, every other identifier under the given node is a read. This
// covers the common case well enough for def/use-driven passes (DFG,
// taint seeding); languages with destructuring or multi-assignment
// forms the common case doesn't cover can still supply their own
// VariableExtractor instead of this helper.
func SimpleVariableExtractor(identifierType string, assignmentTypes map[string]bool, targetField string) VariableExtractor {
	return func(node *sitter.Node, source []byte) (reads []string, writes []string) {
		writeNodes := make(map[*sitter.Node]bool)

		var collectWrites func(n *sitter.Node)
		collectWrites = func(n *sitter.Node) {
			if n == nil {
				return
			}
			if assignmentTypes[n.Type()] {
				if target := n.ChildByFieldName(targetField); target != nil {
					markIdentifiers(target, identifierType, writeNodes)
				}
			}
			for i := 0; i < int(n.ChildCount()); i++ {
				collectWrites(n.Child(i))
			}
		}
		collectWrites(node)

		var collectAll func(n *sitter.Node)
		collectAll = func(n *sitter.Node) {
			if n == nil {
				return
			}
			if n.Type() == identifierType {
				name := n.Content(source)
				if writeNodes[n] {
					writes = append(writes, name)
				} else {
					reads = append(reads, name)
				}
			}
			for i := 0; i < int(n.ChildCount()); i++ {
				collectAll(n.Child(i))
			}
		}
		collectAll(node)
		return reads, writes
	}
}

func markIdentifiers(n *sitter.Node, identifierType string, out map[*sitter.Node]bool) {
	if n == nil {
		return
	}
	if n.Type() == identifierType {
		out[n] = true
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		markIdentifiers(n.Child(i), identifierType, out)
	}
}
