package flow

import "fmt"

// CFGEdgeKind classifies a control-flow edge between two basic blocks.
type CFGEdgeKind string

const (
	CFGSequential CFGEdgeKind = "Unconditional"
	CFGTrue       CFGEdgeKind = "True"
	CFGFalse      CFGEdgeKind = "False"
	CFGLoopBack   CFGEdgeKind = "LoopBack"
	CFGLoopExit   CFGEdgeKind = "LoopExit"
	CFGException  CFGEdgeKind = "Exception"
	CFGFinally    CFGEdgeKind = "Finally"
)

// CFGEdge is a directed, typed edge between two BFG blocks.
type CFGEdge struct {
	SourceBlockID string
	TargetBlockID string
	Kind          CFGEdgeKind
}

// ControlFlowGraph is the BFG plus its typed control-flow edges.
type ControlFlowGraph struct {
	FunctionID   string
	EntryBlockID string
	ExitBlockID  string
	Edges        []CFGEdge

	successors map[string][]CFGEdge
}

// Successors returns the outgoing edges of a block.
func (c *ControlFlowGraph) Successors(blockID string) []CFGEdge { return c.successors[blockID] }

type loopFrame struct {
	headerID string
	exitID   string
}

// pendingEdge is a control-flow edge whose source block is already fixed
// but whose target isn't known yet — the exit of an if/else branch, for
// instance, has nowhere to go until the next statement materializes its
// own block. Carrying it as pending instead of wiring it through a
// freshly allocated merge block avoids synthesizing an empty block that
// nothing but that edge ever touches.
type pendingEdge struct {
	from string
	kind CFGEdgeKind
}

// builder constructs a BasicFlowGraph and its ControlFlowGraph in one
// recursive walk: each statement handler both creates blocks (BFG) and
// wires the control-flow edges that construct implies (CFG).
type builder struct {
	functionID string
	bfg        *BasicFlowGraph
	cfg        *ControlFlowGraph
	seq        int
	loops      []loopFrame
}

// Build walks a function's normalized statement list once and returns
// both the basic flow graph and its control flow graph.
func Build(functionID string, statements []*Statement) (*BasicFlowGraph, *ControlFlowGraph) {
	b := &builder{
		functionID: functionID,
		bfg:        &BasicFlowGraph{FunctionID: functionID},
		cfg: &ControlFlowGraph{
			FunctionID: functionID,
			successors: make(map[string][]CFGEdge),
		},
	}

	entry := b.newBlock(BlockEntry)
	b.bfg.EntryBlockID = entry.ID
	b.cfg.EntryBlockID = entry.ID

	exit := &Block{ID: functionID + ":exit", Kind: BlockExit, FunctionID: functionID}

	last := b.walk(statements, entry)

	b.bfg.Blocks = append(b.bfg.Blocks, exit)
	b.bfg.ExitBlockID = exit.ID
	b.cfg.ExitBlockID = exit.ID

	if last != nil && !b.terminal(last) {
		b.edge(last.ID, exit.ID, CFGSequential)
	}

	return b.bfg, b.cfg
}

func (b *builder) terminal(blk *Block) bool {
	return blk.Kind == BlockReturn || blk.Kind == BlockRaise
}

func (b *builder) newBlock(kind BlockKind) *Block {
	b.seq++
	blk := &Block{ID: fmt.Sprintf("%s:b%d", b.functionID, b.seq), Kind: kind, FunctionID: b.functionID}
	b.bfg.Blocks = append(b.bfg.Blocks, blk)
	return blk
}

func (b *builder) edge(from, to string, kind CFGEdgeKind) {
	e := CFGEdge{SourceBlockID: from, TargetBlockID: to, Kind: kind}
	b.cfg.Edges = append(b.cfg.Edges, e)
	b.cfg.successors[from] = append(b.cfg.successors[from], e)
}

// walk appends statements to/after `current`, emitting typed CFG edges,
// and returns the block execution falls through to afterward (nil if
// every path out of this statement list terminates).
//
// An if/else's branch exits can't always be wired to a concrete
// successor right away — the next statement might be a plain one (which
// needs a real block to append to) or a construct that allocates its own
// entry block (a loop header, a return, another condition). Rather than
// always synthesizing an intermediate merge block and sometimes leaving
// it with nothing but a vacuous pass-through edge, branch exits are kept
// as `pending` until something that actually needs a target shows up:
// `settle` wires them (and/or `current`) into that target in one step.
func (b *builder) walk(statements []*Statement, current *Block) *Block {
	var pending []pendingEdge

	settle := func(targetID string) {
		if current != nil {
			b.edge(current.ID, targetID, CFGSequential)
		}
		for _, p := range pending {
			b.edge(p.from, targetID, p.kind)
		}
		current = nil
		pending = nil
	}

	for _, stmt := range statements {
		switch stmt.Type {
		case StatementIf:
			cond := b.newBlock(BlockCondition)
			cond.Condition = fmt.Sprint(stmt.Uses)
			recordDefUse(cond, stmt)
			settle(cond.ID)

			thenEntry := b.newBlock(BlockStatement)
			b.edge(cond.ID, thenEntry.ID, CFGTrue)
			thenExit := b.walk(stmt.Nested, thenEntry)
			if thenExit != nil && !b.terminal(thenExit) {
				pending = append(pending, pendingEdge{thenExit.ID, CFGSequential})
			}

			if len(stmt.ElseBranch) > 0 {
				elseEntry := b.newBlock(BlockStatement)
				b.edge(cond.ID, elseEntry.ID, CFGFalse)
				elseExit := b.walk(stmt.ElseBranch, elseEntry)
				if elseExit != nil && !b.terminal(elseExit) {
					pending = append(pending, pendingEdge{elseExit.ID, CFGSequential})
				}
			} else {
				pending = append(pending, pendingEdge{cond.ID, CFGFalse})
			}

		case StatementFor, StatementWhile:
			header := b.newBlock(BlockLoopHeader)
			header.Condition = fmt.Sprint(stmt.Uses)
			settle(header.ID)

			after := b.newBlock(BlockStatement)
			b.loops = append(b.loops, loopFrame{headerID: header.ID, exitID: after.ID})

			bodyEntry := b.newBlock(BlockStatement)
			b.edge(header.ID, bodyEntry.ID, CFGSequential)
			bodyExit := b.walk(stmt.Nested, bodyEntry)
			if bodyExit != nil && !b.terminal(bodyExit) {
				b.edge(bodyExit.ID, header.ID, CFGLoopBack)
			}
			b.edge(header.ID, after.ID, CFGLoopExit)

			b.loops = b.loops[:len(b.loops)-1]
			current = after

		case StatementTry:
			tryEntry := b.newBlock(BlockStatement)
			settle(tryEntry.ID)
			tryExit := b.walk(stmt.Nested, tryEntry)

			finallyBlock := b.newBlock(BlockStatement)

			if tryExit != nil && !b.terminal(tryExit) {
				b.edge(tryExit.ID, finallyBlock.ID, CFGFinally)
			}
			b.edge(tryEntry.ID, finallyBlock.ID, CFGException)

			if len(stmt.ElseBranch) > 0 {
				handlerEntry := b.newBlock(BlockStatement)
				b.edge(tryEntry.ID, handlerEntry.ID, CFGException)
				handlerExit := b.walk(stmt.ElseBranch, handlerEntry)
				if handlerExit != nil && !b.terminal(handlerExit) {
					b.edge(handlerExit.ID, finallyBlock.ID, CFGFinally)
				}
			}

			current = finallyBlock

		case StatementReturn:
			ret := b.newBlock(BlockReturn)
			recordDefUse(ret, stmt)
			settle(ret.ID)
			b.edge(ret.ID, b.functionID+":exit", CFGSequential)
			return ret

		case StatementRaise:
			raise := b.newBlock(BlockRaise)
			recordDefUse(raise, stmt)
			settle(raise.ID)
			b.edge(raise.ID, b.functionID+":exit", CFGSequential)
			return raise

		case StatementYield:
			y := b.newBlock(BlockYield)
			recordDefUse(y, stmt)
			settle(y.ID)
			next := b.newBlock(BlockStatement)
			b.edge(y.ID, next.ID, CFGSequential)
			current = next

		case StatementContinue:
			cont := b.newBlock(BlockLoopContinue)
			settle(cont.ID)
			if len(b.loops) > 0 {
				b.edge(cont.ID, b.loops[len(b.loops)-1].headerID, CFGLoopBack)
			}
			return nil

		case StatementBreak:
			brk := b.newBlock(BlockLoopExit)
			settle(brk.ID)
			if len(b.loops) > 0 {
				b.edge(brk.ID, b.loops[len(b.loops)-1].exitID, CFGLoopExit)
			}
			return nil

		default:
			if current == nil {
				current = b.newBlock(BlockStatement)
				for _, p := range pending {
					b.edge(p.from, current.ID, p.kind)
				}
				pending = nil
			}
			current.Statements = append(current.Statements, stmt)
			current.StatementCount++
			recordDefUse(current, stmt)
		}
	}

	if current == nil && len(pending) > 0 {
		merge := b.newBlock(BlockStatement)
		for _, p := range pending {
			b.edge(p.from, merge.ID, p.kind)
		}
		current = merge
	}

	return current
}
