// Copyright 2026 The Litepub Authors
// SPDX-License-Identifier: Apache-2.0

package doctree

import "fmt"

// DefaultMaxDepth bounds tree recursion. Real documents stay far below
// this; hitting the cap means a pathological or adversarial payload.
const DefaultMaxDepth = 100

// Position says whether a visited node sits in block or inline
// position.
type Position int

// Position values.
const (
	InBlock Position = iota
	InInline
)

// VisitContext is passed to the visit callback for every node.
type VisitContext struct {
	// SemanticID is the wrapper id the walk was started for, if any.
	SemanticID string
	// Position is the node's grammatical position.
	Position Position
	// Path locates the node, e.g. "blocks[2].c[4][0].c[1][3]".
	Path string
	// Depth is the recursion depth, starting at 0 for the roots.
	Depth int
}

// VisitFunc is called for every tagged node in pre-order. Returning an
// error aborts the walk.
type VisitFunc func(n Node, ctx VisitContext) error

// Walker traverses a document tree exhaustively. The dispatch is a
// single type switch over the closed node set; an unknown node type
// panics.
type Walker struct {
	// MaxDepth caps recursion; zero means DefaultMaxDepth.
	MaxDepth int
	// SemanticID is carried into every VisitContext.
	SemanticID string
	// Visit is called for every node.
	Visit VisitFunc
}

// Walk visits every node under blocks with the default depth cap.
func Walk(blocks []Block, visit VisitFunc) error {
	w := Walker{Visit: visit}
	return w.WalkBlocks(blocks, "blocks")
}

// WalkBlocks visits every node under blocks, with paths rooted at
// basePath.
func (w *Walker) WalkBlocks(blocks []Block, basePath string) error {
	for i, b := range blocks {
		if err := w.walkBlock(b, fmt.Sprintf("%s[%d]", basePath, i), 0); err != nil {
			return err
		}
	}
	return nil
}

func (w *Walker) maxDepth() int {
	if w.MaxDepth > 0 {
		return w.MaxDepth
	}
	return DefaultMaxDepth
}

func (w *Walker) checkDepth(depth int, path string) error {
	if depth > w.maxDepth() {
		return &ValidationError{
			Code:       "VAL_PANDOC_TOO_DEEP",
			Message:    fmt.Sprintf("tree nesting exceeds maximum depth %d", w.maxDepth()),
			SemanticID: w.SemanticID,
			Path:       path,
		}
	}
	return nil
}

func (w *Walker) visit(n Node, pos Position, path string, depth int) error {
	if w.Visit == nil {
		return nil
	}
	return w.Visit(n, VisitContext{
		SemanticID: w.SemanticID,
		Position:   pos,
		Path:       path,
		Depth:      depth,
	})
}

func (w *Walker) walkBlockList(blocks []Block, path string, depth int) error {
	for i, b := range blocks {
		if err := w.walkBlock(b, fmt.Sprintf("%s[%d]", path, i), depth); err != nil {
			return err
		}
	}
	return nil
}

func (w *Walker) walkInlineList(inlines []Inline, path string, depth int) error {
	for i, in := range inlines {
		if err := w.walkInline(in, fmt.Sprintf("%s[%d]", path, i), depth); err != nil {
			return err
		}
	}
	return nil
}

func (w *Walker) walkRows(rows []Row, path string, depth int) error {
	for i := range rows {
		if err := w.walkRow(&rows[i], fmt.Sprintf("%s[%d]", path, i), depth); err != nil {
			return err
		}
	}
	return nil
}

func (w *Walker) walkRow(r *Row, path string, depth int) error {
	if err := w.checkDepth(depth, path); err != nil {
		return err
	}
	if err := w.visit(r, InBlock, path, depth); err != nil {
		return err
	}
	for i := range r.Cells {
		cell := &r.Cells[i]
		cellPath := fmt.Sprintf("%s.c[1][%d]", path, i)
		if err := w.checkDepth(depth+1, cellPath); err != nil {
			return err
		}
		if err := w.visit(cell, InBlock, cellPath, depth+1); err != nil {
			return err
		}
		if err := w.walkBlockList(cell.Blocks, cellPath+".c[4]", depth+2); err != nil {
			return err
		}
	}
	return nil
}

func (w *Walker) walkBlock(b Block, path string, depth int) error {
	if err := w.checkDepth(depth, path); err != nil {
		return err
	}
	if err := w.visit(b, InBlock, path, depth); err != nil {
		return err
	}
	child := depth + 1
	switch n := b.(type) {
	case *Plain:
		return w.walkInlineList(n.Inlines, path+".c", child)
	case *Para:
		return w.walkInlineList(n.Inlines, path+".c", child)
	case *LineBlock:
		for i, line := range n.Lines {
			if err := w.walkInlineList(line, fmt.Sprintf("%s.c[%d]", path, i), child); err != nil {
				return err
			}
		}
		return nil
	case *CodeBlock, *RawBlock, *HorizontalRule:
		return nil
	case *BlockQuote:
		return w.walkBlockList(n.Blocks, path+".c", child)
	case *OrderedList:
		for i, item := range n.Items {
			if err := w.walkBlockList(item, fmt.Sprintf("%s.c[1][%d]", path, i), child); err != nil {
				return err
			}
		}
		return nil
	case *BulletList:
		for i, item := range n.Items {
			if err := w.walkBlockList(item, fmt.Sprintf("%s.c[%d]", path, i), child); err != nil {
				return err
			}
		}
		return nil
	case *DefinitionList:
		for i, item := range n.Items {
			if err := w.walkInlineList(item.Term, fmt.Sprintf("%s.c[%d][0]", path, i), child); err != nil {
				return err
			}
			for j, def := range item.Definitions {
				if err := w.walkBlockList(def, fmt.Sprintf("%s.c[%d][1][%d]", path, i, j), child); err != nil {
					return err
				}
			}
		}
		return nil
	case *Header:
		return w.walkInlineList(n.Inlines, path+".c[2]", child)
	case *Table:
		if err := w.walkInlineList(n.Caption.Short, path+".c[1][0]", child); err != nil {
			return err
		}
		if err := w.walkBlockList(n.Caption.Blocks, path+".c[1][1]", child); err != nil {
			return err
		}
		headPath := path + ".c[3]"
		if err := w.visit(&n.Head, InBlock, headPath, child); err != nil {
			return err
		}
		if err := w.walkRows(n.Head.Rows, headPath+".c[1]", child+1); err != nil {
			return err
		}
		for i := range n.Bodies {
			body := &n.Bodies[i]
			bodyPath := fmt.Sprintf("%s.c[4][%d]", path, i)
			if err := w.visit(body, InBlock, bodyPath, child); err != nil {
				return err
			}
			if err := w.walkRows(body.HeadRows, bodyPath+".c[2]", child+1); err != nil {
				return err
			}
			if err := w.walkRows(body.Rows, bodyPath+".c[3]", child+1); err != nil {
				return err
			}
		}
		footPath := path + ".c[5]"
		if err := w.visit(&n.Foot, InBlock, footPath, child); err != nil {
			return err
		}
		return w.walkRows(n.Foot.Rows, footPath+".c[1]", child+1)
	case *Figure:
		if err := w.walkInlineList(n.Caption.Short, path+".c[1][0]", child); err != nil {
			return err
		}
		if err := w.walkBlockList(n.Caption.Blocks, path+".c[1][1]", child); err != nil {
			return err
		}
		return w.walkBlockList(n.Blocks, path+".c[2]", child)
	case *Div:
		return w.walkBlockList(n.Blocks, path+".c[1]", child)
	default:
		panic(fmt.Sprintf("doctree: unhandled block type %T", b))
	}
}

func (w *Walker) walkInline(in Inline, path string, depth int) error {
	if err := w.checkDepth(depth, path); err != nil {
		return err
	}
	if err := w.visit(in, InInline, path, depth); err != nil {
		return err
	}
	child := depth + 1
	switch n := in.(type) {
	case *Str, *Code, *Space, *SoftBreak, *LineBreak, *Math, *RawInline:
		return nil
	case *Emph:
		return w.walkInlineList(n.Inlines, path+".c", child)
	case *Underline:
		return w.walkInlineList(n.Inlines, path+".c", child)
	case *Strong:
		return w.walkInlineList(n.Inlines, path+".c", child)
	case *Strikeout:
		return w.walkInlineList(n.Inlines, path+".c", child)
	case *Superscript:
		return w.walkInlineList(n.Inlines, path+".c", child)
	case *Subscript:
		return w.walkInlineList(n.Inlines, path+".c", child)
	case *SmallCaps:
		return w.walkInlineList(n.Inlines, path+".c", child)
	case *Quoted:
		return w.walkInlineList(n.Inlines, path+".c[1]", child)
	case *Cite:
		for i, c := range n.Citations {
			if err := w.walkInlineList(c.Prefix, fmt.Sprintf("%s.c[0][%d].prefix", path, i), child); err != nil {
				return err
			}
			if err := w.walkInlineList(c.Suffix, fmt.Sprintf("%s.c[0][%d].suffix", path, i), child); err != nil {
				return err
			}
		}
		return w.walkInlineList(n.Inlines, path+".c[1]", child)
	case *Link:
		return w.walkInlineList(n.Inlines, path+".c[1]", child)
	case *Image:
		return w.walkInlineList(n.Inlines, path+".c[1]", child)
	case *Note:
		return w.walkBlockList(n.Blocks, path+".c", child)
	case *Span:
		return w.walkInlineList(n.Inlines, path+".c[1]", child)
	default:
		panic(fmt.Sprintf("doctree: unhandled inline type %T", in))
	}
}
