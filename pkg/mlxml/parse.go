package mlxml

import "github.com/shapestone/mlxml/internal/cursor"

// parser holds the mutable state threaded through one Parse call: the text
// cursor (C1) and the caller's opaque context, passed through to Dynamic
// allocators and OnParsed callbacks. It carries no other state — everything
// else (occurrence counters, cursor_child_index) lives on the call stack of
// parseContainer, so two concurrent parses against the same schema tree
// never share mutable state.
type parser struct {
	cur *cursor.Cursor
	ctx any
}

// Parse implements C7, the entry point: conceptually root is wrapped in a
// synthetic choice parent with MinOccur = MaxOccur = 1 (per spec.md §4.7),
// but since that wrapper never appears in the document as an actual tag
// pair, it is realized here as a direct scan for root's start tag rather
// than as one more call into the general container loop (which expects a
// real end tag to close on). Leading XML declarations and comments are
// skipped exactly as the container loop (C6) would skip them inside any
// element's body.
//
// parentTarget is the base address Relative destinations on root (and its
// descendants) resolve against; it may be nil. ctx is passed through to
// every Dynamic allocator and OnParsed callback reached during the parse.
func Parse(root ElementSchema, input []byte, parentTarget any, ctx any) error {
	p := &parser{cur: cursor.New(input), ctx: ctx}

	for {
		if !p.cur.SkipWhitespace() {
			return incompleteSourceErr(p.cur.Pos())
		}
		tokenStart := p.cur.Pos()
		if !p.cur.ConsumeByte('<') {
			return newParseError(ErrCodeInvalidStartToken, tokenStart, "expected '<' to begin the document")
		}

		switch p.cur.Peek() {
		case '?':
			if !p.cur.ScanToString("?>") {
				return incompleteSourceErr(p.cur.Pos())
			}
			continue
		case '!':
			if !p.cur.ScanToString("-->") {
				return incompleteSourceErr(p.cur.Pos())
			}
			continue
		}

		nameBytes, ok := p.cur.ScanElementTagEnd()
		if !ok {
			return incompleteSourceErr(p.cur.Pos())
		}
		name := string(nameBytes)
		if name != root.Name {
			return newParseError(ErrCodeElementNotFound, tokenStart, "expected root element <%s>, found <%s>", root.Name, name)
		}

		target, discard, err := resolveDestination(root.Destination, parentTarget, 0, ctx)
		if err != nil {
			return err
		}
		if discard {
			target = nil
		}
		if err := p.parseElementBody(&root, target); err != nil {
			return err
		}
		if root.OnParsed != nil {
			root.OnParsed(1, target, ctx)
		}
		break
	}

	return p.checkTrailingWhitespace()
}

// checkTrailingWhitespace enforces spec.md §4.7's "the document terminated
// cleanly (only whitespace may follow the root element's closing tag)".
func (p *parser) checkTrailingWhitespace() error {
	for !p.cur.AtEnd() {
		b := p.cur.Peek()
		if b != ' ' && b != '\t' && b != '\r' && b != '\n' {
			return newParseError(ErrCodeSyntax, p.cur.Pos(), "unexpected content after root element")
		}
		p.cur.ConsumeByte(b)
	}
	return nil
}
