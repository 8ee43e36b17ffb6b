package mlxml

import "github.com/shapestone/mlxml/internal/content"

// parseElementBody implements C5, grounded on
// original_source/src/parse_xml.c's parse_element, validate_element and
// validate_empty_element. It is entered with the element's name already
// consumed by the caller (the container loop, C6, or the driver for the
// root element); target is the destination already resolved for this
// occurrence.
func (p *parser) parseElementBody(schema *ElementSchema, target any) error {
	if err := p.parseAttributes(schema, target); err != nil {
		return err
	}

	if p.cur.ConsumeByte('/') {
		if !p.cur.ConsumeByte('>') {
			return newParseError(ErrCodeSyntax, p.cur.Pos(), "expected '>' to close self-closing <%s/>", schema.Name)
		}
		return p.validateEmptyElement(schema)
	}
	if !p.cur.ConsumeByte('>') {
		return newParseError(ErrCodeSyntax, p.cur.Pos(), "expected '>' to close start tag <%s>", schema.Name)
	}

	switch {
	case len(schema.Children) > 0:
		if err := p.parseContainer(schema, target); err != nil {
			return err
		}
	case schema.Content != nil:
		textStart := p.cur.Pos()
		text, ok := p.cur.ScanUntilByte('<')
		if !ok {
			return incompleteSourceErr(p.cur.Pos())
		}
		if err := content.Extract(schema.Content, target, text); err != nil {
			return wrapContentErr(err, textStart)
		}
		if !p.cur.ConsumeByte('<') {
			return newParseError(ErrCodeInvalidStartToken, p.cur.Pos(), "expected '<' to begin end tag for <%s>", schema.Name)
		}
		if !p.cur.ConsumeByte('/') {
			return newParseError(ErrCodeEndTagNotFound, p.cur.Pos(), "expected end tag for <%s>", schema.Name)
		}
	default:
		// No children and no content: the only legal body is whitespace up
		// to the end tag.
		if !p.cur.SkipWhitespace() {
			return incompleteSourceErr(p.cur.Pos())
		}
		if !p.cur.ConsumeByte('<') {
			return newParseError(ErrCodeInvalidStartToken, p.cur.Pos(), "expected '<' to begin end tag for <%s>", schema.Name)
		}
		if !p.cur.ConsumeByte('/') {
			return newParseError(ErrCodeEndTagNotFound, p.cur.Pos(), "expected end tag for <%s>", schema.Name)
		}
	}

	return p.matchEndTag(schema)
}

// validateEmptyElement implements spec.md §4.5's ValidateEmpty: a
// self-closing element is only legal when no declared child is mandatory and
// the element has no leaf content of its own.
func (p *parser) validateEmptyElement(schema *ElementSchema) error {
	if schema.Content != nil {
		return newParseError(ErrCodeContent, p.cur.Pos(), "<%s/> self-closed but declares content", schema.Name)
	}
	for _, child := range schema.Children {
		if child.MinOccur > 0 {
			return newParseError(ErrCodeElementMinOccurrence, p.cur.Pos(),
				"<%s/> self-closed but requires at least %d occurrence(s) of <%s>",
				schema.Name, child.MinOccur, child.Name)
		}
	}
	return nil
}

// matchEndTag implements spec.md §4.5's MatchEndTag. It is entered with "</"
// already consumed.
func (p *parser) matchEndTag(schema *ElementSchema) error {
	namePos := p.cur.Pos()
	nameBytes, ok := p.cur.ScanElementTagEnd()
	if !ok {
		return incompleteSourceErr(p.cur.Pos())
	}
	if string(nameBytes) != schema.Name {
		return newParseError(ErrCodeEndTagNotFound, namePos, "end tag </%s> does not match start tag <%s>", nameBytes, schema.Name)
	}
	if !p.cur.SkipWhitespace() {
		return incompleteSourceErr(p.cur.Pos())
	}
	if !p.cur.ConsumeByte('>') {
		return newParseError(ErrCodeSyntax, p.cur.Pos(), "expected '>' to close end tag </%s>", schema.Name)
	}
	return nil
}
