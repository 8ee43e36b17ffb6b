package mlxml

import "github.com/shapestone/mlxml/internal/content"

// parseAttributes implements C4: the `name="value"` loop inside a start tag,
// grounded on original_source/src/parse_xml.c's parse_attribute and the
// attribute loop inside parse_element. The cursor is left at the byte that
// terminates the loop ('/' or '>'); it is not consumed here.
func (p *parser) parseAttributes(schema *ElementSchema, elementTarget any) error {
	seen := make([]bool, len(schema.Attributes))

	for {
		if !p.cur.SkipWhitespace() {
			return incompleteSourceErr(p.cur.Pos())
		}
		switch p.cur.Peek() {
		case '/', '>':
			return p.validateAttributes(schema, seen)
		}

		nameStart := p.cur.Pos()
		nameBytes, ok := p.cur.ScanAttributeNameEnd()
		if !ok {
			return incompleteSourceErr(p.cur.Pos())
		}
		name := string(nameBytes)

		idx := -1
		for i, a := range schema.Attributes {
			if a.Name == name {
				idx = i
				break
			}
		}
		if idx == -1 {
			return newParseError(ErrCodeAttributeNotFound, nameStart, "unknown attribute %q", name)
		}
		attr := schema.Attributes[idx]
		if attr.Use == Prohibited {
			return newParseError(ErrCodeAttributeNotFound, nameStart, "attribute %q is prohibited", name)
		}
		if seen[idx] {
			return newParseError(ErrCodeDuplicateAttribute, nameStart, "duplicate attribute %q", name)
		}

		if !p.cur.SkipWhitespace() {
			return incompleteSourceErr(p.cur.Pos())
		}
		if !p.cur.ConsumeByte('=') {
			return newParseError(ErrCodeSyntax, p.cur.Pos(), "expected '=' after attribute name %q", name)
		}
		if !p.cur.SkipWhitespace() {
			return incompleteSourceErr(p.cur.Pos())
		}
		if !p.cur.ConsumeByte('"') {
			return newParseError(ErrCodeSyntax, p.cur.Pos(), "expected opening '\"' for attribute %q value", name)
		}
		valuePos := p.cur.Pos()
		value, ok := p.cur.ScanTo('"')
		if !ok {
			return incompleteSourceErr(p.cur.Pos())
		}

		target, discard, err := resolveDestination(attr.Destination, elementTarget, 0, p.ctx)
		if err != nil {
			return err
		}
		if discard {
			target = nil
		}
		if attr.Content == nil {
			return newParseError(ErrCodeContentUnsupported, valuePos, "attribute %q has no declared content kind", name)
		}
		if err := content.Extract(attr.Content, target, value); err != nil {
			return wrapContentErr(err, valuePos)
		}

		seen[idx] = true
	}
}

// validateAttributes reports AttributeNotFound if any required attribute was
// never seen, per spec.md §4.4's closing step.
func (p *parser) validateAttributes(schema *ElementSchema, seen []bool) error {
	for i, a := range schema.Attributes {
		if a.Use == Required && !seen[i] {
			return newParseError(ErrCodeAttributeNotFound, p.cur.Pos(), "missing required attribute %q on <%s>", a.Name, schema.Name)
		}
	}
	return nil
}
