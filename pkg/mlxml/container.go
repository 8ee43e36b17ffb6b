package mlxml

// parseContainer implements C6: the body of an element whose Content is nil,
// grounded on original_source/src/parse_xml.c's parse_parent_element and
// validate_choice_order. On success the cursor has consumed the "</" that
// opens the matching end tag; the caller (parseElementBody, C5) reads and
// checks the remainder of that end tag.
func (p *parser) parseContainer(parent *ElementSchema, parentBase any) error {
	occurrence := make([]uint32, len(parent.Children))
	cursorChildIndex := 0

	for {
		if !p.cur.SkipWhitespace() {
			return incompleteSourceErr(p.cur.Pos())
		}
		tokenStart := p.cur.Pos()
		if !p.cur.ConsumeByte('<') {
			return newParseError(ErrCodeInvalidStartToken, tokenStart, "expected '<' to begin a construct")
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
		case '/':
			p.cur.ConsumeByte('/')
			for i := range parent.Children {
				if occurrence[i] < parent.Children[i].MinOccur {
					return newParseError(ErrCodeElementMinOccurrence, tokenStart,
						"<%s> requires at least %d occurrence(s) of <%s>, got %d",
						parent.Name, parent.Children[i].MinOccur, parent.Children[i].Name, occurrence[i])
				}
			}
			return nil
		}

		nameBytes, ok := p.cur.ScanElementTagEnd()
		if !ok {
			return incompleteSourceErr(p.cur.Pos())
		}
		name := string(nameBytes)

		k, err := matchChild(parent, occurrence, &cursorChildIndex, name, tokenStart)
		if err != nil {
			return err
		}
		child := &parent.Children[k]

		target, discard, err := resolveDestination(child.Destination, parentBase, occurrence[k], p.ctx)
		if err != nil {
			return err
		}
		if discard {
			target = nil
		}

		occurrence[k]++
		if occurrence[k] > child.MaxOccur {
			return newParseError(ErrCodeElementMaxOccurrence, tokenStart,
				"<%s> occurs more than %d time(s) under <%s>", name, child.MaxOccur, parent.Name)
		}
		if parent.ChildOrder == Choice {
			distinct := 0
			for _, o := range occurrence {
				if o > 0 {
					distinct++
				}
			}
			if distinct > 1 {
				return newParseError(ErrCodeChoiceElement, tokenStart,
					"choice element <%s> received more than one distinct child kind", parent.Name)
			}
		}

		if err := p.parseElementBody(child, target); err != nil {
			return err
		}
		if child.OnParsed != nil {
			child.OnParsed(occurrence[k], target, p.ctx)
		}
	}
}

// matchChild implements the ordering rules of spec.md §4.6 step 4.
func matchChild(parent *ElementSchema, occurrence []uint32, cursorChildIndex *int, name string, pos int) (int, error) {
	switch parent.ChildOrder {
	case Sequence:
		idx := *cursorChildIndex
		for idx < len(parent.Children) {
			if parent.Children[idx].Name == name {
				*cursorChildIndex = idx
				return idx, nil
			}
			if occurrence[idx] < parent.Children[idx].MinOccur {
				return 0, newParseError(ErrCodeElementMinOccurrence, pos,
					"<%s> requires at least %d occurrence(s) of <%s>, got %d",
					parent.Name, parent.Children[idx].MinOccur, parent.Children[idx].Name, occurrence[idx])
			}
			idx++
		}
		*cursorChildIndex = idx
		return 0, newParseError(ErrCodeElementNotFound, pos, "<%s> is not a permitted child of <%s>", name, parent.Name)
	default: // Choice, All
		*cursorChildIndex = 0
		for i := range parent.Children {
			if parent.Children[i].Name == name {
				return i, nil
			}
		}
		return 0, newParseError(ErrCodeElementNotFound, pos, "<%s> is not a permitted child of <%s>", name, parent.Name)
	}
}
