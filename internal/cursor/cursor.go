// Package cursor implements the lexical primitives shared by the schema
// descent parser: a byte position over an in-memory XML buffer, with no
// knowledge of elements, attributes, or schemas.
//
// The Skip, Scan and Consume methods advance the cursor past whatever they
// scan and report whether they found the thing they were looking for before
// running off the end of the buffer; Peek and PeekString never advance. There is no implicit NUL terminator the way the C original
// (kiishor/miniML-Parser) used — Go slices already carry their own length,
// so "ran off the end" is just pos >= len(data).
package cursor

// Cursor is a single left-to-right position over an XML input buffer.
// It is not safe for concurrent use; each parse gets its own Cursor.
type Cursor struct {
	data []byte
	pos  int
}

// New wraps data in a Cursor starting at position 0.
func New(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Pos returns the current byte offset.
func (c *Cursor) Pos() int { return c.pos }

// Len returns the length of the underlying buffer.
func (c *Cursor) Len() int { return len(c.data) }

// AtEnd reports whether the cursor has consumed the whole buffer.
func (c *Cursor) AtEnd() bool { return c.pos >= len(c.data) }

// Byte returns the byte at the cursor, and false if the cursor is at the end.
func (c *Cursor) Byte() (byte, bool) {
	if c.pos >= len(c.data) {
		return 0, false
	}
	return c.data[c.pos], true
}

// Peek returns the byte at the cursor without advancing, or 0 at end of input.
func (c *Cursor) Peek() byte {
	if c.pos >= len(c.data) {
		return 0
	}
	return c.data[c.pos]
}

// PeekString reports whether s occurs at the cursor, without advancing.
func (c *Cursor) PeekString(s string) bool {
	if c.pos+len(s) > len(c.data) {
		return false
	}
	return string(c.data[c.pos:c.pos+len(s)]) == s
}

// Consume advances past s if it occurs at the cursor, reporting success.
func (c *Cursor) Consume(s string) bool {
	if !c.PeekString(s) {
		return false
	}
	c.pos += len(s)
	return true
}

// ConsumeByte advances past b if it is the byte at the cursor.
func (c *Cursor) ConsumeByte(b byte) bool {
	if c.pos >= len(c.data) || c.data[c.pos] != b {
		return false
	}
	c.pos++
	return true
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

// SkipWhitespace advances past ' ', '\t', '\r', '\n'. It reports false if the
// buffer is exhausted before a non-whitespace byte is found.
func (c *Cursor) SkipWhitespace() bool {
	for c.pos < len(c.data) {
		if !isSpace(c.data[c.pos]) {
			return true
		}
		c.pos++
	}
	return false
}

// ScanElementTagEnd advances until whitespace, '>' or '/', returning the
// slice consumed (the element or end-tag name) and false if the buffer runs
// out first.
func (c *Cursor) ScanElementTagEnd() ([]byte, bool) {
	start := c.pos
	for c.pos < len(c.data) {
		b := c.data[c.pos]
		if isSpace(b) || b == '>' || b == '/' {
			return c.data[start:c.pos], true
		}
		c.pos++
	}
	return nil, false
}

// ScanAttributeNameEnd advances until whitespace or '=', returning the
// attribute name slice and false if the buffer runs out first.
func (c *Cursor) ScanAttributeNameEnd() ([]byte, bool) {
	start := c.pos
	for c.pos < len(c.data) {
		b := c.data[c.pos]
		if isSpace(b) || b == '=' {
			return c.data[start:c.pos], true
		}
		c.pos++
	}
	return nil, false
}

// ScanTo advances until delim, returning the slice consumed (not including
// delim) and false if delim is never found. The cursor is left just past
// delim on success.
func (c *Cursor) ScanTo(delim byte) ([]byte, bool) {
	start := c.pos
	for c.pos < len(c.data) {
		if c.data[c.pos] == delim {
			slice := c.data[start:c.pos]
			c.pos++
			return slice, true
		}
		c.pos++
	}
	return nil, false
}

// ScanUntilByte advances until delim, returning the slice consumed without
// consuming delim itself (unlike ScanTo). Used for leaf-content scanning,
// where the caller still needs to see the '<' that follows.
func (c *Cursor) ScanUntilByte(delim byte) ([]byte, bool) {
	start := c.pos
	for c.pos < len(c.data) {
		if c.data[c.pos] == delim {
			return c.data[start:c.pos], true
		}
		c.pos++
	}
	return nil, false
}

// ScanToString advances until s occurs, leaving the cursor just past s. It
// reports false if s never occurs.
func (c *Cursor) ScanToString(s string) bool {
	for c.pos+len(s) <= len(c.data) {
		if string(c.data[c.pos:c.pos+len(s)]) == s {
			c.pos += len(s)
			return true
		}
		c.pos++
	}
	return false
}
