// Package mlxml implements a schema-driven, single-pass XML parser: given an
// immutable tree of ElementSchema/AttributeSchema nodes built ahead of time
// by the caller, Parse walks a well-formed XML document exactly once,
// validating structure (occurrence bounds, sequence/choice/all ordering,
// required attributes, end-tag matching) and decoding leaf content straight
// into caller-chosen destinations. No DOM is ever materialized.
package mlxml

import "github.com/shapestone/mlxml/internal/content"

// ChildOrder selects how a container element matches its children against
// its schema.
type ChildOrder int

const (
	// Sequence requires children in the declared left-to-right order.
	Sequence ChildOrder = iota
	// Choice permits at most one distinct child kind, repeated up to that
	// child's own MaxOccur.
	Choice
	// All permits any order and any count, bounded only by each child's own
	// Min/MaxOccur.
	All
)

// AttributeUse constrains whether an attribute may, must, or must not appear.
type AttributeUse int

const (
	Optional AttributeUse = iota
	Required
	Prohibited
)

// ContentKind is the decoding rule for an element or attribute's leaf text.
// A nil ContentKind on an ElementSchema means the element has children, not
// text (spec's "None" variant).
type ContentKind = content.Kind

// Concrete content kinds, re-exported from internal/content so callers never
// need to import that package directly.
type (
	StringView   = content.StringView
	StringInline = content.StringInline
	StringOwned  = content.StringOwned
	Unsigned     = content.Unsigned
	Signed       = content.Signed
	Decimal      = content.Decimal
	Double       = content.Double
	Boolean      = content.Boolean
	EnumString   = content.EnumString
	EnumUnsigned = content.EnumUnsigned
	DateKind     = content.DateKind
	TimeKind     = content.TimeKind
	DateTimeKind = content.DateTimeKind
	DurationKind = content.DurationKind
)

// Value types written through destinations by the corresponding content kind.
type (
	InlineString = content.InlineString
	Date         = content.Date
	Time         = content.Time
	DateTime     = content.DateTime
	Duration     = content.Duration
)

// AttributeSchema describes one expected attribute on an element's start tag.
type AttributeSchema struct {
	Name        string
	Destination Destination
	Content     ContentKind
	Use         AttributeUse
}

// ElementSchema describes one expected XML element, along with its expected
// attributes and (mutually exclusive) children or leaf content.
//
// At most one of Content or Children may be non-empty; populating both is a
// schema-construction bug, not something callers can trigger via input, and
// is reported as ErrContent when detected during parsing of an otherwise
// empty element.
type ElementSchema struct {
	Name        string
	MinOccur    uint32
	MaxOccur    uint32
	Destination Destination
	Content     ContentKind
	Attributes  []AttributeSchema
	ChildOrder  ChildOrder
	Children    []ElementSchema

	// OnParsed, if set, runs after this element's subtree has been fully
	// parsed. occurrence is the 1-based count of this child slot so far;
	// target is the destination this occurrence was written to.
	OnParsed func(occurrence uint32, target any, ctx any)
}
