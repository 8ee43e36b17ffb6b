// Package content implements the leaf-content extractor (component C3):
// decoding a raw XML text slice into a typed Go value per a declared
// ContentKind and facet, and writing it through a caller-supplied pointer.
//
// This mirrors kiishor/miniML-Parser's xml_content.c extract_content(), one
// kind at a time, but writes through a typed Go pointer (*uint32, *string,
// *Date, ...) instead of a void* cast, and returns a Go error instead of an
// xml_parse_result_t code.
//
// Numeric kinds (Unsigned, Signed, Decimal, Double, EnumUnsigned) require the
// whole slice to be a number: trailing bytes after the digits are rejected
// with ErrContent.
package content

import (
	"errors"
	"fmt"
	"strconv"
)

// Sentinel errors returned by Extract. Callers compare with errors.Is.
var (
	ErrMinLength         = errors.New("content: length below minLength facet")
	ErrMaxLength         = errors.New("content: length above maxLength facet")
	ErrMinValue          = errors.New("content: value below minValue facet")
	ErrMaxValue          = errors.New("content: value above maxValue facet")
	ErrEnumNotFound      = errors.New("content: value not in enumeration")
	ErrContent           = errors.New("content: malformed content for declared kind")
	ErrDurationSyntax    = errors.New("content: malformed xs:duration")
	ErrDateTimeSyntax    = errors.New("content: malformed date/time content")
	ErrContentUnsupported = errors.New("content: unsupported content kind")
	ErrAllocationFailure = errors.New("content: failed to allocate owned string")
)

// Kind is implemented by every concrete content-kind descriptor. It is a
// closed set (sealed via the unexported method) matching spec.md's
// ContentKind tagged variant.
type Kind interface {
	isKind()
}

// StringView decodes to a zero-copy slice of the original input buffer.
// The caller's target must be *[]byte.
type StringView struct{ MinLen, MaxLen uint32 }

// StringInline copies content into a caller-owned fixed buffer.
// The caller's target must be *InlineString.
type StringInline struct{ MinLen, MaxLen uint32 }

// StringOwned allocates a fresh, independently-owned copy.
// The caller's target must be *string.
type StringOwned struct{ MinLen, MaxLen uint32 }

// Unsigned decodes a base-10 unsigned integer of the given bit width (8, 16, 32, or 64).
// The caller's target must match Bits: *uint8, *uint16, *uint32, or *uint64.
type Unsigned struct {
	Bits     int
	Min, Max uint64
}

// Signed decodes a base-10 signed integer of the given bit width (8, 16, 32, or 64).
// The caller's target must match Bits: *int8, *int16, *int32, or *int64.
type Signed struct {
	Bits     int
	Min, Max int64
}

// Decimal decodes single-precision floating point. Target must be *float32.
type Decimal struct{ Min, Max float32 }

// Double decodes double-precision floating point. Target must be *float64.
type Double struct{ Min, Max float64 }

// Boolean accepts "true", "false", "1", "0". Target must be *bool.
type Boolean struct{}

// EnumString matches against an ordered option list and stores the matched
// index. Target must be *int.
type EnumString struct{ Options []string }

// EnumUnsigned parses an integer and requires membership in Options,
// storing the parsed value itself. Target must be *uint64.
type EnumUnsigned struct{ Options []uint64 }

// DateKind decodes "YYYY-MM-DD". Target must be *Date.
type DateKind struct{}

// TimeKind decodes "HH:MM:SS". Target must be *Time.
type TimeKind struct{}

// DateTimeKind decodes "YYYY-MM-DDTHH:MM:SS". Target must be *DateTime.
type DateTimeKind struct{}

// DurationKind decodes "[-]P[nY][nM][nD][T[nH][nM][nS]]". Target must be *Duration.
type DurationKind struct{}

func (StringView) isKind()    {}
func (StringInline) isKind()  {}
func (StringOwned) isKind()   {}
func (Unsigned) isKind()      {}
func (Signed) isKind()        {}
func (Decimal) isKind()       {}
func (Double) isKind()        {}
func (Boolean) isKind()       {}
func (EnumString) isKind()    {}
func (EnumUnsigned) isKind()  {}
func (DateKind) isKind()      {}
func (TimeKind) isKind()      {}
func (DateTimeKind) isKind()  {}
func (DurationKind) isKind()  {}

// InlineString is the target for StringInline: Data is a caller-owned fixed
// buffer (len(Data) is its capacity) and Len records how many bytes of it
// are valid after a successful Extract.
type InlineString struct {
	Data []byte
	Len  int
}

// Date holds an xs:date value. No calendar validation is performed — the
// source's own "February 30 is accepted" behavior is preserved.
type Date struct{ Year, Month, Day uint32 }

// Time holds an xs:time value. No clock validation is performed.
type Time struct{ Hour, Minute, Second uint32 }

// DateTime holds an xs:dateTime value.
type DateTime struct {
	Date Date
	Time Time
}

// Duration holds an xs:duration value. Negative is true when the source
// began with '-'.
type Duration struct {
	Negative                          bool
	Years, Months, Days               uint32
	Hours, Minutes, Seconds           uint32
}

// Extract decodes source according to kind and writes the result through
// target. A nil target is honored for every kind: the content is fully
// validated (syntax and facet checks) but nothing is stored, so the caller
// gets feedback even when discarding.
func Extract(kind Kind, target any, source []byte) error {
	switch k := kind.(type) {
	case StringView:
		return extractStringView(k, target, source)
	case StringInline:
		return extractStringInline(k, target, source)
	case StringOwned:
		return extractStringOwned(k, target, source)
	case Unsigned:
		return extractUnsigned(k, target, source)
	case Signed:
		return extractSigned(k, target, source)
	case Decimal:
		return extractDecimal(k, target, source)
	case Double:
		return extractDouble(k, target, source)
	case Boolean:
		return extractBoolean(target, source)
	case EnumString:
		return extractEnumString(k, target, source)
	case EnumUnsigned:
		return extractEnumUnsigned(k, target, source)
	case DateKind:
		return extractDate(target, source)
	case TimeKind:
		return extractTime(target, source)
	case DateTimeKind:
		return extractDateTime(target, source)
	case DurationKind:
		return extractDuration(target, source)
	default:
		return ErrContentUnsupported
	}
}

func checkStringLength(length int, min, max uint32) error {
	if uint32(length) < min {
		return fmt.Errorf("%w: length %d < min %d", ErrMinLength, length, min)
	}
	if uint32(length) > max {
		return fmt.Errorf("%w: length %d > max %d", ErrMaxLength, length, max)
	}
	return nil
}

func extractStringView(k StringView, target any, source []byte) error {
	if err := checkStringLength(len(source), k.MinLen, k.MaxLen); err != nil {
		return err
	}
	if target == nil {
		return nil
	}
	t, ok := target.(*[]byte)
	if !ok {
		return fmt.Errorf("%w: StringView target must be *[]byte, got %T", ErrContent, target)
	}
	*t = source
	return nil
}

func extractStringInline(k StringInline, target any, source []byte) error {
	if err := checkStringLength(len(source), k.MinLen, k.MaxLen); err != nil {
		return err
	}
	if target == nil {
		return nil
	}
	t, ok := target.(*InlineString)
	if !ok {
		return fmt.Errorf("%w: StringInline target must be *InlineString, got %T", ErrContent, target)
	}
	if len(source) > len(t.Data) {
		return fmt.Errorf("%w: inline buffer capacity %d too small for %d bytes", ErrMaxLength, len(t.Data), len(source))
	}
	copy(t.Data, source)
	t.Len = len(source)
	return nil
}

func extractStringOwned(k StringOwned, target any, source []byte) error {
	if err := checkStringLength(len(source), k.MinLen, k.MaxLen); err != nil {
		return err
	}
	if target == nil {
		return nil
	}
	t, ok := target.(*string)
	if !ok {
		return fmt.Errorf("%w: StringOwned target must be *string, got %T", ErrContent, target)
	}
	*t = string(source)
	return nil
}

func extractUnsigned(k Unsigned, target any, source []byte) error {
	value, err := strconv.ParseUint(string(source), 10, k.Bits)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrContent, err)
	}
	if value < k.Min {
		return fmt.Errorf("%w: %d < min %d", ErrMinValue, value, k.Min)
	}
	if value > k.Max {
		return fmt.Errorf("%w: %d > max %d", ErrMaxValue, value, k.Max)
	}
	if target == nil {
		return nil
	}
	switch k.Bits {
	case 8:
		t, ok := target.(*uint8)
		if !ok {
			return fmt.Errorf("%w: Unsigned{8} target must be *uint8, got %T", ErrContent, target)
		}
		*t = uint8(value)
	case 16:
		t, ok := target.(*uint16)
		if !ok {
			return fmt.Errorf("%w: Unsigned{16} target must be *uint16, got %T", ErrContent, target)
		}
		*t = uint16(value)
	case 32:
		t, ok := target.(*uint32)
		if !ok {
			return fmt.Errorf("%w: Unsigned{32} target must be *uint32, got %T", ErrContent, target)
		}
		*t = uint32(value)
	case 64:
		t, ok := target.(*uint64)
		if !ok {
			return fmt.Errorf("%w: Unsigned{64} target must be *uint64, got %T", ErrContent, target)
		}
		*t = value
	default:
		return fmt.Errorf("%w: unsupported Unsigned bit width %d", ErrContentUnsupported, k.Bits)
	}
	return nil
}

func extractSigned(k Signed, target any, source []byte) error {
	value, err := strconv.ParseInt(string(source), 10, k.Bits)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrContent, err)
	}
	if value < k.Min {
		return fmt.Errorf("%w: %d < min %d", ErrMinValue, value, k.Min)
	}
	if value > k.Max {
		return fmt.Errorf("%w: %d > max %d", ErrMaxValue, value, k.Max)
	}
	if target == nil {
		return nil
	}
	switch k.Bits {
	case 8:
		t, ok := target.(*int8)
		if !ok {
			return fmt.Errorf("%w: Signed{8} target must be *int8, got %T", ErrContent, target)
		}
		*t = int8(value)
	case 16:
		t, ok := target.(*int16)
		if !ok {
			return fmt.Errorf("%w: Signed{16} target must be *int16, got %T", ErrContent, target)
		}
		*t = int16(value)
	case 32:
		t, ok := target.(*int32)
		if !ok {
			return fmt.Errorf("%w: Signed{32} target must be *int32, got %T", ErrContent, target)
		}
		*t = int32(value)
	case 64:
		t, ok := target.(*int64)
		if !ok {
			return fmt.Errorf("%w: Signed{64} target must be *int64, got %T", ErrContent, target)
		}
		*t = value
	default:
		return fmt.Errorf("%w: unsupported Signed bit width %d", ErrContentUnsupported, k.Bits)
	}
	return nil
}

func extractDecimal(k Decimal, target any, source []byte) error {
	value, err := strconv.ParseFloat(string(source), 32)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrContent, err)
	}
	v32 := float32(value)
	if v32 < k.Min {
		return fmt.Errorf("%w: %v < min %v", ErrMinValue, v32, k.Min)
	}
	if v32 > k.Max {
		return fmt.Errorf("%w: %v > max %v", ErrMaxValue, v32, k.Max)
	}
	if target == nil {
		return nil
	}
	t, ok := target.(*float32)
	if !ok {
		return fmt.Errorf("%w: Decimal target must be *float32, got %T", ErrContent, target)
	}
	*t = v32
	return nil
}

func extractDouble(k Double, target any, source []byte) error {
	value, err := strconv.ParseFloat(string(source), 64)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrContent, err)
	}
	if value < k.Min {
		return fmt.Errorf("%w: %v < min %v", ErrMinValue, value, k.Min)
	}
	if value > k.Max {
		return fmt.Errorf("%w: %v > max %v", ErrMaxValue, value, k.Max)
	}
	if target == nil {
		return nil
	}
	t, ok := target.(*float64)
	if !ok {
		return fmt.Errorf("%w: Double target must be *float64, got %T", ErrContent, target)
	}
	*t = value
	return nil
}

func extractBoolean(target any, source []byte) error {
	var value bool
	switch string(source) {
	case "true", "1":
		value = true
	case "false", "0":
		value = false
	default:
		return fmt.Errorf("%w: %q is not a valid boolean", ErrContent, source)
	}
	if target == nil {
		return nil
	}
	t, ok := target.(*bool)
	if !ok {
		return fmt.Errorf("%w: Boolean target must be *bool, got %T", ErrContent, target)
	}
	*t = value
	return nil
}

func extractEnumString(k EnumString, target any, source []byte) error {
	for i, opt := range k.Options {
		if opt == string(source) {
			if target == nil {
				return nil
			}
			t, ok := target.(*int)
			if !ok {
				return fmt.Errorf("%w: EnumString target must be *int, got %T", ErrContent, target)
			}
			*t = i
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrEnumNotFound, source)
}

func extractEnumUnsigned(k EnumUnsigned, target any, source []byte) error {
	value, err := strconv.ParseUint(string(source), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrContent, err)
	}
	for _, opt := range k.Options {
		if opt == value {
			if target == nil {
				return nil
			}
			t, ok := target.(*uint64)
			if !ok {
				return fmt.Errorf("%w: EnumUnsigned target must be *uint64, got %T", ErrContent, target)
			}
			*t = value
			return nil
		}
	}
	return fmt.Errorf("%w: %d", ErrEnumNotFound, value)
}
