package mlxml

import (
	"errors"
	"fmt"

	"github.com/shapestone/mlxml/internal/content"
)

// ErrorCode classifies why a parse failed, mirroring the flat tagged union
// of outcomes the schema-driven parser can raise. There is no Success code:
// a nil error from Parse is success.
type ErrorCode int

const (
	ErrCodeUnknown ErrorCode = iota
	ErrCodeIncompleteSource
	ErrCodeSyntax
	ErrCodeInvalidStartToken
	ErrCodeElementNotFound
	ErrCodeElementMinOccurrence
	ErrCodeElementMaxOccurrence
	ErrCodeChoiceElement
	ErrCodeDuplicateAttribute
	ErrCodeAttributeNotFound
	ErrCodeContent
	ErrCodeEndTagNotFound
	ErrCodeMinLength
	ErrCodeMaxLength
	ErrCodeMinValue
	ErrCodeMaxValue
	ErrCodeEnumNotFound
	ErrCodeDurationSyntax
	ErrCodeDateTimeSyntax
	ErrCodeContentUnsupported
	ErrCodeAllocationFailure
)

var errorCodeNames = map[ErrorCode]string{
	ErrCodeUnknown:              "unknown",
	ErrCodeIncompleteSource:     "incomplete source",
	ErrCodeSyntax:               "syntax error",
	ErrCodeInvalidStartToken:    "invalid start token",
	ErrCodeElementNotFound:      "element not found",
	ErrCodeElementMinOccurrence: "element min occurrence",
	ErrCodeElementMaxOccurrence: "element max occurrence",
	ErrCodeChoiceElement:        "choice element error",
	ErrCodeDuplicateAttribute:   "duplicate attribute",
	ErrCodeAttributeNotFound:    "attribute not found",
	ErrCodeContent:              "content error",
	ErrCodeEndTagNotFound:       "end tag not found",
	ErrCodeMinLength:            "min length",
	ErrCodeMaxLength:            "max length",
	ErrCodeMinValue:             "min value",
	ErrCodeMaxValue:             "max value",
	ErrCodeEnumNotFound:         "enum not found",
	ErrCodeDurationSyntax:       "duration syntax",
	ErrCodeDateTimeSyntax:       "date/time syntax",
	ErrCodeContentUnsupported:   "content unsupported",
	ErrCodeAllocationFailure:    "allocation failure",
}

func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ErrorCode(%d)", int(c))
}

// ParseError is the single error type Parse returns on failure. Compare
// against the package's sentinel *ParseError values (ErrElementNotFound, ...)
// with errors.Is, or inspect Code/Offset directly.
type ParseError struct {
	Code   ErrorCode
	Offset int
	Msg    string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("mlxml: %s at offset %d: %v", e.Code, e.Offset, e.Err)
	}
	if e.Msg != "" {
		return fmt.Sprintf("mlxml: %s at offset %d: %s", e.Code, e.Offset, e.Msg)
	}
	return fmt.Sprintf("mlxml: %s", e.Code)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is reports equality by error code, so the package's sentinel values (which
// carry no offset or message) can be used with errors.Is against any
// *ParseError of the same code.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Sentinel errors, one per ErrorCode except ErrCodeUnknown, for use with
// errors.Is.
var (
	ErrIncompleteSource     = &ParseError{Code: ErrCodeIncompleteSource}
	ErrSyntax               = &ParseError{Code: ErrCodeSyntax}
	ErrInvalidStartToken    = &ParseError{Code: ErrCodeInvalidStartToken}
	ErrElementNotFound      = &ParseError{Code: ErrCodeElementNotFound}
	ErrElementMinOccurrence = &ParseError{Code: ErrCodeElementMinOccurrence}
	ErrElementMaxOccurrence = &ParseError{Code: ErrCodeElementMaxOccurrence}
	ErrChoiceElement        = &ParseError{Code: ErrCodeChoiceElement}
	ErrDuplicateAttribute   = &ParseError{Code: ErrCodeDuplicateAttribute}
	ErrAttributeNotFound    = &ParseError{Code: ErrCodeAttributeNotFound}
	ErrContent              = &ParseError{Code: ErrCodeContent}
	ErrEndTagNotFound       = &ParseError{Code: ErrCodeEndTagNotFound}
	ErrMinLength            = &ParseError{Code: ErrCodeMinLength}
	ErrMaxLength            = &ParseError{Code: ErrCodeMaxLength}
	ErrMinValue             = &ParseError{Code: ErrCodeMinValue}
	ErrMaxValue             = &ParseError{Code: ErrCodeMaxValue}
	ErrEnumNotFound         = &ParseError{Code: ErrCodeEnumNotFound}
	ErrDurationSyntax       = &ParseError{Code: ErrCodeDurationSyntax}
	ErrDateTimeSyntax       = &ParseError{Code: ErrCodeDateTimeSyntax}
	ErrContentUnsupported   = &ParseError{Code: ErrCodeContentUnsupported}
	ErrAllocationFailure    = &ParseError{Code: ErrCodeAllocationFailure}
)

func newParseError(code ErrorCode, offset int, format string, args ...any) *ParseError {
	return &ParseError{Code: code, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

func incompleteSourceErr(offset int) *ParseError {
	return &ParseError{Code: ErrCodeIncompleteSource, Offset: offset, Msg: "unexpected end of input"}
}

// contentErrorCode maps a sentinel error from internal/content onto the
// matching ErrorCode.
func contentErrorCode(err error) ErrorCode {
	switch {
	case errors.Is(err, content.ErrMinLength):
		return ErrCodeMinLength
	case errors.Is(err, content.ErrMaxLength):
		return ErrCodeMaxLength
	case errors.Is(err, content.ErrMinValue):
		return ErrCodeMinValue
	case errors.Is(err, content.ErrMaxValue):
		return ErrCodeMaxValue
	case errors.Is(err, content.ErrEnumNotFound):
		return ErrCodeEnumNotFound
	case errors.Is(err, content.ErrDurationSyntax):
		return ErrCodeDurationSyntax
	case errors.Is(err, content.ErrDateTimeSyntax):
		return ErrCodeDateTimeSyntax
	case errors.Is(err, content.ErrContentUnsupported):
		return ErrCodeContentUnsupported
	case errors.Is(err, content.ErrAllocationFailure):
		return ErrCodeAllocationFailure
	default:
		return ErrCodeContent
	}
}

func wrapContentErr(err error, offset int) *ParseError {
	return &ParseError{Code: contentErrorCode(err), Offset: offset, Err: err}
}
