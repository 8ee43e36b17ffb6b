package content

import (
	"fmt"
	"strconv"
)

// scanDigits reads a maximal run of ASCII digits from the start of data,
// returning the parsed value, the unconsumed remainder, and whether at
// least one digit was found.
func scanDigits(data []byte) (value uint64, rest []byte, ok bool) {
	i := 0
	for i < len(data) && data[i] >= '0' && data[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, data, false
	}
	value, _ = strconv.ParseUint(string(data[:i]), 10, 32)
	return value, data[i:], true
}

// parseThreeFields reads exactly "v1<sep>v2<sep>v3" from the front of data,
// grounded on xml_content.c's get_tokenized_content (the xs:date / xs:time
// tokenizer), returning whatever trails the third field.
func parseThreeFields(data []byte, sep byte) (a, b, c uint32, rest []byte, ok bool) {
	v1, r1, ok1 := scanDigits(data)
	if !ok1 || len(r1) == 0 || r1[0] != sep {
		return 0, 0, 0, data, false
	}
	v2, r2, ok2 := scanDigits(r1[1:])
	if !ok2 || len(r2) == 0 || r2[0] != sep {
		return 0, 0, 0, data, false
	}
	v3, r3, ok3 := scanDigits(r2[1:])
	if !ok3 {
		return 0, 0, 0, data, false
	}
	return uint32(v1), uint32(v2), uint32(v3), r3, true
}

func extractDate(target any, source []byte) error {
	year, month, day, rest, ok := parseThreeFields(source, '-')
	if !ok || len(rest) != 0 {
		return fmt.Errorf("%w: expected YYYY-MM-DD, got %q", ErrDateTimeSyntax, source)
	}
	if target == nil {
		return nil
	}
	t, ok := target.(*Date)
	if !ok {
		return fmt.Errorf("%w: Date target must be *content.Date, got %T", ErrContent, target)
	}
	*t = Date{Year: year, Month: month, Day: day}
	return nil
}

func extractTime(target any, source []byte) error {
	hour, minute, second, rest, ok := parseThreeFields(source, ':')
	if !ok || len(rest) != 0 {
		return fmt.Errorf("%w: expected HH:MM:SS, got %q", ErrDateTimeSyntax, source)
	}
	if target == nil {
		return nil
	}
	t, ok := target.(*Time)
	if !ok {
		return fmt.Errorf("%w: Time target must be *content.Time, got %T", ErrContent, target)
	}
	*t = Time{Hour: hour, Minute: minute, Second: second}
	return nil
}

func extractDateTime(target any, source []byte) error {
	year, month, day, rest, ok := parseThreeFields(source, '-')
	if !ok || len(rest) == 0 || rest[0] != 'T' {
		return fmt.Errorf("%w: expected date 'T' time, got %q", ErrDateTimeSyntax, source)
	}
	hour, minute, second, rest2, ok := parseThreeFields(rest[1:], ':')
	if !ok || len(rest2) != 0 {
		return fmt.Errorf("%w: expected HH:MM:SS after 'T', got %q", ErrDateTimeSyntax, source)
	}
	if target == nil {
		return nil
	}
	t, ok := target.(*DateTime)
	if !ok {
		return fmt.Errorf("%w: DateTime target must be *content.DateTime, got %T", ErrContent, target)
	}
	*t = DateTime{
		Date: Date{Year: year, Month: month, Day: day},
		Time: Time{Hour: hour, Minute: minute, Second: second},
	}
	return nil
}

// parseOrderedFields reads zero or more "<digits><designator>" groups from
// the front of data, where each designator must appear in designators after
// the position of the previously matched one (strict order; any of
// the three may be absent). Grounded on xml_content.c's get_duration_content.
func parseOrderedFields(data []byte, designators string) (values [3]uint32, rest []byte, err error) {
	idx := 0
	for idx < len(designators) {
		value, after, ok := scanDigits(data)
		if !ok {
			break
		}
		if len(after) == 0 {
			return values, data, fmt.Errorf("%w: missing designator after %d", ErrDurationSyntax, value)
		}
		d := after[0]
		matched := -1
		for j := idx; j < len(designators); j++ {
			if designators[j] == d {
				matched = j
				break
			}
		}
		if matched == -1 {
			return values, data, fmt.Errorf("%w: unexpected designator %q", ErrDurationSyntax, d)
		}
		values[matched] = uint32(value)
		data = after[1:]
		idx = matched + 1
	}
	return values, data, nil
}

func extractDuration(target any, source []byte) error {
	negative := false
	i := 0
	if len(source) > 0 && source[0] == '-' {
		negative = true
		i = 1
	}
	if i >= len(source) || source[i] != 'P' {
		return fmt.Errorf("%w: duration must start with 'P', got %q", ErrDurationSyntax, source)
	}
	rest := source[i+1:]

	dateValues, rest, err := parseOrderedFields(rest, "YMD")
	if err != nil {
		return err
	}

	var timeValues [3]uint32
	if len(rest) > 0 && rest[0] == 'T' {
		timeSource := rest[1:]
		var afterTime []byte
		timeValues, afterTime, err = parseOrderedFields(timeSource, "HMS")
		if err != nil {
			return err
		}
		if len(afterTime) == len(timeSource) {
			return fmt.Errorf("%w: 'T' designator with no time fields", ErrDurationSyntax)
		}
		rest = afterTime
	}
	if len(rest) != 0 {
		return fmt.Errorf("%w: unexpected trailing content %q", ErrDurationSyntax, rest)
	}

	if target == nil {
		return nil
	}
	t, ok := target.(*Duration)
	if !ok {
		return fmt.Errorf("%w: Duration target must be *content.Duration, got %T", ErrContent, target)
	}
	*t = Duration{
		Negative: negative,
		Years:    dateValues[0],
		Months:   dateValues[1],
		Days:     dateValues[2],
		Hours:    timeValues[0],
		Minutes:  timeValues[1],
		Seconds:  timeValues[2],
	}
	return nil
}
