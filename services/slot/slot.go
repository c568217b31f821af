package slot

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// MaxHour is the highest accepted end hour. Hours normally fall in 0-23,
// but spans that cross midnight are displayed with end hours up to 25.
const MaxHour = 25

// HourRange is a half-open [Start, End) interval of whole hours within a
// calendar day.
type HourRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Overlaps reports whether two half-open intervals share at least one hour.
// Touching endpoints ([6,7) and [7,8)) do not overlap.
func (r HourRange) Overlaps(o HourRange) bool {
	return r.Start < o.End && o.Start < r.End
}

// ParseRanges turns a loosely typed payload into canonical hour ranges.
//
// Clients have historically sent the ranges field as [[10,12]], as
// [["10","12"]], wrapped in extra single-element arrays, or double-encoded
// as a JSON string. The parser unwraps all of that and then validates each
// pair: exactly two elements, both finite numbers, start < end, within
// [0, MaxHour]. An empty list is rejected because a reservation must occupy
// at least one hour.
func ParseRanges(raw json.RawMessage) ([]HourRange, error) {
	value, err := decodeLoose(raw)
	if err != nil {
		return nil, err
	}

	list, ok := value.([]interface{})
	if !ok {
		return nil, &ParseError{Index: -1, Reason: "ranges must be a list of [start, end] pairs"}
	}
	list = unwrapNesting(list)
	if len(list) == 0 {
		return nil, &ParseError{Index: -1, Reason: "at least one hour range is required"}
	}

	ranges := make([]HourRange, 0, len(list))
	for i, item := range list {
		pair, ok := item.([]interface{})
		if !ok {
			return nil, &ParseError{Index: i, Reason: "range must be a [start, end] pair"}
		}
		// Pairs can arrive individually wrapped too: [[ [6,8] ], [ [9,10] ]].
		for len(pair) == 1 {
			inner, ok := pair[0].([]interface{})
			if !ok {
				break
			}
			pair = inner
		}
		if len(pair) != 2 {
			return nil, &ParseError{Index: i, Reason: "range must have exactly 2 elements"}
		}
		start, err := coerceHour(i, pair[0])
		if err != nil {
			return nil, err
		}
		end, err := coerceHour(i, pair[1])
		if err != nil {
			return nil, err
		}
		if start >= end {
			return nil, &ParseError{Index: i, Reason: "start hour must be before end hour"}
		}
		if start < 0 || end > MaxHour {
			return nil, &ParseError{Index: i, Reason: "hours must fall within 0-25"}
		}
		ranges = append(ranges, HourRange{Start: start, End: end})
	}
	return ranges, nil
}

// decodeLoose decodes the raw payload, peeling off layers of
// string-encoding (a JSON string whose content is itself JSON).
func decodeLoose(raw json.RawMessage) (interface{}, error) {
	for {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		var value interface{}
		if err := dec.Decode(&value); err != nil {
			return nil, &ParseError{Index: -1, Reason: "ranges is not valid JSON"}
		}
		s, ok := value.(string)
		if !ok {
			return value, nil
		}
		raw = json.RawMessage(s)
	}
}

// unwrapNesting strips single-element array wrappers: [[[10,12],[14,15]]]
// becomes [[10,12],[14,15]]. A plain single pair like [[10,12]] is left
// alone because its sole element contains numbers, not nested pairs.
func unwrapNesting(list []interface{}) []interface{} {
	for len(list) == 1 {
		inner, ok := list[0].([]interface{})
		if !ok || !isListOfLists(inner) {
			break
		}
		list = inner
	}
	return list
}

func isListOfLists(list []interface{}) bool {
	if len(list) == 0 {
		return false
	}
	for _, item := range list {
		if _, ok := item.([]interface{}); !ok {
			return false
		}
	}
	return true
}

// coerceHour accepts a JSON number or a numeric string and truncates it to
// a whole hour, the way the historical front end's loose inputs were read.
func coerceHour(index int, v interface{}) (int, error) {
	var f float64
	var err error
	switch t := v.(type) {
	case json.Number:
		f, err = t.Float64()
	case string:
		f, err = strconv.ParseFloat(t, 64)
	default:
		return 0, &ParseError{Index: index, Reason: "hour must be a number or numeric string"}
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &ParseError{Index: index, Reason: "hour is not a finite number"}
	}
	return int(f), nil
}

// ToStorageForm collapses canonical ranges into the persisted encoding.
// A reservation made of exactly one range is stored as a 1-element [start]
// with its end implied as start+1; anything else is stored as [start, end]
// pairs unchanged. The single-range form loses the original end hour — that
// asymmetry is load-bearing for data written by older deployments and must
// not be "fixed" here.
func ToStorageForm(ranges []HourRange) [][]int {
	if len(ranges) == 1 {
		return [][]int{{ranges[0].Start}}
	}
	stored := make([][]int, len(ranges))
	for i, r := range ranges {
		stored[i] = []int{r.Start, r.End}
	}
	return stored
}

// Expand is the inverse of ToStorageForm: a 1-element [start] becomes
// [start, start+1) and pairs pass through. Any other arity means the stored
// document is corrupt.
func Expand(stored [][]int) ([]HourRange, error) {
	ranges := make([]HourRange, 0, len(stored))
	for i, entry := range stored {
		switch len(entry) {
		case 1:
			ranges = append(ranges, HourRange{Start: entry[0], End: entry[0] + 1})
		case 2:
			ranges = append(ranges, HourRange{Start: entry[0], End: entry[1]})
		default:
			return nil, &ParseError{Index: i, Reason: "stored range must have 1 or 2 elements"}
		}
	}
	return ranges, nil
}

// StartHours lists the start hour of each range, in input order.
func StartHours(ranges []HourRange) []int {
	hours := make([]int, len(ranges))
	for i, r := range ranges {
		hours[i] = r.Start
	}
	return hours
}

// Hours returns the number of whole hours a range covers.
func (r HourRange) Hours() int {
	return r.End - r.Start
}
