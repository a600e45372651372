package model

import "fmt"

// Range is an inclusive 1-based window over a list of work items
type Range struct {
	Start int
	End   int
}

// InvalidRangeError reports a range that does not fit the list it selects from
type InvalidRangeError struct {
	Range  Range
	Total  int
	Reason string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range %d-%d (%s). Available videos: 1 to %d",
		e.Range.Start, e.Range.End, e.Reason, e.Total)
}

// NewRange builds a range and validates it against total
func NewRange(start, end, total int) (Range, error) {
	r := Range{Start: start, End: end}
	if err := r.Validate(total); err != nil {
		return Range{}, err
	}
	return r, nil
}

// Validate checks 1 <= Start <= End <= total
func (r Range) Validate(total int) error {
	switch {
	case r.Start < 1:
		return &InvalidRangeError{Range: r, Total: total, Reason: "start must be at least 1"}
	case r.Start > r.End:
		return &InvalidRangeError{Range: r, Total: total, Reason: "start is greater than end"}
	case r.End > total:
		return &InvalidRangeError{Range: r, Total: total, Reason: "end is beyond the last video"}
	}
	return nil
}

// Len returns the number of items covered by the range
func (r Range) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start + 1
}

// Contains reports whether sequence number n lies inside the range
func (r Range) Contains(n int) bool {
	return n >= r.Start && n <= r.End
}

// String returns the range as "start-end"
func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}
