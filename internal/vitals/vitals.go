package vitals

import (
	"fmt"
	"time"
)

// Kind identifies the vital sign a measurement records.
type Kind string

const (
	KindBloodPressure Kind = "tension"
	KindBloodSugar    Kind = "glycemie"
	KindWeight        Kind = "poids"
)

// Kinds lists every supported kind in display order.
var Kinds = []Kind{KindBloodPressure, KindBloodSugar, KindWeight}

// ParseKind validates a raw kind string.
func ParseKind(raw string) (Kind, error) {
	k := Kind(raw)
	if !k.Valid() {
		return "", fmt.Errorf("unknown measurement kind %q", raw)
	}
	return k, nil
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindBloodPressure, KindBloodSugar, KindWeight:
		return true
	}
	return false
}

// HasSecondary reports whether the kind carries a second value (diastolic).
func (k Kind) HasSecondary() bool {
	return k == KindBloodPressure
}

// UnitFor returns the unit stored alongside a new reading of kind k.
func UnitFor(k Kind) string {
	switch k {
	case KindBloodPressure:
		return "mmHg"
	case KindBloodSugar:
		return "mg/dL"
	case KindWeight:
		return "kg"
	}
	return ""
}

// MergeWindow is how long after a reading a new reading of the same kind is
// averaged into it instead of being stored separately.
const MergeWindow = 30 * time.Minute

// WithinMergeWindow reports whether a reading recorded at last is still open
// for averaging at now. The bound is exclusive.
func WithinMergeWindow(last, now time.Time) bool {
	return now.Sub(last) < MergeWindow
}
