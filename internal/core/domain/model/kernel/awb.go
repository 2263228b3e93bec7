package kernel

import (
	"fmt"
	"strings"

	"parceltrack/internal/pkg/errs"
)

// ErrAWBIsNotConstructed indicates that an AWB was not created through NewAWB.
// This error is returned when validating a zero-value AWB.
var ErrAWBIsNotConstructed = errs.NewValueIsRequiredError("AWB must be created via NewAWB")

const maxAWBLength = 32

// AWB is a value object representing an air waybill tracking number, the
// public identity of a shipment. It is immutable once issued.
//
// The zero value of AWB is invalid and must be constructed through NewAWB,
// which normalizes the value to upper case and validates its charset.
//
// Example usage:
//
//	awb, err := kernel.NewAWB("FX20250101000001")
//	if err != nil {
//	    // handle error
//	}
type AWB struct {
	value string
}

// NewAWB creates an AWB from its string representation. Leading and trailing
// whitespace is trimmed and the value is upper-cased. The result must be
// non-empty, at most 32 characters, and consist of letters, digits and
// hyphens only.
func NewAWB(value string) (AWB, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	if normalized == "" {
		return AWB{}, errs.NewValueIsRequiredError("awb")
	}
	if len(normalized) > maxAWBLength {
		return AWB{}, errs.NewValueIsOutOfRangeError("awb length", len(normalized), 1, maxAWBLength)
	}
	for _, r := range normalized {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') && r != '-' {
			return AWB{}, errs.NewValueIsInvalidErrorWithCause("awb",
				fmt.Errorf("character %q is not allowed in a tracking number", r))
		}
	}
	return AWB{value: normalized}, nil
}

// String returns the normalized tracking number.
func (a AWB) String() string {
	return a.value
}

// IsEqual compares two AWBs for equality.
func (a AWB) IsEqual(other AWB) bool {
	return a.value == other.value
}

// Validate checks that the AWB was constructed via NewAWB.
// A zero-value AWB fails validation.
func (a AWB) Validate() error {
	if a.value == "" {
		return ErrAWBIsNotConstructed
	}
	return nil
}
