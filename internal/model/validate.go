package model

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Input limits enforced before an optimization run.
const (
	MaxDimension     = 10000.0 // mm, width and length
	MaxThickness     = 300.0   // mm
	MaxKerf          = 10.0    // mm
	MaxLabelLength   = 100     // characters
	MaxCutQuantity   = 1000
	MaxSheetQuantity = 100
)

var (
	ErrNoCuts   = errors.New("no required cuts specified")
	ErrNoSheets = errors.New("no stock sheets available")
	ErrInvalid  = errors.New("invalid input")
)

// ValidateCut checks a cut request against the input limits. All problems
// are reported together; each one wraps ErrInvalid.
func ValidateCut(c Cut) error {
	var errs []error
	errs = append(errs, validateLabel("cut", c.Label))
	errs = append(errs, validateDimensions(fmt.Sprintf("cut %q", c.Label), c.Width, c.Length, c.Thickness))
	if c.Quantity < 1 || c.Quantity > MaxCutQuantity {
		errs = append(errs, fmt.Errorf("%w: cut %q quantity %d must be between 1 and %d", ErrInvalid, c.Label, c.Quantity, MaxCutQuantity))
	}
	return errors.Join(errs...)
}

// ValidateSheet checks a sheet request against the input limits.
func ValidateSheet(s Sheet) error {
	var errs []error
	errs = append(errs, validateLabel("sheet", s.Label))
	errs = append(errs, validateDimensions(fmt.Sprintf("sheet %q", s.Label), s.Width, s.Length, s.Thickness))
	if s.Quantity < 1 || s.Quantity > MaxSheetQuantity {
		errs = append(errs, fmt.Errorf("%w: sheet %q quantity %d must be between 1 and %d", ErrInvalid, s.Label, s.Quantity, MaxSheetQuantity))
	}
	switch s.Priority {
	case PriorityHigh, PriorityNormal, PriorityLow:
	default:
		errs = append(errs, fmt.Errorf("%w: sheet %q has unknown priority %d", ErrInvalid, s.Label, int(s.Priority)))
	}
	return errors.Join(errs...)
}

// ValidateKerf checks the blade kerf width.
func ValidateKerf(kerf float64) error {
	if kerf < 0 || kerf > MaxKerf {
		return fmt.Errorf("%w: kerf width %.2f must be between 0 and %.0f mm", ErrInvalid, kerf, MaxKerf)
	}
	return nil
}

// ValidateInputs checks everything an optimization run needs. It returns
// ErrNoCuts or ErrNoSheets for empty lists, otherwise the joined field errors.
func ValidateInputs(cuts []Cut, sheets []Sheet, kerf float64) error {
	if len(cuts) == 0 {
		return ErrNoCuts
	}
	if len(sheets) == 0 {
		return ErrNoSheets
	}
	var errs []error
	for _, c := range cuts {
		errs = append(errs, ValidateCut(c))
	}
	for _, s := range sheets {
		errs = append(errs, ValidateSheet(s))
	}
	errs = append(errs, ValidateKerf(kerf))
	return errors.Join(errs...)
}

func validateLabel(kind, label string) error {
	n := utf8.RuneCountInString(label)
	if n < 1 || n > MaxLabelLength {
		return fmt.Errorf("%w: %s label %q must be 1 to %d characters", ErrInvalid, kind, label, MaxLabelLength)
	}
	return nil
}

func validateDimensions(what string, w, l, t float64) error {
	var errs []error
	if w <= 0 || w > MaxDimension {
		errs = append(errs, fmt.Errorf("%w: %s width %.2f must be in (0, %.0f]", ErrInvalid, what, w, MaxDimension))
	}
	if l <= 0 || l > MaxDimension {
		errs = append(errs, fmt.Errorf("%w: %s length %.2f must be in (0, %.0f]", ErrInvalid, what, l, MaxDimension))
	}
	if t <= 0 || t > MaxThickness {
		errs = append(errs, fmt.Errorf("%w: %s thickness %.2f must be in (0, %.0f]", ErrInvalid, what, t, MaxThickness))
	}
	return errors.Join(errs...)
}
