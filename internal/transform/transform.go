package transform

import (
	"fmt"

	"github.com/novetrasys/npad/internal/domain"
)

// AssumptionTransform defines the interface for all assumption transformations.
// Transforms are composable operations that derive a new assumption bundle
// from a base one, enabling comparison, break-even analysis and overrides.
type AssumptionTransform interface {
	// Apply returns a modified copy of base. The base is never changed.
	Apply(base domain.AssumptionBundle) (domain.AssumptionBundle, error)

	// Name returns a short identifier for this transform (e.g., "set").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks if the transform parameters are valid without applying it.
	Validate(base domain.AssumptionBundle) error
}

// ApplyTransforms applies a sequence of transforms to a base bundle.
// Transforms are applied in order, with each transform receiving the output of
// the previous one. The final bundle is validated before it is returned.
func ApplyTransforms(base domain.AssumptionBundle, transforms []AssumptionTransform) (domain.AssumptionBundle, error) {
	current := base

	for i, transform := range transforms {
		if transform == nil {
			return base, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return base, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return base, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}

		current = next
	}

	if err := current.Validate(); err != nil {
		return base, fmt.Errorf("transformed assumptions are invalid: %w", err)
	}

	return current, nil
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
