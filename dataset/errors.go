package dataset

// Error represents a validation error on the contents of a dataset
type Error string

const (
	// ErrUnknownFeature is returned when a value is assigned to or requested
	// for a feature the example was not built with.
	ErrUnknownFeature = Error("unknown feature")
	// ErrInvalidFeatureValue is returned when a value is not legal for the
	// feature it is assigned to.
	ErrInvalidFeatureValue = Error("invalid feature value")
	// ErrInvalidClassification is returned when a classification label is
	// not one of the two legal classes.
	ErrInvalidClassification = Error("invalid classification")
	// ErrMissingValue is returned when an example lacks a value for a known
	// feature or lacks its classification.
	ErrMissingValue = Error("missing value")
)

func (e Error) Error() string {
	return string(e)
}
