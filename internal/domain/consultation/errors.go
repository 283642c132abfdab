package consultation

import "errors"

var (
	// ErrMissingField marks a required key absent from the export.
	ErrMissingField = errors.New("missing required field")
	// ErrEmptyDataset is returned by statistics that are undefined on no input.
	ErrEmptyDataset = errors.New("empty dataset")
	// ErrTooFewMedications is returned when a rank beyond the number of
	// distinct medication names is requested.
	ErrTooFewMedications = errors.New("too few distinct medications")
	// ErrUndefinedCorrelation is returned when the age/medication correlation
	// has fewer than two points or a constant series.
	ErrUndefinedCorrelation = errors.New("correlation undefined")
)
