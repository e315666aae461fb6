package domain

import "errors"

var (
	// ErrNotFound signals absence of a requested record (e.g. no curve
	// points for a date).
	ErrNotFound = errors.New("not found")

	// ErrNoData signals that the curve store holds no points at all, so
	// no order can reference a market yield.
	ErrNoData = errors.New("no yield data available")

	// ErrUnknownTerm signals that a requested term is absent from the
	// latest curve even though it is a valid maturity label.
	ErrUnknownTerm = errors.New("term not present in latest curve")

	// ErrInvalidOrder signals malformed client input (term or quantity).
	ErrInvalidOrder = errors.New("invalid order parameters")

	// ErrMalformedDocument signals that the source document is not
	// well-formed markup. Individual bad fields never raise this.
	ErrMalformedDocument = errors.New("malformed source document")
)
