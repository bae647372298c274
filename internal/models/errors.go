package models

import "github.com/myrjola/deepinsight/internal/errors"

var (
	// ErrNoRecord signals that a referenced business, employee, question or
	// interview does not exist.
	ErrNoRecord = errors.NewSentinel("models: no matching record found")

	// ErrUnknownQuestion signals that a recorded response references a
	// question that can no longer be resolved. This is a data inconsistency
	// and is fatal for the unit of work that encounters it.
	ErrUnknownQuestion = errors.NewSentinel("models: response references unknown question")
)
