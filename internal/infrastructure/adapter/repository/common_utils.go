package repository

import "strings"

// Driver error fragments, covering both the postgres and sqlite wording
var (
	duplicateKeyMarkers = []string{
		"duplicate key",
		"UNIQUE constraint",
		"constraint failed: timer_records.id",
	}
	foreignKeyMarkers = []string{
		"FOREIGN KEY constraint",
		"foreign key constraint",
		"violates foreign key",
	}
)

// ErrorClassifier tells apart the driver failures the repositories react to.
// Matching is string based so one classifier serves both supported drivers.
type ErrorClassifier struct{}

// NewErrorClassifier creates a new ErrorClassifier
func NewErrorClassifier() *ErrorClassifier {
	return &ErrorClassifier{}
}

// IsDuplicateKeyError reports whether err is a primary or unique key collision
func (c *ErrorClassifier) IsDuplicateKeyError(err error) bool {
	return matchesAny(err, duplicateKeyMarkers)
}

// IsForeignKeyError reports whether err is a reference to a missing row
func (c *ErrorClassifier) IsForeignKeyError(err error) bool {
	return matchesAny(err, foreignKeyMarkers)
}

func matchesAny(err error, markers []string) bool {
	if err == nil {
		return false
	}

	msg := err.Error()
	for _, marker := range markers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
