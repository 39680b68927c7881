// Package errors provides structured error handling with i18n support.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// World errors
	CodeWorldAlreadyExists Code = "WORLD_ALREADY_EXISTS"
	CodeWorldMissing       Code = "WORLD_MISSING"

	// Lookup errors
	CodeNotFound Code = "NOT_FOUND"

	// Location errors
	CodeLocationNotFound              Code = "LOCATION_NOT_FOUND"
	CodeLocationRootDeletionForbidden Code = "LOCATION_ROOT_DELETION_FORBIDDEN"
	CodeLocationHasChildren           Code = "LOCATION_HAS_CHILDREN"

	// Plot errors
	CodePlotDuplicateID                Code = "PLOT_DUPLICATE_ID"
	CodePlotInvalidCharacterReferences Code = "PLOT_INVALID_CHARACTER_REFERENCES"

	// Storage errors
	CodePersistenceFailed Code = "PERSISTENCE_FAILED"
)

// Kind returns the short failure kind name used in tool responses.
func (c Code) Kind() string {
	switch c {
	case CodeWorldAlreadyExists:
		return "AlreadyExists"
	case CodeWorldMissing:
		return "WorldMissing"
	case CodeNotFound:
		return "NotFound"
	case CodeLocationNotFound:
		return "LocationNotFound"
	case CodeLocationRootDeletionForbidden:
		return "RootDeletionForbidden"
	case CodeLocationHasChildren:
		return "HasChildren"
	case CodePlotDuplicateID:
		return "DuplicateId"
	case CodePlotInvalidCharacterReferences:
		return "InvalidCharacterReferences"
	case CodePersistenceFailed:
		return "PersistenceFailed"
	default:
		return "Unknown"
	}
}
