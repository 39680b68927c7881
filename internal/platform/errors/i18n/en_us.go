package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeWorldAlreadyExists             = "WORLD_ALREADY_EXISTS"
	CodeWorldMissing                   = "WORLD_MISSING"
	CodeNotFound                       = "NOT_FOUND"
	CodeLocationNotFound               = "LOCATION_NOT_FOUND"
	CodeLocationRootDeletionForbidden  = "LOCATION_ROOT_DELETION_FORBIDDEN"
	CodeLocationHasChildren            = "LOCATION_HAS_CHILDREN"
	CodePlotDuplicateID                = "PLOT_DUPLICATE_ID"
	CodePlotInvalidCharacterReferences = "PLOT_INVALID_CHARACTER_REFERENCES"
	CodePersistenceFailed              = "PERSISTENCE_FAILED"
)

var enUSCatalog = &Catalog{
	locale: "en-US",
	messages: map[Code]string{
		CodeWorldAlreadyExists: "A world already exists; only one world can exist at a time",
		CodeWorldMissing:       "No world exists yet; create a world first",

		CodeNotFound: "{{.Entity}} with ID {{.ID}} was not found",

		CodeLocationNotFound:              "Location with ID {{.LocationID}} was not found",
		CodeLocationRootDeletionForbidden: "The world root location cannot be deleted",
		CodeLocationHasChildren:           "Location {{.ID}} has child locations; delete them first or use force=true",

		CodePlotDuplicateID:                "A plot with ID {{.ID}} already exists",
		CodePlotInvalidCharacterReferences: "Unknown character IDs: {{.CharacterIDs}}",

		CodePersistenceFailed: "The change was applied but could not be saved",
	},
}
