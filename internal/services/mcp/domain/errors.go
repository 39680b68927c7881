package domain

import (
	"errors"
	"fmt"

	apperrors "github.com/louisbranch/worldforge/internal/platform/errors"
)

// ToolError is a domain failure rendered for an MCP client.
type ToolError struct {
	Code    apperrors.Code
	Kind    string
	Message string
	cause   error
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

func (e *ToolError) Unwrap() error {
	return e.cause
}

// renderError localizes coded errors; anything else passes through.
func renderError(locale string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		return err
	}
	return &ToolError{
		Code:    appErr.Code,
		Kind:    appErr.Code.Kind(),
		Message: appErr.LocalizedMessage(locale),
		cause:   err,
	}
}
