package api

import (
	"errors"
	"fmt"
)

// ErrProjectNotFound is matched by ProjectNotFoundError via errors.Is.
var ErrProjectNotFound = errors.New("project not found")

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Body)
}

// ProjectNotFoundError carries the projects that were available at lookup
// time so callers can suggest a correction.
type ProjectNotFoundError struct {
	Name      string
	Available []Project
}

func (e *ProjectNotFoundError) Error() string {
	return fmt.Sprintf("could not find project named '%s'", e.Name)
}

func (e *ProjectNotFoundError) Is(target error) bool {
	return target == ErrProjectNotFound
}

// AvailableNames returns the names of the projects seen during lookup.
func (e *ProjectNotFoundError) AvailableNames() []string {
	names := make([]string, 0, len(e.Available))
	for _, p := range e.Available {
		names = append(names, p.Name)
	}
	return names
}
