package directory

import "fmt"

// DuplicateNameError reports an attempt to add a name that is already taken.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("person %q already exists", e.Name)
}
