package cli

import "fmt"

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

type needsFormatError struct {
	files []string
}

func (e needsFormatError) Error() string {
	if len(e.files) == 1 {
		return fmt.Sprintf("%s is not formatted", e.files[0])
	}
	return fmt.Sprintf("%d files are not formatted", len(e.files))
}

type lossyFormatError struct {
	files []string
}

func (e lossyFormatError) Error() string {
	if len(e.files) == 1 {
		return fmt.Sprintf("%s has text before the first bullet that formatting would drop (use --force)", e.files[0])
	}
	return fmt.Sprintf("%d files have text before the first bullet that formatting would drop (use --force)", len(e.files))
}
