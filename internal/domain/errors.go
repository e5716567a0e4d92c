package domain

import "errors"

var (
	// ErrUnknownProject indicates a catalog reference to a project that does not exist.
	ErrUnknownProject = errors.New("unknown project")
	// ErrQuizNotFound indicates the project has no quiz attached.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrCatalogNotFound indicates the catalog could not be loaded from the backing store.
	ErrCatalogNotFound = errors.New("catalog not found")
	// ErrSegmentCountMismatch indicates a project's declared segment total disagrees with the catalog.
	ErrSegmentCountMismatch = errors.New("project segment count does not match catalog")
	// ErrAnswerNotAnOption indicates a question whose correct answer is missing from its options.
	ErrAnswerNotAnOption = errors.New("correct answer is not one of the question options")
)
