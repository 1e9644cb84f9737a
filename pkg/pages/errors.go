package pages

import "errors"

var (
	// ErrStaticPage is returned when mounting a page that has no form.
	ErrStaticPage = errors.New("pages: page has no form")
	// ErrUnknownForm is returned for a form ID with no bound action.
	ErrUnknownForm = errors.New("pages: unknown form")
)
