package domain

import "errors"

// Domain errors. Their text is shown to users in rejection cards.
var (
	ErrInvalidInput      = errors.New("Invalid input")
	ErrTranslationFailed = errors.New("Translation failed")
)
