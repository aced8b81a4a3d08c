package importer

import "errors"

// ErrNoDataRows is returned when a file decodes but every row is blank.
// Like FormatError and MissingColumnError it is batch-fatal: nothing has
// been persisted when it surfaces.
var ErrNoDataRows = errors.New("el archivo no contiene filas de datos")

// FormatError reports a buffer that could not be decoded as the declared
// tabular format. The message is user-facing; Err keeps the decoder detail.
type FormatError struct {
	Format string
	Err    error
}

func (e *FormatError) Error() string {
	return "el archivo no es un " + e.Format + " válido"
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// MissingColumnError reports a required column absent from the header row
// after normalization. Field carries the user-facing column label.
type MissingColumnError struct {
	Field string
}

func (e *MissingColumnError) Error() string {
	return "falta la columna requerida: " + e.Field
}
