package signin

import "io"

// File is one uploaded sign-in export.
type File struct {
	Name   string
	Reader io.Reader
}

// Parser turns one or more uploaded exports into a single concatenated log.
type Parser interface {
	Parse(files ...File) ([]Record, error)
}
