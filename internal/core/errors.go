package core

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyExists = errors.New("already exists")
	ErrNotFound      = errors.New("not found")
	ErrPathNotFound  = errors.New("path not found")
	ErrEmptyPath     = errors.New("empty path")
	ErrInvalidName   = errors.New("is not a valid name")
)

type EntryKind int

const (
	KindFile EntryKind = iota
	KindFolder
)

func (k EntryKind) String() string {
	if k == KindFolder {
		return "Folder"
	}
	return "File"
}

// EntryError reports a failed lookup or mutation of one entry in a folder.
type EntryError struct {
	Kind EntryKind
	Name string
	Err  error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("%s %q %s", e.Kind, e.Name, e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}

// PathError names the first path segment that did not resolve.
type PathError struct {
	Path    string
	Segment string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("Folder %q not found.", e.Segment)
}

func (e *PathError) Unwrap() error {
	return ErrPathNotFound
}
