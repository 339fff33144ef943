package core

import (
	"fmt"
	"io"
	"strings"
)

const DefaultRootName = "root"

const pathSeparator = "/"

type Filetree struct {
	Root *Folder
}

func NewFiletree(rootName string) *Filetree {
	if rootName == "" {
		rootName = DefaultRootName
	}
	return &Filetree{Root: NewFolder(rootName)}
}

// Resolve walks a slash separated path from the root. Empty segments are
// skipped, so "/" and "//" name the root itself. The empty string is not a
// usable target and returns ErrEmptyPath.
func (ft *Filetree) Resolve(path string) (*Folder, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	current := ft.Root
	for _, segment := range strings.Split(path, pathSeparator) {
		if segment == "" {
			continue
		}
		next := current.GetFolder(segment)
		if next == nil {
			return nil, &PathError{Path: path, Segment: segment}
		}
		current = next
	}
	return current, nil
}

// SearchFile returns the path of the first file with the given name, looking
// at a folder's own files before descending into its subfolders.
func (ft *Filetree) SearchFile(name string) (string, bool) {
	return searchFile(ft.Root, name, "")
}

func searchFile(dir *Folder, name, prefix string) (string, bool) {
	for _, f := range dir.files {
		if f.name == name {
			return prefix + pathSeparator + f.name, true
		}
	}
	for _, sub := range dir.folders {
		if found, ok := searchFile(sub, name, prefix+pathSeparator+sub.name); ok {
			return found, true
		}
	}
	return "", false
}

// SearchFolder returns the path of the first folder with the given name.
// Each folder is compared before its children; a matching root is "/".
func (ft *Filetree) SearchFolder(name string) (string, bool) {
	return searchFolder(ft.Root, name, "")
}

func searchFolder(dir *Folder, name, prefix string) (string, bool) {
	if dir.name == name {
		if prefix == "" {
			return pathSeparator, true
		}
		return prefix, true
	}
	for _, sub := range dir.folders {
		if found, ok := searchFolder(sub, name, prefix+pathSeparator+sub.name); ok {
			return found, true
		}
	}
	return "", false
}

// Display writes the whole tree pre-order, two spaces of indent per level.
func (ft *Filetree) Display(w io.Writer) error {
	return display(w, ft.Root, 0)
}

func display(w io.Writer, dir *Folder, indent int) error {
	if _, err := fmt.Fprintf(w, "%s📂 %s\n", strings.Repeat(" ", indent), dir.name); err != nil {
		return err
	}
	for _, f := range dir.files {
		if _, err := fmt.Fprintf(w, "%s📄 %s\n", strings.Repeat(" ", indent+2), f.name); err != nil {
			return err
		}
	}
	for _, sub := range dir.folders {
		if err := display(w, sub, indent+2); err != nil {
			return err
		}
	}
	return nil
}

// FlattenTree returns every node pre-order, root first.
func (ft *Filetree) FlattenTree() []Node {
	var nodes []Node
	flatten(ft.Root, &nodes)
	return nodes
}

func flatten(dir *Folder, nodes *[]Node) {
	*nodes = append(*nodes, dir)
	for _, f := range dir.files {
		*nodes = append(*nodes, f)
	}
	for _, sub := range dir.folders {
		flatten(sub, nodes)
	}
}

type Stats struct {
	Folders      int   `json:"folders"`
	Files        int   `json:"files"`
	ContentBytes int64 `json:"content_bytes"`
}

// Stats counts folders (root included), files and total content size.
func (ft *Filetree) Stats() Stats {
	var s Stats
	for _, node := range ft.FlattenTree() {
		switch n := node.(type) {
		case *Folder:
			s.Folders++
		case *File:
			s.Files++
			s.ContentBytes += int64(len(n.content))
		}
	}
	return s
}
