package core

import "strings"

// Node is either a *File or a *Folder.
type Node interface {
	Name() string
}

// File is a named leaf holding text content. It is never modified after creation.
type File struct {
	name    string
	content string
}

// Folder owns its files and subfolders. Both collections keep insertion order.
type Folder struct {
	name    string
	files   []*File
	folders []*Folder

	fileIndex   map[string]int
	folderIndex map[string]int
}

// NewFile creates a detached file. Names are validated when it is added to a folder.
func NewFile(name, content string) *File {
	return &File{name: name, content: content}
}

// NewFolder creates an empty folder.
func NewFolder(name string) *Folder {
	return &Folder{
		name:        name,
		fileIndex:   make(map[string]int),
		folderIndex: make(map[string]int),
	}
}

func (f *File) Name() string {
	return f.name
}

func (f *File) Content() string {
	return f.content
}

func (d *Folder) Name() string {
	return d.name
}

// Files returns the folder's files in insertion order.
func (d *Folder) Files() []*File {
	return append([]*File(nil), d.files...)
}

// Folders returns the folder's subfolders in insertion order.
func (d *Folder) Folders() []*Folder {
	return append([]*Folder(nil), d.folders...)
}

// Children returns files first, then subfolders.
func (d *Folder) Children() []Node {
	children := make([]Node, 0, len(d.files)+len(d.folders))
	for _, f := range d.files {
		children = append(children, f)
	}
	for _, sub := range d.folders {
		children = append(children, sub)
	}
	return children
}

// validName rejects names that could not be addressed by a path, including
// the dot segments that path tools resolve away.
func validName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.Contains(name, "/")
}

// AddFile appends a file. It returns an *EntryError wrapping ErrInvalidName or
// ErrAlreadyExists and leaves the folder unchanged on failure.
func (d *Folder) AddFile(name, content string) error {
	if !validName(name) {
		return &EntryError{Kind: KindFile, Name: name, Err: ErrInvalidName}
	}
	if _, exists := d.fileIndex[name]; exists {
		return &EntryError{Kind: KindFile, Name: name, Err: ErrAlreadyExists}
	}
	d.fileIndex[name] = len(d.files)
	d.files = append(d.files, NewFile(name, content))
	return nil
}

// RemoveFile deletes the named file. It returns an *EntryError wrapping
// ErrNotFound when there is none.
func (d *Folder) RemoveFile(name string) error {
	i, exists := d.fileIndex[name]
	if !exists {
		return &EntryError{Kind: KindFile, Name: name, Err: ErrNotFound}
	}
	d.files = append(d.files[:i], d.files[i+1:]...)
	delete(d.fileIndex, name)
	for j := i; j < len(d.files); j++ {
		d.fileIndex[d.files[j].name] = j
	}
	return nil
}

// AddFolder appends an empty subfolder. It returns an *EntryError wrapping
// ErrInvalidName or ErrAlreadyExists and leaves the folder unchanged on failure.
func (d *Folder) AddFolder(name string) error {
	if !validName(name) {
		return &EntryError{Kind: KindFolder, Name: name, Err: ErrInvalidName}
	}
	if _, exists := d.folderIndex[name]; exists {
		return &EntryError{Kind: KindFolder, Name: name, Err: ErrAlreadyExists}
	}
	d.folderIndex[name] = len(d.folders)
	d.folders = append(d.folders, NewFolder(name))
	return nil
}

// RemoveFolder detaches the named subfolder. Its subtree goes with it. It
// returns an *EntryError wrapping ErrNotFound when there is none.
func (d *Folder) RemoveFolder(name string) error {
	i, exists := d.folderIndex[name]
	if !exists {
		return &EntryError{Kind: KindFolder, Name: name, Err: ErrNotFound}
	}
	d.folders = append(d.folders[:i], d.folders[i+1:]...)
	delete(d.folderIndex, name)
	for j := i; j < len(d.folders); j++ {
		d.folderIndex[d.folders[j].name] = j
	}
	return nil
}

// GetFolder returns the named subfolder or nil.
func (d *Folder) GetFolder(name string) *Folder {
	if i, ok := d.folderIndex[name]; ok {
		return d.folders[i]
	}
	return nil
}

// GetFile returns the named file or nil.
func (d *Folder) GetFile(name string) *File {
	if i, ok := d.fileIndex[name]; ok {
		return d.files[i]
	}
	return nil
}
