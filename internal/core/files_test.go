package core

import (
	"errors"
	"testing"
)

// Test helpers

func assertEntryError(t *testing.T, err error, kind EntryKind, name string, target error) {
	t.Helper()
	var entryErr *EntryError
	if !errors.As(err, &entryErr) {
		t.Fatalf("expected EntryError, got %T (%v)", err, err)
	}
	if entryErr.Kind != kind {
		t.Errorf("expected kind %v, got %v", kind, entryErr.Kind)
	}
	if entryErr.Name != name {
		t.Errorf("expected name %q, got %q", name, entryErr.Name)
	}
	if !errors.Is(err, target) {
		t.Errorf("expected error to wrap %v, got %v", target, err)
	}
}

func folderNames(folders []*Folder) []string {
	names := make([]string, 0, len(folders))
	for _, f := range folders {
		names = append(names, f.Name())
	}
	return names
}

func fileNames(files []*File) []string {
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Name())
	}
	return names
}

func assertNames(t *testing.T, got, expected []string) {
	t.Helper()
	if len(got) != len(expected) {
		t.Fatalf("expected names %v, got %v", expected, got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("expected names %v, got %v", expected, got)
			return
		}
	}
}

// Tests

func TestFolder_AddFile(t *testing.T) {
	t.Run("added file can be looked up", func(t *testing.T) {
		dir := NewFolder("docs")

		if err := dir.AddFile("readme", "hello world"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		f := dir.GetFile("readme")
		if f == nil {
			t.Fatal("expected file to exist")
		}
		if f.Name() != "readme" || f.Content() != "hello world" {
			t.Errorf("unexpected file %q with content %q", f.Name(), f.Content())
		}
	})

	t.Run("duplicate keeps the original", func(t *testing.T) {
		dir := NewFolder("docs")
		dir.AddFile("readme", "first")
		original := dir.GetFile("readme")

		err := dir.AddFile("readme", "second")

		assertEntryError(t, err, KindFile, "readme", ErrAlreadyExists)
		if dir.GetFile("readme") != original {
			t.Error("expected original file to be kept")
		}
		if original.Content() != "first" {
			t.Errorf("expected content 'first', got %q", original.Content())
		}
		assertNames(t, fileNames(dir.Files()), []string{"readme"})
	})

	t.Run("empty content is allowed", func(t *testing.T) {
		dir := NewFolder("docs")

		if err := dir.AddFile("empty", ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dir.GetFile("empty").Content() != "" {
			t.Error("expected empty content")
		}
	})
}

func TestFolder_InvalidNames(t *testing.T) {
	for _, name := range []string{"", "a/b", "/", ".", "..", "../x"} {
		dir := NewFolder("root")

		assertEntryError(t, dir.AddFile(name, "x"), KindFile, name, ErrInvalidName)
		assertEntryError(t, dir.AddFolder(name), KindFolder, name, ErrInvalidName)
		if len(dir.Children()) != 0 {
			t.Errorf("%q: expected folder to stay empty", name)
		}
	}
}

func TestFolder_DottedNamesAreOrdinary(t *testing.T) {
	dir := NewFolder("root")

	for _, name := range []string{".hidden", "...", "a.b", "..x"} {
		if err := dir.AddFolder(name); err != nil {
			t.Errorf("AddFolder(%q): unexpected error: %v", name, err)
		}
		if err := dir.AddFile(name, "x"); err != nil {
			t.Errorf("AddFile(%q): unexpected error: %v", name, err)
		}
	}
	if len(dir.Children()) != 8 {
		t.Errorf("expected 8 children, got %d", len(dir.Children()))
	}
}

func TestFolder_RemoveFile(t *testing.T) {
	t.Run("removes only the named file", func(t *testing.T) {
		dir := NewFolder("docs")
		dir.AddFile("a", "1")
		dir.AddFile("b", "2")
		dir.AddFile("c", "3")

		if err := dir.RemoveFile("b"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if dir.GetFile("b") != nil {
			t.Error("expected b to be removed")
		}
		assertNames(t, fileNames(dir.Files()), []string{"a", "c"})
		if dir.GetFile("c").Content() != "3" {
			t.Error("expected index of c to follow the removal")
		}
	})

	t.Run("missing file is not found", func(t *testing.T) {
		dir := NewFolder("docs")
		dir.AddFile("keep", "x")

		err := dir.RemoveFile("ghost")

		assertEntryError(t, err, KindFile, "ghost", ErrNotFound)
		assertNames(t, fileNames(dir.Files()), []string{"keep"})
	})

	t.Run("name can be reused after removal", func(t *testing.T) {
		dir := NewFolder("docs")
		dir.AddFile("a", "old")
		dir.RemoveFile("a")

		if err := dir.AddFile("a", "new"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dir.GetFile("a").Content() != "new" {
			t.Error("expected new content")
		}
	})
}

func TestFolder_AddFolder(t *testing.T) {
	t.Run("added folder can be looked up", func(t *testing.T) {
		dir := NewFolder("root")

		if err := dir.AddFolder("x"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		sub := dir.GetFolder("x")
		if sub == nil {
			t.Fatal("expected folder to exist")
		}
		if sub.Name() != "x" {
			t.Errorf("expected name 'x', got %s", sub.Name())
		}
		if len(sub.Files()) != 0 || len(sub.Folders()) != 0 {
			t.Error("expected new folder to be empty")
		}
	})

	t.Run("duplicate keeps exactly one folder", func(t *testing.T) {
		dir := NewFolder("root")
		dir.AddFolder("x")
		original := dir.GetFolder("x")
		original.AddFile("keep", "me")

		err := dir.AddFolder("x")

		assertEntryError(t, err, KindFolder, "x", ErrAlreadyExists)
		assertNames(t, folderNames(dir.Folders()), []string{"x"})
		if dir.GetFolder("x").GetFile("keep") == nil {
			t.Error("expected original folder contents to survive")
		}
	})

	t.Run("file and folder namespaces are independent", func(t *testing.T) {
		dir := NewFolder("root")

		if err := dir.AddFile("shared", "x"); err != nil {
			t.Fatal(err)
		}
		if err := dir.AddFolder("shared"); err != nil {
			t.Fatalf("expected folder to coexist with file, got %v", err)
		}
		if dir.GetFile("shared") == nil || dir.GetFolder("shared") == nil {
			t.Error("expected both entries to exist")
		}
	})
}

func TestFolder_RemoveFolder(t *testing.T) {
	t.Run("removes the subtree", func(t *testing.T) {
		dir := NewFolder("root")
		dir.AddFolder("a")
		dir.AddFolder("b")
		dir.GetFolder("a").AddFolder("inner")

		if err := dir.RemoveFolder("a"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if dir.GetFolder("a") != nil {
			t.Error("expected a to be removed")
		}
		assertNames(t, folderNames(dir.Folders()), []string{"b"})
	})

	t.Run("missing folder is not found", func(t *testing.T) {
		dir := NewFolder("root")
		dir.AddFolder("a")

		err := dir.RemoveFolder("ghost")

		assertEntryError(t, err, KindFolder, "ghost", ErrNotFound)
		assertNames(t, folderNames(dir.Folders()), []string{"a"})
	})
}

func TestFolder_Lookups(t *testing.T) {
	dir := NewFolder("root")

	if dir.GetFile("nope") != nil {
		t.Error("expected nil file")
	}
	if dir.GetFolder("nope") != nil {
		t.Error("expected nil folder")
	}
}

func TestFolder_Children(t *testing.T) {
	dir := NewFolder("root")
	dir.AddFolder("z")
	dir.AddFile("b", "")
	dir.AddFolder("a")
	dir.AddFile("a", "")

	children := dir.Children()

	var names []string
	for _, c := range children {
		names = append(names, c.Name())
	}
	assertNames(t, names, []string{"b", "a", "z", "a"})
	if _, ok := children[0].(*File); !ok {
		t.Errorf("expected files first, got %T", children[0])
	}
	if _, ok := children[2].(*Folder); !ok {
		t.Errorf("expected folders after files, got %T", children[2])
	}
}

func TestNode(t *testing.T) {
	t.Run("File implements Node interface", func(t *testing.T) {
		var _ Node = &File{}
	})

	t.Run("Folder implements Node interface", func(t *testing.T) {
		var _ Node = &Folder{}
	})
}

func TestEntryError(t *testing.T) {
	err := &EntryError{Kind: KindFolder, Name: "x", Err: ErrAlreadyExists}

	expected := `Folder "x" already exists`
	if err.Error() != expected {
		t.Errorf("expected error message %q, got %q", expected, err.Error())
	}
}
