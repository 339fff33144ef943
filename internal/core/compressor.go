package core

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io/fs"
	"time"
)

// ToZipBytes archives every file at its tree path. The root contributes no
// path component. Empty folders become directory entries. A name that is not
// a valid entry name fails the export rather than producing an entry outside
// the archive root.
func (ft *Filetree) ToZipBytes() ([]byte, error) {
	var buf bytes.Buffer
	zipWriter := zip.NewWriter(&buf)
	modified := time.Now()

	if err := compressFolder(zipWriter, ft.Root, "", modified); err != nil {
		zipWriter.Close()
		return nil, err
	}

	if err := zipWriter.Close(); err != nil {
		return nil, fmt.Errorf("failed to close zip writer: %w", err)
	}

	return buf.Bytes(), nil
}

func compressFolder(zw *zip.Writer, dir *Folder, archivePath string, modified time.Time) error {
	if archivePath != "" && len(dir.files) == 0 && len(dir.folders) == 0 {
		header := &zip.FileHeader{Name: archivePath + "/", Modified: modified}
		header.SetMode(fs.ModeDir | 0755)
		if _, err := zw.CreateHeader(header); err != nil {
			return fmt.Errorf("failed to create zip directory %s: %w", archivePath, err)
		}
		return nil
	}

	for _, f := range dir.files {
		entryPath, err := archiveJoin(archivePath, f.name)
		if err != nil {
			return err
		}
		if err := addFileToZip(zw, f, entryPath, modified); err != nil {
			return err
		}
	}
	for _, sub := range dir.folders {
		entryPath, err := archiveJoin(archivePath, sub.name)
		if err != nil {
			return err
		}
		if err := compressFolder(zw, sub, entryPath, modified); err != nil {
			return err
		}
	}
	return nil
}

// archiveJoin appends name as one raw segment. Names are never cleaned.
func archiveJoin(archivePath, name string) (string, error) {
	if !validName(name) {
		return "", fmt.Errorf("cannot archive %q: %w", name, ErrInvalidName)
	}
	if archivePath == "" {
		return name, nil
	}
	return archivePath + pathSeparator + name, nil
}

func addFileToZip(zw *zip.Writer, f *File, archivePath string, modified time.Time) error {
	header := &zip.FileHeader{
		Name:     archivePath,
		Method:   zip.Deflate,
		Modified: modified,
	}
	header.SetMode(0644)

	writer, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("failed to create zip entry: %w", err)
	}

	if _, err := writer.Write([]byte(f.content)); err != nil {
		return fmt.Errorf("failed to write file to zip: %w", err)
	}

	return nil
}
