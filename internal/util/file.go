package util

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// CreateCBZ stores files in a comic book archive at output, ordered by file
// name. A partially written archive is removed on failure.
func CreateCBZ(files []string, output string) (err error) {
	if len(files) == 0 {
		return errors.New("cbz: no pages")
	}

	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("cbz: %w", err)
	}

	defer func() {
		if err != nil {
			_ = os.Remove(output)
		}
	}()

	z := zip.NewWriter(out)

	sorted := slices.Clone(files)
	slices.SortFunc(sorted, func(a, b string) int {
		return strings.Compare(filepath.Base(a), filepath.Base(b))
	})

	for _, file := range sorted {
		if err = addFileToZip(z, file); err != nil {
			return errors.Join(fmt.Errorf("cbz: %s: %w", file, err), z.Close(), out.Close())
		}
	}

	return errors.Join(z.Close(), out.Close())
}

func addFileToZip(z *zip.Writer, file string) (err error) {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}

	header.Name = filepath.Base(file)
	header.Method = zip.Store

	w, err := z.CreateHeader(header)
	if err != nil {
		return err
	}

	_, err = io.Copy(w, f)
	return err
}
