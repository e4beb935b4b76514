package output

import (
	"archive/zip"
	"io"

	"github.com/pkg/errors"
)

// ZipWriter streams each blob into a zip as it is written, so contents are
// never held twice. The finalized Archive lists entry names and sizes; the
// contents live in the zip stream.
type ZipWriter struct {
	zw        *zip.Writer
	files     []File
	total     int64
	finalized bool
}

func NewZipWriter(out io.Writer) *ZipWriter {
	return &ZipWriter{zw: zip.NewWriter(out)}
}

func (w *ZipWriter) WriteFile(name, content string) error {
	if w.finalized {
		return errors.Errorf("zip was already finalized, cannot write %s", name)
	}
	for _, file := range w.files {
		if file.Name == name {
			return errors.Errorf("zip already contains an entry named %s", name)
		}
	}
	entry, err := w.zw.Create(name)
	if err != nil {
		return errors.Wrapf(err, "creating zip entry %s", name)
	}
	if _, err := io.WriteString(entry, content); err != nil {
		return errors.Wrapf(err, "writing zip entry %s", name)
	}
	w.files = append(w.files, File{Name: name})
	w.total += int64(len(content))
	return nil
}

func (w *ZipWriter) Finalize() (*Archive, error) {
	if w.finalized {
		return nil, errors.New("zip was already finalized")
	}
	w.finalized = true
	if err := w.zw.Close(); err != nil {
		return nil, errors.Wrap(err, "closing zip")
	}
	return &Archive{Files: w.files, TotalSize: w.total}, nil
}
