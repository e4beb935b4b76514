package output

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/rowforge/rowforge/lib/util"
)

// DirWriter writes each blob as a plain file under a directory, creating
// the directory on first write.
type DirWriter struct {
	dir       string
	files     []File
	total     int64
	finalized bool
}

func NewDirWriter(dir string) *DirWriter {
	return &DirWriter{dir: dir}
}

func (w *DirWriter) WriteFile(name, content string) error {
	if w.finalized {
		return errors.Errorf("output directory was already finalized, cannot write %s", name)
	}
	for _, file := range w.files {
		if file.Name == name {
			return errors.Errorf("output directory already received a file named %s", name)
		}
	}
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return errors.Wrapf(err, "creating output directory %s", w.dir)
	}
	path := filepath.Join(w.dir, name)
	if err := util.WriteFile(content, path); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	w.files = append(w.files, File{Name: name})
	w.total += int64(len(content))
	return nil
}

func (w *DirWriter) Finalize() (*Archive, error) {
	if w.finalized {
		return nil, errors.New("output directory was already finalized")
	}
	w.finalized = true
	return &Archive{Files: w.files, TotalSize: w.total}, nil
}
