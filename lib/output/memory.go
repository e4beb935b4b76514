package output

import (
	"github.com/pkg/errors"
)

// MemoryWriter assembles an archive entirely in memory, contents included.
type MemoryWriter struct {
	files     []File
	finalized bool
}

func NewMemoryWriter() *MemoryWriter {
	return &MemoryWriter{}
}

func (w *MemoryWriter) WriteFile(name, content string) error {
	if w.finalized {
		return errors.Errorf("archive was already finalized, cannot write %s", name)
	}
	for _, file := range w.files {
		if file.Name == name {
			return errors.Errorf("archive already contains a file named %s", name)
		}
	}
	w.files = append(w.files, File{Name: name, Content: content})
	return nil
}

func (w *MemoryWriter) Finalize() (*Archive, error) {
	if w.finalized {
		return nil, errors.New("archive was already finalized")
	}
	w.finalized = true
	total := int64(0)
	for _, file := range w.files {
		total += int64(len(file.Content))
	}
	return &Archive{Files: w.files, TotalSize: total}, nil
}
