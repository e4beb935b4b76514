package output

// File is one named text blob of an archive.
type File struct {
	Name    string
	Content string
}

// Archive is the finalized result of a run: the files written, in write
// order, and their total content size in bytes. Writers that stream their
// contents elsewhere (zip, directory) list names only.
type Archive struct {
	Files     []File
	TotalSize int64
}

// FileNamed returns the archived file with the given name, or nil.
func (a *Archive) FileNamed(name string) *File {
	for i := range a.Files {
		if a.Files[i].Name == name {
			return &a.Files[i]
		}
	}
	return nil
}

// ArchiveWriter collects named text blobs and assembles them into their
// final form. WriteFile is called once per blob; Finalize is called once,
// after the last blob, and no writes may follow it.
type ArchiveWriter interface {
	WriteFile(name, content string) error
	Finalize() (*Archive, error)
}
