package source

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"
)

// FileSet owns every source file of one compilation. Content is
// normalized on the way in: BOM stripped, CRLF folded to LF, text
// brought to NFC so identifiers compare byte-wise.
type FileSet struct {
	files []*File // индекс = FileID - 1
}

func NewFileSet() *FileSet {
	return &FileSet{files: make([]*File, 0, 4)}
}

// Load reads path from disk and adds it to the set.
func (fs *FileSet) Load(path string) (*File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return fs.add(normalizePath(path), content, 0)
}

// AddVirtual adds in-memory content (tests, stdin) under the given name.
func (fs *FileSet) AddVirtual(name string, content []byte) (*File, error) {
	return fs.add(name, content, FileVirtual)
}

// Get returns the file for id, nil when id is unknown.
func (fs *FileSet) Get(id FileID) *File {
	if id == NoFile || int(id) > len(fs.files) {
		return nil
	}
	return fs.files[id-1]
}

// Len returns the number of files in the set.
func (fs *FileSet) Len() int { return len(fs.files) }

func (fs *FileSet) add(name string, content []byte, flags FileFlags) (*File, error) {
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		return nil, fmt.Errorf("%s: file too large: %w", name, err)
	}
	content, hadBOM := stripBOM(content)
	if hadBOM {
		flags |= FileHadBOM
	}
	content, crlf := foldCRLF(content)
	if crlf {
		flags |= FileNormalizedCRLF
	}
	if !norm.NFC.IsNormal(content) {
		content = norm.NFC.Bytes(content)
		flags |= FileNormalizedNFC
	}
	id := FileID(len(fs.files) + 1) //nolint:gosec // G115: set size fits uint32
	f := &File{
		ID:      id,
		Path:    name,
		Content: content,
		LineIdx: lineIndex(content),
		Flags:   flags,
	}
	fs.files = append(fs.files, f)
	return f, nil
}

func stripBOM(content []byte) ([]byte, bool) {
	if len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}
	return content, false
}

// foldCRLF заменяет все \r\n на \n, не трогая одиночные \r.
func foldCRLF(content []byte) ([]byte, bool) {
	if !slices.Contains(content, '\r') {
		return content, false
	}
	out := make([]byte, 0, len(content))
	changed := false
	for i := 0; i < len(content); i++ {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i++
			changed = true
			continue
		}
		out = append(out, content[i])
	}
	return out, changed
}

func lineIndex(content []byte) []uint32 {
	var out []uint32
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i)) //nolint:gosec // G115: checked on add
		}
	}
	return out
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}
