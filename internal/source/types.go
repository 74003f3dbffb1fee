package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

// NoFile is the zero FileID; FileSet never hands it out.
const NoFile FileID = 0

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
	FileNormalizedNFC
)

// File captures metadata and normalized content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	// LineIdx хранит байтовые смещения каждого '\n' для бинпоиска строк.
	LineIdx []uint32
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}

// LineCol maps a byte offset in the file to a 1-based line/column pair.
func (f *File) LineCol(off uint32) LineCol {
	idx := f.LineIdx
	if len(idx) == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}
	// бинпоиск: наибольший idx[i] < off
	lo, hi := 0, len(idx)-1
	for lo <= hi {
		mid := (lo + hi) >> 1
		if idx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	if hi < 0 {
		return LineCol{Line: 1, Col: off + 1}
	}
	start := idx[hi] + 1
	return LineCol{Line: uint32(hi) + 2, Col: off - start + 1} //nolint:gosec // G115: bounded by line count
}

// Line returns the text of the 1-based line n, without the newline.
func (f *File) Line(n uint32) []byte {
	if n == 0 {
		return nil
	}
	start := uint32(0)
	if n >= 2 {
		if int(n-2) >= len(f.LineIdx) {
			return nil
		}
		start = f.LineIdx[n-2] + 1
	}
	end := uint32(len(f.Content)) //nolint:gosec // G115: content fits uint32 by construction
	if int(n-1) < len(f.LineIdx) {
		end = f.LineIdx[n-1]
	}
	return f.Content[start:end]
}
