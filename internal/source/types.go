package source

type (
	// FileID uniquely identifies an input file within a FileSet.
	FileID uint32
)

// NoFileID marks the absence of a file.
const NoFileID FileID = 0

// File captures metadata for a single input file. The attribute layer only
// tags diagnostics with positions; content handling lives with the callers.
type File struct {
	ID   FileID
	Path string
}

// LineCol represents a human-readable position in an input file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
