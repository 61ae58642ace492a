package ports

// FileLister resolves a selection pattern to an ordered list of file
// paths. Order is implementation-defined (the glob adapter returns
// lexical order); the gatherer preserves whatever order it receives.
type FileLister interface {
	List(pattern string) ([]string, error)
}

// TableReader parses one replication output file into a numeric table,
// rows = iterations, columns = outputs. Malformed content is a reader
// error surfaced as-is.
type TableReader interface {
	Read(path string) ([][]float64, error)
}
