package process

import (
	"path/filepath"
	"strings"
)

// Kind identifies how a file is executed.
type Kind uint8

const (
	// KindUnsupported is any file that cannot be run.
	KindUnsupported Kind = iota
	// KindScript is a Python script run by the configured interpreter.
	KindScript
	// KindBatchScript is a Windows batch file run by the command shell.
	KindBatchScript
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindScript:
		return "script"
	case KindBatchScript:
		return "batch"
	default:
		return "unsupported"
	}
}

// DetectKind classifies path by its extension, ignoring case.
func DetectKind(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".py":
		return KindScript
	case ".bat", ".cmd":
		return KindBatchScript
	default:
		return KindUnsupported
	}
}
