// Package filestore reads and writes the files being edited.
//
// A Store sits on top of a FileSystem so that the editor can be tested
// against an in-memory tree:
//
//	store := filestore.NewStore(filestore.NewMemFS())
//	_ = store.Write("/work/hello.py", "print('hi')\n")
//	text, _ := store.Read("/work/hello.py")
//
// File contents are passed through unchanged. No encoding detection or
// line-ending conversion is performed.
package filestore
