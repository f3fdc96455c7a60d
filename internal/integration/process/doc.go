// Package process runs the file being edited.
//
// Two ways of running are supported. Run executes the file as a child
// process, waits for it to exit, and captures its output:
//
//	r := process.NewRunner(process.DefaultConfig())
//	res, err := r.Run("/tmp/hello.py")
//	if err != nil {
//	    return err
//	}
//	fmt.Print(res.Transcript())
//
// RunInTerminal opens an external terminal window running the file and
// returns as soon as the window is launched.
//
// Only Python scripts and Windows batch files can be run. Other files are
// rejected with ErrUnsupportedKind. A non-zero exit code is reported in the
// Result and is not an error.
package process
