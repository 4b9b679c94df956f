// Package mineru builds and runs conversion-tool invocations.
//
// The tool is a black box with a fixed contract:
//
//	<executable> -p <input_path> -o <output_dir> -m <mode>
//
// exit status 0 means success and the artifact is expected at
// <output_dir>/<name>.<artifact_ext>. Execute redirects stdout and stderr to
// one per-item log file, enforces the wall-clock timeout by killing the
// child's whole process group, and classifies every non-success into
// [ExitError], [TimeoutError], [InvocationError] or [ErrInterrupted].
package mineru
