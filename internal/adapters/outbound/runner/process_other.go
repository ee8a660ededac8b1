//go:build !unix

package runner

import "os/exec"

// setProcessGroup keeps exec's default cancellation, which kills the direct
// child process only.
func setProcessGroup(cmd *exec.Cmd) {}
