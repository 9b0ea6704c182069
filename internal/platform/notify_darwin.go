//go:build darwin

package platform

import (
	"fmt"
	"os/exec"
)

// Notify posts n to Notification Center. Images are not supported by
// osascript and are ignored.
func Notify(n Notification) error {
	script := fmt.Sprintf("display notification %q with title %q subtitle %q", n.Body, n.Title, AppName)
	return exec.Command("osascript", "-e", script).Run()
}
