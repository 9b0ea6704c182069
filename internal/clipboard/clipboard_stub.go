//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package clipboard

import "errors"

var errUnsupported = errors.New("clipboard operations are not supported on this platform")

func writePNG([]byte) error     { return errUnsupported }
func readPNG() ([]byte, error)  { return nil, errUnsupported }
func writeText([]byte) error    { return errUnsupported }
func readText() ([]byte, error) { return nil, errUnsupported }
