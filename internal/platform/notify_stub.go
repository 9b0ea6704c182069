//go:build !linux && !darwin && !windows

package platform

// Notify does nothing on platforms without a notification service.
func Notify(Notification) error { return nil }
