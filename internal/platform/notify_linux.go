//go:build linux

package platform

import (
	"github.com/godbus/dbus/v5"
)

const (
	notifyDest  = "org.freedesktop.Notifications"
	notifyPath  = dbus.ObjectPath("/org/freedesktop/Notifications")
	notifyIface = notifyDest + ".Notify"
)

// Notify posts n on the session bus.
func Notify(n Notification) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return err
	}
	defer conn.Close()

	hints := map[string]dbus.Variant{}
	if n.Image != "" {
		hints["image-path"] = dbus.MakeVariant(n.Image)
	}
	if n.Category != "" {
		hints["category"] = dbus.MakeVariant(n.Category)
	}
	obj := conn.Object(notifyDest, notifyPath)
	call := obj.Call(notifyIface, 0,
		AppName, uint32(0), n.Image, n.Title, n.Body, []string{}, hints, int32(n.expire().Milliseconds()))
	return call.Err
}
