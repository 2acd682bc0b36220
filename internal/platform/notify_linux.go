//go:build linux

package platform

import (
	"github.com/godbus/dbus/v5"
)

const (
	notifyService = "org.freedesktop.Notifications"
	notifyPath    = "/org/freedesktop/Notifications"
)

// Notify sends a desktop notification over the session bus.
func Notify(title, body string, opts Options) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return err
	}
	defer conn.Close()

	hints := map[string]dbus.Variant{
		"category": dbus.MakeVariant("transfer.complete"),
	}
	obj := conn.Object(notifyService, dbus.ObjectPath(notifyPath))
	call := obj.Call(notifyService+".Notify", 0,
		AppName, uint32(0), opts.IconPath, title, body, []string{}, hints, int32(opts.timeout().Milliseconds()))
	return call.Err
}
