//go:build linux

package notify

import (
	"github.com/cockroachdb/errors"
	"github.com/godbus/dbus/v5"
)

const (
	appName      = "Airwaves"
	desktopEntry = "airwaves"

	notificationsDest  = "org.freedesktop.Notifications"
	notificationsPath  = "/org/freedesktop/Notifications"
	notificationsIface = "org.freedesktop.Notifications"
)

// desktop shows notices through the session notification server.
type desktop struct {
	obj dbus.BusObject
}

// New returns a Notifier backed by the D-Bus session bus, or one that
// drops every notice when there is no session bus.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nopNotifier{}, nil //nolint:nilerr // notices are optional
	}
	return &desktop{obj: conn.Object(notificationsDest, notificationsPath)}, nil
}

func (d *desktop) Show(n Notice) (uint32, error) {
	var id uint32
	err := d.obj.Call(notificationsIface+".Notify", 0,
		appName,
		n.ReplacesID,
		n.Icon,
		n.Title,
		n.Body,
		[]string{},
		hints(n),
		n.Kind.Timeout(),
	).Store(&id)
	if err != nil {
		return 0, errors.Wrap(err, "show notification")
	}
	return id, nil
}

func (d *desktop) Dismiss(id uint32) error {
	err := d.obj.Call(notificationsIface+".CloseNotification", 0, id).Err
	return errors.Wrapf(err, "dismiss notification %d", id)
}

func hints(n Notice) map[string]dbus.Variant {
	h := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(n.Kind.Urgency())),
		"desktop-entry": dbus.MakeVariant(desktopEntry),
	}
	if n.Kind == KindNowPlaying {
		// Track changes stay out of the notification history.
		h["transient"] = dbus.MakeVariant(true)
		h["suppress-sound"] = dbus.MakeVariant(true)
	}
	return h
}
