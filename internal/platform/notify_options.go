// Package platform sends desktop notifications through the host's native
// notification service.
package platform

import "time"

// AppName identifies the application to the notification service.
const AppName = "maskbrush"

// DefaultExpire is how long a notification stays up when Expire is zero.
const DefaultExpire = 5 * time.Second

// Notification is one desktop notification.
type Notification struct {
	Title string
	Body  string
	// Image is a file shown with the notification where supported, such as
	// the exported mask.
	Image string
	// Category is a freedesktop category hint, for example
	// "transfer.complete".
	Category string
	Expire   time.Duration
}

func (n Notification) expire() time.Duration {
	if n.Expire <= 0 {
		return DefaultExpire
	}
	return n.Expire
}
