//go:build windows

package platform

import (
	"fmt"
	"os/exec"
	"strings"
)

const toastScript = `[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType=Windows Runtime] > $null; ` +
	`$template = [Windows.UI.Notifications.ToastNotificationManager]::GetTemplateContent([Windows.UI.Notifications.ToastTemplateType]::%s); ` +
	`$texts = $template.GetElementsByTagName("text"); ` +
	`$texts.Item(0).AppendChild($template.CreateTextNode(%s)) > $null; ` +
	`$texts.Item(1).AppendChild($template.CreateTextNode(%s)) > $null; ` +
	`%s` +
	`$toast = [Windows.UI.Notifications.ToastNotification]::new($template); ` +
	`$toast.ExpirationTime = [DateTimeOffset]::Now.AddSeconds(%d); ` +
	`[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier(%s).Show($toast);`

func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// Notify shows n as a toast.
func Notify(n Notification) error {
	kind, image := "ToastText02", ""
	if img := strings.TrimSpace(n.Image); img != "" {
		kind = "ToastImageAndText02"
		image = fmt.Sprintf(`$template.GetElementsByTagName("image").Item(0).SetAttribute("src", %s); `, psQuote(img))
	}
	script := fmt.Sprintf(toastScript, kind, psQuote(n.Title), psQuote(n.Body), image, int(n.expire().Seconds()), psQuote(AppName))
	return exec.Command("powershell.exe", "-NoProfile", "-Command", script).Run()
}
