package audit

import (
	"strings"

	"github.com/mssola/useragent"
)

// DeviceLabel summarizes a User-Agent header as "Browser on OS", e.g.
// "Chrome on Windows 10". Bots are labelled "bot: <name>".
func DeviceLabel(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	ua := useragent.New(header)
	browser, _ := ua.Browser()
	if ua.Bot() {
		return "bot: " + browser
	}
	os := ua.OS()
	switch {
	case browser != "" && os != "":
		label := browser + " on " + os
		if ua.Mobile() {
			label += " (mobile)"
		}
		return label
	case browser != "":
		return browser
	case os != "":
		return os
	}
	return "unknown"
}
