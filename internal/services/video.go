package services

import (
	urlpkg "net/url"
	"regexp"
	"strings"
)

var videoIDPattern = regexp.MustCompile(`(?:v=|/v/|youtu\.be/|embed/|shorts/)([a-zA-Z0-9_-]{11})`)

func validVideoID(s string) bool {
	if len(s) != 11 {
		return false
	}
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_' || r == '-') {
			return false
		}
	}
	return true
}

// ExtractVideoID returns the 11 character id from a watch, youtu.be, embed
// or shorts URL, or "" when url is none of those.
func ExtractVideoID(url string) string {
	url = strings.TrimSpace(url)
	parsed, err := urlpkg.Parse(url)
	if err == nil {
		host := strings.ToLower(parsed.Host)
		path := strings.Trim(parsed.Path, "/")

		if strings.Contains(host, "youtube.com") {
			if v := parsed.Query().Get("v"); validVideoID(v) {
				return v
			}
			parts := strings.Split(path, "/")
			if len(parts) >= 2 {
				switch parts[0] {
				case "shorts", "embed", "v":
					if validVideoID(parts[1]) {
						return parts[1]
					}
				}
			}
		}

		if strings.Contains(host, "youtu.be") {
			if candidate := strings.Split(path, "/")[0]; validVideoID(candidate) {
				return candidate
			}
		}
	}

	// Unusual forms, such as a URL without a scheme.
	if strings.Contains(url, "youtube.com") || strings.Contains(url, "youtu.be") {
		if m := videoIDPattern.FindStringSubmatch(url); len(m) > 1 {
			return m[1]
		}
	}
	return ""
}
