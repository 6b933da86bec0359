package dataset

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	driveFilePattern = regexp.MustCompile(`/file/d/([^/]+)/`)
	driveOpenPattern = regexp.MustCompile(`[?&]id=([^&]+)`)
)

const driveDownloadURL = "https://drive.google.com/uc?export=download&id="

// RewriteCloudLink turns a share link from a cloud drive into a direct
// download link. Other URLs are returned trimmed but otherwise untouched.
func RewriteCloudLink(raw string) string {
	link := strings.TrimSpace(raw)
	if link == "" {
		return link
	}
	switch {
	case strings.Contains(link, "drive.google.com"):
		if m := driveFilePattern.FindStringSubmatch(link); m != nil {
			return driveDownloadURL + m[1]
		}
		if strings.Contains(link, "open?id=") {
			if m := driveOpenPattern.FindStringSubmatch(link); m != nil {
				return driveDownloadURL + m[1]
			}
		}
		return link
	case strings.Contains(link, "dropbox.com"):
		if strings.Contains(link, "raw=1") {
			return link
		}
		if strings.Contains(link, "dl=0") {
			return strings.Replace(link, "dl=0", "raw=1", 1)
		}
		return appendQuery(link, "raw=1")
	case strings.Contains(link, "1drv.ms"), strings.Contains(link, "onedrive.live.com"):
		if strings.Contains(link, "download=1") {
			return link
		}
		return appendQuery(link, "download=1")
	default:
		return link
	}
}

func appendQuery(link, param string) string {
	if strings.Contains(link, "?") {
		return link + "&" + param
	}
	return link + "?" + param
}

// nameFromURL returns the last path segment, used for format detection.
func nameFromURL(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return link
	}
	return u.Path
}
