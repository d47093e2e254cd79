package storage

import (
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

const (
	MIMEOctetStream    = "application/octet-stream"
	mimeDetectionBytes = 512
)

var imageExtensions = map[string]string{
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
	"image/bmp":     ".bmp",
	"image/tiff":    ".tiff",
	"image/x-icon":  ".ico",
	"image/avif":    ".avif",
}

// DetectMIME sniffs the content type of an uploaded file from its magic bytes.
// It returns application/octet-stream when the file cannot be read.
func DetectMIME(fh *multipart.FileHeader) string {
	if fh == nil {
		return MIMEOctetStream
	}
	f, err := fh.Open()
	if err != nil {
		return MIMEOctetStream
	}
	defer f.Close()

	return detectMIMEFromReader(f)
}

// ExtFromMIME returns the file extension for a known image type, or "".
func ExtFromMIME(mimeType string) string {
	return imageExtensions[normalizeMIME(mimeType)]
}

// IsImage reports whether the file's sniffed type is a known image type.
func IsImage(fh *multipart.FileHeader) bool {
	_, ok := imageExtensions[normalizeMIME(DetectMIME(fh))]
	return ok
}

func detectMIMEFromReader(r io.Reader) string {
	buf := make([]byte, mimeDetectionBytes)
	n, err := io.ReadFull(r, buf)
	if n == 0 && err != nil {
		return MIMEOctetStream
	}
	return http.DetectContentType(buf[:n])
}

// normalizeMIME drops parameters such as charset and lower-cases the type.
func normalizeMIME(mimeType string) string {
	mimeType, _, _ = strings.Cut(mimeType, ";")
	return strings.TrimSpace(strings.ToLower(mimeType))
}

// matchesMIME reports whether mimeType matches a pattern; "image/*" style
// wildcards are supported.
func matchesMIME(mimeType string, allowed []string) bool {
	mimeType = normalizeMIME(mimeType)
	for _, pattern := range allowed {
		pattern = strings.TrimSpace(strings.ToLower(pattern))
		if mimeType == pattern {
			return true
		}
		if prefix, ok := strings.CutSuffix(pattern, "*"); ok && strings.HasSuffix(prefix, "/") && strings.HasPrefix(mimeType, prefix) {
			return true
		}
	}
	return false
}
