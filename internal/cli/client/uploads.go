package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

const (
	// MaxUploadSize is the largest job file accepted, 50 MB
	MaxUploadSize int64 = 50 * 1024 * 1024

	filesPath = "/api/uploads/files/"
)

// allowedExtensions mirrors the file types the backend accepts for print jobs
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".tiff": true,
	".tif":  true,
	".psd":  true,
	".ai":   true,
	".eps":  true,
	".svg":  true,
	".doc":  true,
	".docx": true,
	".zip":  true,
}

// AllowedExtensions returns the accepted file extensions, sorted
func AllowedExtensions() []string {
	exts := make([]string, 0, len(allowedExtensions))
	for ext := range allowedExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// UploadJobFile uploads a job artwork file. Oversized files and unsupported
// types are rejected before anything is sent.
func (c *Client) UploadJobFile(ctx context.Context, file FilePart) (*UploadResult, error) {
	if file.Size > MaxUploadSize {
		return nil, errFileTooLarge()
	}
	if file.Reader == nil {
		return nil, validationError("file is required")
	}

	ext := strings.ToLower(filepath.Ext(file.Name))
	if !allowedExtensions[ext] {
		return nil, validationError("file type not allowed, allowed types: %s", strings.Join(AllowedExtensions(), ", "))
	}

	// Size is only what the caller declared, so the bytes read are capped too
	limited := &sizeLimitedReader{r: file.Reader, limit: MaxUploadSize}
	file.Reader = limited

	var result UploadResult
	req := Request{
		Method:    http.MethodPost,
		Path:      "/api/uploads/job-file",
		Multipart: &file,
	}
	if err := c.Call(ctx, req, &result); err != nil {
		if limited.exceeded {
			return nil, errFileTooLarge()
		}
		return nil, err
	}
	return &result, nil
}

func errFileTooLarge() *Error {
	return validationError("file too large: maximum size is %d MB", MaxUploadSize/(1024*1024))
}

// sizeLimitedReader fails the read that goes past limit bytes
type sizeLimitedReader struct {
	r        io.Reader
	limit    int64
	read     int64
	exceeded bool
}

func (l *sizeLimitedReader) Read(p []byte) (int, error) {
	n, err := l.r.Read(p)
	l.read += int64(n)
	if l.read > l.limit {
		l.exceeded = true
		return n, fmt.Errorf("upload exceeds %d bytes", l.limit)
	}
	return n, err
}

// FileURL resolves a stored file reference. Absolute URLs are returned
// unchanged, absolute paths are prefixed with the backend origin and
// anything else is treated as a storage key served by the files endpoint.
func (c *Client) FileURL(ref string) string {
	switch {
	case ref == "":
		return ""
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return ref
	case strings.HasPrefix(ref, "/"):
		return c.baseURL + ref
	default:
		return c.baseURL + filesPath + escapeKey(ref)
	}
}

// escapeKey escapes each segment of a storage key, keeping the slashes
func escapeKey(key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

// DownloadFilename returns the file name a reference should be saved under
func DownloadFilename(ref string) string {
	if u, err := url.Parse(ref); err == nil && u.Path != "" {
		ref = u.Path
	}
	name := path.Base(strings.TrimRight(ref, "/"))
	if name == "." || name == "/" || name == "" {
		return "file"
	}
	if unescaped, err := url.PathUnescape(name); err == nil {
		return unescaped
	}
	return name
}

// DownloadFile streams the referenced file into w with the session's
// Authorization header. It returns the number of bytes written.
func (c *Client) DownloadFile(ctx context.Context, ref string, w io.Writer) (int64, error) {
	if ref == "" {
		return 0, validationError("file reference is required")
	}

	target := c.FileURL(ref)
	req := Request{
		Method:  http.MethodGet,
		Path:    target,
		Headers: map[string]string{"Accept": "*/*"},
	}

	resp, err := c.send(ctx, req, true)
	if err != nil {
		return 0, err
	}

	body := resp.RawBody()
	defer body.Close()

	n, err := io.Copy(w, body)
	if err != nil {
		return n, &Error{
			Kind:    KindNetwork,
			Status:  resp.StatusCode(),
			Message: fmt.Sprintf("network error: download interrupted: %v", err),
			Err:     err,
		}
	}
	return n, nil
}
