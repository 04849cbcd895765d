package pathkey

import "strings"

// Prefix returns the path as a folder prefix: trailing slashes trimmed and
// a single slash appended. The empty path (catalog root) yields "".
func Prefix(path string) string {
	path = strings.Trim(path, "/")
	if path == "" {
		return ""
	}
	return path + "/"
}

// IsUnderPrefix reports whether path sits below the folder named by prefix.
// The match is segment-exact: prefix "abc" matches "abc/x.mp3" but never
// "abcd/x.mp3". An empty prefix matches every path.
func IsUnderPrefix(path, prefix string) bool {
	return strings.HasPrefix(path, Prefix(prefix))
}

// HasSubfolder reports whether path has at least one more folder level
// below prefix, i.e. whether another slash follows the prefix.
func HasSubfolder(path, prefix string) bool {
	p := Prefix(prefix)
	if !strings.HasPrefix(path, p) {
		return false
	}
	return strings.Contains(path[len(p):], "/")
}

// FirstSegmentAfter returns the characters of path after prefix up to (not
// including) the next slash. Returns "" when path is not under prefix.
func FirstSegmentAfter(path, prefix string) string {
	p := Prefix(prefix)
	if !strings.HasPrefix(path, p) {
		return ""
	}
	rest := path[len(p):]
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		return rest[:i]
	}
	return rest
}

// Part is one element of a breadcrumb trail.
type Part struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Breadcrumb builds the trail of ancestor folders for a path, starting at
// the catalog root.
func Breadcrumb(path string) []Part {
	trail := []Part{{Name: "Media", Path: ""}}

	path = strings.Trim(path, "/")
	if path == "" {
		return trail
	}

	current := ""
	for _, part := range strings.Split(path, "/") {
		if part == "" {
			continue
		}
		if current == "" {
			current = part
		} else {
			current = current + "/" + part
		}
		trail = append(trail, Part{Name: part, Path: current})
	}

	return trail
}
