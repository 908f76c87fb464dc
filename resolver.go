package html2pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DocumentRef is the canonical absolute path of one HTML file. Two
// different relative spellings of the same file resolve to the same
// DocumentRef, which makes it safe as a map key for the visited set
// and the anchor map.
type DocumentRef string

// skipReason explains why a hyperlink reference was not resolved to a
// local document. Explicit values keep skip decisions inspectable by
// tests instead of being inferred from log output.
type skipReason string

const (
	skipNone          skipReason = ""
	skipScheme        skipReason = "non-local scheme"
	skipFragmentOnly  skipReason = "fragment-only link"
	skipMissingTarget skipReason = "target does not exist"
	skipNotRegular    skipReason = "target is not a regular file"
)

// nonLocalSchemes are URI schemes that can never identify a local file.
var nonLocalSchemes = []string{"http:", "https:", "mailto:", "javascript:", "tel:", "ftp:"}

// linkResolver resolves a hyperlink reference against a containing file
// into a canonical document identity.
type linkResolver func(reference string) (DocumentRef, skipReason)

// resolveLink normalizes reference against the directory of
// containingFile. The fragment part of the reference is stripped first:
// fragment links identify positions inside a target, not distinct
// files. A non-empty skipReason means "not a mergeable local document";
// callers must treat it as a skip, never as a fatal error.
func resolveLink(reference string, containingFile string) (DocumentRef, skipReason) {
	lower := strings.ToLower(reference)
	for _, scheme := range nonLocalSchemes {
		if strings.HasPrefix(lower, scheme) {
			return "", skipScheme
		}
	}

	if strings.HasPrefix(reference, "#") {
		return "", skipFragmentOnly
	}

	// Drop the fragment before touching the file system.
	if idx := strings.Index(reference, "#"); idx >= 0 {
		reference = reference[:idx]
	}
	if reference == "" {
		return "", skipFragmentOnly
	}

	path := reference
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(containingFile), path)
	}

	// EvalSymlinks canonicalizes symlinks, "." and ".." so that two
	// spellings of the same file compare equal. It fails for missing
	// targets, which is exactly the skip case.
	canonical, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", skipMissingTarget
	}
	canonical, err = filepath.Abs(canonical)
	if err != nil {
		return "", skipMissingTarget
	}

	info, err := os.Stat(canonical)
	if err != nil {
		return "", skipMissingTarget
	}
	if !info.Mode().IsRegular() {
		return "", skipNotRegular
	}

	return DocumentRef(canonical), skipNone
}

// resolveRoot canonicalizes the traversal root. Unlike resolveLink the
// root is not relative to a containing document: the path is taken as
// the caller gave it, against the working directory.
func resolveRoot(rootFile string) (DocumentRef, error) {
	canonical, err := filepath.Abs(rootFile)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRootNotFound, rootFile, err)
	}
	canonical, err = filepath.EvalSymlinks(canonical)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRootNotFound, rootFile, err)
	}

	info, err := os.Stat(canonical)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRootNotFound, rootFile, err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s: not a regular file", ErrRootNotFound, rootFile)
	}

	return DocumentRef(canonical), nil
}

// resolverFor returns a linkResolver bound to one containing file,
// suitable for injection into the merger's link-rewrite transform.
func resolverFor(containingFile DocumentRef) linkResolver {
	return func(reference string) (DocumentRef, skipReason) {
		return resolveLink(reference, string(containingFile))
	}
}

// isHTMLFile reports whether path has an HTML extension.
func isHTMLFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	}
	return false
}
