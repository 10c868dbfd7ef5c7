// File: filex.go
// Title: Core File Utilities
// Description: Implements the file operations used by the acid engine, the
//              REPL :load command and the configuration loader.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-02-14
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with comprehensive file utilities
// - 2025-02-14 v0.2.0: ReadSource with size limit and UTF-8 check

package filex

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	mdwerror "github.com/msto63/acid/foundation/core/error"
)

// Exists checks if a file or directory exists
func Exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}

// IsFile checks if the path exists and is a regular file
func IsFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// ExpandHome replaces a leading ~ with the user's home directory. Paths
// without one are returned unchanged.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// FirstExisting returns the first candidate that is a regular file, after
// home expansion. The boolean is false when none exists.
func FirstExisting(candidates ...string) (string, bool) {
	for _, c := range candidates {
		if c == "" {
			continue
		}
		p := ExpandHome(c)
		if IsFile(p) {
			return p, true
		}
	}
	return "", false
}

// ReadSource reads a UTF-8 text file of at most maxBytes bytes. A maxBytes
// of zero or less disables the limit.
func ReadSource(path string, maxBytes int64) (string, error) {
	f, err := os.Open(ExpandHome(path))
	if err != nil {
		code := mdwerror.CodeIOError
		if errors.Is(err, fs.ErrNotExist) {
			code = mdwerror.CodeNotFound
		}
		return "", mdwerror.Wrap(err, "cannot open source file").
			WithCode(code).
			WithOperation("filex.ReadSource").
			WithDetail("path", path)
	}
	defer f.Close()

	var r io.Reader = f
	if maxBytes > 0 {
		r = io.LimitReader(f, maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", mdwerror.Wrap(err, "cannot read source file").
			WithCode(mdwerror.CodeIOError).
			WithOperation("filex.ReadSource").
			WithDetail("path", path)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return "", mdwerror.Newf("source file exceeds %d bytes", maxBytes).
			WithCode(mdwerror.CodeAcidTooLarge).
			WithOperation("filex.ReadSource").
			WithDetail("path", path).
			WithDetail("limit", maxBytes)
	}
	if !utf8.Valid(data) {
		return "", mdwerror.New("source file is not valid UTF-8").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("filex.ReadSource").
			WithDetail("path", path)
	}
	return string(data), nil
}
