package domain

import (
	"path"
	"strings"
)

// sourceExts are the file extensions treated as source code when expanding
// directories or selecting changed files.
var sourceExts = map[string]bool{
	".go": true, ".js": true, ".jsx": true, ".mjs": true, ".cjs": true,
	".ts": true, ".tsx": true, ".vue": true, ".svelte": true,
	".py": true, ".rb": true, ".php": true, ".java": true, ".kt": true,
	".scala": true, ".cs": true, ".c": true, ".h": true, ".cc": true,
	".cpp": true, ".hpp": true, ".rs": true, ".swift": true, ".sh": true,
	".sql": true,
}

// IsSourceFile reports whether a slash-separated path has a source extension.
func IsSourceFile(p string) bool {
	return sourceExts[strings.ToLower(path.Ext(p))]
}
