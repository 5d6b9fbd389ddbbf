// Package langdetect decides which inputs hold Swift source: files by
// extension, markdown fences by info string, and unlabeled snippets by
// content.
package langdetect

import (
	"regexp"
	"slices"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

const (
	langSwift    = "Swift"
	langMarkdown = "Markdown"
)

// classifierCandidates are the languages an unlabeled fence is weighed
// against. They share enough syntax with Swift to make the choice real.
var classifierCandidates = []string{
	langSwift, "Kotlin", "Go", "Rust", "Objective-C", "TypeScript", "Scala",
}

var (
	funcDecl    = regexp.MustCompile(`\bfunc\s+[A-Za-z_][A-Za-z0-9_]*\s*[(<]`)
	swiftMarker = regexp.MustCompile(`->|\blet\s|\bvar\s|@escaping|\bguard\s|\bself\.`)
	goPackage   = regexp.MustCompile(`(?m)^package\s+\w+`)
)

// IsSwiftPath reports whether path names a Swift source file.
func IsSwiftPath(path string) bool {
	return hasExtensionLanguage(path, langSwift)
}

// IsMarkdownPath reports whether path names a markdown document.
func IsMarkdownPath(path string) bool {
	return hasExtensionLanguage(path, langMarkdown)
}

// hasExtensionLanguage checks every language enry maps the extension to;
// ".md" is shared with GCC machine descriptions.
func hasExtensionLanguage(path, lang string) bool {
	return slices.Contains(enry.GetLanguagesByExtension(path, nil, nil), lang)
}

// FenceLanguage resolves a fenced code block info string ("swift",
// "Swift title=x") to its canonical language name, or "" when unknown.
func FenceLanguage(info string) string {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return ""
	}
	lang, ok := enry.GetLanguageByAlias(strings.ToLower(fields[0]))
	if !ok {
		return ""
	}
	return lang
}

// IsSwiftFence reports whether a fence info string names Swift.
func IsSwiftFence(info string) bool {
	return FenceLanguage(info) == langSwift
}

// LooksLikeSwift guesses whether an unlabeled snippet is Swift. A snippet
// with a func declaration and a Swift-only marker qualifies directly; the
// rest go to the enry classifier.
func LooksLikeSwift(content []byte) bool {
	if len(content) == 0 || !funcDecl.Match(content) {
		return false
	}
	if goPackage.Match(content) {
		return false
	}
	if swiftMarker.Match(content) {
		return true
	}

	lang, _ := enry.GetLanguageByClassifier(content, classifierCandidates)
	return lang == langSwift
}
