// Package manifest classifies and rewrites workflow manifest lines. Manifests
// are treated as plain lines of text, never parsed as structured documents.
package manifest

import (
	"strings"

	"actionpin.dev/actionpin/internal/action"
)

// Kind tells whether a line is reproduced verbatim or is an eligible reference
type Kind int

const (
	// Plain lines are reproduced byte for byte
	Plain Kind = iota
	// Reference lines carry a resolvable owner/repo@ref
	Reference
)

// SkipReason explains why a line that looks like a reference is left alone
type SkipReason string

const (
	SkipNone    SkipReason = ""
	SkipLocal   SkipReason = "local action"
	SkipDocker  SkipReason = "container image"
	SkipPinned  SkipReason = "already pinned"
	SkipNoOwner SkipReason = "not an owner/repo reference"
)

const keyword = "uses:"

// Line is one classified manifest line. Raw always holds the original text,
// including its line terminator.
type Line struct {
	Kind Kind
	Raw  string

	// The fields below are set for every line matching the reference
	// pattern, including skipped ones.
	Indent   string
	Identity string
	// RefStart and RefEnd delimit the ref inside Raw
	RefStart int
	RefEnd   int
	Skip     SkipReason

	// Ref is set only for Reference lines
	Ref action.Reference
}

// Matched reports whether the line looks like a reference, eligible or not
func (l Line) Matched() bool {
	return l.Kind == Reference || l.Skip != SkipNone
}

// RefText returns the ref exactly as written
func (l Line) RefText() string {
	return l.Raw[l.RefStart:l.RefEnd]
}

// Terminator returns the line ending of Raw ("\n", "\r\n" or "")
func (l Line) Terminator() string {
	return l.Raw[len(trimTerminator(l.Raw)):]
}

// Classify examines one raw line. A reference line is, after leading
// whitespace and an optional "-" list marker, the keyword "uses:" (any case)
// followed by <identity>@<ref>, optionally quoted.
func Classify(raw string) Line {
	plain := Line{Kind: Plain, Raw: raw}
	body := trimTerminator(raw)

	i := skipSpace(body, 0)
	indent := body[:i]
	if i < len(body) && body[i] == '-' {
		i = skipSpace(body, i+1)
	}
	if len(body)-i < len(keyword) || !strings.EqualFold(body[i:i+len(keyword)], keyword) {
		return plain
	}
	i = skipSpace(body, i+len(keyword))

	var quote byte
	if i < len(body) && (body[i] == '"' || body[i] == '\'') {
		quote = body[i]
		i++
	}

	idStart := i
	for i < len(body) && !isSpace(body[i]) && body[i] != '@' && (quote == 0 || body[i] != quote) {
		i++
	}
	identity := body[idStart:i]
	if identity == "" || i >= len(body) || body[i] != '@' {
		return plain
	}
	i++

	refStart := i
	for i < len(body) && !isSpace(body[i]) {
		i++
	}
	refEnd := i
	if quote != 0 {
		q := strings.IndexByte(body[refStart:refEnd], quote)
		if q < 0 {
			return plain
		}
		refEnd = refStart + q
	}
	if refEnd == refStart {
		return plain
	}

	line := Line{
		Kind:     Plain,
		Raw:      raw,
		Indent:   indent,
		Identity: identity,
		RefStart: refStart,
		RefEnd:   refEnd,
	}
	ref := body[refStart:refEnd]

	switch {
	case strings.HasPrefix(identity, "."):
		line.Skip = SkipLocal
	case strings.HasPrefix(identity, "docker://"):
		line.Skip = SkipDocker
	case action.IsCommitID(ref):
		line.Skip = SkipPinned
	default:
		owner, repo, path, ok := action.ParseIdentity(identity)
		if !ok {
			line.Skip = SkipNoOwner
			break
		}
		line.Kind = Reference
		line.Ref = action.Reference{Owner: owner, Repo: repo, Path: path, Ref: ref}
	}

	return line
}

// SplitLines splits content into lines that keep their terminators, so that
// concatenating them yields content again
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// JoinLines concatenates lines produced by SplitLines or Rewrite
func JoinLines(lines []string) string {
	return strings.Join(lines, "")
}

func trimTerminator(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}

func skipSpace(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return i
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\v', '\f':
		return true
	}
	return false
}
