package manifest

import (
	"context"

	"actionpin.dev/actionpin/internal/action"
	"actionpin.dev/actionpin/internal/tui"
)

// AuditPrefix starts the comment line recording a reference before it was pinned
const AuditPrefix = "# original uses: "

// Resolver resolves an action reference to a commit identifier
type Resolver interface {
	Resolve(ctx context.Context, ref action.Reference) (string, error)
}

// Pin records a reference that was rewritten
type Pin struct {
	// Line is the 1-based line number in the input
	Line int
	Ref  action.Reference
	SHA  string
}

// Failure records a reference that could not be resolved
type Failure struct {
	Line int
	Ref  action.Reference
	Err  error
}

// Result is the outcome of one rewrite pass
type Result struct {
	Lines    []string
	Changed  bool
	Pinned   []Pin
	Failures []Failure
}

// Rewriter pins the references of one manifest at a time
type Rewriter struct {
	resolver Resolver
	splog    *tui.Splog
}

// NewRewriter creates a Rewriter. splog may be nil.
func NewRewriter(resolver Resolver, splog *tui.Splog) *Rewriter {
	return &Rewriter{resolver: resolver, splog: splog}
}

// Rewrite returns the new line sequence for lines. Every resolved reference
// is replaced by two lines: an indent-matched audit comment holding the
// original identity@ref, then the original line with only the ref replaced
// by the commit identifier. Unresolved references are kept unchanged and
// reported in Result.Failures.
func (rw *Rewriter) Rewrite(ctx context.Context, lines []string) *Result {
	result := &Result{Lines: make([]string, 0, len(lines))}

	for i, raw := range lines {
		line := Classify(raw)
		if line.Kind != Reference {
			if line.Matched() {
				rw.debug("Skipping %s@%s (%s)", line.Identity, line.RefText(), line.Skip)
			}
			result.Lines = append(result.Lines, raw)
			continue
		}

		sha, err := rw.resolver.Resolve(ctx, line.Ref)
		if err != nil {
			rw.warn("Resolving %s@%s ... %s", line.Identity, line.RefText(), tui.ColorRed("FAILED"))
			rw.debug("%v", err)
			result.Failures = append(result.Failures, Failure{Line: i + 1, Ref: line.Ref, Err: err})
			result.Lines = append(result.Lines, raw)
			continue
		}

		rw.info("Resolving %s@%s ... %s", line.Identity, line.RefText(), tui.ColorGreen(sha))
		result.Lines = append(result.Lines, AuditComment(line), PinLine(line, sha))
		result.Pinned = append(result.Pinned, Pin{Line: i + 1, Ref: line.Ref, SHA: sha})
		result.Changed = true
	}

	return result
}

// AuditComment returns the comment line recording line's original reference
func AuditComment(line Line) string {
	terminator := line.Terminator()
	if terminator == "" {
		terminator = "\n"
	}
	return line.Indent + AuditPrefix + line.Identity + "@" + line.RefText() + terminator
}

// PinLine returns line.Raw with the ref span replaced by sha
func PinLine(line Line, sha string) string {
	return line.Raw[:line.RefStart] + sha + line.Raw[line.RefEnd:]
}

func (rw *Rewriter) info(format string, args ...interface{}) {
	if rw.splog != nil {
		rw.splog.Info(format, args...)
	}
}

func (rw *Rewriter) warn(format string, args ...interface{}) {
	if rw.splog != nil {
		rw.splog.Warn(format, args...)
	}
}

func (rw *Rewriter) debug(format string, args ...interface{}) {
	if rw.splog != nil {
		rw.splog.Debug(format, args...)
	}
}
