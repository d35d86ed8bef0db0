package actions

import (
	"fmt"

	"actionpin.dev/actionpin/internal/action"
	"actionpin.dev/actionpin/internal/runtime"
)

// ResolveAction resolves a single owner/repo[/path]@ref and returns the commit identifier
func ResolveAction(ctx *runtime.Context, arg string) (string, error) {
	ref, err := action.Parse(arg)
	if err != nil {
		return "", err
	}
	if ctx.Resolver == nil {
		return "", fmt.Errorf("no resolver configured")
	}

	sha, err := ctx.Resolver.Resolve(ctx.Context, ref)
	if err != nil {
		return "", err
	}
	ctx.Splog.Debug("Resolved %s to %s", ref, sha)
	return sha, nil
}
