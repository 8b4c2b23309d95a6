package encore

import (
	"fmt"
	"slices"
)

// Directive names handled by the resolver.
const (
	DirectiveLinkTags   = "link_tags"
	DirectiveScriptTags = "script_tags"
	DirectiveAsset      = "asset"

	// Names used by the Nunjucks Encore extension, accepted as aliases.
	LegacyDirectiveLinkTags   = "encore_entry_link_tags"
	LegacyDirectiveScriptTags = "encore_entry_script_tags"
)

// Token is a lexer token as seen by the parse hook.
type Token struct {
	Value string
}

// Expr is an unevaluated argument expression owned by the host engine.
type Expr any

// Parser is the part of a host template parser the parse hook needs.
type Parser interface {
	// NextToken consumes and returns the directive token.
	NextToken() Token
	// ParseSignature parses the argument expression list. Parentheses are
	// optional.
	ParseSignature() ([]Expr, error)
	// AdvanceAfterBlockEnd consumes the block end of the named directive.
	AdvanceAfterBlockEnd(name string) error
}

// CallNode is a deferred call produced at parse time. The host evaluates
// Args at render time and hands the values to Render.
type CallNode struct {
	Resolver *Resolver
	Name     string
	Args     []Expr
}

// Tags returns the directive names the resolver implements.
func (r *Resolver) Tags() []string {
	return []string{DirectiveLinkTags, DirectiveScriptTags, DirectiveAsset}
}

// LegacyTags returns the directive names of the Nunjucks Encore extension.
func (r *Resolver) LegacyTags() []string {
	return []string{LegacyDirectiveLinkTags, LegacyDirectiveScriptTags, DirectiveAsset}
}

// Supports reports whether name is a directive the resolver implements,
// under either naming scheme.
func (r *Resolver) Supports(name string) bool {
	return slices.Contains(r.Tags(), name) || slices.Contains(r.LegacyTags(), name)
}

// Parse is the parse-time hook: it reads the directive token and its
// arguments, moves past the block end, and returns the deferred call.
// Parser errors are returned unchanged. Returns ErrUnknownDirective if the
// token names a directive the resolver does not implement.
func (r *Resolver) Parse(p Parser) (*CallNode, error) {
	tok := p.NextToken()
	if !r.Supports(tok.Value) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDirective, tok.Value)
	}

	args, err := p.ParseSignature()
	if err != nil {
		return nil, fmt.Errorf("parsing %s arguments: %w", tok.Value, err)
	}

	if err := p.AdvanceAfterBlockEnd(tok.Value); err != nil {
		return nil, fmt.Errorf("closing %s: %w", tok.Value, err)
	}

	return &CallNode{Resolver: r, Name: tok.Value, Args: args}, nil
}

// Render evaluates the node's arguments with eval and invokes the matching
// operation. Evaluation errors are returned; resolution itself never fails.
func (n *CallNode) Render(renderCtx any, eval func(Expr) (any, error)) (SafeString, error) {
	values := make([]any, 0, len(n.Args))
	for _, arg := range n.Args {
		v, err := eval(arg)
		if err != nil {
			return SafeString{}, fmt.Errorf("evaluating %s argument: %w", n.Name, err)
		}
		values = append(values, v)
	}
	return n.Resolver.Call(n.Name, renderCtx, values...)
}

// Call invokes the operation registered under name with evaluated
// arguments. Values are converted with fmt.Sprint; nil values are skipped.
// Returns ErrUnknownDirective for names the resolver does not implement.
func (r *Resolver) Call(name string, renderCtx any, args ...any) (SafeString, error) {
	strArgs := stringArgs(args)

	switch name {
	case DirectiveLinkTags, LegacyDirectiveLinkTags:
		return r.LinkTags(renderCtx, strArgs...), nil
	case DirectiveScriptTags, LegacyDirectiveScriptTags:
		return r.ScriptTags(renderCtx, strArgs...), nil
	case DirectiveAsset:
		return r.Asset(renderCtx, strArgs...), nil
	default:
		return SafeString{}, fmt.Errorf("%w: %q", ErrUnknownDirective, name)
	}
}

func stringArgs(args []any) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		switch v := a.(type) {
		case nil:
			continue
		case string:
			out = append(out, v)
		default:
			out = append(out, fmt.Sprint(v))
		}
	}
	return out
}
