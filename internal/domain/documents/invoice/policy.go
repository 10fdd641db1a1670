package invoice

import (
	"fmt"

	"github.com/google/cel-go/cel"

	"factura/internal/core/apperror"
)

// Status transition rules are configurable per deployment: a CEL expression
// over the variables `from` and `to` decides whether a change is allowed.
const (
	// PermissiveTransitionExpr allows every transition.
	PermissiveTransitionExpr = "true"

	// StrictTransitionExpr encodes the usual invoice lifecycle:
	// draft -> sent | cancelled, sent -> paid | cancelled | overdue,
	// overdue -> paid | cancelled.
	StrictTransitionExpr = `(from == 'draft' && (to == 'sent' || to == 'cancelled')) ||
(from == 'sent' && (to == 'paid' || to == 'cancelled' || to == 'overdue')) ||
(from == 'overdue' && (to == 'paid' || to == 'cancelled'))`
)

// TransitionPolicy evaluates a compiled CEL expression for status changes.
type TransitionPolicy struct {
	expr    string
	program cel.Program
}

// NewTransitionPolicy compiles expr into a policy.
func NewTransitionPolicy(expr string) (*TransitionPolicy, error) {
	env, err := cel.NewEnv(
		cel.Variable("from", cel.StringType),
		cel.Variable("to", cel.StringType),
	)
	if err != nil {
		return nil, fmt.Errorf("create policy environment: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile transition policy: %w", issues.Err())
	}
	if ast.OutputType() != cel.BoolType {
		return nil, fmt.Errorf("transition policy must evaluate to bool, got %s", ast.OutputType())
	}

	program, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("build transition program: %w", err)
	}

	return &TransitionPolicy{expr: expr, program: program}, nil
}

// MustTransitionPolicy compiles expr or panics. Use for the built-in
// expressions and tests.
func MustTransitionPolicy(expr string) *TransitionPolicy {
	p, err := NewTransitionPolicy(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// Check returns a validation error when the transition from -> to is not
// allowed by the policy. Identical statuses always pass.
func (p *TransitionPolicy) Check(from, to Status) error {
	if from == to {
		return nil
	}

	out, _, err := p.program.Eval(map[string]any{
		"from": string(from),
		"to":   string(to),
	})
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("evaluate transition policy: %w", err))
	}

	allowed, ok := out.Value().(bool)
	if !ok {
		return apperror.NewInternal(fmt.Errorf("transition policy returned %T, want bool", out.Value()))
	}
	if !allowed {
		return apperror.NewValidation("status transition not allowed").
			WithDetail("from", string(from)).
			WithDetail("to", string(to))
	}
	return nil
}
