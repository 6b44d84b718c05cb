package validation

import (
	"context"

	domainerrors "github.com/foodgramapp/foodgram-server/internal/errors"
)

// CheckFunc inspects one aspect of a request. It returns a non-empty
// message when the request breaks the rule, and an error only when the
// check itself could not run (for example a failed store lookup).
type CheckFunc func(ctx context.Context) (string, error)

// Rule binds a check to the request field it reports on.
type Rule struct {
	Field string
	Check CheckFunc
}

// Pipeline is an ordered list of rules run after struct-tag validation.
// Once a field has failed, later rules for that field are skipped, so
// expensive checks can rely on the cheap ones before them having passed.
type Pipeline struct {
	validator *Validator
	rules     []Rule
}

// NewPipeline creates an empty pipeline backed by v for struct tags.
func NewPipeline(v *Validator) *Pipeline {
	return &Pipeline{validator: v}
}

// Add appends a rule for field and returns the pipeline for chaining.
func (p *Pipeline) Add(field string, check CheckFunc) *Pipeline {
	p.rules = append(p.rules, Rule{Field: field, Check: check})
	return p
}

// Run validates req's struct tags, then runs every rule in order.
// It returns a validation error whose details map each failing field to
// its first message, or nil when everything passes.
func (p *Pipeline) Run(ctx context.Context, req any) error {
	details := map[string]string{}
	message := ""

	if p.validator != nil && req != nil {
		fieldErrs, err := p.validator.FieldErrors(req)
		if err != nil {
			return err
		}
		for field, msg := range fieldErrs {
			details[field] = msg
		}
	}

	for _, rule := range p.rules {
		if _, failed := details[rule.Field]; failed {
			continue
		}
		msg, err := rule.Check(ctx)
		if err != nil {
			return err
		}
		if msg == "" {
			continue
		}
		details[rule.Field] = msg
		if message == "" {
			message = msg
		}
	}

	if len(details) == 0 {
		return nil
	}
	if message == "" {
		message = "validation failed"
	}
	return domainerrors.ValidationWithDetails(message, details)
}
