package domain

import "context"

// Severity captures rule outcomes.
type Severity string

// Rule evaluation severities determine registration behavior and logging.
const (
	// SeverityBlock rejects the registration.
	SeverityBlock Severity = "block"
	// SeverityWarn records a warning but allows registration.
	SeverityWarn Severity = "warn"
	SeverityLog  Severity = "log"
)

// Violation reports a failed rule evaluation.
type Violation struct {
	Rule     string
	Severity Severity
	Message  string
	Recipe   RecipeID
}

// Result aggregates violations from the rules engine.
type Result struct {
	Violations []Violation
}

// Merge appends violations from another result.
func (r *Result) Merge(other Result) {
	if len(other.Violations) == 0 {
		return
	}
	r.Violations = append(r.Violations, other.Violations...)
}

// HasBlocking returns true if the result contains blocking violations.
func (r Result) HasBlocking() bool {
	for _, v := range r.Violations {
		if v.Severity == SeverityBlock {
			return true
		}
	}
	return false
}

// RuleViolationError is returned when blocking violations are present.
type RuleViolationError struct {
	Result Result
}

func (e RuleViolationError) Error() string {
	return "recipe registration blocked by rules"
}

// RecipeView provides read-only access to registered content for rule
// evaluation.
type RecipeView interface {
	Recipes() []RecipeHandle
	ByResult(item ItemID) []RecipeHandle
	LookupItem(id ItemID) (string, bool)
	LookupTile(id TileID) (string, bool)
}

// Rule defines a validation executed when a definition reaches the recipe
// registry.
type Rule interface {
	Name() string
	Evaluate(ctx context.Context, view RecipeView, def RecipeDefinition) (Result, error)
}

// RulesEngine orchestrates rule evaluation.
type RulesEngine struct {
	rules []Rule
}

// NewRulesEngine constructs an engine instance.
func NewRulesEngine() *RulesEngine {
	return &RulesEngine{}
}

// Register appends a rule to the engine. Nil rules are ignored.
func (e *RulesEngine) Register(rule Rule) {
	if rule == nil {
		return
	}
	e.rules = append(e.rules, rule)
}

// Rules returns a copy of the registered rules.
func (e *RulesEngine) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Evaluate executes all registered rules and aggregates their results.
func (e *RulesEngine) Evaluate(ctx context.Context, view RecipeView, def RecipeDefinition) (Result, error) {
	var combined Result
	for _, rule := range e.rules {
		res, err := rule.Evaluate(ctx, view, def)
		if err != nil {
			return Result{}, err
		}
		combined.Merge(res)
	}
	return combined, nil
}
