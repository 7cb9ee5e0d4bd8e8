package validation

// Location says where a rule finds its field.
type Location string

const (
	LocationParams Location = "params"
	LocationBody   Location = "body"
)

// Rule checks one field against one validator tag.
// A failed rule produces exactly one Violation carrying Message.
type Rule struct {
	Field    string
	Location Location
	Tag      string
	Message  string
}

// RuleSet is an ordered list of rules. Every rule is evaluated, and
// violations are reported in declaration order.
type RuleSet []Rule

// Param declares a rule on a path parameter.
func Param(field, tag, message string) Rule {
	return Rule{Field: field, Location: LocationParams, Tag: tag, Message: message}
}

// Body declares a rule on a JSON body field.
func Body(field, tag, message string) Rule {
	return Rule{Field: field, Location: LocationBody, Tag: tag, Message: message}
}

// Join concatenates rule sets, preserving order.
func Join(sets ...RuleSet) RuleSet {
	var n int
	for _, s := range sets {
		n += len(s)
	}
	out := make(RuleSet, 0, n)
	for _, s := range sets {
		out = append(out, s...)
	}
	return out
}

// Violation is one failed rule as reported to the client.
type Violation struct {
	Type     string   `json:"type"`
	Value    any      `json:"value,omitempty"`
	Msg      string   `json:"msg"`
	Path     string   `json:"path"`
	Location Location `json:"location"`
}
