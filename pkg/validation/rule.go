package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Check is one step of a Rule. Test reports whether the value passes;
// Message is returned on failure.
type Check struct {
	Message string
	Test    func(string) bool
}

// Rule validates a field value. Checks run in order and the first failing
// check wins, so format checks must precede checksum checks.
type Rule struct {
	// Trim applies strings.TrimSpace before any check runs.
	Trim bool
	// Optional accepts an empty (post-trim) value without running checks.
	Optional bool
	Checks   []Check
}

// Validate returns the first failure message, or "" when value satisfies
// the rule.
func (r Rule) Validate(value string) string {
	if r.Trim {
		value = strings.TrimSpace(value)
	}
	if r.Optional && value == "" {
		return ""
	}
	for _, check := range r.Checks {
		if check.Test == nil || check.Test(value) {
			continue
		}
		if check.Message == "" {
			return PortugueseMessages[MsgFallback]
		}
		return check.Message
	}
	return ""
}

// MinLen fails when value has fewer than n characters.
func MinLen(n int, message string) Check {
	return Check{
		Message: message,
		Test: func(value string) bool {
			return utf8.RuneCountInString(value) >= n
		},
	}
}

// MaxLen fails when value has more than n characters.
func MaxLen(n int, message string) Check {
	return Check{
		Message: message,
		Test: func(value string) bool {
			return utf8.RuneCountInString(value) <= n
		},
	}
}

// Matches fails when value does not match re.
func Matches(re *regexp.Regexp, message string) Check {
	return Check{
		Message: message,
		Test:    re.MatchString,
	}
}

// Satisfies wraps an arbitrary predicate such as a checksum algorithm.
func Satisfies(pred func(string) bool, message string) Check {
	return Check{
		Message: message,
		Test:    pred,
	}
}

var emailShape = regexp.MustCompile(`^[A-Za-z0-9_'+\-.]*[A-Za-z0-9_+\-]@([A-Za-z0-9][A-Za-z0-9\-]*\.)+[A-Za-z]{2,}$`)

// Email fails for values that are not a plain mailbox address.
func Email(message string) Check {
	return Check{
		Message: message,
		Test:    IsEmail,
	}
}

// IsEmail reports whether value looks like local@domain.tld. Local parts may
// not start with a dot or contain consecutive dots.
func IsEmail(value string) bool {
	if strings.HasPrefix(value, ".") || strings.Contains(value, "..") {
		return false
	}
	return emailShape.MatchString(value)
}

// Issue describes a single failed field.
type Issue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (i Issue) Error() string {
	if i.Field == "" {
		return i.Message
	}
	return fmt.Sprintf("%s: %s", i.Field, i.Message)
}

// Result aggregates the issues of a multi-field validation.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// Messages indexes the result issues by field.
func (r Result) Messages() map[string]string {
	if len(r.Issues) == 0 {
		return nil
	}
	out := make(map[string]string, len(r.Issues))
	for _, issue := range r.Issues {
		if _, exists := out[issue.Field]; exists {
			continue
		}
		out[issue.Field] = issue.Message
	}
	return out
}
