package rules

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/nhle/team-tracker/internal/model"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// canonicalPoints is the fixed run-rate score for each task type.
var canonicalPoints = map[string]int{
	model.TaskTypeSmall:  1,
	model.TaskTypeMedium: 3,
	model.TaskTypeLarge:  5,
}

// CanonicalPoints returns the point value for taskType.
func CanonicalPoints(taskType string) (int, bool) {
	p, ok := canonicalPoints[taskType]
	return p, ok
}

// ValidateTaskPoints reports whether points is the canonical value for taskType.
// Callers correct mismatches instead of rejecting them.
func ValidateTaskPoints(taskType string, points int) bool {
	p, ok := canonicalPoints[taskType]
	return ok && p == points
}

// NormalizeTaskPoints overwrites t.Points with the canonical value for
// t.TaskType. Unknown types are left alone; Validate rejects them.
func NormalizeTaskPoints(t *model.PersonalTask) {
	if ValidateTaskPoints(t.TaskType, t.Points) {
		return
	}
	if p, ok := canonicalPoints[t.TaskType]; ok {
		t.Points = p
	}
}

// Validate checks v's struct tags. Failures are model.ErrValidation errors
// naming every offending field.
func Validate(op string, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return model.Validationf(op, "%v", err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s: failed %s", fe.Field(), fe.Tag()))
	}
	return model.Validationf(op, "%s", strings.Join(msgs, "; "))
}

// ValidateDate checks that s is an ISO-8601 calendar date.
func ValidateDate(op, name, s string) error {
	if err := validate.Var(s, "required,datetime=2006-01-02"); err != nil {
		return model.Validationf(op, "%s must be a YYYY-MM-DD date, got %q", name, s)
	}
	return nil
}
