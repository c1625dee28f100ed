package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/altai/formrelay/internal/models"
)

// FieldError names the first field of a submission that broke a rule.
type FieldError struct {
	Field string
	Rule  string
	msg   string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s failed %s", e.Field, e.Rule)
}

// Message is the text shown to the person filling the form.
func (e *FieldError) Message() string {
	if e.msg != "" {
		return e.msg
	}
	return fmt.Sprintf("El campo %s es obligatorio.", e.Field)
}

// FieldRule is one row of the pattern table.
type FieldRule struct {
	Field   string
	Tag     string
	Message string
}

// RuleSet validates submissions for one form profile: a presence pass over
// the required fields followed by the pattern pass, first failure wins.
type RuleSet struct {
	validate *validator.Validate
	required []string
	rules    []FieldRule
}

// NewRuleSet builds the rule table for profile.
func NewRuleSet(v *validator.Validate, profile models.FormProfile) *RuleSet {
	minName := profile.NameMinLength
	if minName < 1 {
		minName = 1
	}
	nameTag := fmt.Sprintf("%s=%d", TagPersonName, minName)
	nameMsg := "El campo %s solo admite letras y espacios (mínimo %d caracteres)."

	rules := []FieldRule{
		{Field: models.FieldFirstName, Tag: nameTag, Message: fmt.Sprintf(nameMsg, models.FieldFirstName, minName)},
	}
	// last_name gets the name pattern only where the profile asks for it;
	// elsewhere it is forwarded as typed when present.
	if profile.RequireLastName {
		rules = append(rules, FieldRule{Field: models.FieldLastName, Tag: nameTag, Message: fmt.Sprintf(nameMsg, models.FieldLastName, minName)})
	}
	rules = append(rules,
		FieldRule{Field: models.FieldPhone, Tag: TagPhoneDigits, Message: "El campo phone debe contener 10 dígitos."},
		FieldRule{Field: models.FieldEmail, Tag: TagLeadEmail, Message: "El campo email no tiene un formato válido."},
	)

	return &RuleSet{
		validate: v,
		required: profile.RequiredFields(),
		rules:    rules,
	}
}

// Check returns nil when s passes every rule, otherwise a *FieldError for
// the first violation.
func (r *RuleSet) Check(s *models.Submission) error {
	for _, field := range r.required {
		if err := r.validate.Var(s.Value(field), "required"); err != nil {
			return &FieldError{Field: field, Rule: "required"}
		}
	}

	for _, rule := range r.rules {
		value := s.Value(rule.Field)
		if value == "" {
			continue
		}
		if err := r.validate.Var(value, rule.Tag); err != nil {
			return &FieldError{Field: rule.Field, Rule: tagOf(err), msg: rule.Message}
		}
	}

	return nil
}
