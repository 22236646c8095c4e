package onboarding

import (
	"employee-onboarding-backend/internal/domain"
	"employee-onboarding-backend/pkg/validation"
)

// Field binds a record field to an ordered rule list. Rules short-circuit
// within one field only.
type Field struct {
	Name  string
	Value func(r *domain.Record) interface{}
	Rules []validation.Rule
}

// Refinement checks relationships between fields that a single-field rule
// cannot express. It sees the whole record and reports errors by field path.
type Refinement struct {
	Name  string
	Check func(r *domain.Record) domain.FieldErrors
}

// Schema is the validation contract of one step.
type Schema struct {
	Step        domain.StepID
	Fields      []Field
	Refinements []Refinement
}

// With returns a copy of the schema carrying the obligations that target its
// step. An obligation on a field the schema already knows extends that
// field's rule list.
func (s Schema) With(obligations []Obligation) Schema {
	out := Schema{
		Step:        s.Step,
		Fields:      make([]Field, len(s.Fields)),
		Refinements: s.Refinements,
	}
	copy(out.Fields, s.Fields)

	for _, ob := range obligations {
		if ob.Step != s.Step {
			continue
		}
		merged := false
		for i := range out.Fields {
			if out.Fields[i].Name == ob.Field.Name {
				rules := make([]validation.Rule, 0, len(ob.Field.Rules)+len(out.Fields[i].Rules))
				rules = append(rules, ob.Field.Rules...)
				out.Fields[i].Rules = append(rules, out.Fields[i].Rules...)
				merged = true
				break
			}
		}
		if !merged {
			out.Fields = append(out.Fields, ob.Field)
		}
	}
	return out
}

// Validate runs every field and every refinement and collects all failures.
// A field keeps the first message reported for it.
func (s Schema) Validate(r *domain.Record) domain.FieldErrors {
	errs := domain.FieldErrors{}
	for _, f := range s.Fields {
		if ok, reason := validation.Run(f.Value(r), f.Rules...); !ok {
			if _, exists := errs[f.Name]; !exists {
				errs[f.Name] = reason
			}
		}
	}
	for _, ref := range s.Refinements {
		errs.Merge(ref.Check(r))
	}
	return errs
}
