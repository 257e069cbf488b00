package registration

import (
	"fmt"
	"strings"
)

// Field identifies one collectable registration field. The conversation
// engine is configured with an ordered list of fields per deployment instead
// of hard-coding optional branches.
type Field string

const (
	FieldName          Field = "name"
	FieldCar           Field = "car"
	FieldPlate         Field = "plate"
	FieldParticipation Field = "participation"
	FieldDiscipline    Field = "discipline"
	FieldPhone         Field = "phone"
	FieldPeople        Field = "people"
	FieldPhoto         Field = "photo"
)

// DefaultFields is the minimal deployment variant: the original festival flow.
var DefaultFields = []Field{FieldName, FieldCar, FieldPhone, FieldPeople}

// AllFields lists every supported field in canonical collection order.
var AllFields = []Field{
	FieldName,
	FieldCar,
	FieldPlate,
	FieldParticipation,
	FieldDiscipline,
	FieldPhone,
	FieldPeople,
	FieldPhoto,
}

var knownFields = func() map[Field]struct{} {
	m := make(map[Field]struct{}, len(AllFields))
	for _, f := range AllFields {
		m[f] = struct{}{}
	}
	return m
}()

// ParseFields validates a configured field sequence. Name, car, phone and
// people are mandatory in every variant; discipline requires participation to
// be collected first.
func ParseFields(names []string) ([]Field, error) {
	if len(names) == 0 {
		return append([]Field(nil), DefaultFields...), nil
	}
	fields := make([]Field, 0, len(names))
	seen := make(map[Field]struct{}, len(names))
	for _, raw := range names {
		f := Field(strings.ToLower(strings.TrimSpace(raw)))
		if f == "" {
			continue
		}
		if _, ok := knownFields[f]; !ok {
			return nil, fmt.Errorf("unknown registration field %q", raw)
		}
		if _, dup := seen[f]; dup {
			return nil, fmt.Errorf("duplicate registration field %q", f)
		}
		seen[f] = struct{}{}
		fields = append(fields, f)
	}
	for _, required := range DefaultFields {
		if _, ok := seen[required]; !ok {
			return nil, fmt.Errorf("field sequence must include %q", required)
		}
	}
	if _, ok := seen[FieldDiscipline]; ok {
		if _, part := seen[FieldParticipation]; !part {
			return nil, fmt.Errorf("field %q requires %q", FieldDiscipline, FieldParticipation)
		}
	}
	return fields, nil
}
