package registration

import (
	"errors"
	"strings"
)

// ErrNotInline reports input that is not a one-shot registration at all, as
// opposed to one that is but carries an invalid sub-field.
var ErrNotInline = errors.New("not an inline registration")

// ParseInline handles the stateless one-shot path: a single message with
// name, car, phone and people separated by commas. Validators are applied
// positionally; any sub-field failure rejects the whole input with one
// combined error and nothing is stored.
func ParseInline(text string) (Draft, error) {
	var d Draft
	parts := strings.Split(text, ",")
	if len(parts) != 4 {
		return d, ErrNotInline
	}

	var errs []error
	name, err := ValidateName(parts[0])
	if err != nil {
		errs = append(errs, err)
	}
	car, err := ValidateCar(parts[1])
	if err != nil {
		errs = append(errs, err)
	}
	phone, err := ValidatePhone(parts[2], nil)
	if err != nil {
		errs = append(errs, err)
	}
	people, err := ValidatePeople(parts[3])
	if err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return Draft{}, errors.Join(errs...)
	}

	d.Name = name
	d.Car = car
	d.Phone = phone
	d.People = people
	return d, nil
}
