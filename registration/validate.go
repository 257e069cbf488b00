package registration

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ValidationError rejects one raw input for one field. It is local to a
// conversation turn: the engine re-prompts the same field and discards the
// input, so validators must stay free of side effects.
type ValidationError struct {
	Field  Field
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Code implements the error-code hook used by handler summary logging.
func (e *ValidationError) Code() string { return "VALIDATION" }

func invalid(f Field, reason string) *ValidationError {
	return &ValidationError{Field: f, Reason: reason}
}

// quoteChars covers ASCII and the common Unicode quotes users paste around
// car names.
const quoteChars = " '\"`“”„‟‹›«»"

const (
	PeopleMin = 1
	PeopleMax = 50
)

var (
	phoneRe  = regexp.MustCompile(`^[+0-9)( -]{7,20}$`)
	digitsRe = regexp.MustCompile(`[0-9]+`)
	// phoneStripRe removes everything except digits and a leading plus.
	phoneStripRe = regexp.MustCompile(`[^+0-9]`)
)

// ValidateName trims the input and requires at least two characters.
func ValidateName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if len([]rune(name)) < 2 {
		return "", invalid(FieldName, "too short")
	}
	return name, nil
}

// ValidateCar strips surrounding whitespace and quote characters and requires
// at least two characters of make/model.
func ValidateCar(raw string) (string, error) {
	car := strings.Trim(strings.TrimSpace(raw), quoteChars)
	if len([]rune(car)) < 2 {
		return "", invalid(FieldCar, "too short")
	}
	return car, nil
}

// ValidatePlate trims and upper-cases the plate number; minimum 4 characters.
func ValidatePlate(raw string) (string, error) {
	plate := strings.ToUpper(strings.TrimSpace(raw))
	if len([]rune(plate)) < 4 {
		return "", invalid(FieldPlate, "too short")
	}
	return plate, nil
}

// ValidatePhone accepts digits, a leading plus, spaces, parentheses and
// hyphens, 7 to 20 characters. When strict is non-nil the normalized number
// must additionally match it (country-code variants). The returned value is
// normalized: every character except digits and '+' is stripped.
func ValidatePhone(raw string, strict *regexp.Regexp) (string, error) {
	phone := strings.TrimSpace(raw)
	if !phoneRe.MatchString(phone) {
		return "", invalid(FieldPhone, "bad format")
	}
	normalized := phoneStripRe.ReplaceAllString(phone, "")
	if strict != nil && !strict.MatchString(normalized) {
		return "", invalid(FieldPhone, "pattern mismatch")
	}
	return normalized, nil
}

// ValidatePeople extracts the digit run from the input and requires a value
// in [PeopleMin, PeopleMax]. Non-numeric and out-of-range inputs produce the
// same rejection on purpose.
func ValidatePeople(raw string) (int, error) {
	digits := strings.Join(digitsRe.FindAllString(raw, -1), "")
	if digits == "" {
		return 0, invalid(FieldPeople, "not a number")
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < PeopleMin || n > PeopleMax {
		return 0, invalid(FieldPeople, "out of range")
	}
	return n, nil
}

// yes/no vocabulary is shared across locales: the festival keyboards carry
// bilingual labels, so containment matching covers both languages at once.
var (
	yesWords = []string{"да", "ha", "yes", "👍"}
	noWords  = []string{"нет", "yo‘q", "yo'q", "no", "👎"}
)

// ParseYesNo classifies a short answer against the yes/no vocabulary using
// case-insensitive containment. Unrecognized input returns ok=false and the
// caller re-prompts unchanged.
func ParseYesNo(raw string) (value, ok bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return false, false
	}
	for _, w := range noWords {
		if strings.Contains(s, w) {
			return false, true
		}
	}
	for _, w := range yesWords {
		if strings.Contains(s, w) {
			return true, true
		}
	}
	return false, false
}

// ParseDiscipline maps a menu answer to a discipline constant.
func ParseDiscipline(raw string) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(s, "триал") || strings.Contains(s, "trial"):
		return DisciplineTrial, true
	case strings.Contains(s, "спринт") || strings.Contains(s, "sprint"):
		return DisciplineSprint, true
	}
	return "", false
}
