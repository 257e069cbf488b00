// Package registration holds the domain model for festival registrations:
// the persisted record, the in-progress draft, field specifications and the
// pure validators applied to raw user input.
package registration

import (
	"strconv"
	"time"
)

// Payment status values stored in registrations.pay_status.
const (
	// PayPending marks a completed registration awaiting payment confirmation.
	PayPending = "pending"
	// PayPaid marks a registration whose payment an admin confirmed.
	PayPaid = "paid"
	// PayUnpaid marks a registration whose payment an admin rejected.
	PayUnpaid = "unpaid"
)

// Discipline values for the optional race participation branch.
const (
	DisciplineTrial  = "trial"
	DisciplineSprint = "sprint"
)

// Registration is one persisted registrant record. TgID is unique: a repeat
// completion for the same user overwrites the row instead of duplicating it.
type Registration struct {
	ID            int64      `db:"id"`
	TgID          int64      `db:"tg_id"`
	Lang          string     `db:"lang"`
	Name          string     `db:"name"`
	Car           string     `db:"car"`
	Plate         *string    `db:"plate"`
	Phone         *string    `db:"phone"`
	People        int        `db:"people"`
	Participation *bool      `db:"participation"`
	Discipline    *string    `db:"discipline"`
	PayStatus     string     `db:"pay_status"`
	PhotoFileID   *string    `db:"photo_file_id"`
	ReceiptFileID *string    `db:"receipt_file_id"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

// Draft accumulates validated field values for one in-progress conversation.
// Zero values mean "not collected yet"; optional branches stay zero when the
// deployment does not configure them.
type Draft struct {
	Lang          string
	Name          string
	Car           string
	Plate         string
	Phone         string
	People        int
	Participation *bool
	Discipline    string
	PhotoFileID   string
}

// Filled reports whether the draft has a value for the given field.
func (d *Draft) Filled(f Field) bool {
	switch f {
	case FieldName:
		return d.Name != ""
	case FieldCar:
		return d.Car != ""
	case FieldPlate:
		return d.Plate != ""
	case FieldParticipation:
		return d.Participation != nil
	case FieldDiscipline:
		return d.Discipline != ""
	case FieldPhone:
		return d.Phone != ""
	case FieldPeople:
		return d.People != 0
	case FieldPhoto:
		return d.PhotoFileID != ""
	}
	return false
}

// Current returns the draft value for a field rendered for prompts, or "".
func (d *Draft) Current(f Field) string {
	switch f {
	case FieldName:
		return d.Name
	case FieldCar:
		return d.Car
	case FieldPlate:
		return d.Plate
	case FieldPhone:
		return d.Phone
	case FieldDiscipline:
		return d.Discipline
	case FieldPeople:
		if d.People > 0 {
			return strconv.Itoa(d.People)
		}
	}
	return ""
}

func optStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Record converts an accumulated draft into a Registration ready for upsert.
func (d *Draft) Record(tgID int64) Registration {
	r := Registration{
		TgID:          tgID,
		Lang:          d.Lang,
		Name:          d.Name,
		Car:           d.Car,
		Plate:         optStr(d.Plate),
		Phone:         optStr(d.Phone),
		People:        d.People,
		Participation: d.Participation,
		Discipline:    optStr(d.Discipline),
		PhotoFileID:   optStr(d.PhotoFileID),
	}
	return r
}
