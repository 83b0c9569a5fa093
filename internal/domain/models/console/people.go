package console

import (
	"strings"
	"time"
)

// User is an account of the consumer application (a parent).
type User struct {
	ID        string      `json:"_id"`
	Name      string      `json:"name"`
	Lastname  string      `json:"lastname"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone,omitempty"`
	City      string      `json:"city,omitempty"`
	Role      string      `json:"role,omitempty"`
	IsActive  *bool       `json:"isActive,omitempty"`
	Babies    []Ref[Baby] `json:"babies,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

func (u User) RecordID() string { return u.ID }

// Active applies the legacy default to the activity flag.
func (u User) Active() bool { return EffectiveActive(u.IsActive) }

// FullName joins name and lastname.
func (u User) FullName() string {
	return strings.TrimSpace(u.Name + " " + u.Lastname)
}

// Baby is a child profile attached to a parent account.
type Baby struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Birthday  time.Time `json:"birthday"`
	Gender    string    `json:"gender,omitempty"`
	Weight    *float64  `json:"weight,omitempty"`
	Height    *float64  `json:"height,omitempty"`
	Allergy   string    `json:"allergy,omitempty"`
	Disease   string    `json:"disease,omitempty"`
	Parent    Ref[User] `json:"parent"`
	CreatedAt time.Time `json:"createdAt"`
}

func (b Baby) RecordID() string { return b.ID }

// AgeInDays returns the baby's age at now, false without a birthday.
func (b Baby) AgeInDays(now time.Time) (int, bool) {
	if b.Birthday.IsZero() {
		return 0, false
	}
	return int(now.Sub(b.Birthday).Hours() / 24), true
}

// ParentName returns the populated parent's full name, "" when unpopulated.
func (b Baby) ParentName() string {
	if parent, ok := b.Parent.Record(); ok {
		return parent.FullName()
	}
	return ""
}

// Doctor is a practitioner listed in the application's directory.
type Doctor struct {
	ID        string   `json:"_id"`
	Name      string   `json:"name"`
	Lastname  string   `json:"lastname"`
	Specialty string   `json:"specialty,omitempty"`
	City      string   `json:"city,omitempty"`
	Address   string   `json:"address,omitempty"`
	Phone     string   `json:"phone,omitempty"`
	Email     string   `json:"email,omitempty"`
	Rating    *float64 `json:"rating,omitempty"`
	IsActive  *bool    `json:"isActive,omitempty"`
}

func (d Doctor) RecordID() string { return d.ID }

// Active applies the legacy default to the activity flag.
func (d Doctor) Active() bool { return EffectiveActive(d.IsActive) }

// FullName joins name and lastname.
func (d Doctor) FullName() string {
	return strings.TrimSpace(d.Name + " " + d.Lastname)
}

// Avatar is a picture users can pick for a baby profile.
type Avatar struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Image    string `json:"image"`
	Gender   string `json:"gender,omitempty"`
	IsActive *bool  `json:"isActive,omitempty"`
}

func (a Avatar) RecordID() string { return a.ID }

// Active applies the legacy default to the activity flag.
func (a Avatar) Active() bool { return EffectiveActive(a.IsActive) }
