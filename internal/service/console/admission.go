package console

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/Hazembel/mamaty-dashboard-sub000/internal/config"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/domain"
	records "github.com/Hazembel/mamaty-dashboard-sub000/internal/domain/models/console"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/scheduling"
)

// required is Required on create and NilOrNotEmpty on update: a partial
// update may omit the field but cannot blank it.
func required(create bool) validation.Rule {
	return validation.When(create, validation.Required).Else(validation.NilOrNotEmpty)
}

func title(create bool) []validation.Rule {
	return []validation.Rule{required(create), validation.RuneLength(1, config.MaxTitleLength)}
}

type personInput struct {
	Name     *string `json:"name"`
	Lastname *string `json:"lastname"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
}

func (in *personInput) rules(create, emailRequired bool) []*validation.FieldRules {
	var emailRule validation.Rule = validation.NilOrNotEmpty
	if emailRequired {
		emailRule = required(create)
	}
	return []*validation.FieldRules{
		validation.Field(&in.Name, title(create)...),
		validation.Field(&in.Lastname, title(create)...),
		validation.Field(&in.Email, emailRule, is.EmailFormat),
		validation.Field(&in.Phone, validation.RuneLength(6, 20)),
	}
}

func admitUser(m *Mutation[records.User]) error {
	var in personInput
	if err := m.Decode(&in); err != nil {
		return err
	}
	return fieldError(validation.ValidateStruct(&in, in.rules(m.Op == OpCreate, true)...))
}

func admitDoctor(m *Mutation[records.Doctor]) error {
	var in struct {
		personInput
		Rating *float64 `json:"rating"`
	}
	if err := m.Decode(&in); err != nil {
		return err
	}
	rules := append(in.personInput.rules(m.Op == OpCreate, false),
		validation.Field(&in.Rating, validation.Min(0.0), validation.Max(5.0)),
	)
	return fieldError(validation.ValidateStruct(&in, rules...))
}

func admitBaby(m *Mutation[records.Baby]) error {
	create := m.Op == OpCreate
	in := struct {
		Name     *string    `json:"name"`
		Birthday *time.Time `json:"birthday"`
		Weight   *float64   `json:"weight"`
		Height   *float64   `json:"height"`
		Parent   *string    `json:"parent"`
	}{}
	if err := m.Decode(&in); err != nil {
		return err
	}
	return fieldError(validation.ValidateStruct(&in,
		validation.Field(&in.Name, title(create)...),
		validation.Field(&in.Birthday, required(create), validation.By(notAfter(m.Now))),
		validation.Field(&in.Weight, validation.Min(0.0)),
		validation.Field(&in.Height, validation.Min(0.0)),
		validation.Field(&in.Parent, required(create)),
	))
}

func notAfter(now time.Time) validation.RuleFunc {
	return func(value interface{}) error {
		t, ok := value.(*time.Time)
		if !ok || t == nil {
			return nil
		}
		if t.After(now) {
			return errors.New("must not be in the future")
		}
		return nil
	}
}

func admitCategory(m *Mutation[records.Category]) error {
	var in struct {
		Title *string `json:"title"`
	}
	if err := m.Decode(&in); err != nil {
		return err
	}
	return fieldError(validation.ValidateStruct(&in,
		validation.Field(&in.Title, title(m.Op == OpCreate)...),
	))
}

func admitAvatar(m *Mutation[records.Avatar]) error {
	create := m.Op == OpCreate
	var in struct {
		Name  *string `json:"name"`
		Image *string `json:"image"`
	}
	if err := m.Decode(&in); err != nil {
		return err
	}
	return fieldError(validation.ValidateStruct(&in,
		validation.Field(&in.Name, title(create)...),
		validation.Field(&in.Image, required(create)),
	))
}

// adviceClaims lists the day slots held by a collection.
func adviceClaims(items []records.Advice) []scheduling.Claim {
	claims := make([]scheduling.Claim, 0, len(items))
	for _, a := range items {
		claims = append(claims, scheduling.Claim{ID: a.ID, Day: a.Day})
	}
	return claims
}

func admitAdvice(m *Mutation[records.Advice]) error {
	create := m.Op == OpCreate
	var in struct {
		Title      *string `json:"title"`
		Category   *string `json:"category"`
		Day        *int    `json:"day"`
		MinDay     *int    `json:"minDay"`
		MaxDay     *int    `json:"maxDay"`
		Scheduling *bool   `json:"scheduling"`
	}
	if err := m.Decode(&in); err != nil {
		return err
	}

	err := validation.ValidateStruct(&in,
		validation.Field(&in.Title, title(create)...),
		validation.Field(&in.Category, required(create)),
		validation.Field(&in.MinDay, validation.Min(0)),
		validation.Field(&in.MaxDay, validation.Min(0)),
	)
	if err != nil {
		return fieldError(err)
	}

	minDay, maxDay := in.MinDay, in.MaxDay
	if m.Prior != nil {
		if !m.Has("minDay") {
			minDay = m.Prior.MinDay
		}
		if !m.Has("maxDay") {
			maxDay = m.Prior.MaxDay
		}
	}
	if minDay != nil && maxDay != nil && *minDay > *maxDay {
		return domain.NewValidationError("maxDay", "must not be before minDay")
	}

	return admitDay(m, in.Day, in.Scheduling)
}

// admitDay runs the day picker's edit through the schedule. "scheduling" is
// the picker's on/off switch and is not forwarded; a null day or a switch
// turned off releases the slot.
func admitDay(m *Mutation[records.Advice], day *int, toggle *bool) error {
	delete(m.Fields, "scheduling")
	if !m.Has("day") && toggle == nil {
		return nil
	}

	var committed *int
	if m.Prior != nil {
		committed = m.Prior.Day
	}
	sched := scheduling.NewSchedule(scheduling.NewAllocator(adviceClaims(m.Items)), m.ID, committed)

	switch {
	case toggle != nil && !*toggle, m.Has("day") && day == nil:
		sched.Disable()
	case m.Has("day"):
		sched.Enable()
		if err := sched.Pick(*day); err != nil {
			return err
		}
	default:
		sched.Enable()
	}

	saved, err := sched.Commit()
	if err != nil {
		return err
	}
	return m.Set("day", saved)
}

type contentInput struct {
	Title    *string `json:"title"`
	Category *string `json:"category"`
}

func admitArticle(m *Mutation[records.Article]) error {
	create := m.Op == OpCreate
	var in contentInput
	if err := m.Decode(&in); err != nil {
		return err
	}
	err := validation.ValidateStruct(&in,
		validation.Field(&in.Title, title(create)...),
		validation.Field(&in.Category, required(create)),
	)
	if err != nil {
		return fieldError(err)
	}

	var priorAt *time.Time
	priorActive := true
	if m.Prior != nil {
		priorAt, priorActive = m.Prior.ScheduledAt, m.Prior.Active()
	}
	return admitActivation(m, priorAt, priorActive)
}

func admitRecipe(m *Mutation[records.Recipe]) error {
	create := m.Op == OpCreate
	var in struct {
		contentInput
		PreparationTime *int                 `json:"preparationTime"`
		MinAge          *int                 `json:"minAge"`
		MaxAge          *int                 `json:"maxAge"`
		Ingredients     []records.Ingredient `json:"ingredients"`
	}
	if err := m.Decode(&in); err != nil {
		return err
	}
	err := validation.ValidateStruct(&in,
		validation.Field(&in.Title, title(create)...),
		validation.Field(&in.Category, required(create)),
		validation.Field(&in.PreparationTime, validation.Min(0)),
		validation.Field(&in.MinAge, validation.Min(0)),
		validation.Field(&in.MaxAge, validation.Min(0)),
	)
	if err != nil {
		return fieldError(err)
	}
	for i, ing := range in.Ingredients {
		if ing.Name == "" {
			return domain.NewValidationError("ingredients", "ingredient %d has no name", i+1)
		}
	}

	minAge, maxAge := in.MinAge, in.MaxAge
	var priorAt *time.Time
	priorActive := true
	if m.Prior != nil {
		if !m.Has("minAge") {
			minAge = m.Prior.MinAge
		}
		if !m.Has("maxAge") {
			maxAge = m.Prior.MaxAge
		}
		priorAt, priorActive = m.Prior.ScheduledAt, m.Prior.Active()
	}
	if minAge != nil && maxAge != nil && *minAge > *maxAge {
		return domain.NewValidationError("maxAge", "must not be below minAge")
	}
	return admitActivation(m, priorAt, priorActive)
}

// admitActivation resolves the isActive flag to save from the schedule and
// the operator's toggle. The body may carry "manualOverride": true when the
// operator toggled the flag after editing the schedule; it is not forwarded.
func admitActivation[T any](m *Mutation[T], priorAt *time.Time, priorActive bool) error {
	var in struct {
		ScheduledAt    *time.Time `json:"scheduledAt"`
		IsActive       *bool      `json:"isActive"`
		ManualOverride bool       `json:"manualOverride"`
	}
	if err := m.Decode(&in); err != nil {
		return err
	}
	delete(m.Fields, "manualOverride")

	scheduleEdited := m.Has("scheduledAt")
	if m.Op == OpUpdate && !scheduleEdited && in.IsActive == nil {
		return nil
	}

	act := records.Activation{ScheduledAt: priorAt, Active: priorActive}
	if scheduleEdited {
		act = act.WithSchedule(in.ScheduledAt, m.Now)
	}
	if in.IsActive != nil && (!scheduleEdited || in.ManualOverride) {
		act = act.WithActive(*in.IsActive)
	}
	return m.Set("isActive", act.Resolve(m.Now))
}

// admitScheduledStatus refuses to activate a record scheduled for later.
func admitScheduledStatus(at *time.Time, active bool, now time.Time) error {
	if active && records.IsFuture(at, now) {
		return domain.NewValidationError("isActive", "scheduled for %s, it cannot be activated before", at.Format(time.RFC3339))
	}
	return nil
}
