package console

import (
	"strings"
	"time"

	"github.com/Hazembel/mamaty-dashboard-sub000/internal/config"
	records "github.com/Hazembel/mamaty-dashboard-sub000/internal/domain/models/console"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/listview"
)

func optInt(p *int) (int, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}

func optFloat(p *float64) (float64, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}

func optTime(p *time.Time) time.Time {
	if p == nil {
		return time.Time{}
	}
	return *p
}

// Users lists the consumer accounts.
func Users() *Definition[records.User] {
	city := func(u records.User) string { return u.City }
	role := func(u records.User) string { return u.Role }

	return &Definition[records.User]{
		Entity:  "users",
		Filters: []string{"city", "status", "role"},
		View: listview.View[records.User]{
			Search: listview.Search(
				func(u records.User) string { return u.Name },
				func(u records.User) string { return u.Lastname },
				func(u records.User) string { return u.Email },
				func(u records.User) string { return u.Phone },
				city,
			),
			Filters: []listview.Predicate[records.User]{
				listview.Equals("city", city),
				listview.Bool("status", records.User.Active),
				listview.NormalizedEquals("role", role, lowerTrim),
			},
			Sorts: listview.SortTable[records.User]{
				"name":      listview.StringKey(records.User.FullName),
				"email":     listview.StringKey(func(u records.User) string { return u.Email }),
				"city":      listview.StringKey(city),
				"createdAt": listview.TimeKey(func(u records.User) time.Time { return u.CreatedAt }),
				"babies":    listview.CountKey(func(u records.User) int { return len(u.Babies) }),
				"status":    listview.BoolKey(records.User.Active),
			},
			Options: map[string]listview.OptionSource[records.User]{
				"city": {Values: listview.Single(city), Normalize: listview.Trim},
				"role": {Values: listview.Single(role), Normalize: lowerTrim},
			},
			PageSize: config.DefaultPageSize,
		},
		Admit: admitUser,
	}
}

func lowerTrim(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Babies lists the child profiles.
func Babies() *Definition[records.Baby] {
	gender := func(b records.Baby) string { return b.Gender }
	allergy := func(b records.Baby) string { return b.Allergy }
	disease := func(b records.Baby) string { return b.Disease }

	return &Definition[records.Baby]{
		Entity:  "babies",
		Filters: []string{"gender", "health", "parent"},
		View: listview.View[records.Baby]{
			Search: listview.Search(
				func(b records.Baby) string { return b.Name },
				records.Baby.ParentName,
				allergy,
				disease,
			),
			Filters: []listview.Predicate[records.Baby]{
				listview.NormalizedEquals("gender", gender, lowerTrim),
				listview.AnyEqualFold("health", allergy, disease),
				listview.Equals("parent", func(b records.Baby) string { return b.Parent.ID() }),
			},
			Sorts: listview.SortTable[records.Baby]{
				"name":      listview.StringKey(func(b records.Baby) string { return b.Name }),
				"birthday":  listview.TimeKey(func(b records.Baby) time.Time { return b.Birthday }),
				"parent":    listview.StringKey(records.Baby.ParentName),
				"weight":    listview.FloatKey(func(b records.Baby) (float64, bool) { return optFloat(b.Weight) }),
				"height":    listview.FloatKey(func(b records.Baby) (float64, bool) { return optFloat(b.Height) }),
				"createdAt": listview.TimeKey(func(b records.Baby) time.Time { return b.CreatedAt }),
			},
			Options: map[string]listview.OptionSource[records.Baby]{
				"gender": {Values: listview.Single(gender), Normalize: lowerTrim},
				"health": {
					Values:    func(b records.Baby) []string { return []string{b.Allergy, b.Disease} },
					Normalize: listview.Trim,
				},
			},
			PageSize: config.DefaultPageSize,
		},
		Admit: admitBaby,
	}
}

// Doctors lists the practitioner directory.
func Doctors() *Definition[records.Doctor] {
	specialty := func(d records.Doctor) string { return d.Specialty }
	city := func(d records.Doctor) string { return d.City }

	return &Definition[records.Doctor]{
		Entity:  "doctors",
		Filters: []string{"specialty", "city", "status"},
		View: listview.View[records.Doctor]{
			Search: listview.Search(
				func(d records.Doctor) string { return d.Name },
				func(d records.Doctor) string { return d.Lastname },
				specialty,
				city,
				func(d records.Doctor) string { return d.Email },
				func(d records.Doctor) string { return d.Phone },
			),
			Filters: []listview.Predicate[records.Doctor]{
				listview.Equals("specialty", specialty),
				listview.Equals("city", city),
				listview.Bool("status", records.Doctor.Active),
			},
			Sorts: listview.SortTable[records.Doctor]{
				"name":      listview.StringKey(records.Doctor.FullName),
				"specialty": listview.StringKey(specialty),
				"city":      listview.StringKey(city),
				"rating":    listview.FloatKey(func(d records.Doctor) (float64, bool) { return optFloat(d.Rating) }),
				"status":    listview.BoolKey(records.Doctor.Active),
			},
			Options: map[string]listview.OptionSource[records.Doctor]{
				"specialty": {Values: listview.Single(specialty), Normalize: listview.Trim},
				"city":      {Values: listview.Single(city), Normalize: listview.Trim},
			},
			PageSize: config.DefaultPageSize,
		},
		Admit: admitDoctor,
	}
}

// Avatars lists the pictures offered for baby profiles.
func Avatars() *Definition[records.Avatar] {
	gender := func(a records.Avatar) string { return a.Gender }

	return &Definition[records.Avatar]{
		Entity:  "avatars",
		Filters: []string{"gender", "status"},
		View: listview.View[records.Avatar]{
			Search: listview.Search(func(a records.Avatar) string { return a.Name }),
			Filters: []listview.Predicate[records.Avatar]{
				listview.NormalizedEquals("gender", gender, lowerTrim),
				listview.Bool("status", records.Avatar.Active),
			},
			Sorts: listview.SortTable[records.Avatar]{
				"name":   listview.StringKey(func(a records.Avatar) string { return a.Name }),
				"gender": listview.StringKey(gender),
				"status": listview.BoolKey(records.Avatar.Active),
			},
			Options: map[string]listview.OptionSource[records.Avatar]{
				"gender": {Values: listview.Single(gender), Normalize: lowerTrim},
			},
			PageSize: 20,
		},
		Admit: admitAvatar,
	}
}
