package catalog

// Filter is one dropdown a console page renders.
type Filter struct {
	Name  string `yaml:"name" json:"name"`
	Label string `yaml:"label" json:"label"`
}

// Entity is the default list setup of one console page.
type Entity struct {
	// Name is the map key in the YAML file (set during loading)
	Name string `yaml:"-" json:"name"`

	Resource string   `yaml:"resource" json:"resource"` // Upstream path segment under /api
	Label    string   `yaml:"label" json:"label"`
	PageSize int      `yaml:"page_size" json:"page_size"`
	Sort     string   `yaml:"sort" json:"sort"`
	Tab      string   `yaml:"tab" json:"tab"`
	Tabs     []string `yaml:"tabs" json:"tabs,omitempty"`
	Filters  []Filter `yaml:"filters" json:"filters"`
}

// HasFilter reports whether the page declares the named filter.
func (e *Entity) HasFilter(name string) bool {
	for _, f := range e.Filters {
		if f.Name == name {
			return true
		}
	}
	return false
}

// HasTab reports whether name is one of the page's tabs.
func (e *Entity) HasTab(name string) bool {
	for _, t := range e.Tabs {
		if t == name {
			return true
		}
	}
	return false
}

type catalogFile struct {
	Entities map[string]*Entity `yaml:"entities"`
}
