package models

// Country is a single entry in the reference dataset used as a round prompt
type Country struct {
	// Names contains every accepted spelling, the primary name first
	Names []string `json:"names"`

	// Region is the continent bucket used for filtering (africa, europe, ...)
	Region string `json:"region"`

	// FlagURL points at the flag image shown as the round prompt
	FlagURL string `json:"flag_url"`

	// Capital is shown in the answer reveal
	Capital string `json:"capital"`

	// Population is shown in the answer reveal
	Population int64 `json:"population"`
}

// Name returns the primary display name for the country
func (c Country) Name() string {
	if len(c.Names) == 0 {
		return ""
	}
	return c.Names[0]
}
