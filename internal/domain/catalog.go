package domain

// BilingualText holds a display string in both supported languages.
// Zh may be empty for catalogs that only ship English titles.
type BilingualText struct {
	En string `json:"en"`
	Zh string `json:"zh,omitempty"`
}

// IsZero reports whether both translations are empty.
func (t BilingualText) IsZero() bool { return t.En == "" && t.Zh == "" }

// CatalogRef identifies a catalog in the provider's listing.
// Display names and descriptions are resolved by the localization layer
// keyed by Slug; the provider only returns the slug and an accent color.
type CatalogRef struct {
	Slug        string `json:"slug"`
	AccentColor string `json:"accentColor"`
}

// CatalogProblem is one problem as published by the catalog provider.
// Immutable per fetch; ID is stable within and across catalogs.
type CatalogProblem struct {
	ID         string        `json:"id"`
	Title      BilingualText `json:"title"`
	Slug       string        `json:"slug"`
	Difficulty Difficulty    `json:"difficulty"`
}

// CatalogGroup is an ordered group of problems within a catalog.
type CatalogGroup struct {
	Label    BilingualText    `json:"label"`
	Problems []CatalogProblem `json:"problems"`
}

// TrackedProblem is the merged view of a catalog problem and its locally
// owned progress record. For problems outside the active catalog the
// metadata comes from the record's cached display fields and InActiveSet
// is false.
type TrackedProblem struct {
	Problem     CatalogProblem `json:"problem"`
	GroupLabel  BilingualText  `json:"groupLabel,omitzero"`
	Record      ProgressRecord `json:"record"`
	InActiveSet bool           `json:"inActiveSet"`
}
