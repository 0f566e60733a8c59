package form

import "github.com/allfs/quadstorvtl/catalog"

// Option is one entry of a dropdown.
type Option struct {
	Label    string `json:"label"`
	Value    int    `json:"value"`
	Selected bool   `json:"selected"`
}

// Entry is a catalog row that can be shown in a dropdown.
type Entry interface {
	Label() string
	Value() int
}

// Populate builds one option per entry, in order, with the first one
// selected.
func Populate[E Entry](entries []E) []Option {
	opts := make([]Option, 0, len(entries))
	for i, e := range entries {
		opts = append(opts, Option{
			Label:    e.Label(),
			Value:    e.Value(),
			Selected: i == 0,
		})
	}

	return opts
}

// PopulateCompatibleDrives builds the drive dropdown for the library whose
// 1-based dropdown value is index. No selection or an unknown model yields
// an empty list.
func PopulateCompatibleDrives(index int) []Option {
	if index < 1 {
		return []Option{}
	}

	return Populate(catalog.CompatibleDrives(catalog.LibraryCode(index)))
}

// Selected returns the value of the selected option.
func Selected(opts []Option) (int, bool) {
	for _, opt := range opts {
		if opt.Selected {
			return opt.Value, true
		}
	}

	return 0, false
}
