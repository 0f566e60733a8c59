package form

// FieldState is the enablement of one input.
type FieldState struct {
	Name     string `json:"name"`
	Disabled bool   `json:"disabled"`
}

// Autofill returns the state of the label prefix and slot count inputs for
// the given auto-fill checkbox value.
func Autofill(checked bool) []FieldState {
	return []FieldState{
		{Name: "prefix", Disabled: !checked},
		{Name: "slots", Disabled: !checked},
	}
}
