package form

import (
	"fmt"
	"net/url"

	"github.com/allfs/quadstorvtl/catalog"
	"github.com/golang/glog"
)

// Mode selects where the library-creation form takes its model dropdown
// from.
type Mode int

const (
	// ModeCatalog lists known library models and filters the drive
	// dropdown by the selected model.
	ModeCatalog Mode = iota

	// ModeManual builds a generic library; the model dropdown lists drive
	// types directly.
	ModeManual
)

func (m Mode) String() string {
	switch m {
	case ModeCatalog:
		return "catalog"
	case ModeManual:
		return "manual"
	}

	return fmt.Sprintf("Mode(%d)", int(m))
}

func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "catalog", "0":
		return ModeCatalog, nil
	case "manual", "1":
		return ModeManual, nil
	}

	return ModeCatalog, fail(ErrOutOfRange, "vtype", "Unknown library mode")
}

// DefaultSlots is the slot count preselected on the library-creation page.
const DefaultSlots = 20

// SlotChoices are the slot counts offered on the library-creation page.
var SlotChoices = []int{20, 50, 100, 200}

// LibraryPage is the dropdown state of the library-creation form.
type LibraryPage struct {
	Mode   string   `json:"mode"`
	Models []Option `json:"vselect"`
	Drives []Option `json:"drivetype0"`
	Counts []Option `json:"ndrives"`
	Slots  []Option `json:"slots"`

	Fields []FieldState `json:"fields"`
}

// LibraryForm is the library-creation form.
type LibraryForm struct {
	MaxDrives int
}

func NewLibraryForm() *LibraryForm {
	return &LibraryForm{MaxDrives: catalog.MaxDrives}
}

// Initialize returns the page state on load: catalog mode with the first
// model selected and its drives listed.
func (f *LibraryForm) Initialize() LibraryPage {
	return f.OnModeChanged(ModeCatalog)
}

// OnModeChanged rebuilds both dropdowns from scratch for the new mode.
func (f *LibraryForm) OnModeChanged(m Mode) LibraryPage {
	page := LibraryPage{
		Mode:   m.String(),
		Counts: countOptions(f.MaxDrives),
		Slots:  slotOptions(),
		Fields: f.OnAutofillChanged(false),
	}

	switch m {
	case ModeManual:
		page.Models = Populate(catalog.Drives())
		page.Drives = []Option{}
	default:
		page.Models = Populate(catalog.Libraries())
		first, _ := Selected(page.Models)
		page.Drives = f.OnLibraryChanged(first)
	}

	glog.V(2).Infof("addvtl: mode %s, %d models, %d drives", m, len(page.Models), len(page.Drives))

	return page
}

// OnLibraryChanged rebuilds the drive dropdown for the selected model.
func (f *LibraryForm) OnLibraryChanged(index int) []Option {
	return PopulateCompatibleDrives(index)
}

// OnAutofillChanged reports the prefix and slot inputs as the auto-fill box
// toggles. The page loads with it unchecked.
func (f *LibraryForm) OnAutofillChanged(checked bool) []FieldState {
	return Autofill(checked)
}

// OnSubmit is the submit gate. On success it returns the draft whose hidden
// fields the next page carries, with the requested drive count recorded as
// the first accumulated entry.
func (f *LibraryForm) OnSubmit(v url.Values) (*Draft, error) {
	name := v.Get("lname")
	if err := checkRequired("lname", name, "VTL Name cannot be empty"); err != nil {
		return nil, err
	}

	if err := checkValidString("lname", name, "VTL Name can only contain alphabets or numbers"); err != nil {
		return nil, err
	}

	ndrivesStr := v.Get("ndrives")
	if err := checkRequired("ndrives", ndrivesStr, "Number of VDrives cannot be empty"); err != nil {
		return nil, err
	}

	ndrives, err := checkNumber("ndrives", ndrivesStr, "Number of VDrives has invalid non numeric value")
	if err != nil {
		return nil, err
	}

	if ndrives == 0 {
		return nil, fail(ErrOutOfRange, "ndrives", "Number of VDrives cannot be zero")
	}

	if ndrives > f.MaxDrives {
		return nil, fail(ErrOutOfRange, "ndrives", "Number of VDrives greater than maximum VDrives per VTL")
	}

	if err := checkNameLength("lname", name, fmt.Sprintf("VTL Name cannot be longer than %d characters", NameMax)); err != nil {
		return nil, err
	}

	mode, err := ParseMode(v.Get("vtype"))
	if err != nil {
		return nil, err
	}

	sel, err := checkNumber("vselect", v.Get("vselect"), "No virtual library/drive type specified")
	if err != nil {
		return nil, err
	}

	draft := &Draft{Name: name, Slots: DefaultSlots}

	switch mode {
	case ModeManual:
		if _, ok := catalog.LookupDrive(catalog.DriveCode(sel)); !ok {
			return nil, fail(ErrOutOfRange, "vselect", "Unknown VDrive type")
		}

		draft.Library = catalog.GenericLibrary
		draft.Drives = Accumulate(nil, catalog.DriveCode(sel), ndrives)
	default:
		if _, ok := catalog.LookupLibrary(catalog.LibraryCode(sel)); !ok {
			return nil, fail(ErrOutOfRange, "vselect", "Unknown library type")
		}

		dt, err := checkNumber("drivetype0", v.Get("drivetype0"), "No VDrive type specified")
		if err != nil {
			return nil, err
		}

		if !catalog.Accepts(catalog.LibraryCode(sel), catalog.DriveCode(dt)) {
			return nil, fail(ErrOutOfRange, "drivetype0", "VDrive type is not supported by the library type")
		}

		draft.Library = catalog.LibraryCode(sel)
		draft.Drives = Accumulate(nil, catalog.DriveCode(dt), ndrives)
	}

	if s := v.Get("slots"); s != "" {
		slots, err := checkNumber("slots", s, "Number of VSlots has invalid non numeric value")
		if err != nil {
			return nil, err
		}

		if slots == 0 {
			return nil, fail(ErrOutOfRange, "slots", "Number of VSlots cannot be zero")
		}

		draft.Slots = slots
	}

	return draft, nil
}

func countOptions(n int) []Option {
	if n > catalog.MaxDrives {
		n = catalog.MaxDrives
	}
	if n < 0 {
		n = 0
	}

	opts := make([]Option, 0, n)
	for i := 1; i <= n; i++ {
		opts = append(opts, Option{
			Label:    fmt.Sprint(i),
			Value:    i,
			Selected: i == 1,
		})
	}

	return opts
}

func slotOptions() []Option {
	opts := make([]Option, 0, len(SlotChoices))
	for _, n := range SlotChoices {
		opts = append(opts, Option{
			Label:    fmt.Sprint(n),
			Value:    n,
			Selected: n == DefaultSlots,
		})
	}

	return opts
}
