package form

import (
	"net/url"

	"github.com/allfs/quadstorvtl/catalog"
	"github.com/golang/glog"
)

// DriveSetForm adds drives of further types to a library draft. Each submit
// folds one (type, count) selection into the draft's accumulator fields.
type DriveSetForm struct {
	MaxDrives int
}

func NewDriveSetForm() *DriveSetForm {
	return &DriveSetForm{MaxDrives: catalog.MaxDrives}
}

// Initialize lists the drive types the draft's library accepts.
func (f *DriveSetForm) Initialize(lib catalog.LibraryCode) []Option {
	if lib == catalog.GenericLibrary {
		return Populate(catalog.Drives())
	}

	return PopulateCompatibleDrives(int(lib))
}

// Counts lists the drive counts still available to the draft.
func (f *DriveSetForm) Counts(d *Draft) []Option {
	return countOptions(f.remaining(d))
}

// remaining is never more than catalog.MaxDrives, whatever the draft holds.
func (f *DriveSetForm) remaining(d *Draft) int {
	limit := f.MaxDrives
	if limit > catalog.MaxDrives {
		limit = catalog.MaxDrives
	}

	total := d.Total()
	if total < 0 || total >= limit {
		return 0
	}

	return limit - total
}

// OnSubmit folds the selected drive type and count into the draft carried
// by v and returns the updated draft.
func (f *DriveSetForm) OnSubmit(v url.Values) (*Draft, error) {
	draft, err := ParseDraft(v)
	if err != nil {
		return nil, err
	}

	dt, err := checkNumber("driveselect", v.Get("driveselect"), "No VDrive type specified")
	if err != nil {
		return nil, err
	}

	if !catalog.Accepts(draft.Library, catalog.DriveCode(dt)) {
		return nil, fail(ErrOutOfRange, "driveselect", "VDrive type is not supported by the library type")
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

	if ndrives > f.remaining(draft) {
		return nil, fail(ErrOutOfRange, "ndrives", "Number of VDrives greater than maximum VDrives per VTL")
	}

	draft.Drives = Accumulate(draft.Drives, catalog.DriveCode(dt), ndrives)

	glog.V(2).Infof("addlvdrive: %s now has %d drive types, %d drives",
		draft.Name, len(draft.Drives), draft.Total(),
	)

	return draft, nil
}
