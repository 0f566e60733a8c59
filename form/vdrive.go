package form

import (
	"fmt"
	"net/url"

	"github.com/allfs/quadstorvtl/catalog"
)

// DriveRequest is a standalone virtual drive.
type DriveRequest struct {
	Name string            `json:"name"`
	Type catalog.DriveCode `json:"drivetype"`
}

// DriveForm is the standalone virtual drive form.
type DriveForm struct{}

func NewDriveForm() *DriveForm {
	return &DriveForm{}
}

// Initialize lists the whole drive catalog.
func (f *DriveForm) Initialize() []Option {
	return Populate(catalog.Drives())
}

func (f *DriveForm) OnAutofillChanged(checked bool) []FieldState {
	return Autofill(checked)
}

func (f *DriveForm) OnSubmit(v url.Values) (*DriveRequest, error) {
	name := v.Get("name")
	if err := checkRequired("name", name, "VDrive Name cannot be empty"); err != nil {
		return nil, err
	}

	if err := checkValidString("name", name, "VDrive Name can only contain alphabets or numbers"); err != nil {
		return nil, err
	}

	if err := checkNameLength("name", name, fmt.Sprintf("VDrive Name cannot be longer than %d characters", NameMax)); err != nil {
		return nil, err
	}

	dt, err := checkNumber("drivetype", v.Get("drivetype"), "No VDrive type specified")
	if err != nil {
		return nil, err
	}

	if _, ok := catalog.LookupDrive(catalog.DriveCode(dt)); !ok {
		return nil, fail(ErrOutOfRange, "drivetype", "Unknown VDrive type")
	}

	return &DriveRequest{Name: name, Type: catalog.DriveCode(dt)}, nil
}
