package form

import (
	"net/url"
	"strings"

	"github.com/allfs/quadstorvtl/catalog"
)

// MaxCartridges is the largest batch a single request may add.
const MaxCartridges = 512

// CartridgeRequest is a batch of virtual cartridges for one library. Media
// is zero when the form did not choose one.
type CartridgeRequest struct {
	Label   string            `json:"barcode"`
	Library string            `json:"vtlname"`
	Count   int               `json:"nvolumes"`
	Media   catalog.MediaCode `json:"voltype"`
	WORM    bool              `json:"worm"`
}

// CartridgeForm is the virtual cartridge form.
type CartridgeForm struct {
	MaxCartridges int
}

func NewCartridgeForm() *CartridgeForm {
	return &CartridgeForm{MaxCartridges: MaxCartridges}
}

// Initialize lists the media types the given drives use.
func (f *CartridgeForm) Initialize(drives []catalog.DriveCode) []Option {
	return Populate(catalog.MediaForDrives(drives))
}

func (f *CartridgeForm) OnSubmit(v url.Values) (*CartridgeRequest, error) {
	label := v.Get("barcode")
	if err := checkRequired("barcode", label, "Media label cannot be empty"); err != nil {
		return nil, err
	}

	if err := checkValidString("barcode", label, "Media label can only contain alphabets or numbers"); err != nil {
		return nil, err
	}

	lib := v.Get("vtlname")
	if err := checkRequired("vtlname", lib, "VTL Name cannot be empty"); err != nil {
		return nil, err
	}

	if err := checkValidString("vtlname", lib, "VTL Name can only contain alphabets or numbers"); err != nil {
		return nil, err
	}

	nvolStr := v.Get("nvolumes")
	if err := checkRequired("nvolumes", nvolStr, "Number of volumes cannot be empty"); err != nil {
		return nil, err
	}

	nvolumes, err := checkNumber("nvolumes", nvolStr, "Number of volumes should be a number")
	if err != nil {
		return nil, err
	}

	if nvolumes <= 0 {
		return nil, fail(ErrOutOfRange, "nvolumes", "Number of volumes has to be a number greater than zero")
	}

	if nvolumes > f.MaxCartridges {
		return nil, fail(ErrOutOfRange, "nvolumes", "Number of volumes cannot be greater than 512")
	}

	if len(label) != 6 && nvolumes != 1 {
		return nil, fail(ErrWrongLength, "barcode", "Barcode prefix has to be 6 characters")
	}

	req := &CartridgeRequest{
		Label:   label,
		Library: lib,
		Count:   nvolumes,
		WORM:    strings.EqualFold(v.Get("worm"), "on"),
	}

	if s := v.Get("voltype"); s != "" {
		m, err := checkNumber("voltype", s, "Invalid VCartridge type")
		if err != nil {
			return nil, err
		}

		if _, ok := catalog.LookupMedia(catalog.MediaCode(m)); !ok {
			return nil, fail(ErrOutOfRange, "voltype", "Unknown VCartridge type")
		}

		req.Media = catalog.MediaCode(m)
	}

	return req, nil
}
