package form

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/allfs/quadstorvtl/catalog"
)

// DriveEntry is one accumulated (drive type, count) pair.
type DriveEntry struct {
	Type  catalog.DriveCode `json:"drivetype"`
	Count int               `json:"ndrivetype"`
}

// Draft is a library being assembled across several form round trips. It
// travels between pages as hidden fields.
type Draft struct {
	Name    string              `json:"lname"`
	Library catalog.LibraryCode `json:"vselect"`
	Slots   int                 `json:"slots"`
	Drives  []DriveEntry        `json:"drives"`
}

// Total returns the number of drives accumulated so far.
func (d *Draft) Total() int {
	var n int
	for _, e := range d.Drives {
		n += e.Count
	}

	return n
}

// DriveTypes returns the drive type of each entry, in entry order.
func (d *Draft) DriveTypes() []catalog.DriveCode {
	var out []catalog.DriveCode
	for _, e := range d.Drives {
		out = append(out, e.Type)
	}

	return out
}

// Accumulate adds count drives of type t to entries. A type already present
// has its count increased; a new type is appended. entries is not modified.
func Accumulate(entries []DriveEntry, t catalog.DriveCode, count int) []DriveEntry {
	out := make([]DriveEntry, len(entries), len(entries)+1)
	copy(out, entries)

	for i := range out {
		if out[i].Type == t {
			out[i].Count += count
			return out
		}
	}

	return append(out, DriveEntry{Type: t, Count: count})
}

func driveTypeField(i int) string  { return fmt.Sprintf("drivetype%d", i) }
func driveCountField(i int) string { return fmt.Sprintf("ndrivetype%d", i) }

// ParseEntries reads the accumulator fields: the ndrivetypes counter and
// the drivetype{N} / ndrivetype{N} pairs it covers. A draft never holds more
// entries than there are drive types, nor more than MaxDrives of one type.
func ParseEntries(v url.Values) ([]DriveEntry, error) {
	n, err := hiddenNumber("ndrivetypes", v.Get("ndrivetypes"))
	if err != nil {
		return nil, err
	}

	if n > len(catalog.Drives()) {
		return nil, fail(ErrOutOfRange, "ndrivetypes", "Invalid parameter passed for ndrivetypes")
	}

	entries := make([]DriveEntry, 0, n)
	for i := 0; i < n; i++ {
		t, err := hiddenNumber(driveTypeField(i), v.Get(driveTypeField(i)))
		if err != nil {
			return nil, err
		}

		count, err := hiddenNumber(driveCountField(i), v.Get(driveCountField(i)))
		if err != nil {
			return nil, err
		}

		if count > catalog.MaxDrives {
			return nil, fail(ErrOutOfRange, driveCountField(i), "Invalid parameter passed for "+driveCountField(i))
		}

		entries = append(entries, DriveEntry{
			Type:  catalog.DriveCode(t),
			Count: count,
		})
	}

	return entries, nil
}

// EncodeEntries writes entries back into accumulator fields, replacing any
// pairs already present.
func EncodeEntries(v url.Values, entries []DriveEntry) {
	if prev, err := strconv.Atoi(v.Get("ndrivetypes")); err == nil {
		for i := 0; i < prev; i++ {
			v.Del(driveTypeField(i))
			v.Del(driveCountField(i))
		}
	}

	v.Set("ndrivetypes", strconv.Itoa(len(entries)))
	for i, e := range entries {
		v.Set(driveTypeField(i), strconv.Itoa(int(e.Type)))
		v.Set(driveCountField(i), strconv.Itoa(e.Count))
	}
}

// ParseDraft reads a draft from the hidden fields carried between the
// library pages.
func ParseDraft(v url.Values) (*Draft, error) {
	name := v.Get("lname")
	if err := checkRequired("lname", name, "VTL Name cannot be empty"); err != nil {
		return nil, err
	}

	if err := checkValidString("lname", name, "VTL Name can only contain alphabets or numbers"); err != nil {
		return nil, err
	}

	lib, err := hiddenNumber("vselect", v.Get("vselect"))
	if err != nil {
		return nil, err
	}

	if _, ok := catalog.LookupLibrary(catalog.LibraryCode(lib)); !ok && catalog.LibraryCode(lib) != catalog.GenericLibrary {
		return nil, fail(ErrOutOfRange, "vselect", "Unknown library type")
	}

	slots, err := hiddenNumber("slots", v.Get("slots"))
	if err != nil {
		return nil, err
	}

	entries, err := ParseEntries(v)
	if err != nil {
		return nil, err
	}

	return &Draft{
		Name:    name,
		Library: catalog.LibraryCode(lib),
		Slots:   slots,
		Drives:  entries,
	}, nil
}

// Fields returns the hidden fields that carry the draft to the next page.
func (d *Draft) Fields() url.Values {
	v := url.Values{}
	v.Set("lname", d.Name)
	v.Set("vselect", strconv.Itoa(int(d.Library)))
	v.Set("slots", strconv.Itoa(d.Slots))
	EncodeEntries(v, d.Drives)

	return v
}
