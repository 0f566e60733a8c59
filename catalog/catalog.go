// Package catalog holds the static hardware catalogs shared by every form:
// emulated library models, tape drive models, cartridge media types, and the
// relations between them.
package catalog

import "fmt"

// Version identifies the revision of the tables in this package. Bump it
// whenever an entry is added, removed or renamed.
const Version = 3

// MaxDrives is the number of virtual drives a single library may hold.
const MaxDrives = 15

type LibraryCode int

type DriveCode int

type MediaCode int

// GenericLibrary is the code of a library assembled from manually chosen
// drives instead of an emulated model.
const GenericLibrary LibraryCode = 0

type Library struct {
	Name string      `json:"name" yaml:"name"`
	Code LibraryCode `json:"code" yaml:"code"`
}

type Drive struct {
	Name string    `json:"name" yaml:"name"`
	Code DriveCode `json:"code" yaml:"code"`
}

type Media struct {
	Name string    `json:"name" yaml:"name"`
	Code MediaCode `json:"code" yaml:"code"`
}

func (lib Library) String() string {
	return fmt.Sprintf("%s(0x%02x)", lib.Name, int(lib.Code))
}

func (drv Drive) String() string {
	return fmt.Sprintf("%s(0x%02x)", drv.Name, int(drv.Code))
}

func (m Media) String() string {
	return fmt.Sprintf("%s(0x%02x)", m.Name, int(m.Code))
}

func (lib Library) Label() string { return lib.Name }
func (lib Library) Value() int    { return int(lib.Code) }
func (drv Drive) Label() string   { return drv.Name }
func (drv Drive) Value() int      { return int(drv.Code) }
func (m Media) Label() string     { return m.Name }
func (m Media) Value() int        { return int(m.Code) }

// Libraries returns the library catalog in display order.
func Libraries() []Library {
	out := make([]Library, len(libraries))
	copy(out, libraries)
	return out
}

// Drives returns the drive catalog in display order.
func Drives() []Drive {
	out := make([]Drive, len(drives))
	copy(out, drives)
	return out
}

// MediaTypes returns the media catalog in display order.
func MediaTypes() []Media {
	out := make([]Media, len(media))
	copy(out, media)
	return out
}

func LookupLibrary(code LibraryCode) (Library, bool) {
	lib, ok := libraryByCode[code]
	return lib, ok
}

func LookupDrive(code DriveCode) (Drive, bool) {
	drv, ok := driveByCode[code]
	return drv, ok
}

func LookupMedia(code MediaCode) (Media, bool) {
	m, ok := mediaByCode[code]
	return m, ok
}

// CompatibleDrives returns the drives an emulated library model accepts, in
// the order the model lists them. Unknown codes, including GenericLibrary,
// yield nil.
func CompatibleDrives(code LibraryCode) []Drive {
	codes, ok := compatibility[code]
	if !ok {
		return nil
	}

	out := make([]Drive, 0, len(codes))
	for _, c := range codes {
		if drv, ok := driveByCode[c]; ok {
			out = append(out, drv)
		}
	}

	return out
}

// Accepts reports whether a library model accepts the given drive type. A
// generic library accepts any catalogued drive.
func Accepts(lib LibraryCode, drv DriveCode) bool {
	if lib == GenericLibrary {
		_, ok := driveByCode[drv]
		return ok
	}

	for _, c := range compatibility[lib] {
		if c == drv {
			return true
		}
	}

	return false
}

// MediaFor returns the cartridge type a drive type reads and writes.
func MediaFor(drv DriveCode) (MediaCode, bool) {
	m, ok := driveMedia[drv]
	return m, ok
}

// MediaForDrives returns the distinct media types used by a set of drive
// types, ordered as in the media catalog.
func MediaForDrives(drvs []DriveCode) []Media {
	want := make(map[MediaCode]bool)
	for _, d := range drvs {
		if m, ok := MediaFor(d); ok {
			want[m] = true
		}
	}

	var out []Media
	for _, m := range media {
		if want[m.Code] {
			out = append(out, m)
		}
	}

	return out
}

var (
	libraryByCode = make(map[LibraryCode]Library)
	driveByCode   = make(map[DriveCode]Drive)
	mediaByCode   = make(map[MediaCode]Media)
)

func init() {
	for _, lib := range libraries {
		libraryByCode[lib.Code] = lib
	}

	for _, drv := range drives {
		driveByCode[drv.Code] = drv
	}

	for _, m := range media {
		mediaByCode[m.Code] = m
	}
}
