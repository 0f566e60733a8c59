package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allfs/quadstorvtl/catalog"
)

func TestLibraryFormInitialize(t *testing.T) {
	page := NewLibraryForm().Initialize()

	assert.Equal(t, "catalog", page.Mode)
	require.Len(t, page.Models, len(catalog.Libraries()))
	assert.Equal(t, Option{"ADIC Scalar 24", 1, true}, page.Models[0])

	// ADIC Scalar 24 takes drive codes 0x07, 0x10 and 0x11.
	require.Len(t, page.Drives, 3)
	assert.Equal(t, Option{"Quantum SDLT 320", 0x07, true}, page.Drives[0])
	assert.Equal(t, Option{"IBM 3580 Ultrium1", 0x10, false}, page.Drives[1])
	assert.Equal(t, Option{"IBM 3580 Ultrium2", 0x11, false}, page.Drives[2])

	require.Len(t, page.Counts, catalog.MaxDrives)
	assert.True(t, page.Counts[0].Selected)

	v, ok := Selected(page.Slots)
	assert.True(t, ok)
	assert.Equal(t, DefaultSlots, v)

	assert.Equal(t, []FieldState{{"prefix", true}, {"slots", true}}, page.Fields)
}

func TestLibraryFormModeToggle(t *testing.T) {
	f := NewLibraryForm()

	page := f.OnModeChanged(ModeManual)
	assert.Equal(t, "manual", page.Mode)
	assert.Len(t, page.Models, len(catalog.Drives()))
	assert.Empty(t, page.Drives)

	page = f.OnModeChanged(ModeCatalog)
	assert.Len(t, page.Models, len(catalog.Libraries()))
	assert.Len(t, page.Drives, 3)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeCatalog, m)

	m, err = ParseMode("manual")
	require.NoError(t, err)
	assert.Equal(t, ModeManual, m)

	_, err = ParseMode("other")
	requireKind(t, err, ErrOutOfRange, "vtype")
}

func TestLibraryFormOnLibraryChanged(t *testing.T) {
	f := NewLibraryForm()

	opts := f.OnLibraryChanged(6)
	require.Len(t, opts, 3)
	assert.Equal(t, 0x0B, opts[0].Value)

	assert.Empty(t, f.OnLibraryChanged(0))
}

func validLibrary(kv ...string) map[string]string {
	m := map[string]string{
		"lname":      "vtl1",
		"ndrives":    "4",
		"vselect":    "1",
		"drivetype0": "16",
	}
	for i := 0; i+1 < len(kv); i += 2 {
		m[kv[i]] = kv[i+1]
	}

	return m
}

func submitLibrary(m map[string]string) (*Draft, error) {
	v := values()
	for k, val := range m {
		v.Set(k, val)
	}

	return NewLibraryForm().OnSubmit(v)
}

func TestLibraryFormSubmit(t *testing.T) {
	draft, err := submitLibrary(validLibrary())
	require.NoError(t, err)

	assert.Equal(t, "vtl1", draft.Name)
	assert.Equal(t, catalog.LibraryCode(1), draft.Library)
	assert.Equal(t, DefaultSlots, draft.Slots)
	assert.Equal(t, []DriveEntry{{0x10, 4}}, draft.Drives)

	fields := draft.Fields()
	assert.Equal(t, "1", fields.Get("ndrivetypes"))
	assert.Equal(t, "16", fields.Get("drivetype0"))
	assert.Equal(t, "4", fields.Get("ndrivetype0"))
	assert.Equal(t, "20", fields.Get("slots"))
}

func TestLibraryFormSubmitManual(t *testing.T) {
	draft, err := submitLibrary(validLibrary("vtype", "manual", "vselect", "3", "drivetype0", "", "slots", "50"))
	require.NoError(t, err)

	assert.Equal(t, catalog.GenericLibrary, draft.Library)
	assert.Equal(t, 50, draft.Slots)
	assert.Equal(t, []DriveEntry{{0x03, 4}}, draft.Drives)
}

func TestLibraryFormDriveCount(t *testing.T) {
	_, err := submitLibrary(validLibrary("ndrives", "0"))
	requireKind(t, err, ErrOutOfRange, "ndrives")

	_, err = submitLibrary(validLibrary("ndrives", "15"))
	require.NoError(t, err)

	_, err = submitLibrary(validLibrary("ndrives", "16"))
	requireKind(t, err, ErrOutOfRange, "ndrives")

	_, err = submitLibrary(validLibrary("ndrives", ""))
	requireKind(t, err, ErrEmptyField, "ndrives")

	_, err = submitLibrary(validLibrary("ndrives", "-3"))
	requireKind(t, err, ErrNonNumeric, "ndrives")

	_, err = submitLibrary(validLibrary("ndrives", "99999999999999999999999"))
	requireKind(t, err, ErrOutOfRange, "ndrives")
}

func TestLibraryFormName(t *testing.T) {
	_, err := submitLibrary(validLibrary("lname", ""))
	requireKind(t, err, ErrEmptyField, "lname")

	_, err = submitLibrary(validLibrary("lname", "   "))
	requireKind(t, err, ErrEmptyField, "lname")

	_, err = submitLibrary(validLibrary("lname", "my-vtl"))
	requireKind(t, err, ErrInvalidCharacters, "lname")

	_, err = submitLibrary(validLibrary("lname", "my vtl"))
	requireKind(t, err, ErrInvalidCharacters, "lname")

	_, err = submitLibrary(validLibrary("lname", "a234567890123456789012345678901234567"))
	requireKind(t, err, ErrWrongLength, "lname")
}

func TestLibraryFormFirstFailureWins(t *testing.T) {
	_, err := submitLibrary(validLibrary("lname", "bad name", "ndrives", "0"))
	requireKind(t, err, ErrInvalidCharacters, "lname")
}

func TestLibraryFormSelection(t *testing.T) {
	_, err := submitLibrary(validLibrary("vselect", "40"))
	requireKind(t, err, ErrOutOfRange, "vselect")

	_, err = submitLibrary(validLibrary("drivetype0", "1"))
	requireKind(t, err, ErrOutOfRange, "drivetype0")

	_, err = submitLibrary(validLibrary("slots", "0"))
	requireKind(t, err, ErrOutOfRange, "slots")
}

func TestLibraryFormIdempotent(t *testing.T) {
	for _, m := range []map[string]string{
		validLibrary(),
		validLibrary("ndrives", "16"),
		validLibrary("lname", "a-b"),
	} {
		_, err1 := submitLibrary(m)
		_, err2 := submitLibrary(m)

		assert.Equal(t, err1 == nil, err2 == nil)
		if err1 != nil {
			assert.Equal(t, Field(err1), Field(err2))
			assert.Equal(t, Message(err1), Message(err2))
		}
	}
}
