package form

import (
	"net/url"
	"testing"

	"github.com/ansel1/merry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allfs/quadstorvtl/catalog"
)

func values(kv ...string) url.Values {
	v := url.Values{}
	for i := 0; i+1 < len(kv); i += 2 {
		v.Set(kv[i], kv[i+1])
	}

	return v
}

func requireKind(t *testing.T, err error, kind error, field string) {
	t.Helper()

	require.Error(t, err)
	assert.True(t, merry.Is(err, kind), "got %v", err)
	assert.True(t, IsValidation(err))
	assert.Equal(t, field, Field(err))
	assert.NotEmpty(t, Message(err))
	assert.Equal(t, 400, merry.HTTPCode(err))
}

func TestValidString(t *testing.T) {
	assert.True(t, ValidString("abcXYZ019"))
	assert.True(t, ValidString(""))
	assert.False(t, ValidString("vtl-1"))
	assert.False(t, ValidString("vtl 1"))
	assert.False(t, ValidString("vtl.1"))
	assert.False(t, ValidString("vtlé"))
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, IsNumeric("0"))
	assert.True(t, IsNumeric("512"))
	assert.False(t, IsNumeric(""))
	assert.False(t, IsNumeric("-1"))
	assert.False(t, IsNumeric("+1"))
	assert.False(t, IsNumeric("1.5"))
	assert.False(t, IsNumeric("1e3"))
}

func TestPopulate(t *testing.T) {
	opts := Populate(catalog.Drives())

	require.Len(t, opts, len(catalog.Drives()))
	assert.Equal(t, Option{"HP StorageWorks DLT VS80", 0x01, true}, opts[0])
	for _, opt := range opts[1:] {
		assert.False(t, opt.Selected)
	}

	assert.Empty(t, Populate([]catalog.Drive{}))
}

func TestPopulateCompatibleDrives(t *testing.T) {
	for _, lib := range catalog.Libraries() {
		opts := PopulateCompatibleDrives(int(lib.Code))
		drvs := catalog.CompatibleDrives(lib.Code)

		require.Len(t, opts, len(drvs))
		for i, drv := range drvs {
			assert.Equal(t, drv.Name, opts[i].Label)
			assert.Equal(t, int(drv.Code), opts[i].Value)
			assert.Equal(t, i == 0, opts[i].Selected)
		}
	}
}

func TestPopulateCompatibleDrivesOutOfRange(t *testing.T) {
	for _, index := range []int{-1, 0, 13, 1000} {
		opts := PopulateCompatibleDrives(index)
		assert.NotNil(t, opts)
		assert.Empty(t, opts, "index %d", index)
	}
}

func TestAutofill(t *testing.T) {
	assert.Equal(t, []FieldState{{"prefix", false}, {"slots", false}}, Autofill(true))
	assert.Equal(t, []FieldState{{"prefix", true}, {"slots", true}}, Autofill(false))
}

func TestSelected(t *testing.T) {
	v, ok := Selected([]Option{{"a", 1, false}, {"b", 2, true}})
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = Selected(nil)
	assert.False(t, ok)
}
