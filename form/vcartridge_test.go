package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allfs/quadstorvtl/catalog"
)

func submitCartridges(kv ...string) (*CartridgeRequest, error) {
	v := values("barcode", "ABC000", "vtlname", "vtl1", "nvolumes", "10")
	for i := 0; i+1 < len(kv); i += 2 {
		v.Set(kv[i], kv[i+1])
	}

	return NewCartridgeForm().OnSubmit(v)
}

func TestCartridgeFormAccepts(t *testing.T) {
	req, err := submitCartridges("voltype", "9", "worm", "on")
	require.NoError(t, err)

	assert.Equal(t, &CartridgeRequest{
		Label:   "ABC000",
		Library: "vtl1",
		Count:   10,
		Media:   catalog.MediaLTO2,
		WORM:    true,
	}, req)
}

func TestCartridgeFormVolumeCount(t *testing.T) {
	_, err := submitCartridges("nvolumes", "0")
	requireKind(t, err, ErrOutOfRange, "nvolumes")
	assert.Contains(t, Message(err), "greater than zero")

	_, err = submitCartridges("nvolumes", "512")
	require.NoError(t, err)

	_, err = submitCartridges("nvolumes", "513")
	requireKind(t, err, ErrOutOfRange, "nvolumes")

	_, err = submitCartridges("nvolumes", "")
	requireKind(t, err, ErrEmptyField, "nvolumes")

	_, err = submitCartridges("nvolumes", "ten")
	requireKind(t, err, ErrNonNumeric, "nvolumes")
}

func TestCartridgeFormPrefixLength(t *testing.T) {
	_, err := submitCartridges("barcode", "ABC00", "nvolumes", "10")
	requireKind(t, err, ErrWrongLength, "barcode")

	req, err := submitCartridges("barcode", "ABC", "nvolumes", "1")
	require.NoError(t, err)
	assert.Equal(t, "ABC", req.Label)
}

func TestCartridgeFormNames(t *testing.T) {
	_, err := submitCartridges("barcode", "")
	requireKind(t, err, ErrEmptyField, "barcode")

	_, err = submitCartridges("barcode", "AB-000")
	requireKind(t, err, ErrInvalidCharacters, "barcode")

	_, err = submitCartridges("barcode", "AB 000")
	requireKind(t, err, ErrInvalidCharacters, "barcode")

	_, err = submitCartridges("vtlname", "")
	requireKind(t, err, ErrEmptyField, "vtlname")

	_, err = submitCartridges("vtlname", "my vtl")
	requireKind(t, err, ErrInvalidCharacters, "vtlname")
}

func TestCartridgeFormMediaType(t *testing.T) {
	_, err := submitCartridges("voltype", "77")
	requireKind(t, err, ErrOutOfRange, "voltype")

	req, err := submitCartridges()
	require.NoError(t, err)
	assert.Equal(t, catalog.MediaCode(0), req.Media)
	assert.False(t, req.WORM)
}

func TestCartridgeFormInitialize(t *testing.T) {
	opts := NewCartridgeForm().Initialize([]catalog.DriveCode{0x10, 0x11, 0x07})

	require.Len(t, opts, 3)
	assert.Equal(t, Option{"SuperDLT I 160GB", int(catalog.MediaSDLT2), true}, opts[0])
	assert.Equal(t, int(catalog.MediaLTO1), opts[1].Value)
	assert.Equal(t, int(catalog.MediaLTO2), opts[2].Value)
}

func TestExpandLabels(t *testing.T) {
	labels, err := ExpandLabels("ABC007", 3, catalog.MediaLTO4, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"ABC007L4", "ABC008L4", "ABC009L4"}, labels)

	labels, err = ExpandLabels("A12BCD", 2, catalog.MediaDLT4, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"A12BCD", "A13BCD"}, labels)

	labels, err = ExpandLabels("123ABC", 2, catalog.MediaDLT4, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"123ABC", "124ABC"}, labels)

	labels, err = ExpandLabels("000100", 2, catalog.MediaSDLT1, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"000100S", "000101S"}, labels)

	labels, err = ExpandLabels("TAPE01", 2, catalog.MediaLTO1, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"TAPE01LR", "TAPE02LR"}, labels)
}

func TestExpandLabelsSingle(t *testing.T) {
	labels, err := ExpandLabels("XY", 1, catalog.MediaLTO4, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"XY"}, labels)
}

func TestExpandLabelsErrors(t *testing.T) {
	_, err := ExpandLabels("ABCDEF", 2, catalog.MediaLTO1, false)
	requireKind(t, err, ErrNonNumeric, "barcode")

	_, err = ExpandLabels("ABCD1", 2, catalog.MediaLTO1, false)
	requireKind(t, err, ErrWrongLength, "barcode")

	_, err = ExpandLabels("ABCDE8", 3, catalog.MediaLTO1, false)
	requireKind(t, err, ErrOutOfRange, "nvolumes")

	_, err = ExpandLabels("ABC000", 0, catalog.MediaLTO1, false)
	requireKind(t, err, ErrOutOfRange, "nvolumes")
}
