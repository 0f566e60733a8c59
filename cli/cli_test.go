package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/allfs/quadstorvtl/catalog"
)

func TestWriteDocumentYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeDocument(&buf, "yaml", catalog.Export()))

	var doc catalog.Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, catalog.Export(), &doc)
}

func TestWriteDocumentJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeDocument(&buf, "json", catalog.Export()))

	var doc catalog.Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, catalog.Version, doc.Version)
	assert.Len(t, doc.Compatibility, len(catalog.Libraries()))
}

func TestWriteDocumentUnknownFormat(t *testing.T) {
	assert.Error(t, writeDocument(&bytes.Buffer{}, "xml", catalog.Export()))
}

func TestParseSeq(t *testing.T) {
	seq, err := parseSeq("42")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), seq)

	_, err = parseSeq("-1")
	assert.Error(t, err)
}
