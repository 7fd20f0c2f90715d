package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadDocument(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "jane.txt")
	require.NoError(t, os.WriteFile(path, []byte("Jane Doe"), 0644))

	doc, err := ReadDocument(path)

	require.NoError(t, err)
	assert.Equal(t, "jane.txt", doc.Name)
	assert.Equal(t, []byte("Jane Doe"), doc.Data)
}

func TestReadDocument_FileNotFound(t *testing.T) {
	_, err := ReadDocument("/nonexistent/file.txt")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestReadDocument_Directory(t *testing.T) {
	_, err := ReadDocument(t.TempDir())

	assert.Error(t, err)
}

func TestReadDir(t *testing.T) {
	tmpDir := t.TempDir()
	for name, content := range map[string]string{
		"b.txt":     "Bob",
		"a.html":    "<p>Alice</p>",
		"c.pdf":     "%PDF",
		"notes.csv": "x,y",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, name), []byte(content), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, "sub.txt"), 0755))

	docs, err := ReadDir(tmpDir)

	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a.html", docs[0].Name)
	assert.Equal(t, "b.txt", docs[1].Name)
}
