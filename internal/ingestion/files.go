package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jonathan/resume-ranker/internal/types"
)

// MaxDocumentSize bounds the bytes read for one document
const MaxDocumentSize = 10 << 20

// supportedExtensions are picked up when reading a directory
var supportedExtensions = map[string]bool{
	".txt": true, ".text": true, ".md": true, ".html": true, ".htm": true, ".xhtml": true,
}

// ReadDocument loads a file as a Document named after its base name
func ReadDocument(path string) (types.Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.Document{}, fmt.Errorf("file not found: %w", err)
		}
		return types.Document{}, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return types.Document{}, fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > MaxDocumentSize {
		return types.Document{}, fmt.Errorf("%s exceeds %d bytes", path, MaxDocumentSize)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return types.Document{}, fmt.Errorf("failed to read file: %w", err)
	}
	return types.Document{Name: filepath.Base(path), Data: content}, nil
}

// ReadDir loads every supported document in dir, sorted by file name. Subdirectories
// are not descended into.
func ReadDir(dir string) ([]types.Document, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var paths []string
	for _, de := range dirEntries {
		if de.IsDir() || !supportedExtensions[strings.ToLower(filepath.Ext(de.Name()))] {
			continue
		}
		paths = append(paths, filepath.Join(dir, de.Name()))
	}
	sort.Strings(paths)

	docs := make([]types.Document, 0, len(paths))
	for _, p := range paths {
		doc, err := ReadDocument(p)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
