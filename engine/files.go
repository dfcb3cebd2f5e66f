package engine

import (
	"os"
	"path/filepath"
	"strings"
)

// listFiles returns the regular files directly in dir whose extension matches ext, ignoring case,
// sorted by name.
func listFiles(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ext) {
			continue
		}
		out = append(out, filepath.Join(dir, entry.Name()))
	}
	return out, nil
}

// listSceneFolders returns the immediate sub-folders of root holding at least one *.json file,
// sorted by name. Hidden folders are skipped.
func listSceneFolders(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		jsonFiles, err := listFiles(dir, ".json")
		if err != nil || len(jsonFiles) == 0 {
			continue
		}
		out = append(out, dir)
	}
	return out, nil
}
