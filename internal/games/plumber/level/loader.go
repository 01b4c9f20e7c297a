package level

import (
	"embed"
	"fmt"
	"path"
	"sort"
)

//go:embed stages/*.yaml
var stageFS embed.FS

// Load parses the embedded stage for the given world and stage numbers.
func Load(world, stage int) (*Stage, error) {
	name := fmt.Sprintf("stages/%d-%d.yaml", world, stage)
	data, err := stageFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("level: no stage %d-%d: %w", world, stage, err)
	}
	return Parse(data)
}

// Exists reports whether a stage is defined for (world, stage).
func Exists(world, stage int) bool {
	name := fmt.Sprintf("stages/%d-%d.yaml", world, stage)
	if _, err := stageFS.ReadFile(name); err != nil {
		return false
	}
	return true
}

// IDs returns all embedded stage IDs, sorted for deterministic listings.
func IDs() []string {
	entries, err := stageFS.ReadDir("stages")
	if err != nil {
		return nil
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ids = append(ids, name[:len(name)-len(path.Ext(name))])
	}
	sort.Strings(ids)
	return ids
}
