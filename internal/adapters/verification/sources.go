package verification

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

var importPattern = regexp.MustCompile(`(?m)^\s*import\s+(?:[^"']*\bfrom\s+)?["']([^"']+)["']`)

// standardJSONInput is solc's standard JSON input, reduced to what the explorer reads
type standardJSONInput struct {
	Language string                        `json:"language"`
	Sources  map[string]standardJSONSource `json:"sources"`
	Settings standardJSONSettings          `json:"settings"`
}

type standardJSONSource struct {
	Content string `json:"content"`
}

type standardJSONSettings struct {
	Optimizer struct {
		Enabled bool `json:"enabled"`
	} `json:"optimizer"`
}

// collectSources reads a source unit and everything it imports, keyed by source name.
// Relative imports resolve against the importing file, others against the project
// root and then node_modules.
func collectSources(projectRoot, entry string) (map[string]string, error) {
	sources := make(map[string]string)
	queue := []string{entry}

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if _, seen := sources[name]; seen {
			continue
		}

		content, err := readSource(projectRoot, name)
		if err != nil {
			return nil, err
		}
		sources[name] = content

		for _, match := range importPattern.FindAllStringSubmatch(content, -1) {
			imported := match[1]
			if strings.HasPrefix(imported, ".") {
				imported = path.Join(path.Dir(name), imported)
			}
			queue = append(queue, imported)
		}
	}
	return sources, nil
}

func readSource(projectRoot, name string) (string, error) {
	candidates := []string{
		filepath.Join(projectRoot, filepath.FromSlash(name)),
		filepath.Join(projectRoot, "node_modules", filepath.FromSlash(name)),
	}
	for _, candidate := range candidates {
		data, err := os.ReadFile(candidate)
		if err == nil {
			return string(data), nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to read source %s: %w", name, err)
		}
	}
	return "", fmt.Errorf("source %s not found under %s", name, projectRoot)
}

// buildStandardInput bundles the entry source and its imports
func buildStandardInput(projectRoot, entry string, optimizer bool) (json.RawMessage, error) {
	sources, err := collectSources(projectRoot, entry)
	if err != nil {
		return nil, err
	}

	input := standardJSONInput{
		Language: "Solidity",
		Sources:  make(map[string]standardJSONSource, len(sources)),
	}
	for name, content := range sources {
		input.Sources[name] = standardJSONSource{Content: content}
	}
	input.Settings.Optimizer.Enabled = optimizer

	return json.Marshal(input)
}
