// cmd/tools/registry-export/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"vibe-planner/internal/common/validation"
	"vibe-planner/pkg/registry"

	json "github.com/goccy/go-json"
	"github.com/xeipuuv/gojsonschema"
)

const defaultManifestPath = "configs/tool-registry.json"

var registryPath string

func main() {
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	addCmd := flag.NewFlagSet("add", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)

	exportCmd.StringVar(&registryPath, "path", defaultManifestPath, "Destination for the exported manifest")

	// Add command flags
	nameAdd := addCmd.String("name", "", "Tool name (e.g., vibe_planner)")
	displayName := addCmd.String("displayName", "", "Display Name (e.g., Vibe Planner)")
	description := addCmd.String("description", "", "Description")
	category := addCmd.String("category", "", "Category (e.g., planning)")
	tags := addCmd.String("tags", "", "Comma-separated tags")
	addCmd.StringVar(&registryPath, "path", defaultManifestPath, "Path to manifest file")

	validateCmd.StringVar(&registryPath, "path", defaultManifestPath, "Path to manifest file")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		reg := registry.DefaultRegistry()
		reg.LastUpdated = time.Now().Format(time.RFC3339)
		if err := saveRegistry(reg, registryPath); err != nil {
			fmt.Printf("Error exporting registry: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Exported %d tools to %s\n", len(reg.Tools), registryPath)

	case "add":
		addCmd.Parse(os.Args[2:])
		if *nameAdd == "" || *displayName == "" || *description == "" || *category == "" {
			fmt.Println("Error: name, displayName, description, and category are required for add.")
			addCmd.Usage()
			os.Exit(1)
		}
		tool := registry.Tool{
			Name:        *nameAdd,
			DisplayName: *displayName,
			Description: *description,
			Category:    *category,
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
			ErrorCodes: []string{},
			Tags:       splitTags(*tags),
		}
		if err := addTool(&tool); err != nil {
			fmt.Printf("Error adding tool: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Added tool: %s\n", *nameAdd)

	case "validate":
		validateCmd.Parse(os.Args[2:])
		if err := validateRegistry(); err != nil {
			fmt.Printf("Registry validation failed: %v\n", err)
			os.Exit(1)
		}

	case "help":
		fallthrough
	default:
		help()
	}
}

func addTool(tool *registry.Tool) error {
	if err := validation.ValidateToolNaming(tool.Name); err != nil {
		return err
	}

	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		// An absent manifest starts from the built-in tool set.
		if os.IsNotExist(err) {
			reg = registry.DefaultRegistry()
		} else {
			return fmt.Errorf("failed to load registry: %w", err)
		}
	}

	for _, existing := range reg.Tools {
		if existing.Name == tool.Name {
			return fmt.Errorf("tool with name %s already exists", tool.Name)
		}
	}

	reg.Tools = append(reg.Tools, *tool)
	reg.LastUpdated = time.Now().Format(time.RFC3339)

	return saveRegistry(reg, registryPath)
}

func validateRegistry() error {
	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	if len(reg.Tools) == 0 {
		return fmt.Errorf("registry contains no tools")
	}

	names := make(map[string]bool)
	for _, tool := range reg.Tools {
		if tool.Name == "" {
			return fmt.Errorf("tool missing required field: name")
		}
		if names[tool.Name] {
			return fmt.Errorf("duplicate tool name: %s", tool.Name)
		}
		names[tool.Name] = true

		if err := validation.ValidateToolNaming(tool.Name); err != nil {
			return fmt.Errorf("tool %s: %w", tool.Name, err)
		}
		if tool.DisplayName == "" {
			return fmt.Errorf("tool %s missing required field: displayName", tool.Name)
		}
		if tool.Description == "" {
			return fmt.Errorf("tool %s missing required field: description", tool.Name)
		}
		if tool.Category == "" {
			return fmt.Errorf("tool %s missing required field: category", tool.Name)
		}
		if tool.InputSchema == nil {
			return fmt.Errorf("tool %s missing required field: inputSchema", tool.Name)
		}

		// The server compiles every schema at boot; a manifest that
		// fails here would fail the boot too.
		if _, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(tool.InputSchema)); err != nil {
			return fmt.Errorf("tool %s has an invalid input schema: %w", tool.Name, err)
		}
		if tool.OutputSchema != nil {
			if _, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(tool.OutputSchema)); err != nil {
				return fmt.Errorf("tool %s has an invalid output schema: %w", tool.Name, err)
			}
		}
	}

	fmt.Printf("Registry validation passed. Found %d tools.\n", len(reg.Tools))
	return nil
}

// saveRegistry handles saving the registry to file
func saveRegistry(reg *registry.ToolRegistry, path string) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	err = os.WriteFile(path, data, 0644)
	if err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}

	return nil
}

func splitTags(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func help() {
	fmt.Println(`
Usage: registry-export <command> [flags]

Commands:
  export   Write the built-in tool registry to a manifest file
  add      Add a new tool to a manifest file
  validate Validate a manifest file
  help     Show this help message

Examples:
  registry-export export -path configs/tool-registry.json
  registry-export add -name mood_radio -displayName "Mood Radio" -description "Builds a station seed from a mood" -category search
  registry-export validate -path configs/tool-registry.json

The server serves the built-in registry by default; point TOOL_REGISTRY_PATH
at an exported manifest to override it without a rebuild.

Use 'registry-export <command> -h' for more information about a command.
`)
}
