// Package config provides configuration types, defaults, and persistence for arcadia.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// SaveRent updates the rent section in the config file.
// This preserves comments and formatting in other sections by using yaml.Node.
func SaveRent(configPath string, rent RentConfig) error {
	return saveSection(configPath, "rent", buildRentNode(rent))
}

// SaveCache updates the cache section in the config file.
func SaveCache(configPath string, cache CacheConfig) error {
	return saveSection(configPath, "cache", buildCacheNode(cache))
}

// saveSection replaces (or appends) a single top-level mapping key in the
// config file, keeping every other section byte-for-byte intact.
func saveSection(configPath, key string, value *yaml.Node) error {
	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	// Parse into yaml.Node to preserve comments
	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	if doc.Kind == 0 {
		// Empty or new file - create document structure
		doc = yaml.Node{
			Kind: yaml.DocumentNode,
			Content: []*yaml.Node{
				{
					Kind: yaml.MappingNode,
					Content: []*yaml.Node{
						{Kind: yaml.ScalarNode, Value: key},
						value,
					},
				},
			},
		}
	} else if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		root := doc.Content[0]
		if root.Kind == yaml.MappingNode {
			found := false
			for i := 0; i < len(root.Content)-1; i += 2 {
				if root.Content[i].Value == key {
					root.Content[i+1] = value
					found = true
					break
				}
			}
			if !found {
				root.Content = append(root.Content,
					&yaml.Node{Kind: yaml.ScalarNode, Value: key},
					value,
				)
			}
		}
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	// Write atomically (write to temp, then rename)
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".arcadia.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(buf.Bytes()); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, configPath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	return nil
}

// buildRentNode creates a yaml.Node representing the rent section.
func buildRentNode(rent RentConfig) *yaml.Node {
	return &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Value: "units_per_byte_year"},
			{Kind: yaml.ScalarNode, Value: strconv.FormatUint(rent.UnitsPerByteYear, 10)},
			{Kind: yaml.ScalarNode, Value: "retention_years"},
			{Kind: yaml.ScalarNode, Value: strconv.FormatUint(rent.RetentionYears, 10)},
			{Kind: yaml.ScalarNode, Value: "account_overhead_bytes"},
			{Kind: yaml.ScalarNode, Value: strconv.FormatUint(rent.AccountOverheadBytes, 10)},
		},
	}
}

// buildCacheNode creates a yaml.Node representing the cache section.
func buildCacheNode(cache CacheConfig) *yaml.Node {
	return &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Value: "disabled"},
			{Kind: yaml.ScalarNode, Value: strconv.FormatBool(cache.Disabled)},
			{Kind: yaml.ScalarNode, Value: "top_ttl_seconds"},
			{Kind: yaml.ScalarNode, Value: strconv.Itoa(cache.TopTTLSeconds)},
		},
	}
}
