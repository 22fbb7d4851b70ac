// Copyright 2026 The Litepub Authors
// SPDX-License-Identifier: Apache-2.0

package filter

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Thresholds bound the presentation transformations. A block is "over
// threshold" when it exceeds any applicable limit.
type Thresholds struct {
	// PDF code block externalization.
	PDFCodeMaxLines     int `yaml:"pdf_code_max_lines"`
	PDFCodeMaxChars     int `yaml:"pdf_code_max_chars"`
	PDFCodePreviewLines int `yaml:"pdf_code_preview_lines"`

	// Appendix relocation of additional content.
	AppendixBlocks int `yaml:"appendix_threshold_blocks"`
	AppendixChars  int `yaml:"appendix_threshold_chars"`

	// HTML folding.
	HTMLFoldBlocks int `yaml:"html_fold_threshold_blocks"`
	HTMLFoldChars  int `yaml:"html_fold_threshold_chars"`
}

// AppendixOptions name the lazily-created appendix section.
type AppendixOptions struct {
	Title        string `yaml:"title"`
	AnchorPrefix string `yaml:"anchor_prefix"`
}

// Config is the full filter pipeline configuration. Everything is
// deterministic data; no clocks, no randomness.
type Config struct {
	// VisibilityOrder maps visibility names to levels; lower is more
	// restricted.
	VisibilityOrder map[string]int `yaml:"visibility_order"`
	// ForbiddenPolicies lists the policy tags each build target
	// excludes.
	ForbiddenPolicies map[string][]string `yaml:"forbidden_policies"`
	// StripAttrs lists the attribute keys each build target strips.
	// Internal builds strip nothing.
	StripAttrs map[string][]string `yaml:"strip_attrs"`
	// ProtectedAttrs are never stripped, regardless of StripAttrs.
	ProtectedAttrs []string `yaml:"protected_attrs"`

	Thresholds Thresholds      `yaml:"thresholds"`
	Appendix   AppendixOptions `yaml:"appendix"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		VisibilityOrder: map[string]int{
			TargetInternal: 0,
			TargetExternal: 1,
			TargetDossier:  2,
		},
		ForbiddenPolicies: map[string][]string{
			TargetInternal: nil,
			TargetExternal: {"internal-only", "draft", "wip"},
			TargetDossier:  {"internal-only", "draft", "wip", "verbose"},
		},
		StripAttrs: map[string][]string{
			TargetExternal: {
				"producer", "run_id", "dataset_fingerprint", "config_fingerprint",
				"artifact_uri", "sha256", "source", "schema",
			},
			TargetDossier: {
				"producer", "run_id", "dataset_fingerprint", "config_fingerprint",
				"artifact_uri", "sha256", "source", "schema",
				"lock", "bind-to",
			},
		},
		ProtectedAttrs: []string{"id", "role", "kind", "visibility", "policies"},
		Thresholds: Thresholds{
			PDFCodeMaxLines:     50,
			PDFCodeMaxChars:     3000,
			PDFCodePreviewLines: 5,
			AppendixBlocks:      5,
			AppendixChars:       2000,
			HTMLFoldBlocks:      5,
			HTMLFoldChars:       2000,
		},
		Appendix: AppendixOptions{
			Title:        "Appendix",
			AnchorPrefix: "appendix",
		},
	}
}

// LoadConfig reads a YAML config file over the defaults: keys present
// in the file replace the default value wholesale.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read filter config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse filter config %s: %w", path, err)
	}
	return cfg, nil
}

// targetLevel is the minimum visibility level content must carry to
// survive filtering for target.
func (c Config) targetLevel(target string) int {
	return c.VisibilityOrder[target]
}

// forbiddenFor returns the forbidden policy tags for target as a set.
func (c Config) forbiddenFor(target string) map[string]bool {
	tags := c.ForbiddenPolicies[target]
	if len(tags) == 0 {
		return nil
	}
	set := make(map[string]bool, len(tags))
	for _, tag := range tags {
		set[tag] = true
	}
	return set
}

// stripFor returns the strippable attribute keys for target, with the
// protected keys already subtracted. Internal builds strip nothing.
func (c Config) stripFor(target string) map[string]bool {
	if target == TargetInternal {
		return nil
	}
	keys := c.StripAttrs[target]
	if len(keys) == 0 {
		return nil
	}
	protected := make(map[string]bool, len(c.ProtectedAttrs))
	for _, key := range c.ProtectedAttrs {
		protected[key] = true
	}
	set := make(map[string]bool, len(keys))
	for _, key := range keys {
		if !protected[key] {
			set[key] = true
		}
	}
	return set
}
