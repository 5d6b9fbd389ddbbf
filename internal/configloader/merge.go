package configloader

import (
	"slices"

	"github.com/yaklabco/syncasync/pkg/config"
)

// merge layers override on top of base. Empty strings, zero numbers, nil
// pointers and nil slices in override leave base untouched; CLI booleans
// only ever switch on.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override.Clone()
	}
	if override == nil {
		return base.Clone()
	}

	result := base.Clone()

	setString(&result.Mode, override.Mode)
	setString(&result.CompletionLabel, override.CompletionLabel)
	setString(&result.NameSuffix, override.NameSuffix)
	setString(&result.Queue, override.Queue)
	setString(&result.Indent, override.Indent)
	setString(&result.Markdown.Flavor, override.Markdown.Flavor)
	setString(&result.Lines, override.Lines)

	setBool(&result.Markdown.Enabled, override.Markdown.Enabled)
	setBool(&result.Markdown.DetectUnlabeled, override.Markdown.DetectUnlabeled)
	setBool(&result.Backups.Enabled, override.Backups.Enabled)

	if override.Ignore != nil {
		result.Ignore = slices.Clone(override.Ignore)
	}

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	result.DryRun = result.DryRun || override.DryRun
	result.Write = result.Write || override.Write

	return result
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setBool(dst **bool, v *bool) {
	if v != nil {
		*dst = config.Bool(*v)
	}
}

// MergeAll merges configs in order; later configs take precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for _, cfg := range configs[1:] {
		result = merge(result, cfg)
	}
	return result
}
