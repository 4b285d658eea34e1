package config

// ScanProfile holds directory-specific scan settings.
// This allows customizing scan behavior per target, e.g. scanning a
// backup directory with hidden files included while the default scan
// skips them.
type ScanProfile struct {
	// Extensions restricts content scanning to these file extensions
	// for the target. If empty, the global extension filter applies.
	Extensions []string `yaml:"extensions,omitempty"`

	// IgnorePatterns are glob patterns to skip under this target.
	IgnorePatterns []string `yaml:"ignorePatterns,omitempty"`

	// IncludePatterns are glob patterns files under this target must
	// match to be scanned. If empty, every file is eligible.
	IncludePatterns []string `yaml:"includePatterns,omitempty"`

	// MaxFileSize overrides the global file size limit for this target.
	// If zero, the global limit is used.
	MaxFileSize int64 `yaml:"maxFileSize,omitempty"`

	// IncludeHidden enables scanning dot-files under this target even
	// when the global setting leaves them out.
	IncludeHidden bool `yaml:"includeHidden,omitempty"`
}

// File represents the structure of the .keyhound configuration file.
type File struct {
	// Targets maps directory paths to their scan profiles.
	// Keys should be absolute or target-relative paths as passed on
	// the command line.
	Targets map[string]ScanProfile `yaml:"targets,omitempty"`

	// Defaults contains the default scan profile applied to all
	// targets unless overridden in a target-specific profile.
	Defaults ScanProfile `yaml:"defaults,omitempty"`
}

// GetProfile returns the scan profile for a specific target path.
// It merges the target-specific profile with the defaults.
func (cf *File) GetProfile(target string) ScanProfile {
	result := cf.Defaults

	if profile, ok := cf.Targets[target]; ok {
		if len(profile.Extensions) > 0 {
			result.Extensions = profile.Extensions
		}
		if len(profile.IgnorePatterns) > 0 {
			result.IgnorePatterns = profile.IgnorePatterns
		}
		if len(profile.IncludePatterns) > 0 {
			result.IncludePatterns = profile.IncludePatterns
		}
		if profile.MaxFileSize != 0 {
			result.MaxFileSize = profile.MaxFileSize
		}
		if profile.IncludeHidden {
			result.IncludeHidden = true
		}
	}

	return result
}
