package assets

import (
	"fmt"
	"strings"
)

// MaxAssetNameLength bounds style and starter names.
const MaxAssetNameLength = 64

// ValidateStyleName checks a builtin style name. Styles live at
// styles/<name>.css, so the name is given without the extension. Inner
// dots are allowed for versioned names such as "print.v2".
func ValidateStyleName(name string) error {
	if err := validateName("style", name); err != nil {
		return err
	}
	if strings.HasSuffix(name, ".css") {
		return fmt.Errorf("%w: style %q: drop the .css extension", ErrInvalidAssetName, name)
	}
	return nil
}

// ValidateStarterName checks a starter name. Starters are directories
// under starters/ and follow the same naming rules as styles.
func ValidateStarterName(name string) error {
	return validateName("starter", name)
}

// validateName enforces the shared rules: lowercase ASCII letters,
// digits, '-', '_' and single inner dots, starting with a letter or digit.
func validateName(kind, name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty %s name", ErrInvalidAssetName, kind)
	}
	if len(name) > MaxAssetNameLength {
		return fmt.Errorf("%w: %s name longer than %d chars", ErrInvalidAssetName, kind, MaxAssetNameLength)
	}
	if !isLowerAlnum(name[0]) {
		return fmt.Errorf("%w: %s %q must start with a lowercase letter or digit", ErrInvalidAssetName, kind, name)
	}
	if strings.HasSuffix(name, ".") || strings.Contains(name, "..") {
		return fmt.Errorf("%w: %s %q has an empty dot segment", ErrInvalidAssetName, kind, name)
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if !isLowerAlnum(c) && c != '-' && c != '_' && c != '.' {
			return fmt.Errorf("%w: %s %q contains %q", ErrInvalidAssetName, kind, name, c)
		}
	}
	return nil
}

func isLowerAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}
