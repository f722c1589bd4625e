//go:build !windows

package game

import "os"

// GetLocale returns the locale set in the environment.
func GetLocale() (string, error) {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if locale := os.Getenv(key); locale != "" {
			return locale, nil
		}
	}
	return "", nil
}
