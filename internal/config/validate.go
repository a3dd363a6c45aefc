package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Styles lists the glamour standard styles accepted by render.style.
var Styles = []string{"dracula", "dark", "light", "notty", "ascii", "pink", "tokyo-night", "auto"}

// CheckConfigValidity reports every invalid option at once.
func CheckConfigValidity(v *viper.Viper) error {
	var errs []error
	add := func(format string, args ...any) { errs = append(errs, fmt.Errorf(format, args...)) }

	if strings.TrimSpace(v.GetString("data_dir")) == "" {
		add("data_dir is required")
	}
	if strings.TrimSpace(v.GetString("document")) == "" {
		add("document is required")
	}

	style := v.GetString("render.style")
	if !contains(Styles, style) {
		add("render.style %q is not one of %s", style, strings.Join(Styles, ", "))
	}
	if v.GetInt("render.word_wrap") < 0 {
		add("render.word_wrap must not be negative")
	}

	for _, key := range []string{"usage.session_spacing", "usage.review_spacing"} {
		if d, err := parseDuration(v, key); err != nil {
			add("%s: %v", key, err)
		} else if d <= 0 {
			add("%s must be greater than 0", key)
		}
	}
	if d, err := parseDuration(v, "usage.review_delay"); err != nil {
		add("usage.review_delay: %v", err)
	} else if d < 0 {
		add("usage.review_delay must not be negative")
	}
	if v.GetInt("usage.actions_threshold") <= 0 {
		add("usage.actions_threshold must be greater than 0")
	}
	if v.GetInt("usage.min_acts_for_review") < 0 {
		add("usage.min_acts_for_review must not be negative")
	}

	switch strings.ToLower(strings.TrimSpace(v.GetString("log.level"))) {
	case "debug", "info", "warn", "error":
	default:
		add("log.level %q is not one of debug, info, warn, error", v.GetString("log.level"))
	}
	return errors.Join(errs...)
}

// Duration reads a duration option, accepting Go duration strings.
func Duration(v *viper.Viper, key string) time.Duration {
	d, _ := parseDuration(v, key)
	return d
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return 0, errors.New("missing duration")
	}
	return time.ParseDuration(raw)
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
