package config

import (
	"errors"
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

func (v Validation) Err() error {
	if v.OK() {
		return nil
	}
	return errors.New("config validation failed:\n- " + strings.Join(v.Errors, "\n- "))
}

// NormalizeAndValidate returns a normalized copy of cfg plus everything wrong
// or suspicious about it. Missing values fall back to defaults rather than
// erroring, so a hand-trimmed config file still works.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	def := Default()

	out.App.DataDir = strings.TrimSpace(out.App.DataDir)
	if out.App.DataDir == "" {
		out.App.DataDir = def.App.DataDir
	}

	out.API.BaseURL = strings.TrimRight(strings.TrimSpace(out.API.BaseURL), "/")
	if out.API.BaseURL == "" {
		out.API.BaseURL = def.API.BaseURL
	}
	if !strings.HasPrefix(out.API.BaseURL, "http://") && !strings.HasPrefix(out.API.BaseURL, "https://") {
		res.addErr("api.base_url must be an http(s) URL, got %q", out.API.BaseURL)
	}

	if out.API.SearchPages == 0 {
		out.API.SearchPages = def.API.SearchPages
	}
	if out.API.SearchPages < 0 {
		res.addErr("api.search_pages must be > 0")
	} else if out.API.SearchPages > 2000 {
		res.addWarn("api.search_pages is very high (%d); every page is requested concurrently on each run.", out.API.SearchPages)
	}

	if out.API.TimeoutSeconds < 0 {
		res.addErr("api.timeout_seconds must be >= 0 (0 disables timeouts)")
	}

	return out, res
}
