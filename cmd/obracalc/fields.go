package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/estimate"
	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/settings"
)

// parseFields turns key=value arguments into a form.
func parseFields(args []string) (estimate.Form, error) {
	form := estimate.Form{}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("expected key=value, got %q", arg)
		}
		form[key] = strings.TrimSpace(value)
	}
	return form, nil
}

// parseQuoteArg splits "category:k=v,k=v". A piece without "=" continues the
// previous value, so decimal commas like thickness=0,10 survive.
func parseQuoteArg(arg string) (estimate.Category, estimate.Form, error) {
	name, rest, ok := strings.Cut(arg, ":")
	if !ok {
		return "", nil, fmt.Errorf("expected category:key=value,..., got %q", arg)
	}
	category, err := estimate.ParseCategory(name)
	if err != nil {
		return "", nil, err
	}

	var pairs []string
	for _, piece := range strings.Split(rest, ",") {
		if !strings.Contains(piece, "=") && len(pairs) > 0 {
			pairs[len(pairs)-1] += "," + piece
			continue
		}
		pairs = append(pairs, piece)
	}
	if len(pairs) == 1 && strings.TrimSpace(pairs[0]) == "" {
		pairs = nil
	}
	form, err := parseFields(pairs)
	if err != nil {
		return "", nil, err
	}
	return category, form, nil
}

// parseSettingsPatch maps key=value arguments onto a settings patch.
func parseSettingsPatch(args []string) (settings.Patch, error) {
	var p settings.Patch
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return settings.Patch{}, fmt.Errorf("expected key=value, got %q", arg)
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		switch key {
		case "currency":
			v := strings.ToUpper(value)
			p.Currency = &v
		case "unitSystem", "units":
			v := strings.ToLower(value)
			if v != "metric" && v != "imperial" {
				return settings.Patch{}, fmt.Errorf("unitSystem must be metric or imperial, got %q", value)
			}
			p.UnitSystem = &v
		case "notifications", "darkMode", "autoSave":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return settings.Patch{}, fmt.Errorf("%s: %w", key, err)
			}
			switch key {
			case "notifications":
				p.Notifications = &b
			case "darkMode":
				p.DarkMode = &b
			default:
				p.AutoSave = &b
			}
		default:
			return settings.Patch{}, fmt.Errorf("unknown setting %q", key)
		}
	}
	return p, nil
}
