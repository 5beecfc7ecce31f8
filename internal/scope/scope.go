// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

// Package scope models the analysis scope (whole company, one brand, a
// manufacturer mask, or a single item) and resolves free-text questions into
// a structured analysis request. The engine itself only ever sees resolved
// scopes; all alias and keyword handling lives here.
package scope

import (
	"fmt"
	"strings"
)

// Level is the granularity an analysis is restricted to.
type Level string

const (
	// LevelCompany spans the whole sales relation.
	LevelCompany Level = "company"

	// LevelBrand restricts to one brand (exact match on the brand column).
	LevelBrand Level = "brand"

	// LevelBrandMask restricts by manufacturer grouping with a SQL LIKE
	// pattern on the brand_mask column. Some manufacturers span several
	// brand codes and are only identifiable through the mask.
	LevelBrandMask Level = "brandmask"

	// LevelItem restricts to a single item code.
	LevelItem Level = "item"
)

// Scope is a resolved analysis restriction. The zero value is the company
// scope.
type Scope struct {
	Level Level
	Value string
}

// Company returns the unrestricted scope.
func Company() Scope {
	return Scope{Level: LevelCompany}
}

// Brand returns a scope restricted to one brand.
func Brand(name string) Scope {
	return Scope{Level: LevelBrand, Value: name}
}

// BrandMask returns a scope restricted by a manufacturer LIKE pattern,
// e.g. "%Bayer%".
func BrandMask(pattern string) Scope {
	return Scope{Level: LevelBrandMask, Value: pattern}
}

// Item returns a scope restricted to a single item code.
func Item(code string) Scope {
	return Scope{Level: LevelItem, Value: code}
}

// Parse parses the wire form of a scope: "company", "brand:DUP",
// "brandmask:%Bayer%" or "item:NPB-168-0". String() round-trips through
// Parse.
func Parse(s string) (Scope, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, string(LevelCompany)) {
		return Company(), nil
	}

	level, value, found := strings.Cut(s, ":")
	if !found {
		return Scope{}, fmt.Errorf("scope %q: expected level:value or \"company\"", s)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return Scope{}, fmt.Errorf("scope %q: empty value", s)
	}

	switch Level(strings.ToLower(strings.TrimSpace(level))) {
	case LevelBrand:
		return Brand(value), nil
	case LevelBrandMask:
		return BrandMask(value), nil
	case LevelItem:
		return Item(value), nil
	default:
		return Scope{}, fmt.Errorf("scope %q: unknown level %q", s, level)
	}
}

// String renders the wire form accepted by Parse.
func (s Scope) String() string {
	if s.IsCompany() {
		return string(LevelCompany)
	}
	return string(s.Level) + ":" + s.Value
}

// IsCompany reports whether the scope is unrestricted. The zero value
// counts as company.
func (s Scope) IsCompany() bool {
	return s.Level == LevelCompany || s.Level == ""
}

// Validate rejects scopes with a missing value or unknown level.
func (s Scope) Validate() error {
	switch s.Level {
	case LevelCompany, "":
		return nil
	case LevelBrand, LevelBrandMask, LevelItem:
		if s.Value == "" {
			return fmt.Errorf("scope level %s requires a value", s.Level)
		}
		return nil
	default:
		return fmt.Errorf("unknown scope level %q", s.Level)
	}
}
