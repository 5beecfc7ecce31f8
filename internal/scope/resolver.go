// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package scope

import (
	"context"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Category is the analysis family a question routes to.
type Category string

const (
	CategoryComparison   Category = "comparison"
	CategoryCoverageLoss Category = "coverage_loss"
	CategoryOOS          Category = "oos"
	CategoryPattern      Category = "pattern"
	CategorySupplyChain  Category = "supply_chain"
	CategoryCoverage     Category = "coverage"
	CategoryUnknown      Category = "unknown"
)

// categoryRule maps trigger keywords to a category. Rules are evaluated in
// order and the first match wins; comparison must precede coverage because
// "compare coverage" contains "coverage", and the generic coverage rule is
// deliberately last.
type categoryRule struct {
	category Category
	keywords []string
}

var categoryRules = []categoryRule{
	{CategoryComparison, []string{
		"compare coverage", "coverage vs", "coverage comparison",
		"brand vs company", "company vs brand",
	}},
	{CategoryCoverageLoss, []string{
		"stopped buying", "lost accounts", "inactive", "not buying",
		"churn", "not recently", "dropped", "lost", "risk",
	}},
	{CategoryOOS, []string{
		"out of stock", "oos", "no sales", "stopped selling", "zero sales",
		"not selling", "supply vs demand", "demand vs supply",
		"demand-driven", "supply-driven",
	}},
	{CategoryPattern, []string{
		"seasonal", "seasonality", "pattern", "stable", "fluctuating",
		"behavior", "repeat", "reorder", "strange", "spike",
	}},
	{CategorySupplyChain, []string{
		"supply chain", "supply issues", "availability",
	}},
	{CategoryCoverage, []string{
		"coverage", "reach", "penetration", "accounts bought",
		"how many accounts", "listing",
	}},
}

// DetectCategory routes a question to its analysis category by ordered
// keyword matching. Returns CategoryUnknown when nothing matches.
func DetectCategory(question string) Category {
	q := strings.ToLower(question)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(q, kw) {
				return rule.category
			}
		}
	}
	return CategoryUnknown
}

// Alias maps a colloquial term to a resolved scope. Manufacturer names that
// span several brand codes resolve to a brand-mask scope instead of a brand.
type Alias struct {
	Term  string
	Scope Scope
}

// DefaultAliases is the built-in alias table. Aliases are checked before the
// brand catalog, so an alias wins even when the catalog also contains the
// term as a brand.
var DefaultAliases = []Alias{
	{Term: "abbott", Scope: Brand("DUP")},
	{Term: "duphalac", Scope: Brand("DUP")},
	{Term: "duphaston", Scope: Brand("DUP")},
	{Term: "bayer", Scope: BrandMask("%Bayer%")},
}

// Catalog is the slice of the sales relation the resolver needs: the brand
// list for whole-word matching and item lookups for code/description
// candidates. *database.DB satisfies it.
type Catalog interface {
	// ListBrands returns the distinct brand names in the relation.
	ListBrands(ctx context.Context) ([]string, error)

	// LookupItem resolves an exact item code or exact description to the
	// item code. ok is false when nothing matches.
	LookupItem(ctx context.Context, token string) (code string, ok bool, err error)

	// LookupItemByDesc resolves a description fragment (LIKE match) to the
	// first matching item code.
	LookupItemByDesc(ctx context.Context, fragment string) (code string, ok bool, err error)
}

var (
	quotedRe   = regexp.MustCompile(`"([^"]*)"`)
	itemCodeRe = regexp.MustCompile(`\b[A-Za-z0-9]+-[A-Za-z0-9-]+\b`)
	daysRe     = regexp.MustCompile(`(\d+)\s*days?`)
	monthsRe   = regexp.MustCompile(`(\d+)\s*(?:m\b|months?)`)
	yearsRe    = regexp.MustCompile(`(\d+)\s*(?:y\b|years?)`)
)

// Resolver turns free-text questions into resolved analysis requests using
// the alias table and the catalog.
type Resolver struct {
	catalog Catalog
	aliases []Alias
}

// NewResolver builds a resolver over the given catalog. A nil alias slice
// selects DefaultAliases.
func NewResolver(catalog Catalog, aliases []Alias) *Resolver {
	if aliases == nil {
		aliases = DefaultAliases
	}
	return &Resolver{catalog: catalog, aliases: aliases}
}

// DetectBrand finds the brand (or brand-mask) scope a question refers to.
// Aliases are checked first; then every known brand is tried as a whole word,
// longest names first so "DUP FORTE" beats "DUP". ok is false when no brand
// is mentioned.
func (r *Resolver) DetectBrand(ctx context.Context, question string) (Scope, bool, error) {
	q := strings.ToLower(question)

	for _, alias := range r.aliases {
		if strings.Contains(q, alias.Term) {
			return alias.Scope, true, nil
		}
	}

	brands, err := r.catalog.ListBrands(ctx)
	if err != nil {
		return Scope{}, false, err
	}
	sort.Slice(brands, func(i, j int) bool { return len(brands[i]) > len(brands[j]) })

	for _, brand := range brands {
		if brand == "" {
			continue
		}
		re, err := regexp.Compile(`\b` + regexp.QuoteMeta(strings.ToLower(brand)) + `\b`)
		if err != nil {
			continue
		}
		if re.MatchString(q) {
			return Brand(brand), true, nil
		}
	}
	return Scope{}, false, nil
}

// DetectItem finds the item code a question refers to. Quoted phrases are
// tried first as an exact code or description, then as a description
// fragment when longer than 4 characters; finally any code-shaped token
// (letters/digits with dashes) is verified against the relation.
func (r *Resolver) DetectItem(ctx context.Context, question string) (string, bool, error) {
	for _, m := range quotedRe.FindAllStringSubmatch(question, -1) {
		quoted := m[1]
		if quoted == "" {
			continue
		}
		code, ok, err := r.catalog.LookupItem(ctx, quoted)
		if err != nil {
			return "", false, err
		}
		if ok {
			return code, true, nil
		}
		if len(quoted) > 4 {
			code, ok, err = r.catalog.LookupItemByDesc(ctx, quoted)
			if err != nil {
				return "", false, err
			}
			if ok {
				return code, true, nil
			}
		}
	}

	for _, token := range itemCodeRe.FindAllString(question, -1) {
		code, ok, err := r.catalog.LookupItem(ctx, token)
		if err != nil {
			return "", false, err
		}
		if ok {
			return code, true, nil
		}
	}
	return "", false, nil
}

// ExtractDays pulls an explicit "N days" span out of a question.
func ExtractDays(question string) (int, bool) {
	m := daysRe.FindStringSubmatch(strings.ToLower(question))
	if m == nil {
		return 0, false
	}
	days, err := strconv.Atoi(m[1])
	if err != nil || days <= 0 {
		return 0, false
	}
	return days, true
}

// ExtractWindows pulls rolling-window lengths out of a question, in months.
// "12 months" and "24m" contribute directly; "2 years" and "4y" contribute
// as 24 and 48. The result is sorted ascending with duplicates removed; nil
// means no explicit windows were mentioned.
func ExtractWindows(question string) []int {
	q := strings.ToLower(question)
	seen := make(map[int]bool)
	var windows []int

	add := func(months int) {
		if months > 0 && !seen[months] {
			seen[months] = true
			windows = append(windows, months)
		}
	}

	for _, m := range monthsRe.FindAllStringSubmatch(q, -1) {
		if v, err := strconv.Atoi(m[1]); err == nil {
			add(v)
		}
	}
	for _, m := range yearsRe.FindAllStringSubmatch(q, -1) {
		if v, err := strconv.Atoi(m[1]); err == nil {
			add(v * 12)
		}
	}

	sort.Ints(windows)
	return windows
}

// Request is a fully resolved question, ready to dispatch to the engine.
type Request struct {
	Question   string   `json:"question"`
	Category   Category `json:"category"`
	Scope      Scope    `json:"-"`
	ScopeStr   string   `json:"scope"`
	ItemCode   string   `json:"item_code,omitempty"`
	RecentDays int      `json:"recent_days,omitempty"`
	Windows    []int    `json:"windows,omitempty"`
}

// Resolve classifies the question and resolves its scope, item and
// parameters. Item detection only runs for categories that can use an item;
// the company scope stands in when no brand is mentioned.
func (r *Resolver) Resolve(ctx context.Context, question string) (Request, error) {
	req := Request{
		Question: question,
		Category: DetectCategory(question),
		Scope:    Company(),
	}

	brandScope, found, err := r.DetectBrand(ctx, question)
	if err != nil {
		return req, err
	}
	if found {
		req.Scope = brandScope
	}

	switch req.Category {
	case CategoryCoverageLoss, CategoryOOS, CategoryPattern:
		code, ok, err := r.DetectItem(ctx, question)
		if err != nil {
			return req, err
		}
		if ok {
			req.ItemCode = code
			if !found {
				req.Scope = Item(code)
			}
		}
	}

	if days, ok := ExtractDays(question); ok {
		req.RecentDays = days
	}
	req.Windows = ExtractWindows(question)
	req.ScopeStr = req.Scope.String()
	return req, nil
}
