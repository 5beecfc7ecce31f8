// Shelfwatch - Sales Coverage and Availability Analytics
// Copyright 2026 The Shelfwatch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shelfwatch/shelfwatch

package database

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/shelfwatch/shelfwatch/internal/logging"
)

// demoAccount is one buying account in the demo dataset.
type demoAccount struct {
	name    string
	channel string
	emirate string
}

// demoItem is one item profile. The profiles are shaped so every analysis
// has something to find: stable sellers, a seasonal line, a stock-out, a
// demand fade, a promo spike and a below-floor long tail.
type demoItem struct {
	code      string
	desc      string
	brand     string
	mask      string
	unitPrice float64
	// monthlyQty is the baseline units sold per month across all buyers.
	monthlyQty int
	// buyersMin/buyersMax bound how many accounts buy in a given month.
	buyersMin, buyersMax int
	// volatility is the relative jitter applied to each monthly quantity.
	volatility float64
	// seasonal applies a winter peak curve when set.
	seasonal bool
	// stopDaysAgo cuts off all sales within the trailing N days (stock-out).
	stopDaysAgo int
	// fadeFactor scales the last three months' demand (1 = steady).
	fadeFactor float64
	// spikeMonthsAgo quadruples one month's volume (promo anomaly).
	spikeMonthsAgo int
}

// demoSeed fixes the RNG so repeated runs produce the same relation.
const demoSeed = 1248

// demoMonths is how far back the generated history reaches. 26 months keeps
// the 24-month scans fully inside data.
const demoMonths = 26

// SeedDemoData populates an empty sales relation with a deterministic
// synthetic dataset for local evaluation and demos. A non-empty relation is
// left untouched, so the seed is safe to run on every start.
func (db *DB) SeedDemoData(ctx context.Context) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var count int64
	if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM sales").Scan(&count); err != nil {
		return fmt.Errorf("failed to check sales row count: %w", err)
	}
	if count > 0 {
		logging.Debug().Int64("rows", count).Msg("Sales relation already populated, skipping demo seed")
		return nil
	}

	logging.Info().Msg("Seeding sales relation with demo data...")

	rng := rand.New(rand.NewSource(demoSeed)) //nolint:gosec // deterministic demo data, not crypto
	asOf := truncateDay(time.Now())

	accounts := demoAccounts()
	items := demoItems()
	salesmen := []string{
		"Ahmed Hassan", "Priya Nair", "John Mathew",
		"Fatima Al Ali", "Ramesh Kumar", "Sara Ibrahim",
	}

	// Al Noor silences after its load-up purchase below, producing the
	// overstock pattern: a big buy and then nothing.
	accountSilenceDays := map[string]int{
		"Al Noor Pharmacy - Karama": 45,
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO sales (
			invoice_no, invoice_date, item_code, item_desc, brand, brand_mask,
			account_name, channel, emirate, salesman, amount, regular_qty, bonus_qty
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare seed insert: %w", err)
	}
	defer closeQuietly(stmt)

	invoiceSeq := 0
	nextInvoice := func() string {
		invoiceSeq++
		return fmt.Sprintf("INV-%06d", invoiceSeq)
	}

	insert := func(date time.Time, item demoItem, account demoAccount, qty int) error {
		if qty < 1 {
			qty = 1
		}
		bonus := qty / 10
		amount := math.Round(float64(qty)*item.unitPrice*100) / 100
		salesman := salesmen[accountIndex(accounts, account.name)%len(salesmen)]
		_, err := stmt.ExecContext(ctx, nextInvoice(), date, item.code, item.desc,
			item.brand, item.mask, account.name, account.channel, account.emirate,
			salesman, amount, qty, bonus)
		return err
	}

	for _, item := range items {
		for monthsAgo := demoMonths; monthsAgo >= 0; monthsAgo-- {
			monthStart := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, asOf.Location()).AddDate(0, -monthsAgo, 0)
			mult := monthMultiplier(item, monthStart, monthsAgo)

			buyers := item.buyersMin
			if spread := item.buyersMax - item.buyersMin; spread > 0 {
				buyers += rng.Intn(spread + 1)
			}

			for b := 0; b < buyers; b++ {
				account := accounts[rng.Intn(len(accounts))]
				date := monthStart.AddDate(0, 0, rng.Intn(28))
				if !date.Before(asOf) {
					continue
				}
				if item.stopDaysAgo > 0 && DaysBetween(date, asOf) < item.stopDaysAgo {
					continue
				}
				if silence := accountSilenceDays[account.name]; silence > 0 && DaysBetween(date, asOf) < silence {
					continue
				}

				jitter := 1 + item.volatility*(2*rng.Float64()-1)
				qty := int(float64(item.monthlyQty) * mult * jitter / float64(buyers))
				if err := insert(date, item, account, qty); err != nil {
					return fmt.Errorf("failed to seed sale for %s: %w", item.code, err)
				}
			}
		}
	}

	// Load-up event behind the silence above: one account buys several
	// months of stock at once, 45 days before asOf.
	loadDate := asOf.AddDate(0, 0, -45)
	loadAccount := demoAccount{name: "Al Noor Pharmacy - Karama", channel: "Pharmacy", emirate: "Dubai"}
	for _, code := range []string{"DUP-100-60", "DUP-200-30", "PAN-500-24"} {
		item, ok := findDemoItem(items, code)
		if !ok {
			continue
		}
		if err := insert(loadDate, item, loadAccount, item.monthlyQty*4); err != nil {
			return fmt.Errorf("failed to seed load-up sale for %s: %w", code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	logging.Info().
		Int("invoices", invoiceSeq).
		Int("items", len(items)).
		Int("accounts", len(accounts)).
		Int("months", demoMonths).
		Msg("Demo data seeded")

	return nil
}

// monthMultiplier shapes an item's demand for one month.
func monthMultiplier(item demoItem, monthStart time.Time, monthsAgo int) float64 {
	mult := 1.0

	if item.seasonal {
		switch monthStart.Month() {
		case time.November, time.December, time.January:
			mult = 2.5
		case time.October, time.February:
			mult = 1.5
		default:
			mult = 0.6
		}
	}

	if item.spikeMonthsAgo > 0 && monthsAgo == item.spikeMonthsAgo {
		mult *= 4
	}

	if item.fadeFactor > 0 && item.fadeFactor != 1 && monthsAgo <= 2 {
		mult *= item.fadeFactor
	}

	return mult
}

func demoAccounts() []demoAccount {
	return []demoAccount{
		{"Life Pharmacy - Marina", "Pharmacy", "Dubai"},
		{"Life Pharmacy - Jumeirah", "Pharmacy", "Dubai"},
		{"Aster Pharmacy - Deira", "Pharmacy", "Dubai"},
		{"Aster Pharmacy - Karama", "Pharmacy", "Dubai"},
		{"BinSina Pharmacy - JBR", "Pharmacy", "Dubai"},
		{"BinSina Pharmacy - Mirdif", "Pharmacy", "Dubai"},
		{"Boots Pharmacy - MOE", "Pharmacy", "Dubai"},
		{"Al Noor Pharmacy - Karama", "Pharmacy", "Dubai"},
		{"Al Manara Pharmacy - Corniche", "Pharmacy", "Abu Dhabi"},
		{"Lifeline Pharmacy - Khalidiya", "Pharmacy", "Abu Dhabi"},
		{"Medicina Pharmacy - Al Ain", "Pharmacy", "Abu Dhabi"},
		{"Sahara Pharmacy - Rolla", "Pharmacy", "Sharjah"},
		{"Al Zahra Pharmacy - Al Wahda", "Pharmacy", "Sharjah"},
		{"Thumbay Pharmacy - Ajman", "Pharmacy", "Ajman"},
		{"RAK Pharmacy - Al Nakheel", "Pharmacy", "Ras Al Khaimah"},
		{"Carrefour - Mall of the Emirates", "Supermarket", "Dubai"},
		{"Carrefour - Yas Mall", "Supermarket", "Abu Dhabi"},
		{"Lulu Hypermarket - Al Barsha", "Supermarket", "Dubai"},
		{"Lulu Hypermarket - Al Wahda", "Supermarket", "Sharjah"},
		{"Spinneys - Motor City", "Supermarket", "Dubai"},
		{"Union Coop - Al Warqa", "Supermarket", "Dubai"},
		{"NMC Hospital - Abu Dhabi", "Hospital", "Abu Dhabi"},
		{"Mediclinic - City Hospital", "Hospital", "Dubai"},
		{"Aster Hospital - Mankhool", "Hospital", "Dubai"},
		{"Thumbay Hospital - Ajman", "Hospital", "Ajman"},
		{"Saqr Hospital - RAK", "Hospital", "Ras Al Khaimah"},
		{"Fujairah Port Pharmacy", "Pharmacy", "Fujairah"},
	}
}

func demoItems() []demoItem {
	return []demoItem{
		// Stable DUP sellers (Abbott).
		{code: "DUP-100-60", desc: "Duphalac Syrup 100ml", brand: "DUP", mask: "Abbott",
			unitPrice: 24.5, monthlyQty: 900, buyersMin: 5, buyersMax: 9, volatility: 0.08},
		{code: "DUP-200-30", desc: "Duphaston 10mg 20 Tab", brand: "DUP", mask: "Abbott",
			unitPrice: 38.0, monthlyQty: 600, buyersMin: 4, buyersMax: 8, volatility: 0.1},
		// Stock-out: sold broadly, then went dark 45 days ago.
		{code: "DUP-150-90", desc: "Duphalac Fruit 200ml", brand: "DUP", mask: "Abbott",
			unitPrice: 29.0, monthlyQty: 800, buyersMin: 6, buyersMax: 9, volatility: 0.1, stopDaysAgo: 45},
		// High-volume steady line.
		{code: "PAN-500-24", desc: "Panadol Advance 500mg 24 Tab", brand: "PAN", mask: "GSK",
			unitPrice: 12.0, monthlyQty: 2400, buyersMin: 7, buyersMax: 10, volatility: 0.07},
		// Volatile line.
		{code: "PAN-650-12", desc: "Panadol Extra 12 Tab", brand: "PAN", mask: "GSK",
			unitPrice: 9.5, monthlyQty: 1100, buyersMin: 4, buyersMax: 8, volatility: 0.65},
		// Bayer-masked brands for alias resolution demos.
		{code: "ASP-100-30", desc: "Aspirin Protect 100mg 30 Tab", brand: "ASP", mask: "Bayer Consumer Care",
			unitPrice: 16.0, monthlyQty: 700, buyersMin: 4, buyersMax: 7, volatility: 0.09},
		// Demand fade: recent quarter at 40% of run rate, never zero.
		{code: "BEP-250-50", desc: "Bepanthen Cream 50g", brand: "BEP", mask: "Bayer Consumer Care",
			unitPrice: 21.0, monthlyQty: 500, buyersMin: 3, buyersMax: 6, volatility: 0.12, fadeFactor: 0.4},
		// Seasonal winter lines.
		{code: "VIT-1000-20", desc: "Cebion Vitamin C 1000mg 20 Eff", brand: "VIT", mask: "Merck",
			unitPrice: 27.0, monthlyQty: 650, buyersMin: 4, buyersMax: 7, volatility: 0.1, seasonal: true},
		{code: "SUP-400-10", desc: "Supradyn Energy 10 Eff", brand: "SUP", mask: "Bayer Consumer Care",
			unitPrice: 31.0, monthlyQty: 450, buyersMin: 3, buyersMax: 6, volatility: 0.12, seasonal: true},
		// Promo spike five months back, the anomaly scan's target.
		{code: "GAV-150-24", desc: "Gaviscon Peppermint 150ml", brand: "GAV", mask: "Reckitt",
			unitPrice: 19.5, monthlyQty: 550, buyersMin: 4, buyersMax: 7, volatility: 0.1, spikeMonthsAgo: 5},
		// Moderate variation.
		{code: "NPB-168-0", desc: "Nutriplus Baby Formula Stage 1", brand: "NPB", mask: "Nestle",
			unitPrice: 54.0, monthlyQty: 350, buyersMin: 3, buyersMax: 6, volatility: 0.32},
		// Below the materiality floors: long-tail noise.
		{code: "OME-20-14", desc: "Omeprazole 20mg 14 Cap", brand: "OME", mask: "Julphar",
			unitPrice: 8.0, monthlyQty: 40, buyersMin: 1, buyersMax: 3, volatility: 0.3},
	}
}

func findDemoItem(items []demoItem, code string) (demoItem, bool) {
	for _, item := range items {
		if item.code == code {
			return item, true
		}
	}
	return demoItem{}, false
}

func accountIndex(accounts []demoAccount, name string) int {
	for i, a := range accounts {
		if a.name == name {
			return i
		}
	}
	return 0
}
