// Package demo generates a reproducible month of daily stats for a fixed
// roster so the dashboard can be explored without a live records source.
package demo

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okian/setterboard/internal/domain/model"
)

// OfferID identifies the built-in demo offer.
const OfferID = "demo-offer"

// Demo offer identity.
const (
	offerName  = "Solar-X Demo"
	offerTable = "Demo Table"
	offerBase  = "appDemo123"
	offerKey   = "demo-key"
)

// Generation shape.
const (
	days = 30
	// every messyEvery-th row spells its name sloppily.
	messyEvery = 7
)

// Stat ranges, inclusive.
const (
	dialsMin, dialsMax         = 20, 80
	pickupPctMin, pickupPctMax = 15, 25
	conversationRatio          = 0.8
	setPctMin, setPctMax       = 5, 25
	showPctMin, showPctMax     = 60, 90
	closePctMin, closePctMax   = 20, 40
	dealMin, dealMax           = 1000, 3000
	hoursMin, hoursMax         = 4, 8
	revenueMultiplier          = 2
	percent                    = 100
)

// Roster is the fixed list of demo people.
var Roster = []string{
	"Alex Rivera",
	"Sarah Chen",
	"Mike Ross",
	"Jessica Pearson",
	"Harvey Specter",
	"Louis Litt",
	"Donna Paulsen",
	"Rachel Zane",
}

// Column names beyond the default mapping.
const (
	setClosesColumn = "# of Closes"
	revenueColumn   = "Revenue"
)

// FieldMap is the mapping demo rows are written with.
func FieldMap() model.FieldMap {
	fm := model.DefaultFieldMap()
	fm.SetCloses = setClosesColumn
	fm.Revenue = revenueColumn
	return fm
}

// Offer returns the demo offer.
func Offer() model.Offer {
	return model.Offer{
		ID:        OfferID,
		Name:      offerName,
		APIKey:    offerKey,
		BaseID:    offerBase,
		TableName: offerTable,
		Mapping:   FieldMap(),
	}
}

// Generator builds demo rows.
type Generator struct {
	seed int64
}

// NewGenerator creates a Generator. The same seed and day always give the
// same rows.
func NewGenerator(seed int64) *Generator {
	return &Generator{seed: seed}
}

// Rows returns one row per roster member for each of the 30 days ending on
// now's calendar day in loc, newest first.
func (g *Generator) Rows(now time.Time, loc *time.Location) []model.RawRow {
	if loc == nil {
		loc = time.Local
	}
	today := now.In(loc)
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, loc)

	// Reseeding per day keeps a report stable for the whole day.
	rng := rand.New(rand.NewSource(g.seed ^ day.Unix())) //nolint:gosec // deterministic demo data
	fm := FieldMap()

	rows := make([]model.RawRow, 0, days*len(Roster))
	for i := 0; i < days; i++ {
		date := day.AddDate(0, 0, -i).Format(model.DateLayout)
		for _, name := range Roster {
			messy := (len(rows)+1)%messyEvery == 0
			rows = append(rows, g.row(rng, fm, date, name, messy))
		}
	}
	return rows
}

func (g *Generator) row(rng *rand.Rand, fm model.FieldMap, date, name string, messy bool) model.RawRow {
	stat := func(lo, hi int) int { return lo + rng.Intn(hi-lo+1) }
	pct := func(n, lo, hi int) int { return n * stat(lo, hi) / percent }

	dials := stat(dialsMin, dialsMax)
	pickups := pct(dials, pickupPctMin, pickupPctMax)
	conversations := int(math.Floor(float64(pickups) * conversationRatio))
	sets := pct(conversations, setPctMin, setPctMax)
	showed := pct(sets, showPctMin, showPctMax)
	closes := pct(showed, closePctMin, closePctMax)
	cash := closes * stat(dealMin, dealMax)
	hours := float64(stat(hoursMin, hoursMax)) + rng.Float64()

	id, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		id = uuid.New()
	}

	first, last, _ := strings.Cut(name, " ")
	if messy {
		first = "  " + strings.ToLower(first)
		last = strings.ToLower(last) + " "
	}

	return model.RawRow{
		ID: "rec" + strings.ReplaceAll(id.String(), "-", "")[:14],
		Fields: map[string]any{
			fm.Date:          date,
			fm.FirstName:     first,
			fm.LastName:      last,
			fm.Dials:         dials,
			fm.Pickups:       pickups,
			fm.Conversations: strconv.Itoa(conversations),
			fm.Hours:         math.Round(hours*100) / 100,
			fm.Sets:          sets,
			fm.SetsShowed:    showed,
			fm.SetCloses:     closes,
			fm.CashCollected: money(cash),
			fm.Revenue:       cash * revenueMultiplier,
		},
	}
}

// money formats n like "$12,345".
func money(n int) string {
	s := strconv.Itoa(n)
	var b strings.Builder
	b.WriteByte('$')
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// String describes the generator for logs.
func (g *Generator) String() string {
	return fmt.Sprintf("demo(seed=%d, days=%d, people=%d)", g.seed, days, len(Roster))
}
