package mockai

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"regexp"
	"sort"
	"strings"
	"text/template"
	"time"

	"recruitedge-api/internal/shared/metrics"
	"recruitedge-api/internal/shared/util"
)

// Engine produces deterministic canned "AI" output from the embedded catalog.
type Engine struct {
	catalog   Catalog
	letters   map[string]*template.Template
	fallback  []*template.Template
	skillRegs []skillMatcher
	// Delay simulates model latency; zero disables it.
	Delay time.Duration
}

type skillMatcher struct {
	name string
	re   *regexp.Regexp
}

// New builds an Engine from the embedded catalog.
func New(delay time.Duration) (*Engine, error) {
	c, err := ParseCatalog(catalogYAML)
	if err != nil {
		return nil, err
	}
	return NewFromCatalog(c, delay)
}

// NewFromCatalog builds an Engine from an already parsed catalog.
func NewFromCatalog(c Catalog, delay time.Duration) (*Engine, error) {
	e := &Engine{catalog: c, letters: make(map[string]*template.Template), Delay: delay}
	for tone, body := range c.CoverLetters.Tones {
		tpl, err := template.New(tone).Option("missingkey=zero").Parse(body)
		if err != nil {
			return nil, fmt.Errorf("parse %s cover letter template: %w", tone, err)
		}
		e.letters[tone] = tpl
	}
	for i, body := range c.Skills.Fallback {
		tpl, err := template.New(fmt.Sprintf("fallback-%d", i)).Parse(body)
		if err != nil {
			return nil, fmt.Errorf("parse fallback recommendation %d: %w", i, err)
		}
		e.fallback = append(e.fallback, tpl)
	}
	for _, s := range c.Skills.Catalog {
		terms := append([]string{s.Name}, s.Aliases...)
		quoted := make([]string, 0, len(terms))
		for _, t := range terms {
			quoted = append(quoted, regexp.QuoteMeta(strings.ToLower(t)))
		}
		re, err := regexp.Compile(`(^|[^a-z0-9+#.])(` + strings.Join(quoted, "|") + `)($|[^a-z0-9+#])`)
		if err != nil {
			return nil, fmt.Errorf("compile skill %s: %w", s.Name, err)
		}
		e.skillRegs = append(e.skillRegs, skillMatcher{name: s.Name, re: re})
	}
	return e, nil
}

// Tones lists the tones with a cover-letter template.
func (e *Engine) Tones() []string {
	out := make([]string, 0, len(e.letters))
	for t := range e.letters {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// CoverLetterInput feeds the cover-letter template.
type CoverLetterInput struct {
	JobTitle      string
	CompanyName   string
	ApplicantName string
	Tone          string
	Highlights    []string
}

// CoverLetter renders a letter in the requested tone.
func (e *Engine) CoverLetter(ctx context.Context, in CoverLetterInput) (string, error) {
	start := time.Now()
	if err := e.wait(ctx); err != nil {
		return "", err
	}
	tpl, ok := e.letters[in.Tone]
	if !ok {
		tpl = e.letters[e.catalog.CoverLetters.Default]
	}
	if strings.TrimSpace(in.ApplicantName) == "" {
		in.ApplicantName = "The Applicant"
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, in); err != nil {
		return "", fmt.Errorf("render cover letter: %w", err)
	}
	metrics.ObserveGeneration("cover-letter-writer", time.Since(start))
	return strings.TrimSpace(buf.String()), nil
}

// SalaryInput identifies the role to estimate.
type SalaryInput struct {
	JobTitle        string
	Location        string
	Industry        string
	YearsExperience int
}

// Percentiles of the estimated distribution.
type Percentiles struct {
	P10 int64 `json:"p10"`
	P25 int64 `json:"p25"`
	P50 int64 `json:"p50"`
	P75 int64 `json:"p75"`
	P90 int64 `json:"p90"`
}

// SalaryEstimate is the mock market range for a role.
type SalaryEstimate struct {
	Min         int64
	Max         int64
	Median      int64
	Percentiles Percentiles
	Tips        []string
}

// Salary estimates compensation as role base x location x experience x seeded noise.
// The same input always yields the same estimate.
func (e *Engine) Salary(ctx context.Context, in SalaryInput) (SalaryEstimate, error) {
	start := time.Now()
	if err := e.wait(ctx); err != nil {
		return SalaryEstimate{}, err
	}
	title := strings.ToLower(strings.TrimSpace(in.JobTitle))
	location := strings.ToLower(strings.TrimSpace(in.Location))

	base := e.catalog.Salary.DefaultBase
	for _, r := range e.catalog.Salary.Roles {
		if containsAny(title, r.Match) {
			base = r.Base
			break
		}
	}
	mult := 1.0
	for _, l := range e.catalog.Salary.Locations {
		if containsAny(location, l.Match) {
			mult = l.Multiplier
			break
		}
	}
	years := in.YearsExperience
	if years < 0 {
		years = 0
	}
	if years > 20 {
		years = 20
	}
	experience := 0.85 + 0.035*float64(years)

	rng := seeded(title, location, strings.ToLower(in.Industry), fmt.Sprint(in.YearsExperience))
	noise := 0.95 + rng.Float64()*0.10

	median := roundTo(base*mult*experience*noise, 500)
	p := Percentiles{
		P10: roundTo(float64(median)*0.75, 500),
		P25: roundTo(float64(median)*0.87, 500),
		P50: median,
		P75: roundTo(float64(median)*1.15, 500),
		P90: roundTo(float64(median)*1.32, 500),
	}

	metrics.ObserveGeneration("salary-negotiator", time.Since(start))
	return SalaryEstimate{
		Min:         p.P10,
		Max:         p.P90,
		Median:      median,
		Percentiles: p,
		Tips:        pick(rng, e.catalog.Salary.Tips, 3),
	}, nil
}

// Recommendations returns study suggestions for a skill gap, most specific first.
func (e *Engine) Recommendations(skill string, gap int) []string {
	if gap <= 0 {
		return nil
	}
	if recs, ok := e.catalog.Skills.Recommendations[strings.ToLower(strings.TrimSpace(skill))]; ok && len(recs) > 0 {
		n := gap
		if n > len(recs) {
			n = len(recs)
		}
		return append([]string(nil), recs[:n]...)
	}
	tpl := e.fallback[int(util.Seed(strings.ToLower(skill))%uint64(len(e.fallback)))]
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, struct{ Skill string }{Skill: skill}); err != nil {
		return []string{"Practice " + skill}
	}
	return []string{buf.String()}
}

// DetectSkills returns catalog skills mentioned in text, in catalog order.
func (e *Engine) DetectSkills(text string) []string {
	lower := strings.ToLower(text)
	out := []string{}
	for _, m := range e.skillRegs {
		if m.re.MatchString(lower) {
			out = append(out, m.name)
		}
	}
	return out
}

// Summarize returns the first sentences of text, capped at maxWords words.
func Summarize(text string, maxWords int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	if maxWords <= 0 || len(words) <= maxWords {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:maxWords], " ") + "..."
}

func (e *Engine) wait(ctx context.Context) error {
	if e.Delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(e.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func seeded(parts ...string) *rand.Rand {
	seed := util.Seed(parts...)
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func pick(rng *rand.Rand, items []string, n int) []string {
	if n > len(items) {
		n = len(items)
	}
	idx := rng.Perm(len(items))[:n]
	sort.Ints(idx)
	out := make([]string, 0, n)
	for _, i := range idx {
		out = append(out, items[i])
	}
	return out
}

func roundTo(v float64, step float64) int64 {
	return int64(math.Round(v/step) * step)
}
