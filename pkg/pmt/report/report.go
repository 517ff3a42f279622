// Package report assembles the templated analysis text. It is a pure
// function from live numbers to prose: every sentence is a fixed template
// selected and filled by the scoring rules, with no generation anywhere.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/komsit37/pmt/pkg/pmt/render"
	"github.com/komsit37/pmt/pkg/pmt/score"
	"github.com/komsit37/pmt/pkg/pmt/types"
)

// Indicator is a reference gauge read from the results map.
type Indicator struct {
	Name       string
	Change     float64
	RatioGauge bool // risk-on ratio series: falling means risk-off
}

// Benchmark is a reference-price comparison line for one instrument.
type Benchmark struct {
	Name      string
	Symbol    string
	Price     float64
	Reference float64
}

// Above reports whether the live price holds the reference level.
func (b Benchmark) Above() bool { return b.Price >= b.Reference }

// Input is everything the generator consumes.
type Input struct {
	GeneratedAt time.Time
	Model       Model
	Algorithm   Algorithm
	Fear        *Indicator
	Sector      *Indicator
	Entries     []types.ScoredEntry
	Benchmarks  []Benchmark
}

// Report is the structured output a presentation layer renders.
type Report struct {
	Input
	MacroSentiment string
	SectorMomentum string
	Advisory       string
}

// Advisory text for an empty instrument selection; a normal outcome, not an
// error.
const noInstrumentsAdvisory = "No scoreable individual instrument in the current selection. Select at least one non-macro entry and refresh."

// Build derives the qualitative labels and returns the filled report value.
func Build(in Input) Report {
	r := Report{Input: in}
	if in.Fear != nil {
		r.MacroSentiment = score.MacroSentiment(in.Fear.Change, in.Fear.RatioGauge)
	} else {
		r.MacroSentiment = "no fear-gauge data this cycle"
	}
	if in.Sector != nil {
		r.SectorMomentum = score.SectorMomentum(in.Sector.Change)
	} else {
		r.SectorMomentum = "no sector-index data this cycle"
	}
	if len(in.Entries) == 0 {
		r.Advisory = noInstrumentsAdvisory
	}
	return r
}

var funcs = template.FuncMap{
	"price": render.FormatPrice,
	"chg":   render.FormatChange,
	"peg":   render.FormatPEG,
	"pts": func(v float64) string {
		return fmt.Sprintf("%+.2f", v)
	},
}

var tmpl = template.Must(template.New("report").Funcs(funcs).Parse(strings.TrimLeft(`
=== AI ANALYSIS REPORT ===
Generated: {{.GeneratedAt.Format "2006-01-02 15:04:05"}}
Model: {{.Model}} | Algorithm: {{.Algorithm}}

1. Model run
  - {{.Model}}: {{.Model.Description}}.
  - {{.Algorithm}}: {{.Algorithm.Description}}{{if .Fear}}; {{.Fear.Name}} ({{pts .Fear.Change}}) weighted in live{{end}}{{if .Sector}} with {{.Sector.Name}} at {{pts .Sector.Change}}{{end}}.

2. Macro and sentiment
  - Global flow reads [{{.MacroSentiment}}].
  - Sector complex: [{{.SectorMomentum}}].

3. Selected instruments
{{- if .Advisory}}
  {{.Advisory}}
{{- else}}
{{- range .Entries}}
  - {{.Name}} ({{.Symbol}}): price {{price .Price .Symbol}}, chg {{chg .ChangePct}}, PEG {{peg .PEG}} -> score {{.Score}}/100, {{.Signal}} ({{.Rationale}})
{{- end}}
{{- end}}
{{- if .Benchmarks}}

4. Benchmark levels
{{- range .Benchmarks}}
  - {{.Name}}: {{price .Price .Symbol}} is {{if .Above}}holding above{{else}}trading below{{end}} the reference level {{price .Reference .Symbol}}.
{{- end}}
{{- end}}

All figures are live quotes substituted into fixed templates. Not investment advice.
`, "\n")))

// Write renders the report as plain text.
func (r Report) Write(w io.Writer) error {
	return tmpl.Execute(w, r)
}
