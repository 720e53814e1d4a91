package calendar

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/zapponejosh/saju-api/internal/saju"
)

// Theme holds the styles used by the text formatters.
type Theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Border   lipgloss.Border
}

// NewTheme builds a theme whose color profile matches w. Writers that are
// not terminals get plain text.
func NewTheme(w io.Writer) Theme {
	r := lipgloss.NewRenderer(w)
	return Theme{
		Title:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		Subtitle: r.NewStyle().Faint(true),
		Label:    r.NewStyle().Bold(true),
		Border:   lipgloss.RoundedBorder(),
	}
}

func (th Theme) table(headers []string, rows [][]string) string {
	return table.New().
		Border(th.Border).
		Headers(headers...).
		Rows(rows...).
		String()
}

func (th Theme) section(b *strings.Builder, title string) {
	b.WriteString("\n")
	b.WriteString(th.Title.Render(title))
	b.WriteString("\n")
}

func (th Theme) field(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "%s %s\n", th.Label.Render(label+":"), value)
}

// FormatChart writes a human readable rendering of c.
func FormatChart(w io.Writer, c *Chart) error {
	th := NewTheme(w)
	r := c.Result
	var b strings.Builder

	b.WriteString(th.Title.Render("사주 四柱 " + r.Pillars.String()))
	b.WriteString("\n")
	b.WriteString(th.Subtitle.Render(fmt.Sprintf("%s %s %s, %s, lon %.4f, preset %s, backend %s",
		c.Birth.SolarDate, c.Birth.Time, c.Birth.Timezone, c.Birth.Gender,
		c.Birth.Longitude, c.Birth.Preset, c.Birth.Backend)))
	b.WriteString("\n")
	th.field(&b, "Lunar", r.Lunar.String())

	th.section(&b, "Pillars")
	b.WriteString(th.table(
		[]string{"", "Hour 時", "Day 日", "Month 月", "Year 年"},
		pillarRows(r),
	))
	b.WriteString("\n")

	th.section(&b, "Elements")
	elemRows := make([][]string, 0, len(saju.Elements))
	for _, e := range saju.Elements {
		elemRows = append(elemRows, []string{
			fmt.Sprintf("%s %s", e.Hanja(), e),
			fmt.Sprint(r.Elements[e]),
			fmt.Sprint(r.ElementsHidden[e]),
		})
	}
	b.WriteString(th.table([]string{"Element", "Visible", "With hidden"}, elemRows))
	b.WriteString("\n")

	th.section(&b, "Strength")
	th.field(&b, "Level", fmt.Sprintf("%s (%.1f)", r.Strength.Level, r.Strength.Score))
	th.field(&b, "Summary", r.Strength.Description)

	th.section(&b, "Useful god 用神")
	th.field(&b, "Method", string(r.YongShen.Method))
	th.field(&b, "Primary", string(r.YongShen.Primary))
	if r.YongShen.Secondary != "" {
		th.field(&b, "Secondary", string(r.YongShen.Secondary))
	}
	if r.YongShen.Avoid != "" {
		th.field(&b, "Avoid", string(r.YongShen.Avoid))
	}
	th.field(&b, "Reasoning", r.YongShen.Reasoning)

	if rels := r.Relations.All(); len(rels) > 0 {
		th.section(&b, "Relations")
		rows := make([][]string, 0, len(rels))
		for _, rel := range rels {
			pos := make([]string, len(rel.Positions))
			for i, p := range rel.Positions {
				pos[i] = string(p)
			}
			rows = append(rows, []string{string(rel.Kind), rel.Chars, strings.Join(pos, ","), string(rel.Element)})
		}
		b.WriteString(th.table([]string{"Kind", "Chars", "Positions", "Element"}, rows))
		b.WriteString("\n")
	}

	th.section(&b, "Solar terms")
	th.field(&b, "Current", fmt.Sprintf("%s %s (%d days ago)",
		r.SolarTerms.Current.Hanja, r.SolarTerms.Current.English, r.SolarTerms.DaysSinceCurrent))
	th.field(&b, "Next", fmt.Sprintf("%s %s (in %d days)",
		r.SolarTerms.Next.Hanja, r.SolarTerms.Next.English, r.SolarTerms.DaysUntilNext))

	ml := r.MajorLuck
	th.section(&b, "Major luck 大運")
	th.field(&b, "Direction", string(ml.Direction))
	th.field(&b, "Starts", fmt.Sprintf("age %d (%dy %dm), from %s",
		ml.StartAge, ml.StartAgeDetail.Years, ml.StartAgeDetail.Months, ml.BoundaryTerm.Hanja))
	luckRows := make([][]string, 0, len(ml.Pillars))
	for _, p := range ml.Pillars {
		marker := ""
		if r.CurrentMajorLuck != nil && r.CurrentMajorLuck.Index == p.Index {
			marker = "*"
		}
		luckRows = append(luckRows, []string{
			marker,
			fmt.Sprintf("%d-%d", p.StartAge, p.EndAge),
			fmt.Sprint(p.StartYear),
			p.Pillar.String(),
			string(p.StemTenGod),
			string(p.BranchTenGod),
		})
	}
	b.WriteString(th.table([]string{"", "Age", "Year", "Pillar", "Stem", "Branch"}, luckRows))
	b.WriteString("\n")

	if len(r.YearlyLuck) > 0 {
		th.section(&b, "Yearly luck 歲運")
		rows := make([][]string, 0, len(r.YearlyLuck))
		for _, y := range r.YearlyLuck {
			rows = append(rows, []string{
				fmt.Sprint(y.Year),
				fmt.Sprint(y.Age),
				y.Pillar.String(),
				string(y.StemTenGod),
				string(y.BranchTenGod),
			})
		}
		b.WriteString(th.table([]string{"Year", "Age", "Pillar", "Stem", "Branch"}, rows))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// pillarRows lays the chart out hour first, the way charts are read.
func pillarRows(r *saju.Result) [][]string {
	p := r.Pillars
	t := r.TenGods
	cols := [4]struct {
		pillar saju.Pillar
		gods   saju.PillarTenGods
	}{
		{p.Hour, t.Hour}, {p.Day, t.Day}, {p.Month, t.Month}, {p.Year, t.Year},
	}

	stemGod := []string{"Stem god"}
	stem := []string{"Stem"}
	branch := []string{"Branch"}
	branchGod := []string{"Branch god"}
	hidden := []string{"Hidden"}
	for _, c := range cols {
		stemGod = append(stemGod, string(c.gods.Stem.TenGod))
		stem = append(stem, fmt.Sprintf("%s %s", c.pillar.Stem, c.pillar.Stem.Element()))
		branch = append(branch, fmt.Sprintf("%s %s", c.pillar.Branch, c.pillar.Branch.Element()))
		branchGod = append(branchGod, string(c.gods.Branch.TenGod))
		hs := make([]string, 0, len(c.gods.Branch.HiddenStems))
		for _, h := range c.gods.Branch.HiddenStems {
			hs = append(hs, h.Stem.String())
		}
		hidden = append(hidden, strings.Join(hs, ""))
	}
	return [][]string{stemGod, stem, branch, branchGod, hidden}
}

// FormatConversion writes a one-screen summary of a calendar conversion.
func FormatConversion(w io.Writer, c *LunarConversion) error {
	th := NewTheme(w)
	var b strings.Builder

	b.WriteString(th.Title.Render("Calendar conversion"))
	b.WriteString("\n")
	th.field(&b, "Solar", fmt.Sprintf("%s (%s)", c.Solar, c.Weekday))
	th.field(&b, "Lunar", c.Lunar.String())
	th.field(&b, "Day pillar", fmt.Sprintf("%s %s", c.DayPillar, c.DayPillar.Korean()))

	_, err := io.WriteString(w, b.String())
	return err
}

// FormatTerms writes the solar term table of one year.
func FormatTerms(w io.Writer, t *TermsTable) error {
	th := NewTheme(w)
	var b strings.Builder

	b.WriteString(th.Title.Render(fmt.Sprintf("Solar terms %d", t.Year)))
	b.WriteString("\n")
	b.WriteString(th.Subtitle.Render(t.Timezone))
	b.WriteString("\n")

	rows := make([][]string, 0, len(t.Terms))
	for _, e := range t.Terms {
		kind := "중기"
		if e.Jie {
			kind = "절기"
		}
		rows = append(rows, []string{
			e.Hanja,
			e.Korean,
			e.English,
			fmt.Sprintf("%.0f°", e.Longitude),
			kind,
			e.Local,
		})
	}
	b.WriteString(th.table([]string{"Term", "", "English", "Longitude", "Kind", "Starts"}, rows))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}
