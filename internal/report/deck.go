// Package report assembles the consulting deck workbook from rendered
// charts, generated insights and the monthly KPI table.
package report

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"olistcli/internal/analytics"
	"olistcli/internal/config"
)

// Chart is one rendered chart available for the deck.
type Chart struct {
	Key  string
	Path string
}

// BuildDeck writes the Excel deck to path: narrative sheets framing the
// engagement, one sheet per available chart with its insight, and an
// appendix manifest. Charts missing from the input are omitted without
// error, mirroring the pipeline's skip-and-continue policy.
func BuildDeck(path string, charts []Chart, insights []analytics.Insight, kpis []analytics.MonthlyKPI) error {
	f := excelize.NewFile()
	defer f.Close()

	styles, err := newDeckStyles(f)
	if err != nil {
		return fmt.Errorf("create styles: %w", err)
	}

	if err := writeTitleSheet(f, styles); err != nil {
		return err
	}
	if err := writeLinesSheet(f, styles, "Executive Summary", summaryLines(insights)); err != nil {
		return err
	}
	if err := writeLinesSheet(f, styles, "Approach", approachLines); err != nil {
		return err
	}
	if err := writeKPISheet(f, styles, kpis); err != nil {
		return err
	}

	available := make(map[string]Chart, len(charts))
	for _, chart := range charts {
		available[chart.Key] = chart
	}
	for _, key := range chartOrder {
		chart, ok := available[key]
		if !ok {
			continue
		}
		if err := writeChartSheet(f, styles, chart, insights); err != nil {
			return err
		}
	}

	if err := writeLinesSheet(f, styles, "Recommendations", recommendations); err != nil {
		return err
	}
	if err := writeLinesSheet(f, styles, "Roadmap", roadmapPhases); err != nil {
		return err
	}
	if err := writeLinesSheet(f, styles, "Projected Impact", projectedImpact); err != nil {
		return err
	}
	if err := writeAppendix(f, styles, charts); err != nil {
		return err
	}

	if index, err := f.GetSheetIndex("Title"); err == nil {
		f.SetActiveSheet(index)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save deck: %w", err)
	}
	return nil
}

type deckStyles struct {
	title    int
	heading  int
	body     int
	tableHdr int
}

func newDeckStyles(f *excelize.File) (*deckStyles, error) {
	title, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 22}})
	if err != nil {
		return nil, err
	}
	heading, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return nil, err
	}
	body, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return nil, err
	}
	tableHdr, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	return &deckStyles{title: title, heading: heading, body: body, tableHdr: tableHdr}, nil
}

func writeTitleSheet(f *excelize.File, styles *deckStyles) error {
	const sheet = "Title"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename title sheet: %w", err)
	}
	if err := f.SetColWidth(sheet, "A", "A", 100); err != nil {
		return err
	}

	f.SetCellValue(sheet, "A2", "Olist E-Commerce — Strategic Analysis")
	f.SetCellStyle(sheet, "A2", "A2", styles.title)
	f.SetCellValue(sheet, "A4", "Data-driven recommendations & roadmap")
	f.SetCellValue(sheet, "A6", fmt.Sprintf("Generated by %s %s on %s",
		config.AppName, config.AppVersion, time.Now().Format("2006-01-02")))
	return nil
}

// writeLinesSheet writes a heading plus one wrapped line per row.
func writeLinesSheet(f *excelize.File, styles *deckStyles, sheet string, lines []string) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}
	if err := f.SetColWidth(sheet, "A", "A", 110); err != nil {
		return err
	}

	f.SetCellValue(sheet, "A1", sheet)
	f.SetCellStyle(sheet, "A1", "A1", styles.heading)

	row := 3
	for _, line := range lines {
		cell := fmt.Sprintf("A%d", row)
		f.SetCellValue(sheet, cell, line)
		f.SetCellStyle(sheet, cell, cell, styles.body)
		row++
	}
	return nil
}

func writeKPISheet(f *excelize.File, styles *deckStyles, kpis []analytics.MonthlyKPI) error {
	if len(kpis) == 0 {
		return nil
	}

	const sheet = "Monthly KPIs"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	headers := []string{"Month", "Revenue (BRL)", "Orders", "AOV (BRL)", "Growth %"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, styles.tableHdr)
	}

	for i, kpi := range kpis {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), kpi.Month.Format(config.MonthLayout))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), kpi.Revenue.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), kpi.Orders)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), kpi.AOV.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), kpi.GrowthPct)
	}
	return nil
}

func writeChartSheet(f *excelize.File, styles *deckStyles, chart Chart, insights []analytics.Insight) error {
	sheet, ok := chartSheetTitles[chart.Key]
	if !ok {
		sheet = chart.Key
	}
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	f.SetCellValue(sheet, "A1", sheet)
	f.SetCellStyle(sheet, "A1", "A1", styles.heading)

	if err := f.AddPicture(sheet, "A3", chart.Path, nil); err != nil {
		return fmt.Errorf("embed chart %s: %w", chart.Key, err)
	}

	if insight, ok := analytics.InsightFor(insights, chart.Key); ok {
		if err := f.SetColWidth(sheet, "L", "L", 60); err != nil {
			return err
		}
		f.SetCellValue(sheet, "L3", insight.Headline)
		f.SetCellStyle(sheet, "L3", "L3", styles.tableHdr)
		f.SetCellValue(sheet, "L4", insight.Body)
		f.SetCellStyle(sheet, "L4", "L4", styles.body)
		f.SetCellValue(sheet, "L6", fmt.Sprintf("Attention level: %s", insight.Level))
	}
	return nil
}

func writeAppendix(f *excelize.File, styles *deckStyles, charts []Chart) error {
	const sheet = "Appendix"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	f.SetCellValue(sheet, "A1", "Charts included")
	f.SetCellStyle(sheet, "A1", "A1", styles.heading)
	if err := f.SetColWidth(sheet, "A", "B", 45); err != nil {
		return err
	}

	for i, chart := range charts {
		row := i + 3
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), chart.Key)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), filepath.Base(chart.Path))
	}
	return nil
}

// summaryLines opens with the engagement framing and appends one bullet
// per generated insight headline.
func summaryLines(insights []analytics.Insight) []string {
	lines := make([]string, 0, len(executiveFraming)+len(insights))
	lines = append(lines, executiveFraming...)
	for _, insight := range insights {
		lines = append(lines, fmt.Sprintf("• %s", insight.Headline))
	}
	return lines
}
