package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pedigraph/pedigraph/pkg/report"
)

// reportCommand creates the whole-tree report command group.
func (c *CLI) reportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Run whole-tree survey reports",
	}

	cmd.AddCommand(c.reportInbreedingCommand())
	cmd.AddCommand(c.reportLifespanCommand())

	return cmd
}

// reportInbreedingCommand creates the "report inbreeding" subcommand.
func (c *CLI) reportInbreedingCommand() *cobra.Command {
	var (
		maxGen int
		minCOI float64
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "inbreeding <file.ged>",
		Short: "Survey every marriage for shared ancestry between the spouses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.loadTree(args[0])
			if err != nil {
				return err
			}

			if maxGen == 0 {
				maxGen = c.Config.MaxGenerations
			}
			if minCOI == 0 {
				minCOI = c.Config.MinCOI
			}

			spinner := newSpinner(fmt.Sprintf("Surveying %d families...", store.FamilyCount()))
			spinner.Start()
			survey, err := report.SurveyInbreeding(store, maxGen)
			spinner.Stop()
			if err != nil {
				return err
			}

			if asJSON {
				return json.NewEncoder(os.Stdout).Encode(survey)
			}
			printInbreedingSurvey(survey, minCOI)
			return nil
		},
	}

	cmd.Flags().IntVarP(&maxGen, "max-gen", "g", 0, "generations to search (default from config)")
	cmd.Flags().Float64Var(&minCOI, "min-coi", 0, "hide marriages below this coefficient (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON instead of a report")

	return cmd
}

// printInbreedingSurvey renders the whole-tree consanguinity survey.
func printInbreedingSurvey(survey *report.InbreedingSurvey, minCOI float64) {
	printTitle("Consanguinity Survey")
	printKeyValue("Families scanned", fmt.Sprintf("%d", survey.FamiliesTotal))
	printKeyValue("Related marriages", fmt.Sprintf("%d", len(survey.Marriages)))
	printKeyValue("High (≥ 6.25%)", styleHigh.Render(fmt.Sprintf("%d", survey.CountByLevel(report.LevelHigh))))
	printKeyValue("Medium (≥ 1%)", styleMedium.Render(fmt.Sprintf("%d", survey.CountByLevel(report.LevelMedium))))
	printKeyValue("Low", styleLow.Render(fmt.Sprintf("%d", survey.CountByLevel(report.LevelLow))))
	if len(survey.Marriages) > 0 {
		printKeyValue("Mean coefficient", fmt.Sprintf("%.6f", survey.MeanCOI))
		printKeyValue("Max coefficient", fmt.Sprintf("%.6f", survey.MaxCOI))
	}
	printKeyValue("Searched", fmt.Sprintf("%d generations", survey.MaxGen))
	if survey.CyclesDetected {
		printNewline()
		printWarning("Cycle detected in parent links: affected branches were truncated")
	}

	shown, hidden := 0, 0
	for _, m := range survey.Marriages {
		if m.Result.COI < minCOI {
			hidden++
			continue
		}
		if shown == 0 {
			printTitle("Related Marriages")
		}
		shown++
		printInfo("%s %s %s  %s", m.Husband.Name, iconArrow, m.Wife.Name,
			riskStyle(m.Level.String()).Render(fmt.Sprintf("%.4f%%", m.Result.Percent())))
		printDetail("family %s, measured on child %s (%s)", m.Family.ID, m.Child.Name, m.Child.ID)
		printDetail("%s", m.Result.Classification)
	}
	if hidden > 0 {
		printNewline()
		printDetail("%d marriage(s) below --min-coi %.4f hidden", hidden, minCOI)
	}
	if len(survey.Marriages) == 0 {
		printNewline()
		printSuccess("No related marriages found within the searched range")
	}
}

// reportLifespanCommand creates the "report lifespan" subcommand.
func (c *CLI) reportLifespanCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "lifespan <file.ged>",
		Short: "Summarize ages at death across the tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.loadTree(args[0])
			if err != nil {
				return err
			}

			rep := report.SurveyLifespans(store)
			if asJSON {
				return json.NewEncoder(os.Stdout).Encode(rep)
			}
			printLifespanReport(rep)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON instead of a report")

	return cmd
}

// printLifespanReport renders the lifespan statistics.
func printLifespanReport(rep *report.LifespanReport) {
	printTitle("Lifespan Report")
	printSummaryLine("Overall", rep.Overall)
	printSummaryLine("Male", rep.Male)
	printSummaryLine("Female", rep.Female)

	if len(rep.Cohorts) > 0 {
		printTitle("Birth Cohorts")
		for _, c := range rep.Cohorts {
			printInfo("%d–%d", c.From, c.To-1)
			printDetail("all: n=%d mean %.1f median %.1f", c.All.Count, c.All.Mean, c.All.Median)
			printDetail("adults: n=%d mean %.1f median %.1f", c.Adults.Count, c.Adults.Mean, c.Adults.Median)
		}
	}

	if len(rep.LongLived) > 0 {
		printTitle(fmt.Sprintf("Long-Lived (%d+)", report.LongLivedAge))
		for _, p := range rep.LongLived {
			age, _ := p.AgeAtDeath()
			printInfo("%s (%s)  %s", p.Name, p.ID, StyleHighlight.Render(fmt.Sprintf("%d years", age)))
		}
	}
}

// printSummaryLine renders one statistical summary row.
func printSummaryLine(label string, s report.Summary) {
	if s.Count == 0 {
		printKeyValue(label, StyleDim.Render("no data"))
		return
	}
	printKeyValue(label, fmt.Sprintf("n=%d mean %.1f median %.1f sd %.1f range %.0f–%.0f",
		s.Count, s.Mean, s.Median, s.StdDev, s.Min, s.Max))
}
