package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/olekukonko/tablewriter"

	"github.com/hazyhaar/adei/pkg/analytics"
	"github.com/hazyhaar/adei/pkg/store"
)

func cmdReport(args []string, logger *slog.Logger) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	dbPath := fs.String("db", "adei.db", "SQLite store path")
	view := fs.String("view", "leaderboard", "report view: leaderboard, rankings or averages")
	fs.Parse(args)

	s, err := store.Open(*dbPath)
	if err != nil {
		logger.Error("open store", "path", *dbPath, "error", err)
		os.Exit(1)
	}
	defer s.Close()

	a := analytics.New(s, nil)

	switch *view {
	case "leaderboard":
		err = reportLeaderboard(a)
	case "rankings":
		err = reportRankings(a)
	case "averages":
		err = reportAverages(a)
	default:
		fmt.Fprintf(os.Stderr, "unknown view %q (leaderboard, rankings, averages)\n", *view)
		os.Exit(1)
	}
	if err != nil {
		logger.Error("report failed", "view", *view, "error", err)
		os.Exit(1)
	}
}

func reportLeaderboard(a *analytics.Analytics) error {
	lb, err := a.Leaderboard()
	if err != nil {
		return err
	}

	fmt.Println("Top 10")
	renderRanks(lb.Top10)
	fmt.Println()
	fmt.Println("Bottom 10")
	renderRanks(lb.Bottom10)
	return nil
}

func renderRanks(rows []analytics.CountryRank) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Rank", "Country", "ADEI"})
	for _, r := range rows {
		table.Append([]string{
			fmt.Sprintf("%d", r.ADEIRank),
			r.Name,
			fmt.Sprintf("%d", r.ADEIScore),
		})
	}
	table.Render()
}

func reportRankings(a *analytics.Analytics) error {
	t, err := a.RankingsExplorer()
	if err != nil {
		return err
	}

	header := append([]string{"Rank", "Country", "ADEI"}, t.Pillars...)
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(header)
	for _, row := range t.Rows {
		cells := []string{
			fmt.Sprintf("%d", row.ADEIRank),
			row.Country,
			fmt.Sprintf("%d", row.ADEIScore),
		}
		for _, s := range row.PillarScores {
			cells = append(cells, fmt.Sprintf("%.2f", s))
		}
		table.Append(cells)
	}
	table.Render()
	return nil
}

func reportAverages(a *analytics.Analytics) error {
	avgs, err := a.AveragePillarScores()
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Pillar", "Average"})
	for _, avg := range avgs {
		table.Append([]string{avg.Pillar, fmt.Sprintf("%.2f", avg.Average)})
	}
	table.Render()
	return nil
}
