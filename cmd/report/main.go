// Command report prints dashboard aggregates for a message dataset.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/capitalize-ai/message-analytics/internal/analytics"
	"github.com/capitalize-ai/message-analytics/internal/dataset"
	"github.com/capitalize-ai/message-analytics/internal/middleware"
	"github.com/capitalize-ai/message-analytics/internal/model"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

type options struct {
	datasetPath string
	format      string
}

func main() {
	if err := newRootCmd(os.Stdout).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "report",
		Short:        "Print sentiment dashboard aggregates for a message dataset",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.format {
			case formatText, formatJSON, formatYAML:
				return nil
			default:
				return fmt.Errorf("unsupported format %q (want one of %s)", opts.format, formatNames())
			}
		},
	}
	root.SetOut(out)
	root.SetErr(out)

	root.PersistentFlags().StringVar(&opts.datasetPath, "dataset", "", "dataset file (.json, .yaml, .db); empty uses the built-in seed")
	root.PersistentFlags().StringVar(&opts.format, "format", formatText, "output format: "+formatNames())

	root.AddCommand(
		newSummaryCmd(opts),
		newSentimentCmd(opts),
		newLengthsCmd(opts),
		newMessagesCmd(opts),
	)
	return root
}

func loadMessages(cmd *cobra.Command, opts *options) ([]model.Message, error) {
	store, err := dataset.Open(cmd.Context(), opts.datasetPath)
	if err != nil {
		return nil, err
	}
	return store.All(), nil
}

func newSummaryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Total messages, average length and sentiment breakdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			messages, err := loadMessages(cmd, opts)
			if err != nil {
				return err
			}
			stats := analytics.CalculateSummaryStats(messages)
			resp := model.SummaryResponse{
				Stats:              stats,
				PositivePercentage: analytics.FormatSentimentPercentage(stats.SentimentBreakdown.Positive, stats.TotalMessages),
			}

			return render(cmd.OutOrStdout(), opts.format, resp, func(w io.Writer) {
				fmt.Fprintf(w, "Total messages:\t%d\n", stats.TotalMessages)
				fmt.Fprintf(w, "Average length:\t%d\n", stats.AverageLength)
				fmt.Fprintf(w, "Positive:\t%d\t(%s)\n", stats.SentimentBreakdown.Positive, resp.PositivePercentage)
				fmt.Fprintf(w, "Neutral:\t%d\n", stats.SentimentBreakdown.Neutral)
				fmt.Fprintf(w, "Negative:\t%d\n", stats.SentimentBreakdown.Negative)
			})
		},
	}
}

func newSentimentCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "sentiment",
		Short: "Sentiment distribution series",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			messages, err := loadMessages(cmd, opts)
			if err != nil {
				return err
			}
			series := analytics.ProcessSentimentData(messages)
			total := len(messages)

			return render(cmd.OutOrStdout(), opts.format, series, func(w io.Writer) {
				fmt.Fprintln(w, "SENTIMENT\tCOUNT\tSHARE\tCOLOR")
				for _, entry := range series {
					fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", entry.Name, entry.Value, analytics.FormatSentimentPercentage(entry.Value, total), entry.Color)
				}
			})
		},
	}
}

func newLengthsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "lengths",
		Short: "Top users by average message length",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			messages, err := loadMessages(cmd, opts)
			if err != nil {
				return err
			}
			ranking := analytics.ProcessMessageLengthData(messages)

			return render(cmd.OutOrStdout(), opts.format, ranking, func(w io.Writer) {
				fmt.Fprintln(w, "USER\tLENGTH")
				for _, entry := range ranking {
					fmt.Fprintf(w, "%s\t%d\n", entry.User, entry.Length)
				}
			})
		},
	}
}

func newMessagesCmd(opts *options) *cobra.Command {
	var (
		search    string
		sentiment string
		sortBy    string
		order     string
		page      int
		pageSize  int
	)

	cmd := &cobra.Command{
		Use:   "messages",
		Short: "Filtered, sorted and paginated message table",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := middleware.ValidateSearchTerm(search); err != nil {
				return err
			}
			if err := middleware.ValidateSentimentFilter(sentiment); err != nil {
				return err
			}
			if err := middleware.ValidateSortColumn(sortBy); err != nil {
				return err
			}
			if err := middleware.ValidateSortOrder(order); err != nil {
				return err
			}
			if page < 1 {
				return fmt.Errorf("--page must be at least 1")
			}
			if pageSize < 1 {
				return fmt.Errorf("--page-size must be at least 1")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			messages, err := loadMessages(cmd, opts)
			if err != nil {
				return err
			}
			result := analytics.Query(messages, model.TableQuery{
				Search:    search,
				Sentiment: sentiment,
				SortBy:    model.SortColumn(sortBy),
				Order:     model.SortOrder(order),
				PageIndex: page - 1,
				PageSize:  pageSize,
			})

			return render(cmd.OutOrStdout(), opts.format, result, func(w io.Writer) {
				fmt.Fprintln(w, "USER\tSENTIMENT\tLENGTH\tTEXT")
				for _, msg := range result.Messages {
					fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", msg.User, msg.Sentiment, msg.Length, msg.Text)
				}
				if result.Total == 0 {
					fmt.Fprintln(w, "no messages match")
					return
				}
				fmt.Fprintf(w, "showing %d-%d of %d (page %d of %d)\n", result.From, result.To, result.Total, result.PageIndex+1, result.PageCount)
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&search, "search", "", "case-insensitive match on text, user or sentiment")
	flags.StringVar(&sentiment, "sentiment", model.SentimentFilterAll, "positive, neutral, negative or all")
	flags.StringVar(&sortBy, "sort", "", "sort column: user, sentiment or length")
	flags.StringVar(&order, "order", string(model.OrderAsc), "sort order: asc or desc")
	flags.IntVar(&page, "page", 1, "page number, starting at 1")
	flags.IntVar(&pageSize, "page-size", analytics.DefaultPageSize, "rows per page")

	return cmd
}

// render writes v in the requested format. Text output goes through a
// tabwriter so columns line up.
func render(out io.Writer, format string, v any, text func(w io.Writer)) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		text(tw)
		return tw.Flush()
	}
}

// formatNames lists the accepted --format values.
func formatNames() string {
	return strings.Join([]string{formatText, formatJSON, formatYAML}, ", ")
}
