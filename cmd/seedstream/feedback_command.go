package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Vinuka-CS/seed-to-stream/internal/feedback"
	"github.com/Vinuka-CS/seed-to-stream/internal/media"
)

type feedbackView struct {
	ItemID    int64   `json:"item_id"`
	MediaType string  `json:"media_type"`
	Rating    float64 `json:"rating"`
	RatedAt   string  `json:"rated_at"`
}

func newFeedbackCommand(ctx *commandContext) *cobra.Command {
	var jsonFlag bool
	var weightsFlag bool

	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Show recorded ratings and learned preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := ctx.buildApp()
			if err != nil {
				return err
			}
			defer application.close()

			records, err := application.store.ReadAll(cmd.Context())
			if err != nil {
				return err
			}

			if weightsFlag {
				return renderWeights(cmd, application, records, jsonFlag)
			}

			if jsonFlag {
				views := make([]feedbackView, 0, len(records))
				for _, record := range records {
					views = append(views, feedbackView{
						ItemID:    record.ItemID,
						MediaType: string(record.MediaType),
						Rating:    record.Rating,
						RatedAt:   record.RatedAt.Format("2006-01-02"),
					})
				}
				return writeJSON(cmd, views)
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No ratings recorded yet. Use 'seedstream rate' to add one.")
				return nil
			}

			headers := []string{"Item", "Type", "Stars", "Rated"}
			aligns := []columnAlignment{alignRight, alignLeft, alignRight, alignLeft}
			rows := make([][]string, 0, len(records))
			for _, record := range records {
				rows = append(rows, []string{
					strconv.FormatInt(record.ItemID, 10),
					string(record.MediaType),
					fmt.Sprintf("%.1f", record.Rating),
					record.RatedAt.Format("2006-01-02"),
				})
			}
			fmt.Fprintln(out, renderTable(headers, rows, aligns))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit JSON instead of a table")
	cmd.Flags().BoolVar(&weightsFlag, "weights", false, "Show learned genre preferences instead of raw ratings")
	return cmd
}

type weightView struct {
	Genre  string  `json:"genre"`
	Weight float64 `json:"weight"`
}

// renderWeights shows normalized genre preference strength on a 0-1 scale.
func renderWeights(cmd *cobra.Command, application *app, records []feedback.Record, asJSON bool) error {
	weights := feedback.Aggregate(records).Normalized()

	vocab := make(map[int64]string)
	for _, mediaType := range []media.MediaType{media.MediaTypeMovie, media.MediaTypeSeries} {
		if genres, err := application.directory.GetGenres(cmd.Context(), mediaType); err == nil {
			for _, genre := range genres {
				vocab[genre.ID] = genre.Name
			}
		}
	}

	views := make([]weightView, 0, len(weights.Genre))
	for genreID, weight := range weights.Genre {
		name := vocab[genreID]
		if name == "" {
			name = strconv.FormatInt(genreID, 10)
		}
		views = append(views, weightView{Genre: name, Weight: weight})
	}
	sort.Slice(views, func(i, j int) bool {
		if views[i].Weight != views[j].Weight {
			return views[i].Weight > views[j].Weight
		}
		return views[i].Genre < views[j].Genre
	})

	if asJSON {
		return writeJSON(cmd, views)
	}

	out := cmd.OutOrStdout()
	if len(views) == 0 {
		fmt.Fprintln(out, "No positive ratings yet; preferences are learned from ratings of 3.5 stars and up.")
		return nil
	}
	headers := []string{"Genre", "Preference"}
	aligns := []columnAlignment{alignLeft, alignRight}
	rows := make([][]string, 0, len(views))
	for _, view := range views {
		rows = append(rows, []string{view.Genre, fmt.Sprintf("%.2f", view.Weight)})
	}
	fmt.Fprintln(out, renderTable(headers, rows, aligns))
	return nil
}
