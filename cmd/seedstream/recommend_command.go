package main

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/Vinuka-CS/seed-to-stream/internal/media"
)

type recommendationView struct {
	Rank            int     `json:"rank"`
	ID              int64   `json:"id"`
	MediaType       string  `json:"media_type"`
	Title           string  `json:"title"`
	Year            string  `json:"year,omitempty"`
	Score           int     `json:"score"`
	Fallback        bool    `json:"fallback,omitempty"`
	ExternalSourced bool    `json:"external_sourced,omitempty"`
	Justification   string  `json:"justification,omitempty"`
	GenreScore      float64 `json:"genre_score"`
	RatingScore     float64 `json:"rating_score"`
	ContentScore    float64 `json:"content_score"`
	CastCrewScore   float64 `json:"cast_crew_score"`
	PopularityScore float64 `json:"popularity_score"`
	ToneScore       float64 `json:"tone_score"`
	FeedbackScore   float64 `json:"feedback_score"`
	KeywordScore    float64 `json:"keyword_score"`
}

func newRecommendCommand(ctx *commandContext) *cobra.Command {
	var typeFlag string
	var jsonFlag bool
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "recommend <title>",
		Short: "Recommend titles similar to a seed title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mediaType, ok := media.ParseMediaType(typeFlag)
			if !ok {
				return fmt.Errorf("unknown media type %q (use movie or series)", typeFlag)
			}

			application, err := ctx.buildApp()
			if err != nil {
				return err
			}
			defer application.close()

			query := strings.Join(args, " ")
			seed, err := resolveSeed(cmd.Context(), application.directory, query, mediaType)
			if err != nil {
				return err
			}

			recommender := application.recommender
			recs, err := recommender.Rank(cmd.Context(), seed)
			if err != nil {
				return err
			}
			if limitFlag > 0 && len(recs) > limitFlag {
				recs = recs[:limitFlag]
			}

			if jsonFlag {
				return writeJSON(cmd, recommendationViews(recs))
			}

			out := cmd.OutOrStdout()
			if len(recs) == 0 {
				fmt.Fprintf(out, "No recommendations found for %q\n", seed.Title)
				return nil
			}

			fmt.Fprintf(out, "Because you liked %s:\n", seed.Title)
			if isTerminal(out) {
				fmt.Fprintln(out, renderRecommendationTable(recs))
				return nil
			}
			for i, rec := range recs {
				fmt.Fprintf(out, "%d\t%s\t%s\t%d\t%s\n",
					i+1, rec.Item.Title, itemYear(rec.Item), rec.TotalScore, rec.Breakdown.Justification)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&typeFlag, "type", "t", "movie", "Seed media type (movie or series)")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit JSON instead of a table")
	cmd.Flags().IntVarP(&limitFlag, "limit", "n", 0, "Show at most this many results")
	return cmd
}

func recommendationViews(recs []media.ScoredRecommendation) []recommendationView {
	views := make([]recommendationView, 0, len(recs))
	for i, rec := range recs {
		views = append(views, recommendationView{
			Rank:            i + 1,
			ID:              rec.Item.ID,
			MediaType:       string(rec.Item.MediaType),
			Title:           rec.Item.Title,
			Year:            itemYear(rec.Item),
			Score:           rec.TotalScore,
			Fallback:        rec.Item.Fallback,
			ExternalSourced: rec.Item.ExternalSourced,
			Justification:   rec.Breakdown.Justification,
			GenreScore:      rec.Breakdown.Genre,
			RatingScore:     rec.Breakdown.Rating,
			ContentScore:    rec.Breakdown.Content,
			CastCrewScore:   rec.Breakdown.CastCrew,
			PopularityScore: rec.Breakdown.Popularity,
			ToneScore:       rec.Breakdown.Tone,
			FeedbackScore:   rec.Breakdown.Feedback,
			KeywordScore:    rec.Breakdown.Keyword,
		})
	}
	return views
}

func renderRecommendationTable(recs []media.ScoredRecommendation) string {
	headers := []string{"#", "Title", "Year", "Score", "Why"}
	aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft}
	rows := make([][]string, 0, len(recs))
	for i, rec := range recs {
		title := rec.Item.Title
		if rec.Item.Fallback {
			title += " *"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			title,
			itemYear(rec.Item),
			strconv.Itoa(rec.TotalScore),
			truncate(rec.Breakdown.Justification, 72),
		})
	}
	return renderTable(headers, rows, aligns)
}

func itemYear(item media.Item) string {
	if year, ok := item.ReleaseYear(); ok {
		return strconv.Itoa(year)
	}
	return ""
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	// Cut on a rune boundary so multi-byte text stays valid.
	return string([]rune(s)[:max-3]) + "..."
}
