package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/Vinuka-CS/seed-to-stream/internal/feedback"
	"github.com/Vinuka-CS/seed-to-stream/internal/media"
)

func newRateCommand(ctx *commandContext) *cobra.Command {
	var typeFlag string
	var starsFlag float64

	cmd := &cobra.Command{
		Use:   "rate <title>",
		Short: "Rate a title to personalize future recommendations",
		Long: `Rate a title from 1 to 5 stars. Ratings of 3.5 stars and above count
as positive signal: the genres, cast, and crew of well-rated titles weigh
future recommendation scores.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mediaType, ok := media.ParseMediaType(typeFlag)
			if !ok {
				return fmt.Errorf("unknown media type %q (use movie or series)", typeFlag)
			}
			if starsFlag < 1 || starsFlag > 5 {
				return fmt.Errorf("--stars must be between 1 and 5, got %.1f", starsFlag)
			}

			application, err := ctx.buildApp()
			if err != nil {
				return err
			}
			defer application.close()

			query := strings.Join(args, " ")
			item, err := resolveSeed(cmd.Context(), application.directory, query, mediaType)
			if err != nil {
				return err
			}

			record := feedback.Record{
				ItemID:    item.ID,
				MediaType: item.MediaType,
				Rating:    starsFlag,
				RatedAt:   time.Now().UTC(),
				GenreIDs:  item.GenreIDs,
			}

			// Snapshot the attributes weight aggregation needs; enrichment
			// failures degrade to whatever the search result carried.
			if details, err := application.directory.GetDetails(cmd.Context(), item.ID, item.MediaType); err == nil {
				if len(details.Item.GenreIDs) > 0 {
					record.GenreIDs = details.Item.GenreIDs
				}
			}
			if credits, err := application.directory.GetCredits(cmd.Context(), item.ID, item.MediaType); err == nil {
				record.CastNames, record.CrewNames = creditNames(credits)
			}

			// Serialize writers across processes sharing the feedback DB.
			lock := flock.New(application.cfg.Paths.FeedbackDB + ".lock")
			if err := lock.Lock(); err != nil {
				return fmt.Errorf("lock feedback store: %w", err)
			}
			defer func() { _ = lock.Unlock() }()

			if err := application.store.AppendOrReplace(cmd.Context(), record); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Rated %s (%s) %.1f stars\n", item.Title, item.MediaType, starsFlag)
			return nil
		},
	}

	cmd.Flags().StringVarP(&typeFlag, "type", "t", "movie", "Media type (movie or series)")
	cmd.Flags().Float64VarP(&starsFlag, "stars", "s", 0, "Star rating from 1 to 5 (required)")
	_ = cmd.MarkFlagRequired("stars")
	return cmd
}

func creditNames(credits media.Credits) (cast, crew []string) {
	for i, credit := range credits.Cast {
		if i == 10 {
			break
		}
		if credit.Name != "" {
			cast = append(cast, credit.Name)
		}
	}
	for _, credit := range credits.Crew {
		if credit.Role != media.RoleDirector && credit.Role != media.RoleWriter {
			continue
		}
		if credit.Name != "" {
			crew = append(crew, credit.Name)
		}
	}
	return cast, crew
}
