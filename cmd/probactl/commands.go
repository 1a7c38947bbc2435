package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/maxbat99/probax/internal/app"
	"github.com/maxbat99/probax/internal/domain/location"
	"github.com/maxbat99/probax/internal/domain/prediction"
	"github.com/maxbat99/probax/internal/domain/weather"
	"github.com/maxbat99/probax/internal/usecase"
	"github.com/spf13/cobra"
)

type locationFlags struct {
	stadium string
	team    string
	city    string
	country string
}

func (f *locationFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.stadium, "stadium", "", "Stadium name")
	cmd.Flags().StringVar(&f.team, "team", "", "Team name")
	cmd.Flags().StringVar(&f.city, "city", "", "City (matched against the league column of the gazetteer)")
	cmd.Flags().StringVar(&f.country, "country", "", "Country")
}

func (f *locationFlags) query() location.Query {
	return location.Query{
		Stadium: strings.TrimSpace(f.stadium),
		Team:    strings.TrimSpace(f.team),
		City:    strings.TrimSpace(f.city),
		Country: strings.TrimSpace(f.country),
	}
}

func teamsCmd(verbose *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "teams",
		Short: "Maintain and query the offline team directory",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "rebuild",
		Short: "Rebuild the team directory from TheSportsDB, falling back to Wikidata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithApp(cmd, *verbose, func(ctx context.Context, a *app.App) error {
				result, err := a.Teams.Rebuild(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), result)
			})
		},
	})

	var searchLimit int
	search := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the team directory by name, league or country",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd, *verbose, func(ctx context.Context, a *app.App) error {
				teams, err := a.Teams.Search(ctx, args[0], searchLimit)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), teams)
			})
		},
	}
	search.Flags().IntVar(&searchLimit, "limit", usecase.DefaultTeamSearchLimit, "Maximum results (1-100)")
	cmd.AddCommand(search)

	var suggestLimit int
	suggest := &cobra.Command{
		Use:   "suggest",
		Short: "List autocomplete suggestions favouring major football countries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithApp(cmd, *verbose, func(ctx context.Context, a *app.App) error {
				teams, err := a.Teams.Suggest(ctx, suggestLimit)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), teams)
			})
		},
	}
	suggest.Flags().IntVar(&suggestLimit, "limit", usecase.DefaultTeamSuggestLimit, "Maximum results (1-100)")
	cmd.AddCommand(suggest)

	return cmd
}

func resolveCmd(verbose *bool) *cobra.Command {
	var loc locationFlags
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve venue coordinates from the gazetteer or the geocoder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithApp(cmd, *verbose, func(ctx context.Context, a *app.App) error {
				query := loc.query()
				resolved, found, err := a.Locations.Resolve(ctx, query)
				if err != nil {
					return err
				}
				if !found {
					return fmt.Errorf("%w: could not resolve %q", usecase.ErrNotFound, query.FreeText())
				}
				return printJSON(cmd.OutOrStdout(), resolved)
			})
		},
	}
	loc.register(cmd)
	return cmd
}

func stadiumsCmd(verbose *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stadiums",
		Short: "Search stadiums live in Wikidata or in the resolution cache",
	}

	var liveLimit int
	live := &cobra.Command{
		Use:   "live <query>",
		Short: "Search Wikidata and refresh the resolution cache",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd, *verbose, func(ctx context.Context, a *app.App) error {
				items, err := a.Stadiums.LiveSearch(ctx, args[0], liveLimit)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), items)
			})
		},
	}
	live.Flags().IntVar(&liveLimit, "limit", usecase.DefaultStadiumLimit, "Maximum results (1-100)")
	cmd.AddCommand(live)

	var cachedLimit int
	cached := &cobra.Command{
		Use:   "cached <query>",
		Short: "Search the resolution cache by primary name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd, *verbose, func(ctx context.Context, a *app.App) error {
				items, err := a.Stadiums.CachedSearch(ctx, args[0], cachedLimit)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), items)
			})
		},
	}
	cached.Flags().IntVar(&cachedLimit, "limit", usecase.DefaultStadiumLimit, "Maximum results (1-100)")
	cmd.AddCommand(cached)

	return cmd
}

func weatherCmd(verbose *bool) *cobra.Command {
	var (
		loc      locationFlags
		lat, lon float64
		kickoff  string
		tzMode   string
	)
	cmd := &cobra.Command{
		Use:   "weather",
		Short: "Summarize kickoff weather for a venue or a coordinate pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mode, err := usecase.ParseTZMode(tzMode)
			if err != nil {
				return err
			}
			if strings.TrimSpace(kickoff) == "" {
				return fmt.Errorf("%w: --kickoff is required", usecase.ErrInvalidInput)
			}
			return runWithApp(cmd, *verbose, func(ctx context.Context, a *app.App) error {
				if !cmd.Flags().Changed("lat") || !cmd.Flags().Changed("lon") {
					resolved, found, err := a.Locations.Resolve(ctx, loc.query())
					if err != nil {
						return err
					}
					if !found {
						return fmt.Errorf("%w: could not resolve coordinates", usecase.ErrInvalidInput)
					}
					lat, lon = resolved.Lat, resolved.Lon
				}
				report, err := a.Weather.KickoffWeather(ctx, lat, lon, kickoff, mode)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), report)
			})
		},
	}
	loc.register(cmd)
	cmd.Flags().Float64Var(&lat, "lat", 0, "Latitude; skips venue resolution together with --lon")
	cmd.Flags().Float64Var(&lon, "lon", 0, "Longitude")
	cmd.Flags().StringVar(&kickoff, "kickoff", "", "Kickoff instant, ISO-8601 (UTC when no offset is given)")
	cmd.Flags().StringVar(&tzMode, "tz-mode", string(usecase.TZModeBoth), "Forecast frames: utc, local or both")
	return cmd
}

func predictCmd(verbose *bool) *cobra.Command {
	var (
		loc        locationFlags
		home, away string
		kickoff    string
		tzMode     string
		overrides  map[string]string
	)
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Build the match context and score 1X2, Over 2.5 and BTTS",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mode, err := usecase.ParseTZMode(tzMode)
			if err != nil {
				return err
			}
			features, err := parseFeatureOverrides(overrides)
			if err != nil {
				return err
			}
			query := loc.query()
			if query.IsEmpty() {
				query.Team = home
			}
			return runWithApp(cmd, *verbose, func(ctx context.Context, a *app.App) error {
				result, err := a.MatchContext.Build(ctx, usecase.MatchContextInput{
					Home:     home,
					Away:     away,
					Location: query,
					Kickoff:  kickoff,
					TZMode:   mode,
					Features: features,
				})
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), predictOutput{
					Home:     result.Home,
					Away:     result.Away,
					Location: result.Location,
					Weather:  primarySummary(result.Weather),
					Features: result.Features.Map(),
					Markets:  result.Report.Markets,
					Warnings: result.Warnings,
				})
			})
		},
	}
	loc.register(cmd)
	cmd.Flags().StringVar(&home, "home", "", "Home team")
	cmd.Flags().StringVar(&away, "away", "", "Away team")
	cmd.Flags().StringVar(&kickoff, "kickoff", "", "Kickoff instant, ISO-8601; weather is skipped when empty")
	cmd.Flags().StringVar(&tzMode, "tz-mode", string(usecase.TZModeBoth), "Forecast frames: utc, local or both")
	cmd.Flags().StringToStringVar(&overrides, "feature", nil, "Feature override name=value, repeatable (e.g. home_form=0.7)")
	_ = cmd.MarkFlagRequired("home")
	_ = cmd.MarkFlagRequired("away")
	return cmd
}

type predictOutput struct {
	Home     string                        `json:"home"`
	Away     string                        `json:"away"`
	Location *location.Resolved            `json:"location,omitempty"`
	Weather  *weather.WindowSummary        `json:"weather,omitempty"`
	Features map[string]float64            `json:"features"`
	Markets  []prediction.MarketPrediction `json:"markets"`
	Warnings []string                      `json:"warnings"`
}

func primarySummary(kw *usecase.KickoffWeather) *weather.WindowSummary {
	if kw == nil {
		return nil
	}
	summary, ok := kw.Primary()
	if !ok {
		return nil
	}
	return &summary
}

// parseFeatureOverrides returns nil when no override is given so the
// service keeps its neutral defaults.
func parseFeatureOverrides(raw map[string]string) (*prediction.MatchFeatures, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	features := prediction.DefaultFeatures()
	for name, value := range raw {
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: feature %s: %v", usecase.ErrInvalidInput, name, err)
		}
		if v < 0 || v > 1 {
			return nil, fmt.Errorf("%w: feature %s must be within [0,1]", usecase.ErrInvalidInput, name)
		}
		if !features.Set(prediction.Feature(strings.TrimSpace(name)), v) {
			return nil, fmt.Errorf("%w: unknown feature %q", usecase.ErrInvalidInput, name)
		}
	}
	return &features, nil
}
