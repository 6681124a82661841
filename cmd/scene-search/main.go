package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/planet-tools/scene-search/auth"
	"github.com/planet-tools/scene-search/pkg/aoi"
	"github.com/planet-tools/scene-search/pkg/planet"
	"github.com/planet-tools/scene-search/pkg/search"
)

const apiKeyEnv = "PL_API_KEY"

var (
	geomFlag = &cli.StringFlag{
		Name:  "geom",
		Usage: "path to a GeoJSON file describing the AOI",
	}
	latFlag = &cli.FloatFlag{
		Name:  "lat",
		Usage: "latitude of the center of the rectangle AOI",
	}
	lonFlag = &cli.FloatFlag{
		Name:  "lon",
		Usage: "longitude of the center of the rectangle AOI",
	}
	widthFlag = &cli.FloatFlag{
		Name:    "width",
		Aliases: []string{"w"},
		Usage:   "width of the AOI (m)",
		Value:   5000,
	}
	heightFlag = &cli.FloatFlag{
		Name:    "height",
		Aliases: []string{"l"},
		Usage:   "height of the AOI (m)",
		Value:   5000,
	}
	startDateFlag = &cli.StringFlag{
		Name:    "start-date",
		Aliases: []string{"s"},
		Usage:   "start date, YYYY-MM-DD",
	}
	endDateFlag = &cli.StringFlag{
		Name:    "end-date",
		Aliases: []string{"e"},
		Usage:   "end date, YYYY-MM-DD",
	}
	itemTypesFlag = &cli.StringSliceFlag{
		Name:  "item-types",
		Usage: "item types to search for; allowed values are " + strings.Join(planet.ItemTypes, ", "),
		Value: []string{"PSScene3Band"},
	}
	timeoutFlag = &cli.DurationFlag{
		Name:    "timeout",
		Aliases: []string{"t"},
		Usage:   "HTTP client timeout (e.g. 30s, 1m)",
		Value:   30 * time.Second,
	}
	verboseFlag = &cli.BoolFlag{
		Name:  "verbose",
		Usage: "log request lifecycle events to stderr",
	}
)

func main() {
	if os.Getenv(apiKeyEnv) == "" {
		fmt.Fprintf(os.Stderr, "scene-search requires the %s environment variable to be defined\n", apiKeyEnv)
		fmt.Fprintln(os.Stderr, "with valid credentials for https://www.planet.com/. Create an account if")
		fmt.Fprintln(os.Stderr, "you don't have one (it's free), then edit the relevant configuration")
		fmt.Fprintln(os.Stderr, "files (e.g. .bashrc) to define this environment variable.")
		os.Exit(1)
	}

	cmd := &cli.Command{
		Name:  "scene-search",
		Usage: "Search Planet images covering an area of interest",
		Flags: []cli.Flag{
			geomFlag, latFlag, lonFlag, widthFlag, heightFlag,
			startDateFlag, endDateFlag, itemTypesFlag, timeoutFlag, verboseFlag,
		},
		Action: searchAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func searchAction(ctx context.Context, cmd *cli.Command) error {
	area, err := resolveAOI(cmd)
	if err != nil {
		return err
	}

	opts, err := searchOptionsFromCommand(cmd)
	if err != nil {
		return err
	}

	logger, err := newLogger(cmd.Bool(verboseFlag.Name))
	if err != nil {
		return err
	}
	defer logger.Sync()

	httpClient := &http.Client{
		Transport: &auth.BasicKeyTransport{Key: os.Getenv(apiKeyEnv)},
	}
	client, err := planet.New(
		planet.WithHTTPClient(httpClient),
		planet.WithTimeout(cmd.Duration(timeoutFlag.Name)),
		planet.WithLogger(logger.Sugar()),
	)
	if err != nil {
		return err
	}

	scenes, err := search.Scenes(ctx, client.QuickSearch(), area, opts)
	if err != nil {
		return err
	}

	return printJSON(os.Stdout, scenes)
}

// resolveAOI builds the AOI from either --geom or --lat/--lon, rejecting
// ambiguous or incomplete combinations before any network activity.
func resolveAOI(cmd *cli.Command) (*aoi.AOI, error) {
	geomPath := cmd.String(geomFlag.Name)
	hasLat := cmd.IsSet(latFlag.Name)
	hasLon := cmd.IsSet(lonFlag.Name)

	if err := validateAOIFlags(geomPath != "", hasLat, hasLon); err != nil {
		return nil, err
	}

	if geomPath != "" {
		return aoi.FromFile(geomPath)
	}
	return aoi.Rectangle(
		cmd.Float(latFlag.Name),
		cmd.Float(lonFlag.Name),
		cmd.Float(widthFlag.Name),
		cmd.Float(heightFlag.Name),
	)
}

func validateAOIFlags(hasGeom, hasLat, hasLon bool) error {
	if hasGeom && (hasLat || hasLon) {
		return fmt.Errorf("--geom and {--lat, --lon} are mutually exclusive")
	}
	if !hasGeom && (!hasLat || !hasLon) {
		return fmt.Errorf("either --geom or {--lat, --lon} must be defined")
	}
	return nil
}

func searchOptionsFromCommand(cmd *cli.Command) (search.Options, error) {
	opts := search.Options{
		ItemTypes: cmd.StringSlice(itemTypesFlag.Name),
	}

	var err error
	if opts.StartDate, err = parseDateFlag(cmd.String(startDateFlag.Name)); err != nil {
		return search.Options{}, fmt.Errorf("--start-date: %w", err)
	}
	if opts.EndDate, err = parseDateFlag(cmd.String(endDateFlag.Name)); err != nil {
		return search.Options{}, fmt.Errorf("--end-date: %w", err)
	}
	return opts, nil
}

func parseDateFlag(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", value)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	return cfg.Build()
}
