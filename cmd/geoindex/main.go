// Command geoindex builds a persisted geonames index from a raw dump and
// answers ad-hoc queries against one, covering the flag surface of
// SPEC_FULL.md §6 enough to exercise the library end to end. JSON result
// shaping and the stats-accounting flags of the original CLI are out of
// scope; this wrapper emits one line of text per result.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v6"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/geoparser/geonames"
)

// envConfig holds defaults loadable from the environment, per SPEC_FULL.md
// §2 "Configuration".
type envConfig struct {
	MapPath string `env:"GEOINDEX_MAP" envDefault:"geonames.idx"`
}

func main() {
	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		log.WithError(err).Fatal("reading environment configuration")
	}

	app := &cli.App{
		Name:  "geoindex",
		Usage: "build and query a memory-mapped geonames index",
		Commands: []*cli.Command{
			buildCommand(&cfg),
			queryCommand(&cfg),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Error("geoindex failed")
		os.Exit(1)
	}
}

func buildCommand(cfg *envConfig) *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "build a map file from a raw GeoNames TSV dump",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Required: true, Usage: "path to the raw dump"},
			&cli.StringFlag{Name: "map", Aliases: []string{"b"}, Value: cfg.MapPath, Usage: "output map path"},
		},
		Action: func(c *cli.Context) error {
			mapPath := c.String("map")
			rawPath := c.String("input")

			log.WithFields(log.Fields{"input": rawPath, "map": mapPath}).Info("building index")
			if err := geonames.Build(mapPath, rawPath); err != nil {
				return cli.Exit(err, 1)
			}
			return nil
		},
	}
}

func queryCommand(cfg *envConfig) *cli.Command {
	return &cli.Command{
		Name:  "query",
		Usage: "parse one or more free-text queries against a built index",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "map", Aliases: []string{"b"}, Value: cfg.MapPath, Usage: "map path"},
			&cli.StringSliceFlag{Name: "query", Aliases: []string{"q"}, Usage: "literal query (repeatable)"},
			&cli.StringFlag{Name: "extra-delimiters", Usage: "additional token delimiters"},
			&cli.StringFlag{Name: "default-country", Usage: "bias results toward this country"},
			&cli.Float64Flag{Name: "merge-near", Aliases: []string{"m"}, Usage: "near-duplicate merge distance in km"},
			&cli.BoolFlag{Name: "unique-only", Aliases: []string{"u"}, Usage: "fail on ambiguous ties"},
		},
		Action: func(c *cli.Context) error {
			store, err := geonames.Open(c.String("map"))
			if err != nil {
				return cli.Exit(err, 1)
			}
			defer store.Close()

			delimiters := geonames.DefaultDelimiters + c.String("extra-delimiters")
			settings := geonames.Settings{
				Delimiters:     delimiters,
				DefaultCountry: c.String("default-country"),
				MergeNear:      c.Float64("merge-near"),
				UniqueOnly:     c.Bool("unique-only"),
			}

			for _, query := range c.StringSlice("query") {
				printResults(query, store, settings)
			}
			return nil
		},
	}
}

func printResults(query string, store *geonames.Store, settings geonames.Settings) {
	results, err := geonames.Parse(store, query, settings)
	if err != nil {
		fmt.Printf("%s\t%v\n", query, err)
		return
	}
	if len(results) == 0 {
		fmt.Printf("%s\t(no match)\n", query)
		return
	}
	for _, r := range results {
		fmt.Printf("%s\t%.3f\t%s\n", query, r.Score, describeResult(r))
	}
}

func describeResult(r geonames.ParseResult) string {
	var parts []string
	if r.Country != nil {
		parts = append(parts, "country="+r.Country.Object.AsciiName)
	}
	if r.Province != nil {
		parts = append(parts, "province="+r.Province.Object.AsciiName)
	}
	if r.City != nil {
		parts = append(parts, "city="+r.City.Object.AsciiName)
	}
	return strings.Join(parts, " ")
}
