package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	cmlog "github.com/collisionmap/collisionmap/internal/log"
)

// Global flag values.
var (
	verbose bool
	quiet   bool
	noColor bool
)

// Serve flag values.
var (
	configPath     string
	serveAddr      string
	noBrowser      bool
	collisionsPath string
	regionsPath    string
	schoolsPath    string
)

// rootCmd loads the configured sources and serves the dashboard.
var rootCmd = &cobra.Command{
	Use:   "collisionmap",
	Short: "Serve an interactive map of urban traffic collisions",
	Long: `Collisionmap loads a traffic collision table, neighborhood boundaries and an
optional school table, then serves a local dashboard with a collision map,
per-neighborhood breakdowns and school safety ratings.

Settings come from .collisionmap.yaml (or the file named by --config),
then COLLISIONMAP_* environment variables, then flags.

Examples:
  collisionmap --collisions traffic.csv --regions neighborhoods.geojson
  collisionmap --schools schools.csv --addr :8080 --no-browser
  MAPBOX_TOKEN=pk.xxx collisionmap --config collisionmap.toml`,
	Version:       Version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		cmlog.Setup(verbose, quiet)
		if noColor {
			color.NoColor = true
		}
	},
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.Flags().StringVar(&configPath, "config", "", "config file (default .collisionmap.yaml)")
	rootCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default localhost:8501)")
	rootCmd.Flags().BoolVar(&noBrowser, "no-browser", false, "do not open the dashboard in a browser")
	rootCmd.Flags().StringVar(&collisionsPath, "collisions", "", "collision table (CSV path or URL)")
	rootCmd.Flags().StringVar(&regionsPath, "regions", "", "neighborhood boundaries (GeoJSON path or URL)")
	rootCmd.Flags().StringVar(&schoolsPath, "schools", "", "optional school table (CSV path or URL)")
}
