package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/IGES-Geospatial/globe-observer-go/internal/config"
	"github.com/IGES-Geospatial/globe-observer-go/internal/photos"
	"github.com/IGES-Geospatial/globe-observer-go/internal/table"
)

func main() {
	// Command line flags
	var (
		up         bool
		down       bool
		north      bool
		south      bool
		east       bool
		west       bool
		all        bool
		verbose    bool
		configPath string
	)

	flag.BoolVar(&up, "up", false, "download upward photos")
	flag.BoolVar(&up, "u", false, "download upward photos")
	flag.BoolVar(&down, "down", false, "download downward photos")
	flag.BoolVar(&down, "d", false, "download downward photos")
	flag.BoolVar(&north, "north", false, "download north photos")
	flag.BoolVar(&north, "n", false, "download north photos")
	flag.BoolVar(&south, "south", false, "download south photos")
	flag.BoolVar(&south, "s", false, "download south photos")
	flag.BoolVar(&east, "east", false, "download east photos")
	flag.BoolVar(&east, "e", false, "download east photos")
	flag.BoolVar(&west, "west", false, "download west photos")
	flag.BoolVar(&west, "w", false, "download west photos")
	flag.BoolVar(&all, "all", false, "download photos for every direction")
	flag.BoolVar(&all, "a", false, "download photos for every direction")
	flag.BoolVar(&verbose, "verbose", false, "show verbose output")
	flag.BoolVar(&verbose, "v", false, "show verbose output")
	flag.StringVar(&configPath, "config", "", "path to a settings file")

	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "lc-photo-download - download photos from a land cover CSV")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  lc-photo-download <input.csv> <output-dir> [options]")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "For interactive mode, use: globe-photos-tui")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}

	positionals := parseArgs()
	if len(positionals) != 2 {
		flag.Usage()
		os.Exit(1)
	}
	input, directory := positionals[0], positionals[1]

	initLog(verbose)

	if all {
		up, down, north, south, east, west = true, true, true, true, true, true
	}
	if !up && !down && !north && !south && !east && !west {
		fmt.Fprintln(os.Stderr, "Pick at least one direction (-u, -d, -n, -s, -e, -w or --all).")
		os.Exit(1)
	}

	// Load config
	settings := config.DefaultSettings()
	if configPath != "" {
		var err error
		settings, err = config.Load(configPath)
		if err != nil {
			log.WithError(err).Fatal("could not load settings")
		}
	}

	t, err := table.ReadCSVFile(input)
	if err != nil {
		log.WithError(err).Fatal("could not read the input CSV")
	}

	targets, err := photos.LandCoverTargets(t, directory, photos.LandCoverOptions{
		Up:    up,
		Down:  down,
		North: north,
		South: south,
		East:  east,
		West:  west,
	})
	if err != nil {
		log.WithError(err).Fatal("could not build the photo target list")
	}
	if len(targets) == 0 {
		log.Warn("no photo URLs in the input")
		return
	}

	// Handle interrupts
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Create manager with progress callback
	manager := photos.NewManager(settings, func(event photos.ProgressEvent) {
		if event.Level == photos.LevelVerbose && !verbose {
			return
		}

		prefix := ""
		switch event.Level {
		case photos.LevelError:
			prefix = "❌ "
		case photos.LevelWarning:
			prefix = "⚠️  "
		case photos.LevelSuccess:
			prefix = "✅ "
		case photos.LevelInfo:
			prefix = "ℹ️  "
		default:
			prefix = "   "
		}

		fmt.Println(prefix + event.Message)
	})

	fmt.Println("📷 GLOBE Photo Downloader")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println()

	if err := manager.DownloadPhotos(ctx, targets); err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nDownload cancelled.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error during download: %v\n", err)
		os.Exit(1)
	}

	downloaded, skipped, failed := manager.Stats()
	fmt.Println()
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("✨ Complete! Downloaded %d/%d photos (%d skipped, %d failed)\n",
		downloaded, len(targets), skipped, failed)
	if failed > 0 {
		os.Exit(1)
	}
}

// parseArgs parses the command line, allowing flags to follow the
// positional arguments, and returns the positionals.
func parseArgs() []string {
	flag.Parse()

	var positionals []string
	args := flag.Args()
	for len(args) > 0 {
		if strings.HasPrefix(args[0], "-") {
			flag.CommandLine.Parse(args)
			args = flag.Args()
			continue
		}
		positionals = append(positionals, args[0])
		args = args[1:]
	}
	return positionals
}

// initLog configures logging for the CLI.
func initLog(verbose bool) {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&prefixed.TextFormatter{
		ForceFormatting: true,
		FullTimestamp:   true,
	})
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
}
