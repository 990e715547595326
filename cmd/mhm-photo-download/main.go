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
		larvae      bool
		watersource bool
		abdomen     bool
		species     bool
		all         bool
		verbose     bool
		configPath  string
	)

	flag.BoolVar(&larvae, "larvae", false, "download larvae full body photos")
	flag.BoolVar(&larvae, "l", false, "download larvae full body photos")
	flag.BoolVar(&watersource, "watersource", false, "download water source photos")
	flag.BoolVar(&watersource, "w", false, "download water source photos")
	flag.BoolVar(&abdomen, "abdomen", false, "download abdomen closeup photos")
	flag.BoolVar(&abdomen, "a", false, "download abdomen closeup photos")
	flag.BoolVar(&species, "species", false, "include the identified species in photo names")
	flag.BoolVar(&species, "s", false, "include the identified species in photo names")
	flag.BoolVar(&all, "all", false, "download every photo type")
	flag.BoolVar(&verbose, "verbose", false, "show verbose output")
	flag.BoolVar(&verbose, "v", false, "show verbose output")
	flag.StringVar(&configPath, "config", "", "path to a settings file")

	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "mhm-photo-download - download photos from a mosquito habitat mapper CSV")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  mhm-photo-download <input.csv> <output-dir> [options]")
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
		larvae, watersource, abdomen = true, true, true
	}
	if !larvae && !watersource && !abdomen {
		fmt.Fprintln(os.Stderr, "Pick at least one photo type (-l, -w, -a or --all).")
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

	targets, err := photos.MosquitoTargets(t, directory, photos.MosquitoOptions{
		Larvae:         larvae,
		WaterSource:    watersource,
		Abdomen:        abdomen,
		IncludeSpecies: species,
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
