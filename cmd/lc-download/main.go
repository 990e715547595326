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
	"github.com/IGES-Geospatial/globe-observer-go/internal/globe"
	gohttp "github.com/IGES-Geospatial/globe-observer-go/internal/http"
	"github.com/IGES-Geospatial/globe-observer-go/internal/lc"
	"github.com/IGES-Geospatial/globe-observer-go/internal/model"
	"github.com/IGES-Geospatial/globe-observer-go/internal/report"
	"github.com/IGES-Geospatial/globe-observer-go/internal/table"
)

func main() {
	// Command line flags
	var (
		out        string
		start      string
		end        string
		countries  string
		regions    string
		box        string
		configPath string
		verbose    bool

		hasClassification     bool
		hasPhoto              bool
		hasAllClassifications bool
		hasAllPhotos          bool
	)

	flag.StringVar(&out, "out", "", "output CSV path (omit to print a diagnostic summary instead)")
	flag.StringVar(&out, "o", "", "output CSV path (omit to print a diagnostic summary instead)")
	flag.StringVar(&start, "start", globe.DefaultStartDate, "start of the measurement date range (YYYY-MM-DD)")
	flag.StringVar(&start, "s", globe.DefaultStartDate, "start of the measurement date range (YYYY-MM-DD)")
	flag.StringVar(&end, "end", globe.DefaultEndDate(), "end of the measurement date range (YYYY-MM-DD)")
	flag.StringVar(&end, "e", globe.DefaultEndDate(), "end of the measurement date range (YYYY-MM-DD)")
	flag.StringVar(&countries, "countries", "", "comma-separated countries (uses the country-enriched layer)")
	flag.StringVar(&countries, "co", "", "comma-separated countries (uses the country-enriched layer)")
	flag.StringVar(&countries, "c", "", "comma-separated countries (uses the country-enriched layer)")
	flag.StringVar(&regions, "regions", "", "comma-separated GLOBE regions (uses the country-enriched layer)")
	flag.StringVar(&regions, "r", "", "comma-separated GLOBE regions (uses the country-enriched layer)")
	flag.StringVar(&box, "box", "", `bounding box as "min lat, min lon, max lat, max lon"`)
	flag.StringVar(&box, "b", "", `bounding box as "min lat, min lon, max lat, max lon"`)
	flag.StringVar(&configPath, "config", "", "path to a settings file")
	flag.BoolVar(&verbose, "verbose", false, "show debug output")
	flag.BoolVar(&verbose, "v", false, "show debug output")

	flag.BoolVar(&hasClassification, "hasclassification", false, "keep only rows with at least one classified direction")
	flag.BoolVar(&hasClassification, "hc", false, "keep only rows with at least one classified direction")
	flag.BoolVar(&hasPhoto, "hasphoto", false, "keep only rows with at least one valid photo")
	flag.BoolVar(&hasPhoto, "hp", false, "keep only rows with at least one valid photo")
	flag.BoolVar(&hasAllClassifications, "hasallclassifications", false, "keep only rows with all four directions classified")
	flag.BoolVar(&hasAllClassifications, "hac", false, "keep only rows with all four directions classified")
	flag.BoolVar(&hasAllPhotos, "hasallphotos", false, "keep only rows with photos in all six directions")
	flag.BoolVar(&hasAllPhotos, "hap", false, "keep only rows with photos in all six directions")

	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "lc-download - download, clean and flag GLOBE land cover data")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  lc-download [-s start] [-e end] [-c countries] [-r regions] [-b box] [-o output.csv]")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Without -o the diagnostic summary is printed instead of writing a CSV.")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}
	flag.Parse()

	initLog(verbose)

	// Load config
	settings := config.DefaultSettings()
	if configPath != "" {
		var err error
		settings, err = config.Load(configPath)
		if err != nil {
			log.WithError(err).Fatal("could not load settings")
		}
	}

	var latlonBox *model.LatLonBox
	if box != "" {
		parsed, err := model.ParseLatLonBox(box)
		if err != nil {
			log.WithError(err).Fatal("could not parse the bounding box")
		}
		latlonBox = &parsed
	}

	countryList := splitList(countries)
	regionList := splitList(regions)

	// Handle interrupts
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpClient := gohttp.NewClient(settings.UserAgent, settings.HTTPTimeout())
	client := globe.NewClient(httpClient, settings.APIBaseURL, settings.ArcGISContentURL)

	var t *table.Table
	var err error
	if len(countryList) > 0 || len(regionList) > 0 {
		t, err = client.GetCountryAPIData(ctx, model.LandCovers, globe.CountryDownloadOptions{
			StartDate: start,
			EndDate:   end,
			Countries: countryList,
			Regions:   regionList,
			Box:       latlonBox,
		})
	} else {
		t, err = client.GetAPIData(ctx, model.LandCovers, globe.DownloadOptions{
			StartDate: start,
			EndDate:   end,
			Box:       latlonBox,
		})
	}
	if err != nil {
		if ctx.Err() != nil {
			fmt.Fprintln(os.Stderr, "\nDownload cancelled.")
			os.Exit(130)
		}
		log.WithError(err).Fatal("could not download land cover data")
	}
	if t.Len() == 0 {
		log.Warn("no observations in the requested range")
		return
	}

	cleaned, err := lc.ApplyCleanup(t)
	if err != nil {
		log.WithError(err).Fatal("could not clean the dataset")
	}
	if err := lc.AddFlags(cleaned); err != nil {
		log.WithError(err).Fatal("could not flag the dataset")
	}

	filtered, err := lc.QAFilter(cleaned, lc.QAFilterOptions{
		HasClassification:     hasClassification,
		HasPhoto:              hasPhoto,
		HasAllClassifications: hasAllClassifications,
		HasAllPhotos:          hasAllPhotos,
	})
	if err != nil {
		log.WithError(err).Fatal("could not filter the dataset")
	}

	if out == "" {
		summary, err := report.LandCoverSummary(filtered)
		if err != nil {
			log.WithError(err).Fatal("could not summarize the dataset")
		}
		fmt.Println(summary)
		return
	}

	if err := filtered.WriteCSVFile(out); err != nil {
		log.WithError(err).Fatal("could not write the output CSV")
	}
	log.WithFields(log.Fields{"rows": filtered.Len(), "path": out}).Info("wrote cleaned observations")
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

// splitList splits a comma-separated flag value, dropping empty entries.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
