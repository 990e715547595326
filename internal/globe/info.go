package globe

import (
	"fmt"
	"sort"
	"time"

	"github.com/IGES-Geospatial/globe-observer-go/internal/model"
)

// DefaultStartDate is the launch date of the GLOBE Observer app; no
// observations exist before it.
const DefaultStartDate = "2017-05-31"

// DefaultEndDate returns today's date in the form the GLOBE API expects.
func DefaultEndDate() string {
	return time.Now().Format(model.MeasuredDateLayout)
}

// regionCountries maps each GLOBE program region to its member
// countries as they appear in the country column of the
// country-enriched ArcGIS layers.
var regionCountries = map[string][]string{
	"Africa": {
		"Benin", "Botswana", "Burkina Faso", "Cameroon", "Cape Verde",
		"Chad", "Democratic Republic of the Congo", "Ethiopia", "Gabon",
		"Gambia", "Ghana", "Guinea", "Kenya", "Liberia", "Madagascar",
		"Mali", "Mauritius", "Namibia", "Niger", "Nigeria", "Rwanda",
		"Senegal", "Seychelles", "South Africa", "Tanzania", "Togo",
		"Uganda", "Zambia", "Zimbabwe",
	},
	"Asia and Pacific": {
		"Australia", "Bangladesh", "Fiji", "India", "Japan", "Maldives",
		"Marshall Islands", "Micronesia", "Mongolia", "Nepal",
		"New Zealand", "Palau", "Philippines", "Republic of Korea",
		"Sri Lanka", "Taiwan Partnership", "Thailand", "Vietnam",
	},
	"Europe and Eurasia": {
		"Armenia", "Austria", "Belgium", "Bulgaria", "Croatia", "Cyprus",
		"Czech Republic", "Denmark", "Estonia", "Finland", "France",
		"Georgia", "Germany", "Greece", "Hungary", "Iceland", "Ireland",
		"Israel", "Italy", "Kazakhstan", "Kyrgyz Republic", "Latvia",
		"Liechtenstein", "Lithuania", "Luxembourg", "Malta", "Moldova",
		"Montenegro", "Netherlands", "North Macedonia", "Norway",
		"Poland", "Portugal", "Romania", "Russia", "Serbia",
		"Slovak Republic", "Slovenia", "Spain", "Sweden", "Switzerland",
		"Turkey", "Ukraine", "United Kingdom",
	},
	"Latin America and Caribbean": {
		"Argentina", "Bahamas", "Barbados", "Belize", "Bermuda",
		"Bolivia", "Brazil", "Chile", "Colombia", "Costa Rica",
		"Dominican Republic", "Ecuador", "El Salvador", "Guatemala",
		"Honduras", "Mexico", "Panama", "Paraguay", "Peru", "Suriname",
		"Trinidad and Tobago", "Uruguay", "Venezuela",
	},
	"Near East and North Africa": {
		"Bahrain", "Egypt", "Jordan", "Kuwait", "Lebanon", "Morocco",
		"Oman", "Pakistan", "Qatar", "Saudi Arabia", "Tunisia",
		"United Arab Emirates",
	},
	"North America": {
		"Canada", "United States",
	},
}

// Regions returns the GLOBE program region names in sorted order.
func Regions() []string {
	names := make([]string, 0, len(regionCountries))
	for name := range regionCountries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegionCountries returns the member countries of a GLOBE program
// region. Unknown region names are an error.
func RegionCountries(region string) ([]string, error) {
	countries, ok := regionCountries[region]
	if !ok {
		return nil, fmt.Errorf("unknown GLOBE region %q (known regions: %v)", region, Regions())
	}
	out := make([]string, len(countries))
	copy(out, countries)
	return out, nil
}

// countrySet expands a country list and a region list into one lookup
// set. Regions contribute all of their member countries.
func countrySet(countries, regions []string) (map[string]bool, error) {
	set := make(map[string]bool, len(countries))
	for _, c := range countries {
		set[c] = true
	}
	for _, region := range regions {
		members, err := RegionCountries(region)
		if err != nil {
			return nil, err
		}
		for _, c := range members {
			set[c] = true
		}
	}
	return set, nil
}
