package model

import "testing"

func TestProtocol_Abbreviation(t *testing.T) {
	tests := []struct {
		protocol Protocol
		expected string
	}{
		{MosquitoHabitatMapper, "mhm"},
		{LandCovers, "lc"},
		{Protocol("tree_heights"), ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.protocol), func(t *testing.T) {
			got := tt.protocol.Abbreviation()
			if got != tt.expected {
				t.Errorf("Abbreviation() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestProtocol_MeasuredAtColumn(t *testing.T) {
	tests := []struct {
		protocol Protocol
		expected string
	}{
		{MosquitoHabitatMapper, "mosquitohabitatmapperMeasuredAt"},
		{LandCovers, "landcoversMeasuredAt"},
	}

	for _, tt := range tests {
		t.Run(string(tt.protocol), func(t *testing.T) {
			got := tt.protocol.MeasuredAtColumn()
			if got != tt.expected {
				t.Errorf("MeasuredAtColumn() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestProtocol_Valid(t *testing.T) {
	if !MosquitoHabitatMapper.Valid() || !LandCovers.Valid() {
		t.Error("known protocols should be valid")
	}
	if Protocol("clouds").Valid() {
		t.Error("unknown protocol should not be valid")
	}
}

func TestLatLonBox_Valid(t *testing.T) {
	tests := []struct {
		name     string
		box      LatLonBox
		expected bool
	}{
		{"global", GlobalBox(), true},
		{"small region", LatLonBox{MinLat: -9, MaxLat: 7, MinLon: 95, MaxLon: 142}, true},
		{"lat min above max", LatLonBox{MinLat: 10, MaxLat: 5, MinLon: 0, MaxLon: 1}, false},
		{"lat min equals max", LatLonBox{MinLat: 5, MaxLat: 5, MinLon: 0, MaxLon: 1}, false},
		{"lat out of range", LatLonBox{MinLat: -100, MaxLat: 5, MinLon: 0, MaxLon: 1}, false},
		{"lat above pole", LatLonBox{MinLat: 0, MaxLat: 91, MinLon: 0, MaxLon: 1}, false},
		{"lon min above max", LatLonBox{MinLat: 0, MaxLat: 1, MinLon: 20, MaxLon: 10}, false},
		{"lon out of range", LatLonBox{MinLat: 0, MaxLat: 1, MinLon: -190, MaxLon: 10}, false},
		{"lon past antimeridian", LatLonBox{MinLat: 0, MaxLat: 1, MinLon: 0, MaxLon: 181}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.box.Valid()
			if got != tt.expected {
				t.Errorf("Valid() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestLatLonBox_Contains(t *testing.T) {
	box := LatLonBox{MinLat: -10, MaxLat: 10, MinLon: 20, MaxLon: 40}

	tests := []struct {
		name     string
		lat, lon float64
		expected bool
	}{
		{"inside", 0, 30, true},
		{"southwest corner", -10, 20, true},
		{"northeast corner", 10, 40, true},
		{"north of box", 11, 30, false},
		{"west of box", 0, 19.9, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := box.Contains(tt.lat, tt.lon)
			if got != tt.expected {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.lat, tt.lon, got, tt.expected)
			}
		})
	}
}

func TestParseLatLonBox(t *testing.T) {
	tests := []struct {
		input    string
		expected LatLonBox
		wantErr  bool
	}{
		{"-9,95,7,142", LatLonBox{MinLat: -9, MinLon: 95, MaxLat: 7, MaxLon: 142}, false},
		{"-9, 95, 7, 142", LatLonBox{MinLat: -9, MinLon: 95, MaxLat: 7, MaxLon: 142}, false},
		{"-90,-180,90,180", GlobalBox(), false},
		{"1,2,3", LatLonBox{}, true},
		{"1,2,3,4,5", LatLonBox{}, true},
		{"a,b,c,d", LatLonBox{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLatLonBox(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLatLonBox(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.expected {
				t.Errorf("ParseLatLonBox(%q) = %+v, want %+v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTarget_Path(t *testing.T) {
	target := Target{
		URL:       "https://data.globe.gov/system/photos/2021/05/12/1234567/original.jpg",
		Directory: "photos",
		Filename:  "mhm_Larvae_pond_12.34567_-1.20000_2021-05-12_1000_None_1234567.png",
	}

	expected := "photos/mhm_Larvae_pond_12.34567_-1.20000_2021-05-12_1000_None_1234567.png"
	if got := target.Path(); got != expected {
		t.Errorf("Path() = %q, want %q", got, expected)
	}
}
