package photos

import (
	"strings"
	"testing"

	"github.com/IGES-Geospatial/globe-observer-go/internal/lc"
	"github.com/IGES-Geospatial/globe-observer-go/internal/mhm"
	"github.com/IGES-Geospatial/globe-observer-go/internal/table"
)

func photoURL(date, id string) string {
	return "https://data.globe.gov/system/photos/" + date + "/" + id + "/original.jpg"
}

func TestGlobePhotoID(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{photoURL("2021/01/05", "2076283"), "2076283"},
		{"https://data.globe.gov/system/photos/2020/12/31/1234567/resized.jpg", "1234567"},
	}
	for _, tc := range cases {
		got, err := GlobePhotoID(tc.url)
		if err != nil {
			t.Fatalf("GlobePhotoID(%q) failed: %v", tc.url, err)
		}
		if got != tc.want {
			t.Errorf("GlobePhotoID(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}

	if _, err := GlobePhotoID("https://example.com/photo.jpg"); err == nil {
		t.Error("expected error for a URL without an upload date path")
	}
}

func mosquitoFixture(t *testing.T) *table.Table {
	t.Helper()
	tbl := table.New(
		MosquitoLatitudeColumn, MosquitoLongitudeColumn, mhm.WaterSourceColumn,
		MosquitoDateColumn, MosquitoIDColumn, mhm.GenusColumn, MosquitoSpeciesColumn,
		mhm.LarvaePhotosColumn, mhm.WaterSourcePhotosColumn, mhm.AbdomenPhotosColumn,
	)

	tbl.AppendRow(map[string]table.Value{
		MosquitoLatitudeColumn:      table.Float(37.1),
		MosquitoLongitudeColumn:     table.Float(-84.52),
		mhm.WaterSourceColumn:       table.Str("dish or pot"),
		MosquitoDateColumn:          table.Str("2021-01-07"),
		MosquitoIDColumn:            table.Int(26422),
		mhm.GenusColumn:             table.Str("Aedes"),
		mhm.LarvaePhotosColumn:      table.Str(photoURL("2021/01/07", "2082764")),
		mhm.WaterSourcePhotosColumn: table.Str(photoURL("2021/01/07", "2082763")),
	})

	// One URL listed twice, one rejected photo without an https link.
	larvae := strings.Join([]string{
		photoURL("2021/01/23", "2096253"),
		photoURL("2021/01/23", "2096253"),
		photoURL("2021/01/23", "2096254"),
		"rejected",
	}, ";")
	tbl.AppendRow(map[string]table.Value{
		MosquitoLatitudeColumn:  table.Float(1.5),
		MosquitoLongitudeColumn: table.Float(2.5),
		mhm.WaterSourceColumn:   table.Str("ditch"),
		MosquitoDateColumn:      table.Str("2021-01-23"),
		MosquitoIDColumn:        table.Int(26456),
		mhm.LarvaePhotosColumn:  table.Str(larvae),
	})

	tbl.AppendRow(map[string]table.Value{
		MosquitoLatitudeColumn:  table.Float(10),
		MosquitoLongitudeColumn: table.Float(20),
		mhm.WaterSourceColumn:   table.Str("lake"),
		MosquitoDateColumn:      table.Str("2021-02-14"),
		MosquitoIDColumn:        table.Int(26500),
	})

	tbl.AppendRow(map[string]table.Value{
		MosquitoLatitudeColumn:      table.Float(36.5),
		MosquitoLongitudeColumn:     table.Float(-119.2),
		mhm.WaterSourceColumn:       table.Str("adult mosquito trap"),
		MosquitoDateColumn:          table.Str("2021-01-05 09:43:00"),
		MosquitoIDColumn:            table.Int(26415),
		mhm.GenusColumn:             table.Str("Aedes"),
		MosquitoSpeciesColumn:       table.Str("incerta"),
		mhm.WaterSourcePhotosColumn: table.Str(photoURL("2021/01/05", "2076282")),
		mhm.AbdomenPhotosColumn:     table.Str(photoURL("2021/01/05", "2076281")),
	})
	return tbl
}

func TestMosquitoTargets(t *testing.T) {
	targets, err := MosquitoTargets(mosquitoFixture(t), "photos", MosquitoOptions{
		Larvae:         true,
		WaterSource:    true,
		Abdomen:        true,
		IncludeSpecies: true,
	})
	if err != nil {
		t.Fatalf("MosquitoTargets failed: %v", err)
	}

	want := []string{
		"mhm_Abdomen_adult mosquito trap_36.5_-119.2_2021-01-05_26415_Aedes incerta_2076281.png",
		"mhm_Larvae_dish or pot_37.1_-84.52_2021-01-07_26422_Aedes_2082764.png",
		"mhm_Larvae_ditch_1.5_2.5_2021-01-23_26456_None_2096253.png",
		"mhm_Larvae_ditch_1.5_2.5_2021-01-23_26456_None_2096254.png",
		"mhm_Watersource_adult mosquito trap_36.5_-119.2_2021-01-05_26415_Aedes incerta_2076282.png",
		"mhm_Watersource_dish or pot_37.1_-84.52_2021-01-07_26422_Aedes_2082763.png",
	}
	if len(targets) != len(want) {
		t.Fatalf("MosquitoTargets returned %d targets, want %d", len(targets), len(want))
	}
	for i, name := range want {
		if targets[i].Filename != name {
			t.Errorf("target %d = %q, want %q", i, targets[i].Filename, name)
		}
	}

	first := targets[0]
	if first.URL != photoURL("2021/01/05", "2076281") {
		t.Errorf("target URL = %q, want the abdomen photo URL", first.URL)
	}
	if first.Directory != "photos" {
		t.Errorf("target directory = %q, want photos", first.Directory)
	}
}

func TestMosquitoTargets_LarvaeOnly(t *testing.T) {
	targets, err := MosquitoTargets(mosquitoFixture(t), "photos", MosquitoOptions{Larvae: true})
	if err != nil {
		t.Fatalf("MosquitoTargets failed: %v", err)
	}

	want := []string{
		"mhm_Larvae_dish or pot_37.1_-84.52_2021-01-07_26422_Aedes_2082764.png",
		"mhm_Larvae_ditch_1.5_2.5_2021-01-23_26456_None_2096253.png",
		"mhm_Larvae_ditch_1.5_2.5_2021-01-23_26456_None_2096254.png",
	}
	if len(targets) != len(want) {
		t.Fatalf("MosquitoTargets returned %d targets, want %d", len(targets), len(want))
	}
	for i, name := range want {
		if targets[i].Filename != name {
			t.Errorf("target %d = %q, want %q", i, targets[i].Filename, name)
		}
	}
}

func TestMosquitoTargets_SpeciesExcluded(t *testing.T) {
	targets, err := MosquitoTargets(mosquitoFixture(t), "photos", MosquitoOptions{WaterSource: true})
	if err != nil {
		t.Fatalf("MosquitoTargets failed: %v", err)
	}

	want := []string{
		"mhm_Watersource_adult mosquito trap_36.5_-119.2_2021-01-05_26415_Aedes_2076282.png",
		"mhm_Watersource_dish or pot_37.1_-84.52_2021-01-07_26422_Aedes_2082763.png",
	}
	if len(targets) != len(want) {
		t.Fatalf("MosquitoTargets returned %d targets, want %d", len(targets), len(want))
	}
	for i, name := range want {
		if targets[i].Filename != name {
			t.Errorf("target %d = %q, want %q", i, targets[i].Filename, name)
		}
	}
}

func TestMosquitoTargets_ColumnOverrides(t *testing.T) {
	tbl := mosquitoFixture(t)
	tbl.RenameColumn(MosquitoDateColumn, "mhm_Date")

	targets, err := MosquitoTargets(tbl, "photos", MosquitoOptions{
		Larvae:  true,
		Columns: MosquitoColumns{Date: "mhm_Date"},
	})
	if err != nil {
		t.Fatalf("MosquitoTargets failed: %v", err)
	}
	if len(targets) != 3 {
		t.Errorf("MosquitoTargets returned %d targets, want 3", len(targets))
	}
}

func TestMosquitoTargets_MissingColumn(t *testing.T) {
	tbl := mosquitoFixture(t)
	tbl.DropColumn(mhm.GenusColumn)

	if _, err := MosquitoTargets(tbl, "photos", MosquitoOptions{Larvae: true}); err == nil {
		t.Error("expected error when the genus column is missing")
	}
}

func landCoverFixture(t *testing.T) *table.Table {
	t.Helper()
	tbl := table.New(
		LandCoverLatitudeColumn, LandCoverLongitudeColumn, LandCoverDateColumn,
		LandCoverIDColumn, lc.UpwardPhotoColumn, lc.DownwardPhotoColumn,
		lc.NorthPhotoColumn, lc.SouthPhotoColumn, lc.EastPhotoColumn, lc.WestPhotoColumn,
	)

	tbl.AppendRow(map[string]table.Value{
		LandCoverLatitudeColumn:  table.Float(38.2),
		LandCoverLongitudeColumn: table.Float(-78.4),
		LandCoverDateColumn:      table.Str("2021-01-01"),
		LandCoverIDColumn:        table.Int(38513),
		lc.UpwardPhotoColumn:     table.Str(photoURL("2021/01/01", "2072273")),
		lc.DownwardPhotoColumn:   table.Str(photoURL("2021/01/01", "2072274")),
		lc.NorthPhotoColumn:      table.Str(photoURL("2021/01/01", "2072269")),
		lc.SouthPhotoColumn:      table.Str(photoURL("2021/01/01", "2072271")),
		lc.EastPhotoColumn:       table.Str(photoURL("2021/01/01", "2072270")),
		lc.WestPhotoColumn:       table.Str(photoURL("2021/01/01", "2072272")),
	})

	tbl.AppendRow(map[string]table.Value{
		LandCoverLatitudeColumn:  table.Float(45.1),
		LandCoverLongitudeColumn: table.Float(7.7),
		LandCoverDateColumn:      table.Str("2021-01-03 10:20:30"),
		LandCoverIDColumn:        table.Int(38532),
		lc.NorthPhotoColumn:      table.Str(photoURL("2021/01/03", "2074022")),
	})
	return tbl
}

func TestLandCoverTargets(t *testing.T) {
	targets, err := LandCoverTargets(landCoverFixture(t), "photos", LandCoverOptions{
		Up:    true,
		Down:  true,
		North: true,
		South: true,
		East:  true,
		West:  true,
	})
	if err != nil {
		t.Fatalf("LandCoverTargets failed: %v", err)
	}

	want := []string{
		"lc_Down_38.2_-78.4_2021-01-01_38513_2072274.png",
		"lc_East_38.2_-78.4_2021-01-01_38513_2072270.png",
		"lc_North_38.2_-78.4_2021-01-01_38513_2072269.png",
		"lc_North_45.1_7.7_2021-01-03_38532_2074022.png",
		"lc_South_38.2_-78.4_2021-01-01_38513_2072271.png",
		"lc_Up_38.2_-78.4_2021-01-01_38513_2072273.png",
		"lc_West_38.2_-78.4_2021-01-01_38513_2072272.png",
	}
	if len(targets) != len(want) {
		t.Fatalf("LandCoverTargets returned %d targets, want %d", len(targets), len(want))
	}
	for i, name := range want {
		if targets[i].Filename != name {
			t.Errorf("target %d = %q, want %q", i, targets[i].Filename, name)
		}
	}
}

func TestLandCoverTargets_UpOnly(t *testing.T) {
	targets, err := LandCoverTargets(landCoverFixture(t), "photos", LandCoverOptions{Up: true})
	if err != nil {
		t.Fatalf("LandCoverTargets failed: %v", err)
	}
	if len(targets) != 1 {
		t.Fatalf("LandCoverTargets returned %d targets, want 1", len(targets))
	}
	if want := "lc_Up_38.2_-78.4_2021-01-01_38513_2072273.png"; targets[0].Filename != want {
		t.Errorf("target = %q, want %q", targets[0].Filename, want)
	}
}

func TestLandCoverTargets_MissingColumn(t *testing.T) {
	tbl := landCoverFixture(t)
	tbl.DropColumn(lc.WestPhotoColumn)

	if _, err := LandCoverTargets(tbl, "photos", LandCoverOptions{West: true}); err == nil {
		t.Error("expected error when the west photo column is missing")
	}
}
