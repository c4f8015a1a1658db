package version

import (
	"runtime/debug"
	"testing"
)

func TestInfo_Defaults(t *testing.T) {
	bi := Info()
	if bi.Service != Service || bi.Version != "dev" || bi.Commit == "" || bi.Go == "" {
		t.Fatalf("info = %+v", bi)
	}
}

func TestFillVCS(t *testing.T) {
	settings := []debug.BuildSetting{
		{Key: "vcs.revision", Value: "3f9c2d1e8a7b"},
		{Key: "vcs.time", Value: "2026-05-04T08:00:00Z"},
		{Key: "vcs.modified", Value: "true"},
	}

	var bi BuildInfo
	fillVCS(&bi, settings)
	if bi.Commit != "3f9c2d1" || bi.Date != "2026-05-04T08:00:00Z" || !bi.Modified {
		t.Fatalf("vcs = %+v", bi)
	}

	stamped := BuildInfo{Commit: "abcd", Date: "yesterday"}
	fillVCS(&stamped, settings)
	if stamped.Commit != "abcd" || stamped.Date != "yesterday" {
		t.Fatalf("ldflags stamp overwritten: %+v", stamped)
	}
}
