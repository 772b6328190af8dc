package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/setterboard/internal/demo"
	"github.com/okian/setterboard/internal/domain/types"
	"github.com/okian/setterboard/internal/domain/window"
	. "github.com/smartystreets/goconvey/convey"
)

func writeFile(dir, name, body string) string {
	path := filepath.Join(dir, name)
	So(os.WriteFile(path, []byte(body), 0o600), ShouldBeNil)
	return path
}

func TestRun(t *testing.T) {
	Convey("Given a scratch directory", t, func() {
		ctx := context.Background()
		dir, err := os.MkdirTemp("", "setterboard-report-*")
		So(err, ShouldBeNil)
		Reset(func() { _ = os.RemoveAll(dir) })

		var stdout, stderr bytes.Buffer

		Convey("When reporting on demo rows", func() {
			err := run(ctx, []string{"-demo", "-range", "All Time"}, &stdout, &stderr)

			Convey("Then every demo person should be ranked", func() {
				So(err, ShouldBeNil)
				var report types.Report
				So(json.Unmarshal(stdout.Bytes(), &report), ShouldBeNil)
				So(report.Window.Range, ShouldEqual, window.AllTime)
				So(report.Entries, ShouldHaveLength, len(demo.Roster))
			})
		})

		Convey("When reporting on a records page with a custom mapping", func() {
			rows := writeFile(dir, "rows.json", `{"records": [
				{"id": "r1", "fields": {"Rep": "Ann Lee", "Cash": "$1,200", "Day": "2024-02-01"}},
				{"id": "r2", "fields": {"Rep": "ann  lee", "Cash": 300, "Day": "2024-02-02"}},
				{"id": "r3", "fields": {"Rep": "Bob", "Cash": 900}}
			]}`)
			mapping := writeFile(dir, "mapping.json", `{"name": "Rep", "cashCollected": "Cash", "date": "Day"}`)

			err := run(ctx, []string{"-rows", rows, "-mapping", mapping, "-pretty"}, &stdout, &stderr)

			Convey("Then rows should be merged and ranked by cash", func() {
				So(err, ShouldBeNil)
				So(stdout.String(), ShouldContainSubstring, "\n  \"window\"")
				var report types.Report
				So(json.Unmarshal(stdout.Bytes(), &report), ShouldBeNil)
				So(report.Entries, ShouldHaveLength, 2)
				So(report.Entries[0].DisplayName, ShouldEqual, "Ann Lee")
				So(report.Entries[0].CashCollected, ShouldEqual, 1500.0)
				So(report.UndatedRecords, ShouldEqual, 1)
			})
		})

		Convey("When reporting on a bare array for a custom window", func() {
			rows := writeFile(dir, "rows.json", `[
				{"id": "a", "fields": {"Date": "2024-01-10", "First Name (Dialer)": "Cy"}},
				{"id": "b", "fields": {"Date": "2024-01-20", "First Name (Dialer)": "Di"}}
			]`)

			err := run(ctx, []string{"-rows", rows, "-range", "CUSTOM", "-start", "2024-01-15", "-end", "2024-01-31"}, &stdout, &stderr)

			Convey("Then only rows inside the bounds should count", func() {
				So(err, ShouldBeNil)
				var report types.Report
				So(json.Unmarshal(stdout.Bytes(), &report), ShouldBeNil)
				So(report.InWindow, ShouldEqual, 1)
				So(report.Entries[0].DisplayName, ShouldEqual, "Di")
			})
		})

		Convey("When neither -rows nor -demo is given", func() {
			err := run(ctx, nil, &stdout, &stderr)

			Convey("Then it should be a usage error", func() {
				So(errors.Is(err, errUsage), ShouldBeTrue)
			})
		})

		Convey("When a bound is malformed", func() {
			err := run(ctx, []string{"-demo", "-start", "Jan 1"}, &stdout, &stderr)

			Convey("Then it should be a usage error naming the flag", func() {
				So(errors.Is(err, errUsage), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "-start")
			})
		})

		Convey("When the rows file is not JSON", func() {
			rows := writeFile(dir, "rows.json", `id,name`)
			err := run(ctx, []string{"-rows", rows}, &stdout, &stderr)

			Convey("Then it should fail naming the file", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "rows.json")
			})
		})
	})
}
