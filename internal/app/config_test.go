package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	service "github.com/okian/setterboard/internal/app"
	"github.com/okian/setterboard/internal/config"
	"github.com/okian/setterboard/internal/domain/model"
	"github.com/okian/setterboard/internal/domain/window"
	"github.com/okian/setterboard/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFromConfig(t *testing.T) {
	Convey("Given a default configuration", t, func() {
		ctx := context.Background()
		cfg := config.New()
		cfg.Timezone = "UTC"
		cfg.DefaultRange = "This Month"

		Convey("When building the service", func() {
			svc, err := service.FromConfig(ctx, cfg, logger.NewNop())
			So(err, ShouldBeNil)
			So(svc.Start(ctx), ShouldBeNil)
			defer svc.Stop()

			Convey("Then configured defaults should apply", func() {
				stats := svc.GetStats()
				So(stats["timezone"], ShouldEqual, "UTC")
				So(stats["defaultRange"], ShouldEqual, string(window.ThisMonth))
				So(stats["offers"], ShouldEqual, 0)
			})
		})

		Convey("When a store path is configured", func() {
			dir, err := os.MkdirTemp("", "setterboard-app-*")
			So(err, ShouldBeNil)
			defer func() { _ = os.RemoveAll(dir) }()
			cfg.StorePath = filepath.Join(dir, "offers.db")

			svc, err := service.FromConfig(ctx, cfg, logger.NewNop())
			So(err, ShouldBeNil)
			So(svc.Start(ctx), ShouldBeNil)
			_, err = svc.SaveOffer(ctx, model.Offer{ID: "p1", Name: "Persisted", APIKey: "k", BaseID: "appP"})
			So(err, ShouldBeNil)
			svc.Stop()

			Convey("Then offers should survive a restart", func() {
				again, err := service.FromConfig(ctx, cfg, logger.NewNop())
				So(err, ShouldBeNil)
				So(again.Start(ctx), ShouldBeNil)
				defer again.Stop()

				o, err := again.GetOffer(ctx, "p1")
				So(err, ShouldBeNil)
				So(o.Name, ShouldEqual, "Persisted")
			})
		})

		Convey("When the timezone is unknown", func() {
			cfg.Timezone = "Mars/Olympus"
			_, err := service.FromConfig(ctx, cfg, logger.NewNop())

			Convey("Then it should return ErrInvalidConfig", func() {
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})
		})

		Convey("When the field map is configured", func() {
			cfg.FieldMap = model.FieldMap{Name: "Rep", CashCollected: "Cash"}
			svc, err := service.FromConfig(ctx, cfg, logger.NewNop())
			So(err, ShouldBeNil)

			report, err := svc.Compute(ctx, []model.RawRow{
				{ID: "1", Fields: map[string]any{"Rep": "Zoe", "Cash": "$10"}},
			}, model.FieldMap{}, window.Window{Range: window.AllTime})

			Convey("Then requests without a mapping should use it", func() {
				So(err, ShouldBeNil)
				So(report.Entries, ShouldHaveLength, 1)
				So(report.Entries[0].DisplayName, ShouldEqual, "Zoe")
				So(report.Entries[0].CashCollected, ShouldEqual, 10.0)
			})
		})
	})
}
