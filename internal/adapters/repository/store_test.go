package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/okian/setterboard/internal/adapters/repository"
	"github.com/okian/setterboard/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func offer(id, name string) model.Offer {
	fm := model.DefaultFieldMap()
	fm.CashCollected = "Cash"
	return model.Offer{
		ID:        id,
		Name:      name,
		APIKey:    "key-" + id,
		BaseID:    "app" + id,
		TableName: model.DefaultTableName,
		Mapping:   fm,
	}
}

// storeContract runs the behavior every Store must share.
func storeContract(newStore func() repository.Store) {
	ctx := context.Background()
	s := newStore()
	Reset(func() { _ = s.Close() })

	Convey("When the store is empty", func() {
		list, err := s.List(ctx)

		Convey("Then lookups should report ErrNotFound", func() {
			So(err, ShouldBeNil)
			So(list, ShouldBeEmpty)
			So(s.Count(ctx), ShouldEqual, 0)
			_, err := s.Get(ctx, "nope")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			So(errors.Is(s.Delete(ctx, "nope"), repository.ErrNotFound), ShouldBeTrue)
		})
	})

	Convey("When offers are stored", func() {
		So(s.Put(ctx, offer("2", "beta")), ShouldBeNil)
		So(s.Put(ctx, offer("1", "Alpha")), ShouldBeNil)
		So(s.Put(ctx, offer("3", "alpha")), ShouldBeNil)

		Convey("Then they should round-trip with their mapping", func() {
			got, err := s.Get(ctx, "2")
			So(err, ShouldBeNil)
			So(got, ShouldResemble, offer("2", "beta"))
			So(got.Mapping.CashCollected, ShouldEqual, "Cash")
		})

		Convey("Then List should order by name and id", func() {
			list, err := s.List(ctx)
			So(err, ShouldBeNil)
			ids := make([]string, len(list))
			for i, o := range list {
				ids[i] = o.ID
			}
			So(ids, ShouldResemble, []string{"1", "3", "2"})
			So(s.Count(ctx), ShouldEqual, 3)
		})

		Convey("Then Put with an existing id should replace the offer", func() {
			updated := offer("2", "gamma")
			updated.Mapping = model.FieldMap{Name: "Rep"}
			So(s.Put(ctx, updated), ShouldBeNil)

			got, err := s.Get(ctx, "2")
			So(err, ShouldBeNil)
			So(got.Name, ShouldEqual, "gamma")
			So(got.Mapping, ShouldResemble, model.FieldMap{Name: "Rep"})
			So(s.Count(ctx), ShouldEqual, 3)
		})

		Convey("Then Delete should remove exactly one offer", func() {
			So(s.Delete(ctx, "1"), ShouldBeNil)
			_, err := s.Get(ctx, "1")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			So(s.Count(ctx), ShouldEqual, 2)
		})
	})

	Convey("When writing concurrently", func() {
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_ = s.Put(ctx, offer(fmt.Sprintf("c%02d", i), "concurrent"))
			}(i)
		}
		wg.Wait()

		Convey("Then every write should land", func() {
			So(s.Count(ctx), ShouldEqual, 20)
		})
	})
}

func TestMemoryStore(t *testing.T) {
	Convey("Given an in-memory store", t, func() {
		storeContract(func() repository.Store { return repository.NewMemoryStore() })
	})
}

func TestSQLiteStore(t *testing.T) {
	Convey("Given a sqlite store on an in-memory database", t, func() {
		storeContract(func() repository.Store {
			s, err := repository.NewSQLiteStore(context.Background(), repository.MemoryDSN,
				repository.WithBusyTimeout(time.Second))
			So(err, ShouldBeNil)
			return s
		})
	})

	Convey("Given a sqlite store on disk", t, func() {
		ctx := context.Background()
		dir, err := os.MkdirTemp("", "setterboard-store-*")
		So(err, ShouldBeNil)
		Reset(func() { _ = os.RemoveAll(dir) })
		path := filepath.Join(dir, "nested", "offers.db")

		Convey("When an offer is written and the store reopened", func() {
			s, err := repository.NewSQLiteStore(ctx, path)
			So(err, ShouldBeNil)
			So(s.Put(ctx, offer("x", "persisted")), ShouldBeNil)
			So(s.Close(), ShouldBeNil)

			reopened, err := repository.NewSQLiteStore(ctx, path)
			So(err, ShouldBeNil)
			defer func() { _ = reopened.Close() }()

			Convey("Then the offer should still be there", func() {
				got, err := reopened.Get(ctx, "x")
				So(err, ShouldBeNil)
				So(got.Name, ShouldEqual, "persisted")
			})
		})
	})
}
