package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/talentgrid/searchd/internal/adapters/store"
	"github.com/talentgrid/searchd/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMemoryStore(t *testing.T) {
	Convey("Given an in-memory store", t, func() {
		s := store.NewMemoryStore()
		ctx := context.Background()

		Convey("When empty", func() {
			out, err := s.FetchCandidates(ctx)

			Convey("Then fetching returns an empty set", func() {
				So(err, ShouldBeNil)
				So(out, ShouldBeEmpty)
			})
		})

		Convey("When profiles are upserted", func() {
			s.Upsert(&model.CandidateProfile{ID: "b", Headline: "second"})
			s.Upsert(&model.CandidateProfile{ID: "a", Headline: "first"})

			Convey("Then fetches preserve insertion order", func() {
				out, err := s.FetchCandidates(ctx)
				So(err, ShouldBeNil)
				So(out, ShouldHaveLength, 2)
				So(out[0].ID, ShouldEqual, "b")
				So(out[1].ID, ShouldEqual, "a")
			})

			Convey("Then lookups resolve by id", func() {
				p, err := s.FetchProfileByID(ctx, "a")
				So(err, ShouldBeNil)
				So(p.Headline, ShouldEqual, "first")
			})
		})

		Convey("When a profile is upserted twice", func() {
			s.Upsert(&model.CandidateProfile{ID: "a", Headline: "old"})
			s.Upsert(&model.CandidateProfile{ID: "a", Headline: "new"})

			Convey("Then the replacement wins without duplicating", func() {
				out, _ := s.FetchCandidates(ctx)
				So(out, ShouldHaveLength, 1)
				So(out[0].Headline, ShouldEqual, "new")
			})
		})

		Convey("When a lookup misses", func() {
			_, err := s.FetchProfileByID(ctx, "ghost")

			Convey("Then a not-found error is returned", func() {
				So(errors.Is(err, store.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When the store is failing", func() {
			s.Upsert(&model.CandidateProfile{ID: "a"})
			s.SetFailing(true)

			Convey("Then both operations report unavailability", func() {
				_, err := s.FetchCandidates(ctx)
				So(errors.Is(err, store.ErrUnavailable), ShouldBeTrue)
				_, err = s.FetchProfileByID(ctx, "a")
				So(errors.Is(err, store.ErrUnavailable), ShouldBeTrue)
			})

			Convey("Then recovery restores service", func() {
				s.SetFailing(false)
				out, err := s.FetchCandidates(ctx)
				So(err, ShouldBeNil)
				So(out, ShouldHaveLength, 1)
			})
		})

		Convey("When the context is already cancelled", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()
			_, err := s.FetchCandidates(cancelled)

			Convey("Then the cancellation surfaces as unavailability", func() {
				So(errors.Is(err, store.ErrUnavailable), ShouldBeTrue)
			})
		})
	})
}
