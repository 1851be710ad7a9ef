package visibility_test

import (
	"testing"

	"github.com/talentgrid/searchd/internal/domain/model"
	"github.com/talentgrid/searchd/internal/domain/visibility"
	. "github.com/smartystreets/goconvey/convey"
)

func TestVisible(t *testing.T) {
	Convey("Given a public profile", t, func() {
		p := &model.CandidateProfile{ID: "p-1", OwnerID: "u-1", Privacy: model.PrivacyPublic}

		Convey("Then anyone sees it, including anonymous viewers", func() {
			So(visibility.Visible(p, ""), ShouldBeTrue)
			So(visibility.Visible(p, "u-2"), ShouldBeTrue)
		})
	})

	Convey("Given a semi-private profile", t, func() {
		p := &model.CandidateProfile{ID: "p-2", OwnerID: "u-1", Privacy: model.PrivacySemiPrivate}

		Convey("Then anonymous viewers are blocked", func() {
			So(visibility.Visible(p, ""), ShouldBeFalse)
		})

		Convey("Then any authenticated viewer sees it", func() {
			So(visibility.Visible(p, "u-2"), ShouldBeTrue)
		})
	})

	Convey("Given a private profile", t, func() {
		p := &model.CandidateProfile{ID: "p-3", OwnerID: "u-1", Privacy: model.PrivacyPrivate}

		Convey("Then nobody but the owner sees it", func() {
			So(visibility.Visible(p, ""), ShouldBeFalse)
			So(visibility.Visible(p, "u-2"), ShouldBeFalse)
			So(visibility.Visible(p, "u-1"), ShouldBeTrue)
		})
	})

	Convey("Given an unrecognized privacy value", t, func() {
		p := &model.CandidateProfile{ID: "p-4", OwnerID: "u-1", Privacy: "classified"}

		Convey("Then it is hidden from everyone except the owner", func() {
			So(visibility.Visible(p, "u-2"), ShouldBeFalse)
			So(visibility.Visible(p, "u-1"), ShouldBeTrue)
		})
	})
}

func TestFilter(t *testing.T) {
	Convey("Given a mixed population", t, func() {
		profiles := []*model.CandidateProfile{
			{ID: "a", OwnerID: "u-a", Privacy: model.PrivacyPublic},
			{ID: "b", OwnerID: "u-b", Privacy: model.PrivacyPrivate},
			{ID: "c", OwnerID: "u-c", Privacy: model.PrivacySemiPrivate},
			{ID: "d", OwnerID: "u-d", Privacy: model.PrivacyPublic},
		}

		Convey("When filtering anonymously", func() {
			out := visibility.Filter(profiles, "")

			Convey("Then only public profiles remain, in input order", func() {
				So(out, ShouldHaveLength, 2)
				So(out[0].ID, ShouldEqual, "a")
				So(out[1].ID, ShouldEqual, "d")
			})
		})

		Convey("When filtering as an authenticated viewer", func() {
			out := visibility.Filter(profiles, "u-x")

			Convey("Then semi-private profiles join the result", func() {
				So(out, ShouldHaveLength, 3)
			})
		})

		Convey("When filtering as the private profile's owner", func() {
			out := visibility.Filter(profiles, "u-b")

			Convey("Then the owner's private profile is included", func() {
				So(out, ShouldHaveLength, 4)
			})
		})
	})
}
