package suggest_test

import (
	"testing"

	"github.com/talentgrid/searchd/internal/domain/model"
	"github.com/talentgrid/searchd/internal/domain/suggest"
	. "github.com/smartystreets/goconvey/convey"
)

func population() []*model.CandidateProfile {
	return []*model.CandidateProfile{
		{ID: "a", Skills: []string{"React", "Redux"}, Location: "Dublin, Ireland", Companies: []string{"Shopify"}, Title: "Frontend Engineer"},
		{ID: "b", Skills: []string{"React", "Go"}, Location: "Dublin, Ireland", Companies: []string{"Stripe"}, Title: "Backend Engineer"},
		{ID: "c", Skills: []string{"react"}, Location: "Berlin, Germany", Companies: []string{"Shopify"}, Title: "Engineering Manager"},
	}
}

func TestSuggest(t *testing.T) {
	Convey("Given a visible population", t, func() {
		engine := suggest.NewEngine()

		Convey("When the query is shorter than two characters", func() {
			Convey("Then no suggestions are produced", func() {
				So(engine.Suggest(population(), suggest.DomainSkills, "r"), ShouldBeNil)
				So(engine.Suggest(population(), suggest.DomainSkills, " "), ShouldBeNil)
				So(engine.Suggest(population(), suggest.DomainSkills, ""), ShouldBeNil)
			})

			Convey("Then a single multibyte rune still counts as one character", func() {
				So(engine.Suggest(population(), suggest.DomainSkills, "é"), ShouldBeNil)
			})
		})

		Convey("When suggesting skills", func() {
			out := engine.Suggest(population(), suggest.DomainSkills, "re")

			Convey("Then distinct values rank by frequency descending", func() {
				So(out, ShouldResemble, []string{"React", "Redux"})
			})
		})

		Convey("When the query matches mid-word", func() {
			out := engine.Suggest(population(), suggest.DomainSkills, "eac")

			Convey("Then substring matching applies", func() {
				So(out, ShouldResemble, []string{"React"})
			})
		})

		Convey("When suggesting locations", func() {
			out := engine.Suggest(population(), suggest.DomainLocations, "dub")

			Convey("Then full location values return", func() {
				So(out, ShouldResemble, []string{"Dublin, Ireland"})
			})
		})

		Convey("When suggesting companies", func() {
			out := engine.Suggest(population(), suggest.DomainCompanies, "st")

			Convey("Then company values return", func() {
				So(out, ShouldResemble, []string{"Stripe"})
			})
		})

		Convey("When suggesting titles", func() {
			out := engine.Suggest(population(), suggest.DomainTitles, "engineer")

			Convey("Then matching titles rank by frequency then value", func() {
				So(out, ShouldResemble, []string{"Backend Engineer", "Engineering Manager", "Frontend Engineer"})
			})
		})

		Convey("When a limit is configured", func() {
			limited := suggest.NewEngine(suggest.WithLimit(1))
			out := limited.Suggest(population(), suggest.DomainSkills, "re")

			Convey("Then the list truncates", func() {
				So(out, ShouldResemble, []string{"React"})
			})
		})
	})

	Convey("Given domain validation", t, func() {
		Convey("Then known domains validate and unknown ones do not", func() {
			So(suggest.ValidDomain(suggest.DomainSkills), ShouldBeTrue)
			So(suggest.ValidDomain(suggest.Domain("emails")), ShouldBeFalse)
		})
	})
}
