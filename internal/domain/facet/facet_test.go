package facet_test

import (
	"testing"

	"github.com/talentgrid/searchd/internal/domain/facet"
	"github.com/talentgrid/searchd/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func population() []*model.CandidateProfile {
	return []*model.CandidateProfile{
		{ID: "a", Location: "Dublin, Ireland", Skills: []string{"Go", "React"}, Remote: model.RemoteHybrid, Completion: 90},
		{ID: "b", Location: "Dublin, Ireland", Skills: []string{"Go"}, Remote: model.RemoteOnly, Completion: 60},
		{ID: "c", Location: "Berlin, Germany", Skills: []string{"React"}, Remote: model.RemoteHybrid, Completion: 30},
		{ID: "d", Location: "", Skills: nil, Remote: model.RemoteHybrid, Completion: 10},
	}
}

func TestAggregate(t *testing.T) {
	Convey("Given a matched population", t, func() {
		agg := facet.NewAggregator()
		counts := agg.Aggregate(population())

		Convey("Then locations are counted descending", func() {
			locs := counts[facet.DimLocation]
			So(locs, ShouldHaveLength, 2)
			So(locs[0].Value, ShouldEqual, "Dublin, Ireland")
			So(locs[0].Count, ShouldEqual, 2)
			So(locs[1].Value, ShouldEqual, "Berlin, Germany")
		})

		Convey("Then location counts sum to profiles with a non-empty location", func() {
			total := 0
			for _, fv := range counts[facet.DimLocation] {
				total += fv.Count
			}
			So(total, ShouldEqual, 3)
		})

		Convey("Then skills are counted per profile, not per duplicate tag", func() {
			skills := counts[facet.DimSkill]
			So(skills, ShouldHaveLength, 2)
			So(skills[0].Count, ShouldEqual, 2)
			So(skills[1].Count, ShouldEqual, 2)
		})

		Convey("Then remote types cover every profile", func() {
			total := 0
			for _, fv := range counts[facet.DimRemote] {
				total += fv.Count
			}
			So(total, ShouldEqual, 4)
		})

		Convey("Then experience bands derive from completion", func() {
			bands := counts[facet.DimExperience]
			byValue := map[string]int{}
			for _, fv := range bands {
				byValue[fv.Value] = fv.Count
			}
			So(byValue["established"], ShouldEqual, 1)
			So(byValue["developing"], ShouldEqual, 1)
			So(byValue["starter"], ShouldEqual, 1)
			So(byValue["minimal"], ShouldEqual, 1)
		})

		Convey("Then ties order alphabetically for determinism", func() {
			skills := counts[facet.DimSkill]
			So(skills[0].Value, ShouldEqual, "Go")
			So(skills[1].Value, ShouldEqual, "React")
		})
	})

	Convey("Given a truncation limit", t, func() {
		agg := facet.NewAggregator(facet.WithMaxValues(1))
		counts := agg.Aggregate(population())

		Convey("Then each dimension keeps only the top value", func() {
			So(counts[facet.DimLocation], ShouldHaveLength, 1)
			So(counts[facet.DimSkill], ShouldHaveLength, 1)
		})
	})

	Convey("Given a profile with duplicate skill spellings", t, func() {
		agg := facet.NewAggregator()
		counts := agg.Aggregate([]*model.CandidateProfile{
			{ID: "x", Skills: []string{"Go", "go", "GO"}, Completion: 50},
		})

		Convey("Then the skill counts once for that profile", func() {
			So(counts[facet.DimSkill][0].Count, ShouldEqual, 1)
		})
	})

	Convey("Given skill spellings differing across profiles", t, func() {
		agg := facet.NewAggregator()
		counts := agg.Aggregate([]*model.CandidateProfile{
			{ID: "x", Skills: []string{"React"}, Completion: 50},
			{ID: "y", Skills: []string{"react"}, Completion: 50},
			{ID: "z", Skills: []string{"REACT"}, Completion: 50},
		})

		Convey("Then the spellings merge into one value under the first observed form", func() {
			skills := counts[facet.DimSkill]
			So(skills, ShouldHaveLength, 1)
			So(skills[0].Value, ShouldEqual, "React")
			So(skills[0].Count, ShouldEqual, 3)
		})
	})

	Convey("Given an empty population", t, func() {
		agg := facet.NewAggregator()
		counts := agg.Aggregate(nil)

		Convey("Then every dimension is present and empty", func() {
			So(counts[facet.DimLocation], ShouldBeEmpty)
			So(counts[facet.DimSkill], ShouldBeEmpty)
			So(counts[facet.DimRemote], ShouldBeEmpty)
			So(counts[facet.DimExperience], ShouldBeEmpty)
		})
	})
}
