package scoring_test

import (
	"testing"
	"time"

	"github.com/talentgrid/searchd/internal/domain/criteria"
	"github.com/talentgrid/searchd/internal/domain/model"
	scoring "github.com/talentgrid/searchd/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newEngine(opts ...scoring.Option) *scoring.Engine {
	opts = append(opts, scoring.WithClock(func() time.Time { return now }))
	return scoring.NewEngine(opts...)
}

func baseProfile() *model.CandidateProfile {
	return &model.CandidateProfile{
		ID:         "p-1",
		OwnerID:    "u-1",
		Headline:   "Frontend engineer",
		Location:   "Dublin, Ireland",
		Skills:     []string{"React", "TypeScript"},
		Industries: []string{"E-commerce"},
		Privacy:    model.PrivacyPublic,
		Completion: 80,
		UpdatedAt:  now.Add(-30 * 24 * time.Hour),
	}
}

func TestScore(t *testing.T) {
	Convey("Given the default weight table", t, func() {
		engine := newEngine()

		Convey("When no filters are set", func() {
			result := engine.Score(baseProfile(), criteria.Criteria{})

			Convey("Then only the completion base contributes", func() {
				So(result.Score, ShouldEqual, 24) // 80 * 0.30
				So(result.MatchReasons, ShouldBeEmpty)
			})
		})

		Convey("When all requested skills match", func() {
			c := criteria.Criteria{Skills: []string{"react", "typescript"}}
			result := engine.Score(baseProfile(), c)

			Convey("Then the full skill weight is added with a reason", func() {
				So(result.Score, ShouldEqual, 54) // 24 + 30
				So(result.MatchReasons, ShouldContain, "matches 2 of 2 requested skills")
			})
		})

		Convey("When half of the requested skills match", func() {
			c := criteria.Criteria{Skills: []string{"React", "Go"}}
			result := engine.Score(baseProfile(), c)

			Convey("Then the skill term is proportional", func() {
				So(result.Score, ShouldEqual, 39) // 24 + 15
			})
		})

		Convey("When industries match", func() {
			c := criteria.Criteria{Industries: []string{"e-commerce"}}
			result := engine.Score(baseProfile(), c)

			Convey("Then the industry weight is added", func() {
				So(result.Score, ShouldEqual, 44) // 24 + 20
			})
		})

		Convey("When the location substring matches", func() {
			c := criteria.Criteria{Location: "dublin"}
			result := engine.Score(baseProfile(), c)

			Convey("Then the flat location bonus is added", func() {
				So(result.Score, ShouldEqual, 39) // 24 + 15
				So(result.MatchReasons, ShouldContain, "location match")
			})
		})

		Convey("When the profile is verified", func() {
			p := baseProfile()
			p.Verified = true
			result := engine.Score(p, criteria.Criteria{})

			Convey("Then the verification bonus is added", func() {
				So(result.Score, ShouldEqual, 34) // 24 + 10
				So(result.MatchReasons, ShouldContain, "verified profile")
			})
		})

		Convey("When the profile was updated within seven days", func() {
			p := baseProfile()
			p.UpdatedAt = now.Add(-2 * 24 * time.Hour)
			result := engine.Score(p, criteria.Criteria{})

			Convey("Then the recency bonus is added", func() {
				So(result.Score, ShouldEqual, 29) // 24 + 5
				So(result.MatchReasons, ShouldContain, "recently active")
			})
		})

		Convey("When every term fires at once", func() {
			p := baseProfile()
			p.Completion = 100
			p.Verified = true
			p.UpdatedAt = now.Add(-time.Hour)
			c := criteria.Criteria{
				Skills:     []string{"React", "TypeScript"},
				Industries: []string{"E-commerce"},
				Location:   "Dublin",
			}
			result := engine.Score(p, c)

			Convey("Then the sum stays clamped to 100", func() {
				So(result.Score, ShouldEqual, 100) // 30+30+20+15+10+5 = 110, clamped
			})
		})

		Convey("When a contactability check is needed", func() {
			p := baseProfile()
			p.Privacy = model.PrivacyPrivate
			result := engine.Score(p, criteria.Criteria{})

			Convey("Then private profiles are not contactable", func() {
				So(result.Contactable, ShouldBeFalse)
			})
		})
	})

	Convey("Given a custom weight table", t, func() {
		w := scoring.DefaultWeights()
		w.VerifiedBonus = 40
		engine := newEngine(scoring.WithWeights(w))

		p := baseProfile()
		p.Verified = true
		result := engine.Score(p, criteria.Criteria{})

		Convey("Then tuning changes scores without touching the formula", func() {
			So(result.Score, ShouldEqual, 64) // 24 + 40
		})
	})
}

func TestScoreMonotonicInSkillOverlap(t *testing.T) {
	Convey("Given a criteria with several skills", t, func() {
		engine := newEngine()
		c := criteria.Criteria{Skills: []string{"go", "react", "rust", "python"}}

		p := baseProfile()
		p.Skills = []string{"go"}
		before := engine.Score(p, c).Score

		Convey("When the candidate gains another matching skill", func() {
			p.Skills = append(p.Skills, "rust")
			after := engine.Score(p, c).Score

			Convey("Then the score never decreases", func() {
				So(after, ShouldBeGreaterThanOrEqualTo, before)
			})
		})
	})
}

func TestScoreAndRank(t *testing.T) {
	Convey("Given a population with distinct completions", t, func() {
		engine := newEngine()
		older := baseProfile()
		older.ID = "older"
		older.Completion = 60
		older.UpdatedAt = now.Add(-40 * 24 * time.Hour)
		newer := baseProfile()
		newer.ID = "newer"
		newer.Completion = 80
		newer.UpdatedAt = now.Add(-20 * 24 * time.Hour)
		profiles := []*model.CandidateProfile{older, newer}

		Convey("When ranking by relevance", func() {
			out := engine.ScoreAndRank(profiles, criteria.Criteria{}, criteria.RankRelevance)

			Convey("Then higher scores come first", func() {
				So(out[0].ProfileID, ShouldEqual, "newer")
				So(out[1].ProfileID, ShouldEqual, "older")
			})
		})

		Convey("When ranking by recency", func() {
			out := engine.ScoreAndRank(profiles, criteria.Criteria{}, criteria.RankRecency)

			Convey("Then the most recently updated comes first", func() {
				So(out[0].ProfileID, ShouldEqual, "newer")
			})
		})

		Convey("When ranking by completion", func() {
			out := engine.ScoreAndRank(profiles, criteria.Criteria{}, criteria.RankCompletion)

			Convey("Then the most complete profile comes first", func() {
				So(out[0].ProfileID, ShouldEqual, "newer")
			})
		})

		Convey("When scores tie under relevance ranking", func() {
			twin := baseProfile()
			twin.ID = "twin"
			twin.Completion = 80
			twin.UpdatedAt = newer.UpdatedAt
			out := engine.ScoreAndRank([]*model.CandidateProfile{newer, twin}, criteria.Criteria{}, criteria.RankRelevance)

			Convey("Then fetch order is preserved", func() {
				So(out[0].ProfileID, ShouldEqual, "newer")
				So(out[1].ProfileID, ShouldEqual, "twin")
			})
		})
	})

	Convey("Given a large population and a parallel engine", t, func() {
		engine := newEngine(scoring.WithParallelism(4))
		profiles := make([]*model.CandidateProfile, 1000)
		for i := range profiles {
			p := baseProfile()
			p.ID = string(rune('a' + i%26))
			p.Completion = i % 101
			profiles[i] = p
		}

		Convey("When scoring in parallel", func() {
			out := engine.ScoreAndRank(profiles, criteria.Criteria{}, criteria.RankRelevance)

			Convey("Then every profile is scored and ordered by score", func() {
				So(out, ShouldHaveLength, 1000)
				for i := 1; i < len(out); i++ {
					So(out[i-1].Score, ShouldBeGreaterThanOrEqualTo, out[i].Score)
				}
			})
		})
	})
}
