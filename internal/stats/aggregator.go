// Package stats computes the derived reading statistics shown on the
// dashboard. Everything here is a pure function of a user's items; results
// are recomputed on every request.
package stats

import (
	"math"
	"sort"
	"strings"

	"bookshelf/internal/model"
)

// TopN is the length of the top creator and category lists.
const TopN = 5

// Count is one row of a top list.
type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// GoalProgress compares the year's completed items against the goal.
type GoalProgress struct {
	Year         int  `json:"year"`
	TargetItems  int  `json:"target_items"`
	ItemsDone    int  `json:"items_done"`
	ItemsPercent int  `json:"items_percent"`
	TargetUnits  int  `json:"target_units"`
	UnitsDone    int  `json:"units_done"`
	UnitsPercent int  `json:"units_percent"`
	IsDefault    bool `json:"is_default"`
}

// Snapshot is the statistics record for one user.
type Snapshot struct {
	TotalItems         int                      `json:"total_items"`
	ByStatus           map[model.ItemStatus]int `json:"by_status"`
	TotalUnits         int                      `json:"total_units"`
	UnitsCompleted     int                      `json:"units_completed"`
	DistinctCreators   int                      `json:"distinct_creators"`
	DistinctCategories int                      `json:"distinct_categories"`
	TopCreators        []Count                  `json:"top_creators"`
	TopCategories      []Count                  `json:"top_categories"`
	FavoriteCount      int                      `json:"favorite_count"`
	AverageRating      float64                  `json:"average_rating"`
	Goal               GoalProgress             `json:"goal"`
}

// Progress is the reading progress of one in-progress item.
type Progress struct {
	ItemID         string  `json:"item_id"`
	Title          string  `json:"title"`
	TotalUnits     int     `json:"total_units"`
	UnitsCompleted int     `json:"units_completed"`
	Percent        float64 `json:"percent"`
}

// Summarize reduces items to a Snapshot. goal may be nil, in which case the
// default targets for year are used.
func Summarize(items []model.Item, goal *model.Goal, year int) Snapshot {
	ordered := chronological(items)

	snap := Snapshot{
		TotalItems:    len(ordered),
		ByStatus:      make(map[model.ItemStatus]int, len(model.ItemStatuses)),
		TopCreators:   []Count{},
		TopCategories: []Count{},
	}
	for _, s := range model.ItemStatuses {
		snap.ByStatus[s] = 0
	}

	creators := make(map[string]struct{})
	categories := make(map[string]struct{})
	ratingSum, rated := 0, 0

	for _, it := range ordered {
		snap.ByStatus[it.Status]++
		snap.UnitsCompleted += it.UnitsCompleted
		if it.Status == model.ItemStatusDone {
			snap.TotalUnits += it.TotalUnits
		}
		if k := normalize(it.Creator); k != "" {
			creators[k] = struct{}{}
		}
		if k := normalize(it.Category); k != "" {
			categories[k] = struct{}{}
		}
		if it.Favorite {
			snap.FavoriteCount++
		}
		if it.Rating > 0 {
			ratingSum += it.Rating
			rated++
		}
	}

	snap.DistinctCreators = len(creators)
	snap.DistinctCategories = len(categories)
	if rated > 0 {
		snap.AverageRating = round1(float64(ratingSum) / float64(rated))
	}
	snap.TopCreators = Top(ordered, func(it model.Item) string { return it.Creator }, TopN)
	snap.TopCategories = Top(ordered, func(it model.Item) string { return it.Category }, TopN)
	snap.Goal = Goal(ordered, goal, year)
	return snap
}

// Top groups done items by key and returns the n largest groups, count
// descending. Equal counts keep the order in which the group was first seen
// in items. Items with an empty key are skipped.
func Top(items []model.Item, key func(model.Item) string, n int) []Count {
	index := make(map[string]int)
	counts := []Count{}
	for _, it := range items {
		if it.Status != model.ItemStatusDone {
			continue
		}
		name := strings.TrimSpace(key(it))
		if name == "" {
			continue
		}
		k := normalize(name)
		if i, ok := index[k]; ok {
			counts[i].Count++
			continue
		}
		index[k] = len(counts)
		counts = append(counts, Count{Name: name, Count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if n >= 0 && len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// Goal computes progress towards goal from the items finished in its year.
func Goal(items []model.Item, goal *model.Goal, year int) GoalProgress {
	g := GoalProgress{Year: year, TargetItems: model.DefaultGoalItems, TargetUnits: model.DefaultGoalUnits, IsDefault: true}
	if goal != nil {
		g = GoalProgress{Year: goal.Year, TargetItems: goal.TargetItems, TargetUnits: goal.TargetUnits}
	}

	for _, it := range items {
		if it.Status != model.ItemStatusDone || it.FinishedAt == nil || it.FinishedAt.Year() != g.Year {
			continue
		}
		g.ItemsDone++
		g.UnitsDone += it.TotalUnits
	}
	g.ItemsPercent = GoalPercent(g.ItemsDone, g.TargetItems)
	g.UnitsPercent = GoalPercent(g.UnitsDone, g.TargetUnits)
	return g
}

// GoalPercent returns round(100*done/target) clamped to [0, 100]. A
// non-positive target yields 0.
func GoalPercent(done, target int) int {
	if target <= 0 || done <= 0 {
		return 0
	}
	p := math.Round(100 * float64(done) / float64(target))
	if p > 100 {
		return 100
	}
	return int(p)
}

// ReadingProgress lists in-progress items of known length, most recently
// updated first.
func ReadingProgress(items []model.Item) []Progress {
	reading := make([]model.Item, 0, len(items))
	for _, it := range items {
		if it.Status == model.ItemStatusInProgress && it.TotalUnits > 0 {
			reading = append(reading, it)
		}
	}
	sort.SliceStable(reading, func(i, j int) bool {
		return reading[i].UpdatedAt.After(reading[j].UpdatedAt)
	})

	out := make([]Progress, 0, len(reading))
	for _, it := range reading {
		out = append(out, Progress{
			ItemID:         it.ID.String(),
			Title:          it.Title,
			TotalUnits:     it.TotalUnits,
			UnitsCompleted: it.UnitsCompleted,
			Percent:        round1(100 * float64(it.UnitsCompleted) / float64(it.TotalUnits)),
		})
	}
	return out
}

// chronological returns a copy of items sorted oldest-created first, by ID
// within the same instant.
func chronological(items []model.Item) []model.Item {
	out := make([]model.Item, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
