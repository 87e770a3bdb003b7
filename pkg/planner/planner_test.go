package planner

import (
	"reflect"
	"testing"

	"github.com/arnolddental/pagegen/models"
)

func services(slugs ...string) []models.ServiceEntry {
	out := make([]models.ServiceEntry, len(slugs))
	for i, s := range slugs {
		out[i] = models.ServiceEntry{Slug: s, Name: s, SortOrder: i}
	}
	return out
}

func locations(slugs ...string) []models.LocationEntry {
	out := make([]models.LocationEntry, len(slugs))
	for i, s := range slugs {
		out[i] = models.LocationEntry{Slug: s, Suburb: s}
	}
	return out
}

func pairs(keys ...[2]string) []models.PairKey {
	out := make([]models.PairKey, len(keys))
	for i, k := range keys {
		out[i] = models.PairKey{Service: k[0], Location: k[1]}
	}
	return out
}

func TestPlan_PriorityCrossProduct(t *testing.T) {
	plan := Plan(models.StrategyPriority,
		services("a", "b", "c"), locations("x", "y", "z"),
		[]string{"a", "b"}, []string{"x", "y"}, 100, nil)

	want := pairs([2]string{"a", "x"}, [2]string{"a", "y"}, [2]string{"b", "x"}, [2]string{"b", "y"})
	if !reflect.DeepEqual(plan.Pairs, want) {
		t.Errorf("Plan(priority) pairs = %v, want %v", plan.Pairs, want)
	}
	if plan.Exceeded {
		t.Error("Plan(priority) exceeded = true, want false")
	}
}

func TestPlan_UnknownStrategyBehavesLikePriority(t *testing.T) {
	svcs := services("a", "b")
	locs := locations("x", "y")
	prioritySvcs := []string{"a", "b"}
	priorityLocs := []string{"x", "y"}

	known := Plan(models.StrategyPriority, svcs, locs, prioritySvcs, priorityLocs, 50, nil)
	unknown := Plan("bogus", svcs, locs, prioritySvcs, priorityLocs, 50, nil)

	if !reflect.DeepEqual(known.Pairs, unknown.Pairs) {
		t.Errorf("Plan(\"bogus\") pairs = %v, want %v", unknown.Pairs, known.Pairs)
	}
	if unknown.Strategy != models.StrategyPriority {
		t.Errorf("Plan(\"bogus\") strategy = %q, want %q", unknown.Strategy, models.StrategyPriority)
	}
}

func TestPlan_FullCapEnforcement(t *testing.T) {
	plan := Plan(models.StrategyFull,
		services("s1", "s2", "s3"), locations("l1", "l2", "l3", "l4"),
		nil, nil, 5, nil)

	if len(plan.Pairs) != 5 {
		t.Fatalf("Plan(full, cap=5) returned %d pairs, want 5", len(plan.Pairs))
	}
	if !plan.Exceeded {
		t.Error("Plan(full, cap=5) exceeded = false, want true")
	}
	// Services outer, locations inner, catalog order.
	want := pairs([2]string{"s1", "l1"}, [2]string{"s1", "l2"}, [2]string{"s1", "l3"}, [2]string{"s1", "l4"}, [2]string{"s2", "l1"})
	if !reflect.DeepEqual(plan.Pairs, want) {
		t.Errorf("truncation not deterministic: %v, want %v", plan.Pairs, want)
	}
}

func TestPlan_FullWithinCap(t *testing.T) {
	plan := Plan(models.StrategyFull, services("s1", "s2"), locations("l1", "l2"), nil, nil, 10, nil)
	if len(plan.Pairs) != 4 || plan.Exceeded {
		t.Errorf("Plan(full) = %d pairs, exceeded=%v; want 4, false", len(plan.Pairs), plan.Exceeded)
	}
}

func TestPlan_PriorityFallsBackToCatalogFlags(t *testing.T) {
	svcs := services("a", "b", "c")
	svcs[1].Priority = true
	locs := locations("x", "y")
	locs[0].Tier = "major"

	plan := Plan(models.StrategyPriority, svcs, locs, nil, nil, 10, nil)
	want := pairs([2]string{"b", "x"})
	if !reflect.DeepEqual(plan.Pairs, want) {
		t.Errorf("flag fallback pairs = %v, want %v", plan.Pairs, want)
	}
}

func TestPlan_StagedDefaults(t *testing.T) {
	svcs := services("s1", "s2", "s3", "s4", "s5", "s6", "s7")
	locs := locations("l1", "l2", "l3")

	// No priority services and no major-tier locations: first 5 services
	// and first 20 (here all 3) locations.
	plan := Plan(models.StrategyStaged, svcs, locs, nil, nil, 100, nil)
	if len(plan.Pairs) != 5*3 {
		t.Errorf("Plan(staged) = %d pairs, want %d", len(plan.Pairs), 5*3)
	}
	if plan.Pairs[0] != (models.PairKey{Service: "s1", Location: "l1"}) {
		t.Errorf("first staged pair = %v", plan.Pairs[0])
	}
}

func TestPlan_StagedMajorTier(t *testing.T) {
	svcs := services("s1", "s2")
	locs := locations("l1", "l2", "l3")
	locs[2].Tier = "major"

	plan := Plan(models.StrategyStaged, svcs, locs, []string{"s2"}, nil, 100, nil)
	want := pairs([2]string{"s2", "l3"})
	if !reflect.DeepEqual(plan.Pairs, want) {
		t.Errorf("Plan(staged) pairs = %v, want %v", plan.Pairs, want)
	}
}

func TestPlan_DeterministicAcrossRuns(t *testing.T) {
	svcs := services("s1", "s2", "s3")
	locs := locations("l1", "l2")
	first := Plan(models.StrategyFull, svcs, locs, nil, nil, 4, nil)
	second := Plan(models.StrategyFull, svcs, locs, nil, nil, 4, nil)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical inputs produced different plans:\n%v\n%v", first, second)
	}
}
