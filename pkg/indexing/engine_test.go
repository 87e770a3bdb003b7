package indexing

import (
	"reflect"
	"testing"

	"github.com/arnolddental/pagegen/models"
)

func strictRules() Rules {
	return Rules{
		PriorityOnly:      true,
		AllowlistOnly:     true,
		ContentOnly:       true,
		RequireLocalProof: true,
		PriorityServices:  SlugSet([]string{"teeth-whitening"}),
		AllowlistSuburbs:  SlugSet([]string{"arnold"}),
		MinWords:          350,
	}
}

func TestDecide_AllPredicatesPass(t *testing.T) {
	svc := models.ServiceEntry{Slug: "teeth-whitening"}
	loc := models.LocationEntry{Slug: "arnold", HasUniqueContent: true}

	indexable, reasons := Decide(svc, loc, 400, strictRules())
	if !indexable {
		t.Errorf("Decide() = false, reasons %v; want true", reasons)
	}
	if len(reasons) != 0 {
		t.Errorf("Decide() reasons = %v, want none", reasons)
	}
}

func TestDecide_ReportsEveryFailedPredicate(t *testing.T) {
	svc := models.ServiceEntry{Slug: "orthodontics"}
	loc := models.LocationEntry{Slug: "beeston"}

	indexable, reasons := Decide(svc, loc, 10, strictRules())
	if indexable {
		t.Error("Decide() = true, want false")
	}
	want := []string{ReasonNotPrioritized, ReasonNotAllowlisted, ReasonThinContent, ReasonNoLocalProof}
	if !reflect.DeepEqual(reasons, want) {
		t.Errorf("Decide() reasons = %v, want %v (no short-circuiting)", reasons, want)
	}
}

func TestDecide_Deterministic(t *testing.T) {
	svc := models.ServiceEntry{Slug: "orthodontics"}
	loc := models.LocationEntry{Slug: "arnold"}
	rules := strictRules()

	i1, r1 := Decide(svc, loc, 200, rules)
	i2, r2 := Decide(svc, loc, 200, rules)
	if i1 != i2 || !reflect.DeepEqual(r1, r2) {
		t.Errorf("repeated calls differ: (%v, %v) vs (%v, %v)", i1, r1, i2, r2)
	}
}

func TestDecide_DisabledRulesAlwaysPass(t *testing.T) {
	indexable, reasons := Decide(models.ServiceEntry{Slug: "anything"}, models.LocationEntry{Slug: "anywhere"}, 0, Rules{})
	if !indexable || len(reasons) != 0 {
		t.Errorf("Decide with empty rules = %v, %v; want true, none", indexable, reasons)
	}
}

func TestDecide_WordCountBoundary(t *testing.T) {
	rules := Rules{ContentOnly: true, MinWords: 350}
	svc := models.ServiceEntry{Slug: "s"}
	loc := models.LocationEntry{Slug: "l"}

	if ok, _ := Decide(svc, loc, 349, rules); ok {
		t.Error("349 words should fail a 350-word floor")
	}
	if ok, reasons := Decide(svc, loc, 350, rules); !ok {
		t.Errorf("350 words should pass, got %v", reasons)
	}
}

func TestDecide_LocalProofFromTestimonials(t *testing.T) {
	rules := Rules{RequireLocalProof: true}
	svc := models.ServiceEntry{Slug: "s"}

	withTestimonial := models.LocationEntry{Slug: "l", Testimonials: []models.Testimonial{{Author: "J", Quote: "great", Rating: 5}}}
	if ok, _ := Decide(svc, withTestimonial, 0, rules); !ok {
		t.Error("a testimonial should count as local proof")
	}

	bare := models.LocationEntry{Slug: "l"}
	if ok, reasons := Decide(svc, bare, 0, rules); ok || !reflect.DeepEqual(reasons, []string{ReasonNoLocalProof}) {
		t.Errorf("bare location = %v, %v; want no-local-proof failure", ok, reasons)
	}
}

func TestRulesFromConfig(t *testing.T) {
	cfg := &models.Config{
		PriorityServices:  []string{"teeth-whitening"},
		AllowlistSuburbs:  nil,
		MinWords:          350,
		RequireLocalProof: true,
	}
	rules := RulesFromConfig(cfg)
	if !rules.PriorityOnly {
		t.Error("non-empty priority list should enable PriorityOnly")
	}
	if rules.AllowlistOnly {
		t.Error("empty allowlist should leave AllowlistOnly off")
	}
	if !rules.ContentOnly || rules.MinWords != 350 {
		t.Errorf("content rule = %v/%d", rules.ContentOnly, rules.MinWords)
	}
	if !rules.RequireLocalProof {
		t.Error("RequireLocalProof not carried over")
	}
}
