package query_test

import (
	"reflect"
	"testing"

	"menu_agent/internal/domain"
	"menu_agent/internal/query"
)

// ---- fixtures ----

func item(id int64, rid int64, name string, cents int64, sig bool, regions, flavors []string) domain.MenuItem {
	return domain.MenuItem{
		ID:           id,
		RestaurantID: rid,
		Name:         name,
		Price:        domain.Price(cents),
		IsSignature:  sig,
		RegionTags:   regions,
		FlavorTags:   flavors,
	}
}

func sample() []domain.MenuItem {
	return []domain.MenuItem{
		item(1, 1, "Mapo Tofu", 1450, true, []string{"Sichuan"}, []string{"spicy", "numbing"}),
		item(2, 1, "Kung Pao Chicken", 1600, false, []string{"Sichuan"}, []string{"Spicy", "sweet"}),
		item(3, 2, "Har Gow", 850, true, []string{"Cantonese"}, []string{"savory"}),
		item(4, 2, "Siomai", 800, false, []string{" cantonese "}, []string{"savory"}),
		item(5, 3, "Tiramisu", 900, true, []string{"Italian"}, []string{"sweet", "coffee"}),
		item(6, 4, "Cheeseburger", 1300, false, []string{"American"}, []string{"savory"}),
	}
}

func ids(items []domain.MenuItem) []int64 {
	out := make([]int64, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func ptr[T any](v T) *T { return &v }

func isSubsequence(sub, full []domain.MenuItem) bool {
	j := 0
	for i := 0; i < len(full) && j < len(sub); i++ {
		if full[i].ID == sub[j].ID {
			j++
		}
	}
	return j == len(sub)
}

// ---- normalizer ----

func TestNormalizeTag(t *testing.T) {
	cases := map[string]string{
		"":          "",
		"   ":       "",
		"Sichuan":   "sichuan",
		" SICHUAN ": "sichuan",
		"\tDim Sum": "dim sum",
		"STRASSE":   "strasse",
	}
	for in, want := range cases {
		if got := query.NormalizeTag(in); got != want {
			t.Fatalf("NormalizeTag(%q) = %q, want %q", in, got, want)
		}
	}
}

// ---- filter engine ----

func TestFilterItems_Criteria(t *testing.T) {
	tests := []struct {
		name string
		c    query.Criteria
		want []int64
	}{
		{"no criteria keeps everything", query.Criteria{}, []int64{1, 2, 3, 4, 5, 6}},
		{"restaurant exact", query.Criteria{RestaurantID: ptr(int64(2))}, []int64{3, 4}},
		{"unknown restaurant", query.Criteria{RestaurantID: ptr(int64(99))}, []int64{}},
		{"q over name", query.Criteria{Q: "tofu"}, []int64{1}},
		{"q case-insensitive", query.Criteria{Q: "CHICKEN"}, []int64{2}},
		{"region normalized", query.Criteria{Region: "cantonese"}, []int64{3, 4}},
		{"flavor normalized", query.Criteria{Flavor: "SPICY"}, []int64{1, 2}},
		{"signature true", query.Criteria{IsSignature: ptr(true)}, []int64{1, 3, 5}},
		{"signature false", query.Criteria{IsSignature: ptr(false)}, []int64{2, 4, 6}},
		{"max price inclusive", query.Criteria{MaxPrice: ptr(domain.Price(900))}, []int64{3, 4, 5}},
		{"max price zero", query.Criteria{MaxPrice: ptr(domain.Price(0))}, []int64{}},
		{"conjunction", query.Criteria{Flavor: "sweet", MaxPrice: ptr(domain.Price(1000))}, []int64{5}},
		{"blank strings ignored", query.Criteria{Q: "", Region: "  ", Flavor: ""}, []int64{1, 2, 3, 4, 5, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(query.FilterItems(sample(), tt.c))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterItems_QMatchesDescription(t *testing.T) {
	items := sample()
	items[5].Description = "Griddled beef patty, CHEDDAR, pickles."
	got := ids(query.FilterItems(items, query.Criteria{Q: "cheddar"}))
	if !reflect.DeepEqual(got, []int64{6}) {
		t.Fatalf("got %v", got)
	}
}

func TestFilterItems_QKeepsInnerSpaces(t *testing.T) {
	items := sample()
	items[2].Description = "Dim sum classic"
	items[4].Description = "Summer favourite with mascarpone"

	got := ids(query.FilterItems(items, query.Criteria{Q: " SUM"}))
	if !reflect.DeepEqual(got, []int64{3}) {
		t.Fatalf("leading space must stay part of q, got %v", got)
	}
	got = ids(query.FilterItems(items, query.Criteria{Q: "sum"}))
	if !reflect.DeepEqual(got, []int64{3, 5}) {
		t.Fatalf("got %v", got)
	}
}

func TestFilterItems_DoesNotMutateInput(t *testing.T) {
	items := sample()
	before := ids(items)
	out := query.FilterItems(items, query.Criteria{Region: "sichuan"})
	out[0].Name = "changed"
	if !reflect.DeepEqual(ids(items), before) || items[0].Name != "Mapo Tofu" {
		t.Fatalf("input was mutated")
	}
}

func TestFilterItems_DanglingRestaurantCarriedThrough(t *testing.T) {
	items := []domain.MenuItem{item(1, 404, "Orphan", 100, false, nil, nil)}
	got := query.FilterItems(items, query.Criteria{Q: "orphan"})
	if len(got) != 1 || got[0].RestaurantID != 404 {
		t.Fatalf("unexpected: %+v", got)
	}
}

func TestFilterItems_Idempotent(t *testing.T) {
	for _, c := range []query.Criteria{
		{},
		{Region: "Sichuan"},
		{Flavor: "savory", IsSignature: ptr(false)},
		{Q: "o", MaxPrice: ptr(domain.Price(1500))},
	} {
		once := query.FilterItems(sample(), c)
		twice := query.FilterItems(once, c)
		if !reflect.DeepEqual(ids(once), ids(twice)) {
			t.Fatalf("not idempotent for %+v: %v vs %v", c, ids(once), ids(twice))
		}
	}
}

func TestFilterItems_ConjunctiveNarrowing(t *testing.T) {
	c1 := query.Criteria{Flavor: "savory"}
	c12 := query.Criteria{Flavor: "savory", MaxPrice: ptr(domain.Price(850))}
	wide := query.FilterItems(sample(), c1)
	narrow := query.FilterItems(sample(), c12)
	if !isSubsequence(narrow, wide) {
		t.Fatalf("%v is not a subsequence of %v", ids(narrow), ids(wide))
	}
}

func TestFilterItems_CaseInsensitiveRegion(t *testing.T) {
	a := ids(query.FilterItems(sample(), query.Criteria{Region: "Sichuan"}))
	b := ids(query.FilterItems(sample(), query.Criteria{Region: "sichuan"}))
	c := ids(query.FilterItems(sample(), query.Criteria{Region: " SICHUAN "}))
	if !reflect.DeepEqual(a, b) || !reflect.DeepEqual(b, c) || len(a) != 2 {
		t.Fatalf("region results differ: %v %v %v", a, b, c)
	}
}

// ---- ranker ----

func TestRecommend_SignatureFirstStable(t *testing.T) {
	got := ids(query.Recommend(sample(), 10, true))
	want := []int64{1, 3, 5, 2, 4, 6}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestRecommend_NoPreferenceKeepsOrder(t *testing.T) {
	got := ids(query.Recommend(sample(), 4, false))
	if !reflect.DeepEqual(got, []int64{1, 2, 3, 4}) {
		t.Fatalf("got %v", got)
	}
}

func TestRecommend_Bounds(t *testing.T) {
	for _, k := range []int{0, 1, 3, 6, 50} {
		got := query.Recommend(sample(), k, true)
		want := k
		if want > 6 {
			want = 6
		}
		if len(got) != want {
			t.Fatalf("limit %d: got %d items", k, len(got))
		}
	}
	if got := query.Recommend(sample(), -1, true); got == nil || len(got) != 0 {
		t.Fatalf("negative limit should give empty, got %v", got)
	}
}

func TestRecommend_DoesNotReorderInput(t *testing.T) {
	items := sample()
	_ = query.Recommend(items, 3, true)
	if !reflect.DeepEqual(ids(items), []int64{1, 2, 3, 4, 5, 6}) {
		t.Fatalf("input reordered: %v", ids(items))
	}
}

// ---- facade scenarios ----

func TestGetRecommendations_SichuanSpicy(t *testing.T) {
	items := []domain.MenuItem{
		item(1, 1, "A", 1000, false, []string{"Sichuan"}, []string{"spicy"}),
		item(2, 1, "B", 1000, true, []string{"Sichuan"}, []string{"spicy"}),
		item(3, 1, "C", 1000, true, []string{"Cantonese"}, []string{"sweet"}),
	}
	got := ids(query.GetRecommendations(items, query.Criteria{Region: "Sichuan", Flavor: "spicy"}, 3, true))
	if !reflect.DeepEqual(got, []int64{2, 1}) {
		t.Fatalf("got %v, want [2 1]", got)
	}
}

func TestListItems_MaxPrice(t *testing.T) {
	items := []domain.MenuItem{
		item(1, 1, "ten", 1000, false, nil, nil),
		item(2, 1, "fifteen", 1500, false, nil, nil),
		item(3, 1, "twenty", 2000, false, nil, nil),
	}
	got := ids(query.ListItems(items, query.Criteria{MaxPrice: ptr(domain.Price(1500))}))
	if !reflect.DeepEqual(got, []int64{1, 2}) {
		t.Fatalf("got %v", got)
	}
}

func TestListItems_EmptyQEqualsUnset(t *testing.T) {
	a := query.ListItems(sample(), query.Criteria{Q: ""})
	b := query.ListItems(sample(), query.Criteria{})
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("empty q filtered results")
	}
}

func TestGetRecommendations_LimitZero(t *testing.T) {
	got := query.GetRecommendations(sample(), query.Criteria{Region: "sichuan"}, 0, true)
	if len(got) != 0 {
		t.Fatalf("expected empty, got %v", ids(got))
	}
}

func TestListItems_FlavorCase(t *testing.T) {
	a := query.ListItems(sample(), query.Criteria{Flavor: "Spicy"})
	b := query.ListItems(sample(), query.Criteria{Flavor: "spicy"})
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("flavor case changed results: %v vs %v", ids(a), ids(b))
	}
}

func TestGetRecommendations_Deterministic(t *testing.T) {
	c := query.Criteria{Flavor: "savory"}
	first := query.GetRecommendations(sample(), c, 2, true)
	for i := 0; i < 20; i++ {
		if got := query.GetRecommendations(sample(), c, 2, true); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs: %v vs %v", i, ids(got), ids(first))
		}
	}
}
