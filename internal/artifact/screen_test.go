package artifact

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/slider/internal/controls"
	"github.com/roach88/slider/internal/inventory"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func newTestScreen(layout Layout, inv *inventory.Player, device controls.Device, opts ...Option) *Screen {
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	return NewScreen(layout, inv, controls.NewScheme(device), Table{}, opts...)
}

func TestUpdateCounters_BreadgeCount(t *testing.T) {
	tests := []struct {
		name    string
		areas   []inventory.Area
		text    string
		visible bool
	}{
		{"two areas", []inventory.Area{inventory.Caves, inventory.Desert}, "2", true},
		{"one area", []inventory.Area{inventory.Caves}, "1", false},
		{"none", nil, "0", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := inventory.NewPlayer()
			for _, a := range tt.areas {
				inv.Add(ItemBreadge, a)
			}
			s := newTestScreen(DefaultLayout(), inv, controls.Mouse)
			s.UpdateCounters()

			assert.Equal(t, CounterState{Text: tt.text, Visible: tt.visible}, s.Counter(CounterBreadge))
		})
	}
}

func TestUpdateCounters_SunglassesAndOil(t *testing.T) {
	inv := inventory.NewPlayer()
	inv.Add(ItemSunglasses, inventory.Ocean)
	inv.Add(ItemSunglasses, inventory.Mountain)
	inv.Add(ItemSunglasses, inventory.MagiTech)
	inv.Add(OilName(2), inventory.Factory)
	inv.Add(ItemBreadge, inventory.AreaNone)

	s := newTestScreen(DefaultLayout(), inv, controls.Mouse)
	s.UpdateCounters()

	assert.Equal(t, CounterState{Text: "3", Visible: true}, s.Counter(CounterSunglasses))
	assert.Equal(t, CounterState{Text: "1", Visible: false}, s.Counter(CounterOil))
	assert.Equal(t, CounterState{Text: "0", Visible: false}, s.Counter(CounterBreadge), "only areas 1..9 count")
}

func TestTrySelectLeftmost(t *testing.T) {
	a := NewCollectible("A", "A", 5)
	b := NewCollectible("B", "B", 1)
	c := NewCollectible("C", "C", 9)
	inv := inventory.NewPlayer()
	for _, k := range []string{"A", "B", "C"} {
		inv.Add(k, inventory.Village)
	}
	s := newTestScreen(Layout{Entries: []*Collectible{a, b, c}}, inv, controls.Controller)
	s.Enable()

	require.True(t, s.TrySelectLeftmost())
	assert.Same(t, b, s.Selected())
	assert.True(t, b.Highlighted())

	require.True(t, s.TrySelectRightmost())
	assert.Same(t, c, s.Selected())
	assert.False(t, b.Highlighted())
}

func TestTrySelectLeftmost_SkipsHiddenAndNonNavigable(t *testing.T) {
	a := NewCollectible("A", "A", 5)
	b := NewCollectible("B", "B", 1)
	inv := inventory.NewPlayer()
	inv.Add("A", inventory.Village)

	s := newTestScreen(Layout{Entries: []*Collectible{a, b}}, inv, controls.Controller)
	s.Enable()
	assert.Same(t, a, s.Selected(), "hidden B is skipped")

	mouse := newTestScreen(Layout{Entries: []*Collectible{NewCollectible("A", "A", 0)}}, inv, controls.Mouse)
	mouse.Enable()
	assert.False(t, mouse.TrySelectLeftmost())
	assert.False(t, mouse.TrySelectRightmost())
	assert.Nil(t, mouse.Selected())
}

func TestTrySelect_TiesKeepFirst(t *testing.T) {
	first := NewCollectible("First", "A", 3)
	second := NewCollectible("Second", "B", 3)
	inv := inventory.NewPlayer()
	inv.Add("A", inventory.Village)
	inv.Add("B", inventory.Village)

	s := newTestScreen(Layout{Entries: []*Collectible{first, second}}, inv, controls.Controller)
	s.Enable()

	require.True(t, s.TrySelectLeftmost())
	assert.Same(t, first, s.Selected())
	require.True(t, s.TrySelectRightmost())
	assert.Same(t, first, s.Selected())
}

func TestSelectNext(t *testing.T) {
	a := NewCollectible("A", "A", 0)
	b := NewCollectible("B", "B", 2)
	c := NewCollectible("C", "C", 4)
	inv := inventory.NewPlayer()
	for _, k := range []string{"A", "B", "C"} {
		inv.Add(k, inventory.Village)
	}
	s := newTestScreen(Layout{Entries: []*Collectible{c, a, b}}, inv, controls.Controller)
	s.Enable()
	require.Same(t, a, s.Selected())

	assert.True(t, s.SelectNext(1))
	assert.Same(t, b, s.Selected())
	assert.True(t, s.SelectNext(1))
	assert.Same(t, c, s.Selected())
	assert.False(t, s.SelectNext(1))
	assert.Same(t, c, s.Selected())
	assert.True(t, s.SelectNext(-1))
	assert.Same(t, b, s.Selected())
}

func TestEnable_TitleOrFocus(t *testing.T) {
	inv := inventory.NewPlayer()
	inv.Add(ItemBoots, inventory.Desert)

	mouse := newTestScreen(DefaultLayout(), inv, controls.Mouse)
	mouse.Enable()
	assert.Equal(t, "Collection", mouse.Text())
	assert.Nil(t, mouse.Selected())

	pad := newTestScreen(DefaultLayout(), inv, controls.Controller)
	pad.Enable()
	assert.Equal(t, "Boots", pad.Text())
	require.NotNil(t, pad.Selected())
	assert.Equal(t, ItemBoots, pad.Selected().Key)

	empty := newTestScreen(DefaultLayout(), inventory.NewPlayer(), controls.Controller)
	empty.Enable()
	assert.Equal(t, "Collection", empty.Text())
}

func TestEnableDisable_Subscriptions(t *testing.T) {
	inv := inventory.NewPlayer()
	layout := DefaultLayout()
	s := newTestScreen(layout, inv, controls.Mouse)
	scheme := s.Scheme()

	s.Enable()
	s.Enable()
	assert.True(t, s.Enabled())
	assert.Equal(t, 1, inv.Listeners())
	assert.Equal(t, len(layout.Entries), scheme.Subscribers())

	s.Disable()
	s.Disable()
	assert.False(t, s.Enabled())
	assert.Equal(t, 0, inv.Listeners())
	assert.Equal(t, 0, scheme.Subscribers())
}

func TestEnable_CountersFollowAcquisitions(t *testing.T) {
	inv := inventory.NewPlayer()
	inv.Add(ItemBreadge, inventory.Village)
	s := newTestScreen(DefaultLayout(), inv, controls.Mouse)
	s.Enable()
	assert.False(t, s.Counter(CounterBreadge).Visible)

	inv.Add(ItemBreadge, inventory.Ocean)
	assert.Equal(t, CounterState{Text: "2", Visible: true}, s.Counter(CounterBreadge))

	s.Disable()
	inv.Add(ItemBreadge, inventory.Jungle)
	assert.Equal(t, "2", s.Counter(CounterBreadge).Text)
}

func TestNavigation_FollowsScheme(t *testing.T) {
	inv := inventory.NewPlayer()
	inv.Add(ItemBoots, inventory.Desert)
	layout := DefaultLayout()
	s := newTestScreen(layout, inv, controls.Controller)
	s.Enable()
	require.True(t, layout.Boots.Highlighted())

	s.Scheme().SetDevice(controls.Mouse)
	assert.False(t, layout.Boots.Navigable())
	assert.False(t, layout.Boots.Highlighted())

	s.Scheme().SetKeyboardOnly(true)
	assert.True(t, layout.Boots.Navigable())
	assert.False(t, layout.Boots.Highlighted(), "enabling navigation does not restore the highlight")
}

func TestUpdateIcons_SpecialRules(t *testing.T) {
	tests := []struct {
		name   string
		items  []string
		anchor bool
		want   map[string]bool
	}{
		{
			name:  "boots without upgrade",
			items: []string{ItemBoots},
			want:  map[string]bool{ItemBoots: true, ItemBootsUpgrade: false},
		},
		{
			name:  "upgrade hides boots",
			items: []string{ItemBoots, ItemBootsUpgrade},
			want:  map[string]bool{ItemBoots: false, ItemBootsUpgrade: true},
		},
		{
			name:  "scrap without scroll",
			items: []string{ItemScrollScrap},
			want:  map[string]bool{ItemScrollScrap: true, ItemScroll: false},
		},
		{
			name:  "scroll hides scrap",
			items: []string{ItemScrollScrap, ItemScroll},
			want:  map[string]bool{ItemScrollScrap: false, ItemScroll: true},
		},
		{
			name:  "any oil shows oil",
			items: []string{OilName(4)},
			want:  map[string]bool{ItemOil: true},
		},
		{
			name:  "no oil",
			items: []string{"Oil #5"},
			want:  map[string]bool{ItemOil: false},
		},
		{
			name:   "anchor flag, not item",
			items:  []string{ItemAnchor},
			anchor: false,
			want:   map[string]bool{ItemAnchor: false},
		},
		{
			name:   "anchor collected",
			anchor: true,
			want:   map[string]bool{ItemAnchor: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := inventory.NewPlayer()
			for _, item := range tt.items {
				inv.Add(item, inventory.Village)
			}
			if tt.anchor {
				inv.CollectAnchor()
			}
			s := newTestScreen(DefaultLayout(), inv, controls.Mouse)
			s.UpdateIcons()

			got := map[string]bool{}
			for _, c := range s.Entries() {
				got[c.Key] = c.Visible()
			}
			for key, want := range tt.want {
				assert.Equal(t, want, got[key], key)
			}
		})
	}
}

func TestUpdateIcons_LegendaryCheeseBurger(t *testing.T) {
	inv := inventory.NewPlayer()
	inv.Add(ItemLegendaryCheeseBurger, inventory.Village)
	layout := DefaultLayout()
	s := newTestScreen(layout, inv, controls.Mouse)
	s.UpdateIcons()
	assert.False(t, s.Golden(), "only the MagiTech burger counts")
	assert.Equal(t, "Breadge", layout.Breadge.DisplayName)

	inv.Add(ItemLegendaryCheeseBurger, inventory.MagiTech)
	s.UpdateIcons()
	assert.True(t, s.Golden())
	assert.Equal(t, `Legendary "Burger"`, layout.Breadge.DisplayName)
}

func TestUpdateIcons_MissingOptionalIcons(t *testing.T) {
	inv := inventory.NewPlayer()
	inv.Add(ItemBoots, inventory.Desert)
	inv.CollectAnchor()
	inv.Add(ItemLegendaryCheeseBurger, inventory.MagiTech)

	s := newTestScreen(Layout{}, inv, controls.Controller)
	assert.NotPanics(t, func() {
		s.Enable()
		s.UpdateIcons()
	})
	assert.False(t, s.Golden())
}

func TestSelect_TranslatesName(t *testing.T) {
	tr := Table{
		Collectibles: map[string]string{
			"Breadge":        "Pain",
			"Breadge@Desert": "Pain du désert",
		},
		SpecialItems: map[string]string{"Boots": "Bottes"},
	}
	inv := inventory.NewPlayer()
	layout := DefaultLayout()

	s := NewScreen(layout, inv, controls.NewScheme(controls.Controller), tr,
		WithArea(inventory.Desert), WithLogger(quietLogger()))
	s.Select(layout.Breadge)
	assert.Equal(t, "Pain du désert", s.Text())
	s.Select(layout.Boots)
	assert.Equal(t, "Bottes", s.Text())

	s = NewScreen(layout, inv, controls.NewScheme(controls.Controller), tr,
		WithArea(inventory.Caves), WithLogger(quietLogger()))
	s.Select(layout.Breadge)
	assert.Equal(t, "Pain", s.Text())
	s.Select(layout.Oil)
	assert.Equal(t, "Oil", s.Text())
}

func TestTable_Single(t *testing.T) {
	assert.Equal(t, "Collection", Table{}.Single(KeyCollection))
	assert.Equal(t, "Sammlung", Table{Singles: map[string]string{KeyCollection: "Sammlung"}}.Single(KeyCollection))
	assert.Equal(t, "Other", Table{}.Single("Other"))
}

func TestPair_String(t *testing.T) {
	assert.Equal(t, "Oil", Pair{Original: "Oil"}.String())
	assert.Equal(t, "Huile", Pair{Original: "Oil", Translated: "Huile"}.String())
}
