package artifact

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/slider/internal/controls"
	"github.com/roach88/slider/internal/inventory"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestSnapshot_ControllerMidgame(t *testing.T) {
	inv := inventory.NewPlayer()
	inv.Add(ItemBoots, inventory.Desert)
	inv.Add(ItemScrollScrap, inventory.Caves)
	inv.Add(ItemBreadge, inventory.Caves)
	inv.Add(ItemBreadge, inventory.Desert)
	inv.Add(ItemSunglasses, inventory.Ocean)
	inv.Add(OilName(1), inventory.Factory)
	inv.Add(OilName(3), inventory.Factory)
	inv.CollectAnchor()

	s := newTestScreen(DefaultLayout(), inv, controls.Controller, WithArea(inventory.Desert))
	s.Enable()

	newGoldie(t).Assert(t, "controller_midgame", []byte(s.Snapshot()))
}

func TestSnapshot_MouseLategame(t *testing.T) {
	inv := inventory.NewPlayer()
	inv.Add(ItemBoots, inventory.Desert)
	inv.Add(ItemBootsUpgrade, inventory.Military)
	inv.Add(ItemScroll, inventory.Mountain)
	inv.Add(ItemScrollScrap, inventory.Caves)
	inv.Add(ItemLegendaryCheeseBurger, inventory.MagiTech)
	inv.Add(ItemBreadge, inventory.Village)

	s := newTestScreen(DefaultLayout(), inv, controls.Mouse)
	s.Enable()

	newGoldie(t).Assert(t, "mouse_lategame", []byte(s.Snapshot()))
}
