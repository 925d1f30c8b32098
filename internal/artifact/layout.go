package artifact

// Inventory names with dedicated screen rules.
const (
	ItemAnchor                = "Anchor"
	ItemBoots                 = "Boots"
	ItemBootsUpgrade          = "Boots Upgrade"
	ItemScroll                = "Scroll of Realigning"
	ItemScrollScrap           = "Scroll Scrap"
	ItemOil                   = "Oil"
	ItemBreadge               = "Breadge"
	ItemSunglasses            = "Sunglasses"
	ItemLegendaryCheeseBurger = "Legendary Cheese Burger"
)

// OilVariants is how many numbered oil collectibles exist ("Oil #1".."Oil #4").
const OilVariants = 4

// Layout is the set of icons a Screen manages. Entries are the icons
// eligible for navigation. The named fields are optional and, when set,
// are usually also listed in Entries.
type Layout struct {
	Entries []*Collectible

	Anchor       *Collectible
	Boots        *Collectible
	BootsUpgrade *Collectible
	Scroll       *Collectible
	ScrollScrap  *Collectible
	Oil          *Collectible
	Breadge      *Collectible
}

// DefaultLayout returns the artifact screen's icons, left to right.
func DefaultLayout() Layout {
	l := Layout{
		Anchor:       NewSpecial("Anchor", ItemAnchor, 0),
		Boots:        NewSpecial("Boots", ItemBoots, 1),
		BootsUpgrade: NewSpecial("Boots Upgrade", ItemBootsUpgrade, 1),
		Scroll:       NewSpecial("Scroll of Realigning", ItemScroll, 2),
		ScrollScrap:  NewSpecial("Scroll Scrap", ItemScrollScrap, 2),
		Breadge:      NewCollectible("Breadge", ItemBreadge, 3),
		Oil:          NewCollectible("Oil", ItemOil, 5),
	}
	sunglasses := NewCollectible("Sunglasses", ItemSunglasses, 4)
	l.Entries = []*Collectible{
		l.Anchor, l.Boots, l.BootsUpgrade, l.Scroll, l.ScrollScrap,
		l.Breadge, sunglasses, l.Oil,
	}
	return l
}
