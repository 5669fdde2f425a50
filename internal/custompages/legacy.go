package custompages

// LegacyParent describes a navigation dropdown header that exists only as a
// grouping node. Legacy parents have no backing page; they are synthesized
// at tree build time so that dropdown children registered against them still
// render when no real entry claims the key.
type LegacyParent struct {
	DisplayName string
	SortOrder   int
}

// DefaultLegacyParents maps the historical dropdown keys to their synthetic
// headers. Children pointing at keys outside this map and without a real
// entry are dropped from the tree.
func DefaultLegacyParents() map[string]LegacyParent {
	return map[string]LegacyParent{
		"about":      {DisplayName: "About", SortOrder: 10},
		"governance": {DisplayName: "Governance", SortOrder: 11},
		"visions":    {DisplayName: "Visions", SortOrder: 12},
	}
}
