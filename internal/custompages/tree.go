package custompages

import (
	"slices"
	"strings"

	"github.com/memberweb/cms/internal/navigation"
	"github.com/memberweb/cms/pkg/interfaces"
)

// TreeNode is one rendered navigation node. Synthetic nodes are legacy
// dropdown headers materialized from the static parent table rather than a
// CustomPage row.
type TreeNode struct {
	PageKey        string      `json:"page_key"`
	DisplayName    string      `json:"display_name"`
	NavigationType string      `json:"navigation_type"`
	ParentPageKey  string      `json:"parent_page_key,omitempty"`
	SortOrder      int         `json:"sort_order"`
	RequiredRoles  []string    `json:"required_roles,omitempty"`
	URL            string      `json:"url,omitempty"`
	Synthetic      bool        `json:"synthetic,omitempty"`
	Children       []*TreeNode `json:"children,omitempty"`
}

// TreeOptions tune a BuildTree call. Zero value builds without URLs and with
// the default legacy parent table.
type TreeOptions struct {
	LegacyParents map[string]LegacyParent
	URLResolver   URLResolver
	Logger        interfaces.Logger
}

// BuildTree nests eligible pages into the public navigation tree. Only pages
// with isActive and showInNavigation set participate; pages with a parent key
// attach under the matching top-level page, or under a synthesized legacy
// header when the key appears in the legacy parent table. Children naming an
// unknown parent are dropped rather than surfaced as an error.
//
// Authorization is not applied here; run the result through FilterTree.
func BuildTree(pages []*CustomPage, opts TreeOptions) []*TreeNode {
	legacy := opts.LegacyParents
	if legacy == nil {
		legacy = DefaultLegacyParents()
	}

	var topLevel []*CustomPage
	childrenByParent := map[string][]*CustomPage{}
	for _, page := range pages {
		if page == nil || !page.IsActive || !page.ShowInNavigation {
			continue
		}
		if page.ParentPageKey == "" {
			topLevel = append(topLevel, page)
			continue
		}
		childrenByParent[page.ParentPageKey] = append(childrenByParent[page.ParentPageKey], page)
	}

	var nodes []*TreeNode
	for _, page := range topLevel {
		node := nodeFromPage(page, opts.URLResolver)
		node.Children = childNodes(childrenByParent[page.PageKey], opts.URLResolver)
		delete(childrenByParent, page.PageKey)
		nodes = append(nodes, node)
	}

	for key, parent := range legacy {
		matched := childrenByParent[key]
		if len(matched) == 0 {
			continue
		}
		delete(childrenByParent, key)
		nodes = append(nodes, &TreeNode{
			PageKey:        key,
			DisplayName:    parent.DisplayName,
			NavigationType: NavigationTypeMain,
			SortOrder:      parent.SortOrder,
			Synthetic:      true,
			Children:       childNodes(matched, opts.URLResolver),
		})
	}

	if opts.Logger != nil {
		for key, orphans := range childrenByParent {
			for _, page := range orphans {
				opts.Logger.Warn("navigation tree dropped orphan child",
					"page_key", page.PageKey, "parent_page_key", key)
			}
		}
	}

	sortNodes(nodes)
	return nodes
}

// FilterTree removes nodes the viewer may not see, applying the role rule
// recursively. Synthetic headers disappear when every child is filtered out.
func FilterTree(nodes []*TreeNode, viewer navigation.Viewer) []*TreeNode {
	var visible []*TreeNode
	for _, node := range nodes {
		if node == nil {
			continue
		}
		if len(node.RequiredRoles) > 0 {
			if !viewer.IsAuthenticated || !viewer.HasAnyRole(node.RequiredRoles) {
				continue
			}
		}
		kept := *node
		kept.Children = FilterTree(node.Children, viewer)
		if kept.Synthetic && len(kept.Children) == 0 {
			continue
		}
		visible = append(visible, &kept)
	}
	return visible
}

func nodeFromPage(page *CustomPage, resolver URLResolver) *TreeNode {
	node := &TreeNode{
		PageKey:        page.PageKey,
		DisplayName:    page.DisplayName,
		NavigationType: page.NavigationType,
		ParentPageKey:  page.ParentPageKey,
		SortOrder:      page.SortOrder,
		RequiredRoles:  page.RoleList(),
	}
	if resolver != nil {
		node.URL = resolver.PageURL(page.PageKey)
	}
	return node
}

func childNodes(pages []*CustomPage, resolver URLResolver) []*TreeNode {
	nodes := make([]*TreeNode, 0, len(pages))
	for _, page := range pages {
		nodes = append(nodes, nodeFromPage(page, resolver))
	}
	sortNodes(nodes)
	return nodes
}

func sortNodes(nodes []*TreeNode) {
	slices.SortStableFunc(nodes, func(a, b *TreeNode) int {
		if a.SortOrder != b.SortOrder {
			return a.SortOrder - b.SortOrder
		}
		return strings.Compare(a.DisplayName, b.DisplayName)
	})
}
