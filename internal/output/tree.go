package output

import (
	"fmt"
	"strings"

	"github.com/tctrl/cli/internal/schema"
)

const (
	treeEdge  = "├── "
	treeLast  = "└── "
	treeVert  = "│   "
	treeSpace = "    "

	// descriptionColumn is where labels and types start.
	descriptionColumn = 32
)

// TreeOptions controls RenderSchemaTree.
type TreeOptions struct {
	// Params lists each module's params as "@key" leaves before its children.
	Params bool
}

// treeNode is one printable line of the tree.
type treeNode struct {
	name        string
	description string
	children    []*treeNode
}

// RenderSchemaTree renders the module hierarchy of app, in document order,
// with labels and param types aligned in a column.
func RenderSchemaTree(app *schema.AppSchema, opts TreeOptions) string {
	root := &treeNode{name: app.Key + "/", description: app.Label}
	for _, m := range app.Children {
		root.children = append(root.children, moduleTree(m, opts))
	}

	var sb strings.Builder
	sb.WriteString(StyleBold.Render(root.name))
	if root.description != "" {
		sb.WriteString("  ")
		sb.WriteString(StyleDim.Render(root.description))
	}
	sb.WriteString("\n")
	for i, child := range root.children {
		renderTreeNode(&sb, child, "", i == len(root.children)-1)
	}
	return sb.String()
}

func moduleTree(m *schema.ModuleSpec, opts TreeOptions) *treeNode {
	desc := m.Label
	if m.ModuleType != "" {
		desc = strings.TrimSpace(desc + " <" + m.ModuleType + ">")
	}
	node := &treeNode{name: m.Key, description: desc}
	if opts.Params {
		for _, p := range m.Params {
			node.children = append(node.children, &treeNode{
				name:        "@" + p.Key,
				description: paramSummary(p),
			})
		}
	}
	for _, c := range m.Children {
		node.children = append(node.children, moduleTree(c, opts))
	}
	return node
}

// paramSummary renders a param's type, with its component count for
// vectors, followed by its label.
func paramSummary(p *schema.ParamSpec) string {
	typeName := p.Type.String()
	if p.Type == schema.ParamTypeOther && p.OtherType != "" {
		typeName = p.OtherType
	}
	if p.Type.IsVector() {
		typeName = fmt.Sprintf("%s[%d]", typeName, p.Len())
	}
	out := ParamTypeStyle(p.Type).Render(typeName)
	if p.Label != "" {
		out += " " + StyleDim.Render(p.Label)
	}
	return out
}

func renderTreeNode(sb *strings.Builder, node *treeNode, prefix string, isLast bool) {
	connector := treeEdge
	if isLast {
		connector = treeLast
	}

	line := prefix + connector + node.name
	if node.description != "" {
		padding := descriptionColumn - len([]rune(line))
		if padding < 2 {
			padding = 2
		}
		line += strings.Repeat(" ", padding) + node.description
	}
	sb.WriteString(line)
	sb.WriteString("\n")

	childPrefix := prefix + treeVert
	if isLast {
		childPrefix = prefix + treeSpace
	}
	for i, child := range node.children {
		renderTreeNode(sb, child, childPrefix, i == len(node.children)-1)
	}
}
