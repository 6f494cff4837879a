package site

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// rawNode is the on-disk shape shared by both node variants.
type rawNode struct {
	Label string       `yaml:"label"`
	Link  *string      `yaml:"link"`
	Items *[]yaml.Node `yaml:"items"`
}

// UnmarshalYAML decodes the sidebar, choosing the node variant per element.
func (c *SiteConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Title   string      `yaml:"title"`
		Social  Social      `yaml:"social"`
		Sidebar []yaml.Node `yaml:"sidebar"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	nodes, err := DecodeSidebar(raw.Sidebar)
	if err != nil {
		return err
	}
	c.Title = raw.Title
	c.Social = raw.Social
	c.Sidebar = nodes
	return nil
}

// DecodeSidebar converts raw YAML sequence entries into navigation nodes.
// An entry with `link` is a LinkNode, one with `items` a GroupNode; having
// both, neither, or any other key is an error.
func DecodeSidebar(values []yaml.Node) ([]NavNode, error) {
	nodes := make([]NavNode, 0, len(values))
	for i := range values {
		node, err := decodeNode(&values[i])
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func decodeNode(value *yaml.Node) (NavNode, error) {
	if value.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: sidebar entry must be a mapping", value.Line)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		switch key := value.Content[i].Value; key {
		case "label", "link", "items":
		default:
			return nil, fmt.Errorf("line %d: unknown sidebar field %q", value.Content[i].Line, key)
		}
	}
	var raw rawNode
	if err := value.Decode(&raw); err != nil {
		return nil, err
	}
	switch {
	case raw.Link != nil && raw.Items != nil:
		return nil, fmt.Errorf("line %d: sidebar entry %q has both link and items", value.Line, raw.Label)
	case raw.Link != nil:
		return &LinkNode{Label: raw.Label, Link: *raw.Link}, nil
	case raw.Items != nil:
		children, err := DecodeSidebar(*raw.Items)
		if err != nil {
			return nil, err
		}
		return &GroupNode{Label: raw.Label, Items: children}, nil
	default:
		return nil, fmt.Errorf("line %d: sidebar entry %q needs either link or items", value.Line, raw.Label)
	}
}

// MarshalYAML keeps empty groups as `items: []` so they survive a round trip.
func (n *GroupNode) MarshalYAML() (any, error) {
	items := n.Items
	if items == nil {
		items = []NavNode{}
	}
	return struct {
		Label string    `yaml:"label"`
		Items []NavNode `yaml:"items"`
	}{n.Label, items}, nil
}

// MarshalJSON is the JSON counterpart of MarshalYAML.
func (n *GroupNode) MarshalJSON() ([]byte, error) {
	items := n.Items
	if items == nil {
		items = []NavNode{}
	}
	return json.Marshal(struct {
		Label string    `json:"label"`
		Items []NavNode `json:"items"`
	}{n.Label, items})
}

// UnmarshalJSON mirrors UnmarshalYAML for JSON inputs.
func (c *SiteConfig) UnmarshalJSON(data []byte) error {
	var raw struct {
		Title   string            `json:"title"`
		Social  Social            `json:"social"`
		Sidebar []json.RawMessage `json:"sidebar"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	nodes, err := decodeJSONNodes(raw.Sidebar)
	if err != nil {
		return err
	}
	c.Title = raw.Title
	c.Social = raw.Social
	c.Sidebar = nodes
	return nil
}

var errAmbiguousNode = errors.New("sidebar entry needs exactly one of link or items")

func decodeJSONNodes(values []json.RawMessage) ([]NavNode, error) {
	nodes := make([]NavNode, 0, len(values))
	for _, v := range values {
		var raw struct {
			Label string             `json:"label"`
			Link  *string            `json:"link"`
			Items *[]json.RawMessage `json:"items"`
		}
		if err := json.Unmarshal(v, &raw); err != nil {
			return nil, err
		}
		switch {
		case (raw.Link == nil) == (raw.Items == nil):
			return nil, fmt.Errorf("%w: %q", errAmbiguousNode, raw.Label)
		case raw.Link != nil:
			nodes = append(nodes, &LinkNode{Label: raw.Label, Link: *raw.Link})
		default:
			children, err := decodeJSONNodes(*raw.Items)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, &GroupNode{Label: raw.Label, Items: children})
		}
	}
	return nodes, nil
}
