package notion

import (
	"context"
	"fmt"
	"strings"
)

// SuppressedBlockKinds are the binary/media block kinds that render to an
// empty string instead of markdown. Their content is intentionally dropped.
var SuppressedBlockKinds = map[string]struct{}{
	"image":        {},
	"video":        {},
	"file":         {},
	"pdf":          {},
	"embed":        {},
	"bookmark":     {},
	"link_preview": {},
	"audio":        {},
}

// BlockFetcher is the capability required to walk a page's content.
type BlockFetcher interface {
	BlockChildren(ctx context.Context, blockID, cursor string) (*BlockList, error)
}

// MarkdownConverter flattens a page body into plain markdown text.
type MarkdownConverter struct {
	blocks BlockFetcher
}

func NewMarkdownConverter(client *Client) *MarkdownConverter {
	return &MarkdownConverter{blocks: client}
}

// NewMarkdownConverterWith builds a converter over any block capability.
func NewMarkdownConverterWith(blocks BlockFetcher) *MarkdownConverter {
	return &MarkdownConverter{blocks: blocks}
}

// ToMarkdown renders the full block tree of a page, depth-first, one line
// per block. Suppressed kinds and unrecognized kinds contribute nothing.
func (m *MarkdownConverter) ToMarkdown(ctx context.Context, pageID string) (string, error) {
	lines, err := m.renderChildren(ctx, pageID, 0)
	if err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}

func (m *MarkdownConverter) renderChildren(ctx context.Context, blockID string, depth int) ([]string, error) {
	// Guard against pathological nesting.
	if depth > 8 {
		return nil, nil
	}

	var lines []string
	cursor := ""
	for {
		list, err := m.blocks.BlockChildren(ctx, blockID, cursor)
		if err != nil {
			return nil, err
		}

		for _, block := range list.Blocks {
			if line, ok := renderBlock(block); ok {
				lines = append(lines, indent(line, depth))
			}
			if block.HasChildren {
				children, err := m.renderChildren(ctx, block.ID, depth+1)
				if err != nil {
					return nil, err
				}
				lines = append(lines, children...)
			}
		}

		if !list.HasMore {
			break
		}
		cursor = list.NextCursor
	}
	return lines, nil
}

func renderBlock(block Block) (string, bool) {
	if _, suppressed := SuppressedBlockKinds[block.Type]; suppressed {
		return "", false
	}

	switch block.Type {
	case "paragraph":
		return contentText(block.Paragraph), true
	case "heading_1":
		return "# " + contentText(block.Heading1), true
	case "heading_2":
		return "## " + contentText(block.Heading2), true
	case "heading_3":
		return "### " + contentText(block.Heading3), true
	case "bulleted_list_item":
		return "- " + contentText(block.Bulleted), true
	case "numbered_list_item":
		return "1. " + contentText(block.Numbered), true
	case "to_do":
		mark := " "
		text := ""
		if block.ToDo != nil {
			if block.ToDo.Checked {
				mark = "x"
			}
			text = PlainText(block.ToDo.RichText)
		}
		return fmt.Sprintf("- [%s] %s", mark, text), true
	case "toggle":
		return contentText(block.Toggle), true
	case "quote":
		return "> " + contentText(block.Quote), true
	case "callout":
		return "> " + contentText(block.Callout), true
	case "code":
		if block.Code == nil {
			return "", false
		}
		return fmt.Sprintf("```%s\n%s\n```", block.Code.Language, PlainText(block.Code.RichText)), true
	case "divider":
		return "---", true
	default:
		return "", false
	}
}

func contentText(content *BlockContent) string {
	if content == nil {
		return ""
	}
	return PlainText(content.RichText)
}

func indent(line string, depth int) string {
	if depth == 0 {
		return line
	}
	return strings.Repeat("  ", depth) + line
}
