package capsule

import (
	"fmt"
	"strings"
)

// Markdown renders a capsule as a day-by-day outfit list followed by a
// checkbox packing list.
func Markdown(title string, c *TripCapsule) string {
	var sb strings.Builder
	if title != "" {
		fmt.Fprintf(&sb, "# %s\n\n", title)
	}

	sb.WriteString("## Outfits\n\n")
	if len(c.Outfits) == 0 {
		sb.WriteString("_No outfits._\n\n")
	}
	for _, o := range c.Outfits {
		fmt.Fprintf(&sb, "### %s", o.DayLabel)
		if o.Occasion != "" {
			fmt.Fprintf(&sb, " (%s)", o.Occasion)
		}
		sb.WriteString("\n\n")
		for _, it := range o.Items {
			fmt.Fprintf(&sb, "- %s\n", itemLine(it))
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "## Packing list (%d items)\n\n", c.ItemCount())
	for _, g := range c.PackingList {
		fmt.Fprintf(&sb, "### %s\n\n", g.Category)
		for _, it := range g.Items {
			box := " "
			if it.Packed {
				box = "x"
			}
			fmt.Fprintf(&sb, "- [%s] %s\n", box, itemLine(it))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func itemLine(it PackingItem) string {
	line := it.Name
	if it.Color != "" {
		line += " · " + it.Color
	}
	if it.LocationLabel != "" {
		line += " _(" + it.LocationLabel + ")_"
	}
	return line
}
