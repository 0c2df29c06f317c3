package format

import (
	"github.com/yaklabco/mdcheck/pkg/config"
	"github.com/yaklabco/mdcheck/pkg/langdetect"
	"github.com/yaklabco/mdcheck/pkg/mdast"
	"github.com/yaklabco/mdcheck/pkg/style"
)

// OptionsFromConfig resolves formatter options for one file. With the
// consistent list style the marker of the first unordered item wins.
func OptionsFromConfig(cfg *config.Config, snap *mdast.FileSnapshot) Options {
	opts := DefaultOptions()
	if cfg == nil {
		cfg = config.NewConfig()
	}

	if cfg.Style.Headings != "" {
		opts.Headings = cfg.Style.Headings
	}
	if cfg.Style.Bold != "" {
		opts.Strong = cfg.Style.Bold
	}
	opts.SpacesAfterMarker = cfg.SpacesAfterListMarker()
	opts.CodeLanguage = cfg.CodeBlockLanguage()

	if marker := cfg.Style.UnorderedLists.Marker(); marker != 0 {
		opts.ListMarker = marker
	} else if snap != nil {
		opts.ListMarker = firstBullet(snap)
	}

	if cfg.Fmt.DetectCodeLanguage {
		opts.Languages = langdetect.New(opts.CodeLanguage)
	}
	return opts
}

func firstBullet(snap *mdast.FileSnapshot) byte {
	item := mdast.FindFirst(snap.Root, func(n *mdast.Node) bool {
		return n.Kind == mdast.NodeListItem && n.Parent != nil && !n.Parent.IsOrderedList()
	})
	if item == nil {
		return style.DefaultMarker
	}
	return style.Marker(item, snap.Source())
}
