// Package host provides a reference tiling.Client.
//
// It sizes tiles from Settings, creates tiles under an optional per-frame
// budget, and rebases tile backings onto the current Pile when a tiling is
// promoted to the active tree.
//
//	c := host.NewClient(host.DefaultSettings(), host.WithTileBudget(16))
//	t := tiling.New(1.0, tiling.WithClient(c))
//	t.SetLayerBounds(image.Pt(2048, 8192))
//
//	// Next frame
//	c.BeginFrame()
//	t.CreateTilesFromLayerRect(visible)
package host
