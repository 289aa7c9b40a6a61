package host

import (
	"image"

	"github.com/google/uuid"

	"github.com/gogpu/tiling"
)

// Pile is a snapshot of recorded layer content that tiles rasterize from.
// Each commit produces a new pile; tiles are rebased onto it when their
// tiling becomes active.
type Pile struct {
	id         uuid.UUID
	generation uint64
}

// NewPile returns the first pile of a layer.
func NewPile() *Pile {
	return &Pile{id: uuid.New()}
}

// ID implements tiling.Backing.
func (p *Pile) ID() uuid.UUID {
	return p.id
}

// Generation returns how many commits preceded this pile.
func (p *Pile) Generation() uint64 {
	return p.generation
}

// Next returns the pile of the following commit.
func (p *Pile) Next() *Pile {
	return &Pile{id: uuid.New(), generation: p.generation + 1}
}

// Stats counts the calls a Client served.
type Stats struct {
	Created  int
	Declined int
	Rebased  int
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTileBudget limits how many tiles the client creates between two
// BeginFrame calls. Zero or less means unlimited.
func WithTileBudget(n int) ClientOption {
	return func(c *Client) {
		c.budget = max(n, 0)
	}
}

// WithPile sets the initial pile.
func WithPile(p *Pile) ClientOption {
	return func(c *Client) {
		if p != nil {
			c.pile = p
		}
	}
}

// Client is a tiling.Client backed by Settings and a current Pile.
//
// Thread safety: Client is NOT thread-safe. It is driven by the goroutine
// that owns the tilings it serves.
type Client struct {
	settings Settings
	pile     *Pile

	budget int
	used   int
	stats  Stats
}

var _ tiling.Client = (*Client)(nil)

// NewClient creates a client with the given settings.
func NewClient(settings Settings, opts ...ClientOption) *Client {
	c := &Client{
		settings: settings,
		pile:     NewPile(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Settings returns the sizing limits of the client.
func (c *Client) Settings() Settings {
	return c.settings
}

// BeginFrame resets the per-frame tile budget.
func (c *Client) BeginFrame() {
	c.used = 0
}

// CreateTile implements tiling.TileFactory. It declines once the frame
// budget is spent.
func (c *Client) CreateTile(t *tiling.Tiling, rect image.Rectangle) *tiling.Tile {
	if c.budget > 0 && c.used >= c.budget {
		c.stats.Declined++
		tiling.Logger().Debug("host: tile budget exhausted",
			"tiling", t.ID(), "rect", rect, "budget", c.budget)
		return nil
	}
	c.used++
	c.stats.Created++
	return tiling.NewTile(t.ID(), rect, c.pile)
}

// CalculateTileSize implements tiling.TileSizePolicy.
func (c *Client) CalculateTileSize(current, content image.Point) image.Point {
	return c.settings.CalculateTileSize(current, content)
}

// Pile returns the current pile.
func (c *Client) Pile() *Pile {
	return c.pile
}

// SetPile makes p the current pile. New tiles record from it, and existing
// tiles move to it on their next UpdatePile. A nil pile is ignored.
func (c *Client) SetPile(p *Pile) {
	if p == nil {
		return
	}
	c.pile = p
}

// UpdatePile implements tiling.BackingRebaser.
func (c *Client) UpdatePile(tile *tiling.Tile) {
	if b, ok := tile.Backing().(*Pile); ok && b == c.pile {
		return
	}
	tile.SetBacking(c.pile)
	c.stats.Rebased++
}

// Stats returns the call counters.
func (c *Client) Stats() Stats {
	return c.stats
}
