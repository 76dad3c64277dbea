package session

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lehigh-university-libraries/clicklabel/internal/config"
	"github.com/lehigh-university-libraries/clicklabel/internal/images"
	"github.com/lehigh-university-libraries/clicklabel/internal/models"
	"github.com/lehigh-university-libraries/clicklabel/internal/storage"
)

// ErrSessionClosed is returned by operations on a session after Close
var ErrSessionClosed = errors.New("labeling session is closed")

// State of the grid display
type State int

const (
	StateIdle State = iota
	StateDisplaying
)

func (s State) String() string {
	if s == StateDisplaying {
		return "displaying"
	}
	return "idle"
}

// Option customizes a Session
type Option func(*Session)

// WithClock replaces time.Now for timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.clock = now
	}
}

// Session pages through a directory of images and records two-way labels.
// Clicks only mutate the displayed tiles; the result table is updated and
// written to disk when the page turns or the session closes.
type Session struct {
	ID string

	cfg      config.Config
	table    *storage.ResultTable
	seq      *Sequence
	renderer *images.Renderer
	lock     *storage.FileLock
	labels   [2]models.Label

	tiles   []*Tile
	state   State
	closed  bool
	version uint64
	clock   func() time.Time

	mu sync.Mutex
}

// New validates cfg, locks and loads the result file and enumerates the data
// directory. Any failure is a configuration error and nothing is retained.
func New(cfg *config.Config, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	lock, err := storage.AcquireLock(cfg.ResultPath)
	if err != nil {
		return nil, err
	}

	s, err := build(cfg, lock, opts)
	if err != nil {
		if rerr := lock.Release(); rerr != nil {
			slog.Warn("Failed to release result lock", "path", cfg.ResultPath, "error", rerr)
		}
		return nil, err
	}

	slog.Info("Labeling session created",
		"session_id", s.ID,
		"data_dir", cfg.DataDir,
		"result_path", cfg.ResultPath,
		"images", s.seq.Len(),
		"page_size", cfg.PageSize())
	return s, nil
}

func build(cfg *config.Config, lock *storage.FileLock, opts []Option) (*Session, error) {
	table, err := storage.Load(cfg.ResultPath)
	if err != nil {
		return nil, err
	}

	paths, err := images.Enumerate(cfg.DataDir, table.Filenames())
	if err != nil {
		return nil, err
	}

	renderer, err := images.NewRenderer(cfg.Labels, cfg.Colors, cfg.MaxTilePx, cfg.FontSize)
	if err != nil {
		return nil, err
	}

	s := &Session{
		ID:       uuid.New().String(),
		cfg:      *cfg,
		table:    table,
		seq:      NewSequence(paths, cfg.PageSize()),
		renderer: renderer,
		lock:     lock,
		labels:   [2]models.Label{models.Labeled(cfg.Labels[0]), models.Labeled(cfg.Labels[1])},
		clock:    time.Now,
	}
	s.cfg.Labels = append([]string(nil), cfg.Labels...)
	s.cfg.Colors = append([]string(nil), cfg.Colors...)

	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Session) now() string {
	return models.FormatTimestamp(s.clock())
}

// Start shows the first page. Starting an already displaying session is a
// no-op.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	if s.state == StateDisplaying {
		return nil
	}
	s.buildPage()
	return nil
}

// Advance flushes the displayed tiles into the result table, saves it, moves
// the page to the end of the sequence and shows the next page. When idle it
// behaves like Start. If saving fails the page stays displayed and the
// sequence is not rotated.
func (s *Session) Advance() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	if s.state == StateIdle {
		s.buildPage()
		return nil
	}

	if err := s.flush(); err != nil {
		return err
	}
	s.seq.Rotate()
	s.buildPage()

	slog.Info("Page turned", "session_id", s.ID, "page", s.seq.Turns(), "tiles", len(s.tiles))
	return nil
}

// Close flushes the displayed tiles, saves the table and releases the result
// file lock. The session cannot be used afterwards. If saving fails the page
// and the lock are kept so Close can be retried.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	if s.state == StateDisplaying {
		if err := s.flush(); err != nil {
			return err
		}
	}

	s.tiles = nil
	s.state = StateIdle
	s.closed = true
	s.version++

	slog.Info("Labeling session closed", "session_id", s.ID, "records", s.table.Len())
	return s.lock.Release()
}

// Click applies signal to the tile at index. It reports whether a tile
// changed; unknown signals and indexes outside the page are ignored.
func (s *Session) Click(signal Signal, index int) (bool, error) {
	_, changed, err := s.ClickTile(signal, index)
	return changed, err
}

// ClickTile is Click that also returns the changed tile as it was right after
// the click, before any later operation could replace the page.
func (s *Session) ClickTile(signal Signal, index int) (models.TileView, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return models.TileView{}, false, ErrSessionClosed
	}

	var bound models.Label
	switch signal {
	case SignalPrimary:
		bound = s.labels[0]
	case SignalSecondary:
		bound = s.labels[1]
	default:
		return models.TileView{}, false, nil
	}

	if s.state != StateDisplaying || index < 0 || index >= len(s.tiles) {
		return models.TileView{}, false, nil
	}

	tile := s.tiles[index]
	tile.Apply(bound, s.now)
	s.version++
	slog.Debug("Tile clicked", "session_id", s.ID, "tile", index, "signal", signal.String(), "label", tile.Label.String())
	return s.tileView(tile), true, nil
}

// State reports whether a page is displayed
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Tiles returns a copy of the displayed tiles
func (s *Session) Tiles() []Tile {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]Tile, len(s.tiles))
	for i, t := range s.tiles {
		result[i] = *t
	}
	return result
}

// Sequence returns the image paths in their current order
func (s *Session) Sequence() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq.Paths()
}

// Table exposes the result table
func (s *Session) Table() *storage.ResultTable {
	return s.table
}

// Summary counts labels in the result table
func (s *Session) Summary() models.Summary {
	sum := s.table.Summarize()
	sum.ResultPath = s.cfg.ResultPath
	return sum
}

// View describes the displayed page for clients
func (s *Session) View() models.PageView {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := models.PageView{
		SessionID: s.ID,
		Title:     fmt.Sprintf("LEFT CLICK: %s / RIGHT CLICK: %s", s.cfg.Labels[0], s.cfg.Labels[1]),
		Rows:      s.cfg.Rows,
		Columns:   s.cfg.Columns,
		FontSize:  s.cfg.FontSize,
		Page:      s.seq.Turns() + 1,
		Total:     s.seq.Len(),
		Version:   s.version,
		Tiles:     make([]models.TileView, 0, len(s.tiles)),
		Closed:    s.closed,
		Legend: []models.LegendEntry{
			{Button: SignalPrimary.String(), Label: s.cfg.Labels[0], Color: s.renderer.CaptionColor(s.labels[0])},
			{Button: SignalSecondary.String(), Label: s.cfg.Labels[1], Color: s.renderer.CaptionColor(s.labels[1])},
		},
	}

	for _, t := range s.tiles {
		view.Tiles = append(view.Tiles, s.tileView(t))
	}
	return view
}

// tileView describes t for clients. Caller holds mu.
func (s *Session) tileView(t *Tile) models.TileView {
	return models.TileView{
		Index:        t.Index,
		Path:         t.Path,
		Title:        images.Title(t.Path),
		Label:        t.Label.String(),
		Labeled:      t.Label.IsSet(),
		Timestamp:    t.Timestamp,
		Caption:      images.Caption(t.Label),
		CaptionColor: s.renderer.CaptionColor(t.Label),
		ImageURL:     fmt.Sprintf("/api/tiles/%d/image?v=%s", t.Index, url.QueryEscape(t.Label.String())),
	}
}

// RenderTile writes the PNG for the tile at index. ok is false when the index
// is not on the displayed page.
func (s *Session) RenderTile(w io.Writer, index int) (ok bool, err error) {
	s.mu.Lock()
	if index < 0 || index >= len(s.tiles) {
		s.mu.Unlock()
		return false, nil
	}
	tile := *s.tiles[index]
	s.mu.Unlock()

	return true, s.renderer.RenderPNG(w, tile.Path, tile.Label)
}

// buildPage replaces the tiles with fresh ones for the front of the
// sequence. Caller holds mu.
func (s *Session) buildPage() {
	page := s.seq.Page()
	s.tiles = make([]*Tile, 0, len(page))
	for i, p := range page {
		tile := &Tile{Index: i, Path: p}
		if rec, ok := s.table.Get(p); ok {
			tile.Update(rec.Label, rec.Timestamp, s.now)
		} else {
			tile.Update(models.Unlabeled(), "", s.now)
		}
		s.tiles = append(s.tiles, tile)
	}
	s.state = StateDisplaying
	s.version++
}

// flush writes every displayed tile into the table and saves it. Caller
// holds mu.
func (s *Session) flush() error {
	for _, t := range s.tiles {
		s.table.Set(t.Path, t.Label, t.Timestamp)
	}
	if err := s.table.Save(s.cfg.ResultPath); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}
	return nil
}
