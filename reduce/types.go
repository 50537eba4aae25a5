package reduce

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/tilereduce/check"
	"github.com/katalvlaran/tilereduce/equiv"
	"github.com/katalvlaran/tilereduce/repair"
	"github.com/katalvlaran/tilereduce/tileset"
)

// Sentinel errors returned by the reduction entry points.
var (
	// ErrOptionViolation indicates an option outside its valid range.
	ErrOptionViolation = errors.New("reduce: option violation")

	// ErrPoolClosed indicates work submitted to a closed Pool.
	ErrPoolClosed = errors.New("reduce: pool is closed")

	// ErrNilTileSet indicates a nil tile set.
	ErrNilTileSet = errors.New("reduce: tile set is nil")
)

// Kind distinguishes tile-pair reduction from glue-pair reduction.
type Kind int

const (
	// KindTiles merges whole tiles, edge by edge.
	KindTiles Kind = iota
	// KindEnds merges individual glues.
	KindEnds
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindTiles:
		return "tiles"
	case KindEnds:
		return "ends"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Key scores a trial result; lower is better.
type Key func(m equiv.Map) int

// GlueCount is the default Key: the number of distinct glue classes.
func GlueCount(m equiv.Map) int { return m.Classes() }

// Rejection reasons counted in Stats.Rejected.
const (
	ReasonStructure      = "structure"
	ReasonStrength       = "strength"
	ReasonSelfComplement = "self_complement"
	ReasonUse            = "use"
	ReasonColor          = "color"
	ReasonLookup         = "lookup"
	ReasonUnresolvable   = "unresolvable"
	ReasonDefect         = "defect"
	ReasonRepair         = "repair"
)

// Stats summarizes one trial.
type Stats struct {
	Candidates int
	Attempted  int
	Accepted   int
	Repaired   int

	// Unchanged counts candidates already merged by an earlier step.
	Unchanged int

	// Rejected counts skipped candidates by reason.
	Rejected map[string]int

	// Chains holds every repair chain started in the trial, in order.
	Chains []*repair.Chain
}

func (s *Stats) reject(reason string) {
	if s.Rejected == nil {
		s.Rejected = make(map[string]int)
	}
	s.Rejected[reason]++
}

// Result is one ranked trial outcome.
type Result struct {
	Trial int
	Map   equiv.Map
	Score int
	Stats Stats

	// TileSet is the projected tile set when WithReturnTileSet was given.
	TileSet *tileset.TileSet
}

// Options configures a reduction.
//
// Preserve      – property names: s1 (always implied), s2, s22, ld, gs.
// Tries         – number of independent trials; must be ≥ 1.
// Threads       – concurrent trials; must be ≥ 1.
// Best          – number of results returned; 0 returns all.
// Key           – ranking function; nil means GlueCount.
// Init          – starting map; nil means identity.
// Seed          – base RNG seed; 0 selects a fixed default.
// Tau           – cooperativity threshold; must be ≥ 1.
// LatticeDepth  – branch depth for ld; must be ≥ 2.
// MaxChain      – repair chain bound; must be ≥ 1.
// Pool          – injected worker pool; nil creates a scoped pool when Threads > 1.
// Logger        – structured logger; nil means slog.Default().
// ReturnTileSet – project each result onto a copy of the input tile set.
type Options struct {
	Preserve      []string
	Tries         int
	Threads       int
	Best          int
	Key           Key
	Init          equiv.Map
	Seed          int64
	Tau           int
	LatticeDepth  int
	MaxChain      int
	Pool          *Pool
	Logger        *slog.Logger
	ReturnTileSet bool
}

// Option represents a functional option for configuring a reduction.
type Option func(*Options)

// DefaultOptions returns the defaults: preserve s22 and ld, 10 tries on one
// thread, best 1, GlueCount key, tau 2, lattice depth 2, chain bound 64.
func DefaultOptions() Options {
	return Options{
		Preserve:     check.DefaultChecks.Names(),
		Tries:        10,
		Threads:      1,
		Best:         1,
		Key:          GlueCount,
		Tau:          2,
		LatticeDepth: check.DefaultLatticeDepth,
		MaxChain:     repair.DefaultMaxChain,
	}
}

// WithPreserve sets the preserved properties, replacing the defaults.
func WithPreserve(names ...string) Option {
	return func(o *Options) { o.Preserve = names }
}

// WithTries sets the number of trials.
func WithTries(n int) Option {
	return func(o *Options) { o.Tries = n }
}

// WithThreads sets the number of concurrent trials.
func WithThreads(n int) Option {
	return func(o *Options) { o.Threads = n }
}

// WithBest sets the number of results returned; 0 returns all.
func WithBest(n int) Option {
	return func(o *Options) { o.Best = n }
}

// WithKey sets the ranking function.
func WithKey(k Key) Option {
	return func(o *Options) { o.Key = k }
}

// WithInitEquiv starts every trial from m instead of the identity map.
func WithInitEquiv(m equiv.Map) Option {
	return func(o *Options) { o.Init = m.Clone() }
}

// WithSeed sets the base RNG seed.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Seed = seed }
}

// WithTau sets the cooperativity threshold.
func WithTau(tau int) Option {
	return func(o *Options) { o.Tau = tau }
}

// WithLatticeDepth sets the lattice-defect branch depth.
func WithLatticeDepth(d int) Option {
	return func(o *Options) { o.LatticeDepth = d }
}

// WithMaxChain bounds repair chains.
func WithMaxChain(n int) Option {
	return func(o *Options) { o.MaxChain = n }
}

// WithPool runs trials on p. The caller keeps ownership and closes it.
func WithPool(p *Pool) Option {
	return func(o *Options) { o.Pool = p }
}

// WithLogger sets the logger for run and trial events.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithReturnTileSet projects every result onto a copy of the tile set.
func WithReturnTileSet() Option {
	return func(o *Options) { o.ReturnTileSet = true }
}

// validate checks ranges and resolves the preserve list.
func (o *Options) validate() (check.Checks, error) {
	switch {
	case o.Tries < 1:
		return 0, fmt.Errorf("%w: tries %d < 1", ErrOptionViolation, o.Tries)
	case o.Threads < 1:
		return 0, fmt.Errorf("%w: threads %d < 1", ErrOptionViolation, o.Threads)
	case o.Best < 0:
		return 0, fmt.Errorf("%w: best %d < 0", ErrOptionViolation, o.Best)
	case o.Tau < 1:
		return 0, fmt.Errorf("%w: tau %d < 1", ErrOptionViolation, o.Tau)
	case o.LatticeDepth < 2:
		return 0, fmt.Errorf("%w: lattice depth %d < 2", ErrOptionViolation, o.LatticeDepth)
	case o.MaxChain < 1:
		return 0, fmt.Errorf("%w: max chain %d < 1", ErrOptionViolation, o.MaxChain)
	}
	checks, err := check.ParsePreserve(o.Preserve)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrOptionViolation, err)
	}
	if o.Key == nil {
		o.Key = GlueCount
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}

	return checks, nil
}
