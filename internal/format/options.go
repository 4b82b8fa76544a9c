package format

// Widths are per-construct compact-layout budgets, measured in display
// columns from the construct's start column. A construct whose compact
// rendering exceeds its own budget expands even when the rest of the line
// has room.
type Widths struct {
	Arguments int
	Infix     int
	List      int
	Record    int
	IfElse    int
	Match     int
}

func (w Widths) withDefaults() Widths {
	if w.Arguments == 0 {
		w.Arguments = 60
	}
	if w.Infix == 0 {
		w.Infix = 60
	}
	if w.List == 0 {
		w.List = 50
	}
	if w.Record == 0 {
		w.Record = 50
	}
	if w.IfElse == 0 {
		w.IfElse = 40
	}
	if w.Match == 0 {
		w.Match = 40
	}
	return w
}

// Options controls one format operation.
type Options struct {
	MaxLineWidth       int
	IndentSize         int
	InsertFinalNewline bool
	Widths             Widths
}

// DefaultOptions returns the stock configuration; the config loader starts
// from this and applies overrides.
func DefaultOptions() Options {
	return Options{
		MaxLineWidth:       100,
		IndentSize:         2,
		InsertFinalNewline: true,
		Widths:             Widths{}.withDefaults(),
	}
}

func (o Options) withDefaults() Options {
	if o.MaxLineWidth == 0 {
		o.MaxLineWidth = 100
	}
	if o.IndentSize == 0 {
		o.IndentSize = 2
	}
	o.Widths = o.Widths.withDefaults()
	return o
}
