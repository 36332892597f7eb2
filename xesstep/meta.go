package xesstep

import (
	"github.com/kbukum/xesmeta/i18n"
	"github.com/kbukum/xesmeta/logger"
	"github.com/kbukum/xesmeta/params"
)

// DefaultOutputField names the appended column until SetOutputField is called.
const DefaultOutputField = "default_pi"

// Meta is the XES export step configuration.
type Meta struct {
	params      *params.Set
	outputField string
	msgs        i18n.Messages
	log         *logger.Logger
}

// Option configures a Meta at construction.
type Option func(*Meta)

// WithMessages sets the message provider used for remarks and log text.
func WithMessages(m i18n.Messages) Option {
	return func(meta *Meta) {
		if m != nil {
			meta.msgs = m
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(meta *Meta) {
		if l != nil {
			meta.log = l
		}
	}
}

// New returns a Meta with every parameter absent and the default output
// field name.
func New(opts ...Option) *Meta {
	m := &Meta{
		params: params.New(),
		msgs:   i18n.Default(),
		log:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.log = m.log.WithComponent("xesstep")
	m.SetDefault()
	return m
}

// SetDefault resets the output field name. Parameters are left alone.
func (m *Meta) SetDefault() {
	m.outputField = DefaultOutputField
}

// OutputField returns the name of the column GetFields appends.
func (m *Meta) OutputField() string { return m.outputField }

// SetOutputField sets the name of the column GetFields appends.
func (m *Meta) SetOutputField(name string) { m.outputField = name }

// Parameters returns a copy of the parameter set.
func (m *Meta) Parameters() *params.Set { return m.params.Clone() }

// SetParameters replaces every parameter with a copy of p. A nil p clears
// them all.
func (m *Meta) SetParameters(p *params.Set) { m.params.Replace(p) }

// Parameter returns the value of one parameter.
func (m *Meta) Parameter(name params.Name) (string, bool) {
	return m.params.Get(name)
}

// SetParameter sets one parameter. Unknown names are rejected.
func (m *Meta) SetParameter(name params.Name, value string) error {
	return m.params.Set(name, value)
}

// Clone returns an independent copy. The message provider and logger are
// shared.
func (m *Meta) Clone() *Meta {
	c := *m
	c.params = m.params.Clone()
	return &c
}
