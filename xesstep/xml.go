package xesstep

import (
	"errors"
	"strings"

	apperrors "github.com/kbukum/xesmeta/errors"
	"github.com/kbukum/xesmeta/logger"
	"github.com/kbukum/xesmeta/markup"
	"github.com/kbukum/xesmeta/params"
)

var errNilNode = errors.New("nil step node")

// XML renders every present parameter as a tag, in declaration order.
// Absent parameters produce no tag. If any value cannot be represented the
// whole fragment is discarded.
func (m *Meta) XML() (string, error) {
	var b strings.Builder
	var err error
	m.params.Each(func(name params.Name, value string) {
		if err != nil {
			return
		}
		var tag string
		if tag, err = markup.AddTagValue(name.String(), value); err == nil {
			b.WriteString(tag)
		}
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

// LoadXML reads parameters from the children of node. A parameter whose
// element is missing keeps its current value. Nothing changes unless the
// whole load succeeds; every failure is reported as CONFIG_LOAD_ERROR.
func (m *Meta) LoadXML(node *markup.Node) error {
	if node == nil {
		return apperrors.ConfigLoad(errNilNode)
	}

	loaded := m.params.Clone()
	for _, name := range params.Names() {
		value, ok := node.ChildText(name.String())
		if !ok {
			continue
		}
		if err := loaded.Set(name, value); err != nil {
			return apperrors.ConfigLoad(err)
		}
	}
	m.params = loaded

	m.log.Debug("Loaded step from XML", logger.Fields(logger.FieldCount, loaded.Len()))
	return nil
}

// LoadXMLString parses fragment and loads it.
func (m *Meta) LoadXMLString(fragment string) error {
	node, err := markup.Parse(fragment)
	if err != nil {
		return apperrors.ConfigLoad(err)
	}
	return m.LoadXML(node)
}
