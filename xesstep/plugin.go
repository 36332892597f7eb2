package xesstep

import (
	"embed"

	"github.com/kbukum/xesmeta/i18n"
)

// PluginID is the identifier the step registers under.
const PluginID = "XESPlugin"

// Resources holds the step icon. Plugin.Image is a path inside it.
//
//go:embed resources/xes.svg
var Resources embed.FS

// Plugin describes the step to the host's step registry.
type Plugin struct {
	ID          string
	Name        string
	Description string
	Category    string
	Image       string
}

// Descriptor returns the registry entry, localized with msgs. A nil msgs
// uses the default bundle.
func Descriptor(msgs i18n.Messages) Plugin {
	if msgs == nil {
		msgs = i18n.Default()
	}
	return Plugin{
		ID:          PluginID,
		Name:        msgs.Get("XESStep.Name"),
		Description: msgs.Get("XESStep.Description"),
		Category:    msgs.Get("XESStep.Category"),
		Image:       "resources/xes.svg",
	}
}
