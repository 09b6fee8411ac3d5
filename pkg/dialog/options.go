package dialog

import "github.com/mitchellh/mapstructure"

// DecodeOptions decodes a frame's state (or a Begin options map) into a typed
// struct using mapstructure tags. Unknown keys are ignored so dialogs can keep
// private scratch values alongside their declared options.
func DecodeOptions(options map[string]any, out any) error {
	return mapstructure.WeakDecode(options, out)
}
