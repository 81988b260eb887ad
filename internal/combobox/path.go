package combobox

import (
	"fmt"
	"strings"

	"github.com/zhubert/combobox/internal/errors"
)

// Record is a loosely typed item, typically decoded from YAML or JSON.
type Record = map[string]any

// Path returns a reader for the dotted field path in a Record, such as
// "name" or "address.state". A missing field reads as "".
func Path(path string) (func(Record) string, error) {
	segments := strings.Split(path, ".")
	for _, s := range segments {
		if s == "" {
			return nil, errors.InvalidPath(path)
		}
	}

	return func(r Record) string {
		var cur any = r
		for _, s := range segments {
			switch m := cur.(type) {
			case map[string]any:
				cur = m[s]
			case map[string]string:
				cur = m[s]
			default:
				return ""
			}
		}
		if cur == nil {
			return ""
		}
		if s, ok := cur.(string); ok {
			return s
		}
		return fmt.Sprint(cur)
	}, nil
}

// PathAccessor builds an Accessor for Records from field paths. An empty
// textPath reads the text from the label path. All three fields are set.
func PathAccessor(valuePath, labelPath, textPath string) (Accessor[Record], error) {
	var acc Accessor[Record]
	var err error
	if acc.Value, err = Path(valuePath); err != nil {
		return acc, err
	}
	if acc.Label, err = Path(labelPath); err != nil {
		return acc, err
	}
	if textPath == "" {
		acc.Text = acc.Label
		return acc, nil
	}
	if acc.Text, err = Path(textPath); err != nil {
		return acc, err
	}
	return acc, nil
}
