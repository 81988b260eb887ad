package combobox

import (
	"maps"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Attributes are the accessibility attributes of one element. An absent
// key means the attribute is not set at all, which is different from an
// empty value.
type Attributes map[string]string

// String renders the attributes as sorted key="value" pairs.
func (a Attributes) String() string {
	keys := slices.Sorted(maps.Keys(a))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+`="`+a[k]+`"`)
	}
	return strings.Join(parts, " ")
}

func newElementID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
