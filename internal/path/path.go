// Package path resolves dotted/bracketed path expressions against decoded
// JSON values.
//
// The syntax mixes dot segments and bracketed segments freely:
//
//	data.items[0].name
//	data["items"][0]['name']
//
// A dot is a separator only outside brackets. A bracketed token that parses
// as an integer becomes an index accessor; anything else is a string key
// with one layer of surrounding quotes stripped. Dot segments are always
// string keys, even when all digits. An index-shaped token applied to an
// object is retried with its literal spelling as a key; a digit-only key
// applied to an array is used as an index. Empty segments are dropped.
package path

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jacoelho/jx/internal/document"
)

// Accessor is a single resolution step: an object key lookup or an array
// index lookup. Key holds the literal token even for index accessors so
// object lookups can fall back to it.
type Accessor struct {
	Key     string
	Index   int
	IsIndex bool
}

func (a Accessor) label() string {
	if a.IsIndex {
		return strconv.Itoa(a.Index)
	}
	return a.Key
}

// Resolution is a successful walk: the resolved value and the labels of
// every accessor applied. An empty path resolves to the root with the
// sentinel trace ["root"].
type Resolution struct {
	Value any
	Trace []string
}

// Parse tokenizes a path expression into accessors.
// An empty or all-whitespace path yields no accessors.
func Parse(path string) []Accessor {
	if strings.TrimSpace(path) == "" {
		return nil
	}

	var accessors []Accessor
	var current strings.Builder
	inBrackets := false

	flushKey := func() {
		if current.Len() > 0 {
			accessors = append(accessors, Accessor{Key: current.String()})
			current.Reset()
		}
	}

	for _, r := range path {
		switch {
		case r == '[':
			flushKey()
			inBrackets = true
		case r == ']':
			if inBrackets && current.Len() > 0 {
				accessors = append(accessors, bracketAccessor(current.String()))
				current.Reset()
			}
			inBrackets = false
		case r == '.' && !inBrackets:
			flushKey()
		default:
			current.WriteRune(r)
		}
	}

	flushKey()

	return accessors
}

// bracketAccessor interprets a bracketed token: integer index if it parses
// as one, otherwise a key with one layer of surrounding quotes removed.
func bracketAccessor(token string) Accessor {
	if index, err := strconv.Atoi(strings.TrimSpace(token)); err == nil {
		return Accessor{Key: token, Index: index, IsIndex: true}
	}
	return Accessor{Key: stripQuotes(token)}
}

func stripQuotes(token string) string {
	if len(token) >= 2 && isQuote(token[0]) && isQuote(token[len(token)-1]) {
		return token[1 : len(token)-1]
	}
	return token
}

func isQuote(c byte) bool {
	return c == '"' || c == '\''
}

// Resolve walks root according to path and returns the resolved value with
// its trace, or an *Error describing the first failing step. Accessors
// after a failure are never visited.
func Resolve(root any, path string) (Resolution, error) {
	accessors := Parse(path)
	if len(accessors) == 0 {
		return Resolution{Value: root, Trace: []string{"root"}}, nil
	}

	current := root
	applied := make([]string, 0, len(accessors))

	for _, accessor := range accessors {
		label := accessor.label()

		switch node := current.(type) {
		case *document.Object:
			value, ok := node.Get(objectKey(accessor))
			if !ok {
				return Resolution{}, keyNotFound(accessor, applied)
			}
			current = value
		case map[string]any:
			value, ok := node[objectKey(accessor)]
			if !ok {
				return Resolution{}, keyNotFound(accessor, applied)
			}
			current = value
		case []any:
			index, err := arrayIndex(accessor)
			if err != nil {
				return Resolution{}, newError(ErrInvalidIndex, applied,
					fmt.Sprintf("invalid array index: %s", label))
			}
			if index < 0 || index >= len(node) {
				return Resolution{}, newError(ErrIndexOutOfRange, applied,
					fmt.Sprintf("index %d out of range (length: %d)", index, len(node)))
			}
			current = node[index]
		default:
			return Resolution{}, newError(ErrTypeMismatch, applied,
				fmt.Sprintf("cannot apply accessor '%s' to value of type %s", label, document.TypeName(current)))
		}

		applied = append(applied, label)
	}

	return Resolution{Value: current, Trace: applied}, nil
}

// objectKey is the key used for object lookups: the literal token, so an
// index-shaped bracket token like [0] still matches a "0" member.
func objectKey(accessor Accessor) string {
	return accessor.Key
}

// arrayIndex is the index used for array lookups: the parsed index for
// index accessors, otherwise the key reparsed as an integer so digit-only
// dot segments still index arrays.
func arrayIndex(accessor Accessor) (int, error) {
	if accessor.IsIndex {
		return accessor.Index, nil
	}
	return strconv.Atoi(strings.TrimSpace(accessor.Key))
}

func keyNotFound(accessor Accessor, applied []string) *Error {
	key := objectKey(accessor)
	dotted := strings.Join(append(append([]string{}, applied...), accessor.label()), ".")
	return newError(ErrKeyNotFound, applied,
		fmt.Sprintf("key '%s' not found at path '%s'", key, dotted))
}
