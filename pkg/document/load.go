package document

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// MetaSuffix is the extension of Unity sidecar files carrying an asset's guid.
const MetaSuffix = ".meta"

// maxDepth bounds nesting during conversion.
const maxDepth = 256

// maxNodes bounds the number of values built from one document, counting
// every expansion of an alias.
const maxNodes = 1 << 20

// ErrTooLarge is returned when alias expansion exceeds maxNodes.
var ErrTooLarge = errors.New("document expands to too many nodes")

// ErrLoad is matched by every error returned from Load and Parse.
var ErrLoad = errors.New("document load failed")

// ErrEmptyDocument is returned when a file holds no YAML document body.
var ErrEmptyDocument = errors.New("empty document")

// LoadError reports a document that could not be read or parsed.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("loading document: %v", e.Err)
	}
	return fmt.Sprintf("loading %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is makes every LoadError match ErrLoad.
func (e *LoadError) Is(target error) bool { return target == ErrLoad }

// Load reads the Unity YAML file at path. Files ending in MetaSuffix are
// parsed whole; any other file is treated as a serialized asset whose
// preamble and "--- !u!<class> &<id>" marker are dropped first.
func Load(path string) (Value, error) {
	f, err := os.Open(path)
	if err != nil {
		return Value{}, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	v, err := Parse(f, !strings.HasSuffix(path, MetaSuffix))
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
			return Value{}, le
		}
		return Value{}, &LoadError{Path: path, Err: err}
	}
	return v, nil
}

// Parse decodes a single YAML document from r. When unityAsset is set, the
// Unity tag preamble is stripped and only the first object is decoded.
func Parse(r io.Reader, unityAsset bool) (Value, error) {
	body, err := normalize(r, unityAsset)
	if err != nil {
		return Value{}, &LoadError{Err: err}
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return Value{}, &LoadError{Err: ErrEmptyDocument}
	}

	var root yaml.Node
	if err := yaml.Unmarshal(body, &root); err != nil {
		return Value{}, &LoadError{Err: err}
	}
	if root.Kind == 0 {
		return Value{}, &LoadError{Err: ErrEmptyDocument}
	}

	c := &converter{budget: maxNodes}
	v, err := c.fromNode(&root, 0)
	if err != nil {
		return Value{}, &LoadError{Err: err}
	}
	return v, nil
}

// normalize removes the parts of a Unity asset that a generic YAML parser
// rejects: %YAML/%TAG directives and the tagged document start line.
func normalize(r io.Reader, unityAsset bool) ([]byte, error) {
	var out bytes.Buffer
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)

	reading := !unityAsset
	for sc.Scan() {
		line := sc.Text()
		if !reading {
			if strings.HasPrefix(line, "---") {
				reading = true
			}
			continue
		}
		if unityAsset && strings.HasPrefix(line, "---") {
			break
		}
		out.WriteString(line)
		out.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// converter turns a yaml.Node tree into a Value. Aliases are expanded in
// place, so budget is spent per visited node rather than per source node.
type converter struct {
	budget int
}

func (c *converter) fromNode(n *yaml.Node, depth int) (Value, error) {
	if depth > maxDepth {
		return Value{}, fmt.Errorf("document nested deeper than %d levels at line %d", maxDepth, n.Line)
	}
	c.budget--
	if c.budget < 0 {
		return Value{}, fmt.Errorf("%w (limit %d) at line %d", ErrTooLarge, maxNodes, n.Line)
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return NullValue(), nil
		}
		return c.fromNode(n.Content[0], depth+1)

	case yaml.AliasNode:
		return c.fromNode(n.Alias, depth+1)

	case yaml.ScalarNode:
		return fromScalar(n), nil

	case yaml.SequenceNode:
		items := make([]Value, 0, len(n.Content))
		for _, item := range n.Content {
			it, err := c.fromNode(item, depth+1)
			if err != nil {
				return Value{}, err
			}
			items = append(items, it)
		}
		return ArrayValue(items...), nil

	case yaml.MappingNode:
		fields := make([]Field, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			val, err := c.fromNode(n.Content[i+1], depth+1)
			if err != nil {
				return Value{}, err
			}
			fields = append(fields, Field{Key: n.Content[i].Value, Value: val})
		}
		return MapValue(fields...), nil

	default:
		return Value{}, fmt.Errorf("unsupported yaml node kind %d at line %d", n.Kind, n.Line)
	}
}

func fromScalar(n *yaml.Node) Value {
	switch n.ShortTag() {
	case "!!null":
		return NullValue()
	case "!!bool":
		return Value{kind: Bool, text: strings.ToLower(n.Value)}
	case "!!int", "!!float":
		return NumberValue(n.Value)
	default:
		return StringValue(n.Value)
	}
}
