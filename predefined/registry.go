package predefined

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/signadot/l5x-format/go-l5x/logix"
)

var (
	ErrUnknownType   = errors.New("unknown data type")
	ErrDuplicateType = errors.New("data type already registered")
)

// Type describes a data type the registry can instantiate.
type Type struct {
	Name string
	// New returns a default value of the type.
	New func() logix.Value
	// Block is the parameters element of block backed types.
	Block string
	// FromBlock builds a value over a decoded parameters block.
	FromBlock func(*logix.Block) (logix.Value, error)
}

// Registry maps data type names, case-insensitively, to types.
type Registry struct {
	mu sync.RWMutex

	types  map[string]*Type
	blocks map[string]*Type
}

// NewRegistry creates a registry holding STRING and the predefined types.
func NewRegistry() *Registry {
	reg := &Registry{
		types:  make(map[string]*Type),
		blocks: make(map[string]*Type),
	}
	reg.registerBuiltins()
	return reg
}

var defaultRegistry = NewRegistry()

// Default is the shared registry used when no other is configured.
func Default() *Registry { return defaultRegistry }

func (r *Registry) registerBuiltins() {
	for _, t := range []*Type{
		stringType(logix.StringType, logix.DefaultStringCap),
		{Name: TimerType, New: func() logix.Value { return NewTimer().Structure }},
		{Name: CounterType, New: func() logix.Value { return NewCounter().Structure }},
		{Name: ControlType, New: func() logix.Value { return NewControl().Structure }},
		messageType(),
		alarmDigitalType(),
	} {
		if err := r.Register(t); err != nil {
			panic(err)
		}
	}
}

// Register adds t. Names already registered are rejected.
func (r *Registry) Register(t *Type) error {
	if t.Name == "" || t.New == nil {
		return fmt.Errorf("data type %q needs a name and a constructor", t.Name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToUpper(t.Name)
	if _, exists := r.types[key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateType, t.Name)
	}
	if _, ok := logix.LookupAtomicType(t.Name); ok {
		return fmt.Errorf("%w: %s is atomic", ErrDuplicateType, t.Name)
	}
	r.types[key] = t
	if t.Block != "" {
		r.blocks[t.Block] = t
	}
	return nil
}

// RegisterString adds a user-defined string type of the given capacity.
func (r *Registry) RegisterString(name string, capacity int) error {
	if capacity < 1 || capacity > logix.MaxAxis {
		return fmt.Errorf("%w: string capacity %d", logix.ErrDimensions, capacity)
	}
	return r.Register(stringType(name, capacity))
}

func stringType(name string, capacity int) *Type {
	return &Type{
		Name: name,
		New: func() logix.Value {
			s, err := logix.NewStringType(name, "", capacity)
			if err != nil {
				// RegisterString checked capacity
				panic(err)
			}
			return s
		},
	}
}

// Lookup finds a registered type by name.
func (r *Registry) Lookup(name string) (*Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.types[strings.ToUpper(name)]
	return t, ok
}

// LookupBlock finds the type stored as the parameters element named
// element.
func (r *Registry) LookupBlock(element string) (*Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.blocks[element]
	return t, ok
}

// New returns a default value of the named type, atomic or registered.
func (r *Registry) New(name string) (logix.Value, error) {
	if at, ok := logix.LookupAtomicType(name); ok {
		return logix.Zero(at), nil
	}
	t, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, name)
	}
	return t.New(), nil
}

// StringCap is the capacity of a registered string type.
func (r *Registry) StringCap(name string) (int, bool) {
	t, ok := r.Lookup(name)
	if !ok {
		return 0, false
	}
	s, ok := t.New().(*logix.String)
	if !ok {
		return 0, false
	}
	return s.Cap(), true
}

// Types returns the registered type names, sorted.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]string, 0, len(r.types))
	for _, t := range r.types {
		res = append(res, t.Name)
	}
	slices.Sort(res)
	return res
}
