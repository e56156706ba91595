package passdispatch

import (
	"errors"
	"flag"
	"fmt"
	"sort"
	"sync"

	"github.com/lunapnr/pnrcore/design"
)

var (
	// ErrUnknownPass is returned when Dispatch, Help, or ShortHelp names
	// a pass that was never registered.
	ErrUnknownPass = errors.New("passdispatch: unknown pass")
	// ErrDuplicatePass is returned by Register when a name is already taken.
	ErrDuplicatePass = errors.New("passdispatch: duplicate pass name")
	// ErrEmptyName is returned by Register when Pass.Name is empty.
	ErrEmptyName = errors.New("passdispatch: empty pass name")
)

// Pass is one named, dispatchable unit of work (spec §6.2). Flags may
// be nil for a pass that takes no named parameters; when set, Dispatch
// parses rawArgs against it before calling Execute, so `-key value`
// named parameters and bare positional parameters are both handled by
// the standard flag package's own parsing rules.
type Pass struct {
	Name      string
	ShortHelp string
	Help      string
	Flags     *flag.FlagSet
	Execute   func(db *design.Design, positional []string) error
}

// Registry holds the set of passes a command surface can dispatch to.
// Passes are expected to call Register from their own package init(),
// mirroring database/sql.Register's driver-registration idiom.
type Registry struct {
	mu     sync.Mutex
	passes map[string]*Pass
	order  []string
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{passes: make(map[string]*Pass)}
}

// Register adds p to the registry. It is an error to register an
// empty or already-taken name.
func (r *Registry) Register(p Pass) error {
	if p.Name == "" {
		return ErrEmptyName
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.passes[p.Name]; exists {
		return fmt.Errorf("passdispatch: register: %q: %w", p.Name, ErrDuplicatePass)
	}
	cp := p
	r.passes[p.Name] = &cp
	r.order = append(r.order, p.Name)
	return nil
}

// Names returns every registered pass name, sorted.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := append([]string(nil), r.order...)
	sort.Strings(names)
	return names
}

func (r *Registry) lookup(name string) (*Pass, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.passes[name]
	if !ok {
		return nil, fmt.Errorf("passdispatch: %q: %w", name, ErrUnknownPass)
	}
	return p, nil
}

// ShortHelp returns the named pass's one-line summary.
func (r *Registry) ShortHelp(name string) (string, error) {
	p, err := r.lookup(name)
	if err != nil {
		return "", err
	}
	return p.ShortHelp, nil
}

// Help returns the named pass's full help text.
func (r *Registry) Help(name string) (string, error) {
	p, err := r.lookup(name)
	if err != nil {
		return "", err
	}
	return p.Help, nil
}

// Dispatch parses rawArgs against the named pass's flag set (if any)
// and runs its Execute function against db. An unknown pass name, or
// an unknown/missing required named parameter the pass's own flag set
// rejects, is returned as an error rather than run partially.
func (r *Registry) Dispatch(db *design.Design, name string, rawArgs []string) error {
	p, err := r.lookup(name)
	if err != nil {
		return err
	}

	if p.Flags == nil {
		return p.Execute(db, rawArgs)
	}

	if err := p.Flags.Parse(rawArgs); err != nil {
		return fmt.Errorf("passdispatch: %q: %w", name, err)
	}
	return p.Execute(db, p.Flags.Args())
}
