package symbol

import (
	"fmt"
	"sort"
	"strings"

	"TradeBuddy/internal/model"
)

// Resolver maps company names or free-text tickers to exchange symbols.
type Resolver struct {
	byName map[string]string // display name -> symbol
	byFold map[string]string // lower-cased name -> symbol
}

// NewResolver builds a resolver over the given name->symbol table.
func NewResolver(table map[string]string) *Resolver {
	r := &Resolver{
		byName: make(map[string]string, len(table)),
		byFold: make(map[string]string, len(table)),
	}
	for name, sym := range table {
		r.byName[name] = sym
		r.byFold[strings.ToLower(strings.TrimSpace(name))] = sym
	}
	return r
}

// Default returns a resolver over the built-in NSE large-cap table.
func Default() *Resolver {
	return NewResolver(nseLargeCaps)
}

// Resolve returns the symbol for a known company name, or the trimmed input
// verbatim. Whether the symbol exists is left to the data provider.
func (r *Resolver) Resolve(input string) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", fmt.Errorf("resolve %q: %w", input, model.ErrInvalidSymbol)
	}
	if sym, ok := r.byFold[strings.ToLower(s)]; ok {
		return sym, nil
	}
	if strings.ContainsAny(s, " \t\r\n") {
		return "", fmt.Errorf("resolve %q: contains whitespace: %w", input, model.ErrInvalidSymbol)
	}
	return s, nil
}

// Lookup returns the symbol for an exact company name from Names.
func (r *Resolver) Lookup(name string) (string, bool) {
	sym, ok := r.byName[name]
	return sym, ok
}

// Names lists the known company names in alphabetical order.
func (r *Resolver) Names() []string {
	names := make([]string, 0, len(r.byName))
	for n := range r.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
