// Package styling collects the stylesheets components need so a host page
// can inject them in one place.
package styling

import (
	"sort"
	"strings"
	"sync"
)

// StyleRegistry collects named stylesheets for injection
type StyleRegistry struct {
	mu     sync.RWMutex
	styles map[string]string
}

var globalRegistry = NewRegistry()

// NewRegistry creates an empty registry
func NewRegistry() *StyleRegistry {
	return &StyleRegistry{styles: make(map[string]string)}
}

// Register stores css under name, replacing an earlier sheet with that name.
// Empty sheets are ignored.
func (r *StyleRegistry) Register(name, css string) {
	if css == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.styles[name] = css
}

// CSS returns every sheet ordered by name
func (r *StyleRegistry) CSS() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.styles))
	for name := range r.styles {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		css := r.styles[name]
		b.WriteString(css)
		if !strings.HasSuffix(css, "\n") {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Len returns the number of registered sheets
func (r *StyleRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.styles)
}

// Register adds a stylesheet to the global registry
func Register(name, css string) { globalRegistry.Register(name, css) }

// GetAllCSS returns all globally registered CSS
func GetAllCSS() string { return globalRegistry.CSS() }
