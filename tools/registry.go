package tools

import (
	"context"
	"fmt"
	"strings"
)

// Tool is one named research operation exposed to the model for selection.
type Tool struct {
	Name        string
	Description string
	Run         func(ctx context.Context, args map[string]interface{}) (string, error)
}

// Registry is the fixed name-to-tool mapping. Lookup by unknown name fails
// loudly, enumerating every valid name; the executor converts that failure
// into a string result rather than aborting the run.
type Registry struct {
	order []string
	tools map[string]Tool
}

func newRegistry(list []Tool) *Registry {
	r := &Registry{tools: make(map[string]Tool, len(list))}
	for _, t := range list {
		r.order = append(r.order, t.Name)
		r.tools[t.Name] = t
	}
	return r
}

// Get returns the tool registered under name.
func (r *Registry) Get(name string) (Tool, error) {
	t, ok := r.tools[name]
	if !ok {
		return Tool{}, fmt.Errorf("tool %q not found; valid tools: %s", name, strings.Join(r.order, ", "))
	}
	return t, nil
}

// Invoke dispatches a tool call by name.
func (r *Registry) Invoke(ctx context.Context, name string, args map[string]interface{}) (string, error) {
	t, err := r.Get(name)
	if err != nil {
		return "", err
	}
	return t.Run(ctx, args)
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Descriptions renders the "- name: description" list fed to the planner and
// tool-selector prompts.
func (r *Registry) Descriptions() string {
	var b strings.Builder
	for _, name := range r.order {
		fmt.Fprintf(&b, "- %s: %s\n", name, r.tools[name].Description)
	}
	return strings.TrimRight(b.String(), "\n")
}
