package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/Cyclone1070/editkit/internal/tool"
)

// Tool is a named operation callable with a map of arguments.
type Tool interface {
	Name() string
	Declaration() tool.Declaration
	Execute(ctx context.Context, args map[string]any) (string, error)
}

// Registry dispatches calls to tools by name.
type Registry struct {
	tools map[string]Tool
}

// NewRegistry creates a Registry holding tools.
func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{tools: make(map[string]Tool)}
	for _, t := range tools {
		r.Register(t)
	}
	return r
}

// Register adds t, replacing any tool with the same name.
func (r *Registry) Register(t Tool) {
	r.tools[t.Name()] = t
}

// Declarations returns every tool declaration sorted by name.
func (r *Registry) Declarations() []tool.Declaration {
	decls := make([]tool.Declaration, 0, len(r.tools))
	for _, t := range r.tools {
		decls = append(decls, t.Declaration())
	}
	sort.Slice(decls, func(i, j int) bool {
		return decls[i].Name < decls[j].Name
	})
	return decls
}

// Execute runs the named tool. Unknown tools and bad arguments are reported
// as text so the caller can correct the call.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) string {
	t, ok := r.tools[name]
	if !ok {
		declsJSON, _ := json.MarshalIndent(r.Declarations(), "", "  ")
		return fmt.Sprintf("Error: tool %q does not exist.\n\nAvailable tools:\n%s", name, declsJSON)
	}

	out, err := t.Execute(ctx, args)
	if err != nil {
		declJSON, _ := json.MarshalIndent(t.Declaration(), "", "  ")
		return fmt.Sprintf("Error: invalid arguments for tool %q: %v\n\nExpected schema:\n%s", name, err, declJSON)
	}
	return out
}
