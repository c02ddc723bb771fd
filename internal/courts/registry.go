// Package courts is the read-only registry of courts and tribunals. The
// registry is decoded once from the embedded courts.yaml and never mutated,
// so lookups are safe from any goroutine.
package courts

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed courts.yaml
var courtsYAML []byte

// Court is a value object identifying a court or tribunal.
type Court struct {
	Code  string `yaml:"code" json:"code"`
	Name  string `yaml:"name" json:"name"`
	Param string `yaml:"param" json:"param"`
}

// Registry indexes courts by code and by browse param.
type Registry struct {
	courts  []Court
	byCode  map[string]Court
	byParam map[string]Court
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	r, err := Load(courtsYAML)
	if err != nil {
		panic(fmt.Sprintf("courts: embedded registry is invalid: %v", err))
	}
	return r
})

// Default returns the process-wide registry built from courts.yaml.
func Default() *Registry {
	return defaultRegistry()
}

// Load decodes a YAML list of courts into a Registry.
func Load(data []byte) (*Registry, error) {
	var courts []Court
	if err := yaml.Unmarshal(data, &courts); err != nil {
		return nil, fmt.Errorf("decode courts: %w", err)
	}

	r := &Registry{
		courts:  make([]Court, 0, len(courts)),
		byCode:  make(map[string]Court, len(courts)),
		byParam: make(map[string]Court, len(courts)),
	}
	for _, c := range courts {
		if c.Code == "" {
			return nil, fmt.Errorf("court %q has no code", c.Name)
		}
		if _, dup := r.byCode[c.Code]; dup {
			return nil, fmt.Errorf("duplicate court code %q", c.Code)
		}
		r.courts = append(r.courts, c)
		r.byCode[c.Code] = c
		if c.Param != "" {
			r.byParam[strings.ToLower(c.Param)] = c
		}
	}
	return r, nil
}

// ByCode resolves a court code. Empty or unknown codes return nil.
func (r *Registry) ByCode(code string) *Court {
	c, ok := r.byCode[strings.TrimSpace(code)]
	if !ok {
		return nil
	}
	return &c
}

// ByParam resolves a browse path such as "ewhc/ch". Unknown params return nil.
func (r *Registry) ByParam(param string) *Court {
	c, ok := r.byParam[strings.ToLower(strings.Trim(param, "/"))]
	if !ok {
		return nil
	}
	return &c
}

// All returns the courts in registry order.
func (r *Registry) All() []Court {
	out := make([]Court, len(r.courts))
	copy(out, r.courts)
	return out
}
