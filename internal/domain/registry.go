package domain

// ParameterConfig describes one measured variable and the icon sub-shape bound to it.
type ParameterConfig struct {
	ID          string // icon sub-shape id
	Key         string // raw variable key matched against campaign variables
	FamilyID    string
	Name        Text
	Color       string
	Description Text
}

// FamilyConfig groups parameters for legends and the first highlight level.
type FamilyConfig struct {
	ID   string
	Name Text
}

// VesselConfig describes a research vessel.
type VesselConfig struct {
	Code        string
	Name        string
	Color       string
	Description Text
}

// Registry is the read-only catalog of parameters, families and vessels.
// It is built once at load time and shared by every render and interaction.
type Registry struct {
	paramIDs    []string
	params      map[string]ParameterConfig
	byKey       map[string]string
	familyIDs   []string
	families    map[string]FamilyConfig
	vesselCodes []string
	vessels     map[string]VesselConfig
}

// NewRegistry indexes the given entries, keeping their order. Later entries
// with a duplicate id replace earlier ones in place.
func NewRegistry(params []ParameterConfig, families []FamilyConfig, vessels []VesselConfig) *Registry {
	r := &Registry{
		params:   make(map[string]ParameterConfig, len(params)),
		byKey:    make(map[string]string, len(params)),
		families: make(map[string]FamilyConfig, len(families)),
		vessels:  make(map[string]VesselConfig, len(vessels)),
	}
	for _, p := range params {
		if _, ok := r.params[p.ID]; !ok {
			r.paramIDs = append(r.paramIDs, p.ID)
		}
		r.params[p.ID] = p
		if _, ok := r.byKey[p.Key]; !ok {
			r.byKey[p.Key] = p.ID
		}
	}
	for _, f := range families {
		if _, ok := r.families[f.ID]; !ok {
			r.familyIDs = append(r.familyIDs, f.ID)
		}
		r.families[f.ID] = f
	}
	for _, v := range vessels {
		if _, ok := r.vessels[v.Code]; !ok {
			r.vesselCodes = append(r.vesselCodes, v.Code)
		}
		r.vessels[v.Code] = v
	}
	return r
}

// Parameters returns every parameter in registry order.
func (r *Registry) Parameters() []ParameterConfig {
	out := make([]ParameterConfig, 0, len(r.paramIDs))
	for _, id := range r.paramIDs {
		out = append(out, r.params[id])
	}
	return out
}

// Parameter looks up a parameter by sub-shape id.
func (r *Registry) Parameter(id string) (ParameterConfig, bool) {
	p, ok := r.params[id]
	return p, ok
}

// ParameterByKey looks up the first parameter bound to a raw variable key.
func (r *Registry) ParameterByKey(key string) (ParameterConfig, bool) {
	id, ok := r.byKey[key]
	if !ok {
		return ParameterConfig{}, false
	}
	return r.params[id], true
}

// ParametersInFamily returns the parameters of a family in registry order.
func (r *Registry) ParametersInFamily(familyID string) []ParameterConfig {
	var out []ParameterConfig
	for _, id := range r.paramIDs {
		if p := r.params[id]; p.FamilyID == familyID {
			out = append(out, p)
		}
	}
	return out
}

// Families returns every family in registry order.
func (r *Registry) Families() []FamilyConfig {
	out := make([]FamilyConfig, 0, len(r.familyIDs))
	for _, id := range r.familyIDs {
		out = append(out, r.families[id])
	}
	return out
}

// Family looks up a family by id.
func (r *Registry) Family(id string) (FamilyConfig, bool) {
	f, ok := r.families[id]
	return f, ok
}

// Vessels returns every vessel in registry order.
func (r *Registry) Vessels() []VesselConfig {
	out := make([]VesselConfig, 0, len(r.vesselCodes))
	for _, code := range r.vesselCodes {
		out = append(out, r.vessels[code])
	}
	return out
}

// Vessel looks up a vessel by code.
func (r *Registry) Vessel(code string) (VesselConfig, bool) {
	v, ok := r.vessels[code]
	return v, ok
}
