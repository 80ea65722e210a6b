package parts

import "image/color"

// Store holds every part of the loaded shoe and applies material mutations.
// Setters are idempotent and ignore unknown IDs.
type Store struct {
	parts     map[ID]*Part
	order     []ID
	overrides map[string]color.RGBA
}

func NewStore(overrides map[string]color.RGBA) *Store {
	return &Store{
		parts:     make(map[ID]*Part),
		overrides: overrides,
	}
}

// Add creates the part for a raw mesh name and returns its ID. Adding a name
// that maps to an existing part returns the existing ID unchanged. A blank
// name would collide with NoPart, so it is rejected and NoPart returned.
func (s *Store) Add(name string) ID {
	id := Normalize(name)
	if id == NoPart {
		return NoPart
	}
	if _, found := s.parts[id]; found {
		return id
	}
	s.parts[id] = &Part{
		ID:        id,
		BaseColor: DefaultColor(id, s.overrides),
		Fabric:    IsFabric(id),
	}
	s.order = append(s.order, id)
	return id
}

// Get returns a copy of the part.
func (s *Store) Get(id ID) (Part, bool) {
	p, found := s.parts[id]
	if !found {
		return Part{}, false
	}
	return *p, true
}

func (s *Store) Has(id ID) bool {
	_, found := s.parts[id]
	return found
}

// IDs returns all part IDs in creation order.
func (s *Store) IDs() []ID {
	out := make([]ID, len(s.order))
	copy(out, s.order)
	return out
}

func (s *Store) Len() int {
	return len(s.order)
}

func (s *Store) SetBaseColor(id ID, c color.RGBA) {
	if p, found := s.parts[id]; found {
		p.BaseColor = c
	}
}

func (s *Store) SetEmissive(id ID, c color.RGBA) {
	if p, found := s.parts[id]; found {
		p.Emissive = c
	}
}

func (s *Store) SetTextureMap(id ID, ref TextureRef) {
	if p, found := s.parts[id]; found {
		p.Texture = ref
	}
}

// ListByGroup returns the parts flagged for the group, in creation order.
func (s *Store) ListByGroup(g Group) []ID {
	var out []ID
	for _, id := range s.order {
		p := s.parts[id]
		switch g {
		case GroupFabric:
			if p.Fabric {
				out = append(out, id)
			}
		case GroupNone:
			if !p.Fabric {
				out = append(out, id)
			}
		}
	}
	return out
}

// Highlighted returns the parts whose emissive indicator is set.
func (s *Store) Highlighted() []ID {
	var out []ID
	for _, id := range s.order {
		if s.parts[id].Emissive != (color.RGBA{}) {
			out = append(out, id)
		}
	}
	return out
}
