package collision

import (
	"errors"
	"fmt"
	"math/bits"
)

// Built-in collision profile names.
const (
	ProfileBlockAll = "BlockAll"
	ProfilePawn     = "Pawn"
	ProfileCamera   = "Camera"
	ProfileLedge    = "Ledge"
)

var ErrTooManyProfiles = errors.New("collision: profile limit reached")

// Profiles maps profile names to category bits. A collider blocks a trace when
// it lists the trace's profile.
type Profiles struct {
	bits  map[string]uint
	order []string
}

// NewProfiles registers the built-in profiles followed by names.
func NewProfiles(names ...string) (*Profiles, error) {
	p := &Profiles{bits: make(map[string]uint)}
	all := append([]string{ProfileBlockAll, ProfilePawn, ProfileCamera, ProfileLedge}, names...)
	for _, name := range all {
		if _, err := p.Register(name); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Register returns the bit for name, allocating one if needed.
func (p *Profiles) Register(name string) (uint, error) {
	if p.bits == nil {
		p.bits = make(map[string]uint)
	}
	if bit, ok := p.bits[name]; ok {
		return bit, nil
	}
	if len(p.order) >= bits.UintSize {
		return 0, fmt.Errorf("register %q: %w", name, ErrTooManyProfiles)
	}
	bit := uint(1) << uint(len(p.order))
	p.bits[name] = bit
	p.order = append(p.order, name)
	return bit, nil
}

func (p *Profiles) Bit(name string) (uint, bool) {
	if p == nil {
		return 0, false
	}
	bit, ok := p.bits[name]
	return bit, ok
}

// Mask ORs the bits of names. Unknown names are reported as an error.
func (p *Profiles) Mask(names []string) (uint, error) {
	var mask uint
	for _, name := range names {
		bit, ok := p.Bit(name)
		if !ok {
			return 0, fmt.Errorf("collision: unknown profile %q", name)
		}
		mask |= bit
	}
	return mask, nil
}
