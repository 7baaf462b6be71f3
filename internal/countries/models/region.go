package models

import (
	"fmt"

	dErrors "worldranks/pkg/domain-errors"
)

// Region is the continent-level grouping used by the country API.
type Region string

const (
	RegionAmericas  Region = "Americas"
	RegionAntarctic Region = "Antarctic"
	RegionAfrica    Region = "Africa"
	RegionAsia      Region = "Asia"
	RegionEurope    Region = "Europe"
	RegionOceania   Region = "Oceania"
)

var regionOrder = map[Region]int{
	RegionAmericas:  0,
	RegionAntarctic: 1,
	RegionAfrica:    2,
	RegionAsia:      3,
	RegionEurope:    4,
	RegionOceania:   5,
}

// AllRegions returns every region in declaration order.
func AllRegions() []Region {
	return []Region{RegionAmericas, RegionAntarctic, RegionAfrica, RegionAsia, RegionEurope, RegionOceania}
}

// ParseRegion matches s case-sensitively against the six region names.
func ParseRegion(s string) (Region, error) {
	r := Region(s)
	if !r.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("invalid region %q", s))
	}
	return r, nil
}

func (r Region) IsValid() bool {
	_, ok := regionOrder[r]
	return ok
}

// Ordinal is the declaration index of r, or -1 for an invalid region.
func (r Region) Ordinal() int {
	if i, ok := regionOrder[r]; ok {
		return i
	}
	return -1
}

func (r Region) String() string {
	return string(r)
}

func (r *Region) UnmarshalText(text []byte) error {
	parsed, err := ParseRegion(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
