package ldproxy

import (
	"github.com/codehub-rony/ldproxy-config-generator/internal/errs"
)

// CapabilityFlag names an optional API building block of the generated
// service. The set is closed — an unrecognized flag is a configuration
// error, never silently ignored.
type CapabilityFlag string

const (
	FlagQueryables  CapabilityFlag = "QUERYABLES"
	FlagCRS         CapabilityFlag = "CRS"
	FlagFilter      CapabilityFlag = "FILTER"
	FlagTiles       CapabilityFlag = "TILES"
	FlagStyles      CapabilityFlag = "STYLES"
	FlagProjections CapabilityFlag = "PROJECTIONS"
)

// allFlags lists every recognized flag in the order their building blocks
// appear in the service document.
var allFlags = []CapabilityFlag{
	FlagQueryables,
	FlagCRS,
	FlagFilter,
	FlagTiles,
	FlagStyles,
	FlagProjections,
}

// FlagSet is the set of enabled capability flags for one generation run.
type FlagSet map[CapabilityFlag]bool

// Has reports whether flag is enabled.
func (f FlagSet) Has(flag CapabilityFlag) bool {
	return f[flag]
}

// DefaultFlags enables every recognized building block.
func DefaultFlags() FlagSet {
	set := make(FlagSet, len(allFlags))
	for _, f := range allFlags {
		set[f] = true
	}
	return set
}

// ParseFlags validates the given flag names and returns the enabled set.
// Nil or empty input selects the default (all flags). An unknown name is
// rejected with an invalid-input error naming the flag.
func ParseFlags(names []string) (FlagSet, error) {
	if len(names) == 0 {
		return DefaultFlags(), nil
	}

	valid := make(map[CapabilityFlag]bool, len(allFlags))
	for _, f := range allFlags {
		valid[f] = true
	}

	set := make(FlagSet, len(names))
	for _, name := range names {
		flag := CapabilityFlag(name)
		if !valid[flag] {
			return nil, errs.Newf(errs.ErrKindInvalidInput, "unknown api block %q", name)
		}
		set[flag] = true
	}
	return set, nil
}
