package cli

import (
	"fmt"
	"slices"

	"github.com/f3rmion/elshare/bjj"
	"github.com/f3rmion/elshare/bls12381"
	"github.com/f3rmion/elshare/ed25519"
	"github.com/f3rmion/elshare/group"
	"github.com/f3rmion/elshare/secp256k1"
)

var curves = map[string]func() group.Group{
	"bls12-381":  func() group.Group { return &bls12381.G1{} },
	"babyjubjub": func() group.Group { return &bjj.BJJ{} },
	"secp256k1":  func() group.Group { return &secp256k1.Curve{} },
	"ed25519":    func() group.Group { return &ed25519.Curve{} },
}

// SupportedCurves returns the accepted curve names in sorted order.
func SupportedCurves() []string {
	names := make([]string, 0, len(curves))
	for name := range curves {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// LookupCurve returns the group registered under name.
func LookupCurve(name string) (group.Group, error) {
	newGroup, ok := curves[name]
	if !ok {
		return nil, fmt.Errorf("unknown curve: %s (supported: %v)", name, SupportedCurves())
	}
	return newGroup(), nil
}
