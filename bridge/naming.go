package bridge

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"duck-bridge/options"
)

const adapterStem = "Adapter"

var adapterNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("duck-bridge/adapter"))

type namer interface {
	Name(spec Spec) string
}

func newNamer(strategy options.NamingEnum) namer {
	if strategy == options.NamingSequence {
		return newStem(adapterStem, nil)
	}

	return hashNamer{}
}

// hashNamer derives names from the spec, stable across registries.
type hashNamer struct{}

func (hashNamer) Name(spec Spec) string {
	id := uuid.NewSHA1(adapterNamespace, []byte(spec.String()))
	return adapterStem + "_" + strings.ReplaceAll(id.String(), "-", "")
}

// stem numbers names in creation order, skipping taken ones.
// The nil namespace is treated as a free namespace.
type stem struct {
	taken map[string]struct{}
	stem  string
	last  int
}

func newStem(prefix string, namespace map[string]struct{}) *stem {
	return &stem{taken: namespace, stem: prefix}
}

func (s *stem) Name(Spec) string {
	return s.Next()
}

func (s *stem) Next() string {
	if s.taken == nil {
		s.taken = make(map[string]struct{})
	}

	for {
		s.last++
		name := s.stem + strconv.Itoa(s.last)

		if _, ok := s.taken[name]; !ok {
			s.taken[name] = struct{}{}
			return name
		}
	}
}
