package options

import (
	"fmt"
	"strings"
)

const unknownStr = "unknown"

// NamingEnum selects how synthesized adapters are named.
type NamingEnum int

const (
	// NamingHash derives a name-based UUID from the bridge spec, stable across registries.
	NamingHash NamingEnum = iota
	// NamingSequence numbers adapters in creation order, stable within one registry.
	NamingSequence
)

// UnmatchedContractEnum is the policy for contract methods without a viable target method.
type UnmatchedContractEnum int

const (
	UnmatchedContractFailFast UnmatchedContractEnum = iota
	UnmatchedContractStub
)

// UnmatchedTargetEnum is the policy for target methods the contract does not declare.
type UnmatchedTargetEnum int

const (
	UnmatchedTargetIgnore UnmatchedTargetEnum = iota
	UnmatchedTargetExpose
)

// EnumPolicy controls how two different enumerations are matched.
type EnumPolicy int

const (
	// EnumStrict requires identical value sets.
	EnumStrict EnumPolicy = iota
	// EnumAllowAdditive requires the target values to be a subset of the proxy values.
	EnumAllowAdditive
	// EnumDefer accepts any same-width pair; missing values fail at call time.
	EnumDefer
)

// ArrayMismatchEnum controls array back-mapping when lengths differ.
type ArrayMismatchEnum int

const (
	ArrayMismatchFail ArrayMismatchEnum = iota
	ArrayMismatchSkipBackMapping
)

// TimingEnum controls when nested bridge specs are resolved.
type TimingEnum int

const (
	TimingEager TimingEnum = iota
	TimingLazy
)

// AccessibilityEnum controls visibility checks on both sides of a spec.
type AccessibilityEnum int

const (
	AccessibilityEnforce AccessibilityEnum = iota
	AccessibilityPublicOnly
	AccessibilityIgnore
)

// SyncEnum is the registry synchronization mode.
type SyncEnum int

const (
	// SyncNone leaves serialization to the caller.
	SyncNone SyncEnum = iota
	// SyncGlobalLock guards lookup and synthesis with one registry-wide mutex.
	SyncGlobalLock
)

var (
	namingNames            = []string{"hash", "sequence"}
	unmatchedContractNames = []string{"fail-fast", "stub"}
	unmatchedTargetNames   = []string{"ignore", "expose"}
	enumPolicyNames        = []string{"strict", "allow-additive", "defer"}
	arrayMismatchNames     = []string{"fail", "allow-without-back-mapping"}
	timingNames            = []string{"eager", "lazy"}
	accessibilityNames     = []string{"enforce", "public-only", "ignore"}
	syncNames              = []string{"none", "global-lock"}
)

func nameOf(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return unknownStr
	}

	return names[i]
}

func parseName(kind string, names []string, text []byte) (int, error) {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	for i, n := range names {
		if n == s {
			return i, nil
		}
	}

	return 0, fmt.Errorf("unknown %s %q (expected one of %s)", kind, s, strings.Join(names, ", "))
}

func (e NamingEnum) String() string { return nameOf(namingNames, int(e)) }

func (e NamingEnum) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

func (e *NamingEnum) UnmarshalText(text []byte) error {
	i, err := parseName("naming strategy", namingNames, text)
	if err != nil {
		return err
	}

	*e = NamingEnum(i)
	return nil
}

func (e UnmatchedContractEnum) String() string { return nameOf(unmatchedContractNames, int(e)) }

func (e UnmatchedContractEnum) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

func (e *UnmatchedContractEnum) UnmarshalText(text []byte) error {
	i, err := parseName("unmatched contract method policy", unmatchedContractNames, text)
	if err != nil {
		return err
	}

	*e = UnmatchedContractEnum(i)
	return nil
}

func (e UnmatchedTargetEnum) String() string { return nameOf(unmatchedTargetNames, int(e)) }

func (e UnmatchedTargetEnum) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

func (e *UnmatchedTargetEnum) UnmarshalText(text []byte) error {
	i, err := parseName("unmatched target method policy", unmatchedTargetNames, text)
	if err != nil {
		return err
	}

	*e = UnmatchedTargetEnum(i)
	return nil
}

func (e EnumPolicy) String() string { return nameOf(enumPolicyNames, int(e)) }

func (e EnumPolicy) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

func (e *EnumPolicy) UnmarshalText(text []byte) error {
	i, err := parseName("enum policy", enumPolicyNames, text)
	if err != nil {
		return err
	}

	*e = EnumPolicy(i)
	return nil
}

func (e ArrayMismatchEnum) String() string { return nameOf(arrayMismatchNames, int(e)) }

func (e ArrayMismatchEnum) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

func (e *ArrayMismatchEnum) UnmarshalText(text []byte) error {
	i, err := parseName("array mismatch policy", arrayMismatchNames, text)
	if err != nil {
		return err
	}

	*e = ArrayMismatchEnum(i)
	return nil
}

func (e TimingEnum) String() string { return nameOf(timingNames, int(e)) }

func (e TimingEnum) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

func (e *TimingEnum) UnmarshalText(text []byte) error {
	i, err := parseName("nested timing", timingNames, text)
	if err != nil {
		return err
	}

	*e = TimingEnum(i)
	return nil
}

func (e AccessibilityEnum) String() string { return nameOf(accessibilityNames, int(e)) }

func (e AccessibilityEnum) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

func (e *AccessibilityEnum) UnmarshalText(text []byte) error {
	i, err := parseName("accessibility mode", accessibilityNames, text)
	if err != nil {
		return err
	}

	*e = AccessibilityEnum(i)
	return nil
}

func (e SyncEnum) String() string { return nameOf(syncNames, int(e)) }

func (e SyncEnum) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

func (e *SyncEnum) UnmarshalText(text []byte) error {
	i, err := parseName("sync mode", syncNames, text)
	if err != nil {
		return err
	}

	*e = SyncEnum(i)
	return nil
}
