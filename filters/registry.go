package filters

import (
	"errors"
	"fmt"

	"github.com/jcalabro/fpbench"
)

// ErrUnknownFilter is returned by Lookup for names no implementation has.
var ErrUnknownFilter = errors.New("filters: unknown filter")

// All returns every measurable implementation, the reference filter first.
func All() []fpbench.Implementation[uint64] {
	return []fpbench.Implementation[uint64]{
		fpbench.ReferenceImplementation[uint64](),
		BlockedImplementation(),
		AtomicBlockedImplementation(),
		BitsAndBloomsImplementation(),
		AtomicBloomImplementation(),
		BlobloomImplementation(BlobloomXXH3Name, XXH3),
		BlobloomImplementation(BlobloomXXHashName, XXHash),
	}
}

// Names returns the names of All in order.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, impl := range all {
		names[i] = impl.Name
	}
	return names
}

// Lookup returns the implementations with the given names, in the order
// given. An empty list selects All. Every unknown name is reported.
func Lookup(names []string) ([]fpbench.Implementation[uint64], error) {
	all := All()
	if len(names) == 0 {
		return all, nil
	}

	byName := make(map[string]fpbench.Implementation[uint64], len(all))
	for _, impl := range all {
		byName[impl.Name] = impl
	}

	var (
		out  []fpbench.Implementation[uint64]
		errs []error
	)
	for _, name := range names {
		impl, ok := byName[name]
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownFilter, name))
			continue
		}
		out = append(out, impl)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}
