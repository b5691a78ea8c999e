package filters

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jcalabro/fpbench"
)

func TestAllReferenceFirst(t *testing.T) {
	all := All()
	require.NotEmpty(t, all)
	require.Equal(t, fpbench.ReferenceName, all[0].Name)

	seen := make(map[string]bool)
	for _, impl := range all {
		require.False(t, seen[impl.Name], "duplicate name %q", impl.Name)
		seen[impl.Name] = true
		require.NotNil(t, impl.New)
	}
}

func TestNames(t *testing.T) {
	require.Equal(t, []string{
		fpbench.ReferenceName,
		BlockedName,
		AtomicBlockedName,
		BitsAndBloomsName,
		AtomicBloomName,
		BlobloomXXH3Name,
		BlobloomXXHashName,
	}, Names())
}

func TestLookup(t *testing.T) {
	impls, err := Lookup(nil)
	require.NoError(t, err)
	require.Len(t, impls, len(All()))

	impls, err = Lookup([]string{BitsAndBloomsName, fpbench.ReferenceName})
	require.NoError(t, err)
	require.Len(t, impls, 2)
	require.Equal(t, BitsAndBloomsName, impls[0].Name)
	require.Equal(t, fpbench.ReferenceName, impls[1].Name)
}

func TestLookupUnknown(t *testing.T) {
	impls, err := Lookup([]string{BlockedName, "cuckoo", "xor"})
	require.ErrorIs(t, err, ErrUnknownFilter)
	require.ErrorContains(t, err, `"cuckoo"`)
	require.ErrorContains(t, err, `"xor"`)
	require.Nil(t, impls)
}
