package vcpu

import (
	"testing"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/require"
)

func TestRegisterFileGetSet(t *testing.T) {
	var rf RegisterFile
	rf.Set(RegA, 0x42)
	rf.Set(RegPC, 0xBEEF)
	require.Equal(t, uint16(0x42), rf.Get(RegA))
	require.Equal(t, uint16(0xBEEF), rf.Get(RegPC))
}

func TestRegisterFileReset(t *testing.T) {
	var rf RegisterFile
	rf.Set(RegJ, 7)
	rf.Reset()
	require.Equal(t, [12]uint16{}, rf.Snapshot())
}

func TestRegisterFileSnapshotIndependence(t *testing.T) {
	var a, b RegisterFile
	a.Set(RegA, 1)
	b.Set(RegA, 1)
	if diff := deep.Equal(a.Snapshot(), b.Snapshot()); diff != nil {
		t.Fatalf("unexpected diff: %v", diff)
	}
	b.Set(RegB, 2)
	if deep.Equal(a.Snapshot(), b.Snapshot()) == nil {
		t.Fatal("expected snapshots to diverge after independent mutation")
	}
}

func TestRegisterIDIsGeneral(t *testing.T) {
	for _, r := range []RegisterID{RegA, RegB, RegC, RegX, RegY, RegZ, RegI, RegJ} {
		require.True(t, r.IsGeneral(), "%s should be general", r)
	}
	for _, r := range []RegisterID{RegPC, RegSP, RegEX, RegIA} {
		require.False(t, r.IsGeneral(), "%s should not be general", r)
	}
}

func TestRegisterIDString(t *testing.T) {
	require.Equal(t, "A", RegA.String())
	require.Equal(t, "IA", RegIA.String())
}
