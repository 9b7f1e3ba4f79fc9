package zone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func soaRec(serial string) Record {
	return Record{
		Name: "example.com.", TTL: 3600, Class: ClassIN, Type: TypeSOA,
		Data: []string{
			"ns1.example.com.", "root.example.com.",
			serial, "3600", "600", "86400", "1800",
		},
	}
}

func snapshot(records ...Record) *Snapshot {
	return &Snapshot{Origin: "example.com.", DefaultTTL: 3600, Records: records}
}

func TestDiff_SerialOnlyChangeIsSuppressed(t *testing.T) {
	old := snapshot(soaRec("7"), rec36("www.example.com.", 3600, TypeA, "10.0.0.5"))
	updated := snapshot(soaRec("5"), rec36("www.example.com.", 3600, TypeA, "10.0.0.5"))

	changes, err := Diff(old, updated)
	require.NoError(t, err)

	assert.True(t, changes.Empty(), "a serial-only regression must not produce churn")
	assert.Equal(t, uint32(7), changes.Serial, "the old serial wins")

	got, ok := changes.New.SOA()
	require.True(t, ok)
	assert.Equal(t, soaRec("7").Text(), got.Text())
}

func TestDiff_SubstantiveChangeForcesSerialBump(t *testing.T) {
	old := snapshot(soaRec("7"), rec36("www.example.com.", 3600, TypeA, "10.0.0.5"))

	updatedSOA := soaRec("7")
	updatedSOA.Data[6] = "900" // minimum changed alongside the stale serial
	updated := snapshot(updatedSOA, rec36("www.example.com.", 3600, TypeA, "10.0.0.5"))

	changes, err := Diff(old, updated)
	require.NoError(t, err)

	assert.Equal(t, uint32(8), changes.Serial, "non-increasing serial on a real change becomes old+1")
	require.Len(t, changes.Deletions, 1)
	require.Len(t, changes.Additions, 1)
	assert.Equal(t, soaRec("7").Text(), changes.Deletions[0].Text())

	serial, err := changes.Additions[0].SOASerial()
	require.NoError(t, err)
	assert.Equal(t, uint32(8), serial)
}

func TestDiff_NonSOAChangeForcesSerialBump(t *testing.T) {
	// An edited record with an untouched SOA is the everyday case: the
	// serial must still move forward or secondaries never see the change.
	old := snapshot(soaRec("7"), rec36("www.example.com.", 3600, TypeA, "10.0.0.5"))
	updated := snapshot(soaRec("7"), rec36("www.example.com.", 3600, TypeA, "10.0.0.6"))

	changes, err := Diff(old, updated)
	require.NoError(t, err)
	require.False(t, changes.Empty())

	assert.Greater(t, changes.Serial, uint32(7), "serial must strictly exceed the old one")
	assert.Equal(t, uint32(8), changes.Serial)

	got, ok := changes.New.SOA()
	require.True(t, ok)

	serial, err := got.SOASerial()
	require.NoError(t, err)
	assert.Equal(t, uint32(8), serial)
}

func TestDiff_IncreasingSerialIsKept(t *testing.T) {
	old := snapshot(soaRec("7"))
	updated := snapshot(soaRec("2026010100"), rec36("mail.example.com.", 3600, TypeA, "10.0.0.9"))

	changes, err := Diff(old, updated)
	require.NoError(t, err)

	assert.Equal(t, uint32(2026010100), changes.Serial)
	assert.Same(t, updated, changes.New, "an already increasing serial needs no rebuilt snapshot")
}

func TestDiff_InstructionsDeleteBeforeAdd(t *testing.T) {
	old := snapshot(
		soaRec("7"),
		rec36("www.example.com.", 3600, TypeA, "10.0.0.5"),
	)
	updated := snapshot(
		soaRec("8"),
		rec36("www.example.com.", 3600, TypeCNAME, "web.example.com."),
	)

	changes, err := Diff(old, updated)
	require.NoError(t, err)
	require.False(t, changes.Empty())

	instrs := changes.Instructions()
	require.Len(t, instrs, 4)

	seenAdd := false

	for _, in := range instrs {
		if in.Op == OpAdd {
			seenAdd = true
		}

		if in.Op == OpDelete && seenAdd {
			t.Fatal("deletions must all come before additions")
		}
	}
}

func TestDiff_EmptyOldSnapshot(t *testing.T) {
	updated := snapshot(soaRec("1"), rec36("www.example.com.", 3600, TypeA, "10.0.0.5"))

	changes, err := Diff(&Snapshot{}, updated)
	require.NoError(t, err)

	assert.Empty(t, changes.Deletions)
	assert.Len(t, changes.Additions, 2)
	assert.Equal(t, uint32(1), changes.Serial)
}

func TestDiff_NewSnapshotWithoutSOA(t *testing.T) {
	old := snapshot(soaRec("7"))
	updated := snapshot(rec36("www.example.com.", 3600, TypeA, "10.0.0.5"))

	_, err := Diff(old, updated)
	assert.ErrorIs(t, err, ErrNoSOA)
}
