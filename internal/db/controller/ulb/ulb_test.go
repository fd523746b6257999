package ulb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anighost1/pp-be/internal/db/dbtest"
)

func TestLookups(t *testing.T) {
	db := dbtest.New(t)

	north := dbtest.Ulb(t, db, "North")
	south := dbtest.Ulb(t, db, "South")
	w1 := dbtest.Ward(t, db, "01", north.ID)

	ulbs, err := GetByIDs(db, []uint{south.ID, north.ID, south.ID})
	require.NoError(t, err)
	require.Len(t, ulbs, 2)
	assert.Equal(t, north.ID, ulbs[0].ID)

	_, err = GetByIDs(db, []uint{north.ID, 4242})
	require.ErrorIs(t, err, ErrUlbNotFound)

	wards, err := WardsByIDs(db, []uint{w1.ID})
	require.NoError(t, err)
	require.Len(t, wards, 1)
	assert.Equal(t, "01", wards[0].WardNo)

	_, err = WardsByIDs(db, []uint{4242})
	require.ErrorIs(t, err, ErrWardNotFound)

	empty, err := WardsByIDs(db, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = GetByIDs(nil, []uint{1})
	require.ErrorIs(t, err, ErrDBNil)
}
