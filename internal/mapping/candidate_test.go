package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kafkatype/label"
)

type order struct{}

type legacyOrder struct{}

type unrelated struct{}

func TestRegistrySource_Candidates(t *testing.T) {
	reg := label.NewRegistry()
	reg.MustRegister("order", order{})
	reg.MustRegister("unrelated", unrelated{})

	got, err := RegistrySource{Registry: reg}.Candidates([]string{"kafkatype/internal/mapping.order"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "kafkatype/internal/mapping.order", got[0].TypeName)
	assert.Equal(t, "order", got[0].Label)

	got, err = RegistrySource{Registry: reg}.Candidates([]string{"kafkatype/other"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDiscover(t *testing.T) {
	reg := label.NewRegistry()
	reg.MustRegister("order", order{})
	reg.MustRegister("legacy-order", legacyOrder{})

	table, err := Discover(RegistrySource{Registry: reg},
		[]string{"kafkatype/internal/mapping"},
		[]string{"kafkatype/internal/mapping.legacy"})
	require.NoError(t, err)
	assert.Equal(t, "order:kafkatype/internal/mapping.order", table.String())
}

func TestDiscover_RequiresInclude(t *testing.T) {
	_, err := Discover(RegistrySource{Registry: label.NewRegistry()}, nil, nil)
	assert.Error(t, err)
}

func TestDiscover_Collision(t *testing.T) {
	reg := label.NewRegistry()
	reg.MustRegister("order", order{})
	reg.MustRegister("order", legacyOrder{})

	table, err := Discover(RegistrySource{Registry: reg}, []string{"kafkatype/internal/mapping"}, nil)
	assert.Nil(t, table)
	assert.ErrorIs(t, err, label.ErrLabelCollision)
}
