package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlim/stockroute/pkg/domain/entities"
)

func TestParseBundle(t *testing.T) {
	required, err := parseBundle([]string{"N007=70", "H014=40"})
	require.NoError(t, err)
	assert.Equal(t, map[entities.ItemCode]entities.Quantity{
		"N007": 70,
		"H014": 40,
	}, required)
}

func TestParseBundle_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "missing separator", args: []string{"N007"}},
		{name: "empty item code", args: []string{"=10"}},
		{name: "empty quantity", args: []string{"N007="}},
		{name: "non numeric quantity", args: []string{"N007=many"}},
		{name: "zero quantity", args: []string{"N007=0"}},
		{name: "negative quantity", args: []string{"N007=-3"}},
		{name: "duplicate item", args: []string{"N007=10", "N007=20"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseBundle(tt.args)
			assert.Error(t, err)
		})
	}
}

func TestNewRootCmd_CommandTree(t *testing.T) {
	cmd := NewRootCmd()

	names := make([]string, 0, 3)
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "optimize")
	assert.Contains(t, names, "dispatch")
	assert.Contains(t, names, "stock")
}
