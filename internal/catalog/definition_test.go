package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
foods:
  - name: Chicken
    price: 2.33
    nutrients: {protein: 25, carbohydrate: 0, lipid: 7.1, energy: 170.4}
  - name: Cassava
    price: 1.07
    nutrients:
      protein: 0.6
      carbohydrate: 30.1
      lipid: 0.3
      energy: 125.4
`

func TestDecodeYAML(t *testing.T) {
	c, err := Decode([]byte(sampleYAML), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, []string{"Chicken", "Cassava"}, c.Names())
	cassava, err := c.Get("Cassava")
	require.NoError(t, err)
	assert.Equal(t, 30.1, cassava.Amount(Carbohydrate))
}

func TestDecodeJSON(t *testing.T) {
	data := `{"foods":[{"name":"Egg","price":1.59,"nutrients":{"protein":15.6}}]}`

	c, err := Decode([]byte(data), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	_, err := Decode([]byte("foods:\n  - name: A\n    cost: 1\n"), FormatYAML)
	assert.Error(t, err)

	_, err = Decode([]byte(`{"foods":[{"name":"A","cost":1}]}`), FormatJSON)
	assert.Error(t, err)
}

func TestDecodeValidatesThroughNew(t *testing.T) {
	_, err := Decode([]byte("foods: []\n"), FormatYAML)
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestDecodeUnknownFormat(t *testing.T) {
	_, err := Decode([]byte(sampleYAML), "toml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestEncodeRoundTripsDefault(t *testing.T) {
	for _, format := range []string{FormatYAML, FormatJSON} {
		t.Run(format, func(t *testing.T) {
			data, err := Encode(Default(), format)
			require.NoError(t, err)

			c, err := Decode(data, format)
			require.NoError(t, err)
			assert.Equal(t, Default().All(), c.All())
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFromPath("catalog/foods.JSON"))
	assert.Equal(t, FormatYAML, FormatFromPath("foods.yml"))
	assert.Equal(t, FormatYAML, FormatFromPath("foods"))
}
