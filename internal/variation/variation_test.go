// internal/variation/variation_test.go
package variation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

var shirtAttributes = []Attribute{
	{Name: "Size", Values: []string{"S", "M", "L"}},
	{Name: "Color", Values: []string{"Red", "Blue"}},
}

var shirtVariations = []Variation{
	{ID: 1, Attributes: map[string]string{"Size": "S", "Color": "Red"}, Stock: 3},
	{ID: 2, Attributes: map[string]string{"Size": "S", "Color": "Blue"}, Stock: 0},
	{ID: 3, Attributes: map[string]string{"Size": "M", "Color": "Red"}, PriceCents: int64Ptr(3200), Stock: 5},
	{ID: 4, Attributes: map[string]string{"Size": "M", "Color": "Blue"}, Stock: 2},
	{ID: 5, Attributes: map[string]string{"Size": "L", "Color": "Red"}, Stock: 1},
	{ID: 6, Attributes: map[string]string{"Size": "L", "Color": "Blue"}, PriceCents: int64Ptr(0), Stock: 9},
}

func TestResolve(t *testing.T) {
	v, err := Resolve(map[string]string{"Color": "Red", "Size": "M"}, shirtVariations)
	require.NoError(t, err)
	assert.Equal(t, uint(3), v.ID)
}

func TestResolveRoundTrip(t *testing.T) {
	// Every variation's own attribute map resolves back to itself.
	for _, want := range shirtVariations {
		got, err := Resolve(want.Attributes, shirtVariations)
		require.NoError(t, err)
		assert.Equal(t, want.ID, got.ID)
	}
}

func TestResolveNoMatch(t *testing.T) {
	_, err := Resolve(map[string]string{"Size": "XL", "Color": "Red"}, shirtVariations)
	var noMatch *ErrNoMatch
	require.ErrorAs(t, err, &noMatch)
	assert.Equal(t, 0, noMatch.Matches)

	// A partial selection matches nothing either.
	_, err = Resolve(map[string]string{"Size": "M"}, shirtVariations)
	assert.ErrorAs(t, err, &noMatch)
}

func TestResolveDuplicateMatchesRejected(t *testing.T) {
	dup := append([]Variation{}, shirtVariations...)
	dup = append(dup, Variation{ID: 99, Attributes: map[string]string{"Size": "M", "Color": "Red"}})

	_, err := Resolve(map[string]string{"Size": "M", "Color": "Red"}, dup)
	var noMatch *ErrNoMatch
	require.ErrorAs(t, err, &noMatch)
	assert.Equal(t, 2, noMatch.Matches)
}

func TestEffectivePrice(t *testing.T) {
	product := ProductInfo{BasePriceCents: 2900}

	// No variation, or no override: base price.
	assert.Equal(t, int64(2900), EffectivePrice(product, nil))
	assert.Equal(t, int64(2900), EffectivePrice(product, &shirtVariations[0]))

	// Override applies.
	assert.Equal(t, int64(3200), EffectivePrice(product, &shirtVariations[2]))

	// A zero override is a real price, not an absent one.
	assert.Equal(t, int64(0), EffectivePrice(product, &shirtVariations[5]))
}

func TestEffectiveStock(t *testing.T) {
	tracked := ProductInfo{Stock: 10, TrackInventory: true}
	untracked := ProductInfo{Stock: 0, TrackInventory: false}

	assert.Equal(t, 10, EffectiveStock(tracked, nil))
	assert.Equal(t, 3, EffectiveStock(tracked, &shirtVariations[0]))
	assert.Equal(t, 0, EffectiveStock(tracked, &shirtVariations[1]))
	assert.Equal(t, UnboundedStock, EffectiveStock(untracked, nil))
	assert.Equal(t, UnboundedStock, EffectiveStock(untracked, &shirtVariations[1]))
}

func TestInStock(t *testing.T) {
	tracked := ProductInfo{Stock: 10, TrackInventory: true}

	assert.True(t, InStock(tracked, &shirtVariations[0], 3))
	assert.False(t, InStock(tracked, &shirtVariations[0], 4))
	assert.False(t, InStock(tracked, &shirtVariations[1], 1))
	assert.True(t, InStock(ProductInfo{}, nil, 100000))
}

func TestEffectiveImages(t *testing.T) {
	product := ProductInfo{Images: []string{"/p/base.jpg"}}

	assert.Equal(t, []string{"/p/base.jpg"}, EffectiveImages(product, nil))
	assert.Equal(t, []string{"/p/base.jpg"}, EffectiveImages(product, &Variation{}))
	assert.Equal(t, []string{"/p/red.jpg"}, EffectiveImages(product, &Variation{Images: []string{"/p/red.jpg"}}))
}

func TestGenerateCombinations(t *testing.T) {
	combos := GenerateCombinations(shirtAttributes)
	require.Len(t, combos, 6)

	// First attribute varies slowest, last cycles fastest.
	want := []map[string]string{
		{"Size": "S", "Color": "Red"},
		{"Size": "S", "Color": "Blue"},
		{"Size": "M", "Color": "Red"},
		{"Size": "M", "Color": "Blue"},
		{"Size": "L", "Color": "Red"},
		{"Size": "L", "Color": "Blue"},
	}
	assert.Equal(t, want, combos)
}

func TestGenerateCombinationsCompleteness(t *testing.T) {
	attrs := []Attribute{
		{Name: "Size", Values: []string{"S", "M", "L", "XL"}},
		{Name: "Color", Values: []string{"Red", "Blue", "Green"}},
		{Name: "Fit", Values: []string{"Slim", "Regular"}},
	}

	combos := GenerateCombinations(attrs)
	require.Len(t, combos, 4*3*2)

	seen := make(map[string]bool, len(combos))
	for _, c := range combos {
		key := c["Size"] + "|" + c["Color"] + "|" + c["Fit"]
		assert.False(t, seen[key], "duplicate combination %v", c)
		seen[key] = true
		assert.Len(t, c, 3)
	}
}

func TestGenerateCombinationsEdgeCases(t *testing.T) {
	assert.Nil(t, GenerateCombinations(nil))
	assert.Nil(t, GenerateCombinations([]Attribute{{Name: "Size", Values: nil}}))

	single := GenerateCombinations([]Attribute{{Name: "Size", Values: []string{"M"}}})
	assert.Equal(t, []map[string]string{{"Size": "M"}}, single)
}

func TestGenerateCombinationsDeterministic(t *testing.T) {
	assert.Equal(t, GenerateCombinations(shirtAttributes), GenerateCombinations(shirtAttributes))
}

func TestValidateAgainst(t *testing.T) {
	assert.NoError(t, ValidateAgainst(shirtAttributes, shirtVariations))
}

func TestValidateAgainstUndeclaredValue(t *testing.T) {
	bad := []Variation{{ID: 7, Attributes: map[string]string{"Size": "XXL", "Color": "Red"}}}

	err := ValidateAgainst(shirtAttributes, bad)
	var mismatch *ErrAttributeMismatch
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "Size", mismatch.Attribute)
	assert.Equal(t, "XXL", mismatch.Value)
}

func TestValidateAgainstMissingAttribute(t *testing.T) {
	bad := []Variation{{ID: 8, Attributes: map[string]string{"Size": "M"}}}

	err := ValidateAgainst(shirtAttributes, bad)
	var mismatch *ErrAttributeMismatch
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "Color", mismatch.Attribute)
}

func TestValidateAgainstUndeclaredAttribute(t *testing.T) {
	bad := []Variation{{ID: 9, Attributes: map[string]string{"Size": "M", "Color": "Red", "Material": "Cotton"}}}

	err := ValidateAgainst(shirtAttributes, bad)
	var mismatch *ErrAttributeMismatch
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "Material", mismatch.Attribute)
}

func TestValidateAgainstDuplicateVariations(t *testing.T) {
	dup := []Variation{
		{ID: 1, Attributes: map[string]string{"Size": "M", "Color": "Red"}},
		{ID: 2, Attributes: map[string]string{"Color": "Red", "Size": "M"}},
	}

	assert.Error(t, ValidateAgainst(shirtAttributes, dup))
}
