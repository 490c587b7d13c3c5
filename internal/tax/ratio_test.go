package tax

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeRatio(t *testing.T) {
	tests := []struct {
		name    string
		amount  float64
		lotSize int64
		want    Ratio
	}{
		{"amount", 500, 1000, Ratio{Kind: RatioAmount, Value: 0.5}},
		{"lot at threshold", 25, 10, Ratio{Kind: RatioAmount, Value: 2.5}},
		{"lot below threshold", 100, 9, Ratio{Kind: RatioInvalidLotSize}},
		{"small lot", 100, 5, Ratio{Kind: RatioInvalidLotSize}},
		{"zero lot", 100, 0, Ratio{Kind: RatioInvalidLotSize}},
		{"negative lot", 100, -40, Ratio{Kind: RatioInvalidLotSize}},
		{"invalid lot wins over zero tax", 0, 3, Ratio{Kind: RatioInvalidLotSize}},
		{"zero tax", 0, 2000, Ratio{Kind: RatioZeroTaxPaid}},
		{"negative tax", -12.5, 2000, Ratio{Kind: RatioZeroTaxPaid}},
		{"fractional ratio", 1, 40, Ratio{Kind: RatioAmount, Value: 0.025}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeRatio(tt.amount, tt.lotSize))
		})
	}
}

func TestComputeRatioProperties(t *testing.T) {
	amounts := []float64{-100, -0.5, 0, 0.01, 1, 99.99, 5000, 1e9}
	lots := []int64{-1, 0, 1, 9, 10, 11, 1000, 43560, 1 << 40}

	for _, a := range amounts {
		for _, l := range lots {
			got := ComputeRatio(a, l)
			switch {
			case l < 10:
				assert.Equal(t, RatioInvalidLotSize, got.Kind, "amount=%v lot=%v", a, l)
			case a <= 0:
				assert.Equal(t, RatioZeroTaxPaid, got.Kind, "amount=%v lot=%v", a, l)
			default:
				v, ok := got.Amount()
				require.True(t, ok, "amount=%v lot=%v", a, l)
				assert.Equal(t, a/float64(l), v)
			}
		}
	}
}

func TestComputeRatioNaNAmount(t *testing.T) {
	got := ComputeRatio(math.NaN(), 100)
	v, ok := got.Amount()
	require.True(t, ok)
	assert.True(t, math.IsNaN(v))
}

func TestRatioString(t *testing.T) {
	assert.Equal(t, "$ 0.50 / sqft", Ratio{Kind: RatioAmount, Value: 0.5}.String())
	assert.Equal(t, "$ 1.23 / sqft", Ratio{Kind: RatioAmount, Value: 1.2345}.String())
	assert.Equal(t, "Invalid Lot", Ratio{Kind: RatioInvalidLotSize}.String())
	assert.Equal(t, "$0", Ratio{Kind: RatioZeroTaxPaid}.String())
	assert.Equal(t, "RatioKind(7)", Ratio{Kind: RatioKind(7)}.String())
}

func TestRatioAmountOnlyForAmounts(t *testing.T) {
	_, ok := Ratio{Kind: RatioInvalidLotSize, Value: 3}.Amount()
	assert.False(t, ok)
	_, ok = Ratio{Kind: RatioZeroTaxPaid}.Amount()
	assert.False(t, ok)
}

func TestRatioMarshalJSON(t *testing.T) {
	data, err := json.Marshal(Ratio{Kind: RatioAmount, Value: 0.5})
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"amount","value":0.5,"display":"$ 0.50 / sqft"}`, string(data))

	data, err = json.Marshal(Ratio{Kind: RatioZeroTaxPaid})
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"zero_tax_paid","display":"$0"}`, string(data))
}

func TestRatioMarshalJSONNonFinite(t *testing.T) {
	data, err := json.Marshal(Ratio{Kind: RatioAmount, Value: math.NaN()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"amount","value":null,"display":"$ NaN / sqft"}`, string(data))

	data, err = json.Marshal(Ratio{Kind: RatioAmount, Value: math.Inf(1)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"amount","value":null,"display":"$ +Inf / sqft"}`, string(data))
}
