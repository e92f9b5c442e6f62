package csvsource

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BayerSe/expected-shortfall-backtesting/pkg/mapping"
	"github.com/BayerSe/expected-shortfall-backtesting/pkg/types"
)

const rejectionRatesCSV = `,null_model,sample_size,model,backtest,one_sided,sig_lev,rej_rate
0,NM1,500,Oracle,cc_pvalue_twosided_general,False,0.05,0.05
1,NM1,500,Historical_Simulation,cc_pvalue_twosided_general,False,0.05,0.42
2,NM1,500.0,Oracle,esr3_misspec_pvalue_onesided_asymptotic,True,0.01,
`

func TestNewFrame(t *testing.T) {
	f, err := NewFrame("rates.csv", strings.NewReader(rejectionRatesCSV))
	require.NoError(t, err)
	assert.Equal(t, 3, f.Len())
	assert.Equal(t, "index", f.Header[0])
	assert.True(t, f.HasColumn("rej_rate"))
	assert.False(t, f.HasColumn("value"))

	_, err = f.Column("value")
	assert.True(t, errors.Is(err, ErrMissingColumn))

	_, err = NewFrame("empty.csv", strings.NewReader(""))
	assert.True(t, errors.Is(err, ErrEmptyFile))
}

func TestDecode_RejectionRates(t *testing.T) {
	f, err := NewFrame("rates.csv", strings.NewReader(rejectionRatesCSV))
	require.NoError(t, err)

	rates, err := Decode(f, NewRejectionRateDecoder(mapping.Default))
	require.NoError(t, err)
	require.Len(t, rates, 3)

	assert.Equal(t, types.RejectionRate{
		NullModel:  "NM1",
		SampleSize: 500,
		Model:      "Oracle",
		Backtest:   mapping.GeneralCC,
		OneSided:   false,
		SigLev:     0.05,
		RejRate:    0.05,
	}, rates[0])
	assert.Equal(t, 0.42, rates[1].RejRate)
	assert.Equal(t, 500, rates[2].SampleSize)
	assert.True(t, rates[2].OneSided)
	assert.Equal(t, mapping.IntESRM, rates[2].Backtest)
	assert.True(t, math.IsNaN(rates[2].RejRate))
}

func TestDecode_Failures(t *testing.T) {
	tests := []struct {
		name string
		give string
		err  error
	}{
		{
			name: "unmapped backtest",
			give: "null_model,sample_size,model,backtest,one_sided,sig_lev,rej_rate\nNM1,500,Oracle,foo,False,0.05,0.05\n",
			err:  mapping.ErrUnmappedIdentifier,
		},
		{
			name: "missing column",
			give: "null_model,sample_size,model,backtest,one_sided,sig_lev\nNM1,500,Oracle,er_pvalue_twosided_simple,False,0.05\n",
			err:  ErrMissingColumn,
		},
		{
			name: "invalid bool",
			give: "null_model,sample_size,model,backtest,one_sided,sig_lev,rej_rate\nNM1,500,Oracle,er_pvalue_twosided_simple,maybe,0.05,0.05\n",
			err:  ErrInvalidValue,
		},
		{
			name: "fractional sample size",
			give: "null_model,sample_size,model,backtest,one_sided,sig_lev,rej_rate\nNM1,500.5,Oracle,er_pvalue_twosided_simple,False,0.05,0.05\n",
			err:  ErrInvalidValue,
		},
		{
			name: "invalid float",
			give: "null_model,sample_size,model,backtest,one_sided,sig_lev,rej_rate\nNM1,500,Oracle,er_pvalue_twosided_simple,False,five,0.05\n",
			err:  ErrInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFrame("rates.csv", strings.NewReader(tt.give))
			require.NoError(t, err)

			_, err = Decode(f, NewRejectionRateDecoder(mapping.Default))
			assert.True(t, errors.Is(err, tt.err), "got %v", err)
			assert.Contains(t, err.Error(), "rates.csv")
		})
	}
}

func TestDecode_PowerRecordsWithoutOptionalColumns(t *testing.T) {
	data := "set,model_index,one_sided,backtest,value,alpha1,shape\n1,10,True,er_pvalue_onesided_simple,0.1,0.05,5.0\n"
	f, err := NewFrame("power.csv", strings.NewReader(data))
	require.NoError(t, err)

	records, err := Decode(f, NewPowerRecordDecoder(mapping.Default))
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, 1, r.Set)
	assert.Equal(t, 10, r.ModelIndex)
	assert.Equal(t, mapping.ER, r.Backtest)
	assert.Equal(t, 0.05, r.Get(types.SweepARCH))
	assert.Equal(t, 5.0, r.Get(types.SweepShape))
	assert.True(t, math.IsNaN(r.Get(types.SweepUncVar)))
}

func TestFrame_Floats(t *testing.T) {
	data := "0,0.1,0.5\n1.0,1.1,1.5\n2.0,2.1,2.5\n3.0,3.1,3.5\n"
	f, err := NewFrame("c-factor.csv", strings.NewReader(data))
	require.NoError(t, err)

	values, err := f.Floats("0.1", 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.1, 2.1}, values)

	values, err = f.Floats("0.5", 0)
	require.NoError(t, err)
	assert.Len(t, values, 3)
}

func TestReadFromCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test_statistics.csv")
	require.NoError(t, os.WriteFile(path, []byte("model,phi,value\nStrict,0.1,1.5\nAuxiliary,0,-0.2\n"), 0644))

	stats, err := ReadTestStatistics(path)
	require.NoError(t, err)
	assert.Equal(t, []types.TestStatistic{
		{Model: "Strict", Phi: 0.1, Value: 1.5},
		{Model: "Auxiliary", Phi: 0, Value: -0.2},
	}, stats)

	_, err = ReadParameterEstimates(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}
