package csvsource

import (
	"math"

	"github.com/pkg/errors"

	"github.com/BayerSe/expected-shortfall-backtesting/pkg/types"
)

// RecordDecoder is the extension point of Decode: it turns one row into a record.
type RecordDecoder[T any] func(row *Row) (T, error)

// Remapper translates backtest identifiers into display labels.
type Remapper interface {
	Remap(identifier string) (string, error)
}

// Decode decodes every row of the frame, stopping at the first failure.
func Decode[T any](f *Frame, decoder RecordDecoder[T]) ([]T, error) {
	records := make([]T, 0, f.Len())
	for i := 0; i < f.Len(); i++ {
		rec, err := decoder(f.Row(i))
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func remapBacktest(row *Row, remapper Remapper) string {
	id := row.String("backtest")
	if row.Err() != nil || remapper == nil {
		return id
	}

	label, err := remapper.Remap(id)
	if err != nil {
		row.err = errors.Wrapf(err, "%s:%d", row.frame.Name, row.line)
		return ""
	}
	return label
}

// NewRejectionRateDecoder decodes the rejection rates of the first study, remapping the
// backtest identifiers with remapper when it is not nil.
func NewRejectionRateDecoder(remapper Remapper) RecordDecoder[types.RejectionRate] {
	return func(row *Row) (types.RejectionRate, error) {
		r := types.RejectionRate{
			NullModel:  row.String("null_model"),
			SampleSize: row.Int("sample_size"),
			Model:      row.String("model"),
			Backtest:   remapBacktest(row, remapper),
			OneSided:   row.Bool("one_sided"),
			SigLev:     row.Float("sig_lev"),
			RejRate:    row.Float("rej_rate"),
		}
		return r, row.Err()
	}
}

// sweepValues reads the parameter columns the file has; absent ones are NaN.
func sweepValues(row *Row) types.SweepValues {
	get := func(p types.SweepParameter) float64 {
		if !row.frame.HasColumn(string(p)) {
			return math.NaN()
		}
		return row.Float(string(p))
	}

	return types.SweepValues{
		Alpha1:      get(types.SweepARCH),
		Beta1:       get(types.SweepGARCH),
		UncVar:      get(types.SweepUncVar),
		Persistence: get(types.SweepPersistence),
		Shape:       get(types.SweepShape),
		Tau:         get(types.SweepProbability),
	}
}

// NewPowerRecordDecoder decodes the rejection rates of the second study.
func NewPowerRecordDecoder(remapper Remapper) RecordDecoder[types.PowerRecord] {
	return func(row *Row) (types.PowerRecord, error) {
		r := types.PowerRecord{
			SweepValues: sweepValues(row),
			Set:         row.Int("set"),
			ModelIndex:  row.Int("model_index"),
			OneSided:    row.Bool("one_sided"),
			Backtest:    remapBacktest(row, remapper),
			Value:       row.Float("value"),
		}
		return r, row.Err()
	}
}

func DecodeIllustrationPoint(row *Row) (types.IllustrationPoint, error) {
	p := types.IllustrationPoint{
		SweepValues: sweepValues(row),
		Type:        row.String("type"),
		Set:         row.Int("set"),
		Variable:    row.Int("variable"),
		Value:       row.Float("value"),
	}
	return p, row.Err()
}

func DecodeParameterEstimate(row *Row) (types.ParameterEstimate, error) {
	e := types.ParameterEstimate{
		Equation:  row.String("equation"),
		Model:     row.String("model"),
		Parameter: row.String("parameter"),
		Phi:       row.Float("phi"),
		Value:     row.Float("value"),
	}
	return e, row.Err()
}

func DecodeTestStatistic(row *Row) (types.TestStatistic, error) {
	s := types.TestStatistic{
		Model: row.String("model"),
		Phi:   row.Float("phi"),
		Value: row.Float("value"),
	}
	return s, row.Err()
}
