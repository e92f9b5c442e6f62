package csvsource

import (
	"github.com/BayerSe/expected-shortfall-backtesting/pkg/types"
)

// ReadFromCSV reads the csv file at path and decodes all of its rows.
func ReadFromCSV[T any](path string, decoder RecordDecoder[T]) ([]T, error) {
	f, err := ReadFrame(path)
	if err != nil {
		return nil, err
	}
	return Decode(f, decoder)
}

func ReadRejectionRates(path string, remapper Remapper) ([]types.RejectionRate, error) {
	return ReadFromCSV(path, NewRejectionRateDecoder(remapper))
}

func ReadPowerRecords(path string, remapper Remapper) ([]types.PowerRecord, error) {
	return ReadFromCSV(path, NewPowerRecordDecoder(remapper))
}

func ReadIllustrationPoints(path string) ([]types.IllustrationPoint, error) {
	return ReadFromCSV(path, DecodeIllustrationPoint)
}

func ReadParameterEstimates(path string) ([]types.ParameterEstimate, error) {
	return ReadFromCSV(path, DecodeParameterEstimate)
}

func ReadTestStatistics(path string) ([]types.TestStatistic, error) {
	return ReadFromCSV(path, DecodeTestStatistic)
}
