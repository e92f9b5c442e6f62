package mapping

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/BayerSe/expected-shortfall-backtesting/pkg/style"
)

func TestRegistry_Remap(t *testing.T) {
	tests := []struct {
		give string
		want string
		err  error
	}{
		{give: "cc_pvalue_twosided_general", want: GeneralCC},
		{give: "cc_pvalue_onesided_general", want: GeneralCC},
		{give: "esr2_misspec_pvalue_twosided_asymptotic", want: AuxESRM},
		{give: "esr3_misspec_pvalue_onesided_bootstrap", want: IntESRMB},
		{give: "er_pvalue_twosided_simple", want: ER},
		{give: "esr4_pvalue_twosided_asymptotic", err: ErrUnmappedIdentifier},
		{give: "", err: ErrUnmappedIdentifier},
	}

	for _, tt := range tests {
		t.Run(tt.give, func(t *testing.T) {
			got, err := Default.Remap(tt.give)
			if tt.err != nil {
				assert.True(t, errors.Is(err, tt.err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistry_RemapIsTotalAndDeterministic(t *testing.T) {
	for _, id := range Default.Identifiers() {
		a, err := Default.Remap(id)
		require.NoError(t, err)
		b, err := Default.Remap(id)
		require.NoError(t, err)
		assert.Equal(t, a, b)
		assert.NotEmpty(t, a)
	}
}

func TestRegistry_StyleFor(t *testing.T) {
	s, err := Default.StyleFor(IntESRM)
	require.NoError(t, err)
	assert.Equal(t, style.MarkerPlus, s.Marker)
	assert.Equal(t, style.Deep[2], s.Color)

	_, err = Default.StyleFor(StrESR)
	assert.True(t, errors.Is(err, ErrUnstyledLabel))

	styles, err := Default.Styles(FigureTests())
	require.NoError(t, err)
	assert.Len(t, styles, 7)
}

func TestRegistry_FigureStylesAreUnique(t *testing.T) {
	assert.NoError(t, Default.Validate())
	assert.NoError(t, Default.Validate(FigureTests()...))
	assert.NoError(t, Default.Validate(OneSidedFigureTests()...))

	seen := map[style.Style]string{}
	for _, label := range FigureTests() {
		s, err := Default.StyleFor(label)
		require.NoError(t, err)
		if other, ok := seen[s]; ok {
			t.Fatalf("%s shares its style with %s", label, other)
		}
		seen[s] = label
	}
}

func TestRegistry_ValidateCollectsAllViolations(t *testing.T) {
	square := style.Style{Color: style.Deep[0], Marker: style.MarkerSquare}
	r := NewRegistry(
		map[string]string{"a": "A", "b": "B"},
		map[string]style.Style{"A": square, "B": square},
		nil,
	)

	err := r.Validate("A", "B", "C")
	require.Error(t, err)
	errs := multierr.Errors(err)
	assert.Len(t, errs, 2)
	assert.True(t, errors.Is(err, ErrDuplicateStyle))
	assert.True(t, errors.Is(err, ErrUnstyledLabel))
}

func TestRegistry_DGPName(t *testing.T) {
	name, err := Default.DGPName("gas_std_calibrated")
	require.NoError(t, err)
	assert.Equal(t, "GAS-STD", name)

	_, err = Default.DGPName("garch_unknown")
	assert.True(t, errors.Is(err, ErrUnmappedDGP))
}

func TestRegistry_IsIsolatedFromSourceMaps(t *testing.T) {
	labels := map[string]string{"x": "X"}
	r := NewRegistry(labels, nil, nil)
	labels["x"] = "Y"
	got, err := r.Remap("x")
	require.NoError(t, err)
	assert.Equal(t, "X", got)
}

func TestTestOrderings(t *testing.T) {
	assert.Len(t, SizeTableTests(), 10)
	assert.Len(t, PowerSizeTableTests(), 10)
	assert.ElementsMatch(t, SizeTableTests(), PowerSizeTableTests())
	assert.Equal(t, FigureTests()[2:], OneSidedFigureTests())
}

func TestRegistry_RemapAll(t *testing.T) {
	labels, err := Default.RemapAll([]string{"er_pvalue_twosided_simple", "esr1_pvalue_twosided_asymptotic"})
	require.NoError(t, err)
	assert.Equal(t, []string{ER, StrESR}, labels)

	_, err = Default.RemapAll([]string{"er_pvalue_twosided_simple", "unknown"})
	assert.True(t, errors.Is(err, ErrUnmappedIdentifier))
}
