package mapping

import "github.com/BayerSe/expected-shortfall-backtesting/pkg/style"

// Display labels of the backtests.
const (
	GeneralCC = "General CC"
	SimpleCC  = "Simple CC"
	StdER     = "Std. ER"
	ER        = "ER"

	StrESR   = "Str. ESR"
	StrESRB  = "Str. ESR (b)"
	StrESRM  = "Str. ESR (m)"
	StrESRMB = "Str. ESR (mb)"

	AuxESR   = "Aux. ESR"
	AuxESRB  = "Aux. ESR (b)"
	AuxESRM  = "Aux. ESR (m)"
	AuxESRMB = "Aux. ESR (mb)"

	IntESR   = "Int. ESR"
	IntESRB  = "Int. ESR (b)"
	IntESRM  = "Int. ESR (m)"
	IntESRMB = "Int. ESR (mb)"
)

var backtestLabels = map[string]string{
	"cc_pvalue_twosided_general":      GeneralCC,
	"cc_pvalue_twosided_simple":       SimpleCC,
	"er_pvalue_twosided_standardized": StdER,
	"er_pvalue_twosided_simple":       ER,

	"cc_pvalue_onesided_general":      GeneralCC,
	"cc_pvalue_onesided_simple":       SimpleCC,
	"er_pvalue_onesided_standardized": StdER,
	"er_pvalue_onesided_simple":       ER,

	"esr1_pvalue_twosided_asymptotic":         StrESR,
	"esr1_pvalue_twosided_bootstrap":          StrESRB,
	"esr1_misspec_pvalue_twosided_asymptotic": StrESRM,
	"esr1_misspec_pvalue_twosided_bootstrap":  StrESRMB,

	"esr2_pvalue_twosided_asymptotic":         AuxESR,
	"esr2_pvalue_twosided_bootstrap":          AuxESRB,
	"esr2_misspec_pvalue_twosided_asymptotic": AuxESRM,
	"esr2_misspec_pvalue_twosided_bootstrap":  AuxESRMB,

	"esr3_pvalue_twosided_asymptotic":         IntESR,
	"esr3_pvalue_twosided_bootstrap":          IntESRB,
	"esr3_misspec_pvalue_twosided_asymptotic": IntESRM,
	"esr3_misspec_pvalue_twosided_bootstrap":  IntESRMB,

	"esr3_pvalue_onesided_asymptotic":         IntESR,
	"esr3_pvalue_onesided_bootstrap":          IntESRB,
	"esr3_misspec_pvalue_onesided_asymptotic": IntESRM,
	"esr3_misspec_pvalue_onesided_bootstrap":  IntESRMB,
}

// only the tests drawn in figures carry a style; the remaining labels appear in tables.
var labelStyles = map[string]style.Style{
	StrESRM: {Color: style.Deep[0], Marker: style.MarkerSquare},
	AuxESRM: {Color: style.Deep[1], Marker: style.MarkerDiamond},
	IntESRM: {Color: style.Deep[2], Marker: style.MarkerPlus},

	GeneralCC: {Color: style.Deep[3], Marker: style.MarkerTriangleLeft},
	SimpleCC:  {Color: style.Deep[4], Marker: style.MarkerTriangleRight},

	StdER: {Color: style.Deep[5], Marker: style.MarkerTriangleUp},
	ER:    {Color: style.Deep[6], Marker: style.MarkerTriangleDown},
}

var dgpNames = map[string]string{
	"ar1_garch11_normal_ar0.0": `AR-GARCH, $\phi=0.0$`,
	"ar1_garch11_normal_ar0.1": `AR-GARCH, $\phi=0.1$`,
	"ar1_garch11_normal_ar0.3": `AR-GARCH, $\phi=0.3$`,
	"ar1_garch11_normal_ar0.5": `AR-GARCH, $\phi=0.5$`,
	"egarch_t_calibrated":      "EGARCH-STD",
	"gas_sstd_calibrated":      "GAS-SSTD",
	"gas_std_calibrated":       "GAS-STD",
}

// FigureTests is the order of the tests in the two-sided figures.
func FigureTests() []string {
	return []string{StrESRM, AuxESRM, IntESRM, GeneralCC, SimpleCC, StdER, ER}
}

// OneSidedFigureTests is the order of the tests in the one-sided power curves.
func OneSidedFigureTests() []string {
	return []string{IntESRM, GeneralCC, SimpleCC, StdER, ER}
}

// SizeTableTests is the column order of the size tables of the first study.
func SizeTableTests() []string {
	return []string{StrESRM, AuxESRM, IntESRM, StrESR, AuxESR, IntESR, GeneralCC, SimpleCC, StdER, ER}
}

// PowerSizeTableTests is the column order of the size table of the second study.
func PowerSizeTableTests() []string {
	return []string{StrESR, AuxESR, IntESR, StrESRM, AuxESRM, IntESRM, GeneralCC, SimpleCC, StdER, ER}
}
