package payroll

import (
	"testing"

	"github.com/Jaidataanalytics/hrms-sub000/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculateStatutoryPF(t *testing.T) {
	cfg := payroll.DefaultStatutoryConfig()

	t.Run("wage under ceiling", func(t *testing.T) {
		out, warnings := CalculateStatutory(cfg, decimal.NewFromInt(10000), decimal.NewFromInt(18000), true, false)
		assert.True(t, out.EPF.Equal(decimal.NewFromInt(1200)), "epf %s", out.EPF)
		assert.Empty(t, warnings)
	})

	t.Run("wage capped at ceiling", func(t *testing.T) {
		out, _ := CalculateStatutory(cfg, decimal.NewFromInt(50000), decimal.NewFromInt(80000), true, false)
		// 12% of the 15,000 ceiling, not of the actual basic+DA.
		assert.True(t, out.EPF.Equal(decimal.NewFromInt(1800)), "epf %s", out.EPF)
	})

	t.Run("not applicable", func(t *testing.T) {
		out, warnings := CalculateStatutory(cfg, decimal.NewFromInt(10000), decimal.NewFromInt(18000), false, false)
		assert.True(t, out.EPF.IsZero())
		assert.Empty(t, warnings)
	})

	t.Run("disabled but applicable warns", func(t *testing.T) {
		disabled := cfg
		disabled.PFEnabled = false
		out, warnings := CalculateStatutory(disabled, decimal.NewFromInt(10000), decimal.NewFromInt(18000), true, false)
		assert.True(t, out.EPF.IsZero())
		assert.Contains(t, warnings, "pf_disabled")
	})
}

func TestCalculateStatutoryESI(t *testing.T) {
	cfg := payroll.DefaultStatutoryConfig()

	t.Run("gross under ceiling deducts", func(t *testing.T) {
		out, _ := CalculateStatutory(cfg, decimal.NewFromInt(12000), decimal.NewFromInt(20999), false, true)
		// 0.75% of 20,999, rounded to 2 places.
		assert.True(t, out.ESI.Equal(decimal.NewFromFloat(157.49)), "esi %s", out.ESI)
	})

	t.Run("gross at ceiling is out of scope", func(t *testing.T) {
		out, warnings := CalculateStatutory(cfg, decimal.NewFromInt(12000), decimal.NewFromInt(21000), false, true)
		assert.True(t, out.ESI.IsZero())
		assert.Empty(t, warnings)
	})

	t.Run("disabled but applicable warns", func(t *testing.T) {
		disabled := cfg
		disabled.ESIEnabled = false
		out, warnings := CalculateStatutory(disabled, decimal.NewFromInt(12000), decimal.NewFromInt(18000), false, true)
		assert.True(t, out.ESI.IsZero())
		assert.Contains(t, warnings, "esi_disabled")
	})
}

func TestCalculateStatutoryPT(t *testing.T) {
	cfg := payroll.DefaultStatutoryConfig()

	tests := []struct {
		gross int64
		want  int64
	}{
		{9999, 0},
		{10000, 110},
		{14999, 110},
		{15000, 130},
		{24999, 130},
		{25000, 200},
		{500000, 200}, // unbounded top slab
	}

	for _, tt := range tests {
		out, _ := CalculateStatutory(cfg, decimal.Zero, decimal.NewFromInt(tt.gross), false, false)
		assert.True(t, out.ProfessionalTax.Equal(decimal.NewFromInt(tt.want)),
			"gross %d: pt %s want %d", tt.gross, out.ProfessionalTax, tt.want)
	}
}

func TestCalculateStatutoryMissingSlabsWarn(t *testing.T) {
	cfg := payroll.DefaultStatutoryConfig()
	cfg.PTSlabs = nil

	out, warnings := CalculateStatutory(cfg, decimal.Zero, decimal.NewFromInt(20000), false, false)
	assert.True(t, out.ProfessionalTax.IsZero())
	assert.Contains(t, warnings, "pt_slabs_missing")
}
