package models

type Rules struct {
	StartingMoney   int     `yaml:"starting_money"`
	GoSalary        int     `yaml:"go_salary"`
	IncomeTax       int     `yaml:"income_tax"`
	IncomeTaxRate   float64 `yaml:"income_tax_rate"`
	LuxuryTax       int     `yaml:"luxury_tax"`
	JailFine        int     `yaml:"jail_fine"`
	ImprovementPool int     `yaml:"improvement_pool"`
	MaxTurns        int     `yaml:"max_turns"`
	MortgageRate    float64 `yaml:"mortgage_rate"`
	CashBuffer      int     `yaml:"cash_buffer"`
}

func DefaultRules() Rules {
	return Rules{
		StartingMoney:   1500,
		GoSalary:        200,
		IncomeTax:       200,
		IncomeTaxRate:   0.1,
		LuxuryTax:       75,
		JailFine:        50,
		ImprovementPool: 32,
		MaxTurns:        1000,
		MortgageRate:    0.5,
		CashBuffer:      0,
	}
}
